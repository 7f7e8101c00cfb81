// Package server exposes a game over HTTP and websockets.
//
// All requests share one engine.Game. The game itself does no locking, so
// every access goes through Server.mu.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"sync"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/lgbarn/chess-engine-go/internal/chess"
	"github.com/lgbarn/chess-engine-go/internal/config"
	"github.com/lgbarn/chess-engine-go/internal/engine"
	"github.com/lgbarn/chess-engine-go/internal/errors"
	"github.com/lgbarn/chess-engine-go/internal/output"
)

// Server wires the HTTP layer to a game.
type Server struct {
	cfg *config.Config

	mu   sync.Mutex
	game *engine.Game

	router   *mux.Router
	upgrader websocket.Upgrader

	clientsMu sync.Mutex
	clients   map[*client]struct{}
}

// New builds a Server around game.
func New(cfg *config.Config, game *engine.Game) *Server {
	s := &Server{
		cfg:     cfg,
		game:    game,
		router:  mux.NewRouter(),
		clients: make(map[*client]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	s.router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	api := s.router.PathPrefix("/api").Subrouter()
	api.Use(s.withJSON)
	api.HandleFunc("/state", s.handleState).Methods(http.MethodGet)
	api.HandleFunc("/move", s.handleMove).Methods(http.MethodPost)
	api.HandleFunc("/moves/{square}", s.handleMoves).Methods(http.MethodGet)
	api.HandleFunc("/reset", s.handleReset).Methods(http.MethodPost)

	s.router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}).Methods(http.MethodGet)
	s.router.HandleFunc("/ws", s.handleWebsocket)
}

// Handler returns the router wrapped with access logging and panic recovery.
func (s *Server) Handler() http.Handler {
	h := handlers.LoggingHandler(s.cfg.LogFile, s.router)
	return handlers.RecoveryHandler(handlers.PrintRecoveryStack(s.cfg.Verbosity > 1))(h)
}

// Listen serves on cfg.Server.Addr until ctx is cancelled.
func (s *Server) Listen(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Server.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.cfg.Server.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down
// gracefully within cfg.Server.ShutdownTimeout.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	sc := s.cfg.Server
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: sc.ReadHeaderTimeout,
		ReadTimeout:       sc.ReadTimeout,
		WriteTimeout:      sc.WriteTimeout,
		IdleTimeout:       sc.IdleTimeout,
		MaxHeaderBytes:    1 << 16,
	}
	// Hijacked websocket connections are not closed by Shutdown.
	srv.RegisterOnShutdown(s.closeClients)

	errc := make(chan error, 1)
	go func() {
		s.cfg.Logf(1, "HTTP listening on %s", ln.Addr())
		errc <- srv.Serve(ln)
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), sc.ShutdownTimeout)
	defer cancel()
	s.cfg.Logf(1, "HTTP shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// response is the body of every API reply and websocket frame.
type response struct {
	Type   string             `json:"type,omitempty"`
	State  *chess.Snapshot    `json:"state,omitempty"`
	Error  string             `json:"error,omitempty"`
	Reason engine.FailureKind `json:"reason,omitempty"`
}

// moveBody is a move request, over HTTP or websocket.
type moveBody struct {
	From string `json:"from"`
	To   string `json:"to"`
}

func (s *Server) withJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		if r.Body != nil && r.Body != http.NoBody {
			r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Server.MaxBodyBytes)
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	snap := s.game.Snapshot()
	s.mu.Unlock()
	writeJSON(w, response{State: &snap})
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	var body moveBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		if isBodyTooLarge(err) {
			writeError(w, http.StatusRequestEntityTooLarge, "request too large")
			return
		}
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	resp := s.move(body)
	if resp.Error != "" {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}
	writeJSON(w, resp)
}

func (s *Server) handleMoves(w http.ResponseWriter, r *http.Request) {
	from := mux.Vars(r)["square"]

	s.mu.Lock()
	moves, err := s.game.Destinations(from)
	s.mu.Unlock()

	if err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		writeJSON(w, response{Error: output.Describe(err), Reason: engine.Reason(err)})
		return
	}
	if moves == nil {
		moves = []string{}
	}
	writeJSON(w, struct {
		From  string   `json:"from"`
		Moves []string `json:"moves"`
	}{from, moves})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.game.Reset()
	snap := s.game.Snapshot()
	s.broadcast(snap)
	s.mu.Unlock()

	s.cfg.Logf(1, "game reset")
	writeJSON(w, response{State: &snap})
}

// move applies body and, when it succeeds, pushes the new state to every
// websocket client. A refused move only reaches the caller.
func (s *Server) move(body moveBody) response {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.game.ApplyMove(body.From, body.To)
	snap := s.game.Snapshot()
	if err != nil {
		s.cfg.Logf(2, "rejected %s %s: %v", body.From, body.To, err)
		return response{Type: "error", State: &snap, Error: output.Describe(err), Reason: engine.Reason(err)}
	}
	s.cfg.Logf(2, "applied %s %s", body.From, body.To)
	s.broadcast(snap)
	return response{Type: "state", State: &snap}
}

func writeJSON(w http.ResponseWriter, v any) {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	writeJSON(w, response{Error: msg})
}

func isBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}

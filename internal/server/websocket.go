package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/lgbarn/chess-engine-go/internal/chess"
)

// client is one websocket connection. Writes happen only while holding
// Server.clientsMu.
type client struct {
	conn *websocket.Conn
}

func (s *Server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		s.cfg.Logf(1, "websocket upgrade from %s: %v", r.RemoteAddr, err)
		return
	}
	c := &client{conn: conn}
	conn.SetReadLimit(s.cfg.Server.MaxBodyBytes)
	// Clear the request read deadline inherited from http.Server.
	_ = conn.SetReadDeadline(time.Time{})
	s.cfg.Logf(1, "websocket client %s connected", conn.RemoteAddr())

	// Register and greet under the game lock so no broadcast can slip in
	// between the snapshot and the registration.
	s.mu.Lock()
	snap := s.game.Snapshot()
	s.clientsMu.Lock()
	s.clients[c] = struct{}{}
	err = s.send(c, response{Type: "state", State: &snap})
	s.clientsMu.Unlock()
	s.mu.Unlock()

	if err == nil {
		s.readLoop(c)
	}
	s.drop(c)
}

// readLoop handles move frames until the connection fails.
func (s *Server) readLoop(c *client) {
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.cfg.Logf(1, "websocket read from %s: %v", c.conn.RemoteAddr(), err)
			}
			return
		}

		var body moveBody
		if err := json.Unmarshal(data, &body); err != nil {
			if !s.reply(c, response{Type: "error", Error: "invalid json"}) {
				return
			}
			continue
		}

		// Successful moves reach c through the broadcast.
		if resp := s.move(body); resp.Error != "" {
			if !s.reply(c, resp) {
				return
			}
		}
	}
}

// reply sends resp to c alone and reports whether the connection is still usable.
func (s *Server) reply(c *client, resp response) bool {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	return s.send(c, resp) == nil
}

// broadcast sends snap to every connected client. Clients that cannot be
// written to are closed; their read loop then removes them.
func (s *Server) broadcast(snap chess.Snapshot) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	for c := range s.clients {
		if err := s.send(c, response{Type: "state", State: &snap}); err != nil {
			s.cfg.Logf(1, "websocket write to %s: %v", c.conn.RemoteAddr(), err)
			c.conn.Close()
		}
	}
}

// send writes one frame. The caller holds clientsMu.
func (s *Server) send(c *client, resp response) error {
	_ = c.conn.SetWriteDeadline(time.Now().Add(s.cfg.Server.WriteTimeout))
	return c.conn.WriteJSON(resp)
}

func (s *Server) drop(c *client) {
	s.clientsMu.Lock()
	delete(s.clients, c)
	s.clientsMu.Unlock()
	c.conn.Close()
	s.cfg.Logf(1, "websocket client %s disconnected", c.conn.RemoteAddr())
}

// closeClients closes every websocket connection.
func (s *Server) closeClients() {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	for c := range s.clients {
		_ = c.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(time.Second))
		c.conn.Close()
	}
}

// ClientCount reports the number of connected websocket clients.
func (s *Server) ClientCount() int {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	return len(s.clients)
}

package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/lgbarn/chess-engine-go/internal/chess"
	"github.com/lgbarn/chess-engine-go/internal/config"
	"github.com/lgbarn/chess-engine-go/internal/engine"
	"github.com/lgbarn/chess-engine-go/internal/testutil"
)

// apiReply mirrors response with the reason decoded as its name.
type apiReply struct {
	Type   string          `json:"type"`
	State  *chess.Snapshot `json:"state"`
	Error  string          `json:"error"`
	Reason string          `json:"reason"`
}

// syncBuffer is a bytes.Buffer safe for the concurrent writes of the
// access log and the server's own diagnostics.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	cfg := config.NewConfig()
	cfg.LogFile = io.Discard
	s := New(cfg, engine.NewGame())
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, ts
}

func doJSON(t *testing.T, method, url, body string) (int, apiReply) {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	testutil.AssertNoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	testutil.AssertNoError(t, err)
	defer resp.Body.Close()

	var reply apiReply
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		t.Fatalf("%s %s: decode: %v", method, url, err)
	}
	return resp.StatusCode, reply
}

func TestHandleState(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/state")
	testutil.AssertNoError(t, err)
	defer resp.Body.Close()

	testutil.AssertEqual(t, resp.StatusCode, http.StatusOK)
	testutil.AssertContains(t, resp.Header.Get("Content-Type"), "application/json")

	var reply apiReply
	testutil.AssertNoError(t, json.NewDecoder(resp.Body).Decode(&reply))
	if reply.State == nil {
		t.Fatal("state missing from reply")
	}
	testutil.AssertEqual(t, reply.State.Placement, engine.InitialPlacement)
	testutil.AssertEqual(t, reply.State.ToMove, chess.White)
	testutil.AssertFalse(t, reply.State.GameOver)
}

func TestHandleMove_Success(t *testing.T) {
	s, ts := newTestServer(t)

	status, reply := doJSON(t, http.MethodPost, ts.URL+"/api/move", `{"from":"e2","to":"e4"}`)
	testutil.AssertEqual(t, status, http.StatusOK)
	testutil.AssertEqual(t, reply.Error, "")
	testutil.AssertEqual(t, reply.State.Placement, "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR")
	testutil.AssertEqual(t, reply.State.ToMove, chess.Black)
	testutil.AssertEqual(t, s.game.ToMove(), chess.Black)
}

func TestHandleMove_Refused(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantError string
		reason    string
	}{
		{"illegal shape", `{"from":"e2","to":"e5"}`, "Invalid move for P.", "IllegalShape"},
		{"wrong turn", `{"from":"e7","to":"e5"}`, "It's White's turn.", "WrongTurn"},
		{"bad notation", `{"from":"z9","to":"e4"}`, "Invalid notation. Please use algebraic notation (e.g., e2 to e4).", "InvalidNotation"},
		{"empty source", `{"from":"e3","to":"e4"}`, "No piece at position e3.", "NoPieceAtSource"},
		{"own piece", `{"from":"a1","to":"a2"}`, "Cannot capture your own piece.", "SameColourCapture"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ts := newTestServer(t)

			status, reply := doJSON(t, http.MethodPost, ts.URL+"/api/move", tt.body)
			testutil.AssertEqual(t, status, http.StatusUnprocessableEntity)
			testutil.AssertEqual(t, reply.Error, tt.wantError)
			testutil.AssertEqual(t, reply.Reason, tt.reason)
			testutil.AssertEqual(t, reply.State.Placement, engine.InitialPlacement)
			testutil.AssertEqual(t, reply.State.ToMove, chess.White)
		})
	}
}

func TestHandleMove_BadRequests(t *testing.T) {
	s, ts := newTestServer(t)
	s.cfg.Server.MaxBodyBytes = 32

	status, reply := doJSON(t, http.MethodPost, ts.URL+"/api/move", `{"from":`)
	testutil.AssertEqual(t, status, http.StatusBadRequest)
	testutil.AssertEqual(t, reply.Error, "invalid json")

	long := `{"from":"e2","to":"e4","padding":"` + strings.Repeat("x", 64) + `"}`
	status, reply = doJSON(t, http.MethodPost, ts.URL+"/api/move", long)
	testutil.AssertEqual(t, status, http.StatusRequestEntityTooLarge)
	testutil.AssertEqual(t, reply.Error, "request too large")

	testutil.AssertEqual(t, s.game.ToMove(), chess.White)
}

func TestRouting(t *testing.T) {
	_, ts := newTestServer(t)

	status, _ := doJSON(t, http.MethodGet, ts.URL+"/api/move", "")
	testutil.AssertEqual(t, status, http.StatusMethodNotAllowed)

	status, reply := doJSON(t, http.MethodGet, ts.URL+"/api/nothing", "")
	testutil.AssertEqual(t, status, http.StatusNotFound)
	testutil.AssertEqual(t, reply.Error, "not found")

	resp, err := http.Get(ts.URL + "/healthz")
	testutil.AssertNoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	testutil.AssertEqual(t, resp.StatusCode, http.StatusOK)
	testutil.AssertEqual(t, string(body), "ok")
}

func TestHandleMoves(t *testing.T) {
	tests := []struct {
		square string
		want   []string
	}{
		{"e2", []string{"e3", "e4"}},
		{"b1", []string{"a3", "c3"}},
		{"a1", []string{}},
	}

	_, ts := newTestServer(t)
	for _, tt := range tests {
		t.Run(tt.square, func(t *testing.T) {
			resp, err := http.Get(ts.URL + "/api/moves/" + tt.square)
			testutil.AssertNoError(t, err)
			defer resp.Body.Close()
			testutil.AssertEqual(t, resp.StatusCode, http.StatusOK)

			var got struct {
				From  string   `json:"from"`
				Moves []string `json:"moves"`
			}
			testutil.AssertNoError(t, json.NewDecoder(resp.Body).Decode(&got))
			testutil.AssertEqual(t, got.From, tt.square)
			testutil.AssertEqual(t, got.Moves, tt.want)
		})
	}

	status, reply := doJSON(t, http.MethodGet, ts.URL+"/api/moves/e7", "")
	testutil.AssertEqual(t, status, http.StatusUnprocessableEntity)
	testutil.AssertEqual(t, reply.Reason, "WrongTurn")

	status, reply = doJSON(t, http.MethodGet, ts.URL+"/api/moves/k9", "")
	testutil.AssertEqual(t, status, http.StatusUnprocessableEntity)
	testutil.AssertEqual(t, reply.Reason, "InvalidNotation")
}

func TestHandleReset(t *testing.T) {
	s, ts := newTestServer(t)
	testutil.MustPlay(t, s.game, "e2", "e4", "e7", "e5")

	status, reply := doJSON(t, http.MethodPost, ts.URL+"/api/reset", "")
	testutil.AssertEqual(t, status, http.StatusOK)
	testutil.AssertEqual(t, reply.State.Placement, engine.InitialPlacement)
	testutil.AssertEqual(t, reply.State.ToMove, chess.White)
}

func TestAccessLog(t *testing.T) {
	var logs syncBuffer
	cfg := config.NewConfig()
	cfg.LogFile = &logs
	cfg.Verbosity = 2
	ts := httptest.NewServer(New(cfg, engine.NewGame()).Handler())
	defer ts.Close()

	doJSON(t, http.MethodPost, ts.URL+"/api/move", `{"from":"g1","to":"f3"}`)

	testutil.AssertContains(t, logs.String(), "applied g1 f3")
	testutil.AssertContains(t, logs.String(), `"POST /api/move HTTP/1.1" 200`)
}

func TestConcurrentMoves(t *testing.T) {
	s, ts := newTestServer(t)

	// Only one of these can be White's first move with the g1 knight.
	var wg sync.WaitGroup
	statuses := make([]int, 8)
	for i := range statuses {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			resp, err := http.Post(ts.URL+"/api/move", "application/json",
				strings.NewReader(`{"from":"g1","to":"f3"}`))
			if err != nil {
				t.Error(err)
				return
			}
			resp.Body.Close()
			statuses[i] = resp.StatusCode
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, status := range statuses {
		if status == http.StatusOK {
			ok++
		}
	}
	testutil.AssertEqual(t, ok, 1)
	testutil.AssertEqual(t, s.game.ToMove(), chess.Black)
}

func dialWS(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", url, err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readWS(t *testing.T, conn *websocket.Conn) apiReply {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var reply apiReply
	if err := conn.ReadJSON(&reply); err != nil {
		t.Fatalf("read frame: %v", err)
	}
	return reply
}

func TestWebsocket_Broadcast(t *testing.T) {
	_, ts := newTestServer(t)

	alice := dialWS(t, ts)
	bob := dialWS(t, ts)
	for _, conn := range []*websocket.Conn{alice, bob} {
		greeting := readWS(t, conn)
		testutil.AssertEqual(t, greeting.Type, "state")
		testutil.AssertEqual(t, greeting.State.Placement, engine.InitialPlacement)
	}

	// A move over HTTP reaches both sockets.
	status, _ := doJSON(t, http.MethodPost, ts.URL+"/api/move", `{"from":"e2","to":"e4"}`)
	testutil.AssertEqual(t, status, http.StatusOK)
	for _, conn := range []*websocket.Conn{alice, bob} {
		testutil.AssertEqual(t, readWS(t, conn).State.ToMove, chess.Black)
	}

	// A move over one socket reaches both.
	testutil.AssertNoError(t, bob.WriteJSON(moveBody{From: "e7", To: "e5"}))
	want := "rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR"
	for _, conn := range []*websocket.Conn{alice, bob} {
		reply := readWS(t, conn)
		testutil.AssertEqual(t, reply.Type, "state")
		testutil.AssertEqual(t, reply.State.Placement, want)
	}

	// A refused move only goes back to the sender.
	testutil.AssertNoError(t, alice.WriteJSON(moveBody{From: "e4", To: "e5"}))
	refused := readWS(t, alice)
	testutil.AssertEqual(t, refused.Type, "error")
	testutil.AssertEqual(t, refused.Reason, "IllegalShape")
	testutil.AssertEqual(t, refused.Error, "Invalid move for P.")

	testutil.AssertNoError(t, alice.WriteJSON(moveBody{From: "g1", To: "f3"}))
	testutil.AssertEqual(t, readWS(t, alice).Type, "state")
	next := readWS(t, bob)
	testutil.AssertEqual(t, next.Type, "state")
	testutil.AssertEqual(t, next.State.ToMove, chess.Black)
}

func TestWebsocket_InvalidFrame(t *testing.T) {
	_, ts := newTestServer(t)
	conn := dialWS(t, ts)
	readWS(t, conn)

	testutil.AssertNoError(t, conn.WriteMessage(websocket.TextMessage, []byte("e2 e4")))
	reply := readWS(t, conn)
	testutil.AssertEqual(t, reply.Type, "error")
	testutil.AssertEqual(t, reply.Error, "invalid json")
}

func waitForClients(t *testing.T, s *Server, want int) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for s.ClientCount() != want {
		if time.Now().After(deadline) {
			t.Fatalf("ClientCount() = %d, want %d", s.ClientCount(), want)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestWebsocket_Disconnect(t *testing.T) {
	s, ts := newTestServer(t)
	conn := dialWS(t, ts)
	readWS(t, conn)
	waitForClients(t, s, 1)

	conn.Close()
	waitForClients(t, s, 0)
}

func TestServe_Shutdown(t *testing.T) {
	cfg := config.NewConfig()
	cfg.LogFile = io.Discard
	s := New(cfg, engine.NewGame())

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	testutil.AssertNoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	url := "ws://" + ln.Addr().String() + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	testutil.AssertNoError(t, err)
	defer conn.Close()
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var greeting apiReply
	testutil.AssertNoError(t, conn.ReadJSON(&greeting))

	cancel()
	select {
	case err := <-done:
		testutil.AssertNoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("Serve did not return after cancellation")
	}

	if _, _, err := conn.ReadMessage(); err == nil {
		t.Error("websocket still open after shutdown")
	}
}

func TestListen_BadAddress(t *testing.T) {
	cfg := config.NewConfig()
	cfg.LogFile = io.Discard
	cfg.Server.Addr = "not an address"

	err := New(cfg, engine.NewGame()).Listen(context.Background())
	if err == nil {
		t.Fatal("Listen() = nil, want error")
	}
	testutil.AssertContains(t, err.Error(), "listen on")
}

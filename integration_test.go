package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/HeadedBranch/auto-balatro/api"
	"github.com/HeadedBranch/auto-balatro/config"
	"github.com/HeadedBranch/auto-balatro/session"
	"github.com/HeadedBranch/auto-balatro/ws"
)

// setupTestServer creates a test HTTP server with the full scoring stack and
// no database.
func setupTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	cfg := config.Defaults()
	ctx, cancel := context.WithCancel(context.Background())

	mgr := session.NewManager(ctx, cfg, nil)
	hub := ws.NewHub(cfg, mgr, nil)
	go hub.Run(ctx)

	r := chi.NewRouter()
	r.Get("/ws", hub.ServeWS)
	r.Mount("/api", api.NewHandler(nil, mgr.Engine(), mgr, nil).Routes())

	server := httptest.NewServer(r)
	t.Cleanup(func() {
		server.Close()
		cancel()
		mgr.Wait()
	})
	return server
}

// connectWS creates a WebSocket connection to the test server.
func connectWS(t *testing.T, server *httptest.Server) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

// readMsg reads a JSON message from the WebSocket and returns it as a map.
func readMsg(t *testing.T, conn *websocket.Conn) map[string]interface{} {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("failed to read message: %v", err)
	}
	var msg map[string]interface{}
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("failed to parse message: %v", err)
	}
	return msg
}

// sendMsg sends a raw JSON message over the WebSocket.
func sendMsg(t *testing.T, conn *websocket.Conn, msg string) {
	t.Helper()
	if err := conn.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
		t.Fatalf("failed to send message: %v", err)
	}
}

const kingsPair = `{
	"hand": [
		{"card": {"rank": "K", "suit": "Spades"}, "selected": true},
		{"card": {"rank": "K", "suit": "Hearts"}, "selected": true},
		{"card": {"rank": "3", "suit": "Clubs"}, "selected": false}
	],
	"jokers": [],
	"poker_hand": {"kind": "Pair", "level": 1},
	"run_info": {"hands": 4, "discards": 3}
}`

func TestWelcomeAndScore(t *testing.T) {
	server := setupTestServer(t)
	conn := connectWS(t, server)

	welcome := readMsg(t, conn)
	if welcome["type"] != "welcome" {
		t.Fatalf("expected welcome, got %v", welcome["type"])
	}
	if id, _ := welcome["sessionId"].(string); id == "" {
		t.Fatal("welcome carried no session id")
	}

	sendMsg(t, conn, `{"type":"hello","name":"bridge","version":"0.1"}`)
	sendMsg(t, conn, `{"type":"play","play":`+kingsPair+`}`)

	msg := readMsg(t, conn)
	if msg["type"] != "score" {
		t.Fatalf("expected score, got %v", msg)
	}
	if msg["seq"] != 1.0 {
		t.Errorf("expected seq 1, got %v", msg["seq"])
	}
	result := msg["result"].(map[string]interface{})
	if result["total"] != 60.0 {
		t.Errorf("expected total 60, got %v", result["total"])
	}
	if scored := result["scored"].([]interface{}); len(scored) != 2 {
		t.Errorf("expected 2 scored cards, got %d", len(scored))
	}
}

func TestScoreErrorKeepsSessionAlive(t *testing.T) {
	server := setupTestServer(t)
	conn := connectWS(t, server)
	readMsg(t, conn)

	noHand := strings.Replace(kingsPair, `"poker_hand": {"kind": "Pair", "level": 1},`, "", 1)
	sendMsg(t, conn, `{"type":"play","play":`+noHand+`}`)
	msg := readMsg(t, conn)
	if msg["type"] != "score_error" || msg["kind"] != "missing_hand_context" {
		t.Fatalf("expected missing_hand_context score_error, got %v", msg)
	}

	sendMsg(t, conn, `{"type":"play","play":`+kingsPair+`}`)
	msg = readMsg(t, conn)
	if msg["type"] != "score" || msg["seq"] != 2.0 {
		t.Fatalf("expected score with seq 2, got %v", msg)
	}
}

func TestMalformedMessages(t *testing.T) {
	server := setupTestServer(t)
	conn := connectWS(t, server)
	readMsg(t, conn)

	sendMsg(t, conn, `not json`)
	if msg := readMsg(t, conn); msg["type"] != "error" {
		t.Fatalf("expected error, got %v", msg)
	}

	sendMsg(t, conn, `{"type":"discard"}`)
	msg := readMsg(t, conn)
	if msg["type"] != "error" || !strings.Contains(msg["message"].(string), "discard") {
		t.Fatalf("expected unknown type error, got %v", msg)
	}

	sendMsg(t, conn, `{"type":"play","play":{"hand":[{"card":{"rank":"Z","suit":"Spades"},"selected":true}],"jokers":[]}}`)
	if msg := readMsg(t, conn); msg["type"] != "error" {
		t.Fatalf("expected snapshot error, got %v", msg)
	}
}

func TestScreenMessagesAreSilent(t *testing.T) {
	server := setupTestServer(t)
	conn := connectWS(t, server)
	readMsg(t, conn)

	sendMsg(t, conn, `{"type":"screen","screen":"SHOP"}`)
	sendMsg(t, conn, `{"type":"play","play":`+kingsPair+`}`)

	// The first reply after the screen change is the score.
	msg := readMsg(t, conn)
	if msg["type"] != "score" || msg["seq"] != 1.0 {
		t.Fatalf("expected score with seq 1, got %v", msg)
	}
}

func TestHTTPScoreAndHealth(t *testing.T) {
	server := setupTestServer(t)
	conn := connectWS(t, server)
	readMsg(t, conn)

	resp, err := http.Post(server.URL+"/api/score", "application/json", strings.NewReader(kingsPair))
	if err != nil {
		t.Fatalf("POST /api/score: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if result["total"] != 60.0 {
		t.Errorf("expected total 60, got %v", result["total"])
	}

	hr, err := http.Get(server.URL + "/api/health")
	if err != nil {
		t.Fatalf("GET /api/health: %v", err)
	}
	defer hr.Body.Close()
	var health api.HealthResponse
	if err := json.NewDecoder(hr.Body).Decode(&health); err != nil {
		t.Fatalf("decode health: %v", err)
	}
	if health.Sessions != 1 {
		t.Errorf("expected 1 live session, got %d", health.Sessions)
	}
}

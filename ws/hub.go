package ws

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/HeadedBranch/auto-balatro/auth"
	"github.com/HeadedBranch/auto-balatro/config"
	"github.com/HeadedBranch/auto-balatro/session"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	// The bridge mod connects from the game process, not a browser.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// SessionStarter defines what the Hub needs from the session manager.
type SessionStarter interface {
	Start(send chan []byte, userID string) *session.Session
}

// Hub maintains the set of connected game clients.
type Hub struct {
	Clients    map[*Client]bool
	Register   chan *Client
	Unregister chan *Client
	Sessions   SessionStarter
	Config     *config.Config
	// Verifier checks bearer tokens; nil accepts anonymous clients only.
	Verifier *auth.Verifier
}

// NewHub creates a new Hub.
func NewHub(cfg *config.Config, sessions SessionStarter, verifier *auth.Verifier) *Hub {
	return &Hub{
		Clients:    make(map[*Client]bool),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		Sessions:   sessions,
		Config:     cfg,
		Verifier:   verifier,
	}
}

// Run starts the hub's main loop. Should be run as a goroutine.
// When ctx is cancelled (e.g. on server shutdown), Run returns and no longer accepts new registrations.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			slog.Info("shutdown signal received, stopping", "tag", "ws")
			return
		case client := <-h.Register:
			h.Clients[client] = true
			slog.Info("client connected", "tag", "ws", "clients", len(h.Clients))

		case client := <-h.Unregister:
			if _, ok := h.Clients[client]; ok {
				delete(h.Clients, client)
				close(client.Send)
				// ReadPump has returned, so nothing else writes to Actions.
				if client.Session != nil {
					close(client.Session.Actions)
				}
				slog.Info("client disconnected", "tag", "ws", "clients", len(h.Clients))
			}
		}
	}
}

// ServeWS handles WebSocket upgrade requests and creates a new Client with
// its own session loop. A bearer token, when present, must be valid.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	var userID string
	if h.Verifier != nil {
		id, err := h.Verifier.UserID(r)
		switch {
		case err == nil:
			userID = id
		case errors.Is(err, auth.ErrNoToken):
		default:
			slog.Warn("rejected websocket token", "tag", "ws", "error", err)
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("websocket upgrade failed", "tag", "ws", "error", err)
		return
	}

	client := &Client{
		Hub:    h,
		Conn:   conn,
		Send:   make(chan []byte, 256),
		UserID: userID,
	}
	client.Session = h.Sessions.Start(client.Send, userID)

	h.Register <- client

	go client.WritePump()
	go client.ReadPump()
}

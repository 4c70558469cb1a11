package ws

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"

	"github.com/HeadedBranch/auto-balatro/auth"
	"github.com/HeadedBranch/auto-balatro/session"
	"github.com/HeadedBranch/auto-balatro/wsutil"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Default maximum message size allowed from peer; snapshots with a full
	// hand and joker row run a few KB.
	defaultMaxMessageSize = 1 << 20
)

// Client is a middleman between the websocket connection and its session.
type Client struct {
	Hub     *Hub
	Conn    *websocket.Conn
	Send    chan []byte
	Session *session.Session
	UserID  string
}

// ReadPump pumps messages from the websocket connection to the session.
// It runs in its own goroutine per connection.
func (c *Client) ReadPump() {
	defer func() {
		c.Hub.Unregister <- c
		c.Conn.Close()
	}()

	limit := int64(defaultMaxMessageSize)
	if c.Hub.Config != nil && c.Hub.Config.MaxMessageSize > 0 {
		limit = int64(c.Hub.Config.MaxMessageSize)
	}
	c.Conn.SetReadLimit(limit)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Warn("websocket read error", "tag", "ws", "error", err)
			}
			break
		}
		// Any inbound traffic proves liveness.
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))

		if !c.handleMessage(message) {
			break
		}
	}
}

// WritePump pumps messages from the send channel to the websocket connection.
// It runs in its own goroutine per connection.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.Conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// handleMessage routes one inbound message. It returns false once the
// session has stopped and the connection should be dropped.
func (c *Client) handleMessage(data []byte) bool {
	var envelope InboundEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		c.sendError("Invalid message format.")
		return true
	}

	var action session.Action
	switch envelope.Type {
	case "hello":
		var msg HelloMsg
		if err := json.Unmarshal(envelope.Raw, &msg); err != nil {
			c.sendError("Invalid hello message.")
			return true
		}
		action = session.Action{Type: session.ActionHello, ClientName: msg.Name, ClientVersion: msg.Version, UserID: c.UserID}
		if msg.Token != "" && c.Hub.Verifier != nil {
			claims, err := c.Hub.Verifier.Verify(msg.Token)
			if err != nil {
				c.sendError("Invalid token.")
				return true
			}
			action.UserID = auth.UserIDFromClaims(claims)
		}
	case "play":
		var msg PlayMsg
		if err := json.Unmarshal(envelope.Raw, &msg); err != nil || len(msg.Play) == 0 {
			c.sendError("Invalid play message.")
			return true
		}
		play, err := decodePlay(msg.Play)
		if err != nil {
			c.sendError("Invalid play snapshot: " + err.Error())
			return true
		}
		action = session.Action{Type: session.ActionPlay, Play: play, Raw: msg.Play}
	case "screen":
		var msg ScreenMsg
		if err := json.Unmarshal(envelope.Raw, &msg); err != nil {
			c.sendError("Invalid screen message.")
			return true
		}
		action = session.Action{Type: session.ActionScreen, Screen: msg.Screen}
	default:
		c.sendError("Unknown message type: " + envelope.Type)
		return true
	}

	if err := c.Session.Submit(action); err != nil {
		slog.Info("session stopped, dropping client", "tag", "ws", "session", c.Session.ID.String())
		return false
	}
	return true
}

func (c *Client) sendError(message string) {
	msg := ErrorMsg{Type: "error", Message: message}
	data, _ := json.Marshal(msg)
	wsutil.SafeSend(c.Send, data)
}

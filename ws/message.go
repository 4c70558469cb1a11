package ws

import (
	"encoding/json"

	"github.com/HeadedBranch/auto-balatro/balatro"
)

// InboundEnvelope is the generic envelope for all client-to-server messages.
// The Type field is used for routing; Raw holds the full JSON payload.
type InboundEnvelope struct {
	Type string          `json:"type"`
	Raw  json.RawMessage `json:"-"`
}

// UnmarshalJSON implements custom unmarshaling to capture the raw payload.
func (e *InboundEnvelope) UnmarshalJSON(data []byte) error {
	type typeOnly struct {
		Type string `json:"type"`
	}
	var t typeOnly
	if err := json.Unmarshal(data, &t); err != nil {
		return err
	}
	e.Type = t.Type
	e.Raw = json.RawMessage(data)
	return nil
}

// --- Client-to-Server message payloads ---

// HelloMsg identifies the bridge mod. Token is an optional bearer JWT.
type HelloMsg struct {
	Type    string `json:"type"`
	Name    string `json:"name"`
	Version string `json:"version"`
	Token   string `json:"token,omitempty"`
}

// PlayMsg carries a "playing a hand" snapshot. The snapshot stays raw until
// the client decodes it so the exact bytes can be stored.
type PlayMsg struct {
	Type string          `json:"type"`
	Play json.RawMessage `json:"play"`
}

// ScreenMsg reports any other game screen (menu, shop, blind select, ...).
type ScreenMsg struct {
	Type   string `json:"type"`
	Screen string `json:"screen"`
}

// decodePlay parses a snapshot payload.
func decodePlay(raw json.RawMessage) (balatro.Play, error) {
	var p balatro.Play
	err := json.Unmarshal(raw, &p)
	return p, err
}

// --- Server-to-Client messages ---

// ErrorMsg is sent when a client message is malformed.
type ErrorMsg struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

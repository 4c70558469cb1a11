package session

import "github.com/HeadedBranch/auto-balatro/scoring"

// Outbound message types.
const (
	TypeWelcome    = "welcome"
	TypeScore      = "score"
	TypeScoreError = "score_error"
)

// ErrorKindInvalidPlay is the score_error kind for snapshots that fail validation.
const ErrorKindInvalidPlay = "invalid_play"

// WelcomeMsg is sent once when a session starts.
type WelcomeMsg struct {
	Type      string `json:"type"`
	SessionID string `json:"sessionId"`
}

// ScoreMsg carries the preview for one play snapshot.
type ScoreMsg struct {
	Type   string         `json:"type"`
	Seq    int            `json:"seq"`
	Result scoring.Result `json:"result"`
}

// ScoreErrorMsg reports a snapshot the engine could not score.
type ScoreErrorMsg struct {
	Type    string `json:"type"`
	Seq     int    `json:"seq"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// Package session runs one observation loop per connected game. Each loop
// consumes snapshots in arrival order, scores "playing a hand" snapshots and
// reports the preview back on the client's outbound channel.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/HeadedBranch/auto-balatro/balatro"
	"github.com/HeadedBranch/auto-balatro/scoring"
	"github.com/HeadedBranch/auto-balatro/storage"
	"github.com/HeadedBranch/auto-balatro/wsutil"
)

// ErrSessionClosed is returned by Submit once the loop has stopped.
var ErrSessionClosed = errors.New("session closed")

// Recorder persists session lifecycle and evaluations. *storage.Store
// satisfies it, including as a nil pointer.
type Recorder interface {
	InsertSession(ctx context.Context, rec storage.SessionRecord) error
	CloseSession(ctx context.Context, id uuid.UUID) error
	InsertScore(ctx context.Context, rec storage.ScoreRecord) error
}

// ActionType enumerates what a session loop can process.
type ActionType int

const (
	ActionHello ActionType = iota
	ActionPlay
	ActionScreen
)

// Action is one decoded inbound message.
type Action struct {
	Type ActionType

	// Hello
	ClientName    string
	ClientVersion string
	UserID        string

	// Play holds the snapshot; Raw is its JSON as received, for storage.
	Play balatro.Play
	Raw  json.RawMessage

	// Screen is the game state name for non-play screens.
	Screen string
}

// Session is the observation loop of one connected game.
type Session struct {
	ID      uuid.UUID
	Actions chan Action
	Done    chan struct{}

	send         chan []byte
	engine       *scoring.Engine
	recorder     Recorder
	storeTimeout time.Duration
	log          *slog.Logger

	userID string
	seq    int
}

// New creates a session that writes outbound messages to send.
func New(engine *scoring.Engine, rec Recorder, send chan []byte, buffer int, storeTimeout time.Duration) *Session {
	if buffer < 1 {
		buffer = 1
	}
	if storeTimeout <= 0 {
		storeTimeout = 2 * time.Second
	}
	id := uuid.New()
	return &Session{
		ID:           id,
		Actions:      make(chan Action, buffer),
		Done:         make(chan struct{}),
		send:         send,
		engine:       engine,
		recorder:     rec,
		storeTimeout: storeTimeout,
		log:          slog.With("tag", "session", "session", id.String()),
	}
}

// Submit queues an action, blocking while the buffer is full. It fails once
// the loop has stopped.
func (s *Session) Submit(a Action) error {
	select {
	case s.Actions <- a:
		return nil
	case <-s.Done:
		return ErrSessionClosed
	}
}

// Run processes actions until Actions is closed or ctx is cancelled.
func (s *Session) Run(ctx context.Context) {
	defer close(s.Done)

	s.store(ctx, func(ctx context.Context) error {
		return s.recorder.InsertSession(ctx, storage.SessionRecord{ID: s.ID, UserID: s.userID})
	})
	s.sendJSON(WelcomeMsg{Type: TypeWelcome, SessionID: s.ID.String()})

	defer s.store(ctx, func(ctx context.Context) error {
		return s.recorder.CloseSession(ctx, s.ID)
	})

	for {
		select {
		case <-ctx.Done():
			s.log.Info("shutdown signal received, stopping")
			return
		case action, ok := <-s.Actions:
			if !ok {
				s.log.Info("client gone, session closed", "plays", s.seq)
				return
			}
			switch action.Type {
			case ActionHello:
				s.handleHello(ctx, action)
			case ActionPlay:
				s.handlePlay(ctx, action.Play, action.Raw)
			case ActionScreen:
				s.log.Debug("screen changed", "screen", action.Screen)
			}
		}
	}
}

func (s *Session) handleHello(ctx context.Context, a Action) {
	if a.UserID != "" {
		s.userID = a.UserID
	}
	s.log.Info("client hello", "name", a.ClientName, "version", a.ClientVersion)
	s.store(ctx, func(ctx context.Context) error {
		return s.recorder.InsertSession(ctx, storage.SessionRecord{
			ID:            s.ID,
			ClientName:    a.ClientName,
			ClientVersion: a.ClientVersion,
			UserID:        s.userID,
		})
	})
}

func (s *Session) handlePlay(ctx context.Context, play balatro.Play, raw json.RawMessage) {
	s.seq++
	rec := storage.ScoreRecord{SessionID: s.ID, Play: raw}
	if play.PokerHand != nil {
		rec.HandKind = play.PokerHand.Kind.String()
	}

	if err := play.Validate(); err != nil {
		rec.ErrorKind = ErrorKindInvalidPlay
		s.log.Warn("invalid play snapshot", "seq", s.seq, "error", err)
		s.sendJSON(ScoreErrorMsg{Type: TypeScoreError, Seq: s.seq, Kind: rec.ErrorKind, Message: err.Error()})
		s.store(ctx, func(ctx context.Context) error { return s.recorder.InsertScore(ctx, rec) })
		return
	}

	res, err := s.engine.Score(play.WithHandDefaults())
	if err != nil {
		rec.ErrorKind = scoring.ErrorKind(err)
		s.log.Warn("scoring failed", "seq", s.seq, "kind", rec.ErrorKind, "error", err)
		s.sendJSON(ScoreErrorMsg{Type: TypeScoreError, Seq: s.seq, Kind: rec.ErrorKind, Message: err.Error()})
	} else {
		rec.Chips, rec.Mult, rec.Total = res.Chips, res.Mult, res.Total
		rec.Unmodeled = len(res.Unmodeled)
		s.log.Info("hand scored", "seq", s.seq, "kind", res.Kind, "chips", res.Chips, "mult", res.Mult, "total", res.Total)
		s.sendJSON(ScoreMsg{Type: TypeScore, Seq: s.seq, Result: res})
	}
	s.store(ctx, func(ctx context.Context) error { return s.recorder.InsertScore(ctx, rec) })
}

// store runs one storage call under the per-write timeout. It survives
// cancellation of ctx so the final writes of a shutting-down session land.
func (s *Session) store(ctx context.Context, fn func(context.Context) error) {
	if s.recorder == nil {
		return
	}
	wctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.storeTimeout)
	defer cancel()
	if err := fn(wctx); err != nil {
		s.log.Error("storage write failed", "error", err)
	}
}

func (s *Session) sendJSON(msg any) {
	data, err := json.Marshal(msg)
	if err != nil {
		s.log.Error("marshaling message", "error", err)
		return
	}
	wsutil.SafeSend(s.send, data)
}

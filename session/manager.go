package session

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/HeadedBranch/auto-balatro/config"
	"github.com/HeadedBranch/auto-balatro/scoring"
)

// Manager starts session loops and tracks the live ones.
type Manager struct {
	ctx      context.Context
	cfg      *config.Config
	engine   *scoring.Engine
	recorder Recorder

	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
	wg       sync.WaitGroup
}

// NewManager creates a manager whose sessions stop when ctx is cancelled.
// rec may be nil to disable persistence.
func NewManager(ctx context.Context, cfg *config.Config, rec Recorder) *Manager {
	return &Manager{
		ctx:      ctx,
		cfg:      cfg,
		engine:   scoring.NewEngine(scoring.Options{ApproximateUnmodeled: cfg.ApproximateUnmodeled}),
		recorder: rec,
		sessions: make(map[uuid.UUID]*Session),
	}
}

// Engine returns the shared scoring engine.
func (m *Manager) Engine() *scoring.Engine { return m.engine }

// Start creates a session writing to send and runs its loop in a new
// goroutine. userID may be empty for unauthenticated clients.
func (m *Manager) Start(send chan []byte, userID string) *Session {
	s := New(m.engine, m.recorder, send, m.cfg.SnapshotBuffer, m.cfg.StoreTimeout())
	s.userID = userID

	m.mu.Lock()
	m.sessions[s.ID] = s
	n := len(m.sessions)
	m.mu.Unlock()
	slog.Info("session started", "tag", "session", "session", s.ID.String(), "active", n)

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		s.Run(m.ctx)
		m.mu.Lock()
		delete(m.sessions, s.ID)
		m.mu.Unlock()
	}()
	return s
}

// Live reports whether the session with id is still running.
func (m *Manager) Live(id uuid.UUID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.sessions[id]
	return ok
}

// Active returns the number of live sessions.
func (m *Manager) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Wait blocks until every started session has stopped.
func (m *Manager) Wait() {
	m.wg.Wait()
}

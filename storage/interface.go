package storage

import (
	"context"

	"github.com/google/uuid"
)

// HistoryStore abstracts persistence for sessions and score history.
// Implementations can be swapped for testing (mocks) or different backends.
type HistoryStore interface {
	// Read
	ListScoresBySession(ctx context.Context, sessionID uuid.UUID) ([]ScoreRecord, error)
	ListRecentScores(ctx context.Context, limit int) ([]ScoreRecord, error)
	SessionExists(ctx context.Context, id uuid.UUID) (bool, error)
	GetStats(ctx context.Context) (*Stats, error)

	// Write
	InsertSession(ctx context.Context, rec SessionRecord) error
	CloseSession(ctx context.Context, id uuid.UUID) error
	InsertScore(ctx context.Context, rec ScoreRecord) error

	// Lifecycle
	Close()
}

// Ensure *Store implements HistoryStore at compile time.
var _ HistoryStore = (*Store)(nil)

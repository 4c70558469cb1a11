package storage

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS game_session (
	id          UUID PRIMARY KEY,
	started_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	ended_at    TIMESTAMPTZ,
	client_name TEXT NOT NULL DEFAULT '',
	client_version TEXT NOT NULL DEFAULT '',
	user_id     TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_game_session_user_id ON game_session(user_id);
CREATE TABLE IF NOT EXISTS score_history (
	id          UUID PRIMARY KEY,
	session_id  UUID REFERENCES game_session(id),
	scored_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
	hand_kind   TEXT NOT NULL DEFAULT '',
	chips       DOUBLE PRECISION NOT NULL DEFAULT 0,
	mult        DOUBLE PRECISION NOT NULL DEFAULT 0,
	total       DOUBLE PRECISION NOT NULL DEFAULT 0,
	error_kind  TEXT NOT NULL DEFAULT '',
	unmodeled   INT NOT NULL DEFAULT 0,
	play        JSONB NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_score_history_session_id ON score_history(session_id);
CREATE INDEX IF NOT EXISTS idx_score_history_scored_at ON score_history(scored_at DESC);
`

// Store persists sessions and score evaluations.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore connects to Postgres and ensures the tables exist.
// If databaseURL is empty, NewStore returns (nil, nil) and no persistence occurs.
// A nil *Store is usable: writes are dropped and reads return empty results.
func NewStore(ctx context.Context, databaseURL string) (*Store, error) {
	if databaseURL == "" {
		return nil, nil
	}
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	if _, err := pool.Exec(ctx, createTableSQL); err != nil {
		pool.Close()
		return nil, err
	}
	slog.Info("connected to Postgres", "tag", "storage")
	return &Store{pool: pool}, nil
}

// Close closes the connection pool.
func (s *Store) Close() {
	if s != nil && s.pool != nil {
		s.pool.Close()
	}
}

// SessionRecord describes one connected game.
type SessionRecord struct {
	ID            uuid.UUID `json:"id"`
	ClientName    string    `json:"client_name"`
	ClientVersion string    `json:"client_version"`
	UserID        string    `json:"user_id,omitempty"`
}

// InsertSession records a newly connected game.
func (s *Store) InsertSession(ctx context.Context, rec SessionRecord) error {
	if s == nil || s.pool == nil {
		return nil
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO game_session (id, client_name, client_version, user_id)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET client_name = EXCLUDED.client_name, client_version = EXCLUDED.client_version`,
		rec.ID, rec.ClientName, rec.ClientVersion, rec.UserID)
	return err
}

// CloseSession stamps ended_at on a session.
func (s *Store) CloseSession(ctx context.Context, id uuid.UUID) error {
	if s == nil || s.pool == nil {
		return nil
	}
	_, err := s.pool.Exec(ctx, `UPDATE game_session SET ended_at = now() WHERE id = $1 AND ended_at IS NULL`, id)
	return err
}

// ScoreRecord is one evaluation, successful or not. ErrorKind is empty on
// success. SessionID is uuid.Nil for ad-hoc scoring through the HTTP API.
type ScoreRecord struct {
	ID        uuid.UUID       `json:"id"`
	SessionID uuid.UUID       `json:"session_id"`
	ScoredAt  string          `json:"scored_at"` // ISO8601
	HandKind  string          `json:"hand_kind"`
	Chips     float64         `json:"chips"`
	Mult      float64         `json:"mult"`
	Total     float64         `json:"total"`
	ErrorKind string          `json:"error_kind,omitempty"`
	Unmodeled int             `json:"unmodeled"`
	Play      json.RawMessage `json:"play,omitempty"`
}

// InsertScore records one evaluation. A zero ID is replaced with a fresh one.
func (s *Store) InsertScore(ctx context.Context, rec ScoreRecord) error {
	if s == nil || s.pool == nil {
		return nil
	}
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	var session *uuid.UUID
	if rec.SessionID != uuid.Nil {
		session = &rec.SessionID
	}
	play := rec.Play
	if len(play) == 0 {
		play = json.RawMessage("{}")
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO score_history (id, session_id, hand_kind, chips, mult, total, error_kind, unmodeled, play)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		rec.ID, session, rec.HandKind, rec.Chips, rec.Mult, rec.Total, rec.ErrorKind, rec.Unmodeled, []byte(play))
	return err
}

const scoreColumns = `id, session_id, scored_at, hand_kind, chips, mult, total, error_kind, unmodeled, play`

// ListScoresBySession returns a session's evaluations, oldest first.
func (s *Store) ListScoresBySession(ctx context.Context, sessionID uuid.UUID) ([]ScoreRecord, error) {
	if s == nil || s.pool == nil {
		return []ScoreRecord{}, nil
	}
	rows, err := s.pool.Query(ctx, `
		SELECT `+scoreColumns+`
		FROM score_history
		WHERE session_id = $1
		ORDER BY scored_at ASC`,
		sessionID)
	if err != nil {
		return nil, err
	}
	return collectScores(rows)
}

// ListRecentScores returns the latest evaluations across all sessions.
func (s *Store) ListRecentScores(ctx context.Context, limit int) ([]ScoreRecord, error) {
	if s == nil || s.pool == nil {
		return []ScoreRecord{}, nil
	}
	rows, err := s.pool.Query(ctx, `
		SELECT `+scoreColumns+`
		FROM score_history
		ORDER BY scored_at DESC
		LIMIT $1`,
		clampLimit(limit))
	if err != nil {
		return nil, err
	}
	return collectScores(rows)
}

func collectScores(rows pgx.Rows) ([]ScoreRecord, error) {
	defer rows.Close()
	out := []ScoreRecord{}
	for rows.Next() {
		var r ScoreRecord
		var session *uuid.UUID
		var scoredAt time.Time
		var play []byte
		if err := rows.Scan(&r.ID, &session, &scoredAt, &r.HandKind, &r.Chips, &r.Mult, &r.Total, &r.ErrorKind, &r.Unmodeled, &play); err != nil {
			return nil, err
		}
		if session != nil {
			r.SessionID = *session
		}
		r.ScoredAt = scoredAt.UTC().Format(time.RFC3339)
		r.Play = play
		out = append(out, r)
	}
	return out, rows.Err()
}

// clampLimit bounds a caller-supplied page size.
func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultListLimit
	}
	return min(limit, maxListLimit)
}

// KindStats aggregates successful evaluations of one poker hand kind.
type KindStats struct {
	HandKind string  `json:"hand_kind"`
	Count    int     `json:"count"`
	AvgTotal float64 `json:"avg_total"`
	MaxTotal float64 `json:"max_total"`
}

// Stats summarizes the score history.
type Stats struct {
	Sessions    int         `json:"sessions"`
	Evaluations int         `json:"evaluations"`
	Failures    int         `json:"failures"`
	ByKind      []KindStats `json:"by_kind"`
}

// GetStats returns aggregate counts and per-kind totals.
func (s *Store) GetStats(ctx context.Context) (*Stats, error) {
	out := &Stats{ByKind: []KindStats{}}
	if s == nil || s.pool == nil {
		return out, nil
	}
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM game_session`).Scan(&out.Sessions); err != nil {
		return nil, err
	}
	if err := s.pool.QueryRow(ctx, `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE error_kind <> '')
		FROM score_history`).Scan(&out.Evaluations, &out.Failures); err != nil {
		return nil, err
	}
	rows, err := s.pool.Query(ctx, `
		SELECT hand_kind, COUNT(*), AVG(total), MAX(total)
		FROM score_history
		WHERE error_kind = '' AND hand_kind <> ''
		GROUP BY hand_kind
		ORDER BY COUNT(*) DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var k KindStats
		if err := rows.Scan(&k.HandKind, &k.Count, &k.AvgTotal, &k.MaxTotal); err != nil {
			return nil, err
		}
		out.ByKind = append(out.ByKind, k)
	}
	return out, rows.Err()
}

// SessionExists reports whether a session row exists.
func (s *Store) SessionExists(ctx context.Context, id uuid.UUID) (bool, error) {
	if s == nil || s.pool == nil {
		return false, nil
	}
	var one int
	err := s.pool.QueryRow(ctx, `SELECT 1 FROM game_session WHERE id = $1`, id).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

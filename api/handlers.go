package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/HeadedBranch/auto-balatro/auth"
	"github.com/HeadedBranch/auto-balatro/balatro"
	"github.com/HeadedBranch/auto-balatro/scoring"
	"github.com/HeadedBranch/auto-balatro/storage"
)

// maxPlayBody bounds POST /api/score bodies.
const maxPlayBody = 1 << 20

// SessionTracker reports live websocket sessions.
type SessionTracker interface {
	Active() int
	Live(id uuid.UUID) bool
}

// Handler holds dependencies for API handlers.
type Handler struct {
	HistoryStore storage.HistoryStore
	Engine       *scoring.Engine
	Sessions     SessionTracker
	// Verifier guards every route except health; nil disables auth.
	Verifier *auth.Verifier
}

// NewHandler creates a new API handler with the given dependencies.
func NewHandler(historyStore storage.HistoryStore, engine *scoring.Engine, sessions SessionTracker, verifier *auth.Verifier) *Handler {
	return &Handler{
		HistoryStore: historyStore,
		Engine:       engine,
		Sessions:     sessions,
		Verifier:     verifier,
	}
}

// Routes mounts the API under the returned router.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(CORS)
	r.Get("/health", h.Health)
	r.Group(func(r chi.Router) {
		r.Use(h.requireAuth)
		r.Post("/score", h.Score)
		r.Get("/sessions/{id}/scores", h.SessionScores)
		r.Get("/scores/recent", h.RecentScores)
		r.Get("/stats", h.Stats)
	})
	return r
}

// CORS sets CORS headers and answers preflight requests.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.Verifier == nil {
			next.ServeHTTP(w, r)
			return
		}
		if _, err := h.Verifier.UserID(r); err != nil {
			slog.Debug("rejected API token", "tag", "api", "error", err)
			http.Error(w, "authorization required", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// HealthResponse is the JSON structure for /api/health.
type HealthResponse struct {
	Status   string `json:"status"`
	Sessions int    `json:"sessions"`
}

// Health reports liveness and the number of connected games.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{Status: "ok"}
	if h.Sessions != nil {
		resp.Sessions = h.Sessions.Active()
	}
	writeJSON(w, http.StatusOK, resp)
}

// ScoreErrorResponse is returned when a play cannot be scored.
type ScoreErrorResponse struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// Score scores an ad-hoc Play snapshot. Hands reported without chips and
// mult get level-table values.
func (h *Handler) Score(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}
	var play balatro.Play
	if err := json.Unmarshal(body, &play); err != nil {
		writeJSON(w, http.StatusBadRequest, ScoreErrorResponse{Kind: "invalid_play", Message: err.Error()})
		return
	}
	if err := play.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, ScoreErrorResponse{Kind: "invalid_play", Message: err.Error()})
		return
	}

	rec := storage.ScoreRecord{Play: body}
	if play.PokerHand != nil {
		rec.HandKind = play.PokerHand.Kind.String()
	}
	res, err := h.Engine.Score(play.WithHandDefaults())
	if err != nil {
		rec.ErrorKind = scoring.ErrorKind(err)
		h.record(r, rec)
		writeJSON(w, statusFor(err), ScoreErrorResponse{Kind: rec.ErrorKind, Message: err.Error()})
		return
	}
	rec.Chips, rec.Mult, rec.Total, rec.Unmodeled = res.Chips, res.Mult, res.Total, len(res.Unmodeled)
	h.record(r, rec)
	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) record(r *http.Request, rec storage.ScoreRecord) {
	if h.HistoryStore == nil {
		return
	}
	if err := h.HistoryStore.InsertScore(r.Context(), rec); err != nil {
		slog.Error("InsertScore failed", "tag", "api", "error", err)
	}
}

// statusFor maps engine errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, scoring.ErrMissingHandContext), errors.Is(err, scoring.ErrContractViolation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, scoring.ErrUnmodeledEffect):
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

// SessionScores lists the evaluations of one session. Unknown sessions
// are 404; a live session without stored rows yields an empty list.
func (h *Handler) SessionScores(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid session id", http.StatusBadRequest)
		return
	}
	live := h.Sessions != nil && h.Sessions.Live(id)
	list := []storage.ScoreRecord{}
	if h.HistoryStore == nil {
		if !live {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, list)
		return
	}

	exists, err := h.HistoryStore.SessionExists(r.Context(), id)
	if err != nil {
		slog.Error("SessionExists failed", "tag", "api", "error", err)
		http.Error(w, "failed to load scores", http.StatusInternalServerError)
		return
	}
	if !exists && !live {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}
	list, err = h.HistoryStore.ListScoresBySession(r.Context(), id)
	if err != nil {
		slog.Error("ListScoresBySession failed", "tag", "api", "error", err)
		http.Error(w, "failed to load scores", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// RecentScores lists the latest evaluations across sessions.
func (h *Handler) RecentScores(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	list := []storage.ScoreRecord{}
	if h.HistoryStore != nil {
		var err error
		list, err = h.HistoryStore.ListRecentScores(r.Context(), limit)
		if err != nil {
			slog.Error("ListRecentScores failed", "tag", "api", "error", err)
			http.Error(w, "failed to load scores", http.StatusInternalServerError)
			return
		}
	}
	writeJSON(w, http.StatusOK, list)
}

// Stats returns aggregate evaluation counts.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	stats := &storage.Stats{ByKind: []storage.KindStats{}}
	if h.HistoryStore != nil {
		var err error
		stats, err = h.HistoryStore.GetStats(r.Context())
		if err != nil {
			slog.Error("GetStats failed", "tag", "api", "error", err)
			http.Error(w, "failed to load stats", http.StatusInternalServerError)
			return
		}
	}
	writeJSON(w, http.StatusOK, stats)
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	defer r.Body.Close()
	var buf json.RawMessage
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxPlayBody))
	if err := dec.Decode(&buf); err != nil {
		return nil, err
	}
	return buf, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "tag", "api", "error", err)
	}
}

package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/tripscout/tripscout/internal/amadeus"
	"github.com/tripscout/tripscout/internal/suggest"
)

// Handlers holds the dependencies for all HTTP handlers.
type Handlers struct {
	engine SuggestionEngine
	log    *slog.Logger
}

// NewHandlers constructs Handlers with all required dependencies.
func NewHandlers(engine SuggestionEngine, log *slog.Logger) *Handlers {
	return &Handlers{engine: engine, log: log}
}

// writeJSON encodes v as JSON and writes it with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// SuggestDestinations handles POST /api/v1/suggestions.
// Unresolvable location → 400, no nearby airports → 404, upstream failure →
// 502. Individual failed search legs never surface here; they only shrink
// the result set.
func (h *Handlers) SuggestDestinations(w http.ResponseWriter, r *http.Request) {
	var req suggest.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.ApplyDefaults()
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.engine.Suggest(r.Context(), req)
	if err != nil {
		h.writeSuggestError(w, req, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// writeSuggestError maps engine failures to outward statuses.
func (h *Handlers) writeSuggestError(w http.ResponseWriter, req suggest.Request, err error) {
	var authErr *amadeus.AuthError
	var apiErr *amadeus.APIError

	switch {
	case errors.Is(err, suggest.ErrLocationNotFound):
		writeError(w, http.StatusBadRequest,
			"could not find location: "+req.StartingLocation+" - enter a valid UK postcode or city name")
	case errors.Is(err, suggest.ErrNoAirports):
		writeError(w, http.StatusNotFound, "no airports found near "+req.StartingLocation)
	case errors.As(err, &authErr):
		h.log.Error("amadeus authentication failed", "status", authErr.Status, "body", authErr.Body)
		writeError(w, http.StatusBadGateway, "flight search service unavailable")
	case errors.As(err, &apiErr):
		h.log.Error("amadeus request failed", "status", apiErr.Status, "err", err)
		writeError(w, http.StatusBadGateway, "flight search service unavailable")
	default:
		h.log.Error("suggestion search failed", "location", req.StartingLocation, "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

type dbPinger interface {
	Ping(ctx context.Context) error
}

type redisPinger interface {
	Ping(ctx context.Context) error
}

// HealthHandlerFunc returns an http.HandlerFunc that checks db and redis connectivity.
func HealthHandlerFunc(db dbPinger, redis redisPinger, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		status := http.StatusOK
		dbStatus := "ok"
		redisStatus := "ok"

		if err := db.Ping(ctx); err != nil {
			log.Error("health check: db ping failed", "err", err)
			dbStatus = "error"
			status = http.StatusServiceUnavailable
		}

		if err := redis.Ping(ctx); err != nil {
			log.Error("health check: redis ping failed", "err", err)
			redisStatus = "error"
			status = http.StatusServiceUnavailable
		}

		overall := "ok"
		if status != http.StatusOK {
			overall = "degraded"
		}

		writeJSON(w, status, map[string]string{
			"status": overall,
			"db":     dbStatus,
			"redis":  redisStatus,
		})
	}
}

package handlers

import (
	"net/http"
	"strconv"
	"time"

	"meditrack-api/tracker"
	"meditrack-api/tracker/entities"
)

// MaxRecentLogs caps the ?limit parameter on the side-effects listing
const MaxRecentLogs = 100

// ListSideEffects returns the most recent side-effect logs, newest
// first, with medication names resolved. Defaults to 10 entries.
func (h *Handler) ListSideEffects(w http.ResponseWriter, r *http.Request) {
	limit := tracker.RecentLogsDefault
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > MaxRecentLogs {
			h.RespondWithError(w, http.StatusBadRequest, "Invalid limit: must be between 1 and 100")
			return
		}
		limit = parsed
	}
	h.RespondWithJSON(w, http.StatusOK, h.registry.RecentSideEffects(limit))
}

// LogSideEffect records a side effect against an active medication
func (h *Handler) LogSideEffect(w http.ResponseWriter, r *http.Request) {
	var in entities.LogSideEffectInput
	if !h.decodeBody(w, r, &in) {
		return
	}

	entry, err := h.registry.LogSideEffect(in)
	if err != nil {
		h.respondWithOperationError(w, err)
		return
	}
	h.RespondWithJSON(w, http.StatusCreated, entry)
}

// PruneLogs removes side-effect and mood logs older than the retention window
func (h *Handler) PruneLogs(maxAgeDays int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		maxAge := time.Duration(maxAgeDays) * 24 * time.Hour
		result, err := h.registry.PruneOldLogs(maxAge)
		if err != nil {
			h.respondWithOperationError(w, err)
			return
		}
		h.RespondWithJSON(w, http.StatusOK, result)
	}
}

// ListMoods returns all mood logs
func (h *Handler) ListMoods(w http.ResponseWriter, r *http.Request) {
	h.RespondWithJSON(w, http.StatusOK, h.store.MoodLogs())
}

// LogMood records a mood entry
func (h *Handler) LogMood(w http.ResponseWriter, r *http.Request) {
	var in entities.LogMoodInput
	if !h.decodeBody(w, r, &in) {
		return
	}

	entry, err := h.registry.LogMood(in)
	if err != nil {
		h.respondWithOperationError(w, err)
		return
	}
	h.RespondWithJSON(w, http.StatusCreated, entry)
}

// Package health provides health checking for the meditrack API.
package health

import (
	"net/http"
	"time"

	"meditrack-api/interfaces"
)

// Compile-time check to ensure HealthCheckerImpl implements HealthChecker
var _ interfaces.HealthChecker = (*HealthCheckerImpl)(nil)

// HealthCheckerImpl reports health from the store's persistence state
type HealthCheckerImpl struct {
	store     interfaces.DataStore
	startTime time.Time
}

// NewHealthChecker creates a health checker with injected dependencies
func NewHealthChecker(store interfaces.DataStore) *HealthCheckerImpl {
	return &HealthCheckerImpl{
		store:     store,
		startTime: time.Now(),
	}
}

// HealthCheck returns the current health status. Unhealthy when the
// document never loaded; degraded while saves are failing, since data
// is still served from memory.
func (h *HealthCheckerImpl) HealthCheck() (status string, details map[string]any, httpStatus int) {
	loadedAt := h.store.LoadedAt()
	lastSaved := h.store.LastSaved()
	saveErr := h.store.LastSaveError()

	switch {
	case loadedAt.IsZero():
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable
	case saveErr != nil:
		status = "degraded"
		httpStatus = http.StatusOK
	default:
		status = "healthy"
		httpStatus = http.StatusOK
	}

	var active, archived int
	for _, med := range h.store.Medications() {
		if med.IsActive() {
			active++
		} else {
			archived++
		}
	}

	details = map[string]any{
		"data_file":            h.store.Path(),
		"loaded_at":            formatTime(loadedAt),
		"last_saved":           formatTime(lastSaved),
		"uptime_seconds":       int(time.Since(h.startTime).Seconds()),
		"medications_active":   active,
		"medications_archived": archived,
		"side_effect_logs":     len(h.store.SideEffectLogs()),
		"mood_logs":            len(h.store.MoodLogs()),
	}
	if saveErr != nil {
		details["last_save_error"] = saveErr.Error()
	}

	return status, details, httpStatus
}

// formatTime renders a timestamp, "never" for the zero value
func formatTime(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return t.Format(time.RFC3339)
}

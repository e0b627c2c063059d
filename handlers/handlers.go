// Package handlers provides HTTP request handlers for the meditrack API
// endpoints, with dependency injection of the store and registry.
package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"meditrack-api/interfaces"
	"meditrack-api/logging"
	"meditrack-api/tracker"
)

// Handler carries the injected dependencies for all endpoints
type Handler struct {
	store    interfaces.DataStore
	registry interfaces.Registry
	health   interfaces.HealthChecker
}

// NewHandler creates a handler with injected dependencies
func NewHandler(store interfaces.DataStore, registry interfaces.Registry, health interfaces.HealthChecker) *Handler {
	return &Handler{
		store:    store,
		registry: registry,
		health:   health,
	}
}

// RespondWithJSON writes a JSON response
func (h *Handler) RespondWithJSON(w http.ResponseWriter, code int, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		logging.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Last-Modified", time.Now().UTC().Format(http.TimeFormat))
	w.WriteHeader(code)
	w.Write(data)
}

// RespondWithError writes a JSON error response
func (h *Handler) RespondWithError(w http.ResponseWriter, code int, message string) {
	h.RespondWithJSON(w, code, map[string]any{
		"error":   http.StatusText(code),
		"message": message,
		"code":    code,
	})
}

// respondWithOperationError maps registry errors to HTTP status codes
func (h *Handler) respondWithOperationError(w http.ResponseWriter, err error) {
	var validationErr *tracker.ValidationError
	var notFoundErr *tracker.NotFoundError
	var conflictErr *tracker.ConflictError

	switch {
	case errors.As(err, &validationErr):
		h.RespondWithError(w, http.StatusBadRequest, validationErr.Message)
	case errors.As(err, &notFoundErr):
		h.RespondWithError(w, http.StatusNotFound, notFoundErr.Error())
	case errors.As(err, &conflictErr):
		h.RespondWithError(w, http.StatusConflict, conflictErr.Message)
	default:
		logging.Error("Operation failed", "error", err)
		h.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// decodeBody decodes a JSON request body into dst
func (h *Handler) decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	defer io.Copy(io.Discard, r.Body)

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		h.RespondWithError(w, http.StatusBadRequest, "Invalid JSON body: "+err.Error())
		return false
	}
	return true
}

// HealthCheck returns server health information
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	status, details, httpStatus := h.health.HealthCheck()
	details["status"] = status
	h.RespondWithJSON(w, httpStatus, details)
}

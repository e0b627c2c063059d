package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"meditrack-api/logging"
)

// Dashboard returns the overview aggregates
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	h.RespondWithJSON(w, http.StatusOK, h.registry.Dashboard())
}

// Export offers the full document as a JSON download
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	export := h.store.Export()

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		logging.Error("Failed to marshal export", "error", err)
		h.RespondWithError(w, http.StatusInternalServerError, "Failed to build export")
		return
	}

	filename := fmt.Sprintf("meditrack_data_%s.json", export.ExportDate.Format("20060102_150405"))
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Last-Modified", time.Now().UTC().Format(http.TimeFormat))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"meditrack-api/tracker/entities"
)

// ListMedications returns all medications, optionally filtered by
// ?status=active or ?status=archived
func (h *Handler) ListMedications(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status != "" && status != entities.StatusActive && status != entities.StatusArchived {
		h.RespondWithError(w, http.StatusBadRequest, "Invalid status filter: must be active or archived")
		return
	}

	medications := h.store.Medications()
	if status == "" {
		h.RespondWithJSON(w, http.StatusOK, medications)
		return
	}

	filtered := make([]entities.Medication, 0, len(medications))
	for _, med := range medications {
		if med.Status == status {
			filtered = append(filtered, med)
		}
	}
	h.RespondWithJSON(w, http.StatusOK, filtered)
}

// GetMedication returns one medication by id
func (h *Handler) GetMedication(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	med, ok := h.store.MedicationByID(id)
	if !ok {
		h.RespondWithError(w, http.StatusNotFound, "Medication not found")
		return
	}
	h.RespondWithJSON(w, http.StatusOK, med)
}

// SearchMedications searches medications by name, accent-insensitively.
// Always returns 200 with a results array, empty when nothing matches.
func (h *Handler) SearchMedications(w http.ResponseWriter, r *http.Request) {
	term := chi.URLParam(r, "name")
	if term == "" {
		h.RespondWithError(w, http.StatusBadRequest, "Missing search term")
		return
	}
	h.RespondWithJSON(w, http.StatusOK, h.registry.SearchMedications(term))
}

// AddMedication creates a new medication from the request body
func (h *Handler) AddMedication(w http.ResponseWriter, r *http.Request) {
	var in entities.AddMedicationInput
	if !h.decodeBody(w, r, &in) {
		return
	}

	med, err := h.registry.AddMedication(in)
	if err != nil {
		h.respondWithOperationError(w, err)
		return
	}
	h.RespondWithJSON(w, http.StatusCreated, med)
}

// ArchiveMedication soft-deactivates a medication; a reason is required
func (h *Handler) ArchiveMedication(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var in entities.ArchiveMedicationInput
	if !h.decodeBody(w, r, &in) {
		return
	}

	med, err := h.registry.ArchiveMedication(id, in.Reason)
	if err != nil {
		h.respondWithOperationError(w, err)
		return
	}
	h.RespondWithJSON(w, http.StatusOK, med)
}

// ReactivateMedication reverses an archive
func (h *Handler) ReactivateMedication(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	med, err := h.registry.ReactivateMedication(id)
	if err != nil {
		h.respondWithOperationError(w, err)
		return
	}
	h.RespondWithJSON(w, http.StatusOK, med)
}

// DeleteMedication removes a medication and all its side-effect logs
func (h *Handler) DeleteMedication(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	removedLogs, err := h.registry.DeleteMedication(id)
	if err != nil {
		h.respondWithOperationError(w, err)
		return
	}
	h.RespondWithJSON(w, http.StatusOK, map[string]any{
		"deleted":     id,
		"removedLogs": removedLogs,
	})
}

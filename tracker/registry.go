// Package tracker implements the record-management operations over the
// persisted medication document: adding and archiving medications,
// logging side effects and moods, pruning old logs, and computing the
// dashboard aggregates.
package tracker

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"meditrack-api/interfaces"
	"meditrack-api/logging"
	"meditrack-api/tracker/entities"
)

// MaxDosesPerDay caps how many dose times a medication can carry
const MaxDosesPerDay = 8

// Compile-time check to ensure Registry implements interfaces.Registry
var _ interfaces.Registry = (*Registry)(nil)

// Registry performs all mutations and queries through the injected store
type Registry struct {
	store     interfaces.DataStore
	validator interfaces.DataValidator

	// overridable for tests
	now   func() time.Time
	newID func() string
}

// NewRegistry creates a registry with injected dependencies
func NewRegistry(store interfaces.DataStore, validator interfaces.DataValidator) *Registry {
	return &Registry{
		store:     store,
		validator: validator,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// AddMedication validates the form input and appends a new active medication
func (r *Registry) AddMedication(in entities.AddMedicationInput) (entities.Medication, error) {
	name := strings.TrimSpace(in.Name)
	dosage := strings.TrimSpace(in.Dosage)

	if name == "" {
		return entities.Medication{}, validationErrorf("medication name is required")
	}
	if dosage == "" {
		return entities.Medication{}, validationErrorf("dosage is required")
	}
	for _, field := range []string{name, dosage, in.Notes} {
		if err := r.validator.ValidateInput(field); err != nil {
			return entities.Medication{}, &ValidationError{Message: err.Error()}
		}
	}
	if in.DosesPerDay < 1 || in.DosesPerDay > MaxDosesPerDay {
		return entities.Medication{}, validationErrorf("doses per day must be between 1 and %d", MaxDosesPerDay)
	}
	if len(in.Times) != in.DosesPerDay {
		return entities.Medication{}, validationErrorf("expected %d dose times, got %d", in.DosesPerDay, len(in.Times))
	}
	times := make([]string, len(in.Times))
	for i, t := range in.Times {
		if err := r.validator.ValidateDoseTime(t); err != nil {
			return entities.Medication{}, &ValidationError{Message: err.Error()}
		}
		times[i] = t
	}
	sort.Strings(times)

	med := entities.Medication{
		ID:          r.newID(),
		Name:        name,
		Dosage:      dosage,
		DosesPerDay: in.DosesPerDay,
		Frequency:   frequencyLabel(in.DosesPerDay),
		Times:       times,
		Notes:       strings.TrimSpace(in.Notes),
		Status:      entities.StatusActive,
		CreatedAt:   r.now(),
	}

	if err := r.validator.ValidateMedication(&med); err != nil {
		return entities.Medication{}, &ValidationError{Message: err.Error()}
	}

	err := r.store.Mutate(func(doc *entities.Document) error {
		doc.Medications = append(doc.Medications, med)
		return nil
	})
	if err != nil {
		return entities.Medication{}, err
	}

	logging.Info("Medication added", "id", med.ID, "name", med.Name, "doses_per_day", med.DosesPerDay)
	return med, nil
}

// frequencyLabel derives the human-readable frequency from the dose count
func frequencyLabel(dosesPerDay int) string {
	if dosesPerDay == 1 {
		return "1 time daily"
	}
	return fmt.Sprintf("%d times daily", dosesPerDay)
}

// ArchiveMedication soft-deactivates a medication. A non-empty reason is required.
func (r *Registry) ArchiveMedication(id string, reason string) (entities.Medication, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return entities.Medication{}, validationErrorf("archive reason is required")
	}
	if err := r.validator.ValidateInput(reason); err != nil {
		return entities.Medication{}, &ValidationError{Message: err.Error()}
	}

	var archived entities.Medication
	err := r.store.Mutate(func(doc *entities.Document) error {
		for i := range doc.Medications {
			if doc.Medications[i].ID != id {
				continue
			}
			if !doc.Medications[i].IsActive() {
				return &ConflictError{Message: "medication is already archived"}
			}
			at := r.now()
			doc.Medications[i].Status = entities.StatusArchived
			doc.Medications[i].ArchiveReason = reason
			doc.Medications[i].ArchivedAt = &at
			archived = doc.Medications[i]
			return nil
		}
		return &NotFoundError{Kind: "medication", ID: id}
	})
	if err != nil {
		return entities.Medication{}, err
	}

	logging.Info("Medication archived", "id", id, "reason", reason)
	return archived, nil
}

// ReactivateMedication reverses an archive, clearing the reason and date
func (r *Registry) ReactivateMedication(id string) (entities.Medication, error) {
	var reactivated entities.Medication
	err := r.store.Mutate(func(doc *entities.Document) error {
		for i := range doc.Medications {
			if doc.Medications[i].ID != id {
				continue
			}
			if doc.Medications[i].IsActive() {
				return &ConflictError{Message: "medication is already active"}
			}
			doc.Medications[i].Status = entities.StatusActive
			doc.Medications[i].ArchiveReason = ""
			doc.Medications[i].ArchivedAt = nil
			reactivated = doc.Medications[i]
			return nil
		}
		return &NotFoundError{Kind: "medication", ID: id}
	})
	if err != nil {
		return entities.Medication{}, err
	}

	logging.Info("Medication reactivated", "id", id)
	return reactivated, nil
}

// DeleteMedication removes a medication and cascades to all side-effect
// logs referencing it. Returns how many logs were removed.
func (r *Registry) DeleteMedication(id string) (int, error) {
	removedLogs := 0
	err := r.store.Mutate(func(doc *entities.Document) error {
		idx := -1
		for i := range doc.Medications {
			if doc.Medications[i].ID == id {
				idx = i
				break
			}
		}
		if idx == -1 {
			return &NotFoundError{Kind: "medication", ID: id}
		}
		doc.Medications = append(doc.Medications[:idx], doc.Medications[idx+1:]...)

		kept := doc.SideEffectLogs[:0]
		for _, log := range doc.SideEffectLogs {
			if log.MedicationID == id {
				removedLogs++
				continue
			}
			kept = append(kept, log)
		}
		doc.SideEffectLogs = kept
		return nil
	})
	if err != nil {
		return 0, err
	}

	logging.Info("Medication deleted", "id", id, "cascaded_logs", removedLogs)
	return removedLogs, nil
}

// LogSideEffect records a side effect against an active medication
func (r *Registry) LogSideEffect(in entities.LogSideEffectInput) (entities.SideEffectLog, error) {
	effect := strings.TrimSpace(in.Effect)
	if effect == "" {
		return entities.SideEffectLog{}, validationErrorf("side effect description is required")
	}
	for _, field := range []string{effect, in.Notes} {
		if err := r.validator.ValidateInput(field); err != nil {
			return entities.SideEffectLog{}, &ValidationError{Message: err.Error()}
		}
	}
	if err := r.validator.ValidateSeverity(in.Severity); err != nil {
		return entities.SideEffectLog{}, &ValidationError{Message: err.Error()}
	}

	entry := entities.SideEffectLog{
		ID:           r.newID(),
		MedicationID: in.MedicationID,
		Effect:       effect,
		Severity:     in.Severity,
		Notes:        strings.TrimSpace(in.Notes),
		Timestamp:    r.now(),
	}

	err := r.store.Mutate(func(doc *entities.Document) error {
		med, ok := doc.MedicationByID(in.MedicationID)
		if !ok {
			return &NotFoundError{Kind: "medication", ID: in.MedicationID}
		}
		if !med.IsActive() {
			return &ConflictError{Message: "side effects can only be logged for active medications"}
		}
		doc.SideEffectLogs = append(doc.SideEffectLogs, entry)
		return nil
	})
	if err != nil {
		return entities.SideEffectLog{}, err
	}

	logging.Info("Side effect logged", "id", entry.ID, "medication_id", entry.MedicationID, "severity", entry.Severity)
	return entry, nil
}

// LogMood records a mood entry
func (r *Registry) LogMood(in entities.LogMoodInput) (entities.MoodLog, error) {
	if err := r.validator.ValidateMoodScore(in.Score); err != nil {
		return entities.MoodLog{}, &ValidationError{Message: err.Error()}
	}
	if err := r.validator.ValidateInput(in.Notes); err != nil {
		return entities.MoodLog{}, &ValidationError{Message: err.Error()}
	}

	entry := entities.MoodLog{
		ID:        r.newID(),
		Score:     in.Score,
		Notes:     strings.TrimSpace(in.Notes),
		Timestamp: r.now(),
	}

	err := r.store.Mutate(func(doc *entities.Document) error {
		doc.MoodLogs = append(doc.MoodLogs, entry)
		return nil
	})
	if err != nil {
		return entities.MoodLog{}, err
	}
	return entry, nil
}

// PruneOldLogs removes side-effect and mood logs strictly older than
// maxAge. Logs exactly at the cutoff are kept.
func (r *Registry) PruneOldLogs(maxAge time.Duration) (entities.PruneResult, error) {
	cutoff := r.now().Add(-maxAge)
	result := entities.PruneResult{Cutoff: cutoff}

	err := r.store.Mutate(func(doc *entities.Document) error {
		keptEffects := doc.SideEffectLogs[:0]
		for _, log := range doc.SideEffectLogs {
			if log.Timestamp.Before(cutoff) {
				result.SideEffectsRemoved++
				continue
			}
			keptEffects = append(keptEffects, log)
		}
		doc.SideEffectLogs = keptEffects

		keptMoods := doc.MoodLogs[:0]
		for _, log := range doc.MoodLogs {
			if log.Timestamp.Before(cutoff) {
				result.MoodLogsRemoved++
				continue
			}
			keptMoods = append(keptMoods, log)
		}
		doc.MoodLogs = keptMoods
		return nil
	})
	if err != nil {
		return entities.PruneResult{}, err
	}

	if result.SideEffectsRemoved > 0 || result.MoodLogsRemoved > 0 {
		logging.Info("Old logs pruned",
			"side_effects_removed", result.SideEffectsRemoved,
			"mood_logs_removed", result.MoodLogsRemoved,
			"cutoff", cutoff.Format(time.RFC3339))
	}
	return result, nil
}

package tracker

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"meditrack-api/logging"
	"meditrack-api/store"
	"meditrack-api/tracker/entities"
	"meditrack-api/validation"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	logging.InitLogger("")

	s := store.NewFileStore(filepath.Join(t.TempDir(), "meditrack.json"))
	if err := s.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	r := NewRegistry(s, validation.NewDataValidator())
	seq := 0
	r.newID = func() string {
		seq++
		return fmt.Sprintf("id-%04d", seq)
	}
	return r
}

func validInput() entities.AddMedicationInput {
	return entities.AddMedicationInput{
		Name:        "Aspirin",
		Dosage:      "100mg",
		DosesPerDay: 2,
		Times:       []string{"20:00", "08:00"},
		Notes:       "Take with food",
	}
}

func TestAddMedicationRoundTrip(t *testing.T) {
	r := newTestRegistry(t)

	med, err := r.AddMedication(validInput())
	if err != nil {
		t.Fatalf("AddMedication failed: %v", err)
	}

	got, ok := r.store.MedicationByID(med.ID)
	if !ok {
		t.Fatal("Added medication not found in store")
	}
	if got.Name != "Aspirin" || got.Dosage != "100mg" || got.Notes != "Take with food" {
		t.Errorf("Read-back fields differ: %+v", got)
	}
	if got.Status != entities.StatusActive {
		t.Errorf("Expected active status, got %s", got.Status)
	}
	if got.Frequency != "2 times daily" {
		t.Errorf("Expected frequency label '2 times daily', got %q", got.Frequency)
	}
	// Times are sorted on the way in
	if got.Times[0] != "08:00" || got.Times[1] != "20:00" {
		t.Errorf("Expected sorted times, got %v", got.Times)
	}
	if got.CreatedAt.IsZero() {
		t.Error("Expected CreatedAt to be set")
	}
}

func TestAddMedicationValidation(t *testing.T) {
	r := newTestRegistry(t)

	tests := []struct {
		name   string
		modify func(*entities.AddMedicationInput)
	}{
		{"empty name", func(in *entities.AddMedicationInput) { in.Name = "  " }},
		{"empty dosage", func(in *entities.AddMedicationInput) { in.Dosage = "" }},
		{"zero doses", func(in *entities.AddMedicationInput) { in.DosesPerDay = 0; in.Times = nil }},
		{"too many doses", func(in *entities.AddMedicationInput) { in.DosesPerDay = 9 }},
		{"time count mismatch", func(in *entities.AddMedicationInput) { in.Times = []string{"08:00"} }},
		{"bad time format", func(in *entities.AddMedicationInput) { in.Times = []string{"8am", "20:00"} }},
		{"dangerous name", func(in *entities.AddMedicationInput) { in.Name = "<script>x</script>" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.modify(&in)

			_, err := r.AddMedication(in)
			var validationErr *ValidationError
			if !errors.As(err, &validationErr) {
				t.Errorf("Expected ValidationError, got %v", err)
			}
		})
	}

	if got := len(r.store.Medications()); got != 0 {
		t.Errorf("Expected no medications after rejected inputs, got %d", got)
	}
}

func TestArchiveRequiresReason(t *testing.T) {
	r := newTestRegistry(t)
	med, _ := r.AddMedication(validInput())

	_, err := r.ArchiveMedication(med.ID, "   ")
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("Expected ValidationError for empty reason, got %v", err)
	}

	got, _ := r.store.MedicationByID(med.ID)
	if !got.IsActive() {
		t.Error("Medication should still be active after rejected archive")
	}
}

func TestArchiveAndReactivate(t *testing.T) {
	r := newTestRegistry(t)
	med, _ := r.AddMedication(validInput())

	archived, err := r.ArchiveMedication(med.ID, "Course completed")
	if err != nil {
		t.Fatalf("ArchiveMedication failed: %v", err)
	}
	if archived.Status != entities.StatusArchived {
		t.Errorf("Expected archived status, got %s", archived.Status)
	}
	if archived.ArchiveReason != "Course completed" {
		t.Errorf("Expected reason to be stored, got %q", archived.ArchiveReason)
	}
	if archived.ArchivedAt == nil {
		t.Error("Expected ArchivedAt to be set")
	}

	// Archiving twice is a conflict
	_, err = r.ArchiveMedication(med.ID, "again")
	var conflictErr *ConflictError
	if !errors.As(err, &conflictErr) {
		t.Errorf("Expected ConflictError on double archive, got %v", err)
	}

	reactivated, err := r.ReactivateMedication(med.ID)
	if err != nil {
		t.Fatalf("ReactivateMedication failed: %v", err)
	}
	if !reactivated.IsActive() {
		t.Error("Expected medication to be active again")
	}
	if reactivated.ArchiveReason != "" || reactivated.ArchivedAt != nil {
		t.Error("Expected archive metadata to be cleared on reactivate")
	}
}

func TestArchiveUnknownMedication(t *testing.T) {
	r := newTestRegistry(t)

	_, err := r.ArchiveMedication("nope", "reason")
	var notFoundErr *NotFoundError
	if !errors.As(err, &notFoundErr) {
		t.Errorf("Expected NotFoundError, got %v", err)
	}
}

func TestDeleteCascadesToLogs(t *testing.T) {
	r := newTestRegistry(t)
	medA, _ := r.AddMedication(validInput())

	inB := validInput()
	inB.Name = "Ibuprofen"
	medB, _ := r.AddMedication(inB)

	for i := 0; i < 3; i++ {
		if _, err := r.LogSideEffect(entities.LogSideEffectInput{
			MedicationID: medA.ID, Effect: "Headache", Severity: 2,
		}); err != nil {
			t.Fatalf("LogSideEffect failed: %v", err)
		}
	}
	if _, err := r.LogSideEffect(entities.LogSideEffectInput{
		MedicationID: medB.ID, Effect: "Nausea", Severity: 3,
	}); err != nil {
		t.Fatalf("LogSideEffect failed: %v", err)
	}

	removed, err := r.DeleteMedication(medA.ID)
	if err != nil {
		t.Fatalf("DeleteMedication failed: %v", err)
	}
	if removed != 3 {
		t.Errorf("Expected 3 cascaded logs, got %d", removed)
	}

	if _, ok := r.store.MedicationByID(medA.ID); ok {
		t.Error("Deleted medication still present")
	}
	logs := r.store.SideEffectLogs()
	if len(logs) != 1 {
		t.Fatalf("Expected 1 remaining log, got %d", len(logs))
	}
	if logs[0].MedicationID != medB.ID {
		t.Errorf("Wrong log survived the cascade: %+v", logs[0])
	}
}

func TestDeleteUnknownMedication(t *testing.T) {
	r := newTestRegistry(t)

	_, err := r.DeleteMedication("nope")
	var notFoundErr *NotFoundError
	if !errors.As(err, &notFoundErr) {
		t.Errorf("Expected NotFoundError, got %v", err)
	}
}

func TestLogSideEffectValidation(t *testing.T) {
	r := newTestRegistry(t)
	med, _ := r.AddMedication(validInput())

	// Severity outside [1,5] is rejected
	for _, severity := range []int{0, 6, -2} {
		_, err := r.LogSideEffect(entities.LogSideEffectInput{
			MedicationID: med.ID, Effect: "Dizziness", Severity: severity,
		})
		var validationErr *ValidationError
		if !errors.As(err, &validationErr) {
			t.Errorf("Expected ValidationError for severity %d, got %v", severity, err)
		}
	}

	// Empty description is rejected
	_, err := r.LogSideEffect(entities.LogSideEffectInput{
		MedicationID: med.ID, Effect: " ", Severity: 3,
	})
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Errorf("Expected ValidationError for empty effect, got %v", err)
	}

	// Unknown medication id is a not-found, not a validation error
	_, err = r.LogSideEffect(entities.LogSideEffectInput{
		MedicationID: "nope", Effect: "Dizziness", Severity: 3,
	})
	var notFoundErr *NotFoundError
	if !errors.As(err, &notFoundErr) {
		t.Errorf("Expected NotFoundError, got %v", err)
	}
}

func TestLogSideEffectRequiresActiveMedication(t *testing.T) {
	r := newTestRegistry(t)
	med, _ := r.AddMedication(validInput())
	if _, err := r.ArchiveMedication(med.ID, "Side effects"); err != nil {
		t.Fatalf("ArchiveMedication failed: %v", err)
	}

	_, err := r.LogSideEffect(entities.LogSideEffectInput{
		MedicationID: med.ID, Effect: "Rash", Severity: 4,
	})
	var conflictErr *ConflictError
	if !errors.As(err, &conflictErr) {
		t.Errorf("Expected ConflictError for archived medication, got %v", err)
	}
}

func TestLogMood(t *testing.T) {
	r := newTestRegistry(t)

	entry, err := r.LogMood(entities.LogMoodInput{Score: 7, Notes: "Decent day"})
	if err != nil {
		t.Fatalf("LogMood failed: %v", err)
	}
	if entry.Score != 7 {
		t.Errorf("Expected score 7, got %d", entry.Score)
	}

	_, err = r.LogMood(entities.LogMoodInput{Score: 11})
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Errorf("Expected ValidationError for score 11, got %v", err)
	}
}

func TestPruneOldLogs(t *testing.T) {
	r := newTestRegistry(t)
	med, _ := r.AddMedication(validInput())

	base := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	ages := []time.Duration{
		400 * 24 * time.Hour, // pruned
		366 * 24 * time.Hour, // pruned
		364 * 24 * time.Hour, // kept
		10 * 24 * time.Hour,  // kept
	}
	for _, age := range ages {
		ts := base.Add(-age)
		r.now = func() time.Time { return ts }
		if _, err := r.LogSideEffect(entities.LogSideEffectInput{
			MedicationID: med.ID, Effect: "Headache", Severity: 2,
		}); err != nil {
			t.Fatalf("LogSideEffect failed: %v", err)
		}
	}

	// Mood log older than the cutoff gets pruned too
	old := base.Add(-500 * 24 * time.Hour)
	r.now = func() time.Time { return old }
	if _, err := r.LogMood(entities.LogMoodInput{Score: 5}); err != nil {
		t.Fatalf("LogMood failed: %v", err)
	}

	r.now = func() time.Time { return base }
	result, err := r.PruneOldLogs(365 * 24 * time.Hour)
	if err != nil {
		t.Fatalf("PruneOldLogs failed: %v", err)
	}

	if result.SideEffectsRemoved != 2 {
		t.Errorf("Expected 2 side effects removed, got %d", result.SideEffectsRemoved)
	}
	if result.MoodLogsRemoved != 1 {
		t.Errorf("Expected 1 mood log removed, got %d", result.MoodLogsRemoved)
	}

	remaining := r.store.SideEffectLogs()
	if len(remaining) != 2 {
		t.Fatalf("Expected 2 remaining logs, got %d", len(remaining))
	}
	cutoff := base.Add(-365 * 24 * time.Hour)
	for _, log := range remaining {
		if log.Timestamp.Before(cutoff) {
			t.Errorf("Log older than cutoff survived: %v", log.Timestamp)
		}
	}
}

func TestSearchMedications(t *testing.T) {
	r := newTestRegistry(t)

	in := validInput()
	in.Name = "Théralène"
	if _, err := r.AddMedication(in); err != nil {
		t.Fatalf("AddMedication failed: %v", err)
	}
	in2 := validInput()
	in2.Name = "Ibuprofen"
	if _, err := r.AddMedication(in2); err != nil {
		t.Fatalf("AddMedication failed: %v", err)
	}

	results := r.SearchMedications("theralene")
	if len(results) != 1 || results[0].Name != "Théralène" {
		t.Errorf("Expected accent-insensitive match, got %v", results)
	}

	results = r.SearchMedications("PROFEN")
	if len(results) != 1 || results[0].Name != "Ibuprofen" {
		t.Errorf("Expected case-insensitive substring match, got %v", results)
	}

	if results := r.SearchMedications("xyz"); len(results) != 0 {
		t.Errorf("Expected no matches, got %v", results)
	}
	if results := r.SearchMedications("  "); len(results) != 0 {
		t.Errorf("Expected no matches for blank term, got %v", results)
	}
}

package entities

// Validated input structs, one per mutating operation. Handlers decode
// request bodies into these and the registry validates them.

// AddMedicationInput carries the fields of the add-medication form
type AddMedicationInput struct {
	Name        string   `json:"name"`
	Dosage      string   `json:"dosage"`
	DosesPerDay int      `json:"dosesPerDay"`
	Times       []string `json:"times"`
	Notes       string   `json:"notes"`
}

// ArchiveMedicationInput carries the archive reason; a non-empty reason
// is required to archive
type ArchiveMedicationInput struct {
	Reason string `json:"reason"`
}

// LogSideEffectInput carries a side-effect report for an active medication
type LogSideEffectInput struct {
	MedicationID string `json:"medicationId"`
	Effect       string `json:"effect"`
	Severity     int    `json:"severity"`
	Notes        string `json:"notes"`
}

// LogMoodInput carries a mood entry on a 1-10 scale
type LogMoodInput struct {
	Score int    `json:"score"`
	Notes string `json:"notes"`
}

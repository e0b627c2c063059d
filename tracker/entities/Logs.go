package entities

import "time"

// SideEffectLog is a timestamped adverse-event report linked to a medication.
// MedicationID may reference a medication that was later deleted.
type SideEffectLog struct {
	ID           string    `json:"id"`
	MedicationID string    `json:"medicationId"`
	Effect       string    `json:"effect"`
	Severity     int       `json:"severity"`
	Notes        string    `json:"notes,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

// MoodLog is a daily wellbeing entry on a 1-10 scale
type MoodLog struct {
	ID        string    `json:"id"`
	Score     int       `json:"score"`
	Notes     string    `json:"notes,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

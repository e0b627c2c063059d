package entities

import "time"

// Medication status values
const (
	StatusActive   = "active"
	StatusArchived = "archived"
)

// Medication represents a tracked drug entry with its dosing schedule.
// ArchiveReason and ArchivedAt are present only while the medication is archived.
type Medication struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Dosage        string     `json:"dosage"`
	DosesPerDay   int        `json:"dosesPerDay"`
	Frequency     string     `json:"frequency"`
	Times         []string   `json:"times"`
	Notes         string     `json:"notes,omitempty"`
	Status        string     `json:"status"`
	ArchiveReason string     `json:"archiveReason,omitempty"`
	ArchivedAt    *time.Time `json:"archivedAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// IsActive reports whether the medication is currently being taken
func (m *Medication) IsActive() bool {
	return m.Status == StatusActive
}

// Package interfaces defines core abstractions for the meditrack API
// to improve testability, maintainability, and separation of concerns.
package interfaces

import (
	"time"

	"meditrack-api/tracker/entities"
)

// DataQualityReport summarizes integrity issues found in a loaded document
type DataQualityReport struct {
	DuplicateMedicationIDs []string
	ArchivedWithoutReason  []string
	DanglingLogIDs         []string // side-effect logs whose medication no longer exists
	SeverityOutOfRange     []string
}

// DataStore defines the contract for the persisted medication document.
// It provides thread-safe access to the in-memory document and persists
// the whole document back to disk after every mutation.
type DataStore interface {
	// Data retrieval methods
	Medications() []entities.Medication
	SideEffectLogs() []entities.SideEffectLog
	MoodLogs() []entities.MoodLog
	MedicationByID(id string) (entities.Medication, bool)
	Snapshot() entities.Document
	Export() entities.Export

	// Mutate applies fn to a copy of the document under the write lock.
	// On success the copy replaces the document and is saved to disk; on
	// error the document is left untouched.
	Mutate(fn func(doc *entities.Document) error) error

	// Backup writes a dated copy of the document into dir and returns
	// the file path written
	Backup(dir string) (string, error)

	// Persistence state, used by the health checker
	Path() string
	LoadedAt() time.Time
	LastSaved() time.Time
	LastSaveError() error
}

// Registry defines the record-management operations over the document
type Registry interface {
	AddMedication(in entities.AddMedicationInput) (entities.Medication, error)
	ArchiveMedication(id string, reason string) (entities.Medication, error)
	ReactivateMedication(id string) (entities.Medication, error)
	DeleteMedication(id string) (removedLogs int, err error)
	SearchMedications(term string) []entities.Medication

	LogSideEffect(in entities.LogSideEffectInput) (entities.SideEffectLog, error)
	LogMood(in entities.LogMoodInput) (entities.MoodLog, error)
	RecentSideEffects(limit int) []entities.RecentLogEntry
	PruneOldLogs(maxAge time.Duration) (entities.PruneResult, error)

	Dashboard() entities.Dashboard
}

// Scheduler defines the contract for background jobs: scheduled log
// pruning, data-file backups, and persistence health monitoring.
type Scheduler interface {
	Start() error
	Stop()
}

// HealthChecker defines the contract for health check functionality
type HealthChecker interface {
	// HealthCheck returns current system health status
	HealthCheck() (status string, details map[string]any, httpStatus int)
}

// DataValidator defines the contract for input and document validation
type DataValidator interface {
	// ValidateInput validates user-supplied free-text strings
	ValidateInput(input string) error

	// ValidateDoseTime validates an HH:MM dose time
	ValidateDoseTime(t string) error

	// ValidateSeverity checks the 1-5 side-effect severity range
	ValidateSeverity(severity int) error

	// ValidateMoodScore checks the 1-10 mood score range
	ValidateMoodScore(score int) error

	// ValidateMedication checks a medication record is internally consistent
	ValidateMedication(m *entities.Medication) error

	// ReportDataQuality scans a loaded document for integrity issues
	ReportDataQuality(doc *entities.Document) *DataQualityReport
}

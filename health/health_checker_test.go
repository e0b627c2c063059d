package health

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"meditrack-api/tracker/entities"
)

// stubStore implements just enough of the data store for health checks
type stubStore struct {
	loadedAt  time.Time
	lastSaved time.Time
	saveErr   error
	meds      []entities.Medication
}

func (s *stubStore) Medications() []entities.Medication       { return s.meds }
func (s *stubStore) SideEffectLogs() []entities.SideEffectLog { return nil }
func (s *stubStore) MoodLogs() []entities.MoodLog             { return nil }
func (s *stubStore) MedicationByID(id string) (entities.Medication, bool) {
	return entities.Medication{}, false
}
func (s *stubStore) Snapshot() entities.Document                             { return entities.NewDocument() }
func (s *stubStore) Export() entities.Export                                 { return entities.Export{} }
func (s *stubStore) Mutate(fn func(doc *entities.Document) error) error      { return fn(&entities.Document{}) }
func (s *stubStore) Backup(dir string) (string, error)                       { return "", nil }
func (s *stubStore) Path() string                                            { return "/tmp/meditrack.json" }
func (s *stubStore) LoadedAt() time.Time                                     { return s.loadedAt }
func (s *stubStore) LastSaved() time.Time                                    { return s.lastSaved }
func (s *stubStore) LastSaveError() error                                    { return s.saveErr }

func TestHealthyStore(t *testing.T) {
	now := time.Now()
	checker := NewHealthChecker(&stubStore{
		loadedAt:  now,
		lastSaved: now,
		meds: []entities.Medication{
			{ID: "1", Status: entities.StatusActive},
			{ID: "2", Status: entities.StatusArchived},
		},
	})

	status, details, httpStatus := checker.HealthCheck()
	if status != "healthy" {
		t.Errorf("Expected healthy, got %s", status)
	}
	if httpStatus != http.StatusOK {
		t.Errorf("Expected 200, got %d", httpStatus)
	}
	if details["medications_active"] != 1 {
		t.Errorf("Expected 1 active, got %v", details["medications_active"])
	}
	if details["medications_archived"] != 1 {
		t.Errorf("Expected 1 archived, got %v", details["medications_archived"])
	}
	if _, ok := details["last_save_error"]; ok {
		t.Error("Expected no last_save_error in details")
	}
}

func TestUnhealthyWhenNeverLoaded(t *testing.T) {
	checker := NewHealthChecker(&stubStore{})

	status, details, httpStatus := checker.HealthCheck()
	if status != "unhealthy" {
		t.Errorf("Expected unhealthy, got %s", status)
	}
	if httpStatus != http.StatusServiceUnavailable {
		t.Errorf("Expected 503, got %d", httpStatus)
	}
	if details["loaded_at"] != "never" {
		t.Errorf("Expected loaded_at never, got %v", details["loaded_at"])
	}
}

func TestDegradedWhenSavesFail(t *testing.T) {
	checker := NewHealthChecker(&stubStore{
		loadedAt: time.Now(),
		saveErr:  errors.New("disk full"),
	})

	status, details, httpStatus := checker.HealthCheck()
	if status != "degraded" {
		t.Errorf("Expected degraded, got %s", status)
	}
	if httpStatus != http.StatusOK {
		t.Errorf("Expected 200 while degraded, got %d", httpStatus)
	}
	if details["last_save_error"] != "disk full" {
		t.Errorf("Expected save error in details, got %v", details["last_save_error"])
	}
}

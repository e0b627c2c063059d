// Package store persists the medication document as a single JSON file.
// The whole document lives in memory behind a RWMutex and is written
// back to disk after every mutation. A missing or corrupt file falls
// back to an empty document so the process never dies over bad data.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"meditrack-api/interfaces"
	"meditrack-api/logging"
	"meditrack-api/metrics"
	"meditrack-api/tracker/entities"
)

// Compile-time check to ensure FileStore implements DataStore
var _ interfaces.DataStore = (*FileStore)(nil)

// FileStore holds the in-memory document and its on-disk location
type FileStore struct {
	path string

	mu          sync.RWMutex
	doc         entities.Document
	loadedAt    time.Time
	lastSaved   time.Time
	lastSaveErr error
}

// NewFileStore creates a store for the given data file path. Call Load
// before serving requests.
func NewFileStore(path string) *FileStore {
	return &FileStore{
		path: path,
		doc:  entities.NewDocument(),
	}
}

// Load reads the document from disk. A missing file initializes empty
// collections. A corrupt file is moved aside to <path>.corrupt and the
// store starts empty; the original bytes stay recoverable by hand.
func (s *FileStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		logging.Info("Data file not found, starting with empty collections", "path", s.path)
		s.doc = entities.NewDocument()
		s.loadedAt = time.Now()
		s.refreshGauges()
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read data file %s: %w", s.path, err)
	}

	var doc entities.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		corruptPath := s.path + ".corrupt"
		if renameErr := os.Rename(s.path, corruptPath); renameErr != nil {
			logging.Error("Failed to move corrupt data file aside", "error", renameErr)
		} else {
			logging.Warn("Corrupt data file moved aside, starting empty",
				"path", s.path, "moved_to", corruptPath, "error", err)
		}
		s.doc = entities.NewDocument()
		s.loadedAt = time.Now()
		s.refreshGauges()
		return nil
	}

	normalizeDocument(&doc)
	s.doc = doc
	s.loadedAt = time.Now()
	s.refreshGauges()

	logging.Info("Data file loaded",
		"path", s.path,
		"medications", len(doc.Medications),
		"side_effect_logs", len(doc.SideEffectLogs),
		"mood_logs", len(doc.MoodLogs))
	return nil
}

// normalizeDocument replaces nil collections from hand-edited or partial
// files so the rest of the code never sees a nil slice
func normalizeDocument(doc *entities.Document) {
	if doc.Medications == nil {
		doc.Medications = make([]entities.Medication, 0)
	}
	if doc.SideEffectLogs == nil {
		doc.SideEffectLogs = make([]entities.SideEffectLog, 0)
	}
	if doc.MoodLogs == nil {
		doc.MoodLogs = make([]entities.MoodLog, 0)
	}
}

// Mutate applies fn to a clone of the document under the write lock.
// If fn succeeds the clone becomes the current document and is saved;
// if fn fails nothing changes. A failed save keeps the in-memory state
// and is surfaced through LastSaveError and the health endpoint instead
// of failing the operation, since the data is still being served.
func (s *FileStore) Mutate(fn func(doc *entities.Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.doc.Clone()
	if err := fn(&next); err != nil {
		return err
	}

	s.doc = next
	s.refreshGauges()

	if err := s.save(); err != nil {
		s.lastSaveErr = err
		logging.Error("Failed to save data file", "path", s.path, "error", err)
		return nil
	}
	s.lastSaveErr = nil
	s.lastSaved = time.Now()
	return nil
}

// save writes the document to a temp file and renames it over the
// target. Caller must hold the write lock.
func (s *FileStore) save() error {
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".meditrack-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace data file: %w", err)
	}
	return nil
}

// refreshGauges updates the domain metrics. Caller must hold a lock.
func (s *FileStore) refreshGauges() {
	var active, archived int
	for i := range s.doc.Medications {
		if s.doc.Medications[i].IsActive() {
			active++
		} else {
			archived++
		}
	}
	metrics.MedicationsActive.Set(float64(active))
	metrics.MedicationsArchived.Set(float64(archived))
	metrics.SideEffectLogsTotal.Set(float64(len(s.doc.SideEffectLogs)))
	metrics.MoodLogsTotal.Set(float64(len(s.doc.MoodLogs)))
}

// Medications returns a copy of the medication list
func (s *FileStore) Medications() []entities.Medication {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entities.Medication(nil), s.doc.Medications...)
}

// SideEffectLogs returns a copy of the side-effect log list
func (s *FileStore) SideEffectLogs() []entities.SideEffectLog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entities.SideEffectLog(nil), s.doc.SideEffectLogs...)
}

// MoodLogs returns a copy of the mood log list
func (s *FileStore) MoodLogs() []entities.MoodLog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entities.MoodLog(nil), s.doc.MoodLogs...)
}

// MedicationByID returns the medication with the given id, if present
func (s *FileStore) MedicationByID(id string) (entities.Medication, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.MedicationByID(id)
}

// Snapshot returns a deep copy of the whole document
func (s *FileStore) Snapshot() entities.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.Clone()
}

// Export returns a deep copy of the document stamped with the export date
func (s *FileStore) Export() entities.Export {
	return entities.Export{
		Document:   s.Snapshot(),
		ExportDate: time.Now(),
	}
}

// Backup writes a dated copy of the current document into dir
func (s *FileStore) Backup(dir string) (string, error) {
	data, err := json.MarshalIndent(s.Snapshot(), "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal backup: %w", err)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	name := fmt.Sprintf("meditrack-%s.json", time.Now().Format("20060102"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write backup file: %w", err)
	}
	return path, nil
}

// Path returns the data file location
func (s *FileStore) Path() string {
	return s.path
}

// LoadedAt returns when the document was loaded from disk
func (s *FileStore) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}

// LastSaved returns when the document was last written successfully
func (s *FileStore) LastSaved() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastSaved
}

// LastSaveError returns the error from the most recent save attempt, if any
func (s *FileStore) LastSaveError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastSaveErr
}

// Package scheduler runs the background jobs for the meditrack API:
// nightly pruning of old logs (when enabled), nightly data-file backups,
// and persistence health monitoring.
package scheduler

import (
	"fmt"
	"time"

	"github.com/go-co-op/gocron"

	"meditrack-api/config"
	"meditrack-api/interfaces"
	"meditrack-api/logging"
)

// Compile-time check to ensure Scheduler implements interfaces.Scheduler
var _ interfaces.Scheduler = (*Scheduler)(nil)

// Scheduler coordinates the background jobs with injected dependencies
type Scheduler struct {
	store     interfaces.DataStore
	registry  interfaces.Registry
	validator interfaces.DataValidator
	cfg       *config.Config
	scheduler *gocron.Scheduler
	monitorCh chan struct{}
}

// NewScheduler creates a scheduler instance with injected dependencies
func NewScheduler(store interfaces.DataStore, registry interfaces.Registry, validator interfaces.DataValidator, cfg *config.Config) *Scheduler {
	return &Scheduler{
		store:     store,
		registry:  registry,
		validator: validator,
		cfg:       cfg,
		scheduler: gocron.NewScheduler(time.Local),
		monitorCh: make(chan struct{}),
	}
}

// Start reports data quality, registers the nightly jobs, and begins
// persistence monitoring
func (s *Scheduler) Start() error {
	s.reportDataQuality()

	if s.cfg.AutoPrune {
		_, err := s.scheduler.Every(1).Day().At("03:00").Do(func() {
			maxAge := time.Duration(s.cfg.PruneMaxAgeDays) * 24 * time.Hour
			result, err := s.registry.PruneOldLogs(maxAge)
			if err != nil {
				logging.Error("Scheduled prune failed", "error", err)
				return
			}
			logging.Info("Scheduled prune completed",
				"side_effects_removed", result.SideEffectsRemoved,
				"mood_logs_removed", result.MoodLogsRemoved)
		})
		if err != nil {
			return fmt.Errorf("failed to schedule prune job: %w", err)
		}
	}

	_, err := s.scheduler.Every(1).Day().At("03:30").Do(func() {
		path, err := s.store.Backup(s.cfg.BackupDir)
		if err != nil {
			logging.Error("Scheduled backup failed", "error", err)
			return
		}
		logging.Info("Data file backed up", "path", path)
	})
	if err != nil {
		return fmt.Errorf("failed to schedule backup job: %w", err)
	}

	s.scheduler.StartAsync()
	s.startPersistenceMonitoring()

	return nil
}

// Stop stops the scheduler and the persistence monitor
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
	close(s.monitorCh)
}

// reportDataQuality logs integrity issues found in the loaded document
func (s *Scheduler) reportDataQuality() {
	doc := s.store.Snapshot()
	report := s.validator.ReportDataQuality(&doc)

	if len(report.DuplicateMedicationIDs) > 0 {
		logging.Warn("Duplicate medication ids detected",
			"total", len(report.DuplicateMedicationIDs),
			"ids", report.DuplicateMedicationIDs)
	}
	if len(report.ArchivedWithoutReason) > 0 {
		logging.Warn("Archived medications without a reason",
			"total", len(report.ArchivedWithoutReason),
			"ids", report.ArchivedWithoutReason)
	}
	if len(report.DanglingLogIDs) > 0 {
		logging.Warn("Side-effect logs referencing deleted medications",
			"total", len(report.DanglingLogIDs),
			"ids", report.DanglingLogIDs)
	}
	if len(report.SeverityOutOfRange) > 0 {
		logging.Warn("Side-effect logs with severity out of range",
			"total", len(report.SeverityOutOfRange),
			"ids", report.SeverityOutOfRange)
	}
}

// startPersistenceMonitoring warns hourly while saves keep failing
func (s *Scheduler) startPersistenceMonitoring() {
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()

		for {
			select {
			case <-s.monitorCh:
				return
			case <-ticker.C:
				if err := s.store.LastSaveError(); err != nil {
					logging.Warn("Data file saves are failing",
						"path", s.store.Path(), "error", err)
				}
			}
		}
	}()
}

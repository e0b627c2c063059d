package entities

import "time"

// Dashboard holds the aggregates shown on the overview page
type Dashboard struct {
	ActiveMedications   int              `json:"activeMedications"`
	ArchivedMedications int              `json:"archivedMedications"`
	SideEffectsLast7d   int              `json:"sideEffectsLast7d"`
	RecentSideEffects   []RecentLogEntry `json:"recentSideEffects"`
	MedicationStats     []MedicationStat `json:"medicationStats"`
	MoodAverage30d      float64          `json:"moodAverage30d"`
	MoodEntries30d      int              `json:"moodEntries30d"`
}

// RecentLogEntry is a side-effect log with its medication name resolved.
// MedicationName is "Unknown (deleted)" when the log dangles.
type RecentLogEntry struct {
	SideEffectLog
	MedicationName string `json:"medicationName"`
}

// MedicationStat summarizes reported side effects per medication
type MedicationStat struct {
	MedicationName  string  `json:"medicationName"`
	TotalEffects    int     `json:"totalEffects"`
	AverageSeverity float64 `json:"averageSeverity"`
}

// PruneResult reports what a prune pass removed
type PruneResult struct {
	SideEffectsRemoved int       `json:"sideEffectsRemoved"`
	MoodLogsRemoved    int       `json:"moodLogsRemoved"`
	Cutoff             time.Time `json:"cutoff"`
}

package tracker

import (
	"math"
	"sort"

	"meditrack-api/tracker/entities"
)

// RecentLogsDefault is how many recent side effects the dashboard shows
const RecentLogsDefault = 10

// UnknownMedicationName labels logs whose medication was deleted
const UnknownMedicationName = "Unknown (deleted)"

// Dashboard computes the overview aggregates from the current document
func (r *Registry) Dashboard() entities.Dashboard {
	doc := r.store.Snapshot()
	now := r.now()

	dash := entities.Dashboard{
		RecentSideEffects: recentLogs(&doc, RecentLogsDefault),
		MedicationStats:   medicationStats(&doc),
	}

	for i := range doc.Medications {
		if doc.Medications[i].IsActive() {
			dash.ActiveMedications++
		} else {
			dash.ArchivedMedications++
		}
	}

	weekAgo := now.AddDate(0, 0, -7)
	for _, log := range doc.SideEffectLogs {
		if !log.Timestamp.Before(weekAgo) {
			dash.SideEffectsLast7d++
		}
	}

	monthAgo := now.AddDate(0, 0, -30)
	var moodSum int
	for _, mood := range doc.MoodLogs {
		if mood.Timestamp.Before(monthAgo) {
			continue
		}
		moodSum += mood.Score
		dash.MoodEntries30d++
	}
	if dash.MoodEntries30d > 0 {
		dash.MoodAverage30d = round1(float64(moodSum) / float64(dash.MoodEntries30d))
	}

	return dash
}

// RecentSideEffects returns the newest logs with medication names
// resolved, most recent first, at most limit entries
func (r *Registry) RecentSideEffects(limit int) []entities.RecentLogEntry {
	if limit <= 0 {
		limit = RecentLogsDefault
	}
	doc := r.store.Snapshot()
	return recentLogs(&doc, limit)
}

func recentLogs(doc *entities.Document, limit int) []entities.RecentLogEntry {
	logs := append([]entities.SideEffectLog(nil), doc.SideEffectLogs...)
	sort.Slice(logs, func(i, j int) bool {
		return logs[i].Timestamp.After(logs[j].Timestamp)
	})
	if len(logs) > limit {
		logs = logs[:limit]
	}

	entries := make([]entities.RecentLogEntry, 0, len(logs))
	for _, log := range logs {
		name := UnknownMedicationName
		if med, ok := doc.MedicationByID(log.MedicationID); ok {
			name = med.Name
		}
		entries = append(entries, entities.RecentLogEntry{
			SideEffectLog:  log,
			MedicationName: name,
		})
	}
	return entries
}

// medicationStats aggregates side-effect totals and average severity per
// medication name, dangling logs grouped under the unknown label
func medicationStats(doc *entities.Document) []entities.MedicationStat {
	type agg struct {
		total int
		sum   int
	}
	byName := make(map[string]*agg)
	order := make([]string, 0)

	for _, log := range doc.SideEffectLogs {
		name := UnknownMedicationName
		if med, ok := doc.MedicationByID(log.MedicationID); ok {
			name = med.Name
		}
		a, exists := byName[name]
		if !exists {
			a = &agg{}
			byName[name] = a
			order = append(order, name)
		}
		a.total++
		a.sum += log.Severity
	}

	stats := make([]entities.MedicationStat, 0, len(order))
	for _, name := range order {
		a := byName[name]
		stats = append(stats, entities.MedicationStat{
			MedicationName:  name,
			TotalEffects:    a.total,
			AverageSeverity: round1(float64(a.sum) / float64(a.total)),
		})
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].TotalEffects != stats[j].TotalEffects {
			return stats[i].TotalEffects > stats[j].TotalEffects
		}
		return stats[i].MedicationName < stats[j].MedicationName
	})
	return stats
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

package entities

import "time"

// Document is the full persisted state: one JSON file with the
// medication list and both log collections.
type Document struct {
	Medications    []Medication    `json:"medications"`
	SideEffectLogs []SideEffectLog `json:"side_effect_logs"`
	MoodLogs       []MoodLog       `json:"mood_logs"`
}

// NewDocument returns an empty document with all collections initialized,
// so marshalling always produces arrays instead of null.
func NewDocument() Document {
	return Document{
		Medications:    make([]Medication, 0),
		SideEffectLogs: make([]SideEffectLog, 0),
		MoodLogs:       make([]MoodLog, 0),
	}
}

// Clone returns a deep copy of the document. Mutations are applied to a
// clone first so a failed operation never leaves partial state behind.
func (d *Document) Clone() Document {
	out := Document{
		Medications:    make([]Medication, len(d.Medications)),
		SideEffectLogs: make([]SideEffectLog, len(d.SideEffectLogs)),
		MoodLogs:       make([]MoodLog, len(d.MoodLogs)),
	}
	copy(out.SideEffectLogs, d.SideEffectLogs)
	copy(out.MoodLogs, d.MoodLogs)
	for i := range d.Medications {
		m := d.Medications[i]
		m.Times = append([]string(nil), m.Times...)
		if m.ArchivedAt != nil {
			at := *m.ArchivedAt
			m.ArchivedAt = &at
		}
		out.Medications[i] = m
	}
	return out
}

// MedicationByID returns the medication with the given id, if present
func (d *Document) MedicationByID(id string) (Medication, bool) {
	for i := range d.Medications {
		if d.Medications[i].ID == id {
			return d.Medications[i], true
		}
	}
	return Medication{}, false
}

// Export wraps a document with the export date for data downloads
type Export struct {
	Document
	ExportDate time.Time `json:"export_date"`
}

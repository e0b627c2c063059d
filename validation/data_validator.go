// Package validation provides input and document validation for the meditrack API.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"meditrack-api/interfaces"
	"meditrack-api/tracker/entities"
)

// MaxInputLength caps user-supplied free-text fields
const MaxInputLength = 500

// Pre-compiled patterns, built once at package initialization
var (
	// Dose times are strict 24h HH:MM
	doseTimeRegex = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

	// Dangerous substrings checked with strings.Contains, which is much
	// faster than regex for plain substring scans
	dangerousPatterns = []string{
		"<script", "</script>", "javascript:", "vbscript:", "onload=", "onerror=",
		"onclick=", "onmouseover=", "onfocus=", "onblur=", "onchange=", "onsubmit=",
		"eval(", "expression(", "url(", "@import", "binding(", "behavior(",
		// SQL injection patterns
		"' or ", "\" or ", "union select", "drop table", "delete from", "insert into",
		"update set", "xp_", "sp_", "exec(", "execute(",
		// Path traversal patterns
		"../", "..\\", "%2e%2e", "file://",
	}
)

// DataValidatorImpl implements the interfaces.DataValidator interface
type DataValidatorImpl struct{}

// NewDataValidator creates a new data validator
func NewDataValidator() interfaces.DataValidator {
	return &DataValidatorImpl{}
}

// ValidateInput validates user-supplied free-text strings. Empty strings
// are fine here; required-field checks belong to the operation.
func (v *DataValidatorImpl) ValidateInput(input string) error {
	if len(input) > MaxInputLength {
		return fmt.Errorf("input too long: %d characters (max %d)", len(input), MaxInputLength)
	}

	lowered := strings.ToLower(input)
	for _, pattern := range dangerousPatterns {
		if strings.Contains(lowered, pattern) {
			return fmt.Errorf("input contains a disallowed pattern")
		}
	}

	for _, r := range input {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			return fmt.Errorf("input contains control characters")
		}
	}
	return nil
}

// ValidateDoseTime validates an HH:MM dose time
func (v *DataValidatorImpl) ValidateDoseTime(t string) error {
	if !doseTimeRegex.MatchString(t) {
		return fmt.Errorf("invalid dose time %q: expected HH:MM", t)
	}
	return nil
}

// ValidateSeverity checks the 1-5 side-effect severity range
func (v *DataValidatorImpl) ValidateSeverity(severity int) error {
	if severity < 1 || severity > 5 {
		return fmt.Errorf("severity must be between 1 and 5, got %d", severity)
	}
	return nil
}

// ValidateMoodScore checks the 1-10 mood score range
func (v *DataValidatorImpl) ValidateMoodScore(score int) error {
	if score < 1 || score > 10 {
		return fmt.Errorf("mood score must be between 1 and 10, got %d", score)
	}
	return nil
}

// ValidateMedication checks a medication record is internally consistent
func (v *DataValidatorImpl) ValidateMedication(m *entities.Medication) error {
	if m == nil {
		return fmt.Errorf("medication is nil")
	}
	if strings.TrimSpace(m.ID) == "" {
		return fmt.Errorf("medication has empty id")
	}
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("empty name for medication %s", m.ID)
	}
	if m.Status != entities.StatusActive && m.Status != entities.StatusArchived {
		return fmt.Errorf("invalid status %q for medication %s", m.Status, m.ID)
	}
	if m.Status == entities.StatusArchived && strings.TrimSpace(m.ArchiveReason) == "" {
		return fmt.Errorf("archived medication %s has no archive reason", m.ID)
	}
	for _, t := range m.Times {
		if err := v.ValidateDoseTime(t); err != nil {
			return fmt.Errorf("medication %s: %w", m.ID, err)
		}
	}
	return nil
}

// ReportDataQuality scans a loaded document for integrity issues. The
// scheduler logs the report at startup; nothing in it is fatal.
func (v *DataValidatorImpl) ReportDataQuality(doc *entities.Document) *interfaces.DataQualityReport {
	report := &interfaces.DataQualityReport{}

	seen := make(map[string]bool)
	ids := make(map[string]bool)
	for i := range doc.Medications {
		m := &doc.Medications[i]
		ids[m.ID] = true
		if seen[m.ID] {
			report.DuplicateMedicationIDs = append(report.DuplicateMedicationIDs, m.ID)
		}
		seen[m.ID] = true

		if m.Status == entities.StatusArchived && strings.TrimSpace(m.ArchiveReason) == "" {
			report.ArchivedWithoutReason = append(report.ArchivedWithoutReason, m.ID)
		}
	}

	for _, log := range doc.SideEffectLogs {
		if !ids[log.MedicationID] {
			report.DanglingLogIDs = append(report.DanglingLogIDs, log.ID)
		}
		if log.Severity < 1 || log.Severity > 5 {
			report.SeverityOutOfRange = append(report.SeverityOutOfRange, log.ID)
		}
	}

	return report
}

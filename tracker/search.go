package tracker

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"meditrack-api/tracker/entities"
)

// foldTransformer strips combining marks so "Théralène" matches "theralene"
var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// foldName lowercases and removes diacritics for matching
func foldName(s string) string {
	folded, _, err := transform.String(foldTransformer, strings.ToLower(s))
	if err != nil {
		return strings.ToLower(s)
	}
	return folded
}

// SearchMedications returns medications whose name contains the term,
// case- and accent-insensitively. An empty result is a valid answer,
// not an error.
func (r *Registry) SearchMedications(term string) []entities.Medication {
	needle := foldName(strings.TrimSpace(term))
	if needle == "" {
		return []entities.Medication{}
	}

	results := make([]entities.Medication, 0)
	for _, med := range r.store.Medications() {
		if strings.Contains(foldName(med.Name), needle) {
			results = append(results, med)
		}
	}
	return results
}

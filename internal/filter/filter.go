// Package filter selects canonical records by category and name.
package filter

import (
	"strings"

	"github.com/amishk599/hoyotext/internal/model"
)

// RecordFilter matches records whose type equals one of the types and whose
// name contains one of the name keywords. Matching is case-insensitive.
// Empty lists are treated as "match all".
type RecordFilter struct {
	types        []string
	nameKeywords []string
}

// NewRecordFilter returns a filter that requires both a type match and a
// name keyword match.
func NewRecordFilter(types []string, nameKeywords []string) *RecordFilter {
	return &RecordFilter{
		types:        types,
		nameKeywords: nameKeywords,
	}
}

// Match returns true if the record's type is one of the types and its name
// contains any name keyword. Empty lists pass all.
func (f *RecordFilter) Match(rec model.CanonicalRecord) bool {
	if len(f.types) > 0 {
		matched := false
		for _, t := range f.types {
			if strings.EqualFold(strings.TrimSpace(t), rec.Type) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	if len(f.nameKeywords) > 0 {
		nameLower := strings.ToLower(rec.Name)
		matched := false
		for _, kw := range f.nameKeywords {
			if strings.Contains(nameLower, strings.ToLower(kw)) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	return true
}

// Records returns the records that match, in order.
func (f *RecordFilter) Records(recs []model.CanonicalRecord) []model.CanonicalRecord {
	var out []model.CanonicalRecord
	for _, r := range recs {
		if f.Match(r) {
			out = append(out, r)
		}
	}
	return out
}

// Archived returns the archived records that match, in order.
func (f *RecordFilter) Archived(items []model.ArchivedRecord) []model.ArchivedRecord {
	var out []model.ArchivedRecord
	for _, it := range items {
		if f.Match(it.Record) {
			out = append(out, it)
		}
	}
	return out
}

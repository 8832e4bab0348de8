package models

import "github.com/google/uuid"

// Gender is the grammatical gender of a vocabulary word
type Gender string

const (
	GenderMasculine Gender = "masculine"
	GenderFeminine  Gender = "feminine"
	GenderNeuter    Gender = "neuter"
)

// Genders lists all valid genders in display order
var Genders = []Gender{GenderMasculine, GenderFeminine, GenderNeuter}

// IsValid reports whether g is one of the known genders
func (g Gender) IsValid() bool {
	switch g {
	case GenderMasculine, GenderFeminine, GenderNeuter:
		return true
	}
	return false
}

// VocabEntry represents a single vocabulary word with its translation and gender.
// Entries are immutable after catalog load; ID is assigned once and used as the
// key for card state and missed-item deduplication.
type VocabEntry struct {
	ID         uuid.UUID
	Word       string
	Meaning    string
	Gender     Gender
	Categories []string
}

// HasCategory reports whether the entry carries the given category tag
func (e VocabEntry) HasCategory(category string) bool {
	for _, c := range e.Categories {
		if c == category {
			return true
		}
	}
	return false
}

// MatchesFilter reports whether the entry belongs in a deck built with the given
// active-category set. An empty filter admits every entry; a non-empty filter
// admits only entries whose category set intersects it, which drops entries with
// no categories at all (intentional, preserved from the original behavior).
func (e VocabEntry) MatchesFilter(active map[string]bool) bool {
	if len(active) == 0 {
		return true
	}
	for _, c := range e.Categories {
		if active[c] {
			return true
		}
	}
	return false
}

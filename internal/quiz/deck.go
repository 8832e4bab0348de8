package quiz

import (
	"math/rand"

	"vocabdrill/internal/models"
)

// BuildDeck derives a working deck from catalog entries.
//
// A non-empty active set keeps only entries whose categories intersect it,
// which means entries with no categories are dropped whenever any filter is
// active (they only appear when the filter is empty; this asymmetry is
// intentional). With shuffle set the filtered entries are uniformly permuted,
// otherwise catalog order is preserved. A sessionLength of 0 means no cap;
// any positive value keeps the first N entries after ordering.
func BuildDeck(entries []models.VocabEntry, active map[string]bool, shuffle bool, sessionLength int, rng *rand.Rand) []models.VocabEntry {
	deck := make([]models.VocabEntry, 0, len(entries))
	for _, e := range entries {
		if e.MatchesFilter(active) {
			deck = append(deck, e)
		}
	}

	if shuffle {
		rng.Shuffle(len(deck), func(i, j int) {
			deck[i], deck[j] = deck[j], deck[i]
		})
	}

	if sessionLength > 0 && len(deck) > sessionLength {
		deck = deck[:sessionLength]
	}

	return deck
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// SessionResult is the summary of one finished quiz session, persisted
// best-effort when the deck is exhausted.
type SessionResult struct {
	ID          uuid.UUID
	StartedAt   time.Time
	CompletedAt time.Time
	DeckSize    int
	TotalAsked  int
	Score       float64
	MissedCount int
}

// Accuracy returns the fraction of available points earned, in [0, 1].
// Each asked card is worth one full point.
func (r SessionResult) Accuracy() float64 {
	if r.TotalAsked == 0 {
		return 0
	}
	return r.Score / float64(r.TotalAsked)
}

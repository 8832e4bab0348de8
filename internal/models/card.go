package models

import "github.com/google/uuid"

// CardPhase is a card's position in its two-step answer sequence
type CardPhase string

const (
	PhaseAwaitingMeaning CardPhase = "awaiting_meaning"
	PhaseAwaitingGender  CardPhase = "awaiting_gender"
	PhaseCompleted       CardPhase = "completed"
)

// CardState holds the mutable answer progress for one vocabulary entry in the
// current working deck. Phase only ever advances; nothing short of a full deck
// rebuild moves it backwards.
type CardState struct {
	EntryID uuid.UUID

	SelectedMeaning *string
	SelectedGender  *Gender
	MeaningCorrect  *bool
	GenderCorrect   *bool

	Phase CardPhase

	// MeaningScored/GenderScored guarantee each sub-answer pays out at most
	// once per card, however often the card is revisited or re-rendered.
	MeaningScored bool
	GenderScored  bool
}

// NewCardState returns the default state for a freshly visited card
func NewCardState(entryID uuid.UUID) *CardState {
	return &CardState{
		EntryID: entryID,
		Phase:   PhaseAwaitingMeaning,
	}
}

// Missed reports whether the card was completed with at least one wrong
// sub-answer. An unset outcome counts as wrong.
func (c *CardState) Missed() bool {
	if c.Phase != PhaseCompleted {
		return false
	}
	return c.MeaningCorrect == nil || !*c.MeaningCorrect ||
		c.GenderCorrect == nil || !*c.GenderCorrect
}

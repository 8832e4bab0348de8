package quiz

import (
	"github.com/google/uuid"

	"vocabdrill/internal/models"
)

// CardStateStore holds the mutable answer state for every card visited in the
// current session, keyed by entry ID. States are created lazily on first visit
// and discarded wholesale on deck rebuild. Single-writer; the engine is the
// only mutator.
type CardStateStore struct {
	states map[uuid.UUID]*models.CardState
}

// NewCardStateStore creates an empty store
func NewCardStateStore() *CardStateStore {
	return &CardStateStore{
		states: make(map[uuid.UUID]*models.CardState),
	}
}

// GetOrCreate returns the state for an entry, creating the default
// awaiting-meaning state on first access
func (s *CardStateStore) GetOrCreate(entryID uuid.UUID) *models.CardState {
	if state, ok := s.states[entryID]; ok {
		return state
	}
	state := models.NewCardState(entryID)
	s.states[entryID] = state
	return state
}

// Get returns the state for an entry if it has been visited
func (s *CardStateStore) Get(entryID uuid.UUID) (*models.CardState, bool) {
	state, ok := s.states[entryID]
	return state, ok
}

// Update applies a mutation to an entry's state, creating it first if needed
func (s *CardStateStore) Update(entryID uuid.UUID, mutate func(*models.CardState)) {
	mutate(s.GetOrCreate(entryID))
}

// ClearAll discards every card state; used on full deck rebuild
func (s *CardStateStore) ClearAll() {
	s.states = make(map[uuid.UUID]*models.CardState)
}

// ClearScoreFlags resets the score-grant flags on every state while keeping
// phases and selections intact, so answers stay visible but can be re-scored
func (s *CardStateStore) ClearScoreFlags() {
	for _, state := range s.states {
		state.MeaningScored = false
		state.GenderScored = false
	}
}

// Len returns the number of visited cards
func (s *CardStateStore) Len() int {
	return len(s.states)
}

package quiz

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"vocabdrill/internal/catalog"
	"vocabdrill/internal/models"
)

const (
	// backHistoryLimit caps backward navigation depth
	backHistoryLimit = 5
	// meaningOptionCount is the number of distinct meaning choices presented
	// per card, deck permitting
	meaningOptionCount = 4
)

// Engine drives one quiz session: it owns the working deck, sequences the
// two-step question cards (meaning, then gender), grants score at most once
// per correct sub-answer, keeps a bounded back history and produces the
// end-of-session summary with a retry-missed path.
//
// The engine is single-threaded by design: callers must serialize access.
type Engine struct {
	catalog  *catalog.Catalog
	settings SettingsStore
	sink     NotificationSink
	rng      *rand.Rand

	cards       *CardStateStore
	deck        []models.VocabEntry
	current     int
	score       float64
	totalAsked  int
	backHistory []int
	missed      []models.VocabEntry
	showSummary bool
	options     []string
	startedAt   time.Time
}

// NewEngine creates an engine and primes the first session from current
// settings. A nil rng gets a time-seeded source; tests inject a seeded one.
func NewEngine(cat *catalog.Catalog, settings SettingsStore, sink NotificationSink, rng *rand.Rand) *Engine {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if sink == nil {
		sink = NopSink{}
	}
	e := &Engine{
		catalog:  cat,
		settings: settings,
		sink:     sink,
		rng:      rng,
		cards:    NewCardStateStore(),
	}
	e.RebuildWorkingDeck()
	return e
}

// CurrentCard returns the entry under the cursor, or false when the deck is
// empty
func (e *Engine) CurrentCard() (models.VocabEntry, bool) {
	if e.current < 0 || e.current >= len(e.deck) {
		return models.VocabEntry{}, false
	}
	return e.deck[e.current], true
}

// CurrentState returns a copy of the current card's answer state
func (e *Engine) CurrentState() (models.CardState, bool) {
	entry, ok := e.CurrentCard()
	if !ok {
		return models.CardState{}, false
	}
	state, ok := e.cards.Get(entry.ID)
	if !ok {
		return models.CardState{}, false
	}
	return *state, true
}

// CurrentPhase returns the current card's phase, or empty when no card exists
func (e *Engine) CurrentPhase() models.CardPhase {
	state, ok := e.CurrentState()
	if !ok {
		return ""
	}
	return state.Phase
}

// MeaningOptions returns the generated meaning choices for the current card
func (e *Engine) MeaningOptions() []string {
	out := make([]string, len(e.options))
	copy(out, e.options)
	return out
}

// Score returns the session score (0.5 per correct sub-answer)
func (e *Engine) Score() float64 {
	return e.score
}

// TotalAsked returns how many cards have been completed at least once
func (e *Engine) TotalAsked() int {
	return e.totalAsked
}

// ScoreText formats the score against the number of cards asked
func (e *Engine) ScoreText() string {
	return fmt.Sprintf("%.1f / %d", e.score, e.totalAsked)
}

// PositionText formats the 1-based cursor position against the deck size
func (e *Engine) PositionText() string {
	if len(e.deck) == 0 {
		return "0 / 0"
	}
	return fmt.Sprintf("%d / %d", e.current+1, len(e.deck))
}

// Progress returns the session progress fraction in [0, 1]: position in the
// deck plus a half-step once meaning is answered and a full step once gender
// is answered
func (e *Engine) Progress() float64 {
	n := len(e.deck)
	if n == 0 {
		return 0
	}
	p := float64(e.current) / float64(n)
	if state, ok := e.CurrentState(); ok {
		step := 1.0 / float64(n)
		switch state.Phase {
		case models.PhaseAwaitingGender:
			p += step / 2
		case models.PhaseCompleted:
			p += step
		}
	}
	if p > 1 {
		p = 1
	}
	return p
}

// CanGoBack reports whether backward navigation is possible
func (e *Engine) CanGoBack() bool {
	return len(e.backHistory) > 0
}

// ShowSummary reports whether the session has been exhausted
func (e *Engine) ShowSummary() bool {
	return e.showSummary
}

// DeckSize returns the working deck size
func (e *Engine) DeckSize() int {
	return len(e.deck)
}

// MissedItems returns the entries completed with at least one wrong
// sub-answer, in first-completion order, deduplicated by ID
func (e *Engine) MissedItems() []models.VocabEntry {
	out := make([]models.VocabEntry, len(e.missed))
	copy(out, e.missed)
	return out
}

// SubmitMeaning records the learner's meaning choice for the current card.
// Accepted only while the card awaits its meaning answer; returns false
// otherwise. Score is granted at most once per card regardless of repeated
// submissions, and the card advances to the gender step whether the answer
// was right or wrong.
func (e *Engine) SubmitMeaning(choice string) bool {
	entry, ok := e.CurrentCard()
	if !ok {
		return false
	}
	state := e.cards.GetOrCreate(entry.ID)
	if state.Phase != models.PhaseAwaitingMeaning {
		return false
	}

	correct := choice == entry.Meaning
	state.SelectedMeaning = &choice
	state.MeaningCorrect = &correct

	if correct {
		if !state.MeaningScored {
			e.score += 0.5
			state.MeaningScored = true
		}
		e.sink.NotifyCorrect()
	} else {
		e.sink.NotifyIncorrect()
	}

	state.Phase = models.PhaseAwaitingGender
	return true
}

// SubmitGender records the learner's gender choice for the current card.
// Accepted only while the card awaits its gender answer; returns false
// otherwise. Completing the card increments totalAsked exactly once and, if
// either sub-answer was wrong, adds the entry to the missed list.
func (e *Engine) SubmitGender(choice models.Gender) bool {
	entry, ok := e.CurrentCard()
	if !ok {
		return false
	}
	state := e.cards.GetOrCreate(entry.ID)
	if state.Phase != models.PhaseAwaitingGender {
		return false
	}

	correct := choice == entry.Gender
	state.SelectedGender = &choice
	state.GenderCorrect = &correct

	if correct {
		if !state.GenderScored {
			e.score += 0.5
			state.GenderScored = true
		}
		e.sink.NotifyCorrect()
	} else {
		e.sink.NotifyIncorrect()
	}

	// The phase guard above means this is the first completion
	e.totalAsked++
	state.Phase = models.PhaseCompleted

	if state.Missed() && !e.isMissed(entry.ID) {
		e.missed = append(e.missed, entry)
	}
	return true
}

func (e *Engine) isMissed(id uuid.UUID) bool {
	for _, m := range e.missed {
		if m.ID == id {
			return true
		}
	}
	return false
}

// Next advances to the following card, pushing the current index onto the
// back history (capped at the most recent entries). At the end of the deck it
// flips the summary flag and leaves the cursor unchanged.
func (e *Engine) Next() {
	if len(e.deck) == 0 {
		return
	}

	if n := len(e.backHistory); n == 0 || e.backHistory[n-1] != e.current {
		e.backHistory = append(e.backHistory, e.current)
		if len(e.backHistory) > backHistoryLimit {
			e.backHistory = e.backHistory[len(e.backHistory)-backHistoryLimit:]
		}
	}

	if e.current+1 < len(e.deck) {
		e.current++
		e.primeCard()
	} else {
		e.showSummary = true
	}
}

// Previous pops the most recent index off the back history and restores it;
// no-op when the history is empty. Score and totalAsked are untouched: the
// idempotency flags on the revisited card prevent double counting.
func (e *Engine) Previous() {
	n := len(e.backHistory)
	if n == 0 {
		return
	}
	e.current = e.backHistory[n-1]
	e.backHistory = e.backHistory[:n-1]
	e.primeCard()
}

// ResetScore zeroes the score and asked counter and clears every card's
// score-grant flags. Phases and selections survive, so answers already given
// stay visible but can be re-scored as if never awarded. User-invoked only.
func (e *Engine) ResetScore() {
	e.score = 0
	e.totalAsked = 0
	e.cards.ClearScoreFlags()
}

// RebuildWorkingDeck re-derives the deck from the catalog and current
// settings and resets all per-session state
func (e *Engine) RebuildWorkingDeck() {
	e.deck = BuildDeck(
		e.catalog.All(),
		e.settings.ActiveCategories(),
		e.settings.Shuffle(),
		e.settings.SessionLength(),
		e.rng,
	)
	e.resetSession()
}

// RetryMissedOnly replaces the working deck with a shuffled copy of the
// missed items and starts over. With nothing missed it only dismisses the
// summary.
func (e *Engine) RetryMissedOnly() {
	if len(e.missed) == 0 {
		e.showSummary = false
		return
	}

	deck := make([]models.VocabEntry, len(e.missed))
	copy(deck, e.missed)
	e.rng.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})

	e.deck = deck
	e.resetSession()
}

// StartNewSession rebuilds the deck from current filter, shuffle and length
// settings and dismisses the summary
func (e *Engine) StartNewSession() {
	e.RebuildWorkingDeck()
}

// ToggleCategory flips a category in the active filter, persists the change
// and rebuilds the working deck
func (e *Engine) ToggleCategory(category string) {
	active := e.settings.ActiveCategories()
	if active == nil {
		active = make(map[string]bool)
	}
	if active[category] {
		delete(active, category)
	} else {
		active[category] = true
	}

	categories := make([]string, 0, len(active))
	for c := range active {
		categories = append(categories, c)
	}
	if err := e.settings.SetActiveCategories(categories); err != nil {
		log.Printf("Failed to persist active categories: %v", err)
	}

	e.RebuildWorkingDeck()
}

// SpeakCurrentWord hands the current word to the notification sink. The
// outcome is ignored; speech never affects session state.
func (e *Engine) SpeakCurrentWord() {
	entry, ok := e.CurrentCard()
	if !ok {
		return
	}
	e.sink.Speak(entry.Word, e.settings.SpeechRate(), e.settings.SpeechEnabled())
}

// SummaryResult snapshots the finished session for persistence
func (e *Engine) SummaryResult() models.SessionResult {
	return models.SessionResult{
		ID:          uuid.New(),
		StartedAt:   e.startedAt,
		CompletedAt: time.Now(),
		DeckSize:    len(e.deck),
		TotalAsked:  e.totalAsked,
		Score:       e.score,
		MissedCount: len(e.missed),
	}
}

// resetSession clears all per-session state for the freshly assigned deck and
// primes the first card
func (e *Engine) resetSession() {
	e.current = 0
	e.backHistory = nil
	e.score = 0
	e.totalAsked = 0
	e.missed = nil
	e.showSummary = false
	e.cards.ClearAll()
	e.startedAt = time.Now()
	e.primeCard()
}

// primeCard lazily creates the current card's state and regenerates its
// meaning options. Called after every cursor change.
func (e *Engine) primeCard() {
	entry, ok := e.CurrentCard()
	if !ok {
		e.options = nil
		return
	}
	e.cards.GetOrCreate(entry.ID)
	e.options = e.generateOptions(entry)
}

// generateOptions builds the multiple-choice meanings for a card: the correct
// meaning plus random distinct meanings drawn from the working deck, up to
// four total (fewer when the deck has fewer distinct meanings), in random
// order
func (e *Engine) generateOptions(entry models.VocabEntry) []string {
	distinct := make(map[string]bool, len(e.deck))
	for _, d := range e.deck {
		distinct[d.Meaning] = true
	}
	distinct[entry.Meaning] = true

	target := meaningOptionCount
	if len(distinct) < target {
		target = len(distinct)
	}

	chosen := map[string]bool{entry.Meaning: true}
	options := []string{entry.Meaning}
	for len(options) < target {
		m := e.deck[e.rng.Intn(len(e.deck))].Meaning
		if !chosen[m] {
			chosen[m] = true
			options = append(options, m)
		}
	}

	e.rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})
	return options
}

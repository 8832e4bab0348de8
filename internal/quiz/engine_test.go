package quiz

import (
	"math"
	"math/rand"
	"testing"

	"vocabdrill/internal/catalog"
	"vocabdrill/internal/models"
)

// stubSettings is an in-memory settings store for engine tests
type stubSettings struct {
	shuffle bool
	length  int
	active  map[string]bool
	rate    float64
	enabled bool
}

func (s *stubSettings) Shuffle() bool      { return s.shuffle }
func (s *stubSettings) SessionLength() int { return s.length }

func (s *stubSettings) ActiveCategories() map[string]bool {
	out := make(map[string]bool, len(s.active))
	for k, v := range s.active {
		out[k] = v
	}
	return out
}

func (s *stubSettings) SetActiveCategories(categories []string) error {
	s.active = make(map[string]bool)
	for _, c := range categories {
		s.active[c] = true
	}
	return nil
}

func (s *stubSettings) SpeechRate() float64 { return s.rate }
func (s *stubSettings) SpeechEnabled() bool { return s.enabled }

// recordingSink counts notifications and captures speech requests
type recordingSink struct {
	correct   int
	incorrect int
	spoken    []string
	rates     []float64
	enabled   []bool
}

func (r *recordingSink) NotifyCorrect()   { r.correct++ }
func (r *recordingSink) NotifyIncorrect() { r.incorrect++ }

func (r *recordingSink) Speak(word string, rate float64, enabled bool) {
	r.spoken = append(r.spoken, word)
	r.rates = append(r.rates, rate)
	r.enabled = append(r.enabled, enabled)
}

// threeWordCatalog is the scenario catalog: one word per gender
func threeWordCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.New([]catalog.Entry{
		{Word: "стіл", Meaning: "table", Gender: models.GenderMasculine, Categories: []string{"home"}},
		{Word: "книга", Meaning: "book", Gender: models.GenderFeminine, Categories: []string{"home"}},
		{Word: "вікно", Meaning: "window", Gender: models.GenderNeuter, Categories: []string{"home"}},
	})
	if err != nil {
		t.Fatalf("failed to build catalog: %v", err)
	}
	return cat
}

func newTestEngine(t *testing.T, cat *catalog.Catalog, settings *stubSettings, sink NotificationSink) *Engine {
	t.Helper()
	if settings.rate == 0 {
		settings.rate = 1.0
	}
	return NewEngine(cat, settings, sink, rand.New(rand.NewSource(7)))
}

func TestMeaningThenGenderScenario(t *testing.T) {
	sink := &recordingSink{}
	e := newTestEngine(t, threeWordCatalog(t), &stubSettings{enabled: true}, sink)

	if e.DeckSize() != 3 {
		t.Fatalf("DeckSize() = %d, want 3", e.DeckSize())
	}
	entry, ok := e.CurrentCard()
	if !ok || entry.Word != "стіл" {
		t.Fatalf("current card = %v, want стіл (catalog order, shuffle off)", entry.Word)
	}
	if e.CurrentPhase() != models.PhaseAwaitingMeaning {
		t.Fatalf("phase = %v, want awaiting meaning", e.CurrentPhase())
	}

	if !e.SubmitMeaning("table") {
		t.Fatal("SubmitMeaning rejected a valid call")
	}
	if e.Score() != 0.5 {
		t.Errorf("score = %v, want 0.5", e.Score())
	}
	if e.CurrentPhase() != models.PhaseAwaitingGender {
		t.Errorf("phase = %v, want awaiting gender", e.CurrentPhase())
	}
	if sink.correct != 1 {
		t.Errorf("correct notifications = %d, want 1", sink.correct)
	}

	if !e.SubmitGender(models.GenderFeminine) {
		t.Fatal("SubmitGender rejected a valid call")
	}
	if e.Score() != 0.5 {
		t.Errorf("score after wrong gender = %v, want 0.5", e.Score())
	}
	if e.CurrentPhase() != models.PhaseCompleted {
		t.Errorf("phase = %v, want completed", e.CurrentPhase())
	}
	if e.TotalAsked() != 1 {
		t.Errorf("totalAsked = %d, want 1", e.TotalAsked())
	}
	if sink.incorrect != 1 {
		t.Errorf("incorrect notifications = %d, want 1", sink.incorrect)
	}

	missed := e.MissedItems()
	if len(missed) != 1 || missed[0].Word != "стіл" {
		t.Errorf("missed = %v, want [стіл]", missed)
	}
}

func TestWrongMeaningStillAdvancesPhase(t *testing.T) {
	e := newTestEngine(t, threeWordCatalog(t), &stubSettings{}, &recordingSink{})

	if !e.SubmitMeaning("book") {
		t.Fatal("SubmitMeaning rejected a valid call")
	}
	if e.Score() != 0 {
		t.Errorf("score = %v, want 0", e.Score())
	}
	if e.CurrentPhase() != models.PhaseAwaitingGender {
		t.Errorf("phase = %v, want awaiting gender after wrong answer", e.CurrentPhase())
	}
}

func TestIllegalPhaseSubmissionsRejected(t *testing.T) {
	e := newTestEngine(t, threeWordCatalog(t), &stubSettings{}, &recordingSink{})

	// Gender before meaning
	if e.SubmitGender(models.GenderMasculine) {
		t.Error("SubmitGender accepted while awaiting meaning")
	}

	e.SubmitMeaning("table")

	// Second meaning submission
	if e.SubmitMeaning("table") {
		t.Error("SubmitMeaning accepted while awaiting gender")
	}
	if e.Score() != 0.5 {
		t.Errorf("score = %v, want 0.5 (no double grant)", e.Score())
	}

	e.SubmitGender(models.GenderMasculine)

	// Submissions on a completed card
	if e.SubmitMeaning("table") || e.SubmitGender(models.GenderMasculine) {
		t.Error("submission accepted on a completed card")
	}
	if e.Score() != 1.0 {
		t.Errorf("score = %v, want 1.0", e.Score())
	}
	if e.TotalAsked() != 1 {
		t.Errorf("totalAsked = %d, want 1", e.TotalAsked())
	}
}

func TestRevisitDoesNotDoubleCount(t *testing.T) {
	e := newTestEngine(t, threeWordCatalog(t), &stubSettings{}, &recordingSink{})

	// Answer meaning only, move on, come back
	e.SubmitMeaning("table")
	e.Next()
	e.Previous()

	if e.CurrentPhase() != models.PhaseAwaitingGender {
		t.Fatalf("phase = %v, want preserved awaiting gender", e.CurrentPhase())
	}
	if e.SubmitMeaning("table") {
		t.Error("revisited card accepted a second meaning answer")
	}
	if e.Score() != 0.5 {
		t.Errorf("score = %v, want 0.5", e.Score())
	}

	// Completing it now counts exactly once
	e.SubmitGender(models.GenderMasculine)
	if e.Score() != 1.0 {
		t.Errorf("score = %v, want 1.0", e.Score())
	}
	if e.TotalAsked() != 1 {
		t.Errorf("totalAsked = %d, want 1", e.TotalAsked())
	}

	// A completed card revisited again contributes nothing further
	e.Next()
	e.Previous()
	if e.SubmitGender(models.GenderMasculine) {
		t.Error("completed card accepted another gender answer")
	}
	if e.TotalAsked() != 1 {
		t.Errorf("totalAsked after revisit = %d, want 1", e.TotalAsked())
	}

	missed := e.MissedItems()
	if len(missed) != 0 {
		t.Errorf("missed = %v, want empty for a fully correct card", missed)
	}
}

func TestBackHistoryCappedAtFive(t *testing.T) {
	settings := &stubSettings{}
	e := NewEngine(catalog.Builtin(), settings, NopSink{}, rand.New(rand.NewSource(7)))

	if e.DeckSize() < 8 {
		t.Fatalf("builtin deck too small for this test: %d", e.DeckSize())
	}

	for i := 0; i < 6; i++ {
		e.Next()
	}

	// Six advances leave only the five most recent positions
	steps := 0
	for e.CanGoBack() {
		e.Previous()
		steps++
		if steps > 10 {
			t.Fatal("back history did not drain")
		}
	}
	if steps != 5 {
		t.Errorf("previous() worked %d times, want 5", steps)
	}

	// Cursor landed where the oldest retained index pointed
	if _, ok := e.CurrentCard(); !ok {
		t.Fatal("no current card after navigation")
	}
	if got := e.PositionText(); got != "2 / 45" {
		t.Errorf("position = %s, want 2 / 45 (oldest retained index)", got)
	}

	// Further previous() calls are no-ops
	e.Previous()
	if got := e.PositionText(); got != "2 / 45" {
		t.Errorf("position after no-op previous = %s, want 2 / 45", got)
	}
}

func TestNextAtDeckEndShowsSummary(t *testing.T) {
	e := newTestEngine(t, threeWordCatalog(t), &stubSettings{}, &recordingSink{})

	e.Next()
	e.Next()
	if e.ShowSummary() {
		t.Fatal("summary shown before deck exhausted")
	}

	e.Next()
	if !e.ShowSummary() {
		t.Fatal("summary not shown at deck end")
	}
	if got := e.PositionText(); got != "3 / 3" {
		t.Errorf("position = %s, want unchanged 3 / 3", got)
	}

	// The cursor still points at a valid card
	if _, ok := e.CurrentCard(); !ok {
		t.Error("no current card after exhaustion")
	}
}

func TestResetScoreKeepsAnswersVisible(t *testing.T) {
	e := newTestEngine(t, threeWordCatalog(t), &stubSettings{}, &recordingSink{})

	e.SubmitMeaning("table")
	e.SubmitGender(models.GenderFeminine) // wrong

	e.ResetScore()

	if e.Score() != 0 {
		t.Errorf("score = %v, want 0", e.Score())
	}
	if e.TotalAsked() != 0 {
		t.Errorf("totalAsked = %d, want 0", e.TotalAsked())
	}

	state, ok := e.CurrentState()
	if !ok {
		t.Fatal("card state missing after reset")
	}
	if state.Phase != models.PhaseCompleted {
		t.Errorf("phase = %v, want completed (reset must not clear it)", state.Phase)
	}
	if state.SelectedMeaning == nil || *state.SelectedMeaning != "table" {
		t.Error("selection lost on reset")
	}
	if state.MeaningScored || state.GenderScored {
		t.Error("score flags not cleared on reset")
	}
}

func TestRetryMissedOnly(t *testing.T) {
	e := newTestEngine(t, threeWordCatalog(t), &stubSettings{}, &recordingSink{})

	e.SubmitMeaning("table")
	e.SubmitGender(models.GenderFeminine) // wrong: стіл missed
	e.Next()
	e.SubmitMeaning("book")
	e.SubmitGender(models.GenderFeminine)
	e.Next()
	e.SubmitMeaning("window")
	e.SubmitGender(models.GenderNeuter)
	e.Next()

	if !e.ShowSummary() {
		t.Fatal("expected summary after completing the deck")
	}

	e.RetryMissedOnly()

	if e.DeckSize() != 1 {
		t.Fatalf("retry deck size = %d, want 1", e.DeckSize())
	}
	entry, _ := e.CurrentCard()
	if entry.Word != "стіл" {
		t.Errorf("retry card = %s, want стіл", entry.Word)
	}
	if e.Score() != 0 || e.TotalAsked() != 0 {
		t.Errorf("score/totalAsked = %v/%d, want 0/0", e.Score(), e.TotalAsked())
	}
	if e.CanGoBack() {
		t.Error("back history not cleared on retry")
	}
	if len(e.MissedItems()) != 0 {
		t.Error("missed items not consumed by retry")
	}
	if e.ShowSummary() {
		t.Error("summary flag not cleared on retry")
	}
	if e.CurrentPhase() != models.PhaseAwaitingMeaning {
		t.Errorf("phase = %v, want fresh awaiting meaning", e.CurrentPhase())
	}
}

func TestRetryWithNothingMissedOnlyClearsSummary(t *testing.T) {
	e := newTestEngine(t, threeWordCatalog(t), &stubSettings{}, &recordingSink{})

	e.SubmitMeaning("table")
	e.SubmitGender(models.GenderMasculine)
	e.Next()
	e.SubmitMeaning("book")
	e.SubmitGender(models.GenderFeminine)
	e.Next()
	e.SubmitMeaning("window")
	e.SubmitGender(models.GenderNeuter)
	e.Next()

	if !e.ShowSummary() {
		t.Fatal("expected summary")
	}

	e.RetryMissedOnly()

	if e.ShowSummary() {
		t.Error("summary flag not cleared")
	}
	if e.DeckSize() != 3 {
		t.Errorf("deck size = %d, want unchanged 3", e.DeckSize())
	}
	if e.Score() != 3.0 {
		t.Errorf("score = %v, want unchanged 3.0", e.Score())
	}
}

func TestStartNewSessionResetsEverything(t *testing.T) {
	e := newTestEngine(t, threeWordCatalog(t), &stubSettings{}, &recordingSink{})

	e.SubmitMeaning("book") // wrong
	e.SubmitGender(models.GenderFeminine)
	e.Next()

	e.StartNewSession()

	if e.Score() != 0 || e.TotalAsked() != 0 {
		t.Errorf("score/totalAsked = %v/%d, want 0/0", e.Score(), e.TotalAsked())
	}
	if len(e.MissedItems()) != 0 {
		t.Error("missed items survived a new session")
	}
	if e.CanGoBack() {
		t.Error("back history survived a new session")
	}
	if e.ShowSummary() {
		t.Error("summary flag survived a new session")
	}
	if e.CurrentPhase() != models.PhaseAwaitingMeaning {
		t.Errorf("phase = %v, want fresh awaiting meaning", e.CurrentPhase())
	}
}

func TestSessionLengthCapsDeck(t *testing.T) {
	e := newTestEngine(t, threeWordCatalog(t), &stubSettings{length: 2}, &recordingSink{})

	if e.DeckSize() != 2 {
		t.Errorf("deck size = %d, want 2", e.DeckSize())
	}
}

func TestShuffledDeckKeepsMembership(t *testing.T) {
	cat := threeWordCatalog(t)
	e := newTestEngine(t, cat, &stubSettings{shuffle: true}, &recordingSink{})

	if e.DeckSize() != 3 {
		t.Fatalf("deck size = %d, want 3", e.DeckSize())
	}
	words := make(map[string]bool)
	for i := 0; i < 3; i++ {
		entry, ok := e.CurrentCard()
		if !ok {
			t.Fatal("missing card")
		}
		words[entry.Word] = true
		e.Next()
	}
	for _, w := range []string{"стіл", "книга", "вікно"} {
		if !words[w] {
			t.Errorf("word %s missing from shuffled deck", w)
		}
	}
}

func TestMeaningOptions(t *testing.T) {
	e := NewEngine(catalog.Builtin(), &stubSettings{}, NopSink{}, rand.New(rand.NewSource(7)))

	entry, _ := e.CurrentCard()
	options := e.MeaningOptions()

	if len(options) != 4 {
		t.Fatalf("options = %d, want 4", len(options))
	}

	deckMeanings := make(map[string]bool)
	for _, c := range catalog.Builtin().All() {
		deckMeanings[c.Meaning] = true
	}

	seen := make(map[string]bool)
	foundCorrect := false
	for _, o := range options {
		if seen[o] {
			t.Errorf("duplicate option %q", o)
		}
		seen[o] = true
		if o == entry.Meaning {
			foundCorrect = true
		}
		if !deckMeanings[o] {
			t.Errorf("option %q not drawn from the deck", o)
		}
	}
	if !foundCorrect {
		t.Error("correct meaning missing from options")
	}
}

func TestMeaningOptionsSmallDeck(t *testing.T) {
	e := newTestEngine(t, threeWordCatalog(t), &stubSettings{}, &recordingSink{})

	options := e.MeaningOptions()
	if len(options) != 3 {
		t.Errorf("options = %d, want all 3 available meanings", len(options))
	}
}

func TestMeaningOptionsRegeneratedPerCard(t *testing.T) {
	e := newTestEngine(t, threeWordCatalog(t), &stubSettings{}, &recordingSink{})

	e.Next()
	entry, _ := e.CurrentCard()
	options := e.MeaningOptions()

	found := false
	for _, o := range options {
		if o == entry.Meaning {
			found = true
		}
	}
	if !found {
		t.Errorf("options %v missing correct meaning %q after navigation", options, entry.Meaning)
	}
}

func TestProgress(t *testing.T) {
	e := newTestEngine(t, threeWordCatalog(t), &stubSettings{}, &recordingSink{})

	approx := func(got, want float64) bool {
		return math.Abs(got-want) < 1e-9
	}

	if got := e.Progress(); !approx(got, 0) {
		t.Errorf("fresh progress = %v, want 0", got)
	}

	e.SubmitMeaning("table")
	if got := e.Progress(); !approx(got, 1.0/6) {
		t.Errorf("progress after meaning = %v, want 1/6", got)
	}

	e.SubmitGender(models.GenderMasculine)
	if got := e.Progress(); !approx(got, 1.0/3) {
		t.Errorf("progress after gender = %v, want 1/3", got)
	}

	e.Next()
	if got := e.Progress(); !approx(got, 1.0/3) {
		t.Errorf("progress on next card = %v, want 1/3", got)
	}
}

func TestEmptyDeckIsIdle(t *testing.T) {
	settings := &stubSettings{active: map[string]bool{"verbs": true}}
	sink := &recordingSink{}
	e := newTestEngine(t, threeWordCatalog(t), settings, sink)

	if e.DeckSize() != 0 {
		t.Fatalf("deck size = %d, want 0", e.DeckSize())
	}
	if _, ok := e.CurrentCard(); ok {
		t.Error("CurrentCard returned a card for an empty deck")
	}
	if e.SubmitMeaning("table") || e.SubmitGender(models.GenderMasculine) {
		t.Error("submission accepted with no current card")
	}

	// Navigation and speech degrade to no-ops
	e.Next()
	e.Previous()
	e.SpeakCurrentWord()

	if len(sink.spoken) != 0 {
		t.Error("speech emitted with no current card")
	}
	if got := e.PositionText(); got != "0 / 0" {
		t.Errorf("position = %s, want 0 / 0", got)
	}
	if e.Progress() != 0 {
		t.Errorf("progress = %v, want 0", e.Progress())
	}
	if len(e.MeaningOptions()) != 0 {
		t.Error("options generated for an empty deck")
	}
}

func TestToggleCategoryRebuildsDeck(t *testing.T) {
	cat, err := catalog.New([]catalog.Entry{
		{Word: "стіл", Meaning: "table", Gender: models.GenderMasculine, Categories: []string{"home"}},
		{Word: "сонце", Meaning: "sun", Gender: models.GenderNeuter, Categories: []string{"nature"}},
		{Word: "час", Meaning: "time", Gender: models.GenderMasculine},
	})
	if err != nil {
		t.Fatalf("failed to build catalog: %v", err)
	}

	settings := &stubSettings{rate: 1.0}
	e := NewEngine(cat, settings, NopSink{}, rand.New(rand.NewSource(7)))

	if e.DeckSize() != 3 {
		t.Fatalf("deck size = %d, want 3 with no filter", e.DeckSize())
	}

	e.ToggleCategory("home")
	if e.DeckSize() != 1 {
		t.Errorf("deck size = %d, want 1 with home filter", e.DeckSize())
	}
	if !settings.active["home"] {
		t.Error("toggle not persisted to settings")
	}

	e.ToggleCategory("home")
	if e.DeckSize() != 3 {
		t.Errorf("deck size = %d, want 3 after filter removed", e.DeckSize())
	}
	if len(settings.active) != 0 {
		t.Error("filter removal not persisted")
	}
}

func TestSpeakCurrentWord(t *testing.T) {
	sink := &recordingSink{}
	settings := &stubSettings{rate: 0.8, enabled: true}
	e := newTestEngine(t, threeWordCatalog(t), settings, sink)

	e.SpeakCurrentWord()

	if len(sink.spoken) != 1 || sink.spoken[0] != "стіл" {
		t.Fatalf("spoken = %v, want [стіл]", sink.spoken)
	}
	if sink.rates[0] != 0.8 {
		t.Errorf("rate = %v, want 0.8", sink.rates[0])
	}
	if !sink.enabled[0] {
		t.Error("enabled flag not passed through")
	}
}

func TestScoreAndPositionText(t *testing.T) {
	e := newTestEngine(t, threeWordCatalog(t), &stubSettings{}, &recordingSink{})

	if got := e.ScoreText(); got != "0.0 / 0" {
		t.Errorf("ScoreText() = %q, want \"0.0 / 0\"", got)
	}
	if got := e.PositionText(); got != "1 / 3" {
		t.Errorf("PositionText() = %q, want \"1 / 3\"", got)
	}

	e.SubmitMeaning("table")
	e.SubmitGender(models.GenderFeminine)
	if got := e.ScoreText(); got != "0.5 / 1" {
		t.Errorf("ScoreText() = %q, want \"0.5 / 1\"", got)
	}
}

func TestSummaryResult(t *testing.T) {
	e := newTestEngine(t, threeWordCatalog(t), &stubSettings{}, &recordingSink{})

	e.SubmitMeaning("table")
	e.SubmitGender(models.GenderFeminine) // wrong
	e.Next()
	e.SubmitMeaning("book")
	e.SubmitGender(models.GenderFeminine)
	e.Next()
	e.SubmitMeaning("window")
	e.SubmitGender(models.GenderNeuter)
	e.Next()

	result := e.SummaryResult()
	if result.DeckSize != 3 {
		t.Errorf("DeckSize = %d, want 3", result.DeckSize)
	}
	if result.TotalAsked != 3 {
		t.Errorf("TotalAsked = %d, want 3", result.TotalAsked)
	}
	if result.Score != 2.5 {
		t.Errorf("Score = %v, want 2.5", result.Score)
	}
	if result.MissedCount != 1 {
		t.Errorf("MissedCount = %d, want 1", result.MissedCount)
	}
	if result.CompletedAt.Before(result.StartedAt) {
		t.Error("CompletedAt before StartedAt")
	}
}

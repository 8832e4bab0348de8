package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"sync"

	"vocabdrill/internal/catalog"
	"vocabdrill/internal/models"
	"vocabdrill/internal/quiz"
)

// ResultsStore persists finished session summaries
type ResultsStore interface {
	Insert(result models.SessionResult) error
	Recent(limit int) ([]models.SessionResult, error)
}

// QuizHandler exposes the quiz engine as JSON endpoints. The engine is
// single-threaded, so every request takes the handler mutex and runs to
// completion before the next mutation is accepted.
type QuizHandler struct {
	mu       sync.Mutex
	engine   *quiz.Engine
	catalog  *catalog.Catalog
	settings quiz.SettingsStore
	results  ResultsStore
}

// NewQuizHandler creates a new quiz handler
func NewQuizHandler(engine *quiz.Engine, cat *catalog.Catalog, settings quiz.SettingsStore, results ResultsStore) *QuizHandler {
	return &QuizHandler{
		engine:   engine,
		catalog:  cat,
		settings: settings,
		results:  results,
	}
}

// cardView is the JSON shape of the current quiz state
type cardView struct {
	HasCard         bool            `json:"hasCard"`
	Word            string          `json:"word,omitempty"`
	Phase           string          `json:"phase,omitempty"`
	Options         []string        `json:"options,omitempty"`
	Genders         []models.Gender `json:"genders"`
	SelectedMeaning *string         `json:"selectedMeaning,omitempty"`
	SelectedGender  *models.Gender  `json:"selectedGender,omitempty"`
	MeaningCorrect  *bool           `json:"meaningCorrect,omitempty"`
	GenderCorrect   *bool           `json:"genderCorrect,omitempty"`
	ScoreText       string          `json:"scoreText"`
	PositionText    string          `json:"positionText"`
	Progress        float64         `json:"progress"`
	CanGoBack       bool            `json:"canGoBack"`
	ShowSummary     bool            `json:"showSummary"`
	Missed          []missedView    `json:"missed"`
}

// missedView is one missed vocabulary item in the summary
type missedView struct {
	Word    string        `json:"word"`
	Meaning string        `json:"meaning"`
	Gender  models.Gender `json:"gender"`
}

// buildCardView snapshots the engine for the client; callers must hold the mutex
func (h *QuizHandler) buildCardView() cardView {
	view := cardView{
		Genders:      models.Genders,
		ScoreText:    h.engine.ScoreText(),
		PositionText: h.engine.PositionText(),
		Progress:     h.engine.Progress(),
		CanGoBack:    h.engine.CanGoBack(),
		ShowSummary:  h.engine.ShowSummary(),
		Missed:       []missedView{},
	}

	if entry, ok := h.engine.CurrentCard(); ok {
		view.HasCard = true
		view.Word = entry.Word
		view.Options = h.engine.MeaningOptions()
		if state, ok := h.engine.CurrentState(); ok {
			view.Phase = string(state.Phase)
			view.SelectedMeaning = state.SelectedMeaning
			view.SelectedGender = state.SelectedGender
			view.MeaningCorrect = state.MeaningCorrect
			view.GenderCorrect = state.GenderCorrect
		}
	}

	for _, m := range h.engine.MissedItems() {
		view.Missed = append(view.Missed, missedView{
			Word:    m.Word,
			Meaning: m.Meaning,
			Gender:  m.Gender,
		})
	}

	return view
}

// respondWithCard writes the current quiz state as JSON
func (h *QuizHandler) respondWithCard(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(h.buildCardView()); err != nil {
		log.Printf("Error encoding card view: %v", err)
	}
}

// GetCard returns the current card and session state
func (h *QuizHandler) GetCard(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.respondWithCard(w)
}

// SubmitMeaning handles the meaning answer for the current card
func (h *QuizHandler) SubmitMeaning(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Choice string `json:"choice"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.engine.SubmitMeaning(req.Choice) {
		respondWithError(w, http.StatusConflict, "Card is not awaiting a meaning answer", "", nil)
		return
	}
	h.respondWithCard(w)
}

// SubmitGender handles the gender answer for the current card
func (h *QuizHandler) SubmitGender(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Choice models.Gender `json:"choice"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", err)
		return
	}
	if !req.Choice.IsValid() {
		respondWithError(w, http.StatusBadRequest, "Unknown gender", "", nil)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.engine.SubmitGender(req.Choice) {
		respondWithError(w, http.StatusConflict, "Card is not awaiting a gender answer", "", nil)
		return
	}
	h.respondWithCard(w)
}

// Next advances to the following card, recording the session summary when
// the deck has just been exhausted
func (h *QuizHandler) Next(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	wasSummary := h.engine.ShowSummary()
	h.engine.Next()

	if !wasSummary && h.engine.ShowSummary() {
		// Best-effort history; the session flow never depends on it
		if err := h.results.Insert(h.engine.SummaryResult()); err != nil {
			log.Printf("Failed to record session result: %v", err)
		}
	}

	h.respondWithCard(w)
}

// Previous steps back to the most recently visited card
func (h *QuizHandler) Previous(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.engine.Previous()
	h.respondWithCard(w)
}

// ResetScore zeroes the score while keeping answers visible
func (h *QuizHandler) ResetScore(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.engine.ResetScore()
	h.respondWithCard(w)
}

// NewSession rebuilds the deck from current settings
func (h *QuizHandler) NewSession(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.engine.StartNewSession()
	h.respondWithCard(w)
}

// RetryMissed starts a focused session over the missed items
func (h *QuizHandler) RetryMissed(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.engine.RetryMissedOnly()
	h.respondWithCard(w)
}

// ToggleCategory flips a category filter and rebuilds the deck
func (h *QuizHandler) ToggleCategory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Category string `json:"category"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", err)
		return
	}

	known := false
	for _, c := range h.catalog.Categories() {
		if c == req.Category {
			known = true
			break
		}
	}
	if !known {
		respondWithError(w, http.StatusBadRequest, "Unknown category", "", nil)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.engine.ToggleCategory(req.Category)
	h.respondWithCard(w)
}

// categoryView is one category with its filter state
type categoryView struct {
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

// Categories lists all catalog categories with their active flags
func (h *QuizHandler) Categories(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	active := h.settings.ActiveCategories()
	views := make([]categoryView, 0)
	for _, c := range h.catalog.Categories() {
		views = append(views, categoryView{Name: c, Active: active[c]})
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(views); err != nil {
		log.Printf("Error encoding categories: %v", err)
	}
}

// Speak requests pronunciation of the current word
func (h *QuizHandler) Speak(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.engine.SpeakCurrentWord()
	w.WriteHeader(http.StatusAccepted)
}

// Results returns recently completed session summaries
func (h *QuizHandler) Results(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			respondWithError(w, http.StatusBadRequest, "Invalid limit", "", err)
			return
		}
		limit = n
	}

	results, err := h.results.Recent(limit)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load results", "Error loading session results", err)
		return
	}
	if results == nil {
		results = []models.SessionResult{}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(results); err != nil {
		log.Printf("Error encoding results: %v", err)
	}
}

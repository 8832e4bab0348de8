package repository

import (
	"strconv"
	"strings"

	"vocabdrill/internal/database"
)

// Setting keys
const (
	settingShuffle          = "shuffle"
	settingSessionLength    = "session_length"
	settingActiveCategories = "active_categories"
	settingSpeechRate       = "speech_rate"
	settingSpeechEnabled    = "speech_enabled"
)

// SettingsRepository persists quiz configuration as key/value rows. Reads
// fall back to defaults on any miss or error, so the quiz always has a
// usable configuration.
type SettingsRepository struct {
	db *database.DB
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(db *database.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// GetSetting retrieves a setting value by name
func (r *SettingsRepository) GetSetting(name string) (string, error) {
	var value string
	query := `SELECT value FROM settings WHERE name = ?`
	err := r.db.QueryRow(query, name).Scan(&value)
	return value, err
}

// SetSetting updates or inserts a setting
func (r *SettingsRepository) SetSetting(name, value string) error {
	query := r.db.Dialect.UpsertSetting()
	_, err := r.db.Exec(query, name, value)
	return err
}

// Shuffle reports whether decks should be randomly permuted
func (r *SettingsRepository) Shuffle() bool {
	value, err := r.GetSetting(settingShuffle)
	if err != nil {
		return true // Shuffled drills by default
	}
	return value == "true"
}

// SetShuffle persists the shuffle flag
func (r *SettingsRepository) SetShuffle(enabled bool) error {
	return r.SetSetting(settingShuffle, strconv.FormatBool(enabled))
}

// SessionLength returns the deck cap; 0 means unlimited
func (r *SettingsRepository) SessionLength() int {
	value, err := r.GetSetting(settingSessionLength)
	if err != nil {
		return 0
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// SetSessionLength persists the deck cap
func (r *SettingsRepository) SetSessionLength(length int) error {
	return r.SetSetting(settingSessionLength, strconv.Itoa(length))
}

// ActiveCategories returns the active category filter as a set; empty means
// no filtering
func (r *SettingsRepository) ActiveCategories() map[string]bool {
	active := make(map[string]bool)
	value, err := r.GetSetting(settingActiveCategories)
	if err != nil || value == "" {
		return active
	}
	for _, c := range strings.Split(value, ",") {
		if c = strings.TrimSpace(c); c != "" {
			active[c] = true
		}
	}
	return active
}

// SetActiveCategories persists the active category filter
func (r *SettingsRepository) SetActiveCategories(categories []string) error {
	return r.SetSetting(settingActiveCategories, strings.Join(categories, ","))
}

// SpeechRate returns the speech playback rate (1.0 = normal)
func (r *SettingsRepository) SpeechRate() float64 {
	value, err := r.GetSetting(settingSpeechRate)
	if err != nil {
		return 1.0
	}
	rate, err := strconv.ParseFloat(value, 64)
	if err != nil || rate <= 0 {
		return 1.0
	}
	return rate
}

// SetSpeechRate persists the speech playback rate
func (r *SettingsRepository) SetSpeechRate(rate float64) error {
	return r.SetSetting(settingSpeechRate, strconv.FormatFloat(rate, 'f', -1, 64))
}

// SpeechEnabled reports whether word pronunciation is on
func (r *SettingsRepository) SpeechEnabled() bool {
	value, err := r.GetSetting(settingSpeechEnabled)
	if err != nil {
		return true
	}
	return value == "true"
}

// SetSpeechEnabled persists the speech flag
func (r *SettingsRepository) SetSpeechEnabled(enabled bool) error {
	return r.SetSetting(settingSpeechEnabled, strconv.FormatBool(enabled))
}

package quiz

// SettingsStore supplies session configuration and persists changes. The
// engine reads it at rebuild points only, never mid-session; external updates
// take effect on the next rebuild.
type SettingsStore interface {
	Shuffle() bool
	SessionLength() int
	ActiveCategories() map[string]bool
	SetActiveCategories(categories []string) error
	SpeechRate() float64
	SpeechEnabled() bool
}

// NotificationSink receives answer feedback and speech requests. Calls are
// fire-and-forget: implementations must not block and their failures never
// reach the engine.
type NotificationSink interface {
	NotifyCorrect()
	NotifyIncorrect()
	Speak(word string, rate float64, enabled bool)
}

// NopSink discards all notifications
type NopSink struct{}

func (NopSink) NotifyCorrect()              {}
func (NopSink) NotifyIncorrect()            {}
func (NopSink) Speak(string, float64, bool) {}

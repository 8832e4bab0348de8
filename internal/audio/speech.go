package audio

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const ttsRequestTimeout = 10 * time.Second

// Speaker pronounces quiz words by fetching and caching MP3 files from the
// Google Translate TTS endpoint (free, no API key needed). It implements the
// engine's notification sink: every call is fire-and-forget and failures are
// logged, never returned.
type Speaker struct {
	audioDir string
	lang     string
	client   *http.Client
}

// NewSpeaker creates a speaker caching audio under audioDir, speaking the
// given language
func NewSpeaker(audioDir, lang string) *Speaker {
	return &Speaker{
		audioDir: audioDir,
		lang:     lang,
		client:   &http.Client{Timeout: ttsRequestTimeout},
	}
}

// NotifyCorrect receives a correct-answer event
func (s *Speaker) NotifyCorrect() {
	log.Println("Answer feedback: correct")
}

// NotifyIncorrect receives an incorrect-answer event
func (s *Speaker) NotifyIncorrect() {
	log.Println("Answer feedback: incorrect")
}

// Speak fetches and caches the pronunciation for a word in the background.
// Disabled speech is a no-op; the caller never waits on or learns about the
// fetch outcome.
func (s *Speaker) Speak(word string, rate float64, enabled bool) {
	if !enabled || word == "" {
		return
	}
	go func() {
		if _, err := s.EnsureAudioFile(word, rate); err != nil {
			log.Printf("Failed to fetch speech for %q: %v", word, err)
		}
	}()
}

// EnsureAudioFile returns the cached audio filename for a word, fetching it
// first if it is not cached yet
func (s *Speaker) EnsureAudioFile(word string, rate float64) (string, error) {
	sanitized := strings.ToLower(strings.TrimSpace(word))
	sanitized = strings.ReplaceAll(sanitized, " ", "_")

	filename := fmt.Sprintf("word_%s.mp3", sanitized)
	path := filepath.Join(s.audioDir, filename)

	if _, err := os.Stat(path); err == nil {
		return filename, nil
	}

	if err := s.fetchTTS(word, rate, path); err != nil {
		return "", fmt.Errorf("failed to generate audio: %w", err)
	}
	return filename, nil
}

// fetchTTS downloads the spoken word from the Google Translate TTS endpoint
func (s *Speaker) fetchTTS(text string, rate float64, outputPath string) error {
	baseURL := "https://translate.google.com/translate_tts"

	params := url.Values{}
	params.Set("ie", "UTF-8")
	params.Set("q", text)
	params.Set("tl", s.lang)
	params.Set("client", "tw-ob")
	params.Set("textlen", fmt.Sprintf("%d", len(text)))
	params.Set("ttsspeed", fmt.Sprintf("%g", rate))

	fullURL := baseURL + "?" + params.Encode()

	ctx, cancel := context.WithTimeout(context.Background(), ttsRequestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "GET", fullURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	// The endpoint rejects requests without a browser user agent
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch audio: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	if err := os.MkdirAll(s.audioDir, 0o755); err != nil {
		return fmt.Errorf("failed to create audio directory: %w", err)
	}

	outFile, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer outFile.Close()

	if _, err := io.Copy(outFile, resp.Body); err != nil {
		return fmt.Errorf("failed to write audio file: %w", err)
	}

	return nil
}

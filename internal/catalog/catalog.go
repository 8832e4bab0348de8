package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/google/uuid"

	"vocabdrill/internal/models"
)

// Entry is the load-time shape of a vocabulary entry, before an ID is assigned
type Entry struct {
	Word       string         `json:"word"`
	Meaning    string         `json:"meaning"`
	Gender     models.Gender  `json:"gender"`
	Categories []string       `json:"categories"`
}

// Catalog is the immutable list of vocabulary entries the quiz draws from.
// IDs are assigned once at load time and are stable for the process lifetime.
type Catalog struct {
	entries    []models.VocabEntry
	categories []string
}

// New builds a catalog from raw entries, assigning stable IDs
func New(raw []Entry) (*Catalog, error) {
	entries := make([]models.VocabEntry, 0, len(raw))
	categorySet := make(map[string]bool)

	for i, e := range raw {
		if e.Word == "" || e.Meaning == "" {
			return nil, fmt.Errorf("entry %d: word and meaning are required", i)
		}
		if !e.Gender.IsValid() {
			return nil, fmt.Errorf("entry %d (%s): invalid gender %q", i, e.Word, e.Gender)
		}
		entries = append(entries, models.VocabEntry{
			ID:         uuid.New(),
			Word:       e.Word,
			Meaning:    e.Meaning,
			Gender:     e.Gender,
			Categories: append([]string(nil), e.Categories...),
		})
		for _, c := range e.Categories {
			categorySet[c] = true
		}
	}

	categories := make([]string, 0, len(categorySet))
	for c := range categorySet {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	return &Catalog{entries: entries, categories: categories}, nil
}

// Builtin returns the catalog built from the seed word list
func Builtin() *Catalog {
	c, err := New(builtinEntries)
	if err != nil {
		// The seed list is compiled in; a bad entry is a programming error
		panic(fmt.Sprintf("builtin catalog: %v", err))
	}
	return c
}

// LoadFile reads a catalog from a JSON file of entries
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var raw []Entry
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file %s: %w", path, err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("catalog file %s contains no entries", path)
	}

	return New(raw)
}

// All returns every entry in catalog order
func (c *Catalog) All() []models.VocabEntry {
	out := make([]models.VocabEntry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Len returns the number of entries
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Categories returns all category tags present in the catalog, sorted
func (c *Catalog) Categories() []string {
	out := make([]string, len(c.categories))
	copy(out, c.categories)
	return out
}

// ByID looks up an entry by its identifier
func (c *Catalog) ByID(id uuid.UUID) (models.VocabEntry, bool) {
	for _, e := range c.entries {
		if e.ID == id {
			return e, true
		}
	}
	return models.VocabEntry{}, false
}

// Package vocabulary holds the parallel word lists every curriculum is built from.
package vocabulary

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/example/lingoladder/pkg/models"
)

// DefaultLanguage is used whenever a requested language has no word list
const DefaultLanguage = "en"

var ErrEmptyWordList = errors.New("vocabulary: empty word list")

// Table maps language codes to index-aligned word lists
type Table struct {
	mu    sync.RWMutex
	words map[string][]string
}

// NewTable returns a table seeded with the built-in word lists.
func NewTable() *Table {
	t := &Table{words: make(map[string][]string, len(builtin))}
	for code, words := range builtin {
		t.words[code] = append([]string(nil), words...)
	}
	return t
}

// NewEmptyTable returns a table with no languages.
func NewEmptyTable() *Table {
	return &Table{words: make(map[string][]string)}
}

// Words returns a copy of the list for code.
func (t *Table) Words(code string) ([]string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	words, ok := t.words[normalizeCode(code)]
	if !ok {
		return nil, false
	}
	return append([]string(nil), words...), true
}

// WordsOrDefault returns the list for code, or the default language's list
// when code is unknown. fallback reports whether the default was used.
func (t *Table) WordsOrDefault(code string) (words []string, fallback bool) {
	if words, ok := t.Words(code); ok {
		return words, false
	}
	words, _ = t.Words(DefaultLanguage)
	return words, true
}

// Entries returns the list for code as vocabulary entries.
func (t *Table) Entries(code string) []models.VocabularyEntry {
	words, ok := t.Words(code)
	if !ok {
		return nil
	}
	entries := make([]models.VocabularyEntry, len(words))
	for i, w := range words {
		entries[i] = models.VocabularyEntry{Word: w, TranslationIdx: i}
	}
	return entries
}

// Lookup finds the index of word in the list for code, ignoring case and
// surrounding whitespace.
func (t *Table) Lookup(code, word string) (int, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	needle := strings.ToLower(strings.TrimSpace(word))
	for i, w := range t.words[normalizeCode(code)] {
		if strings.ToLower(w) == needle {
			return i, true
		}
	}
	return 0, false
}

// Has reports whether the table holds a list for code.
func (t *Table) Has(code string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.words[normalizeCode(code)]
	return ok
}

// Languages returns the known languages sorted by code.
func (t *Table) Languages() []models.Language {
	t.mu.RLock()
	defer t.mu.RUnlock()

	langs := make([]models.Language, 0, len(t.words))
	for code := range t.words {
		langs = append(langs, models.Language{Code: code, Label: Label(code)})
	}
	sort.Slice(langs, func(i, j int) bool { return langs[i].Code < langs[j].Code })
	return langs
}

// Merge replaces the list for code. Imported lists must stay index-aligned
// with the lists already present; that is the importer's responsibility.
func (t *Table) Merge(code string, words []string) error {
	code = normalizeCode(code)
	if code == "" {
		return fmt.Errorf("vocabulary: empty language code")
	}
	if len(words) == 0 {
		return fmt.Errorf("%w for %q", ErrEmptyWordList, code)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.words[code] = append([]string(nil), words...)
	return nil
}

// Label returns the display name of a language, or the code itself.
func Label(code string) string {
	if l, ok := labels[normalizeCode(code)]; ok {
		return l
	}
	return code
}

// Locale returns the BCP-47 tag for speech collaborators. Unknown codes are
// returned unchanged.
func Locale(code string) string {
	if l, ok := locales[normalizeCode(code)]; ok {
		return l
	}
	return code
}

func normalizeCode(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}

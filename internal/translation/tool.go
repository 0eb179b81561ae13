package translation

import (
	"context"
	"strings"

	"github.com/example/lingoladder/internal/similarity"
	"github.com/example/lingoladder/internal/vocabulary"
	"github.com/example/lingoladder/pkg/models"
	"go.uber.org/zap"
)

// Source tells where a translation came from.
type Source string

const (
	SourceOnline  Source = "online"
	SourceOffline Source = "offline"
	SourcePartial Source = "partial"
	SourceNone    Source = "none"
)

// Result is the answer to a "how do you say" question.
type Result struct {
	Text   string `json:"text"`
	Source Source `json:"source"`
	// Locale is the speech tag for Text, e.g. es-ES.
	Locale string `json:"locale,omitempty"`
}

// Found reports whether any translation was produced.
func (r Result) Found() bool {
	return r.Source != SourceNone && r.Text != ""
}

// Check is a scored spoken or typed attempt at a translation.
type Check struct {
	Result
	Attempt  string `json:"attempt"`
	Score    int    `json:"score"`
	Passed   bool   `json:"passed"`
	Feedback string `json:"feedback"`
}

// Tool translates from a learner's base language into the target language.
type Tool struct {
	provider Provider
	table    *vocabulary.Table
	log      *zap.Logger
}

// NewTool creates a tool. provider may be nil for offline-only use.
func NewTool(provider Provider, table *vocabulary.Table, log *zap.Logger) *Tool {
	if log == nil {
		log = zap.NewNop()
	}
	return &Tool{provider: provider, table: table, log: log}
}

// Translate renders text from pair.Base into pair.Target. When the online
// provider is missing or fails, the vocabulary table is searched.
func (t *Tool) Translate(ctx context.Context, text string, pair models.LanguagePair) Result {
	text = strings.TrimSpace(text)
	if text == "" {
		return Result{Source: SourceNone}
	}

	if t.provider != nil {
		out, err := t.provider.Translate(ctx, text, pair.Base, pair.Target)
		if err == nil && strings.TrimSpace(out) != "" {
			return Result{Text: strings.TrimSpace(out), Source: SourceOnline, Locale: vocabulary.Locale(pair.Target)}
		}
		t.log.Warn("online translation failed, using offline vocabulary",
			zap.Stringer("pair", pair), zap.Error(err))
	}

	return t.offline(text, pair)
}

// Check translates text and scores attempt against the translation.
func (t *Tool) Check(ctx context.Context, text, attempt string, pair models.LanguagePair) Check {
	res := t.Translate(ctx, text, pair)
	c := Check{Result: res, Attempt: attempt}
	if !res.Found() {
		return c
	}
	c.Score = similarity.Score(res.Text, attempt)
	c.Passed = similarity.Passed(c.Score)
	c.Feedback = similarity.Feedback(c.Score)
	return c
}

func (t *Tool) offline(text string, pair models.LanguagePair) Result {
	base, _ := t.table.Words(pair.Base)
	target, _ := t.table.Words(pair.Target)

	if w, ok := t.lookup(pair.Base, text, target); ok {
		return Result{Text: w, Source: SourceOffline, Locale: vocabulary.Locale(pair.Target)}
	}
	// the learner may have typed a target word and want its meaning
	if w, ok := t.lookup(pair.Target, text, base); ok {
		return Result{Text: w, Source: SourceOffline, Locale: vocabulary.Locale(pair.Base)}
	}

	words := strings.Fields(strings.ToLower(text))
	if len(words) > 1 {
		replaced := false
		out := make([]string, len(words))
		for i, w := range words {
			out[i] = w
			if tw, ok := t.lookup(pair.Base, w, target); ok {
				out[i] = tw
				replaced = true
			}
		}
		if replaced {
			return Result{Text: strings.Join(out, " "), Source: SourcePartial, Locale: vocabulary.Locale(pair.Target)}
		}
	}

	for _, w := range words {
		if tw, ok := t.lookup(pair.Target, w, base); ok {
			return Result{Text: tw, Source: SourcePartial, Locale: vocabulary.Locale(pair.Base)}
		}
	}
	return Result{Source: SourceNone}
}

// lookup finds word in language code and returns the aligned entry of other.
func (t *Tool) lookup(code, word string, other []string) (string, bool) {
	idx, ok := t.table.Lookup(code, word)
	if !ok || idx >= len(other) || other[idx] == "" {
		return "", false
	}
	return other[idx], true
}

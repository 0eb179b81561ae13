// Package curriculum partitions a language's vocabulary into ordered levels
// that mix new words with review of words from earlier levels.
package curriculum

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/example/lingoladder/internal/vocabulary"
	"github.com/example/lingoladder/pkg/models"
	"go.uber.org/zap"
)

const (
	DefaultWordsPerLevel  = 10
	DefaultReviewFraction = 0.3
)

// ErrInvalidParameters is returned for option values no caller should send.
var ErrInvalidParameters = errors.New("curriculum: invalid parameters")

// Options controls level size and the share of review slots
type Options struct {
	WordsPerLevel  int
	ReviewFraction float64
}

// DefaultOptions returns 10 words per level with 30% review.
func DefaultOptions() Options {
	return Options{WordsPerLevel: DefaultWordsPerLevel, ReviewFraction: DefaultReviewFraction}
}

func (o Options) validate() error {
	if o.WordsPerLevel <= 0 {
		return fmt.Errorf("%w: words per level must be positive, got %d", ErrInvalidParameters, o.WordsPerLevel)
	}
	if o.ReviewFraction < 0 || o.ReviewFraction >= 1 || math.IsNaN(o.ReviewFraction) {
		return fmt.Errorf("%w: review fraction must be in [0, 1), got %v", ErrInvalidParameters, o.ReviewFraction)
	}
	return nil
}

// newPerLevel is ceil(WordsPerLevel * (1 - ReviewFraction)), computed as
// WordsPerLevel - floor(WordsPerLevel * ReviewFraction) so that 10 * 0.7 does
// not round up to 8.
func (o Options) newPerLevel() int {
	reviewSlots := int(math.Floor(float64(o.WordsPerLevel)*o.ReviewFraction + 1e-9))
	n := o.WordsPerLevel - reviewSlots
	if n < 1 {
		n = 1
	}
	return n
}

// Generator builds level sets. Review picks come from its random source, so a
// seeded generator produces identical output for identical input.
type Generator struct {
	rnd *rand.Rand
	log *zap.Logger
}

// NewGenerator creates a generator drawing review picks from rnd.
func NewGenerator(rnd *rand.Rand, log *zap.Logger) *Generator {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Generator{rnd: rnd, log: log}
}

// NewSeededGenerator creates a deterministic generator.
func NewSeededGenerator(seed int64, log *zap.Logger) *Generator {
	return NewGenerator(rand.New(rand.NewSource(seed)), log)
}

// Generate walks targetWords in index order. Each level introduces the next
// batch of new words and fills the remaining slots with words introduced in
// earlier levels. baseWords is index-aligned with targetWords; a missing base
// word yields an empty translation.
func (g *Generator) Generate(targetWords, baseWords []string, opts Options) ([]models.Level, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	perLevel := opts.newPerLevel()
	levels := make([]models.Level, 0, len(targetWords)/perLevel+1)
	learned := make([]int, 0, len(targetWords))

	for cursor, number := 0, 1; cursor < len(targetWords); number++ {
		newCount := perLevel
		if remaining := len(targetWords) - cursor; remaining < newCount {
			newCount = remaining
		}

		indices := make([]int, 0, opts.WordsPerLevel)
		for i := 0; i < newCount; i++ {
			indices = append(indices, cursor+i)
		}
		indices = append(indices, g.pickReview(learned, opts.WordsPerLevel-newCount)...)

		words := make([]models.WordPair, len(indices))
		for i, idx := range indices {
			words[i] = pair(targetWords, baseWords, idx)
		}

		levels = append(levels, models.Level{LevelNumber: number, Words: words})

		learned = append(learned, indices[:newCount]...)
		cursor += newCount
	}

	return levels, nil
}

// GenerateForPair resolves both word lists from table. Unknown codes fall back
// to the default language and are logged as degraded mode.
func (g *Generator) GenerateForPair(table *vocabulary.Table, pair models.LanguagePair, opts Options) ([]models.Level, error) {
	target, fallback := table.WordsOrDefault(pair.Target)
	if fallback {
		g.log.Warn("no vocabulary for target language, using default",
			zap.String("language", pair.Target), zap.String("default", vocabulary.DefaultLanguage))
	}
	base, fallback := table.WordsOrDefault(pair.Base)
	if fallback {
		g.log.Warn("no vocabulary for base language, using default",
			zap.String("language", pair.Base), zap.String("default", vocabulary.DefaultLanguage))
	}

	levels, err := g.Generate(target, base, opts)
	if err != nil {
		return nil, err
	}

	g.log.Debug("generated levels",
		zap.Stringer("pair", pair), zap.Int("levels", len(levels)), zap.Int("words", len(target)))
	return levels, nil
}

// pickReview draws n indices from pool. Distinct picks are preferred; when the
// pool is smaller than n, indices repeat. An empty pool yields nothing.
func (g *Generator) pickReview(pool []int, n int) []int {
	if len(pool) == 0 || n <= 0 {
		return nil
	}

	picks := make([]int, 0, n)
	if len(pool) >= n {
		for _, p := range g.rnd.Perm(len(pool))[:n] {
			picks = append(picks, pool[p])
		}
		return picks
	}

	for i := 0; i < n; i++ {
		picks = append(picks, pool[g.rnd.Intn(len(pool))])
	}
	return picks
}

func pair(targetWords, baseWords []string, idx int) models.WordPair {
	p := models.WordPair{Word: targetWords[idx], SourceIndex: idx}
	if idx < len(baseWords) {
		p.Translation = baseWords[idx]
	}
	return p
}

package curriculum

import (
	"fmt"
	"testing"

	"github.com/example/lingoladder/internal/vocabulary"
	"github.com/example/lingoladder/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleWords(prefix string, n int) []string {
	words := make([]string, n)
	for i := range words {
		words[i] = fmt.Sprintf("%s%d", prefix, i)
	}
	return words
}

func newIndices(l models.Level, count int) []int {
	out := make([]int, 0, count)
	for _, w := range l.Words[:count] {
		out = append(out, w.SourceIndex)
	}
	return out
}

func TestOptions_newPerLevel(t *testing.T) {
	tests := []struct {
		opts Options
		want int
	}{
		{Options{WordsPerLevel: 10, ReviewFraction: 0.3}, 7},
		{Options{WordsPerLevel: 10, ReviewFraction: 0.7}, 3},
		{Options{WordsPerLevel: 10, ReviewFraction: 0}, 10},
		{Options{WordsPerLevel: 3, ReviewFraction: 0.5}, 2},
		{Options{WordsPerLevel: 1, ReviewFraction: 0.5}, 1},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, tc.opts.newPerLevel(), "%+v", tc.opts)
	}
}

func TestGenerator_Generate_BuiltinSpanish(t *testing.T) {
	table := vocabulary.NewTable()
	es, _ := table.Words("es")
	en, _ := table.Words("en")

	levels, err := NewSeededGenerator(1, nil).Generate(es, en, DefaultOptions())
	require.NoError(t, err)

	// 39 words at 7 new per level: 7*5 + 4.
	require.Len(t, levels, 6)

	first := levels[0]
	assert.Equal(t, 1, first.LevelNumber)
	require.Len(t, first.Words, 7)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6}, newIndices(first, 7))
	assert.Equal(t, models.WordPair{Word: "hola", Translation: "hello", SourceIndex: 0}, first.Words[0])

	second := levels[1]
	require.Len(t, second.Words, 10)
	assert.Equal(t, []int{7, 8, 9, 10, 11, 12, 13}, newIndices(second, 7))
	for _, w := range second.Words[7:] {
		assert.Less(t, w.SourceIndex, 7, "review pick must come from level 1")
		assert.Equal(t, es[w.SourceIndex], w.Word)
		assert.Equal(t, en[w.SourceIndex], w.Translation)
	}

	last := levels[5]
	require.Len(t, last.Words, 10)
	assert.Equal(t, []int{35, 36, 37, 38}, newIndices(last, 4))
	for _, w := range last.Words[4:] {
		assert.Less(t, w.SourceIndex, 35)
	}
}

func TestGenerator_Generate_ReviewOnlyFromEarlierLevels(t *testing.T) {
	words := sampleWords("w", 40)
	levels, err := NewSeededGenerator(42, nil).Generate(words, sampleWords("b", 40), DefaultOptions())
	require.NoError(t, err)
	require.Len(t, levels, 6)

	cursor := 0
	for i, l := range levels {
		assert.Equal(t, i+1, l.LevelNumber, "levels are contiguous")

		newCount := 7
		if rem := 40 - cursor; rem < newCount {
			newCount = rem
		}
		assert.Equal(t, cursor, l.Words[0].SourceIndex)
		for _, w := range l.Words[newCount:] {
			assert.Less(t, w.SourceIndex, cursor)
		}
		if i > 0 {
			assert.Len(t, l.Words, 10)
		}
		cursor += newCount
	}
	assert.Equal(t, 40, cursor)
}

func TestGenerator_Generate_NoReviewFraction(t *testing.T) {
	levels, err := NewSeededGenerator(7, nil).Generate(sampleWords("w", 40), sampleWords("b", 40),
		Options{WordsPerLevel: 10, ReviewFraction: 0})
	require.NoError(t, err)
	require.Len(t, levels, 4)
	for _, l := range levels {
		assert.Len(t, l.Words, 10)
	}
}

func TestGenerator_Generate_Deterministic(t *testing.T) {
	target := sampleWords("t", 39)
	base := sampleWords("b", 39)

	a, err := NewSeededGenerator(99, nil).Generate(target, base, DefaultOptions())
	require.NoError(t, err)
	b, err := NewSeededGenerator(99, nil).Generate(target, base, DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, a, b)

	c, err := NewSeededGenerator(100, nil).Generate(target, base, DefaultOptions())
	require.NoError(t, err)
	require.Len(t, c, len(a))
	for i := range a {
		n := 7
		if i == len(a)-1 {
			n = 4
		}
		assert.Equal(t, newIndices(a[i], n), newIndices(c[i], n), "level %d new words", i+1)
		assert.Len(t, c[i].Words, len(a[i].Words))
	}
}

func TestGenerator_Generate_SmallPoolRepeats(t *testing.T) {
	levels, err := NewSeededGenerator(3, nil).Generate(sampleWords("t", 4), sampleWords("b", 4),
		Options{WordsPerLevel: 4, ReviewFraction: 0.75})
	require.NoError(t, err)

	// one new word per level; level 2 has a pool of one word for three slots
	require.Len(t, levels, 4)
	require.Len(t, levels[0].Words, 1)
	require.Len(t, levels[1].Words, 4)
	for _, w := range levels[1].Words[1:] {
		assert.Equal(t, 0, w.SourceIndex)
	}
}

func TestGenerator_Generate_ShortBaseList(t *testing.T) {
	levels, err := NewSeededGenerator(1, nil).Generate([]string{"a", "b"}, []string{"x"}, DefaultOptions())
	require.NoError(t, err)
	require.Len(t, levels, 1)
	assert.Equal(t, "x", levels[0].Words[0].Translation)
	assert.Equal(t, "", levels[0].Words[1].Translation)
}

func TestGenerator_Generate_Empty(t *testing.T) {
	levels, err := NewSeededGenerator(1, nil).Generate(nil, nil, DefaultOptions())
	require.NoError(t, err)
	assert.Empty(t, levels)
}

func TestGenerator_Generate_InvalidOptions(t *testing.T) {
	g := NewSeededGenerator(1, nil)
	for _, opts := range []Options{
		{WordsPerLevel: 0, ReviewFraction: 0.3},
		{WordsPerLevel: -5, ReviewFraction: 0.3},
		{WordsPerLevel: 10, ReviewFraction: 1},
		{WordsPerLevel: 10, ReviewFraction: -0.1},
	} {
		_, err := g.Generate(sampleWords("t", 5), sampleWords("b", 5), opts)
		require.ErrorIs(t, err, ErrInvalidParameters, "%+v", opts)
	}
}

func TestGenerator_GenerateForPair_FallsBackToDefault(t *testing.T) {
	table := vocabulary.NewTable()
	levels, err := NewSeededGenerator(1, nil).GenerateForPair(table,
		models.LanguagePair{Base: "en", Target: "xx"}, DefaultOptions())
	require.NoError(t, err)
	require.NotEmpty(t, levels)
	assert.Equal(t, "hello", levels[0].Words[0].Word)
	assert.Equal(t, "hello", levels[0].Words[0].Translation)

	levels, err = NewSeededGenerator(1, nil).GenerateForPair(table,
		models.LanguagePair{Base: "en", Target: "de"}, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "hallo", levels[0].Words[0].Word)
}

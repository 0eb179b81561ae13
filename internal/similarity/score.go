// Package similarity scores how close an answer is to the expected text.
//
// The score is a lexical proxy: normalized inverse Levenshtein distance over
// runes, 0 to 100. It is used for single words and whole sentences alike.
package similarity

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// PassThreshold is the minimum score counted as a correct answer.
const PassThreshold = 75

// Score compares expected and actual after trimming and lowercasing both.
// Two empty strings score 100 and a single empty string scores 0, so callers
// must handle "no answer given" before calling.
func Score(expected, actual string) int {
	a := normalize(expected)
	b := normalize(actual)

	if a == "" && b == "" {
		return 100
	}
	if a == "" || b == "" {
		return 0
	}

	maxLen := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > maxLen {
		maxLen = n
	}

	distance := levenshtein.ComputeDistance(a, b)
	normalized := 100 - float64(distance)/float64(maxLen)*100
	return int(math.Round(math.Max(0, normalized)))
}

// Passed reports whether score reaches PassThreshold.
func Passed(score int) bool {
	return score >= PassThreshold
}

// Feedback returns the short message shown next to a score.
func Feedback(score int) string {
	switch {
	case score >= 100:
		return "Perfect!"
	case score > 80:
		return "Great!"
	case score > 60:
		return "Getting close!"
	case score > 0:
		return "Keep practicing!"
	default:
		return "Try again!"
	}
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

package similarity

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MistakeType is a coarse classification of a wrong answer
type MistakeType string

const (
	MistakeNone         MistakeType = "none"
	MistakeSpelling     MistakeType = "spelling"
	MistakeMissingWords MistakeType = "missing_words"
	MistakeIncomplete   MistakeType = "incomplete"
	MistakeVocab        MistakeType = "vocab"
)

// ClassifyMistake guesses what kind of error actual makes against expected.
// The checks run in order and the first match wins.
func ClassifyMistake(expected, actual string) MistakeType {
	c := normalize(expected)
	u := normalize(actual)

	if u == "" || c == u {
		return MistakeNone
	}
	if lettersOnly(c) == lettersOnly(u) {
		return MistakeSpelling
	}
	if len(strings.Fields(c)) > 1 && len(strings.Fields(u)) == 1 {
		return MistakeMissingWords
	}

	cFirst, _ := utf8.DecodeRuneInString(c)
	uFirst, _ := utf8.DecodeRuneInString(u)
	cLen, uLen := utf8.RuneCountInString(c), utf8.RuneCountInString(u)
	if cFirst == uFirst && uLen < cLen {
		return MistakeIncomplete
	}
	if uLen == cLen {
		return MistakeSpelling
	}
	return MistakeVocab
}

// Explain renders a learner-facing explanation of a wrong answer. hint, when
// set, is the base-language gloss of the expected answer.
func Explain(expected, actual, hint string) string {
	if strings.TrimSpace(actual) == "" {
		return "No answer was given. Please enter your answer to receive feedback."
	}

	var text string
	switch ClassifyMistake(expected, actual) {
	case MistakeSpelling:
		text = fmt.Sprintf("It looks like you made a spelling mistake. Make sure to check the letters in %q.", expected)
	case MistakeMissingWords:
		text = fmt.Sprintf("Your answer is missing one or more words. The full phrase is: %q.", expected)
	case MistakeIncomplete:
		text = fmt.Sprintf("Almost there! Try giving a more complete answer: %q.", expected)
	case MistakeVocab:
		text = fmt.Sprintf("The correct answer is %q. Try to remember the vocabulary for this prompt.", expected)
	default:
		text = "Check your answer and try again!"
	}

	if hint != "" {
		text += fmt.Sprintf("\n\nHint: In your base language, this means %q.", hint)
	}
	return text
}

// lettersOnly drops punctuation and digits, keeping letters, spaces, hyphens
// and apostrophes.
func lettersOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || r == ' ' || r == '-' || r == '\'' {
			return r
		}
		return -1
	}, s)
}

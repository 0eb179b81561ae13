package models

// VocabularyEntry is a position in a language's word list. Identity is the
// (language code, index) pair; entries are loaded once and never mutated.
type VocabularyEntry struct {
	Word           string `json:"word"`
	TranslationIdx int    `json:"translation_idx"`
}

// WordPair binds a target-language term to its base-language gloss at a shared
// vocabulary index.
type WordPair struct {
	Word        string `json:"word"`
	Translation string `json:"translation"`
	SourceIndex int    `json:"idx"`
}

// Key returns the review identity of the pair.
func (w WordPair) Key() ReviewKey {
	return ReviewKey{Word: w.Word, Translation: w.Translation, SourceIndex: w.SourceIndex}
}

package models

// ItemResult is the score of a single answer within a level test
type ItemResult struct {
	Word        string `json:"word"`
	Translation string `json:"translation"`
	SourceIndex int    `json:"idx"`
	Attempt     string `json:"userAttempt,omitempty"`
	Score       int    `json:"score"`
}

// Key returns the review identity of the tested item.
func (r ItemResult) Key() ReviewKey {
	return ReviewKey{Word: r.Word, Translation: r.Translation, SourceIndex: r.SourceIndex}
}

// TestOutcome summarizes a submitted level test
type TestOutcome struct {
	LevelNumber int          `json:"level"`
	Score       int          `json:"score"`
	Passed      bool         `json:"passed"`
	Items       []ItemResult `json:"items"`
	Unlocked    int          `json:"nextAvailableLevel"`
	Badges      []string     `json:"badges,omitempty"`
}

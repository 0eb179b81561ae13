package models

// TestScore is the latest test attempt recorded for a level
type TestScore struct {
	Score  int  `json:"score"`
	Passed bool `json:"passed"`
}

// Level is one curriculum unit with its own practice/test completion state.
// Words is fixed at generation time.
type Level struct {
	LevelNumber      int        `json:"level"`
	Words            []WordPair `json:"words"`
	PracticeComplete bool       `json:"practiceComplete"`
	TestScore        *TestScore `json:"testScore"`
}

// Passed reports whether the latest test for the level passed.
func (l Level) Passed() bool {
	return l.TestScore != nil && l.TestScore.Passed
}

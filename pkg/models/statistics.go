package models

// Stats is the aggregate progress derived from a level set
type Stats struct {
	TotalLevels     int `json:"totalLevels"`
	Completed       int `json:"completed"`
	Level           int `json:"level"`
	ProgressPercent int `json:"progressPercent"`
}

// Gamification holds the XP / streak / badge overlay for a user
type Gamification struct {
	XP               int      `json:"xp"`
	DailyStreak      int      `json:"dailyStreak"`
	LastPracticeDate string   `json:"lastPracticeDate,omitempty"`
	Badges           []string `json:"badges"`
}

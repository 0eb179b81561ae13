package models

import "time"

// ReviewKey identifies a review queue entry. Two entries with the same key
// are the same item.
type ReviewKey struct {
	Word        string `json:"word"`
	Translation string `json:"translation"`
	SourceIndex int    `json:"idx"`
}

// ReviewQueueEntry is a missed item scheduled to resurface for review
type ReviewQueueEntry struct {
	Word        string        `json:"word"`
	Translation string        `json:"translation"`
	SourceIndex int           `json:"idx"`
	LastWrong   time.Time     `json:"lastWrong"`
	Interval    time.Duration `json:"interval"`
	NextReview  time.Time     `json:"nextReview"`
}

// Key returns the identity of the entry.
func (e ReviewQueueEntry) Key() ReviewKey {
	return ReviewKey{Word: e.Word, Translation: e.Translation, SourceIndex: e.SourceIndex}
}

// IsDue reports whether the entry should be reviewed at now.
func (e ReviewQueueEntry) IsDue(now time.Time) bool {
	return !e.NextReview.After(now)
}

// Package progression tracks per-level practice and test completion and
// derives which levels are unlocked.
package progression

import (
	"errors"
	"fmt"
	"math"

	"github.com/example/lingoladder/internal/similarity"
	"github.com/example/lingoladder/pkg/models"
)

type State string

const (
	StateNotStarted       State = "not_started"
	StatePracticeComplete State = "practice_complete"
	StatePassed           State = "passed"
	StateFailed           State = "failed"
)

var (
	ErrLevelNotFound    = errors.New("level not found")
	ErrLevelLocked      = errors.New("level is locked")
	ErrPracticeRequired = errors.New("practice must be completed before the test")
	ErrNonContiguous    = errors.New("level numbers are not contiguous from 1")
)

// Policy decides what a caller checks before letting a learner take a test.
// The level model itself never refuses a recorded score.
type Policy struct {
	RequirePractice bool
	RequireUnlocked bool
}

// StrictPolicy requires completed practice and an unlocked level.
func StrictPolicy() Policy {
	return Policy{RequirePractice: true, RequireUnlocked: true}
}

// Tracker owns a level set. Unlock state is never stored; it is recomputed
// from the levels on every read.
type Tracker struct {
	levels []models.Level
}

// NewTracker takes ownership of levels.
func NewTracker(levels []models.Level) *Tracker {
	return &Tracker{levels: levels}
}

// Validate checks that level numbers run 1..n without gaps.
func Validate(levels []models.Level) error {
	for i, l := range levels {
		if l.LevelNumber != i+1 {
			return fmt.Errorf("%w: position %d holds level %d", ErrNonContiguous, i, l.LevelNumber)
		}
	}
	return nil
}

// Levels returns a copy of the level set.
func (t *Tracker) Levels() []models.Level {
	out := make([]models.Level, len(t.levels))
	for i, l := range t.levels {
		out[i] = cloneLevel(l)
	}
	return out
}

// Len returns the number of levels.
func (t *Tracker) Len() int {
	return len(t.levels)
}

// Level returns a copy of level n.
func (t *Tracker) Level(n int) (models.Level, bool) {
	i := t.index(n)
	if i < 0 {
		return models.Level{}, false
	}
	return cloneLevel(t.levels[i]), true
}

// State returns the lifecycle state of level n.
func (t *Tracker) State(n int) (State, bool) {
	i := t.index(n)
	if i < 0 {
		return "", false
	}
	l := t.levels[i]
	switch {
	case l.TestScore != nil && l.TestScore.Passed:
		return StatePassed, true
	case l.TestScore != nil:
		return StateFailed, true
	case l.PracticeComplete:
		return StatePracticeComplete, true
	default:
		return StateNotStarted, true
	}
}

// BeginPractice marks practice complete for level n. It reports whether the
// level exists; calling it twice is harmless.
func (t *Tracker) BeginPractice(n int) bool {
	i := t.index(n)
	if i < 0 {
		return false
	}
	t.levels[i].PracticeComplete = true
	return true
}

// RecordTestScore stores the latest test attempt for level n, replacing any
// earlier one. Scores are clamped to 0..100.
func (t *Tracker) RecordTestScore(n, score int) bool {
	i := t.index(n)
	if i < 0 {
		return false
	}
	score = clamp(score)
	t.levels[i].TestScore = &models.TestScore{Score: score, Passed: similarity.Passed(score)}
	return true
}

// NextAvailableLevel is one more than the number of leading levels whose
// latest test passed.
func (t *Tracker) NextAvailableLevel() int {
	next := 1
	for _, l := range t.levels {
		if !l.Passed() {
			break
		}
		next++
	}
	return next
}

// IsUnlocked reports whether level n exists and can be reached.
func (t *Tracker) IsUnlocked(n int) bool {
	return t.index(n) >= 0 && n <= t.NextAvailableLevel()
}

// CheckTestAccess applies policy to a test attempt on level n.
func (t *Tracker) CheckTestAccess(n int, policy Policy) error {
	i := t.index(n)
	if i < 0 {
		return fmt.Errorf("%w: %d", ErrLevelNotFound, n)
	}
	if policy.RequireUnlocked && n > t.NextAvailableLevel() {
		return fmt.Errorf("%w: pass level %d first", ErrLevelLocked, n-1)
	}
	if policy.RequirePractice && !t.levels[i].PracticeComplete {
		return fmt.Errorf("%w: level %d", ErrPracticeRequired, n)
	}
	return nil
}

// Stats derives the aggregate progress of the level set.
func (t *Tracker) Stats() models.Stats {
	stats := models.Stats{TotalLevels: len(t.levels), Level: 1}
	for _, l := range t.levels {
		if !l.Passed() {
			continue
		}
		stats.Completed++
		if l.LevelNumber > stats.Level {
			stats.Level = l.LevelNumber
		}
	}
	if stats.TotalLevels > 0 {
		stats.ProgressPercent = int(math.Round(float64(stats.Completed) / float64(stats.TotalLevels) * 100))
	}
	return stats
}

// AllTested reports whether every level has at least one recorded test.
func (t *Tracker) AllTested() bool {
	if len(t.levels) == 0 {
		return false
	}
	for _, l := range t.levels {
		if l.TestScore == nil {
			return false
		}
	}
	return true
}

// TestPercent turns per-item scores into a whole-test score: the share of
// items that passed, rounded to a percentage.
func TestPercent(results []models.ItemResult) int {
	if len(results) == 0 {
		return 0
	}
	passed := 0
	for _, r := range results {
		if similarity.Passed(r.Score) {
			passed++
		}
	}
	return int(math.Round(float64(passed) / float64(len(results)) * 100))
}

func (t *Tracker) index(n int) int {
	if n >= 1 && n <= len(t.levels) && t.levels[n-1].LevelNumber == n {
		return n - 1
	}
	for i, l := range t.levels {
		if l.LevelNumber == n {
			return i
		}
	}
	return -1
}

func cloneLevel(l models.Level) models.Level {
	l.Words = append([]models.WordPair(nil), l.Words...)
	if l.TestScore != nil {
		ts := *l.TestScore
		l.TestScore = &ts
	}
	return l
}

func clamp(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

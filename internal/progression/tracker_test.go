package progression

import (
	"testing"

	"github.com/example/lingoladder/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLevels(n int) []models.Level {
	levels := make([]models.Level, n)
	for i := range levels {
		levels[i] = models.Level{
			LevelNumber: i + 1,
			Words:       []models.WordPair{{Word: "w", Translation: "t", SourceIndex: i}},
		}
	}
	return levels
}

func TestTracker_NextAvailableLevel(t *testing.T) {
	tests := []struct {
		name   string
		scores map[int]int
		want   int
	}{
		{name: "fresh", scores: nil, want: 1},
		{name: "first passed", scores: map[int]int{1: 80}, want: 2},
		{name: "second failed", scores: map[int]int{1: 80, 2: 60}, want: 2},
		{name: "gap does not unlock", scores: map[int]int{1: 90, 3: 100}, want: 2},
		{name: "first failed", scores: map[int]int{1: 74, 2: 100}, want: 1},
		{name: "all passed", scores: map[int]int{1: 75, 2: 75, 3: 75}, want: 4},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tr := NewTracker(newLevels(3))
			for n, s := range tc.scores {
				require.True(t, tr.RecordTestScore(n, s))
			}
			assert.Equal(t, tc.want, tr.NextAvailableLevel())
		})
	}
}

func TestTracker_RetakeReplacesScore(t *testing.T) {
	tr := NewTracker(newLevels(3))
	tr.RecordTestScore(1, 90)
	tr.RecordTestScore(2, 90)
	require.Equal(t, 3, tr.NextAvailableLevel())

	// a failed retake relocks everything after it
	tr.RecordTestScore(1, 40)
	assert.Equal(t, 1, tr.NextAvailableLevel())
	assert.False(t, tr.IsUnlocked(2))

	l, ok := tr.Level(1)
	require.True(t, ok)
	assert.Equal(t, &models.TestScore{Score: 40, Passed: false}, l.TestScore)
}

func TestTracker_RecordTestScore(t *testing.T) {
	tr := NewTracker(newLevels(2))

	assert.False(t, tr.RecordTestScore(0, 80))
	assert.False(t, tr.RecordTestScore(3, 80))

	require.True(t, tr.RecordTestScore(1, 150))
	l, _ := tr.Level(1)
	assert.Equal(t, 100, l.TestScore.Score)

	require.True(t, tr.RecordTestScore(2, -3))
	l, _ = tr.Level(2)
	assert.Equal(t, 0, l.TestScore.Score)
	assert.False(t, l.TestScore.Passed)
}

func TestTracker_BeginPractice(t *testing.T) {
	tr := NewTracker(newLevels(2))
	assert.False(t, tr.BeginPractice(5))

	require.True(t, tr.BeginPractice(2))
	require.True(t, tr.BeginPractice(2))

	l, _ := tr.Level(2)
	assert.True(t, l.PracticeComplete)
	assert.Equal(t, 1, tr.NextAvailableLevel(), "practice alone never unlocks")
}

func TestTracker_State(t *testing.T) {
	tr := NewTracker(newLevels(4))
	tr.BeginPractice(2)
	tr.RecordTestScore(3, 75)
	tr.BeginPractice(4)
	tr.RecordTestScore(4, 10)

	want := map[int]State{
		1: StateNotStarted,
		2: StatePracticeComplete,
		3: StatePassed,
		4: StateFailed,
	}
	for n, s := range want {
		got, ok := tr.State(n)
		require.True(t, ok)
		assert.Equal(t, s, got, "level %d", n)
	}

	_, ok := tr.State(9)
	assert.False(t, ok)
}

func TestTracker_CheckTestAccess(t *testing.T) {
	tr := NewTracker(newLevels(3))
	tr.BeginPractice(2)

	require.ErrorIs(t, tr.CheckTestAccess(7, StrictPolicy()), ErrLevelNotFound)
	require.ErrorIs(t, tr.CheckTestAccess(1, StrictPolicy()), ErrPracticeRequired)
	require.ErrorIs(t, tr.CheckTestAccess(2, StrictPolicy()), ErrLevelLocked)
	require.NoError(t, tr.CheckTestAccess(2, Policy{}))
	require.NoError(t, tr.CheckTestAccess(1, Policy{RequireUnlocked: true}))

	tr.BeginPractice(1)
	require.NoError(t, tr.CheckTestAccess(1, StrictPolicy()))
	tr.RecordTestScore(1, 100)
	require.NoError(t, tr.CheckTestAccess(2, StrictPolicy()))
}

func TestTracker_Stats(t *testing.T) {
	tr := NewTracker(newLevels(4))
	assert.Equal(t, models.Stats{TotalLevels: 4, Completed: 0, Level: 1, ProgressPercent: 0}, tr.Stats())

	tr.RecordTestScore(1, 80)
	tr.RecordTestScore(3, 95)
	tr.RecordTestScore(2, 30)
	assert.Equal(t, models.Stats{TotalLevels: 4, Completed: 2, Level: 3, ProgressPercent: 50}, tr.Stats())

	tr = NewTracker(newLevels(3))
	tr.RecordTestScore(1, 80)
	assert.Equal(t, 33, tr.Stats().ProgressPercent)

	assert.Equal(t, models.Stats{Level: 1}, NewTracker(nil).Stats())
}

func TestTracker_LevelsAreCopies(t *testing.T) {
	tr := NewTracker(newLevels(2))
	tr.RecordTestScore(1, 90)

	out := tr.Levels()
	out[0].TestScore.Score = 5
	out[0].Words[0].Word = "changed"

	l, _ := tr.Level(1)
	assert.Equal(t, 90, l.TestScore.Score)
	assert.Equal(t, "w", l.Words[0].Word)
}

func TestTracker_AllTested(t *testing.T) {
	tr := NewTracker(newLevels(2))
	assert.False(t, tr.AllTested())
	tr.RecordTestScore(1, 10)
	assert.False(t, tr.AllTested())
	tr.RecordTestScore(2, 10)
	assert.True(t, tr.AllTested())
	assert.False(t, NewTracker(nil).AllTested())
}

func TestValidate(t *testing.T) {
	require.NoError(t, Validate(newLevels(3)))
	require.NoError(t, Validate(nil))

	levels := newLevels(3)
	levels[1].LevelNumber = 5
	require.ErrorIs(t, Validate(levels), ErrNonContiguous)
}

func TestTestPercent(t *testing.T) {
	items := func(scores ...int) []models.ItemResult {
		out := make([]models.ItemResult, len(scores))
		for i, s := range scores {
			out[i] = models.ItemResult{Score: s}
		}
		return out
	}

	assert.Equal(t, 0, TestPercent(nil))
	assert.Equal(t, 100, TestPercent(items(100, 75)))
	assert.Equal(t, 50, TestPercent(items(100, 74)))
	assert.Equal(t, 67, TestPercent(items(80, 90, 10)))
	assert.Equal(t, 0, TestPercent(items(0, 10)))
}

package gamification

import (
	"testing"
	"time"

	"github.com/example/lingoladder/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAwardXP(t *testing.T) {
	g := &models.Gamification{}

	assert.Empty(t, AwardXP(g, 90))
	assert.Equal(t, []string{BadgeXP100}, AwardXP(g, XPPractice))
	assert.Equal(t, 100, g.XP)

	AwardXP(g, -50)
	AwardXP(g, 0)
	assert.Equal(t, 100, g.XP)

	assert.Equal(t, []string{BadgeXP500}, AwardXP(g, 400))
	assert.Empty(t, AwardXP(g, 1), "badges are only reported once")
}

func TestRecordPractice(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2024, 1, d, 15, 0, 0, 0, time.UTC) }

	tests := []struct {
		name       string
		days       []time.Time
		wantStreak int
	}{
		{name: "first day", days: []time.Time{day(1)}, wantStreak: 1},
		{name: "same day twice", days: []time.Time{day(1), day(1).Add(3 * time.Hour)}, wantStreak: 1},
		{name: "consecutive", days: []time.Time{day(1), day(2), day(3)}, wantStreak: 3},
		{name: "gap resets", days: []time.Time{day(1), day(2), day(4)}, wantStreak: 1},
		{name: "month boundary", days: []time.Time{time.Date(2024, 1, 31, 8, 0, 0, 0, time.UTC), time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC)}, wantStreak: 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := &models.Gamification{}
			for _, d := range tc.days {
				RecordPractice(g, d)
			}
			require.Equal(t, tc.wantStreak, g.DailyStreak)
			require.Equal(t, tc.days[len(tc.days)-1].Format("2006-01-02"), g.LastPracticeDate)
		})
	}
}

func TestRecordPractice_StreakBadges(t *testing.T) {
	g := &models.Gamification{}
	start := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	var got []string
	for i := 0; i < 7; i++ {
		got = append(got, RecordPractice(g, start.AddDate(0, 0, i))...)
	}
	assert.Equal(t, []string{BadgeStreak3, BadgeStreak7}, got)
	assert.Equal(t, 7, g.DailyStreak)
}

func TestUnlock(t *testing.T) {
	g := &models.Gamification{}
	assert.True(t, Unlock(g, BadgeFirstLesson))
	assert.False(t, Unlock(g, BadgeFirstLesson))
	assert.True(t, Has(g, BadgeFirstLesson))
	assert.False(t, Has(g, BadgeFirstTest))
	assert.Equal(t, []string{BadgeFirstLesson}, g.Badges)
}

func TestBadgeTitle(t *testing.T) {
	assert.Equal(t, "7-day streak", BadgeTitle(BadgeStreak7))
	assert.Equal(t, "mystery", BadgeTitle("mystery"))
}

// Package gamification keeps the XP, streak and badge overlay for a learner.
package gamification

import (
	"time"

	"github.com/example/lingoladder/pkg/models"
)

// XP awarded per action.
const (
	XPPractice        = 10
	XPTestPassed      = 25
	XPReviewCompleted = 5
)

// Badge names.
const (
	BadgeFirstLesson      = "first_lesson"
	BadgeFirstTest        = "first_test"
	BadgeAllTestsComplete = "all_tests_complete"
	BadgeXP100            = "xp_100"
	BadgeXP500            = "xp_500"
	BadgeStreak3          = "daily_streak_3"
	BadgeStreak7          = "daily_streak_7"
)

var badgeTitles = map[string]string{
	BadgeFirstLesson:      "First lesson",
	BadgeFirstTest:        "First test",
	BadgeAllTestsComplete: "All tests complete",
	BadgeXP100:            "100 XP",
	BadgeXP500:            "500 XP",
	BadgeStreak3:          "3-day streak",
	BadgeStreak7:          "7-day streak",
}

// BadgeTitle returns a display title for badge, or badge itself when unknown.
func BadgeTitle(badge string) string {
	if t, ok := badgeTitles[badge]; ok {
		return t
	}
	return badge
}

const dayLayout = "2006-01-02"

// AwardXP adds amount to the running total. Non-positive amounts are ignored
// so XP never decreases.
func AwardXP(g *models.Gamification, amount int) []string {
	if amount > 0 {
		g.XP += amount
	}
	return CheckMilestones(g)
}

// RecordPractice updates the daily streak for activity on day. Several
// practices on the same calendar day count once; a missed day resets the
// streak to 1.
func RecordPractice(g *models.Gamification, day time.Time) []string {
	today := day.Format(dayLayout)
	switch {
	case g.LastPracticeDate == today:
		if g.DailyStreak == 0 {
			g.DailyStreak = 1
		}
	case g.LastPracticeDate == day.AddDate(0, 0, -1).Format(dayLayout):
		g.DailyStreak++
	default:
		g.DailyStreak = 1
	}
	g.LastPracticeDate = today
	return CheckMilestones(g)
}

// Unlock adds badge once. It reports whether the badge is new.
func Unlock(g *models.Gamification, badge string) bool {
	if Has(g, badge) {
		return false
	}
	g.Badges = append(g.Badges, badge)
	return true
}

// Has reports whether badge was earned.
func Has(g *models.Gamification, badge string) bool {
	for _, b := range g.Badges {
		if b == badge {
			return true
		}
	}
	return false
}

// CheckMilestones unlocks the XP and streak badges the learner qualifies for
// and returns the newly unlocked ones.
func CheckMilestones(g *models.Gamification) []string {
	milestones := []struct {
		badge string
		ok    bool
	}{
		{BadgeXP100, g.XP >= 100},
		{BadgeXP500, g.XP >= 500},
		{BadgeStreak3, g.DailyStreak >= 3},
		{BadgeStreak7, g.DailyStreak >= 7},
	}

	var unlocked []string
	for _, m := range milestones {
		if m.ok && Unlock(g, m.badge) {
			unlocked = append(unlocked, m.badge)
		}
	}
	return unlocked
}

package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/example/lingoladder/internal/gamification"
	"github.com/example/lingoladder/internal/progression"
	"github.com/example/lingoladder/internal/similarity"
	"github.com/example/lingoladder/internal/spaced_repetition"
	"github.com/example/lingoladder/pkg/models"
	"go.uber.org/zap"
)

// Session is the progress of one user in one language pair. Each call
// reloads state from the Store, applies the change and saves it again while
// holding the key's lock.
type Session struct {
	m    *Manager
	key  models.SessionKey
	lock *sync.Mutex
}

func (s *Session) Key() models.SessionKey {
	return s.key
}

// ScoreSimilarity scores actual against expected on a 0..100 scale.
func (s *Session) ScoreSimilarity(expected, actual string) int {
	return similarity.Score(expected, actual)
}

// Levels returns the full level set.
func (s *Session) Levels(ctx context.Context) ([]models.Level, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	tr, err := s.loadLevels(ctx)
	if err != nil {
		return nil, err
	}
	return tr.Levels(), nil
}

// Level returns level n.
func (s *Session) Level(ctx context.Context, n int) (models.Level, bool, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	tr, err := s.loadLevels(ctx)
	if err != nil {
		return models.Level{}, false, err
	}
	l, ok := tr.Level(n)
	return l, ok, nil
}

// BeginPractice marks practice complete for level n and awards practice XP.
// It reports false for an unknown level.
func (s *Session) BeginPractice(ctx context.Context, n int) (bool, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	tr, err := s.loadLevels(ctx)
	if err != nil {
		return false, err
	}
	if !tr.BeginPractice(n) {
		return false, nil
	}
	if err := s.saveLevels(ctx, tr); err != nil {
		return false, err
	}

	now := s.m.now()
	_, err = s.updateGamification(ctx, func(g *models.Gamification) []string {
		badges := gamification.RecordPractice(g, now)
		badges = append(badges, gamification.AwardXP(g, gamification.XPPractice)...)
		if gamification.Unlock(g, gamification.BadgeFirstLesson) {
			badges = append(badges, gamification.BadgeFirstLesson)
		}
		return badges
	})
	if err != nil {
		return false, err
	}

	s.m.log.Debug("practice complete", zap.Stringer("session", s.key), zap.Int("level", n))
	return true, nil
}

// RecordTestScore stores score as the latest test of level n without any
// policy checks. Items that scored below the pass mark are queued for review.
func (s *Session) RecordTestScore(ctx context.Context, n, score int, items ...models.ItemResult) (bool, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	tr, err := s.loadLevels(ctx)
	if err != nil {
		return false, err
	}
	if !tr.RecordTestScore(n, score) {
		return false, nil
	}
	if err := s.saveLevels(ctx, tr); err != nil {
		return false, err
	}
	if len(items) > 0 {
		if err := s.updateQueue(ctx, func(q *spaced_repetition.Queue) {
			q.RecordOutcome(s.m.now(), items)
		}); err != nil {
			return false, err
		}
	}
	return true, nil
}

// SubmitTest scores every attempt against its word, records the whole-test
// percentage on level n and queues misses for review. The manager's test
// policy is checked first.
func (s *Session) SubmitTest(ctx context.Context, n int, items []models.ItemResult) (models.TestOutcome, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	tr, err := s.loadLevels(ctx)
	if err != nil {
		return models.TestOutcome{}, err
	}
	if err := tr.CheckTestAccess(n, s.m.testPolicy); err != nil {
		return models.TestOutcome{}, err
	}

	scored := make([]models.ItemResult, len(items))
	for i, it := range items {
		it.Score = similarity.Score(it.Word, it.Attempt)
		scored[i] = it
	}

	percent := progression.TestPercent(scored)
	tr.RecordTestScore(n, percent)
	if err := s.saveLevels(ctx, tr); err != nil {
		return models.TestOutcome{}, err
	}

	now := s.m.now()
	if err := s.updateQueue(ctx, func(q *spaced_repetition.Queue) {
		q.RecordOutcome(now, scored)
	}); err != nil {
		return models.TestOutcome{}, err
	}

	outcome := models.TestOutcome{
		LevelNumber: n,
		Score:       percent,
		Passed:      similarity.Passed(percent),
		Items:       scored,
		Unlocked:    tr.NextAvailableLevel(),
	}

	allTested := tr.AllTested()
	outcome.Badges, err = s.updateGamification(ctx, func(g *models.Gamification) []string {
		var badges []string
		if gamification.Unlock(g, gamification.BadgeFirstTest) {
			badges = append(badges, gamification.BadgeFirstTest)
		}
		if outcome.Passed {
			badges = append(badges, gamification.AwardXP(g, gamification.XPTestPassed)...)
		}
		if allTested && gamification.Unlock(g, gamification.BadgeAllTestsComplete) {
			badges = append(badges, gamification.BadgeAllTestsComplete)
		}
		return badges
	})
	if err != nil {
		return models.TestOutcome{}, err
	}

	s.m.log.Info("test submitted",
		zap.Stringer("session", s.key),
		zap.Int("level", n),
		zap.Int("score", percent),
		zap.Bool("passed", outcome.Passed))
	return outcome, nil
}

// CanAttemptTest applies the manager's test policy to level n without
// recording anything.
func (s *Session) CanAttemptTest(ctx context.Context, n int) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	tr, err := s.loadLevels(ctx)
	if err != nil {
		return err
	}
	return tr.CheckTestAccess(n, s.m.testPolicy)
}

// IsUnlocked reports whether level n exists and every level before it passed.
func (s *Session) IsUnlocked(ctx context.Context, n int) (bool, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	tr, err := s.loadLevels(ctx)
	if err != nil {
		return false, err
	}
	return tr.IsUnlocked(n), nil
}

func (s *Session) NextAvailableLevel(ctx context.Context) (int, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	tr, err := s.loadLevels(ctx)
	if err != nil {
		return 0, err
	}
	return tr.NextAvailableLevel(), nil
}

func (s *Session) Stats(ctx context.Context) (models.Stats, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	tr, err := s.loadLevels(ctx)
	if err != nil {
		return models.Stats{}, err
	}
	return tr.Stats(), nil
}

// Gamification returns the user's XP, streak and badges.
func (s *Session) Gamification(ctx context.Context) (models.Gamification, error) {
	lock := s.m.userLock(s.key.UserID)
	lock.Lock()
	defer lock.Unlock()

	g, err := s.m.store.LoadGamification(ctx, s.key.UserID)
	if err != nil {
		return g, fmt.Errorf("load gamification: %w", err)
	}
	return g, nil
}

// DueReviews returns up to limit entries due now, earliest first. A limit of
// zero or less means the default of five.
func (s *Session) DueReviews(ctx context.Context, limit int) ([]models.ReviewQueueEntry, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	q, err := s.loadQueue(ctx)
	if err != nil {
		return nil, err
	}
	return q.Due(s.m.now(), limit), nil
}

// AcknowledgeReview reschedules a reviewed entry further out and awards
// review XP. Unknown keys are ignored.
func (s *Session) AcknowledgeReview(ctx context.Context, key models.ReviewKey) (bool, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	var found bool
	if err := s.updateQueue(ctx, func(q *spaced_repetition.Queue) {
		found = q.AcknowledgeReview(s.m.now(), key)
	}); err != nil {
		return false, err
	}
	if !found {
		return false, nil
	}

	_, err := s.updateGamification(ctx, func(g *models.Gamification) []string {
		return gamification.AwardXP(g, gamification.XPReviewCompleted)
	})
	return true, err
}

// DismissReview removes an entry the learner has mastered.
func (s *Session) DismissReview(ctx context.Context, key models.ReviewKey) (bool, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	var found bool
	err := s.updateQueue(ctx, func(q *spaced_repetition.Queue) {
		found = q.Dismiss(key)
	})
	return found, err
}

// TroubleWords lists every queued entry, soonest review first.
func (s *Session) TroubleWords(ctx context.Context) ([]models.ReviewQueueEntry, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	q, err := s.loadQueue(ctx)
	if err != nil {
		return nil, err
	}
	return q.Upcoming(), nil
}

// loadLevels reads the level set, regenerating it when nothing usable is
// stored. Callers hold s.lock.
func (s *Session) loadLevels(ctx context.Context) (*progression.Tracker, error) {
	levels, ok, err := s.m.store.LoadLevels(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("load levels: %w", err)
	}
	if ok {
		verr := progression.Validate(levels)
		if verr == nil {
			return progression.NewTracker(levels), nil
		}
		s.m.log.Warn("stored levels are invalid, regenerating",
			zap.Stringer("session", s.key), zap.Error(verr))
	}

	levels, err = s.m.gen.GenerateForPair(s.m.table, s.key.LanguagePair, s.m.curriculum)
	if err != nil {
		return nil, fmt.Errorf("generate levels: %w", err)
	}
	tr := progression.NewTracker(levels)
	if err := s.saveLevels(ctx, tr); err != nil {
		return nil, err
	}
	s.m.log.Info("level set created", zap.Stringer("session", s.key), zap.Int("levels", len(levels)))
	return tr, nil
}

func (s *Session) saveLevels(ctx context.Context, tr *progression.Tracker) error {
	if err := s.m.store.SaveLevels(ctx, s.key, tr.Levels()); err != nil {
		return fmt.Errorf("save levels: %w", err)
	}
	return nil
}

func (s *Session) loadQueue(ctx context.Context) (*spaced_repetition.Queue, error) {
	entries, err := s.m.store.LoadReviewQueue(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("load review queue: %w", err)
	}
	return spaced_repetition.NewQueue(s.m.reviewPolicy, entries), nil
}

func (s *Session) updateQueue(ctx context.Context, fn func(q *spaced_repetition.Queue)) error {
	q, err := s.loadQueue(ctx)
	if err != nil {
		return err
	}
	fn(q)
	if err := s.m.store.SaveReviewQueue(ctx, s.key, q.Entries()); err != nil {
		return fmt.Errorf("save review queue: %w", err)
	}
	return nil
}

func (s *Session) updateGamification(ctx context.Context, fn func(g *models.Gamification) []string) ([]string, error) {
	lock := s.m.userLock(s.key.UserID)
	lock.Lock()
	defer lock.Unlock()

	g, err := s.m.store.LoadGamification(ctx, s.key.UserID)
	if err != nil {
		return nil, fmt.Errorf("load gamification: %w", err)
	}
	badges := fn(&g)
	if err := s.m.store.SaveGamification(ctx, s.key.UserID, g); err != nil {
		return nil, fmt.Errorf("save gamification: %w", err)
	}
	if len(badges) > 0 {
		s.m.log.Info("badges unlocked", zap.Int64("user_id", s.key.UserID), zap.Strings("badges", badges))
	}
	return badges, nil
}

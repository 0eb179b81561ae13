// Package database persists session state as JSON documents in SQL tables,
// on sqlite or postgres through sqlx.
package database

import (
	"context"

	"github.com/example/lingoladder/pkg/models"
	"github.com/jmoiron/sqlx"
)

// Store groups the repositories behind the interface the session layer needs.
type Store struct {
	Levels       *LevelRepository
	Reviews      *ReviewRepository
	Gamification *GamificationRepository
	Users        *UserRepository
}

// NewStore wires every repository to db.
func NewStore(db *sqlx.DB) *Store {
	return &Store{
		Levels:       NewLevelRepository(db),
		Reviews:      NewReviewRepository(db),
		Gamification: NewGamificationRepository(db),
		Users:        NewUserRepository(db),
	}
}

func (s *Store) LoadLevels(ctx context.Context, key models.SessionKey) ([]models.Level, bool, error) {
	return s.Levels.Get(ctx, key)
}

func (s *Store) SaveLevels(ctx context.Context, key models.SessionKey, levels []models.Level) error {
	return s.Levels.Save(ctx, key, levels)
}

func (s *Store) LoadReviewQueue(ctx context.Context, key models.SessionKey) ([]models.ReviewQueueEntry, error) {
	return s.Reviews.Get(ctx, key)
}

func (s *Store) SaveReviewQueue(ctx context.Context, key models.SessionKey, entries []models.ReviewQueueEntry) error {
	return s.Reviews.Save(ctx, key, entries)
}

func (s *Store) LoadGamification(ctx context.Context, userID int64) (models.Gamification, error) {
	return s.Gamification.Get(ctx, userID)
}

func (s *Store) SaveGamification(ctx context.Context, userID int64, g models.Gamification) error {
	return s.Gamification.Save(ctx, userID, g)
}

func (s *Store) LoadLanguagePair(ctx context.Context, userID int64) (models.LanguagePair, bool, error) {
	return s.Users.GetLanguagePair(ctx, userID)
}

func (s *Store) SaveLanguagePair(ctx context.Context, userID int64, pair models.LanguagePair) error {
	return s.Users.SetLanguagePair(ctx, userID, pair)
}

// ListSessions returns every session key that has a non-empty review queue.
func (s *Store) ListSessions(ctx context.Context) ([]models.SessionKey, error) {
	return s.Reviews.Keys(ctx)
}

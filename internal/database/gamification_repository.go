package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/example/lingoladder/pkg/models"
	"github.com/jmoiron/sqlx"
)

// GamificationRepository persists XP, streaks and badges per user
type GamificationRepository struct {
	db *sqlx.DB
}

// NewGamificationRepository creates a new repository instance
func NewGamificationRepository(db *sqlx.DB) *GamificationRepository {
	return &GamificationRepository{db: db}
}

// Get returns the user's state, or a zero value when nothing is stored.
func (r *GamificationRepository) Get(ctx context.Context, userID int64) (models.Gamification, error) {
	var (
		row gamificationRow
		g   models.Gamification
	)
	query := r.db.Rebind(`SELECT user_id, payload, updated_at FROM gamification WHERE user_id = ?`)
	err := r.db.GetContext(ctx, &row, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return g, nil
	}
	if err != nil {
		return g, fmt.Errorf("failed to get gamification for user %d: %w", userID, err)
	}

	if err := json.Unmarshal([]byte(row.Payload), &g); err != nil {
		return g, fmt.Errorf("failed to decode gamification for user %d: %w", userID, err)
	}
	return g, nil
}

// Save replaces the user's state.
func (r *GamificationRepository) Save(ctx context.Context, userID int64, g models.Gamification) error {
	if g.Badges == nil {
		g.Badges = []string{}
	}
	payload, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("failed to encode gamification: %w", err)
	}

	query := r.db.Rebind(`
		INSERT INTO gamification (user_id, payload, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			payload = excluded.payload,
			updated_at = excluded.updated_at`)
	if _, err := r.db.ExecContext(ctx, query, userID, string(payload), time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to save gamification for user %d: %w", userID, err)
	}
	return nil
}

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/example/lingoladder/pkg/models"
	"github.com/jmoiron/sqlx"
)

// UserRepository handles database operations for users
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new repository instance
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetByID returns a user by ID. ok is false for unknown users.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (user models.User, ok bool, err error) {
	query := r.db.Rebind(`
		SELECT user_id, username, first_name, base_lang, target_lang, created_at, updated_at
		FROM users WHERE user_id = ?`)

	err = r.db.GetContext(ctx, &user, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return user, false, nil
	}
	if err != nil {
		return user, false, fmt.Errorf("failed to get user by ID: %w", err)
	}
	return user, true, nil
}

// Upsert inserts a user or refreshes their names. The language pair of an
// existing user is kept.
func (r *UserRepository) Upsert(ctx context.Context, user models.User) error {
	now := time.Now().UTC()
	query := r.db.Rebind(`
		INSERT INTO users (user_id, username, first_name, base_lang, target_lang, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			username = excluded.username,
			first_name = excluded.first_name,
			updated_at = excluded.updated_at`)

	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.Username, user.FirstName, user.Base, user.Target, now, now)
	if err != nil {
		return fmt.Errorf("failed to upsert user: %w", err)
	}
	return nil
}

// SetLanguagePair stores the pair a user selected, creating the user if needed.
func (r *UserRepository) SetLanguagePair(ctx context.Context, id int64, pair models.LanguagePair) error {
	now := time.Now().UTC()
	query := r.db.Rebind(`
		INSERT INTO users (user_id, base_lang, target_lang, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			base_lang = excluded.base_lang,
			target_lang = excluded.target_lang,
			updated_at = excluded.updated_at`)

	if _, err := r.db.ExecContext(ctx, query, id, pair.Base, pair.Target, now, now); err != nil {
		return fmt.Errorf("failed to set language pair: %w", err)
	}
	return nil
}

// GetLanguagePair returns the pair a user selected. ok is false when the user
// is unknown or never picked one.
func (r *UserRepository) GetLanguagePair(ctx context.Context, id int64) (models.LanguagePair, bool, error) {
	user, ok, err := r.GetByID(ctx, id)
	if err != nil || !ok {
		return models.LanguagePair{}, false, err
	}
	if user.Base == "" || user.Target == "" {
		return models.LanguagePair{}, false, nil
	}
	return user.LanguagePair, true, nil
}

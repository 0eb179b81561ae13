package database

import (
	"context"

	"github.com/example/lingoladder/pkg/models"
	"github.com/jmoiron/sqlx"
)

// LevelRepository persists the level set of each session
type LevelRepository struct {
	blobs sessionBlobs
}

// NewLevelRepository creates a new repository instance
func NewLevelRepository(db *sqlx.DB) *LevelRepository {
	return &LevelRepository{blobs: sessionBlobs{db: db, table: "level_sets"}}
}

// Get returns the stored level set. ok is false when none was saved yet.
func (r *LevelRepository) Get(ctx context.Context, key models.SessionKey) (levels []models.Level, ok bool, err error) {
	ok, err = r.blobs.load(ctx, key, &levels)
	return levels, ok, err
}

// Save replaces the level set for key.
func (r *LevelRepository) Save(ctx context.Context, key models.SessionKey, levels []models.Level) error {
	if levels == nil {
		levels = []models.Level{}
	}
	return r.blobs.save(ctx, key, levels)
}

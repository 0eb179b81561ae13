package database

import (
	"context"

	"github.com/example/lingoladder/pkg/models"
	"github.com/jmoiron/sqlx"
)

// ReviewRepository persists the review queue of each session
type ReviewRepository struct {
	blobs sessionBlobs
}

// NewReviewRepository creates a new repository instance
func NewReviewRepository(db *sqlx.DB) *ReviewRepository {
	return &ReviewRepository{blobs: sessionBlobs{db: db, table: "review_queues"}}
}

// Get returns the stored queue, or nil when none was saved.
func (r *ReviewRepository) Get(ctx context.Context, key models.SessionKey) ([]models.ReviewQueueEntry, error) {
	var entries []models.ReviewQueueEntry
	if _, err := r.blobs.load(ctx, key, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Save replaces the queue for key. An empty queue removes the row.
func (r *ReviewRepository) Save(ctx context.Context, key models.SessionKey, entries []models.ReviewQueueEntry) error {
	if len(entries) == 0 {
		return r.blobs.delete(ctx, key)
	}
	return r.blobs.save(ctx, key, entries)
}

// Keys lists every session that has a non-empty queue.
func (r *ReviewRepository) Keys(ctx context.Context) ([]models.SessionKey, error) {
	return r.blobs.keys(ctx)
}

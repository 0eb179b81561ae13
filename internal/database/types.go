package database

import (
	"time"
)

// blobRow is the shared shape of level_sets and review_queues.
type blobRow struct {
	UserID     int64     `db:"user_id"`
	BaseLang   string    `db:"base_lang"`
	TargetLang string    `db:"target_lang"`
	Payload    string    `db:"payload"`
	UpdatedAt  time.Time `db:"updated_at"`
}

// gamificationRow is a row of the gamification table.
type gamificationRow struct {
	UserID    int64     `db:"user_id"`
	Payload   string    `db:"payload"`
	UpdatedAt time.Time `db:"updated_at"`
}

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

// sessionBlobs stores one JSON document per session key in table.
type sessionBlobs struct {
	db    *sqlx.DB
	table string
}

// load decodes the stored document into dest. It reports false when no row
// exists for key.
func (b sessionBlobs) load(ctx context.Context, key models.SessionKey, dest any) (bool, error) {
	query := b.db.Rebind(fmt.Sprintf(`
		SELECT user_id, base_lang, target_lang, payload, updated_at
		FROM %s
		WHERE user_id = ? AND base_lang = ? AND target_lang = ?`, b.table))

	var row blobRow
	err := b.db.GetContext(ctx, &row, query, key.UserID, key.Base, key.Target)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to load %s for %s: %w", b.table, key, err)
	}

	if err := json.Unmarshal([]byte(row.Payload), dest); err != nil {
		return false, fmt.Errorf("failed to decode %s for %s: %w", b.table, key, err)
	}
	return true, nil
}

// save replaces the document stored for key.
func (b sessionBlobs) save(ctx context.Context, key models.SessionKey, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s for %s: %w", b.table, key, err)
	}

	query := b.db.Rebind(fmt.Sprintf(`
		INSERT INTO %s (user_id, base_lang, target_lang, payload, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (user_id, base_lang, target_lang) DO UPDATE SET
			payload = excluded.payload,
			updated_at = excluded.updated_at`, b.table))

	if _, err := b.db.ExecContext(ctx, query, key.UserID, key.Base, key.Target, string(payload), time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to save %s for %s: %w", b.table, key, err)
	}
	return nil
}

func (b sessionBlobs) delete(ctx context.Context, key models.SessionKey) error {
	query := b.db.Rebind(fmt.Sprintf(
		`DELETE FROM %s WHERE user_id = ? AND base_lang = ? AND target_lang = ?`, b.table))
	if _, err := b.db.ExecContext(ctx, query, key.UserID, key.Base, key.Target); err != nil {
		return fmt.Errorf("failed to delete %s for %s: %w", b.table, key, err)
	}
	return nil
}

func (b sessionBlobs) keys(ctx context.Context) ([]models.SessionKey, error) {
	query := fmt.Sprintf(`SELECT user_id, base_lang, target_lang FROM %s ORDER BY user_id, base_lang, target_lang`, b.table)

	var keys []models.SessionKey
	if err := b.db.SelectContext(ctx, &keys, query); err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", b.table, err)
	}
	return keys, nil
}

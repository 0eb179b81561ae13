package database

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Supported DB_TYPE values.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

var ErrUnsupportedDriver = errors.New("unsupported database type")

// Options selects and locates the database.
type Options struct {
	Type string
	// Path is the sqlite file, or ":memory:".
	Path string
	// URL is the postgres connection string.
	URL string
}

// Connect opens the database and creates the schema.
func Connect(opts Options) (*sqlx.DB, error) {
	var (
		db  *sqlx.DB
		err error
	)

	switch opts.Type {
	case DriverSQLite, "":
		db, err = connectSQLite(opts.Path)
	case DriverPostgres:
		db, err = sqlx.Connect("postgres", opts.URL)
		if err != nil {
			err = fmt.Errorf("failed to connect to postgres: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, opts.Type)
	}
	if err != nil {
		return nil, err
	}

	if err := initializeSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func connectSQLite(path string) (*sqlx.DB, error) {
	if path == "" {
		path = filepath.Join("data", "lingoladder.db")
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to sqlite: %w", err)
	}

	// SQLite doesn't support multiple writers; a single connection also keeps
	// an in-memory database alive for the life of the pool.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	return db, nil
}

var schema = []struct {
	name string
	ddl  string
}{
	{"users", `
		CREATE TABLE IF NOT EXISTS users (
			user_id BIGINT PRIMARY KEY,
			username TEXT NOT NULL DEFAULT '',
			first_name TEXT NOT NULL DEFAULT '',
			base_lang TEXT NOT NULL DEFAULT '',
			target_lang TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`},
	{"level_sets", `
		CREATE TABLE IF NOT EXISTS level_sets (
			user_id BIGINT NOT NULL,
			base_lang TEXT NOT NULL,
			target_lang TEXT NOT NULL,
			payload TEXT NOT NULL,
			updated_at TIMESTAMP NOT NULL,
			PRIMARY KEY (user_id, base_lang, target_lang)
		)`},
	{"review_queues", `
		CREATE TABLE IF NOT EXISTS review_queues (
			user_id BIGINT NOT NULL,
			base_lang TEXT NOT NULL,
			target_lang TEXT NOT NULL,
			payload TEXT NOT NULL,
			updated_at TIMESTAMP NOT NULL,
			PRIMARY KEY (user_id, base_lang, target_lang)
		)`},
	{"gamification", `
		CREATE TABLE IF NOT EXISTS gamification (
			user_id BIGINT PRIMARY KEY,
			payload TEXT NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`},
}

// initializeSchema creates necessary tables if they don't exist
func initializeSchema(db *sqlx.DB) error {
	for _, t := range schema {
		if _, err := db.Exec(t.ddl); err != nil {
			return fmt.Errorf("failed to create %s table: %w", t.name, err)
		}
	}
	return nil
}

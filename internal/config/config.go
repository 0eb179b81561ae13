// Package config loads application settings from the environment and an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config is the root application configuration.
type Config struct {
	Env      string `env:"ENV" env-default:"production" validate:"oneof=development production"`
	LogLevel string `env:"LOG_LEVEL" env-default:"info" validate:"oneof=debug info warn error"`

	Database  DatabaseConfig
	Telegram  TelegramConfig
	Translate TranslateConfig
	Course    CourseConfig
	Reminders ReminderConfig

	// VocabularyFile is an optional xlsx or csv list used instead of the
	// built-in vocabulary.
	VocabularyFile string `env:"VOCABULARY_FILE"`
}

// DatabaseConfig selects the storage backend.
type DatabaseConfig struct {
	Type string `env:"DB_TYPE" env-default:"sqlite" validate:"oneof=sqlite postgres"`
	Path string `env:"DB_PATH" env-default:"data/lingoladder.db"`
	URL  string `env:"DATABASE_URL" validate:"required_if=Type postgres"`
}

type TelegramConfig struct {
	Token string `env:"TELEGRAM_BOT_TOKEN" validate:"required"`
}

// TranslateConfig points at a LibreTranslate compatible server. An empty URL
// leaves only offline lookups.
type TranslateConfig struct {
	URL     string        `env:"TRANSLATE_URL" validate:"omitempty,url"`
	APIKey  string        `env:"TRANSLATE_API_KEY"`
	Timeout time.Duration `env:"TRANSLATE_TIMEOUT" env-default:"10s" validate:"gt=0"`
}

// CourseConfig controls level generation.
type CourseConfig struct {
	WordsPerLevel  int     `env:"WORDS_PER_LEVEL" env-default:"10" validate:"gt=0"`
	ReviewFraction float64 `env:"REVIEW_FRACTION" env-default:"0.3" validate:"gte=0,lt=1"`
}

type ReminderConfig struct {
	Interval  time.Duration `env:"REMINDER_INTERVAL" env-default:"1h" validate:"gte=1m"`
	StartHour int           `env:"NOTIFICATION_START_HOUR" env-default:"8" validate:"min=0,max=23"`
	EndHour   int           `env:"NOTIFICATION_END_HOUR" env-default:"22" validate:"min=0,max=23"`
}

var validate = validator.New()

// Load reads envFiles into the process environment (missing files are
// skipped), then reads and validates the configuration. Variables already
// set take priority over the files.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config: load %s: %w", f, err)
		}
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, fmt.Sprintf("field %s failed %q %s", fe.Namespace(), fe.Tag(), fe.Param()))
		}
		return errors.New(strings.Join(msgs, "; "))
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == EnvDevelopment
}

package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/example/lingoladder/internal/bot"
	"github.com/example/lingoladder/internal/config"
	"github.com/example/lingoladder/internal/curriculum"
	"github.com/example/lingoladder/internal/database"
	"github.com/example/lingoladder/internal/excel"
	"github.com/example/lingoladder/internal/logging"
	"github.com/example/lingoladder/internal/scheduler"
	"github.com/example/lingoladder/internal/session"
	"github.com/example/lingoladder/internal/translation"
	"github.com/example/lingoladder/internal/vocabulary"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	if err := run(cfg, logger); err != nil {
		logger.Fatal("application error", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Connect(database.Options{Type: cfg.Database.Type, Path: cfg.Database.Path, URL: cfg.Database.URL})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()
	store := database.NewStore(db)

	table, err := loadVocabulary(cfg.VocabularyFile, logger)
	if err != nil {
		return err
	}

	sessions := session.NewManager(store, table,
		session.WithLogger(logger),
		session.WithCurriculum(curriculum.Options{
			WordsPerLevel:  cfg.Course.WordsPerLevel,
			ReviewFraction: cfg.Course.ReviewFraction,
		}),
	)

	var provider translation.Provider
	if cfg.Translate.URL != "" {
		provider = translation.NewLibreTranslate(cfg.Translate.URL, cfg.Translate.APIKey, cfg.Translate.Timeout)
	}
	tool := translation.NewTool(provider, table, logger)

	botCfg := bot.DefaultConfig()
	botCfg.Debug = cfg.IsDevelopment()
	api, err := bot.NewTelegramAPI(cfg.Telegram.Token, botCfg)
	if err != nil {
		return err
	}
	b := bot.New(api, sessions, store.Users, tool, botCfg, logger)

	sched := scheduler.New(sessions, b, scheduler.Options{
		Interval:  cfg.Reminders.Interval,
		StartHour: cfg.Reminders.StartHour,
		EndHour:   cfg.Reminders.EndHour,
	}, logger)
	b.SetReminders(sched)
	if err := sched.Start(ctx); err != nil {
		return err
	}
	defer sched.Stop()

	logger.Info("bot starting, press Ctrl+C to stop")
	b.Run(ctx, api)
	logger.Info("bot stopped successfully")
	return nil
}

func loadVocabulary(path string, logger *zap.Logger) (*vocabulary.Table, error) {
	if path == "" {
		return vocabulary.NewTable(), nil
	}
	table, res, err := excel.Import(excel.DefaultImportConfig(path))
	if err != nil {
		return nil, fmt.Errorf("failed to import vocabulary: %w", err)
	}
	logger.Info("vocabulary imported",
		zap.String("file", path),
		zap.Strings("languages", res.Languages),
		zap.Int("rows", res.Imported),
		zap.Int("skipped", res.Skipped))
	return table, nil
}

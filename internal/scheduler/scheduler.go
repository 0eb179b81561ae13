// Package scheduler periodically reminds learners about due reviews.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/example/lingoladder/pkg/models"
	"github.com/go-co-op/gocron"
	"go.uber.org/zap"
)

const (
	DefaultNotificationStartHour = 8
	DefaultNotificationEndHour   = 22
	DefaultInterval              = time.Hour
)

// Notifier delivers a reminder to a learner.
type Notifier interface {
	SendReminder(ctx context.Context, userID int64, pair models.LanguagePair, count int) error
}

// Source reports which sessions exist and how many reviews each has due.
type Source interface {
	ListSessions(ctx context.Context) ([]models.SessionKey, error)
	CountDue(ctx context.Context, key models.SessionKey) (int, error)
}

// Options configures the reminder job.
type Options struct {
	Interval  time.Duration
	StartHour int
	EndHour   int
	Location  *time.Location
}

// Scheduler manages scheduled tasks for the application
type Scheduler struct {
	scheduler *gocron.Scheduler
	source    Source
	notifier  Notifier
	opts      Options
	now       func() time.Time
	log       *zap.Logger

	mu       sync.Mutex
	notified map[models.SessionKey]int
}

// New creates a new scheduler instance
func New(source Source, notifier Notifier, opts Options, log *zap.Logger) *Scheduler {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(opts.Location),
		source:    source,
		notifier:  notifier,
		opts:      opts,
		now:       time.Now,
		log:       log,
		notified:  make(map[models.SessionKey]int),
	}
}

// Start runs the reminder job every interval until ctx is done or Stop is
// called.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.scheduler.Every(s.opts.Interval).Do(func() {
		if err := s.CheckAndSendReminders(ctx); err != nil {
			s.log.Error("reminder run failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("schedule reminders: %w", err)
	}

	s.scheduler.StartAsync()
	s.log.Info("scheduler started", zap.Duration("interval", s.opts.Interval))
	return nil
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// InNotificationHours reports whether t falls inside the configured window.
// A window whose end is before its start wraps past midnight.
func (s *Scheduler) InNotificationHours(t time.Time) bool {
	h := t.In(s.opts.Location).Hour()
	if s.opts.StartHour <= s.opts.EndHour {
		return h >= s.opts.StartHour && h <= s.opts.EndHour
	}
	return h >= s.opts.StartHour || h <= s.opts.EndHour
}

// CheckAndSendReminders notifies every session with due reviews. A session
// is reminded again only once its due count has changed.
func (s *Scheduler) CheckAndSendReminders(ctx context.Context) error {
	now := s.now()
	if !s.InNotificationHours(now) {
		s.log.Debug("outside notification hours, skipping reminders",
			zap.Int("hour", now.In(s.opts.Location).Hour()),
			zap.Int("start", s.opts.StartHour),
			zap.Int("end", s.opts.EndHour))
		return nil
	}

	keys, err := s.source.ListSessions(ctx)
	if err != nil {
		return fmt.Errorf("list sessions: %w", err)
	}

	for _, key := range keys {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		count, err := s.source.CountDue(ctx, key)
		if err != nil {
			s.log.Warn("count due reviews", zap.Stringer("session", key), zap.Error(err))
			continue
		}
		if !s.shouldNotify(key, count) {
			continue
		}
		if err := s.notifier.SendReminder(ctx, key.UserID, key.LanguagePair, count); err != nil {
			s.log.Warn("send reminder", zap.Stringer("session", key), zap.Error(err))
			continue
		}
		s.markNotified(key, count)
	}
	return nil
}

// RunManualCheck sends a reminder for key right away if anything is due,
// ignoring notification hours. It returns the due count.
func (s *Scheduler) RunManualCheck(ctx context.Context, key models.SessionKey) (int, error) {
	count, err := s.source.CountDue(ctx, key)
	if err != nil {
		return 0, err
	}
	if count == 0 {
		return 0, nil
	}
	if err := s.notifier.SendReminder(ctx, key.UserID, key.LanguagePair, count); err != nil {
		return count, err
	}
	s.markNotified(key, count)
	return count, nil
}

func (s *Scheduler) shouldNotify(key models.SessionKey, count int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if count == 0 {
		delete(s.notified, key)
		return false
	}
	last, ok := s.notified[key]
	return !ok || last != count
}

func (s *Scheduler) markNotified(key models.SessionKey, count int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notified[key] = count
}

// Package session is the facade front-ends use: one Session per user and
// language pair, persisted through a Store after every change.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/example/lingoladder/internal/curriculum"
	"github.com/example/lingoladder/internal/progression"
	"github.com/example/lingoladder/internal/spaced_repetition"
	"github.com/example/lingoladder/internal/vocabulary"
	"github.com/example/lingoladder/pkg/models"
	"go.uber.org/zap"
)

// DefaultPair is used for users who never picked a language pair.
var DefaultPair = models.LanguagePair{Base: "en", Target: "es"}

var ErrInvalidPair = errors.New("base and target language must differ")

// Store persists session state. Every method operates on whole documents.
type Store interface {
	LoadLevels(ctx context.Context, key models.SessionKey) ([]models.Level, bool, error)
	SaveLevels(ctx context.Context, key models.SessionKey, levels []models.Level) error
	LoadReviewQueue(ctx context.Context, key models.SessionKey) ([]models.ReviewQueueEntry, error)
	SaveReviewQueue(ctx context.Context, key models.SessionKey, entries []models.ReviewQueueEntry) error
	LoadGamification(ctx context.Context, userID int64) (models.Gamification, error)
	SaveGamification(ctx context.Context, userID int64, g models.Gamification) error
	LoadLanguagePair(ctx context.Context, userID int64) (models.LanguagePair, bool, error)
	SaveLanguagePair(ctx context.Context, userID int64, pair models.LanguagePair) error
	ListSessions(ctx context.Context) ([]models.SessionKey, error)
}

type Option func(*Manager)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

func WithLogger(log *zap.Logger) Option {
	return func(m *Manager) { m.log = log }
}

// WithGenerator sets the level generator, e.g. a seeded one.
func WithGenerator(g *curriculum.Generator) Option {
	return func(m *Manager) { m.gen = g }
}

func WithCurriculum(opts curriculum.Options) Option {
	return func(m *Manager) { m.curriculum = opts }
}

// WithTestPolicy sets the checks applied before SubmitTest.
func WithTestPolicy(p progression.Policy) Option {
	return func(m *Manager) { m.testPolicy = p }
}

func WithReviewPolicy(p spaced_repetition.Policy) Option {
	return func(m *Manager) { m.reviewPolicy = p }
}

// Manager opens sessions and serializes work on each session key.
type Manager struct {
	store        Store
	table        *vocabulary.Table
	gen          *curriculum.Generator
	curriculum   curriculum.Options
	testPolicy   progression.Policy
	reviewPolicy spaced_repetition.Policy
	now          func() time.Time
	log          *zap.Logger

	mu    sync.Mutex
	locks map[models.SessionKey]*sync.Mutex
	users map[int64]*sync.Mutex
}

func NewManager(store Store, table *vocabulary.Table, opts ...Option) *Manager {
	m := &Manager{
		store:        store,
		table:        table,
		curriculum:   curriculum.DefaultOptions(),
		testPolicy:   progression.StrictPolicy(),
		reviewPolicy: spaced_repetition.DefaultPolicy(),
		now:          time.Now,
		log:          zap.NewNop(),
		locks:        make(map[models.SessionKey]*sync.Mutex),
		users:        make(map[int64]*sync.Mutex),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.gen == nil {
		m.gen = curriculum.NewGenerator(nil, m.log)
	}
	return m
}

// Open returns the session for key, generating and saving a level set when
// none is stored yet.
func (m *Manager) Open(ctx context.Context, key models.SessionKey) (*Session, error) {
	if key.Base == key.Target {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPair, key.LanguagePair)
	}

	s := &Session{m: m, key: key, lock: m.sessionLock(key)}

	s.lock.Lock()
	defer s.lock.Unlock()
	if _, err := s.loadLevels(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Current opens the session for the pair the user last selected.
func (m *Manager) Current(ctx context.Context, userID int64) (*Session, error) {
	pair, ok, err := m.store.LoadLanguagePair(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load language pair: %w", err)
	}
	if !ok {
		pair = DefaultPair
	}
	return m.Open(ctx, models.SessionKey{UserID: userID, LanguagePair: pair})
}

// SwitchPair records the user's new pair and opens its session. Review
// queues belong to one pair: the queue of the pair being left and the queue
// of the new pair are both cleared. Level sets are kept. Selecting the pair
// that is already active changes nothing.
func (m *Manager) SwitchPair(ctx context.Context, userID int64, pair models.LanguagePair) (*Session, error) {
	if pair.Base == pair.Target {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPair, pair)
	}

	prev, ok, err := m.store.LoadLanguagePair(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load language pair: %w", err)
	}
	if !ok {
		prev = DefaultPair
	}
	if prev == pair {
		if !ok {
			if err := m.store.SaveLanguagePair(ctx, userID, pair); err != nil {
				return nil, fmt.Errorf("save language pair: %w", err)
			}
		}
		return m.Open(ctx, models.SessionKey{UserID: userID, LanguagePair: pair})
	}

	if err := m.clearQueue(ctx, models.SessionKey{UserID: userID, LanguagePair: prev}); err != nil {
		return nil, err
	}
	if err := m.store.SaveLanguagePair(ctx, userID, pair); err != nil {
		return nil, fmt.Errorf("save language pair: %w", err)
	}

	s, err := m.Open(ctx, models.SessionKey{UserID: userID, LanguagePair: pair})
	if err != nil {
		return nil, err
	}
	if err := m.clearQueue(ctx, s.key); err != nil {
		return nil, err
	}

	m.log.Info("language pair switched",
		zap.Int64("user_id", userID),
		zap.Stringer("from", prev),
		zap.Stringer("pair", pair))
	return s, nil
}

func (m *Manager) clearQueue(ctx context.Context, key models.SessionKey) error {
	lock := m.sessionLock(key)
	lock.Lock()
	defer lock.Unlock()
	if err := m.store.SaveReviewQueue(ctx, key, nil); err != nil {
		return fmt.Errorf("clear review queue: %w", err)
	}
	return nil
}

// CountDue returns how many review entries of key are due now.
func (m *Manager) CountDue(ctx context.Context, key models.SessionKey) (int, error) {
	lock := m.sessionLock(key)
	lock.Lock()
	defer lock.Unlock()

	entries, err := m.store.LoadReviewQueue(ctx, key)
	if err != nil {
		return 0, fmt.Errorf("load review queue: %w", err)
	}
	return spaced_repetition.NewQueue(m.reviewPolicy, entries).CountDue(m.now()), nil
}

// ListSessions returns every session with a non-empty review queue.
func (m *Manager) ListSessions(ctx context.Context) ([]models.SessionKey, error) {
	return m.store.ListSessions(ctx)
}

// Table returns the vocabulary the manager generates levels from.
func (m *Manager) Table() *vocabulary.Table {
	return m.table
}

func (m *Manager) sessionLock(key models.SessionKey) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.locks[key]
	if !ok {
		l = &sync.Mutex{}
		m.locks[key] = l
	}
	return l
}

// userLock guards the per-user gamification document, which is shared by
// every pair of that user.
func (m *Manager) userLock(userID int64) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.users[userID]
	if !ok {
		l = &sync.Mutex{}
		m.users[userID] = l
	}
	return l
}

package session

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/example/lingoladder/pkg/models"
)

// memStore keeps JSON documents in maps, the same shape the SQL store writes.
type memStore struct {
	mu     sync.Mutex
	levels map[models.SessionKey][]byte
	queues map[models.SessionKey][]byte
	gam    map[int64][]byte
	pairs  map[int64]models.LanguagePair
	saves  int
	fail   error
}

func newMemStore() *memStore {
	return &memStore{
		levels: make(map[models.SessionKey][]byte),
		queues: make(map[models.SessionKey][]byte),
		gam:    make(map[int64][]byte),
		pairs:  make(map[int64]models.LanguagePair),
	}
}

var errStoreDown = errors.New("store down")

func (s *memStore) LoadLevels(_ context.Context, key models.SessionKey) ([]models.Level, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		return nil, false, s.fail
	}
	raw, ok := s.levels[key]
	if !ok {
		return nil, false, nil
	}
	var levels []models.Level
	return levels, true, json.Unmarshal(raw, &levels)
}

func (s *memStore) SaveLevels(_ context.Context, key models.SessionKey, levels []models.Level) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		return s.fail
	}
	raw, err := json.Marshal(levels)
	s.levels[key] = raw
	s.saves++
	return err
}

func (s *memStore) LoadReviewQueue(_ context.Context, key models.SessionKey) ([]models.ReviewQueueEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		return nil, s.fail
	}
	var entries []models.ReviewQueueEntry
	if raw, ok := s.queues[key]; ok {
		if err := json.Unmarshal(raw, &entries); err != nil {
			return nil, err
		}
	}
	return entries, nil
}

func (s *memStore) SaveReviewQueue(_ context.Context, key models.SessionKey, entries []models.ReviewQueueEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		return s.fail
	}
	if len(entries) == 0 {
		delete(s.queues, key)
		return nil
	}
	raw, err := json.Marshal(entries)
	s.queues[key] = raw
	return err
}

func (s *memStore) LoadGamification(_ context.Context, userID int64) (models.Gamification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var g models.Gamification
	if raw, ok := s.gam[userID]; ok {
		return g, json.Unmarshal(raw, &g)
	}
	return g, nil
}

func (s *memStore) SaveGamification(_ context.Context, userID int64, g models.Gamification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, err := json.Marshal(g)
	s.gam[userID] = raw
	return err
}

func (s *memStore) LoadLanguagePair(_ context.Context, userID int64) (models.LanguagePair, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.pairs[userID]
	return p, ok, nil
}

func (s *memStore) SaveLanguagePair(_ context.Context, userID int64, pair models.LanguagePair) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pairs[userID] = pair
	return nil
}

func (s *memStore) ListSessions(context.Context) ([]models.SessionKey, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]models.SessionKey, 0, len(s.queues))
	for k := range s.queues {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
	return keys, nil
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

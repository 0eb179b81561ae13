package database

import (
	"context"
	"testing"
	"time"

	"github.com/example/lingoladder/pkg/models"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := Connect(Options{Type: DriverSQLite, Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

var testKey = models.SessionKey{UserID: 42, LanguagePair: models.LanguagePair{Base: "en", Target: "es"}}

func TestConnect_UnsupportedDriver(t *testing.T) {
	_, err := Connect(Options{Type: "oracle"})
	require.ErrorIs(t, err, ErrUnsupportedDriver)
}

func TestConnect_SchemaIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, initializeSchema(db))
}

func TestLevelRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewLevelRepository(newTestDB(t))

	_, ok, err := repo.Get(ctx, testKey)
	require.NoError(t, err)
	assert.False(t, ok)

	levels := []models.Level{
		{LevelNumber: 1, Words: []models.WordPair{{Word: "hola", Translation: "hello", SourceIndex: 0}}, PracticeComplete: true,
			TestScore: &models.TestScore{Score: 80, Passed: true}},
		{LevelNumber: 2, Words: []models.WordPair{{Word: "adiós", Translation: "goodbye", SourceIndex: 1}}},
	}
	require.NoError(t, repo.Save(ctx, testKey, levels))

	got, ok, err := repo.Get(ctx, testKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, levels, got)

	levels[1].TestScore = &models.TestScore{Score: 10}
	require.NoError(t, repo.Save(ctx, testKey, levels))
	got, _, err = repo.Get(ctx, testKey)
	require.NoError(t, err)
	assert.Equal(t, 10, got[1].TestScore.Score)

	other := testKey
	other.Target = "fr"
	_, ok, err = repo.Get(ctx, other)
	require.NoError(t, err)
	assert.False(t, ok, "pairs are stored separately")
}

func TestReviewRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewReviewRepository(newTestDB(t))

	entries, err := repo.Get(ctx, testKey)
	require.NoError(t, err)
	assert.Empty(t, entries)

	at := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	want := []models.ReviewQueueEntry{{
		Word: "agua", Translation: "water", SourceIndex: 7,
		LastWrong: at, Interval: 90 * time.Minute, NextReview: at.Add(90 * time.Minute),
	}}
	require.NoError(t, repo.Save(ctx, testKey, want))

	got, err := repo.Get(ctx, testKey)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, want[0].Key(), got[0].Key())
	assert.Equal(t, want[0].Interval, got[0].Interval)
	assert.True(t, want[0].NextReview.Equal(got[0].NextReview))

	second := models.SessionKey{UserID: 7, LanguagePair: models.LanguagePair{Base: "en", Target: "de"}}
	require.NoError(t, repo.Save(ctx, second, want))

	keys, err := repo.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.SessionKey{second, testKey}, keys)

	// an emptied queue is no longer listed
	require.NoError(t, repo.Save(ctx, testKey, nil))
	keys, err = repo.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.SessionKey{second}, keys)
	entries, err = repo.Get(ctx, testKey)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestGamificationRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewGamificationRepository(newTestDB(t))

	g, err := repo.Get(ctx, 1)
	require.NoError(t, err)
	assert.Zero(t, g.XP)

	want := models.Gamification{XP: 35, DailyStreak: 2, LastPracticeDate: "2024-03-01", Badges: []string{"first_lesson"}}
	require.NoError(t, repo.Save(ctx, 1, want))
	g, err = repo.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, want, g)
}

func TestUserRepository_LanguagePair(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(newTestDB(t))

	_, ok, err := repo.GetLanguagePair(ctx, 5)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repo.Upsert(ctx, models.User{ID: 5, Username: "ana", FirstName: "Ana"}))
	_, ok, err = repo.GetLanguagePair(ctx, 5)
	require.NoError(t, err)
	assert.False(t, ok, "no pair picked yet")

	pair := models.LanguagePair{Base: "en", Target: "ja"}
	require.NoError(t, repo.SetLanguagePair(ctx, 5, pair))
	require.NoError(t, repo.Upsert(ctx, models.User{ID: 5, Username: "ana2", FirstName: "Ana"}))

	got, ok, err := repo.GetLanguagePair(ctx, 5)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, pair, got)

	user, ok, err := repo.GetByID(ctx, 5)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "ana2", user.Username)

	// a pair can be stored before the user is registered
	require.NoError(t, repo.SetLanguagePair(ctx, 9, models.LanguagePair{Base: "es", Target: "en"}))
	got, ok, err = repo.GetLanguagePair(ctx, 9)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "es", got.Base)
}

func TestStore_ListSessions(t *testing.T) {
	ctx := context.Background()
	s := NewStore(newTestDB(t))

	require.NoError(t, s.SaveLevels(ctx, testKey, nil))
	keys, err := s.ListSessions(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys, "levels alone do not make a session listable")

	require.NoError(t, s.SaveReviewQueue(ctx, testKey, []models.ReviewQueueEntry{{Word: "agua", Translation: "water"}}))
	keys, err = s.ListSessions(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.SessionKey{testKey}, keys)

	levels, ok, err := s.LoadLevels(ctx, testKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, levels)
}

package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/example/lingoladder/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	keys    []models.SessionKey
	due     map[models.SessionKey]int
	listErr error
}

func (f *fakeSource) ListSessions(context.Context) ([]models.SessionKey, error) {
	return f.keys, f.listErr
}

func (f *fakeSource) CountDue(_ context.Context, key models.SessionKey) (int, error) {
	n, ok := f.due[key]
	if !ok {
		return 0, errors.New("unknown session")
	}
	return n, nil
}

type reminder struct {
	userID int64
	pair   models.LanguagePair
	count  int
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []reminder
	fail map[int64]bool
}

func (f *fakeNotifier) SendReminder(_ context.Context, userID int64, pair models.LanguagePair, count int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail[userID] {
		return errors.New("blocked by user")
	}
	f.sent = append(f.sent, reminder{userID, pair, count})
	return nil
}

var (
	keyA = models.SessionKey{UserID: 1, LanguagePair: models.LanguagePair{Base: "en", Target: "es"}}
	keyB = models.SessionKey{UserID: 2, LanguagePair: models.LanguagePair{Base: "en", Target: "fr"}}
	keyC = models.SessionKey{UserID: 3, LanguagePair: models.LanguagePair{Base: "ru", Target: "en"}}
)

func at(hour int) func() time.Time {
	return func() time.Time { return time.Date(2024, 3, 1, hour, 30, 0, 0, time.UTC) }
}

func TestScheduler_InNotificationHours(t *testing.T) {
	s := New(nil, nil, Options{StartHour: 8, EndHour: 22}, nil)
	assert.False(t, s.InNotificationHours(at(7)()))
	assert.True(t, s.InNotificationHours(at(8)()))
	assert.True(t, s.InNotificationHours(at(22)()))
	assert.False(t, s.InNotificationHours(at(23)()))

	wrap := New(nil, nil, Options{StartHour: 20, EndHour: 2}, nil)
	assert.True(t, wrap.InNotificationHours(at(23)()))
	assert.True(t, wrap.InNotificationHours(at(1)()))
	assert.False(t, wrap.InNotificationHours(at(12)()))
}

func TestScheduler_CheckAndSendReminders(t *testing.T) {
	src := &fakeSource{
		keys: []models.SessionKey{keyA, keyB, keyC},
		due:  map[models.SessionKey]int{keyA: 3, keyB: 0, keyC: 1},
	}
	n := &fakeNotifier{}
	s := New(src, n, Options{StartHour: 8, EndHour: 22}, nil)
	s.now = at(10)

	require.NoError(t, s.CheckAndSendReminders(context.Background()))
	assert.Equal(t, []reminder{{1, keyA.LanguagePair, 3}, {3, keyC.LanguagePair, 1}}, n.sent)

	// unchanged counts are not repeated
	require.NoError(t, s.CheckAndSendReminders(context.Background()))
	assert.Len(t, n.sent, 2)

	src.due[keyA] = 4
	src.due[keyC] = 0
	require.NoError(t, s.CheckAndSendReminders(context.Background()))
	require.Len(t, n.sent, 3)
	assert.Equal(t, reminder{1, keyA.LanguagePair, 4}, n.sent[2])

	src.due[keyC] = 1
	require.NoError(t, s.CheckAndSendReminders(context.Background()))
	require.Len(t, n.sent, 4, "a cleared queue that fills again is reminded")
}

func TestScheduler_SkipsOutsideHours(t *testing.T) {
	src := &fakeSource{keys: []models.SessionKey{keyA}, due: map[models.SessionKey]int{keyA: 2}}
	n := &fakeNotifier{}
	s := New(src, n, Options{StartHour: 8, EndHour: 22}, nil)
	s.now = at(3)

	require.NoError(t, s.CheckAndSendReminders(context.Background()))
	assert.Empty(t, n.sent)
}

func TestScheduler_Errors(t *testing.T) {
	src := &fakeSource{listErr: errors.New("db down")}
	s := New(src, &fakeNotifier{}, Options{StartHour: 0, EndHour: 23}, nil)
	require.Error(t, s.CheckAndSendReminders(context.Background()))

	src = &fakeSource{
		keys: []models.SessionKey{keyA, keyB, keyC},
		due:  map[models.SessionKey]int{keyA: 1, keyC: 2},
	}
	n := &fakeNotifier{fail: map[int64]bool{1: true}}
	s = New(src, n, Options{StartHour: 0, EndHour: 23}, nil)
	require.NoError(t, s.CheckAndSendReminders(context.Background()))
	assert.Equal(t, []reminder{{3, keyC.LanguagePair, 2}}, n.sent)

	// the failed reminder is retried on the next run
	n.fail = nil
	require.NoError(t, s.CheckAndSendReminders(context.Background()))
	assert.Len(t, n.sent, 2)
}

func TestScheduler_RunManualCheck(t *testing.T) {
	src := &fakeSource{due: map[models.SessionKey]int{keyA: 0, keyB: 5}}
	n := &fakeNotifier{}
	s := New(src, n, Options{}, nil)
	s.now = at(3)

	count, err := s.RunManualCheck(context.Background(), keyA)
	require.NoError(t, err)
	assert.Zero(t, count)

	count, err = s.RunManualCheck(context.Background(), keyB)
	require.NoError(t, err)
	assert.Equal(t, 5, count)
	assert.Equal(t, []reminder{{2, keyB.LanguagePair, 5}}, n.sent)

	_, err = s.RunManualCheck(context.Background(), keyC)
	require.Error(t, err)
}

func TestScheduler_StartStop(t *testing.T) {
	src := &fakeSource{}
	s := New(src, &fakeNotifier{}, Options{Interval: time.Hour}, nil)
	require.NoError(t, s.Start(context.Background()))
	s.Stop()
}

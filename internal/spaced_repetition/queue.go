// Package spaced_repetition schedules missed items for review with
// expanding intervals.
package spaced_repetition

import (
	"math"
	"sort"
	"time"

	"github.com/example/lingoladder/internal/similarity"
	"github.com/example/lingoladder/pkg/models"
)

// DefaultDueLimit is how many due entries Due returns when limit <= 0.
const DefaultDueLimit = 5

// Policy holds the interval parameters of the queue.
type Policy struct {
	FirstMiss     time.Duration
	MissGrowth    float64
	MissCap       time.Duration
	AckFloor      time.Duration
	AckGrowth     float64
	AckCap        time.Duration
	PassThreshold int
}

// DefaultPolicy returns the standard review intervals.
func DefaultPolicy() Policy {
	return Policy{
		FirstMiss:     90 * time.Minute,
		MissGrowth:    2.2,
		MissCap:       7 * 24 * time.Hour,
		AckFloor:      2 * time.Hour,
		AckGrowth:     2.1,
		AckCap:        10 * 24 * time.Hour,
		PassThreshold: similarity.PassThreshold,
	}
}

// Queue is the review queue of one session. Keys are unique; insertion
// order is kept so iteration is stable.
type Queue struct {
	policy  Policy
	entries []models.ReviewQueueEntry
	index   map[models.ReviewKey]int
}

// NewQueue builds a queue from persisted entries. Duplicate keys collapse to
// the first occurrence.
func NewQueue(policy Policy, entries []models.ReviewQueueEntry) *Queue {
	q := &Queue{policy: policy, index: make(map[models.ReviewKey]int, len(entries))}
	for _, e := range entries {
		if _, ok := q.index[e.Key()]; ok {
			continue
		}
		q.index[e.Key()] = len(q.entries)
		q.entries = append(q.entries, e)
	}
	return q
}

// Len returns the number of queued items.
func (q *Queue) Len() int {
	return len(q.entries)
}

// Entries returns a copy of every entry in insertion order.
func (q *Queue) Entries() []models.ReviewQueueEntry {
	return append([]models.ReviewQueueEntry(nil), q.entries...)
}

// Get returns the entry stored under key.
func (q *Queue) Get(key models.ReviewKey) (models.ReviewQueueEntry, bool) {
	i, ok := q.index[key]
	if !ok {
		return models.ReviewQueueEntry{}, false
	}
	return q.entries[i], true
}

// RecordOutcome queues every result that scored below the pass threshold.
// A first miss waits FirstMiss; a repeat miss grows the current interval.
// It returns the number of items queued or rescheduled.
func (q *Queue) RecordOutcome(now time.Time, results []models.ItemResult) int {
	changed := 0
	for _, r := range results {
		if r.Score >= q.policy.PassThreshold {
			continue
		}
		key := r.Key()
		i, ok := q.index[key]
		if !ok {
			q.index[key] = len(q.entries)
			q.entries = append(q.entries, models.ReviewQueueEntry{
				Word:        r.Word,
				Translation: r.Translation,
				SourceIndex: r.SourceIndex,
				LastWrong:   now,
				Interval:    q.policy.FirstMiss,
				NextReview:  now.Add(q.policy.FirstMiss),
			})
			changed++
			continue
		}

		e := &q.entries[i]
		interval := q.policy.FirstMiss
		if e.Interval > 0 {
			interval = grow(e.Interval, q.policy.MissGrowth, q.policy.MissCap)
		}
		e.Interval = interval
		e.LastWrong = now
		e.NextReview = now.Add(interval)
		changed++
	}
	return changed
}

// AcknowledgeReview pushes the entry further out after a successful review.
// It reports whether key was queued.
func (q *Queue) AcknowledgeReview(now time.Time, key models.ReviewKey) bool {
	i, ok := q.index[key]
	if !ok {
		return false
	}
	e := &q.entries[i]
	interval := q.policy.AckFloor
	if e.Interval > 0 {
		interval = grow(e.Interval, q.policy.AckGrowth, q.policy.AckCap)
	}
	e.Interval = interval
	e.LastWrong = now
	e.NextReview = now.Add(interval)
	return true
}

// Dismiss removes key from the queue. It reports whether anything was removed.
func (q *Queue) Dismiss(key models.ReviewKey) bool {
	i, ok := q.index[key]
	if !ok {
		return false
	}
	q.entries = append(q.entries[:i], q.entries[i+1:]...)
	delete(q.index, key)
	for j := i; j < len(q.entries); j++ {
		q.index[q.entries[j].Key()] = j
	}
	return true
}

// Due returns up to limit entries whose review time has come, earliest first.
func (q *Queue) Due(now time.Time, limit int) []models.ReviewQueueEntry {
	if limit <= 0 {
		limit = DefaultDueLimit
	}
	var due []models.ReviewQueueEntry
	for _, e := range q.entries {
		if e.IsDue(now) {
			due = append(due, e)
		}
	}
	sortByNextReview(due)
	if len(due) > limit {
		due = due[:limit]
	}
	return due
}

// CountDue returns how many entries are due at now.
func (q *Queue) CountDue(now time.Time) int {
	n := 0
	for _, e := range q.entries {
		if e.IsDue(now) {
			n++
		}
	}
	return n
}

// Upcoming returns every entry ordered by next review time.
func (q *Queue) Upcoming() []models.ReviewQueueEntry {
	out := q.Entries()
	sortByNextReview(out)
	return out
}

// Clear empties the queue.
func (q *Queue) Clear() {
	q.entries = nil
	q.index = make(map[models.ReviewKey]int)
}

func sortByNextReview(entries []models.ReviewQueueEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].NextReview.Before(entries[j].NextReview)
	})
}

func grow(d time.Duration, factor float64, limit time.Duration) time.Duration {
	next := time.Duration(math.Round(float64(d) * factor))
	if next > limit || next < 0 {
		return limit
	}
	return next
}

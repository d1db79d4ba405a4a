package progress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreLifecycle(t *testing.T) {
	s := NewStore(time.Hour)

	id := s.Begin()
	assert.Contains(t, id, "run_")

	run, ok := s.Get(id)
	require.True(t, ok)
	assert.Equal(t, StatusPending, run.Status)
	assert.False(t, run.Done())

	s.Update(id, func(r *Run) {
		r.Status = StatusRunning
		r.Stage = "scraping"
		r.Percent = 10
	})
	run, _ = s.Get(id)
	assert.Equal(t, StatusRunning, run.Status)
	assert.Equal(t, "scraping", run.Stage)

	s.Finish(id, StatusCompleted, map[string]int{"jobs": 3}, "")
	run, _ = s.Get(id)
	assert.True(t, run.Done())
	assert.Equal(t, 100, run.Percent)
	assert.Equal(t, "completed", run.Stage)
	assert.False(t, run.EndedAt.IsZero())
}

func TestStoreFailedRunKeepsError(t *testing.T) {
	s := NewStore(time.Hour)
	id := s.Begin()
	s.Finish(id, StatusFailed, nil, "no search terms provided")

	run, ok := s.Get(id)
	require.True(t, ok)
	assert.Equal(t, StatusFailed, run.Status)
	assert.Equal(t, "no search terms provided", run.Error)
	assert.NotEqual(t, 100, run.Percent)
}

func TestStoreUnknownID(t *testing.T) {
	s := NewStore(time.Hour)
	_, ok := s.Get("run_nope")
	assert.False(t, ok)
	s.Update("run_nope", func(r *Run) { r.Percent = 50 }) // no-op
	s.Finish("run_nope", StatusCompleted, nil, "")        // no-op
}

func TestStoreEvictsFinishedRunsPastTTL(t *testing.T) {
	now := time.Now()
	s := NewStore(time.Hour)
	s.now = func() time.Time { return now }

	done := s.Begin()
	s.Finish(done, StatusCompleted, nil, "")
	inflight := s.Begin()

	now = now.Add(2 * time.Hour)

	_, ok := s.Get(done)
	assert.False(t, ok, "finished run past TTL is gone")
	_, ok = s.Get(inflight)
	assert.True(t, ok, "in-flight runs are never evicted")
	assert.Equal(t, 1, s.Len())
}

func TestStoreIDsAreUnique(t *testing.T) {
	s := NewStore(time.Hour)
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := s.Begin()
		assert.False(t, seen[id])
		seen[id] = true
	}
}

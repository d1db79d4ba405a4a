// Package progress tracks the state of scrape runs for status polling.
// It replaces ambient process-global state with an injectable store that
// evicts finished runs by age.
package progress

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

type Run struct {
	ID        string    `json:"id"`
	Status    Status    `json:"status"`
	Stage     string    `json:"stage"`
	Percent   int       `json:"percent"`
	Result    any       `json:"results,omitempty"`
	Error     string    `json:"error,omitempty"`
	StartedAt time.Time `json:"started_at"`
	EndedAt   time.Time `json:"ended_at,omitzero"`
}

func (r Run) Done() bool {
	return r.Status == StatusCompleted || r.Status == StatusFailed
}

// Store holds recent runs. Finished runs are evicted once they are older
// than the TTL; in-flight runs are never evicted.
type Store struct {
	mu   sync.Mutex
	runs map[string]*Run
	ttl  time.Duration

	now func() time.Time // test hook
}

const DefaultTTL = time.Hour

func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		runs: make(map[string]*Run),
		ttl:  ttl,
		now:  time.Now,
	}
}

// Begin registers a new pending run and returns its id.
func (s *Store) Begin() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evictLocked()

	id := "run_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	s.runs[id] = &Run{
		ID:        id,
		Status:    StatusPending,
		Stage:     "pending",
		StartedAt: s.now().UTC(),
	}
	return id
}

// Update applies fn to the run under the store lock. Unknown ids are a
// no-op (the run may have been evicted already).
func (s *Store) Update(id string, fn func(*Run)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if run, ok := s.runs[id]; ok {
		fn(run)
	}
}

// Finish marks a run terminal and stamps its end time.
func (s *Store) Finish(id string, status Status, result any, errMsg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	run, ok := s.runs[id]
	if !ok {
		return
	}
	run.Status = status
	run.Result = result
	run.Error = errMsg
	run.EndedAt = s.now().UTC()
	if status == StatusCompleted {
		run.Stage = "completed"
		run.Percent = 100
	}
}

// Get returns a copy of the run.
func (s *Store) Get(id string) (Run, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evictLocked()
	run, ok := s.runs[id]
	if !ok {
		return Run{}, false
	}
	return *run, true
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.runs)
}

func (s *Store) evictLocked() {
	cutoff := s.now().Add(-s.ttl)
	for id, run := range s.runs {
		if !run.EndedAt.IsZero() && run.EndedAt.Before(cutoff) {
			delete(s.runs, id)
		}
	}
}

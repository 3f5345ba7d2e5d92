package jobs

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"deckgen/internal/domain"
)

var (
	// ErrNotFound is returned when a job id is unknown.
	ErrNotFound = errors.New("job not found")
	// ErrTerminal is returned when a second terminal transition is attempted.
	ErrTerminal = errors.New("job already in a terminal state")
)

// Store tracks generation jobs. Implementations must be safe for
// concurrent use: every accepted request gets its own background
// goroutine writing the outcome for its job id.
type Store interface {
	// Create registers a new job in the processing state and returns it.
	Create() domain.Job
	// Get returns a snapshot of the job, or false when the id is unknown.
	Get(id string) (domain.Job, bool)
	// Complete marks the job done and attaches the result.
	Complete(id string, result *domain.Presentation) error
	// Fail marks the job failed. Failed jobs carry no result.
	Fail(id string) error
}

// MemoryStore is the in-process Store. Jobs are never evicted; the map
// grows for the lifetime of the process.
type MemoryStore struct {
	mu   sync.RWMutex
	jobs map[string]*domain.Job
}

// NewMemoryStore returns an empty in-memory job store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{jobs: make(map[string]*domain.Job)}
}

func (s *MemoryStore) Create() domain.Job {
	now := time.Now().UTC()
	job := &domain.Job{
		ID:        uuid.NewString(),
		Status:    domain.JobStatusProcessing,
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.mu.Lock()
	s.jobs[job.ID] = job
	s.mu.Unlock()

	return *job
}

func (s *MemoryStore) Get(id string) (domain.Job, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	job, ok := s.jobs[id]
	if !ok {
		return domain.Job{}, false
	}
	return *job, true
}

func (s *MemoryStore) Complete(id string, result *domain.Presentation) error {
	return s.transition(id, domain.JobStatusDone, result)
}

func (s *MemoryStore) Fail(id string) error {
	return s.transition(id, domain.JobStatusFailed, nil)
}

func (s *MemoryStore) transition(id string, status domain.JobStatus, result *domain.Presentation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[id]
	if !ok {
		return ErrNotFound
	}
	if job.Status.Terminal() {
		return ErrTerminal
	}
	job.Status = status
	job.Result = result
	job.UpdatedAt = time.Now().UTC()
	return nil
}

var _ Store = (*MemoryStore)(nil)

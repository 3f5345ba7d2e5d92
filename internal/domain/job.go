package domain

import "time"

// JobStatus enumerates job lifecycle states.
type JobStatus string

const (
	JobStatusProcessing JobStatus = "processing"
	JobStatusDone       JobStatus = "done"
	JobStatusFailed     JobStatus = "failed"
)

// Terminal reports whether the status permits no further transitions.
func (s JobStatus) Terminal() bool {
	return s == JobStatusDone || s == JobStatusFailed
}

// Job tracks one asynchronous presentation-generation request. A job is
// created as processing and transitions exactly once to done (with a
// result) or failed (without one).
type Job struct {
	ID        string
	Status    JobStatus
	Result    *Presentation
	CreatedAt time.Time
	UpdatedAt time.Time
}

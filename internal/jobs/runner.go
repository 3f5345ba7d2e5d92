package jobs

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/semaphore"

	"deckgen/internal/domain"
)

// Task produces the presentation for one job. It must honor ctx so a
// stuck provider call cannot outlive the job deadline.
type Task func(ctx context.Context) (*domain.Presentation, error)

// Runner executes generation tasks in the background and writes exactly
// one terminal status per job into the Store. In-flight work is bounded
// by a weighted semaphore and each task runs under a deadline; a task
// that cannot acquire a slot before its deadline fails the job instead
// of queueing forever.
type Runner struct {
	store   Store
	sem     *semaphore.Weighted
	timeout time.Duration
	logger  zerolog.Logger
	wg      sync.WaitGroup
}

// NewRunner builds a Runner allowing up to maxConcurrent simultaneous
// tasks, each limited to the given timeout.
func NewRunner(store Store, maxConcurrent int, timeout time.Duration, logger zerolog.Logger) *Runner {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &Runner{
		store:   store,
		sem:     semaphore.NewWeighted(int64(maxConcurrent)),
		timeout: timeout,
		logger:  logger,
	}
}

// Submit schedules the task for the given job id and returns immediately.
// The HTTP response does not wait for the outcome; clients poll for it.
func (r *Runner) Submit(jobID string, task Task) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		r.run(jobID, task)
	}()
}

// Wait blocks until all submitted tasks have finished. Used during
// shutdown and in tests.
func (r *Runner) Wait() {
	r.wg.Wait()
}

func (r *Runner) run(jobID string, task Task) {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	if err := r.sem.Acquire(ctx, 1); err != nil {
		r.logger.Error().Err(err).Str("job_id", jobID).Msg("job never acquired a slot")
		r.fail(jobID)
		return
	}
	defer r.sem.Release(1)

	start := time.Now()
	result, err := r.recoverTask(ctx, jobID, task)
	if err != nil || result == nil {
		r.fail(jobID)
		return
	}

	if err := r.store.Complete(jobID, result); err != nil {
		r.logger.Error().Err(err).Str("job_id", jobID).Msg("could not record job result")
		return
	}
	r.logger.Info().
		Str("job_id", jobID).
		Int("slides", len(result.Slides)).
		Dur("took", time.Since(start)).
		Msg("presentation generated")
}

// recoverTask shields the store from panicking tasks: a panic is logged
// and reported as an error so the job still reaches a terminal state.
func (r *Runner) recoverTask(ctx context.Context, jobID string, task Task) (result *domain.Presentation, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error().Str("job_id", jobID).Interface("panic", rec).Msg("generation panicked")
			result = nil
			err = fmt.Errorf("generation panicked: %v", rec)
		}
	}()
	result, err = task(ctx)
	if err != nil {
		r.logger.Error().Err(err).Str("job_id", jobID).Msg("generation failed")
	}
	return result, err
}

func (r *Runner) fail(jobID string) {
	if err := r.store.Fail(jobID); err != nil {
		r.logger.Error().Err(err).Str("job_id", jobID).Msg("could not record job failure")
	}
}

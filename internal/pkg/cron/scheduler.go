package cron

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// failureEscalation is how many consecutive failures a job tolerates before
// its failure log escalates from Error to Warn-with-alert semantics.
const failureEscalation = 3

// Job is a background payroll task run on a fixed interval.
type Job struct {
	Name     string
	Interval time.Duration
	Fn       func(ctx context.Context) error

	failures int
}

// Scheduler runs the payroll background jobs. Each job gets its own goroutine
// and ticker; Stop cancels all of them and waits for in-flight runs to finish.
type Scheduler struct {
	jobs   []*Job
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	mu     sync.Mutex
}

func NewScheduler() *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		ctx:    ctx,
		cancel: cancel,
	}
}

func (s *Scheduler) AddJob(name string, interval time.Duration, fn func(ctx context.Context) error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.jobs = append(s.jobs, &Job{
		Name:     name,
		Interval: interval,
		Fn:       fn,
	})
	slog.Info("Cron job registered", "name", name, "interval", interval)
}

// Start launches every registered job. Each job runs immediately once, then on
// its interval until Stop is called.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, job := range s.jobs {
		s.wg.Add(1)
		go s.runJob(job)
	}

	slog.Info("Cron scheduler started", "job_count", len(s.jobs))
}

// Stop cancels all jobs and blocks until their goroutines return.
func (s *Scheduler) Stop() {
	slog.Info("Stopping cron scheduler...")
	s.cancel()
	s.wg.Wait()
	slog.Info("Cron scheduler stopped")
}

func (s *Scheduler) runJob(job *Job) {
	defer s.wg.Done()

	ticker := time.NewTicker(job.Interval)
	defer ticker.Stop()

	s.executeJob(s.ctx, job)

	for {
		select {
		case <-s.ctx.Done():
			slog.Info("Cron job stopping", "name", job.Name)
			return
		case <-ticker.C:
			s.executeJob(s.ctx, job)
		}
	}
}

// executeJob runs one iteration of a job and tracks consecutive failures so a
// persistently broken job stands out from a one-off hiccup in the logs.
func (s *Scheduler) executeJob(ctx context.Context, job *Job) error {
	start := time.Now()
	logger := slog.With("name", job.Name)
	logger.Debug("Cron job starting")

	err := job.Fn(ctx)
	if err == nil {
		if job.failures >= failureEscalation {
			logger.Info("Cron job recovered", "after_failures", job.failures)
		}
		job.failures = 0
		logger.Debug("Cron job completed", "duration", time.Since(start))
		return nil
	}

	job.failures++
	if job.failures >= failureEscalation {
		logger.Error("Cron job failing repeatedly",
			"error", err, "consecutive_failures", job.failures, "duration", time.Since(start))
	} else {
		logger.Error("Cron job failed", "error", err, "duration", time.Since(start))
	}
	return fmt.Errorf("job %s: %w", job.Name, err)
}

// RunOnce executes every registered job a single time in registration order
// and returns the combined errors. The worker's batch mode uses this to exit
// nonzero when any job fails.
func (s *Scheduler) RunOnce(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var errs []error
	for _, job := range s.jobs {
		if err := s.executeJob(ctx, job); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

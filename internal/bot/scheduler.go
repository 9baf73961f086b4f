package bot

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// TaskFunc is the signature for scheduled tick functions. A returned error
// ends that tick only; the timer keeps running and the next tick is a fresh
// attempt.
type TaskFunc func(ctx context.Context) error

// Scheduler manages the periodic per-session tasks using the gocron
// library. Each registered task runs on its own independent interval;
// gocron executes jobs in separate goroutines, so a slow or hung tick never
// blocks another task.
type Scheduler struct {
	scheduler gocron.Scheduler
	logger    *slog.Logger
	mu        sync.Mutex
	running   bool
}

// NewScheduler creates a new scheduler instance using gocron.
func NewScheduler(logger *slog.Logger) (*Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}

	return &Scheduler{
		scheduler: s,
		logger:    logger.With("component", "scheduler"),
	}, nil
}

// AddTask registers a named periodic task. Task failures are logged here so
// every tick is failure-isolated from its timer.
func (s *Scheduler) AddTask(name string, interval time.Duration, task TaskFunc) error {
	_, err := s.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(
			func(ctx context.Context, name string) {
				if taskErr := task(ctx); taskErr != nil {
					s.logger.Error("Scheduled task failed", "task_name", name, "error", taskErr)
				}
			},
			context.Background(),
			name,
		),
		gocron.WithName(name),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule task %q: %w", name, err)
	}

	s.logger.Info("Scheduled task", "task_name", name, "interval", interval)
	return nil
}

// Start begins ticking all registered tasks.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("scheduler is already running")
	}

	s.scheduler.Start()
	s.running = true
	s.logger.Info("Scheduler started")

	return nil
}

// Stop gracefully stops the scheduler, waiting for running jobs to complete.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		s.logger.Info("Scheduler is not running, nothing to stop.")
		return nil
	}

	s.logger.Debug("Stopping scheduler gracefully (waiting for jobs)...")
	err := s.scheduler.Shutdown()
	if err != nil {
		s.logger.Error("Error during scheduler shutdown", "error", err)
	} else {
		s.logger.Info("Scheduler stopped gracefully.")
	}

	s.running = false
	return err
}

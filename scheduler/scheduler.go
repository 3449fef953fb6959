package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Job is the work run on every tick
type Job func(context.Context) error

// DefaultParser accepts standard five field expressions, an optional seconds
// field and descriptors such as "@every 15m"
var DefaultParser = cron.NewParser(
	cron.SecondOptional |
		cron.Minute |
		cron.Hour |
		cron.Dom |
		cron.Month |
		cron.Dow |
		cron.Descriptor,
)

// Scheduler runs a single named job on a cron expression. A tick that arrives
// while the previous run is still going is skipped.
type Scheduler struct {
	name        string
	cron        *cron.Cron
	expression  string
	job         Job
	logger      zerolog.Logger
	jobTimeout  time.Duration
	started     bool
	startStopMu sync.Mutex
	entryID     cron.EntryID
}

type Option func(*Scheduler)

// WithCron injects a preconfigured cron engine
func WithCron(c *cron.Cron) Option {
	return func(s *Scheduler) {
		if c != nil {
			s.cron = c
		}
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(s *Scheduler) {
		s.logger = logger
	}
}

// WithJobTimeout bounds each run of the job
func WithJobTimeout(timeout time.Duration) Option {
	return func(s *Scheduler) {
		if timeout > 0 {
			s.jobTimeout = timeout
		}
	}
}

func New(name, expression string, job Job, opts ...Option) (*Scheduler, error) {
	if expression == "" {
		return nil, errors.New("cron expression cannot be empty")
	}
	if job == nil {
		return nil, errors.New("job cannot be nil")
	}
	if _, err := DefaultParser.Parse(expression); err != nil {
		return nil, fmt.Errorf("invalid cron expression: %w", err)
	}

	s := &Scheduler{
		name:       name,
		expression: expression,
		job:        job,
		logger:     log.With().Str("component", "scheduler").Str("job", name).Logger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.cron == nil {
		s.cron = cron.New(
			cron.WithParser(DefaultParser),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		)
	}
	return s, nil
}

// Start schedules the job. The scheduler stops when ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) error {
	if s == nil {
		return errors.New("scheduler is nil")
	}

	s.startStopMu.Lock()
	defer s.startStopMu.Unlock()

	if s.started {
		return errors.New("scheduler already started")
	}

	entryID, err := s.cron.AddFunc(s.expression, func() {
		start := time.Now()
		if err := s.Run(ctx); err != nil {
			s.logger.Error().Err(err).Dur("duration", time.Since(start)).Msg("Scheduled job failed")
			return
		}
		s.logger.Debug().Dur("duration", time.Since(start)).Msg("Scheduled job finished")
	})
	if err != nil {
		return fmt.Errorf("schedule job: %w", err)
	}

	s.entryID = entryID
	s.cron.Start()
	s.started = true
	s.logger.Info().Str("schedule", s.expression).Msg("Scheduler started")

	if ctx != nil {
		go func() {
			<-ctx.Done()
			s.Stop()
		}()
	}
	return nil
}

// Stop halts the scheduler and waits for a running job to finish
func (s *Scheduler) Stop() {
	if s == nil {
		return
	}

	s.startStopMu.Lock()
	if !s.started {
		s.startStopMu.Unlock()
		return
	}
	done := s.cron.Stop()
	s.started = false
	s.startStopMu.Unlock()

	<-done.Done()
	s.logger.Info().Msg("Scheduler stopped")
}

// Run executes the job once, now
func (s *Scheduler) Run(ctx context.Context) error {
	if s == nil {
		return errors.New("scheduler is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if s.jobTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.jobTimeout)
		defer cancel()
	}
	return s.job(ctx)
}

// Next reports when the job runs next, zero when not started
func (s *Scheduler) Next() time.Time {
	if s == nil {
		return time.Time{}
	}
	s.startStopMu.Lock()
	defer s.startStopMu.Unlock()
	if !s.started {
		return time.Time{}
	}
	return s.cron.Entry(s.entryID).Next
}

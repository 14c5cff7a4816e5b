package maintenance

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/charlesng35/kurukshetra/internal/cache"
	"github.com/charlesng35/kurukshetra/internal/monitoring"
	"github.com/charlesng35/kurukshetra/pkg/logger"
)

// Job names as reported to the tracker and metrics.
const (
	JobSportStatus = "sport_status"
	JobEventStatus = "event_status"
	JobCachePurge  = "cache_purge"
)

const (
	defaultStatusSpec = "@every 15m"
	defaultCacheSpec  = "@hourly"
)

// StatusRefresher moves dated records through their lifecycle statuses and
// reports how many changed.
type StatusRefresher interface {
	RefreshStatuses(ctx context.Context) (int, error)
}

// Scheduler runs the periodic maintenance jobs: sport and event status
// refresh and purging of expired cache rows.
type Scheduler struct {
	sports  StatusRefresher
	events  StatusRefresher
	purger  cache.Purger
	tracker *monitoring.JobTracker
	cron    *cron.Cron
	log     *zap.Logger

	statusSchedule string
	cacheSchedule  string
}

// Option customises the Scheduler.
type Option func(*Scheduler)

// WithCron injects a preconfigured cron instance, primarily for testing.
func WithCron(c *cron.Cron) Option {
	return func(s *Scheduler) {
		if c != nil {
			s.cron = c
		}
	}
}

// WithTracker records every run in tracker.
func WithTracker(tracker *monitoring.JobTracker) Option {
	return func(s *Scheduler) {
		s.tracker = tracker
	}
}

// WithPurger enables the cache purge job. Stores that expire keys on their
// own do not need it.
func WithPurger(purger cache.Purger) Option {
	return func(s *Scheduler) {
		s.purger = purger
	}
}

// WithStatusSchedule overrides the cron expression for status refresh.
func WithStatusSchedule(spec string) Option {
	return func(s *Scheduler) {
		if spec != "" {
			s.statusSchedule = spec
		}
	}
}

// WithCacheSchedule overrides the cron expression for cache purging.
func WithCacheSchedule(spec string) Option {
	return func(s *Scheduler) {
		if spec != "" {
			s.cacheSchedule = spec
		}
	}
}

// NewScheduler constructs a Scheduler. A nil refresher skips its job.
func NewScheduler(sports, events StatusRefresher, opts ...Option) *Scheduler {
	s := &Scheduler{
		sports:         sports,
		events:         events,
		statusSchedule: defaultStatusSpec,
		cacheSchedule:  defaultCacheSpec,
		log:            logger.WithModule("maintenance"),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.cron == nil {
		s.cron = cron.New(cron.WithLogger(cron.DiscardLogger))
	}
	if s.tracker != nil {
		for _, job := range s.jobs() {
			s.tracker.Register(job.name)
		}
	}

	return s
}

type job struct {
	name     string
	schedule string
	run      func(ctx context.Context) (int64, error)
}

func (s *Scheduler) jobs() []job {
	var jobs []job
	if s.sports != nil {
		jobs = append(jobs, job{name: JobSportStatus, schedule: s.statusSchedule, run: refresh(s.sports)})
	}
	if s.events != nil {
		jobs = append(jobs, job{name: JobEventStatus, schedule: s.statusSchedule, run: refresh(s.events)})
	}
	if s.purger != nil {
		jobs = append(jobs, job{name: JobCachePurge, schedule: s.cacheSchedule, run: s.purger.PurgeExpired})
	}
	return jobs
}

func refresh(r StatusRefresher) func(ctx context.Context) (int64, error) {
	return func(ctx context.Context) (int64, error) {
		n, err := r.RefreshStatuses(ctx)
		return int64(n), err
	}
}

// Start registers the jobs with the cron scheduler and launches it.
func (s *Scheduler) Start() error {
	jobs := s.jobs()
	if len(jobs) == 0 {
		return nil
	}

	for _, j := range jobs {
		j := j
		if _, err := s.cron.AddFunc(j.schedule, func() {
			if err := s.execute(context.Background(), j); err != nil {
				s.log.Warn("maintenance job failed", zap.String("job", j.name), zap.Error(err))
			}
		}); err != nil {
			return fmt.Errorf("schedule %s: %w", j.name, err)
		}
	}

	s.cron.Start()
	return nil
}

// Stop halts the underlying scheduler, waiting for any running jobs to complete.
func (s *Scheduler) Stop() context.Context {
	if s.cron == nil {
		return context.Background()
	}
	return s.cron.Stop()
}

// RunOnce executes every configured job sequentially. Used at start-up so
// statuses are current before the first tick, and in tests.
func (s *Scheduler) RunOnce(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	var errs error
	for _, j := range s.jobs() {
		errs = multierr.Append(errs, s.execute(ctx, j))
	}
	return errs
}

func (s *Scheduler) execute(ctx context.Context, j job) error {
	start := time.Now()
	affected, err := j.run(ctx)
	elapsed := time.Since(start)

	if s.tracker != nil {
		s.tracker.Record(j.name, err, elapsed)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", j.name, err)
	}
	if affected > 0 {
		s.log.Info("maintenance job completed",
			zap.String("job", j.name),
			zap.Int64("affected", affected),
			zap.Duration("duration", elapsed),
		)
	}
	return nil
}

package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/terrazza/bizplanner/internal/domain/models"
)

const jobTimeout = 2 * time.Minute

// DraftSource yields the draft and its dashboard at run time.
type DraftSource interface {
	DraftWithDashboard(months int) (models.BusinessConfiguration, models.Dashboard)
}

// Comparer ranks saved scenarios against the draft.
type Comparer interface {
	Compare(ctx context.Context, draft *models.BusinessConfiguration) (models.Comparison, error)
}

// Publisher exports and announces the daily figures.
type Publisher interface {
	ExportEnabled() bool
	DigestEnabled() bool
	ExportProjection(ctx context.Context, dashboard models.Dashboard, comparison models.Comparison) error
	BuildDigest(dashboard models.Dashboard, comparison models.Comparison) string
	SendDigest(ctx context.Context, text string) error
}

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron      *cron.Cron
	schedule  string
	draft     DraftSource
	comparer  Comparer
	publisher Publisher
	logger    *zap.Logger
}

// NewScheduler creates a scheduler that runs the daily digest on schedule in loc.
func NewScheduler(schedule string, loc *time.Location, draft DraftSource, comparer Comparer, publisher Publisher, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.Local
	}

	return &Scheduler{
		cron:      cron.New(cron.WithLocation(loc)),
		schedule:  schedule,
		draft:     draft,
		comparer:  comparer,
		publisher: publisher,
		logger:    logger.Named("scheduler"),
	}
}

// Start registers the digest job and starts the cron loop.
// Nothing is scheduled when the publisher has no export or digest target.
func (s *Scheduler) Start() error {
	if !s.publisher.ExportEnabled() && !s.publisher.DigestEnabled() {
		s.logger.Info("scheduler idle: no export or digest target configured")
		return nil
	}

	if _, err := s.cron.AddFunc(s.schedule, s.runDaily); err != nil {
		return fmt.Errorf("schedule daily digest %q: %w", s.schedule, err)
	}

	s.logger.Info("starting scheduler", zap.String("schedule", s.schedule))
	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) runDaily() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	if err := s.RunOnce(ctx); err != nil {
		s.logger.Error("daily digest failed", zap.Error(err))
	}
}

// RunOnce exports the draft projection and sends the digest, skipping
// whichever target is not configured.
func (s *Scheduler) RunOnce(ctx context.Context) error {
	draft, dashboard := s.draft.DraftWithDashboard(-1)

	comparison, err := s.comparer.Compare(ctx, &draft)
	if err != nil {
		return fmt.Errorf("compare scenarios: %w", err)
	}

	var errs []error
	if s.publisher.ExportEnabled() {
		if err := s.publisher.ExportProjection(ctx, dashboard, comparison); err != nil {
			errs = append(errs, err)
		} else {
			s.logger.Info("daily export completed")
		}
	}

	if s.publisher.DigestEnabled() {
		text := s.publisher.BuildDigest(dashboard, comparison)
		if err := s.publisher.SendDigest(ctx, text); err != nil {
			errs = append(errs, err)
		} else {
			s.logger.Info("daily digest sent")
		}
	}

	return errors.Join(errs...)
}

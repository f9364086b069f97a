package pipeline

import (
	"context"
	"log/slog"
	"time"

	"f1calendar/model"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
)

// Scheduler re-runs a Generator on a cron schedule. A failed run is logged and the
// previous calendar file stays in place.
type Scheduler struct {
	cron      *cron.Cron
	generator *Generator
	now       func() time.Time
	onSuccess func(model.Schedule)

	// ctx is cancelled by Stop so an in-flight fetch does not hold up shutdown.
	ctx    context.Context
	cancel context.CancelFunc
}

// NewScheduler parses spec (standard cron or descriptors such as "@every 8h").
// onSuccess may be nil.
func NewScheduler(spec string, g *Generator, now func() time.Time, onSuccess func(model.Schedule)) (*Scheduler, error) {
	if now == nil {
		now = time.Now
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := &Scheduler{
		cron:      cron.New(),
		generator: g,
		now:       now,
		onSuccess: onSuccess,
		ctx:       ctx,
		cancel:    cancel,
	}
	if _, err := s.cron.AddFunc(spec, s.regenerate); err != nil {
		cancel()
		return nil, errors.Wrapf(err, "invalid regenerate schedule %q", spec)
	}
	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop cancels a running regeneration and waits for it to return or ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop().Done()
	s.cancel()
	select {
	case <-done:
	case <-ctx.Done():
	}
	slog.Info("Calendar scheduler stopped")
}

func (s *Scheduler) regenerate() {
	slog.Info("Regenerating calendar")
	schedule, err := s.generator.Run(s.ctx, s.now())
	if err != nil {
		slog.Error("Scheduled calendar regeneration failed, keeping previous file", "error", err)
		return
	}
	if s.onSuccess != nil {
		s.onSuccess(schedule)
	}
}

package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// DefaultSweepSchedule runs the sweep every ten minutes.
const DefaultSweepSchedule = "0 */10 * * * *"

// SessionSweeper removes conversation sessions idle for longer than olderThan
// and reports how many it removed.
type SessionSweeper interface {
	Sweep(ctx context.Context, olderThan time.Duration) (int, error)
}

// SessionSweepJob drops abandoned conversations so half-filled forms do not
// pile up in a store without native expiry.
type SessionSweepJob struct {
	sweeper  SessionSweeper
	schedule string
	ttl      time.Duration
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewSessionSweepJob creates the job. schedule is a six field cron expression
// (seconds first).
func NewSessionSweepJob(sweeper SessionSweeper, schedule string, ttl time.Duration, logger *slog.Logger) *SessionSweepJob {
	if schedule == "" {
		schedule = DefaultSweepSchedule
	}
	return &SessionSweepJob{
		sweeper:  sweeper,
		schedule: schedule,
		ttl:      ttl,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "session_sweep_job"),
	}
}

func (j *SessionSweepJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.Run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Session sweep job started",
		"schedule", j.schedule, "ttl", j.ttl.String())
	return nil
}

// Run performs one sweep. The scheduler calls it; tests call it directly.
func (j *SessionSweepJob) Run() {
	ctx := context.Background()

	removed, err := j.sweeper.Sweep(ctx, j.ttl)
	if err != nil {
		j.logger.ErrorContext(ctx, "Session sweep failed", "error", err)
		return
	}
	if removed > 0 {
		j.logger.InfoContext(ctx, "Idle sessions removed", "count", removed)
	}
}

// Stop waits for a running sweep to finish.
func (j *SessionSweepJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Session sweep job stopped")
}

package jobs

import (
	"fmt"
	"log/slog"
	"time"
)

// Job is a scheduled background task.
type Job interface {
	Start() error
	Stop()
}

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	jobs []Job
}

// NewJobManager wires the session sweep when a sweeper is given. Stores with
// native expiry (Redis) pass nil and no job is scheduled.
func NewJobManager(
	sweeper SessionSweeper,
	sweepSchedule string,
	sessionTTL time.Duration,
	logger *slog.Logger,
) *JobManager {
	jm := &JobManager{}
	if sweeper != nil {
		jm.jobs = append(jm.jobs, NewSessionSweepJob(sweeper, sweepSchedule, sessionTTL, logger))
	}
	return jm
}

// StartAll starts every job. If one fails the ones already started are stopped.
func (jm *JobManager) StartAll() error {
	for i, job := range jm.jobs {
		if err := job.Start(); err != nil {
			for _, started := range jm.jobs[:i] {
				started.Stop()
			}
			return fmt.Errorf("failed to start job %T: %w", job, err)
		}
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	for _, job := range jm.jobs {
		job.Stop()
	}
}

// Len reports how many jobs are scheduled.
func (jm *JobManager) Len() int {
	return len(jm.jobs)
}

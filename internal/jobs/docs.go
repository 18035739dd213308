// Package jobs provides scheduled background tasks for the freight bot.
//
// Jobs are built on github.com/robfig/cron/v3 with second precision.
//
// # Available Jobs
//
// SessionSweepJob removes conversation sessions that were not touched for
// longer than SESSION_TTL. It is only scheduled for the in-memory session
// store; the Redis store expires keys on its own.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(memoryStore, cfg.SessionSweepSchedule, cfg.SessionTTL, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed sweep is logged and retried on the next tick. Failed job starts
// stop any already running jobs.
package jobs

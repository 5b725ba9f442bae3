// Package jobs provides scheduled background tasks, implemented as
// cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. HeartbeatJob - Runs every 30 seconds to ping live connections and evict
// dead ones from the connection registry.
//
// 2. NotificationCleanupJob - Runs hourly to delete expired notification
// records from the durable store.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(registry, store, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
package jobs

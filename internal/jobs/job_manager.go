package jobs

import (
	"fmt"
	"log/slog"

	"laundryops/internal/core/ports"
	"laundryops/internal/realtime"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	heartbeatJob           *HeartbeatJob
	notificationCleanupJob *NotificationCleanupJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	registry *realtime.Registry,
	store ports.NotificationStore,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		heartbeatJob:           NewHeartbeatJob(registry, logger),
		notificationCleanupJob: NewNotificationCleanupJob(store, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.heartbeatJob.Start(); err != nil {
		return fmt.Errorf("failed to start heartbeat job: %w", err)
	}

	if err := jm.notificationCleanupJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.heartbeatJob.Stop()
		return fmt.Errorf("failed to start notification cleanup job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.notificationCleanupJob.Stop()
	jm.heartbeatJob.Stop()
}

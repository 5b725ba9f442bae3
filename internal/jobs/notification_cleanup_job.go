package jobs

import (
	"context"
	"log/slog"
	"time"

	"laundryops/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// NotificationCleanupJob removes expired notification records so the
// durable store does not grow without bound.
type NotificationCleanupJob struct {
	store  ports.NotificationStore
	cron   *cron.Cron
	logger *slog.Logger
}

// NewNotificationCleanupJob creates the cleanup job for the notification
// store.
func NewNotificationCleanupJob(store ports.NotificationStore, logger *slog.Logger) *NotificationCleanupJob {
	return &NotificationCleanupJob{
		store:  store,
		cron:   cron.New(cron.WithSeconds()),
		logger: logger.With("component", "notification_cleanup_job"),
	}
}

// Start begins the cleanup job to run at the top of every hour.
func (j *NotificationCleanupJob) Start() error {
	_, err := j.cron.AddFunc("0 0 * * * *", func() {
		ctx := context.Background()

		removed, err := j.store.DeleteExpired(ctx, time.Now().UTC())
		if err != nil {
			j.logger.ErrorContext(ctx, "Notification cleanup failed", "error", err)
			return
		}
		if removed > 0 {
			j.logger.InfoContext(ctx, "Expired notifications removed", "count", removed)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Notification cleanup job started (running hourly)")
	return nil
}

// Stop stops the cleanup job.
func (j *NotificationCleanupJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Notification cleanup job stopped")
}

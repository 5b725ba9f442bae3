package jobs

import (
	"context"
	"log/slog"
	"time"

	"laundryops/internal/realtime"

	"github.com/robfig/cron/v3"
)

// HeartbeatJob pings every live connection on a fixed cadence. Connections
// that fail the write are evicted, which is how silently dropped clients
// leave the registry.
type HeartbeatJob struct {
	registry *realtime.Registry
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewHeartbeatJob creates the heartbeat job for the connection registry.
func NewHeartbeatJob(registry *realtime.Registry, logger *slog.Logger) *HeartbeatJob {
	return &HeartbeatJob{
		registry: registry,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "heartbeat_job"),
	}
}

// Start begins the heartbeat job to run every 30 seconds.
func (j *HeartbeatJob) Start() error {
	_, err := j.cron.AddFunc("*/30 * * * * *", func() {
		live := j.registry.Heartbeat(time.Now().UTC())
		j.logger.DebugContext(context.Background(), "Heartbeat sent", "liveConnections", live)
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Heartbeat job started (running every 30 seconds)")
	return nil
}

// Stop stops the heartbeat job.
func (j *HeartbeatJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Heartbeat job stopped")
}

package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/coderslab/hr-console/internal/stats"
)

// StatsWarmupJob keeps the dashboard aggregate cache warm so logins after a
// deploy or cache flush never wait on cold queries.
type StatsWarmupJob struct {
	Stats   *stats.Service
	Logger  *slog.Logger
	Metrics *Metrics
	clock   func() time.Time
}

// NewStatsWarmupJob wires dependencies for the warmup handler.
func NewStatsWarmupJob(statsSvc *stats.Service, logger *slog.Logger, metrics *Metrics) *StatsWarmupJob {
	return &StatsWarmupJob{
		Stats:   statsSvc,
		Logger:  logger,
		Metrics: metrics,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Handle processes stats warmup tasks.
func (j *StatsWarmupJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Stats == nil {
		return errors.New("stats warmup: handler not configured")
	}
	var payload StatsWarmupPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	tracker := j.Metrics.Track(TaskStatsWarmup)
	start := j.clock()
	if payload.Invalidate {
		if err := j.Stats.Invalidate(ctx); err != nil {
			j.Logger.Warn("stats warmup invalidate failed", slog.Any("error", err))
		}
	}
	if err := j.Stats.Warmup(ctx); err != nil {
		j.Logger.Error("stats warmup failed", slog.Any("error", err))
		return tracker.End(err)
	}
	_ = tracker.End(nil)
	j.Logger.Info("stats warmup complete",
		slog.Duration("took", j.clock().Sub(start)),
		slog.Bool("invalidated", payload.Invalidate))
	return nil
}

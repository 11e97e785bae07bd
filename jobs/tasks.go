package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskStatsWarmup recomputes the dashboard aggregate cache.
	TaskStatsWarmup = "stats:warmup"
)

// StatsWarmupPayload parameterizes a warmup run.
type StatsWarmupPayload struct {
	// Invalidate drops the cached aggregates before recomputing them.
	Invalidate bool `json:"invalidate"`
}

// NewStatsWarmupTask constructs an Asynq task.
func NewStatsWarmupTask(payload StatsWarmupPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskStatsWarmup, data), nil
}

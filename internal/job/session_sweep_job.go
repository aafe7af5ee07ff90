package job

import (
	"go.uber.org/zap"

	"kanban-board-api/internal/metrics"
)

// Sweeper drops expired sessions. Stores with native expiry (redis) do
// not need one.
type Sweeper interface {
	Sweep() int
}

// SessionSweepJob evicts expired sessions from an in-process store
type SessionSweepJob struct {
	sweeper Sweeper
	metrics *metrics.Metrics
	logger  *zap.Logger
}

func NewSessionSweepJob(sweeper Sweeper, m *metrics.Metrics, logger *zap.Logger) *SessionSweepJob {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionSweepJob{sweeper: sweeper, metrics: m, logger: logger}
}

func (j *SessionSweepJob) Run() {
	removed := j.sweeper.Sweep()
	j.metrics.AddSessionsSwept(removed)
	if removed > 0 {
		j.logger.Info("Expired sessions swept", zap.Int("removed", removed))
	}
}

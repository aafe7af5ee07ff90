package job

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"kanban-board-api/internal/metrics"
)

// StagingCleanupJob removes staged upload files left behind by requests
// that died between staging and cleanup.
type StagingCleanupJob struct {
	dir     string
	maxAge  time.Duration
	metrics *metrics.Metrics
	logger  *zap.Logger

	now    func() time.Time
	remove func(name string) error
}

// NewStagingCleanupJob creates a new StagingCleanupJob instance
func NewStagingCleanupJob(dir string, maxAge time.Duration, m *metrics.Metrics, logger *zap.Logger) *StagingCleanupJob {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StagingCleanupJob{
		dir:     dir,
		maxAge:  maxAge,
		metrics: m,
		logger:  logger,
		now:     time.Now,
		remove:  os.Remove,
	}
}

// Run executes the cleanup job.
// Only staged files (<uuid>_<name>) modified more than maxAge ago are
// removed. Anything else in the directory is left alone.
func (j *StagingCleanupJob) Run() {
	entries, err := os.ReadDir(j.dir)
	if err != nil {
		if os.IsNotExist(err) {
			j.logger.Debug("Staging directory does not exist, nothing to clean", zap.String("dir", j.dir))
			return
		}
		j.logger.Error("Failed to read staging directory",
			zap.String("dir", j.dir),
			zap.Error(err),
		)
		return
	}

	cutoff := j.now().Add(-j.maxAge)
	removed := 0
	failed := 0

	for _, entry := range entries {
		if !entry.Type().IsRegular() || !isStagedName(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			// removed concurrently
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}

		name := filepath.Join(j.dir, entry.Name())
		if err := j.remove(name); err != nil && !os.IsNotExist(err) {
			j.logger.Warn("Failed to remove staged file",
				zap.String("file", name),
				zap.Error(err),
			)
			failed++
			continue
		}
		removed++
	}

	j.metrics.AddStagedFilesRemoved(removed)

	if removed == 0 && failed == 0 {
		j.logger.Debug("No stale staged files found")
		return
	}
	j.logger.Info("Staging cleanup completed",
		zap.Int("removed", removed),
		zap.Int("failed", failed),
	)
}

// isStagedName reports whether name has the form the upload service
// stages files under.
func isStagedName(name string) bool {
	prefix, rest, ok := strings.Cut(name, "_")
	if !ok || rest == "" || len(prefix) != 36 {
		return false
	}
	_, err := uuid.Parse(prefix)
	return err == nil
}

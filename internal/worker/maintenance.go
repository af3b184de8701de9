package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/kingrain94/waapify-relay/internal/api/dto"
	"github.com/kingrain94/waapify-relay/internal/repository"
	"github.com/kingrain94/waapify-relay/pkg/logger"
)

type SnapshotWriter interface {
	Snapshot(ctx context.Context) (*dto.BackupResponse, error)
}

// BackupWorker writes a credential snapshot to object storage on a schedule.
type BackupWorker struct {
	*ticker
}

func NewBackupWorker(backups SnapshotWriter, logger *logger.Logger, interval time.Duration) *BackupWorker {
	job := func(ctx context.Context) error {
		backup, err := backups.Snapshot(ctx)
		if err != nil {
			return fmt.Errorf("failed to write snapshot: %w", err)
		}
		logger.Infof("Snapshot %s written (%d installations)", backup.Key, backup.Installations)
		return nil
	}
	return &BackupWorker{ticker: newTicker("Backup", interval, job, logger)}
}

// CleanupWorker removes rate limit counters no request touched within maxIdle.
type CleanupWorker struct {
	*ticker
}

func NewCleanupWorker(store repository.RateLimitStore, logger *logger.Logger, interval, maxIdle time.Duration) *CleanupWorker {
	job := func(ctx context.Context) error {
		before := time.Now().Add(-maxIdle)
		deleted, err := store.DeleteIdleBefore(ctx, before)
		if err != nil {
			return fmt.Errorf("failed to delete idle rate limit counters: %w", err)
		}
		logger.Infof("Deleted %d rate limit counters idle since %s", deleted, before.Format(time.RFC3339))
		return nil
	}
	return &CleanupWorker{ticker: newTicker("Cleanup", interval, job, logger)}
}

package task

import (
	"context"
	"time"

	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"

	"github.com/notehub/note-hub-service/internal/app"
)

// OrphanCleanupTask sweeps rows whose note was deleted before the
// async cascade finished, for example after a crash mid-delete.
type OrphanCleanupTask struct {
	app      *app.App
	interval time.Duration
}

// NewOrphanCleanupTask creates the sweep task. Returns nil when the
// interval is not configured.
func NewOrphanCleanupTask(appContainer *app.App) Task {
	interval := appContainer.Config().GetOrphanCleanupInterval()
	if interval <= 0 {
		return nil
	}
	return &OrphanCleanupTask{app: appContainer, interval: interval}
}

func (t *OrphanCleanupTask) Name() string {
	return "OrphanCleanup"
}

func (t *OrphanCleanupTask) LoopInterval() time.Duration {
	return t.interval
}

func (t *OrphanCleanupTask) IsStartupRun() bool {
	return true
}

func (t *OrphanCleanupTask) Run(ctx context.Context) error {
	sweeps := []struct {
		name string
		fn   func(context.Context) (int64, error)
	}{
		{"tags", t.app.TagRepo.DeleteOrphans},
		{"comments", t.app.CommentRepo.DeleteOrphans},
		{"likes", t.app.LikeRepo.DeleteOrphans},
		{"collection_notes", t.app.CollNoteRepo.DeleteOrphans},
	}

	var firstErr error
	for _, sweep := range sweeps {
		var removed int64

		// Transient lock errors are common on sqlite, retry briefly.
		backoff := retry.WithMaxRetries(3, retry.NewExponential(200*time.Millisecond))
		err := retry.Do(ctx, backoff, func(ctx context.Context) error {
			var err error
			removed, err = sweep.fn(ctx)
			if err != nil {
				return retry.RetryableError(err)
			}
			return nil
		})
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			t.app.Logger().Error("task log",
				zap.String("task", t.Name()),
				zap.String("sweep", sweep.name),
				zap.Error(err))
			continue
		}
		if removed > 0 {
			t.app.Logger().Info("task log",
				zap.String("task", t.Name()),
				zap.String("sweep", sweep.name),
				zap.Int64("removed", removed))
		}
	}
	return firstErr
}

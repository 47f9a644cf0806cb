package task

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/notehub/note-hub-service/internal/app"
)

// CollectionRecountTask trues up the denormalized note counters of
// collections against their membership rows.
type CollectionRecountTask struct {
	app      *app.App
	interval time.Duration
}

// NewCollectionRecountTask creates the recount task. Returns nil when
// the interval is not configured.
func NewCollectionRecountTask(appContainer *app.App) Task {
	interval := appContainer.Config().GetCollectionRecountInterval()
	if interval <= 0 {
		return nil
	}
	return &CollectionRecountTask{app: appContainer, interval: interval}
}

func (t *CollectionRecountTask) Name() string {
	return "CollectionRecount"
}

func (t *CollectionRecountTask) LoopInterval() time.Duration {
	return t.interval
}

func (t *CollectionRecountTask) IsStartupRun() bool {
	return false
}

func (t *CollectionRecountTask) Run(ctx context.Context) error {
	ids, err := t.app.CollRepo.IDs(ctx)
	if err != nil {
		return err
	}

	var fixed int
	for _, id := range ids {
		count, err := t.app.CollNoteRepo.Count(ctx, id)
		if err != nil {
			t.app.Logger().Error("task log",
				zap.String("task", t.Name()),
				zap.Int64("collectionId", id),
				zap.Error(err))
			continue
		}
		if err := t.app.CollRepo.SetNoteCount(ctx, id, count); err != nil {
			t.app.Logger().Error("task log",
				zap.String("task", t.Name()),
				zap.Int64("collectionId", id),
				zap.Error(err))
			continue
		}
		fixed++
	}

	t.app.Logger().Info("task log",
		zap.String("task", t.Name()),
		zap.Int("collections", fixed))
	return nil
}

package task

import (
	"go.uber.org/zap"

	"github.com/notehub/note-hub-service/internal/app"
	"github.com/notehub/note-hub-service/pkg/safe_close"
)

// Manager owns the scheduler and knows which tasks exist.
type Manager struct {
	scheduler *Scheduler
	logger    *zap.Logger
}

// NewManager creates the task manager.
func NewManager(logger *zap.Logger, sc *safe_close.SafeClose) *Manager {
	return &Manager{
		scheduler: NewScheduler(logger, sc),
		logger:    logger,
	}
}

// RegisterTasks builds every task from the container. Factories
// return nil when their interval is disabled in configuration.
func (m *Manager) RegisterTasks(appContainer *app.App) {
	if t := NewOrphanCleanupTask(appContainer); t != nil {
		m.scheduler.AddTask(t)
	} else {
		m.logger.Info("orphan cleanup task is disabled")
	}

	if t := NewCollectionRecountTask(appContainer); t != nil {
		m.scheduler.AddTask(t)
	} else {
		m.logger.Info("collection recount task is disabled")
	}
}

// Start launches all registered tasks.
func (m *Manager) Start() {
	m.scheduler.Start()
}

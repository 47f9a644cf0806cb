package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/notehub/note-hub-service/internal/dao"
	"github.com/notehub/note-hub-service/internal/domain"
	"github.com/notehub/note-hub-service/internal/feed"
	"github.com/notehub/note-hub-service/internal/service"
	pkgapp "github.com/notehub/note-hub-service/pkg/app"
	"github.com/notehub/note-hub-service/pkg/storage"
	"github.com/notehub/note-hub-service/pkg/workerpool"
)

// App is the application container. It owns the repositories, the
// services and the shared infrastructure.
type App struct {
	config *AppConfig
	logger *zap.Logger

	DB  *gorm.DB
	Dao *dao.Dao

	workerPool *workerpool.Pool

	// repositories
	NoteRepo     domain.NoteRepository
	UserRepo     domain.UserRepository
	TagRepo      domain.TagRepository
	CommentRepo  domain.CommentRepository
	LikeRepo     domain.LikeRepository
	CollRepo     domain.CollectionRepository
	CollNoteRepo domain.CollectionNoteRepository

	// services
	NoteService       service.NoteService
	UserService       service.UserService
	ProfileService    service.ProfileService
	SocialService     service.SocialService
	TagService        service.TagService
	CollectionService service.CollectionService
	UploadService     service.UploadService

	TokenManager pkgapp.TokenManager
	FeedHub      *feed.Hub

	StartTime time.Time
}

// NewApp wires the container. cfg, logger and db are required.
func NewApp(cfg *AppConfig, logger *zap.Logger, db *gorm.DB) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if db == nil {
		return nil, fmt.Errorf("database is required")
	}

	a := &App{
		config:    cfg,
		logger:    logger,
		DB:        db,
		StartTime: time.Now(),
	}

	wpConfig := cfg.GetWorkerPoolConfig()
	a.workerPool = workerpool.New(&wpConfig, logger)
	a.FeedHub = feed.NewHub(logger)

	a.Dao = dao.New(db)

	a.TokenManager = pkgapp.NewTokenManager(pkgapp.TokenConfig{
		SecretKey: cfg.Security.AuthTokenKey,
		Expiry:    cfg.GetTokenExpiry(),
	})

	a.NoteRepo = dao.NewNoteRepository(a.Dao)
	a.UserRepo = dao.NewUserRepository(a.Dao)
	a.TagRepo = dao.NewTagRepository(a.Dao)
	a.CommentRepo = dao.NewCommentRepository(a.Dao)
	a.LikeRepo = dao.NewLikeRepository(a.Dao)
	a.CollRepo = dao.NewCollectionRepository(a.Dao)
	a.CollNoteRepo = dao.NewCollectionNoteRepository(a.Dao)

	svcConfig := &service.ServiceConfig{
		User: service.UserServiceConfig{
			RegisterIsEnable: cfg.User.RegisterIsEnable,
		},
		Note: service.NoteServiceConfig{
			ShareBaseURL:    cfg.App.ShareBaseURL,
			ExploreLimit:    cfg.App.ExploreLimit,
			PopularTagLimit: cfg.App.PopularTagLimit,
		},
	}

	a.ProfileService = service.NewProfileService(a.UserRepo, a.NoteRepo, logger)
	a.UserService = service.NewUserService(a.UserRepo, a.ProfileService, a.TokenManager, logger, svcConfig)
	a.NoteService = service.NewNoteService(
		a.NoteRepo, a.UserRepo, a.TagRepo, a.CommentRepo, a.LikeRepo,
		a.CollNoteRepo, a.ProfileService, a.FeedHub, a.workerPool,
		logger, svcConfig,
	)
	a.SocialService = service.NewSocialService(a.NoteRepo, a.UserRepo, a.LikeRepo, a.CommentRepo, logger)
	a.TagService = service.NewTagService(a.TagRepo, a.NoteRepo, logger, svcConfig)
	a.CollectionService = service.NewCollectionService(a.CollRepo, a.CollNoteRepo, a.NoteRepo, logger)

	if cfg.Storage.IsEnabled {
		store, err := storage.NewClient(&cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("storage init: %w", err)
		}
		a.UploadService = service.NewUploadService(store, logger, service.UploadServiceConfig{
			AllowExts: cfg.App.UploadAllowExts,
			MaxSizeMB: cfg.App.UploadMaxSizeMB,
			URLPrefix: cfg.App.UploadURLPrefix,
		})
	}

	logger.Info("app container initialized",
		zap.Int("workerPoolMaxWorkers", wpConfig.MaxWorkers),
		zap.String("storageType", cfg.Storage.Type))

	return a, nil
}

// Close drains the worker pool, tears down the feed and closes the
// database connection.
func (a *App) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if a.workerPool != nil {
		if err := a.workerPool.Shutdown(ctx); err != nil {
			a.logger.Warn("worker pool shutdown", zap.Error(err))
		}
	}
	if a.FeedHub != nil {
		a.FeedHub.Close()
	}

	if a.DB != nil {
		sqlDB, err := a.DB.DB()
		if err != nil {
			return fmt.Errorf("failed to get sql.DB: %w", err)
		}
		if err := sqlDB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
		a.logger.Info("database connection closed")
	}
	return nil
}

// Config returns the application configuration.
func (a *App) Config() *AppConfig {
	return a.config
}

// Logger returns the injected logger.
func (a *App) Logger() *zap.Logger {
	return a.logger
}

// WorkerPool returns the shared worker pool.
func (a *App) WorkerPool() *workerpool.Pool {
	return a.workerPool
}

// VersionInfo returns the build identity.
func (a *App) VersionInfo() pkgapp.VersionInfo {
	return pkgapp.VersionInfo{
		Version:   Version,
		GitTag:    GitTag,
		BuildTime: BuildTime,
	}
}

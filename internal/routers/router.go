package routers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
	"github.com/lxzan/gws"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/notehub/note-hub-service/internal/app"
	"github.com/notehub/note-hub-service/internal/middleware"
	"github.com/notehub/note-hub-service/internal/routers/api_router"
	"github.com/notehub/note-hub-service/internal/routers/websocket_router"
	pkgapp "github.com/notehub/note-hub-service/pkg/app"
	"github.com/notehub/note-hub-service/pkg/limiter"
	"github.com/notehub/note-hub-service/pkg/storage"
)

var methodLimiters = limiter.NewMethodLimiter().AddBuckets(
	limiter.BucketRule{
		Key:          "/api/user/register",
		FillInterval: time.Second,
		Capacity:     10,
		Quantum:      10,
	},
	limiter.BucketRule{
		Key:          "/api/user/login",
		FillInterval: time.Second,
		Capacity:     10,
		Quantum:      10,
	},
)

// NewRouter builds the public HTTP router: the REST API, the live
// note feed websocket endpoint and the static upload dir.
func NewRouter(appContainer *app.App, uni *ut.UniversalTranslator) *gin.Engine {
	cfg := appContainer.Config()

	wss := pkgapp.NewWebsocketServer(pkgapp.WebsocketServerConfig{
		GWSOption: gws.ServerOption{
			CheckUtf8Enabled:    true,
			ParallelEnabled:     true,
			Recovery:            gws.Recovery,
			PermessageDeflate:   gws.PermessageDeflate{Enabled: true},
			ParallelGolimit:     8,
			ReadMaxPayloadSize:  1024 * 1024 * 16,
			WriteMaxPayloadSize: 1024 * 1024 * 16,
		},
		TokenManager: appContainer.TokenManager,
		Logger:       appContainer.Logger(),
	})

	feedWSHandler := websocket_router.NewFeedWSHandler(appContainer)
	wss.Use(websocket_router.ActionNoteSubscribe, feedWSHandler.Subscribe)
	wss.Use(websocket_router.ActionNoteUnsubscribe, feedWSHandler.Unsubscribe)
	wss.Use(websocket_router.ActionNoteSnapshot, feedWSHandler.Snapshot)
	wss.UserVerifyUse(feedWSHandler.UserInfo)

	r := gin.New()

	api := r.Group("/api")
	{
		api.Use(middleware.AppInfo(app.Name, appContainer.VersionInfo().Version))
		if cfg.Tracer.Enabled {
			api.Use(middleware.Tracer(cfg.Tracer.Header))
		}
		api.Use(middleware.RateLimiter(methodLimiters))
		api.Use(middleware.ContextTimeout(time.Duration(cfg.App.DefaultContextTimeout) * time.Second))
		api.Use(middleware.Cors())
		api.Use(middleware.LangWithTranslator(uni))
		api.Use(middleware.AccessLog(appContainer.Logger()))
		api.Use(middleware.RecoveryWithLogger(appContainer.Logger()))
		api.Use(middleware.Metrics(prometheus.DefaultRegisterer))

		userHandler := api_router.NewUserHandler(appContainer)
		noteHandler := api_router.NewNoteHandler(appContainer)
		shareHandler := api_router.NewShareHandler(appContainer)
		socialHandler := api_router.NewSocialHandler(appContainer)
		tagHandler := api_router.NewTagHandler(appContainer)
		collectionHandler := api_router.NewCollectionHandler(appContainer)
		uploadHandler := api_router.NewUploadHandler(appContainer)
		healthHandler := api_router.NewHealthHandler(appContainer)

		api.POST("/user/register", userHandler.Register)
		api.POST("/user/login", userHandler.Login)

		api.GET("/version", healthHandler.Version)
		api.GET("/health", healthHandler.Check)

		api.GET("/explore", shareHandler.Explore)
		api.GET("/shared/:shareId", shareHandler.GetShared)

		api.GET("/notes/feed", wss.Run())

		auth := api.Group("")
		auth.Use(middleware.UserAuthToken(appContainer.TokenManager))
		{
			auth.POST("/user/change_password", userHandler.ChangePassword)
			auth.GET("/user/info", userHandler.Info)
			auth.GET("/user/profile", userHandler.ProfileGet)
			auth.PATCH("/user/profile", userHandler.ProfileUpdate)

			auth.GET("/notes", noteHandler.List)
			auth.POST("/notes", noteHandler.Create)
			auth.GET("/notes/:id", noteHandler.Get)
			auth.PATCH("/notes/:id", noteHandler.Update)
			auth.DELETE("/notes/:id", noteHandler.Delete)

			auth.POST("/notes/:id/share", shareHandler.Share)
			auth.DELETE("/notes/:id/share", shareHandler.Unshare)

			auth.POST("/notes/:id/like", socialHandler.ToggleLike)
			auth.GET("/notes/:id/comments", socialHandler.ListComments)
			auth.POST("/notes/:id/comments", socialHandler.AddComment)
			auth.DELETE("/comments/:commentId", socialHandler.DeleteComment)

			auth.GET("/notes/:id/tags", tagHandler.List)
			auth.POST("/notes/:id/tags", tagHandler.Add)
			auth.DELETE("/notes/:id/tags/:name", tagHandler.Remove)
			auth.GET("/tags/popular", tagHandler.Popular)
			auth.GET("/tags/:name/notes", tagHandler.Notes)

			auth.GET("/collections", collectionHandler.List)
			auth.POST("/collections", collectionHandler.Create)
			auth.GET("/collections/:id", collectionHandler.Get)
			auth.PATCH("/collections/:id", collectionHandler.Update)
			auth.DELETE("/collections/:id", collectionHandler.Delete)
			auth.GET("/collections/:id/notes", collectionHandler.Notes)
			auth.POST("/collections/:id/notes/:noteId", collectionHandler.AddNote)
			auth.DELETE("/collections/:id/notes/:noteId", collectionHandler.RemoveNote)

			auth.POST("/upload/image", uploadHandler.Image)
			auth.DELETE("/upload/image", uploadHandler.DeleteImage)
		}
	}

	if cfg.Storage.Type == storage.LOCAL && cfg.Storage.HttpfsIsEnable {
		r.StaticFS("/uploads", http.Dir(cfg.Storage.SavePath))
	}

	r.Use(middleware.Cors())
	r.NoRoute(middleware.NoFound())

	return r
}

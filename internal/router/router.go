package router

import (
	"time"

	"github.com/eduardo-dangelo/manager-pro-sub002/config"
	"github.com/eduardo-dangelo/manager-pro-sub002/internal/handler"
	"github.com/eduardo-dangelo/manager-pro-sub002/internal/metrics"
	"github.com/eduardo-dangelo/manager-pro-sub002/internal/middleware"
	"github.com/eduardo-dangelo/manager-pro-sub002/internal/repository"
	"github.com/eduardo-dangelo/manager-pro-sub002/internal/service"
	"github.com/eduardo-dangelo/manager-pro-sub002/internal/ws"
	"github.com/eduardo-dangelo/manager-pro-sub002/pkg/cloudinary"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Deps carries everything Setup needs beyond repositories it builds itself.
type Deps struct {
	Cfg    *config.Config
	DB     *gorm.DB
	Cloud  cloudinary.Client
	Logger *zap.Logger
}

// Setup wires repositories, services and handlers and returns the engine
// plus the reminder service so main can start the poller.
func Setup(d Deps) (*gin.Engine, *service.ReminderService) {
	cfg := d.Cfg
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(metrics.Middleware())

	var limiter middleware.RateLimiter
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		limiter = middleware.NewRedisRateLimiter(client, 100, 60*time.Second)
		d.Logger.Info("rate limiting via redis", zap.String("addr", cfg.Redis.Addr))
	} else {
		limiter = middleware.NewInMemoryRateLimiter(100, 60*time.Second)
	}
	r.Use(middleware.RateLimit(limiter))

	// Repositories
	userRepo := repository.NewUserRepository(d.DB)
	assetRepo := repository.NewAssetRepository(d.DB)
	projectRepo := repository.NewProjectRepository(d.DB)
	objectiveRepo := repository.NewObjectiveRepository(d.DB)
	sprintRepo := repository.NewSprintRepository(d.DB)
	taskRepo := repository.NewTaskRepository(d.DB)
	todoRepo := repository.NewTodoRepository(d.DB)
	eventRepo := repository.NewEventRepository(d.DB)
	notificationRepo := repository.NewNotificationRepository(d.DB)

	hub := ws.NewHub()

	// Services
	authSvc := service.NewAuthService(cfg, userRepo)
	notifSvc := service.NewNotificationService(notificationRepo, hub, d.Logger)
	reminderSvc := service.NewReminderService(eventRepo, notifSvc, &cfg.Reminder, d.Logger)

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc, d.Logger)
	googleOAuthHandler := handler.NewGoogleOAuthHandler(cfg, authSvc, d.Logger)
	meHandler := handler.NewMeHandler(userRepo, assetRepo, projectRepo, taskRepo, eventRepo, notifSvc, d.Logger)
	assetHandler := handler.NewAssetHandler(assetRepo, d.Logger)
	projectHandler := handler.NewProjectHandler(projectRepo, assetRepo, d.Logger)
	objectiveHandler := handler.NewObjectiveHandler(objectiveRepo, projectRepo, notifSvc, d.Logger)
	sprintHandler := handler.NewSprintHandler(sprintRepo, projectRepo, notifSvc, d.Logger)
	taskHandler := handler.NewTaskHandler(taskRepo, projectRepo, sprintRepo, d.Logger)
	todoHandler := handler.NewTodoHandler(todoRepo, taskRepo, d.Logger)
	eventHandler := handler.NewEventHandler(eventRepo, assetRepo, d.Logger)
	notificationHandler := handler.NewNotificationHandler(notifSvc, d.Logger)
	reminderHandler := handler.NewReminderHandler(reminderSvc, d.Logger)
	uploadHandler := handler.NewUploadHandler(d.Cloud, assetRepo, d.Logger)

	authMw := middleware.AuthRequired(&cfg.JWT)

	api := r.Group("/api/v1")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/refresh", authHandler.Refresh)
			authGroup.GET("/google", googleOAuthHandler.Redirect)
			authGroup.GET("/google/callback", googleOAuthHandler.Callback)
		}

		me := api.Group("/me")
		me.Use(authMw)
		{
			me.GET("/profile", meHandler.GetProfile)
			me.PATCH("/profile", meHandler.UpdateProfile)
			me.GET("/dashboard", meHandler.GetDashboard)
		}

		authed := api.Group("")
		authed.Use(authMw)
		{
			authed.GET("/assets", assetHandler.List)
			authed.POST("/assets", assetHandler.Create)
			authed.GET("/assets/:id", assetHandler.Get)
			authed.PATCH("/assets/:id", assetHandler.Update)
			authed.DELETE("/assets/:id", assetHandler.Delete)

			authed.GET("/projects", projectHandler.List)
			authed.POST("/projects", projectHandler.Create)
			authed.GET("/projects/:id", projectHandler.Get)
			authed.PATCH("/projects/:id", projectHandler.Update)
			authed.DELETE("/projects/:id", projectHandler.Delete)

			authed.GET("/objectives", objectiveHandler.List)
			authed.POST("/objectives", objectiveHandler.Create)
			authed.PATCH("/objectives/:id", objectiveHandler.Update)
			authed.DELETE("/objectives/:id", objectiveHandler.Delete)

			authed.GET("/sprints", sprintHandler.List)
			authed.POST("/sprints", sprintHandler.Create)
			authed.PATCH("/sprints/:id", sprintHandler.Update)
			authed.DELETE("/sprints/:id", sprintHandler.Delete)

			authed.GET("/tasks", taskHandler.List)
			authed.POST("/tasks", taskHandler.Create)
			authed.GET("/tasks/:id", taskHandler.Get)
			authed.PATCH("/tasks/:id", taskHandler.Update)
			authed.DELETE("/tasks/:id", taskHandler.Delete)

			authed.GET("/todos", todoHandler.List)
			authed.POST("/todos", todoHandler.Create)
			authed.PATCH("/todos/:id", todoHandler.Update)
			authed.DELETE("/todos/:id", todoHandler.Delete)

			authed.GET("/events", eventHandler.List)
			authed.POST("/events", eventHandler.Create)
			authed.GET("/events/:id", eventHandler.Get)
			authed.PATCH("/events/:id", eventHandler.Update)
			authed.DELETE("/events/:id", eventHandler.Delete)

			authed.GET("/notifications", notificationHandler.List)
			authed.GET("/notifications/unread-count", notificationHandler.UnreadCount)
			authed.PATCH("/notifications/:id", notificationHandler.MarkRead)

			authed.POST("/reminders/run", reminderHandler.Run)

			authed.POST("/uploads/asset-image", uploadHandler.UploadAssetImage)
		}
	}

	r.GET("/ws/notifications", ws.UpgradeNotificationWS(&cfg.JWT, hub))
	r.GET("/metrics", metrics.Handler())

	return r, reminderSvc
}

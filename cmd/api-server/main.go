package main

import (
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"kioku/database"
	"kioku/internal/cache"
	"kioku/internal/config"
	"kioku/internal/httpapi/handler"
	"kioku/internal/httpapi/middleware"
	"kioku/internal/httpapi/repository"
	"kioku/internal/httpapi/service"
	"kioku/internal/metadata/jikan"
)

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		log.Fatalf("could not connect to database: %v", err)
	}

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("could not connect to redis: %v", err)
	}
	searchCache := cache.New(redisClient, cfg.CacheTTL)

	userRepo := repository.NewUserRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)
	mediaRepo := repository.NewMediaRepository(db)
	listRepo := repository.NewListRepository(db)
	calendarRepo := repository.NewCalendarRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	authService := service.NewAuthService(userRepo, refreshTokenRepo, cfg)
	mediaService := service.NewMediaService(mediaRepo)
	listService := service.NewListService(listRepo, mediaRepo)
	calendarService := service.NewCalendarService(calendarRepo)
	reviewService := service.NewReviewService(reviewRepo, mediaRepo)
	commentService := service.NewCommentService(commentRepo, mediaRepo)
	dashboardService := service.NewDashboardService(mediaRepo)
	externalService := service.NewExternalService(jikan.NewClient(cfg.JikanAPIURL), searchCache, logger)

	authHandler := handler.NewAuthHandler(authService)
	mediaHandler := handler.NewMediaHandler(mediaService)
	listHandler := handler.NewListHandler(listService)
	calendarHandler := handler.NewCalendarHandler(calendarService)
	reviewHandler := handler.NewReviewHandler(reviewService)
	commentHandler := handler.NewCommentHandler(commentService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	externalHandler := handler.NewExternalHandler(externalService)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.CORS(cfg.CORSOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.POST("/register", authHandler.Register)
		api.POST("/login", authHandler.Login)
		api.POST("/refresh", authHandler.RefreshToken)

		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(authService))
		{
			protected.POST("/logout", authHandler.Logout)
			protected.GET("/user", authHandler.CurrentUser)
			protected.PUT("/user", authHandler.UpdateProfile)

			admin := protected.Group("/admin")
			admin.Use(middleware.RequireAdmin())
			admin.GET("/users", authHandler.ListUsers)

			media := protected.Group("/media")
			mediaHandler.RegisterRoutes(media)

			lists := protected.Group("/lists")
			listHandler.RegisterRoutes(lists)

			calendar := protected.Group("/calendar")
			calendarHandler.RegisterRoutes(calendar)

			reviews := protected.Group("/reviews")
			reviewHandler.RegisterRoutes(media, reviews)

			comments := protected.Group("/comments")
			commentHandler.RegisterRoutes(media, comments)

			dashboard := protected.Group("/dashboard")
			dashboardHandler.RegisterRoutes(dashboard)

			external := protected.Group("/external")
			externalHandler.RegisterRoutes(external)
		}
	}

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	logger.Info("api server listening", "addr", addr, "env", cfg.GoEnv)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

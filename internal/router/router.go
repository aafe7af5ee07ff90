package router

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "kanban-board-api/docs" // Swagger docs import

	"kanban-board-api/internal/client"
	"kanban-board-api/internal/database"
	"kanban-board-api/internal/handler"
	"kanban-board-api/internal/metrics"
	"kanban-board-api/internal/middleware"
	"kanban-board-api/internal/repository"
	"kanban-board-api/internal/response"
	"kanban-board-api/internal/service"
	"kanban-board-api/internal/session"
)

// Config holds router configuration
type Config struct {
	DB      *gorm.DB
	Logger  *zap.Logger
	Metrics *metrics.Metrics
	// Gatherer backs /metrics. Nil serves the default registry.
	Gatherer prometheus.Gatherer

	Sessions *session.Manager
	Password string
	Cookie   handler.CookieOptions

	// Mirror may be nil, uploads are then stored as metadata only.
	Mirror client.Mirror
	Upload service.UploadConfig

	AllowedOrigins []string
	StaticDir      string
}

// Setup sets up the router with all routes
func Setup(cfg Config) *gin.Engine {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	r := gin.New()

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(ginzap.Ginzap(cfg.Logger, time.RFC3339, true))
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(middleware.Metrics(cfg.Metrics))

	// Prometheus metrics endpoint (no authentication)
	metricsHandler := promhttp.Handler()
	if cfg.Gatherer != nil {
		metricsHandler = promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})
	}
	r.GET("/metrics", gin.WrapH(metricsHandler))

	// Initialize repositories
	cardRepo := repository.NewCardRepository(cfg.DB)
	uploadRepo := repository.NewUploadRepository(cfg.DB)

	// Initialize services
	authService := service.NewAuthService(cfg.Password, cfg.Sessions, cfg.Metrics, cfg.Logger)
	cardService := service.NewCardService(cardRepo, cfg.Metrics, cfg.Logger)
	uploadService := service.NewUploadService(uploadRepo, cfg.Mirror, cfg.Upload, cfg.Metrics, cfg.Logger)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, cfg.Cookie, cfg.Logger)
	cardHandler := handler.NewCardHandler(cardService, cfg.Logger)
	uploadHandler := handler.NewUploadHandler(uploadService, cfg.Upload.MaxSize, cfg.Logger)

	store := cfg.Sessions.Store()
	healthHandler := handler.NewHealthHandler(
		func(ctx context.Context) error { return database.Ping(ctx, cfg.DB) },
		store.Ping,
		store.Name(),
		uploadService.MirrorName(),
		cfg.Logger,
	)

	r.GET("/health", healthHandler.Health)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")
	{
		// ============================================================
		// Auth routes (public)
		// ============================================================
		api.POST("/login", authHandler.Login)
		api.POST("/logout", authHandler.Logout)
		api.GET("/auth-status", authHandler.Status)

		protected := api.Group("")
		protected.Use(middleware.RequireSession(cfg.Sessions, cfg.Cookie.Name))
		{
			// Card routes
			protected.GET("/cards/:board", cardHandler.ListCards)
			protected.POST("/cards", cardHandler.CreateCard)
			protected.PUT("/cards/:id", cardHandler.UpdateCard)
			protected.DELETE("/cards/:id", cardHandler.DeleteCard)
			protected.GET("/boards", cardHandler.ListBoards)

			// Upload routes
			protected.POST("/upload", uploadHandler.Upload)
			protected.GET("/uploads", uploadHandler.ListUploads)
		}
	}

	r.NoRoute(staticHandler(cfg.StaticDir, cfg.Logger))

	return r
}

// staticHandler serves the client bundle from dir. Unknown paths outside
// /api fall back to index.html so client-side routes survive a reload.
func staticHandler(dir string, logger *zap.Logger) gin.HandlerFunc {
	enabled := false
	if dir != "" {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			enabled = true
		} else {
			logger.Info("Static directory not found, client assets disabled", zap.String("dir", dir))
		}
	}

	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if !enabled || strings.HasPrefix(path, "/api/") || c.Request.Method != http.MethodGet {
			response.SendError(c, http.StatusNotFound, response.ErrCodeNotFound, "Not found")
			return
		}

		name := filepath.Join(dir, filepath.FromSlash(filepath.Clean("/"+path)))
		if info, err := os.Stat(name); err == nil && !info.IsDir() {
			c.File(name)
			return
		}
		index := filepath.Join(dir, "index.html")
		if _, err := os.Stat(index); err == nil {
			c.File(index)
			return
		}
		response.SendError(c, http.StatusNotFound, response.ErrCodeNotFound, "Not found")
	}
}

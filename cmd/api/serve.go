package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"kanban-board-api/internal/client"
	"kanban-board-api/internal/config"
	"kanban-board-api/internal/database"
	"kanban-board-api/internal/handler"
	"kanban-board-api/internal/job"
	"kanban-board-api/internal/metrics"
	"kanban-board-api/internal/router"
	"kanban-board-api/internal/service"
	"kanban-board-api/internal/session"
)

func serve(configPath string) error {
	cfg, logger, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	defer logger.Sync()

	// Set Gin mode
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	logger.Info("Starting Kanban API",
		zap.String("port", cfg.Server.Port),
		zap.String("mode", cfg.Server.Mode),
		zap.String("env", cfg.Server.Env),
		zap.String("mirror", cfg.MirrorBackend()),
	)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	db, err := openDatabase(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(db); err != nil {
			logger.Warn("Failed to close database", zap.Error(err))
		}
	}()

	// Initialize metrics
	m := metrics.New(logger)
	if err := database.RegisterMetricsCallbacks(db, m); err != nil {
		logger.Warn("Failed to register database metrics callbacks", zap.Error(err))
	}
	database.StartDBStatsCollector(ctx, db, m, 15*time.Second)

	collector := metrics.NewBusinessMetricsCollector(db, m, logger, cfg.Jobs.MetricsInterval)
	collector.Start()
	defer collector.Stop()
	logger.Info("Metrics initialized")

	mirror := buildMirror(ctx, cfg, m, logger)
	store := buildSessionStore(ctx, cfg, logger)
	sessions := session.NewManager(store, cfg.Auth.SessionSecret, cfg.Auth.SessionTTL)

	scheduler := job.NewScheduler(logger)
	if err := scheduler.Add("staging-cleanup", cfg.Jobs.StagingCleanupSchedule,
		job.NewStagingCleanupJob(cfg.Upload.StagingDir, cfg.Jobs.StagingMaxAge, m, logger)); err != nil {
		return err
	}
	if sweeper, ok := store.(job.Sweeper); ok {
		if err := scheduler.Add("session-sweep", cfg.Jobs.SessionSweepSchedule,
			job.NewSessionSweepJob(sweeper, m, logger)); err != nil {
			return err
		}
	}
	scheduler.Start()
	defer func() { <-scheduler.Stop().Done() }()

	// Setup router with all dependencies
	r := router.Setup(router.Config{
		DB:       db,
		Logger:   logger,
		Metrics:  m,
		Sessions: sessions,
		Password: cfg.Auth.Password,
		Cookie: handler.CookieOptions{
			Name:   cfg.Auth.CookieName,
			TTL:    cfg.Auth.SessionTTL,
			Secure: cfg.IsProduction(),
		},
		Mirror: mirror,
		Upload: service.UploadConfig{
			StagingDir:    cfg.Upload.StagingDir,
			MaxSize:       cfg.Upload.MaxSize,
			MirrorTimeout: cfg.Mirror.Timeout,
		},
		AllowedOrigins: cfg.Server.AllowedOrigins,
		StaticDir:      cfg.Server.StaticDir,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Kanban API started successfully",
			zap.String("address", srv.Addr),
			zap.String("swagger", fmt.Sprintf("http://localhost:%s/swagger/index.html", cfg.Server.Port)),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-serverErr:
		return fmt.Errorf("failed to start server: %w", err)
	}
	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited gracefully")
	return nil
}

// openDatabase connects, migrates and optionally seeds the store.
func openDatabase(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*gorm.DB, error) {
	db, err := database.New(database.Config{
		DSN:             cfg.Database.GetDSN(),
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	logger.Info("Database connected successfully",
		zap.String("driver", database.DriverFor(cfg.Database.GetDSN())),
	)

	if err := database.AutoMigrate(db, logger); err != nil {
		_ = database.Close(db)
		return nil, fmt.Errorf("failed to run database migrations: %w", err)
	}

	if cfg.Database.SeedOnEmpty {
		cards, err := database.DefaultSeed()
		if err != nil {
			logger.Warn("Failed to load default seed", zap.Error(err))
			return db, nil
		}
		n, err := database.SeedIfEmpty(ctx, db, cards)
		if err != nil {
			logger.Warn("Failed to seed database", zap.Error(err))
		} else if n > 0 {
			logger.Info("Seeded empty database", zap.Int("cards", n))
		}
	}
	return db, nil
}

// buildMirror returns nil when no mirror is configured or it cannot be
// initialized. Uploads then keep metadata only.
func buildMirror(ctx context.Context, cfg *config.Config, m *metrics.Metrics, logger *zap.Logger) client.Mirror {
	switch cfg.MirrorBackend() {
	case config.MirrorBackendGDrive:
		creds, err := cfg.Mirror.GDrive.CredentialsJSON()
		if err != nil {
			logger.Warn("Google Drive credentials unavailable, uploads will not be mirrored", zap.Error(err))
			return nil
		}
		mirror, err := client.NewGDriveMirror(ctx, creds, cfg.Mirror.GDrive.FolderID, m, logger)
		if err != nil {
			logger.Warn("Failed to initialize Google Drive client, uploads will not be mirrored", zap.Error(err))
			return nil
		}
		logger.Info("Google Drive mirror initialized", zap.String("folder_id", cfg.Mirror.GDrive.FolderID))
		return mirror

	case config.MirrorBackendS3:
		mirror, err := client.NewS3Client(ctx, &cfg.S3, m)
		if err != nil {
			logger.Warn("Failed to initialize S3 client, uploads will not be mirrored", zap.Error(err))
			return nil
		}
		logger.Info("S3 mirror initialized",
			zap.String("bucket", cfg.S3.Bucket),
			zap.String("region", cfg.S3.Region),
		)
		return mirror
	}

	logger.Info("No upload mirror configured, uploads keep metadata only")
	return nil
}

// buildSessionStore prefers redis when configured and falls back to the
// in-process store when it is unreachable.
func buildSessionStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) session.Store {
	rdb, err := database.NewRedis(ctx, cfg.Redis.URL)
	if err != nil {
		logger.Warn("Redis unavailable, sessions are kept in memory", zap.Error(err))
		return session.NewMemoryStore()
	}
	if rdb == nil {
		return session.NewMemoryStore()
	}
	logger.Info("Redis session store connected")
	return session.NewRedisStore(rdb, cfg.Redis.KeyPrefix)
}

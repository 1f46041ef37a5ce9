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

	"github.com/go-playground/validator/v10"
	"github.com/ikkim/hubline-admin/config"
	"github.com/ikkim/hubline-admin/internal/app/controller"
	"github.com/ikkim/hubline-admin/internal/app/repository"
	"github.com/ikkim/hubline-admin/internal/app/service"
	"github.com/ikkim/hubline-admin/internal/db"
	"github.com/ikkim/hubline-admin/internal/middleware"
	"github.com/ikkim/hubline-admin/internal/router"
	"github.com/ikkim/hubline-admin/internal/scheduler"
	"github.com/ikkim/hubline-admin/internal/storage"
	"github.com/ikkim/hubline-admin/internal/websocket"
	"github.com/ikkim/hubline-admin/pkg/logger"
	redisclient "github.com/ikkim/hubline-admin/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	logFormat := "json"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
		logFormat = "console"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      logFormat,
		EnableColor: true,
	})

	logger.Info("Starting Hubline admin server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations and bootstrap the admin account
	if err := db.Migrate(cfg.Admin); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	ctx := context.Background()

	// Dashboard cache (optional)
	var statsCache service.StatsCache
	if cfg.Redis.Addr() != "" {
		client, err := redisclient.Connect(&cfg.Redis)
		if err != nil {
			logger.Warn("Redis unavailable, dashboard cache disabled", map[string]interface{}{
				"addr":  cfg.Redis.Addr(),
				"error": err.Error(),
			})
		} else {
			defer client.Close()
			statsCache = redisclient.NewJSONCache(client, "hubline")
		}
	}

	// Audit archive storage (optional)
	var archiveStorage service.ObjectStorage
	if cfg.S3.Bucket != "" {
		archiveStorage = storage.NewS3Storage(ctx, cfg.S3.Region, cfg.S3.Bucket, cfg.S3.AccessKeyID, cfg.S3.SecretAccessKey)
	}

	// Live activity feed
	hub := websocket.NewActivityHub()
	go hub.Run()
	defer hub.Stop()

	validate := validator.New()

	// Initialize repositories
	gdb := db.GetDB()
	identityRepo := repository.NewIdentityRepository(gdb)
	userRepo := repository.NewUserRepository(gdb)
	entityRepo := repository.NewEntityRepository(gdb)
	auditRepo := repository.NewAuditRepository(gdb)
	deliveryRepo := repository.NewDeliveryRepository(gdb)
	commissionRepo := repository.NewCommissionRepository(gdb)
	settingsRepo := repository.NewSettingsRepository(gdb)

	// Initialize services
	identities := service.NewIdentityProvider(identityRepo)
	dashboardService := service.NewDashboardService(userRepo, entityRepo, commissionRepo, deliveryRepo, statsCache, cfg.Redis.StatsTTL)
	auditService := service.NewAuditService(auditRepo, service.AuditPublishers{hub, dashboardService})
	authService := service.NewAuthService(
		identities,
		userRepo,
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)
	provisioningService := service.NewProvisioningService(identities, userRepo, entityRepo, validate, cfg.Provisioning.TempPasswordLength)
	approvalService := service.NewApprovalService(entityRepo, auditService)
	bulkService := service.NewBulkService(approvalService)
	entityService := service.NewEntityService(entityRepo, userRepo, identities, auditService, validate)
	settingsService := service.NewSettingsService(settingsRepo, auditService, validate)
	archiveService := service.NewAuditArchiveService(auditRepo, archiveStorage, cfg.S3.Prefix)

	// Background jobs
	var nightlyArchive service.AuditArchiveService
	if archiveStorage != nil {
		nightlyArchive = archiveService
	}
	jobs := scheduler.NewAdminScheduler(dashboardService, nightlyArchive)
	if err := jobs.Start(cfg.Scheduler.StatsRefreshSpec, cfg.Scheduler.AuditArchiveSpec); err != nil {
		logger.Fatal("Failed to start scheduler", err)
	}
	defer jobs.Stop()

	// Initialize controllers
	controllers := router.Controllers{
		Auth:      controller.NewAuthController(authService),
		Entity:    controller.NewEntityController(entityService, provisioningService, approvalService),
		Bulk:      controller.NewBulkController(bulkService),
		Audit:     controller.NewAuditController(auditService, archiveService),
		Dashboard: controller.NewDashboardController(dashboardService),
		Settings:  controller.NewSettingsController(settingsService),
		Activity:  controller.NewActivityController(hub, cfg.CORS.AllowedOrigins),
	}

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	// Setup router
	engine := router.NewRouter(controllers, authMiddleware, cfg).Setup()

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server started successfully", map[string]interface{}{
			"address": srv.Addr,
			"pid":     os.Getpid(),
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", err)
	}

	logger.Info("Server stopped successfully")
}

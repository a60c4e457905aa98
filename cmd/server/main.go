package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ilkol21/company-crm/internal/config"
	"github.com/ilkol21/company-crm/internal/controller"
	"github.com/ilkol21/company-crm/internal/events"
	"github.com/ilkol21/company-crm/internal/obs"
	"github.com/ilkol21/company-crm/internal/repository"
	"github.com/ilkol21/company-crm/internal/service"
	"github.com/ilkol21/company-crm/internal/token"
	"github.com/ilkol21/company-crm/internal/utils"
	"github.com/ilkol21/company-crm/internal/worker"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	logger.Info("starting company-crm", zap.String("environment", cfg.Environment))

	// Initialize database
	db, err := utils.InitDB(cfg.DatabaseURL, logger)
	if err != nil {
		logger.Fatal("failed to initialize database", zap.Error(err))
	}
	defer func() {
		if err := utils.CloseDB(db); err != nil {
			logger.Error("error closing database", zap.Error(err))
		}
	}()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	companyRepo := repository.NewCompanyRepository(db)
	historyRepo := repository.NewHistoryRepository(db)

	// Initialize helpers
	hasher := utils.NewPasswordHasher(cfg.BcryptCost)
	validator := utils.NewValidator()
	issuer := token.NewIssuer(cfg.Token)

	// Initialize metrics
	obs.Init()

	// Initialize socket hub and event dispatcher
	hubCtx, cancelHub := context.WithCancel(context.Background())
	defer cancelHub()
	hub := events.NewHub(issuer, logger)
	go hub.Run(hubCtx)

	dispatcher := worker.NewEventDispatcher(cfg.EventWorkerPoolSize, cfg.EventQueueSize, hub, logger)
	defer dispatcher.Stop()

	// Initialize services
	historyService := service.NewHistoryService(historyRepo)
	authService := service.NewAuthService(userRepo, historyService, hasher, issuer, validator)
	userService := service.NewUserService(userRepo, historyService, hasher, dispatcher)
	companyService := service.NewCompanyService(companyRepo, historyService, dispatcher)

	// Build the HTTP surface
	router := controller.NewRouter(controller.RouterDeps{
		Auth:      controller.NewAuthController(authService, logger),
		Users:     controller.NewUserController(userService, logger),
		Companies: controller.NewCompanyController(companyService, logger),
		History:   controller.NewHistoryController(historyService),
		Issuer:    issuer,
		Socket:    hub,
		Logger:    logger,
	})

	addr := fmt.Sprintf("%s:%s", cfg.HTTPHost, cfg.HTTPPort)
	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("http server listening", zap.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("http server error", zap.Error(err))
		}
	}()

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	logger.Info("shutdown signal received, gracefully shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", zap.Error(err))
	}
	cancelHub()
	logger.Info("server stopped")
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Environment == "production" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	return zapCfg.Build()
}

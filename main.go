package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sopwriter/config"
	"sopwriter/database"
	"sopwriter/handlers"
	"sopwriter/middleware"
	"sopwriter/routes"
	"sopwriter/services/archive"
	"sopwriter/services/export"
	ai "sopwriter/services/intelligence"
	"sopwriter/services/sop"
	"sopwriter/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("main: failed to load config: %v", err)
	}

	logger, err := utils.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("main: failed to build logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck
	zap.ReplaceGlobals(logger)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Model client.
	modelClient, closeModel, err := newModelClient(ctx, cfg, logger)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize model client: %v", err)
	}
	defer closeModel()

	// Archive backend.
	store, closeStore, err := newArchiveStore(ctx, cfg)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize archive: %v", err)
	}
	defer closeStore()

	// services.
	healthService := ai.NewHealthService(modelClient, cfg.ActiveModel(), logger)
	sopService := &sop.DefaultSOPService{
		Generator: sop.NewAssembler(modelClient, cfg.ActiveModel(), logger),
		Archive:   store,
		Provider:  modelClient.Provider(),
		Model:     cfg.ActiveModel(),
		Logger:    logger,
	}

	sopHandler := handlers.NewSOPHandler(sopService)
	modelHandler := handlers.NewModelHandler(healthService)
	downloadHandler := handlers.NewDownloadHandler(export.Exporters())

	handlerBundle := &handlers.HandlerBundle{
		GenerateSOPHandler:    sopHandler.GenerateSOPHandler,
		GetArchivedSOPHandler: sopHandler.GetArchivedSOPHandler,
		CheckModelHandler:     modelHandler.CheckModelHandler,
		DownloadTXTHandler:    downloadHandler.Download(export.FormatTXT),
		DownloadDOCXHandler:   downloadHandler.Download(export.FormatDOCX),
		DownloadPDFHandler:    downloadHandler.Download(export.FormatPDF),
	}

	// Background health checks for /health.
	services := map[string]utils.HealthCheck{
		"model": func(ctx context.Context) error {
			_, err := modelClient.ListModels(ctx)
			return err
		},
	}
	if p, ok := store.(archive.Pinger); ok {
		services["archive"] = p.Ping
	}
	monitor := utils.NewHealthMonitor(services, cfg.HealthCheckInterval, logger)
	monitor.Start(ctx)

	limiter := middleware.NewRateLimiterStore(cfg.MaxRequestsPerMin)
	limiter.StartJanitor(ctx, cfg.RateLimitIdleTTL, cfg.RateLimitIdleTTL, logger)

	// Create the Gin router. ErrorHandler recovers panics.
	router := gin.New()
	router.Use(utils.ErrorHandler(logger))
	router.Use(middleware.RequestLogger(logger))

	if err := routes.RegisterRoutes(router, handlerBundle, routes.Options{
		RateLimiter:    limiter,
		MaxFormBytes:   cfg.MaxFormBytes,
		Health:         monitor,
		TrustedProxies: cfg.TrustedProxies,
	}); err != nil {
		logger.Sugar().Fatalf("main: failed to register routes: %v", err)
	}

	srv := &http.Server{
		Addr:    "0.0.0.0:" + cfg.AppPort,
		Handler: router,
	}

	logger.Info("Starting server",
		zap.String("addr", srv.Addr),
		zap.String("provider", modelClient.Provider()),
		zap.String("model", cfg.ActiveModel()),
		zap.String("archive", cfg.ArchiveBackend),
	)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("main: server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
		return
	}
	logger.Info("main: server stopped gracefully")
}

func newModelClient(ctx context.Context, cfg *config.Config, logger *zap.Logger) (ai.ModelClient, func(), error) {
	switch cfg.ModelProvider {
	case config.ProviderGemini:
		client, err := ai.NewGeminiClient(ctx, cfg.GeminiAPIKey)
		if err != nil {
			return nil, nil, err
		}
		return client, func() { _ = client.Close() }, nil
	default:
		return ai.NewOllamaClient(cfg.OllamaBaseURL, cfg.ModelTimeout, logger), func() {}, nil
	}
}

func newArchiveStore(ctx context.Context, cfg *config.Config) (archive.Store, func(), error) {
	switch cfg.ArchiveBackend {
	case config.ArchiveMongo:
		client, err := database.Connect(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() { _ = client.Disconnect(context.Background()) }
		return archive.NewMongoStore(client.Database(cfg.DatabaseName)), closeFn, nil
	case config.ArchiveRedis:
		client, err := utils.NewArchiveRedisClient(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		return archive.NewRedisStore(client, cfg.ArchiveTTL), func() { _ = client.Close() }, nil
	default:
		return archive.NoopStore{}, func() {}, nil
	}
}

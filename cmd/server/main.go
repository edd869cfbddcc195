package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"formsight/internal/cache"
	"formsight/internal/config"
	"formsight/internal/repository"
	"formsight/internal/service"
	"formsight/internal/storage"
	"formsight/internal/transport/rest"
	"formsight/internal/transport/rest/middleware"
	"formsight/internal/transport/ws"
	"formsight/pkg/logger"
	"formsight/pkg/monitoring"
	"formsight/pkg/tracing"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// @title formsight API
// @version 1.0
// @description Form and quiz responses: shuffled presentations, scoring, statistics and exports.
// @host localhost:8080
// @BasePath /v1
func main() {
	ctx := context.Background()

	configPath := os.Getenv("FORMSIGHT_CONFIG_PATH")
	if configPath == "" {
		configPath = "configs"
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		// the logger is not up yet
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger.Init(logger.Options{Level: cfg.Log.Level, File: cfg.Log.File})
	defer logger.Log.Sync()

	monitoring.Init()

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(cfg.Tracing.ServiceName, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to init tracer", zap.Error(err))
		}
		defer tp.Shutdown(ctx)
		logger.Log.Info("Tracing enabled", zap.String("collector", cfg.Tracing.CollectorEndpoint))
	}

	// Repositories
	var (
		formRepo repository.FormRepository
		subRepo  repository.SubmissionRepository
	)
	switch cfg.Storage.Driver {
	case "memory":
		logger.Log.Warn("Using in-memory storage, data is lost on restart")
		formRepo = repository.NewMemoryFormRepo()
		subRepo = repository.NewMemorySubmissionRepo()
	default:
		mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
		if err != nil {
			logger.Log.Fatal("Failed to connect to MongoDB", zap.Error(err))
		}
		defer mongoClient.Disconnect(ctx)

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := mongoClient.Ping(pingCtx, nil); err != nil {
			logger.Log.Fatal("Failed to ping MongoDB", zap.Error(err))
		}
		logger.Log.Info("Connected to MongoDB", zap.String("database", cfg.Mongo.Database))

		db := mongoClient.Database(cfg.Mongo.Database)
		if err := repository.EnsureIndexes(ctx, db); err != nil {
			logger.Log.Warn("Failed to ensure indexes", zap.Error(err))
		}
		formRepo = repository.NewFormRepo(db)
		subRepo = repository.NewSubmissionRepo(db)
	}

	// Caches
	var (
		statsCache        cache.StatsCache
		presentationCache cache.PresentationCache
	)
	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.URI,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		if _, err := rdb.Ping(ctx).Result(); err != nil {
			logger.Log.Fatal("Failed to ping Redis", zap.Error(err))
		}
		logger.Log.Info("Connected to Redis", zap.String("addr", cfg.Redis.URI))
		statsCache = cache.NewStatsCache(rdb, cfg.Cache.StatsTTL)
		presentationCache = cache.NewPresentationCache(rdb, cfg.Cache.PresentationTTL)
	} else {
		statsCache = cache.NewMemoryStatsCache(cfg.Cache.StatsTTL)
		presentationCache = cache.NewMemoryPresentationCache(cfg.Cache.PresentationTTL)
	}

	archive, err := storage.NewProvider(ctx, &cfg.Archive)
	if err != nil {
		logger.Log.Fatal("Failed to init archive storage", zap.String("type", cfg.Archive.Type), zap.Error(err))
	}

	// Initialize WebSocket hub
	wsHub := ws.NewHub()
	defer wsHub.Close()

	// Initialize services
	location, _ := cfg.Export.Location()
	formSvc := service.NewFormService(formRepo)
	analyticsSvc := service.NewAnalyticsService(formRepo, subRepo, statsCache)
	submissionSvc := service.NewSubmissionService(formRepo, subRepo, presentationCache, service.SubmissionOptions{
		Precision:         cfg.Scoring.Precision,
		DeleteConcurrency: cfg.Submissions.DeleteConcurrency,
	})
	exportSvc := service.NewExportService(formRepo, subRepo, archive, service.ExportOptions{
		Delimiter: cfg.Export.DelimiterRune(),
		Location:  location,
	})

	submissionSvc.SetAnalyticsService(analyticsSvc)

	// Inject broadcaster (wsHub implements service.Broadcaster)
	submissionSvc.SetBroadcaster(wsHub)
	analyticsSvc.SetBroadcaster(wsHub)

	limiter := middleware.NewRateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowSeconds)*time.Second)
	defer limiter.Stop()

	container := &rest.Container{
		FormService:       formSvc,
		SubmissionService: submissionSvc,
		AnalyticsService:  analyticsSvc,
		ExportService:     exportSvc,
		WSHub:             wsHub,
		SubmitLimiter:     limiter,
		CORS:              cfg.CORS,
	}
	if local, ok := archive.(*storage.LocalProvider); ok {
		container.Archives = local.Handler()
	}
	router := rest.NewRouter(container)

	config.WatchConfig(configPath, func(next *config.Config) {
		logger.SetLevel(next.Log.Level)
		logger.Log.Info("Log level updated", zap.String("level", next.Log.Level))
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		logger.Log.Info("Server starting", zap.String("port", cfg.Server.Port), zap.String("storage", cfg.Storage.Driver))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("ListenAndServe", zap.Error(err))
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Log.Info("Server exited")
}

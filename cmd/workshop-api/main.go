package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/workshop-hub-api/internal/dataset"
	"github.com/noah-isme/workshop-hub-api/internal/handler"
	"github.com/noah-isme/workshop-hub-api/internal/middleware"
	"github.com/noah-isme/workshop-hub-api/internal/repository"
	"github.com/noah-isme/workshop-hub-api/internal/server"
	"github.com/noah-isme/workshop-hub-api/internal/service"
	"github.com/noah-isme/workshop-hub-api/pkg/cache"
	"github.com/noah-isme/workshop-hub-api/pkg/config"
	"github.com/noah-isme/workshop-hub-api/pkg/database"
	"github.com/noah-isme/workshop-hub-api/pkg/jobs"
	"github.com/noah-isme/workshop-hub-api/pkg/logger"
	"github.com/noah-isme/workshop-hub-api/pkg/storage"
)

// @title Workshop Hub API
// @version 1.0.0
// @description Live workshop dashboard, registration wizard and assistant chat
// @BasePath /
// @schemes http

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

func run(ctx context.Context, cfg *config.Config, logr *zap.Logger) error {
	ds, err := dataset.Load(cfg.DatasetFile)
	if err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}
	store := repository.NewWorkshopStore(ds)
	metrics := service.NewMetricsService()
	checks := map[string]handler.ReadinessCheck{}

	var (
		registrations service.RegistrationRepository
		feedbackRepo  service.FeedbackRepository
	)
	if cfg.Database.Enabled {
		db, err := database.NewPostgres(ctx, cfg.Database)
		if err != nil {
			return fmt.Errorf("connect database: %w", err)
		}
		defer db.Close()
		if err := database.EnsureSchema(ctx, db); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
		registrations = repository.NewRegistrationRepository(db)
		feedbackRepo = repository.NewFeedbackRepository(db)
		checks["database"] = db.PingContext
	} else {
		registrations = repository.NewMemoryRegistrationRepository()
		feedbackRepo = repository.NewMemoryFeedbackRepository()
	}

	var cacheRepo service.CacheRepository
	if cfg.Cache.Enabled {
		client, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, view cache disabled", zap.Error(err))
		} else {
			repo := repository.NewCacheRepository(client, "workshop")
			defer repo.Close()
			cacheRepo = repo
			checks["redis"] = func(ctx context.Context) error { return client.Ping(ctx).Err() }
		}
	}
	viewCache := service.NewCacheService(cacheRepo, metrics, cfg.Cache.ViewTTL, logr, cacheRepo != nil)

	validate := service.NewValidator()
	passes := service.NewPassService(service.PassConfig{
		Secret: cfg.Pass.Secret,
		Expiry: cfg.Pass.Expiration,
		Issuer: cfg.Pass.Issuer,
	})

	// Simulation and chat draw from separate sources; rand.Rand is not safe for concurrent use.
	var simRand, chatRand service.Random
	if seed := cfg.Simulation.Seed; seed != 0 {
		simRand = rand.New(rand.NewSource(seed))
		chatRand = rand.New(rand.NewSource(seed + 1))
	}

	wizard := service.NewRegistrationService(registrations, passes, validate, metrics, logr)
	views := service.NewViewService(store, wizard, viewCache, logr)
	wizard.SetNotifier(views)

	sim := service.NewSimulationService(store, ds.ActivityEvents, ds.SummaryPoints, service.SimulationConfig{
		CounterInterval:  cfg.Simulation.CounterInterval,
		ActivityInterval: cfg.Simulation.ActivityInterval,
		SummaryInterval:  cfg.Simulation.SummaryInterval,
		ProgressInterval: cfg.Simulation.ProgressInterval,
	}, simRand, metrics, logr)
	sim.SetNotifier(views)

	chat := service.NewChatbotService(ds.Chat, views, service.ChatbotConfig{
		MinDelay: cfg.Chat.MinDelay,
		MaxDelay: cfg.Chat.MaxDelay,
	}, chatRand, metrics, logr)

	files, err := storage.NewLocalStorage(cfg.Exports.StorageDir)
	if err != nil {
		return fmt.Errorf("init export storage: %w", err)
	}
	signer := storage.NewSignedURLSigner(cfg.Exports.SignedURLSecret, cfg.Exports.SignedURLTTL)
	exports := service.NewExportService(store, files, signer, validate, service.ExportConfig{
		APIPrefix: cfg.APIPrefix,
		ResultTTL: cfg.Exports.SignedURLTTL,
	}, metrics, logr)
	feedback := service.NewFeedbackService(feedbackRepo, validate, logr)

	mux := jobs.NewMux()
	queue := jobs.NewQueue("workshop", mux.Dispatch, jobs.QueueConfig{Workers: 1, Logger: logr})
	sim.Register(mux)
	chat.Register(mux, queue)
	exports.Register(mux)

	queue.Start(ctx)
	defer queue.Stop()

	if cfg.Simulation.Enabled {
		if err := sim.Schedule(queue); err != nil {
			return fmt.Errorf("schedule simulation: %w", err)
		}
	}
	if err := queue.Every(cfg.Exports.CleanupInterval, service.JobExportCleanup); err != nil {
		return fmt.Errorf("schedule export cleanup: %w", err)
	}

	chatLimiter := middleware.NewRateLimiter(cfg.Chat.RateLimit, cfg.Chat.RateBurst)
	go chatLimiter.Run(ctx, time.Minute)

	router := server.NewRouter(server.Options{
		APIPrefix:      cfg.APIPrefix,
		EnableDocs:     cfg.Env != config.EnvProduction,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Logger:         logr,
		Metrics:        metrics,
		Passes:         passes,
		ChatLimiter:    chatLimiter,
	}, server.Handlers{
		Views:        handler.NewViewHandler(views),
		Registration: handler.NewRegistrationHandler(wizard),
		Chat:         handler.NewChatHandler(chat),
		Feedback:     handler.NewFeedbackHandler(feedback),
		Exports:      handler.NewExportHandler(exports),
		Metrics:      handler.NewMetricsHandler(metrics, checks),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		// Event streams end with the process context instead of holding Shutdown open.
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logr.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

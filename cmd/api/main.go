package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/job-tracker/internal/api/http"
	"github.com/spec-kit/job-tracker/internal/api/http/handlers"
	"github.com/spec-kit/job-tracker/internal/auth"
	"github.com/spec-kit/job-tracker/internal/config"
	"github.com/spec-kit/job-tracker/internal/events"
	"github.com/spec-kit/job-tracker/internal/lifecycle"
	"github.com/spec-kit/job-tracker/internal/observability"
	"github.com/spec-kit/job-tracker/internal/persistence"
	"github.com/spec-kit/job-tracker/internal/repository"
	"github.com/spec-kit/job-tracker/internal/repository/sqlite"
	"github.com/spec-kit/job-tracker/internal/service"
	"github.com/spec-kit/job-tracker/internal/worker"
)

type stores struct {
	apps  repository.ApplicationRepository
	users repository.UserRepository
	ready handlers.Dependency
	close func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.App, cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	st, err := openStores(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to open storage", zap.String("driver", cfg.Storage.Driver), zap.Error(err))
	}
	defer st.close()

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()
	activity := service.NewActivityService(dispatcher, logger)
	worker.StartActivityWorker(activity)

	authService := service.NewAuthService(cfg.Auth, service.AuthDependencies{
		UserRepo:    st.users,
		Revocations: auth.NewRedisRevocationStore(redis.Client),
		Dispatcher:  dispatcher,
		Logger:      logger,
	})
	applicationService := service.NewApplicationService(service.ApplicationDependencies{
		ApplicationRepo: st.apps,
		Policy:          lifecycle.NewPolicy(time.Now),
		Dispatcher:      dispatcher,
		Logger:          logger,
	})
	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), st.users, authService.Revocations(), logger)

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version,
			st.ready,
			handlers.Dependency{Name: "redis", Pinger: redis, Optional: true},
		),
		Metrics:        handlers.NewMetricsHandler(metrics, activity),
		Auth:           handlers.NewAuthHandler(authService),
		Applications:   handlers.NewApplicationsHandler(applicationService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.ShutdownWithTimeout(10 * time.Second)
}

func openStores(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*stores, error) {
	if cfg.Storage.Driver == config.StorageDriverSQLite {
		store, err := sqlite.Open(cfg.Storage.SQLitePath)
		if err != nil {
			return nil, err
		}
		logger.Info("using sqlite storage", zap.String("path", cfg.Storage.SQLitePath))
		return &stores{
			apps:  store,
			users: store,
			ready: handlers.Dependency{Name: "sqlite", Pinger: store},
			close: func() { _ = store.Close() },
		}, nil
	}

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		return nil, err
	}
	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
			pg.Close()
			return nil, err
		}
	}
	pool := pg.PoolHandle()
	return &stores{
		apps:  repository.NewApplicationRepository(pool),
		users: repository.NewUserRepository(pool),
		ready: handlers.Dependency{Name: "postgres", Pinger: pg},
		close: pg.Close,
	}, nil
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}

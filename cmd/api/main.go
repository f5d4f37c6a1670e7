package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/common-nighthawk/go-figure"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"go.uber.org/zap"

	httptransport "github.com/kintai-system/attendance-api/internal/api/http"
	"github.com/kintai-system/attendance-api/internal/api/http/handlers"
	"github.com/kintai-system/attendance-api/internal/auth"
	"github.com/kintai-system/attendance-api/internal/config"
	"github.com/kintai-system/attendance-api/internal/events"
	"github.com/kintai-system/attendance-api/internal/observability"
	"github.com/kintai-system/attendance-api/internal/persistence"
	"github.com/kintai-system/attendance-api/internal/ratelimit"
	"github.com/kintai-system/attendance-api/internal/repository"
	"github.com/kintai-system/attendance-api/internal/service"
	"github.com/kintai-system/attendance-api/internal/worker"
)

const sweepInterval = time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	displayAppName("kintai api")
	if !cfg.App.IsProduction() && cfg.Auth.JWTSecret == config.DevJWTSecret {
		logger.Warn("using development JWT secret; set AUTH_JWT_SECRET before deploying")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}

	if pg.Enabled() && cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(cfg.Postgres.DSN, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	metrics := observability.NewMetrics(nil)
	hasher := auth.NewPasswordHasher(cfg.Auth.BcryptCost)

	var employees repository.EmployeeRepository
	if pg.Enabled() {
		employees = repository.NewBreakerEmployeeRepository(
			repository.NewEmployeeRepository(pg.PoolHandle()),
			repository.BreakerSettings{
				MaxFailures: cfg.Postgres.BreakerMaxFailures,
				OpenTimeout: time.Duration(cfg.Postgres.BreakerOpenSeconds) * time.Second,
			},
			logger,
		)
	} else {
		logger.Warn("using in-memory employee directory")
		employees = repository.NewMemoryEmployeeRepository()
	}

	if cfg.Auth.SeedDemoEmployees {
		seeded, err := repository.SeedEmployees(ctx, employees, hasher.Hash, repository.DemoEmployees())
		if err != nil {
			logger.Fatal("failed to seed demo employees", zap.Error(err))
		}
		logger.Info("demo employees seeded", zap.Int("created", seeded))
	}

	cleaners := map[string]worker.Cleaner{}
	var (
		revocations  auth.RevocationStore
		accountLimit ratelimit.Limiter
		clientLimit  ratelimit.Limiter
	)
	accountCfg := ratelimit.Config{
		RequestsPerWindow: cfg.RateLimit.LoginMax,
		WindowSize:        cfg.RateLimit.LoginWindow(),
	}
	clientCfg := ratelimit.Config{
		RequestsPerWindow: cfg.RateLimit.LoginIPMax,
		WindowSize:        cfg.RateLimit.LoginWindow(),
	}
	if redis.Enabled() {
		revocations = auth.NewRedisRevocationStore(redis.Client, persistence.RevokedTokenKeyPrefix)
		accountLimit = ratelimit.NewSlidingWindowLimiter(redis.Client, accountCfg, persistence.LoginRateLimitKeyPrefix)
		clientLimit = ratelimit.NewSlidingWindowLimiter(redis.Client, clientCfg, persistence.LoginRateLimitKeyPrefix)
	} else {
		memRevocations := auth.NewMemoryRevocationStore()
		memAccount := ratelimit.NewMemoryLimiter(accountCfg)
		memClient := ratelimit.NewMemoryLimiter(clientCfg)
		revocations = memRevocations
		accountLimit = memAccount
		clientLimit = memClient
		cleaners["revocations"] = memRevocations
		cleaners["login_limiter"] = memAccount
		cleaners["client_limiter"] = memClient
	}

	codec, err := auth.NewTokenCodec(cfg.Auth.JWTSecret, cfg.Auth.JWTAlgorithm, auth.WithLeeway(cfg.Auth.ClockSkew()))
	if err != nil {
		logger.Fatal("invalid token configuration", zap.Error(err))
	}
	issuer := auth.NewSessionIssuer(codec, cfg.Auth.AccessTokenTTL(), cfg.Auth.RefreshTokenTTL())

	dispatcher := events.NewInMemoryDispatcher()
	worker.StartAuditWorker(service.NewAuditService(dispatcher, logger, metrics))

	authService := service.NewAuthService(service.AuthDependencies{
		Employees:           employees,
		Issuer:              issuer,
		Hasher:              hasher,
		Revocations:         revocations,
		Dispatcher:          dispatcher,
		Logger:              logger,
		RotateRefreshTokens: cfg.Auth.RotateRefreshTokens,
	})

	sweepCtx, stopSweeper := context.WithCancel(ctx)
	sweeperDone := make(chan struct{})
	go func() {
		defer close(sweeperDone)
		worker.NewSweeper(sweepInterval, logger, cleaners).Run(sweepCtx)
	}()

	app := httptransport.NewServer(httptransport.ServerConfig{
		AppName:        cfg.App.Name,
		Logger:         logger,
		Metrics:        metrics,
		RequestTimeout: cfg.App.RequestTimeout(),
		CORSOrigins:    cfg.CORS.Origins,
		Routes: httptransport.RouteConfig{
			Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, map[string]handlers.Pinger{
				"postgres": pg,
				"redis":    redis,
			}, logger),
			Auth:           handlers.NewAuthHandler(authService, ratelimit.NewLoginThrottle(accountLimit, clientLimit), logger),
			Attendance:     handlers.NewAttendanceHandler(),
			Users:          handlers.NewUsersHandler(),
			Notifications:  handlers.NewNotificationsHandler(),
			Reports:        handlers.NewReportsHandler(),
			AuthMiddleware: auth.NewAuthMiddleware(authService),
		},
	})

	go func() {
		logger.Info("http server listening", zap.String("addr", cfg.App.Addr()))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	// One operation so teardown runs in order: stop taking requests, stop the
	// sweeper, then close the stores the handlers and sweeper were using.
	wait := gfshutdown.GracefulShutdown(ctx, cfg.App.ShutdownTimeout(), map[string]gfshutdown.Operation{
		"app": func(ctx context.Context) error {
			if err := app.ShutdownWithContext(ctx); err != nil {
				logger.Error("http shutdown", zap.Error(err))
			}
			stopSweeper()
			select {
			case <-sweeperDone:
			case <-ctx.Done():
				logger.Warn("sweeper did not stop before shutdown deadline")
			}
			redis.Close()
			pg.Close()
			return ctx.Err()
		},
	})

	exitCode := <-wait
	logger.Info("shutdown complete", zap.Int("exit_code", exitCode))
	_ = logger.Sync()
	os.Exit(exitCode)
}

func displayAppName(name string) {
	banner := figure.NewFigure(name, "cybermedium", true)
	banner.Print()
	fmt.Println()
}

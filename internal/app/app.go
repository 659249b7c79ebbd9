package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/pilldeck/pilldeck/internal/config"
	"github.com/pilldeck/pilldeck/internal/httpserver"
	"github.com/pilldeck/pilldeck/internal/httpserver/deps"
	"github.com/pilldeck/pilldeck/internal/logger"
	"github.com/pilldeck/pilldeck/internal/redis"
	"github.com/pilldeck/pilldeck/internal/registry"
	"github.com/pilldeck/pilldeck/internal/scheduler"
	redisstore "github.com/pilldeck/pilldeck/internal/store/redis"
	"github.com/pilldeck/pilldeck/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	registry    *registry.Registry
	dispenser   *scheduler.Dispenser
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Initialize Redis early - fail fast if unavailable
	redisClient, err := redis.New(redis.ConnectOptions{
		Addr:           cfg.RedisAddr,
		User:           cfg.RedisUser,
		Password:       cfg.RedisPassword,
		DB:             cfg.RedisDB,
		DialTimeout:    cfg.RedisDialTimeout,
		ReadTimeout:    cfg.RedisReadTimeout,
		WriteTimeout:   cfg.RedisWriteTimeout,
		PoolSize:       cfg.RedisPoolSize,
		ConnectTimeout: cfg.RedisConnectTimeout,
		RetryInterval:  cfg.RedisRetryInterval,
		MaxWait:        cfg.RedisMaxWait,
		PingTimeout:    cfg.RedisPingTimeout,
	}, loggerClient)
	if err != nil {
		loggerClient.Errorf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}

	// Initialize slot registry and persistence gateway
	reg := registry.New(cfg.SlotCount)
	store := redisstore.NewStore(redisClient)

	// Seed the registry from Redis on startup
	syncer := scheduler.NewStoreSyncer(store, reg, loggerClient)
	if err := syncer.Sync(context.Background()); err != nil {
		loggerClient.Warn("failed to sync slots from redis, starting blank",
			logger.Error(err))
	}

	// Apply the provisioning file on first boot (if configured)
	if cfg.SeedFile != "" {
		seeder := scheduler.NewSeeder(cfg.SeedFile, store, reg, loggerClient)
		if err := seeder.Apply(context.Background()); err != nil {
			loggerClient.Warn("failed to apply seed file",
				logger.String("file", cfg.SeedFile),
				logger.Error(err))
		}
	}

	// Create manual evaluation trigger channel
	tickTrigger := make(chan struct{}, 1)

	// Initialize the dispense evaluator
	dispenser := scheduler.NewDispenser(
		reg,
		store,
		loggerClient,
		cfg.TickInterval,
		time.Now,
		tickTrigger,
	)

	// Dependencies passed to routes (extend as needed).
	d := deps.Deps{
		Logger:            loggerClient,
		StartTime:         time.Now(),
		Version:           version.Version,
		Commit:            version.Commit,
		BuildDate:         version.BuildDate,
		GoVersion:         version.GoVersion,
		TimeNow:           time.Now,
		Registry:          reg,
		Store:             store,
		LowStockThreshold: cfg.LowStockThreshold,
		TickTrigger:       tickTrigger,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		redisClient: redisClient,
		registry:    reg,
		dispenser:   dispenser,
	}
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting Pilldeck v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("Pilldeck %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start the dispense evaluator
	if err := a.dispenser.Start(ctx); err != nil {
		return fmt.Errorf("failed to start dispense evaluator: %w", err)
	}
	a.logger.Info("dispense evaluator started",
		logger.Duration("interval", a.cfg.TickInterval))

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	// Stop the evaluator before the server so no dispense races shutdown
	a.dispenser.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		} else {
			a.logger.Info("✅ Redis closed cleanly")
		}
	}

	a.logger.Info("✅ Pilldeck stopped cleanly")
	return nil
}

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

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/retypegame/retype-api/internal/auth"
	"github.com/retypegame/retype-api/internal/config"
	"github.com/retypegame/retype-api/internal/database"
	"github.com/retypegame/retype-api/internal/handlers"
	"github.com/retypegame/retype-api/internal/logic"
	"github.com/retypegame/retype-api/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	var logger *zap.Logger
	if cfg.Env == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Postgres
	pg, err := database.Connect(ctx, cfg.PostgresURL)
	if err != nil {
		sugar.Fatalw("Failed to connect to Postgres", "error", err)
	}
	defer pg.Close()

	if err := database.Migrate(ctx, cfg.PostgresURL); err != nil {
		sugar.Fatalw("Failed to run migrations", "error", err)
	}

	// Redis
	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		sugar.Fatalw("Invalid Redis URL", "error", err)
	}
	redisClient := redis.NewClient(redisOpts)
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		sugar.Fatalw("Failed to connect to Redis", "error", err)
	}

	// ClickHouse is optional; without it the telemetry batches are dropped
	// and only the achievement counters run.
	var chConn driver.Conn
	if cfg.ClickHouseURL != "" {
		chConn, err = database.ConnectClickHouse(ctx, cfg.ClickHouseURL)
		if err != nil {
			sugar.Fatalw("Failed to connect to ClickHouse", "error", err)
		}
		defer chConn.Close()
	} else {
		sugar.Warn("CLICKHOUSE_URL not set, telemetry sink disabled")
	}

	// Worker pool
	pool := worker.NewPool(worker.PoolConfig{
		WorkerCount:   cfg.WorkerCount,
		QueueSize:     cfg.QueueSize,
		BatchSize:     cfg.BatchSize,
		FlushInterval: cfg.FlushInterval,
		ClickHouse:    chConn,
		Postgres:      pg,
		Redis:         redisClient,
		Logger:        logger,
	})
	pool.Start(ctx)

	// Services
	tokens := auth.NewManager(cfg.JWTSecret, cfg.TokenTTL)
	h := handlers.New(handlers.Config{
		WorkerPool:   pool,
		Postgres:     pg,
		ClickHouse:   chConn,
		Redis:        redisClient,
		Logger:       logger,
		Tokens:       tokens,
		Env:          cfg.Env,
		Accounts:     logic.NewAccountsService(pg, sugar),
		Scores:       logic.NewScoresService(pg, sugar),
		Leaderboard:  logic.NewLeaderboardService(pg),
		Users:        logic.NewUsersService(pg),
		Achievements: logic.NewAchievementsService(pg),
		Testimonials: logic.NewTestimonialsService(pg),
		Activity:     logic.NewActivityService(redisClient),
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      h.Routes(cfg.AllowedOrigins),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		sugar.Infow("Server listening", "port", cfg.Port, "env", cfg.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			sugar.Fatalw("Server failed", "error", err)
		}
	}()

	<-ctx.Done()
	sugar.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		sugar.Errorw("Server shutdown failed", "error", err)
	}

	// flush remaining telemetry batches after the listener stops
	pool.Stop()
	sugar.Info("Shutdown complete")
}

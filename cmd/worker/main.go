package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"accumulator/internal/backend"
	"accumulator/internal/config"
	"accumulator/internal/logger"
	"accumulator/internal/queue"
	"accumulator/internal/roster"
	"accumulator/internal/store"
	"accumulator/internal/worker"
)

// Worker consumes roster warm jobs and refills the friend cache.
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

	if cfg.QueueBackend == "memory" {
		logr.Fatal("QUEUE_BACKEND=memory runs the worker inside the web process")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		logr.Info("shutdown signal received")
		cancel()
	}()

	redisClient := store.NewRedis(cfg.RedisAddr)
	defer redisClient.Close() //nolint:errcheck
	if !redisClient.Healthy(ctx) {
		logr.Warn("redis not reachable yet, consumer will keep retrying", zap.String("addr", cfg.RedisAddr))
	}

	client := backend.New(cfg.BackendURL, cfg.BackendTimeout, nil)
	if err := client.Health(ctx); err != nil {
		logr.Warn("backend not available", zap.Error(err))
	}

	// warm jobs are not re-enqueued, so the roster service gets no publisher
	rosters := roster.NewService(client, redisClient, nil, nil, cfg.FriendCacheTTL, logr.Named("roster"))
	q := queue.NewRedisQueue(redisClient.Client, queue.DefaultKey)

	if err := worker.NewWarmer(rosters, logr.Named("worker"), cfg.BackendTimeout).Run(ctx, q); err != nil {
		logr.Fatal("queue consume failed", zap.Error(err))
	}
}

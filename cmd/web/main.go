package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "accumulator/api/swagger"
	"accumulator/internal/attendance"
	"accumulator/internal/auth"
	"accumulator/internal/backend"
	"accumulator/internal/config"
	"accumulator/internal/handler"
	"accumulator/internal/httpmiddleware"
	"accumulator/internal/logger"
	"accumulator/internal/metrics"
	"accumulator/internal/queue"
	"accumulator/internal/roster"
	"accumulator/internal/store"
	"accumulator/internal/web"
	"accumulator/internal/worker"
)

// @title Accumulator Web Gateway
// @version 0.1.0
// @description Pages and JSON views over the attendance backend.
// @BasePath /

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

	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := runHTTP(cfg, logr); err != nil {
		logr.Fatal("http server failed", zap.Error(err))
	}
}

func runHTTP(cfg *config.App, logr *zap.Logger) error {
	m := metrics.New()
	client := backend.New(cfg.BackendURL, cfg.BackendTimeout, m)

	redisClient := store.NewRedis(cfg.RedisAddr)
	defer redisClient.Close() //nolint:errcheck

	var q queue.Queue
	if cfg.QueueBackend == "memory" {
		q = queue.NewInMemory(64)
	} else {
		q = queue.NewRedisQueue(redisClient.Client, queue.DefaultKey)
	}

	rosters := roster.NewService(client, redisClient, q, m, cfg.FriendCacheTTL, logr.Named("roster"))

	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()
	if cfg.QueueBackend == "memory" {
		// an in-memory queue is only visible to this process
		go func() {
			_ = worker.NewWarmer(rosters, logr.Named("worker"), cfg.BackendTimeout).Run(workerCtx, q)
		}()
	}

	views := attendance.NewService(rosters, client)
	sessions := auth.NewSessions(cfg.Session)

	h := handler.New(handler.Deps{
		Accounts:     client,
		Integrations: client,
		Rosters:      rosters,
		Attendance:   views,
		Sessions:     sessions,
		Probes: map[string]handler.Probe{
			"backend": client.Health,
			"redis": func(ctx context.Context) error {
				if !redisClient.Healthy(ctx) {
					return errors.New("redis unreachable")
				}
				return nil
			},
		},
		Logger: logr.Named("http"),
	})

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpmiddleware.RequestID())
	r.Use(logger.GinMiddleware(logr, "/healthz", "/metrics"))
	r.Use(httpmiddleware.CORS(cfg.AllowedOrigins))
	r.Use(httpmiddleware.SecurityHeaders())
	r.Use(m.GinMiddleware())
	r.SetHTMLTemplate(web.MustTemplates())

	r.GET("/metrics", gin.WrapH(m.Handler()))
	if cfg.DocsEnabled {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	limiter := httpmiddleware.NewTokenBucket(cfg.RateLimitPerMin, cfg.RateLimitPerMin)
	h.Register(r, limiter.GinMiddleware())

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logr.Info("server starting", zap.String("addr", srv.Addr), zap.String("backend", cfg.BackendURL))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case <-quit:
	}
	logr.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Warn("server forced shutdown", zap.Error(err))
	}
	logr.Info("server exited")
	return nil
}

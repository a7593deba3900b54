// cmd/report-server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"compliance-engine/internal/common/cache"
	"compliance-engine/internal/common/config"
	"compliance-engine/internal/common/logger"
	"compliance-engine/internal/common/observability"
	"compliance-engine/internal/report"
	"compliance-engine/internal/server"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting report server...",
		zap.String("address", cfg.Server.Address),
		zap.Int("jurisdictions", len(cfg.Jurisdictions)),
	)

	obs := observability.New("report-server")
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Geocode cache (optional) ---
	var redisClient *redis.Client
	if cfg.Cache.Enabled {
		rc, err := cache.NewRedis(cfg.Redis)
		if err == nil {
			err = retryWithBackoff(func() error {
				return rc.Ping(ctx)
			}, 5, 2*time.Second, zapLog, "Redis connection")
		}
		if err != nil {
			// The cache only saves geocoder round-trips; the server is fully
			// functional without it.
			zapLog.Warn("redis unavailable, continuing without geocode cache", zap.Error(err))
		} else {
			zapLog.Info("Redis connected successfully")
			redisClient = rc.GetClient()
			defer rc.Close()
		}
	}

	engine, err := report.BuildEngine(cfg, log, redisClient, obs)
	if err != nil {
		zapLog.Fatal("engine build failed", zap.Error(err))
	}

	handler := server.NewHandler(engine, "nyc", log)
	httpServer := &http.Server{
		Addr:              cfg.Server.Address,
		Handler:           server.NewRouter(handler),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zapLog.Info("HTTP server listening", zap.String("address", cfg.Server.Address))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("http server failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	zapLog.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("graceful shutdown failed", zap.Error(err))
	}
	zapLog.Info("Shutdown complete")
}

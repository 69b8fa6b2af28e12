// sweeper runs the expired-code purge as its own process, for
// deployments that prefer periodic work outside the API server.
// Run: go run ./cmd/sweeper
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/verimail/verimail/config"
	"github.com/verimail/verimail/internal/codegen"
	"github.com/verimail/verimail/internal/email"
	"github.com/verimail/verimail/internal/health"
	"github.com/verimail/verimail/internal/infrastructure/postgres"
	ctxlog "github.com/verimail/verimail/internal/log"
	"github.com/verimail/verimail/internal/metrics"
	"github.com/verimail/verimail/internal/sweeper"
	"github.com/verimail/verimail/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := newLogger(cfg.Env, cfg.SlogLevel())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		stop()
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	logger.Info("db connected")

	metrics.Register()
	checker := health.NewChecker(pool, logger, prometheus.DefaultRegisterer)

	// The sweeper never issues codes; the log sender keeps the
	// usecase wiring uniform without touching a real provider.
	verificationUsecase := usecase.NewVerificationUsecase(
		postgres.NewVerificationRepository(pool),
		codegen.New(),
		email.NewLogSender(logger),
		cfg.CodeExpiry(),
		logger,
	)

	sw, err := sweeper.New(verificationUsecase, cfg.SweepCron, logger)
	if err != nil {
		stop()
		log.Fatalf("sweeper: %v", err)
	}
	go sw.Start(ctx)

	metricsSrv := metrics.NewServer(":"+cfg.MetricsPort, checker)

	go func() {
		logger.Info("metrics server started", "port", cfg.MetricsPort)
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "error", err)
		}
	}()

	<-ctx.Done()
	stop()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown", "error", err)
	}
}

func newLogger(env string, level slog.Level) *slog.Logger {
	var inner slog.Handler
	if env == "local" {
		inner = tint.NewHandler(os.Stdout, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	} else {
		inner = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: level,
		})
	}
	return slog.New(ctxlog.NewContextHandler(inner))
}

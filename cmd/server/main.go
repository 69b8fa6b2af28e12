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

	"github.com/gin-gonic/gin"
	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/verimail/verimail/config"
	"github.com/verimail/verimail/internal/codegen"
	"github.com/verimail/verimail/internal/email"
	"github.com/verimail/verimail/internal/health"
	"github.com/verimail/verimail/internal/infrastructure/postgres"
	ctxlog "github.com/verimail/verimail/internal/log"
	"github.com/verimail/verimail/internal/metrics"
	"github.com/verimail/verimail/internal/ratelimit"
	"github.com/verimail/verimail/internal/sweeper"
	httptransport "github.com/verimail/verimail/internal/transport/http"
	"github.com/verimail/verimail/internal/transport/http/handler"
	"github.com/verimail/verimail/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := newLogger(cfg.Env, cfg.SlogLevel())

	if cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		stop()
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	sender, err := email.NewSender(cfg, logger)
	if err != nil {
		stop()
		log.Fatalf("email sender: %v", err)
	}

	verificationRepo := postgres.NewVerificationRepository(pool)
	verificationUsecase := usecase.NewVerificationUsecase(
		verificationRepo,
		codegen.New(),
		sender,
		cfg.CodeExpiry(),
		logger,
	)
	verificationHandler := handler.NewVerificationHandler(verificationUsecase, logger, cfg.ExposeCode)

	limiter := ratelimit.New(cfg.RateLimitWindow(), cfg.RateLimitMax)

	metrics.Register()
	checker := health.NewChecker(pool, logger, prometheus.DefaultRegisterer)

	sw, err := sweeper.New(verificationUsecase, cfg.SweepCron, logger)
	if err != nil {
		stop()
		log.Fatalf("sweeper: %v", err)
	}
	go sw.Start(ctx)

	srv := http.Server{
		Addr:    ":" + cfg.Port,
		Handler: httptransport.NewRouter(logger, verificationHandler, limiter),
	}

	metricsSrv := metrics.NewServer(":"+cfg.MetricsPort, checker)

	go func() {
		logger.Info("server started", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

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
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}
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

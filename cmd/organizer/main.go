package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hackerpeanutjohn/RainDigest/internal/infra/config"
	"github.com/hackerpeanutjohn/RainDigest/internal/infra/gemini"
	"github.com/hackerpeanutjohn/RainDigest/internal/infra/metrics"
	"github.com/hackerpeanutjohn/RainDigest/internal/infra/raindrop"
	"github.com/hackerpeanutjohn/RainDigest/internal/infra/tracing"
	"github.com/hackerpeanutjohn/RainDigest/internal/usecase"
	"github.com/hackerpeanutjohn/RainDigest/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	fatalOnErr(err, "load config")

	log, err := logger.New(cfg.LogLevel)
	fatalOnErr(err, "init logger")
	defer log.Sync()

	log = log.With(zap.String("run_id", uuid.NewString()))
	log.Info("starting raindigest organizer")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		log.Info("received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	}()

	if cfg.OTLPEndpoint != "" {
		tp, err := tracing.InitTracer(ctx, cfg.OTLPEndpoint)
		if err != nil {
			log.Warn("tracing init failed, continuing without tracing", zap.Error(err))
		} else {
			defer tp.Shutdown(context.Background())
		}
	}

	bookmarks := raindrop.NewClient(raindrop.Config{
		Token:     cfg.RaindropToken,
		UserAgent: cfg.UserAgent,
	}, log)

	llm, err := gemini.NewProvider(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, log)
	fatalOnErr(err, "create gemini provider")

	uc := usecase.NewOrganizeUseCase(bookmarks, llm, log, usecase.OrganizeConfig{
		PerPage:  cfg.PerPage,
		MaxItems: cfg.MaxItems,
		DryRun:   cfg.DryRun,
	})

	metricsSrv := metrics.StartServer(cfg.MetricsPort, log)

	if err := uc.Execute(ctx); err != nil {
		log.Error("organizer run failed", zap.Error(err))
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	metricsSrv.Shutdown(shutdownCtx)

	log.Info("raindigest organizer stopped")
}

func fatalOnErr(err error, msg string) {
	if err != nil {
		panic(msg + ": " + err.Error())
	}
}

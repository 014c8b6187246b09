package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hackerpeanutjohn/RainDigest/internal/domain/port"
	"github.com/hackerpeanutjohn/RainDigest/internal/infra/config"
	"github.com/hackerpeanutjohn/RainDigest/internal/infra/email"
	"github.com/hackerpeanutjohn/RainDigest/internal/infra/gemini"
	"github.com/hackerpeanutjohn/RainDigest/internal/infra/history"
	"github.com/hackerpeanutjohn/RainDigest/internal/infra/markdown"
	"github.com/hackerpeanutjohn/RainDigest/internal/infra/metrics"
	"github.com/hackerpeanutjohn/RainDigest/internal/infra/r2"
	"github.com/hackerpeanutjohn/RainDigest/internal/infra/raindrop"
	"github.com/hackerpeanutjohn/RainDigest/internal/infra/readwise"
	"github.com/hackerpeanutjohn/RainDigest/internal/infra/tracing"
	"github.com/hackerpeanutjohn/RainDigest/internal/infra/vision"
	"github.com/hackerpeanutjohn/RainDigest/internal/infra/ytdlp"
	"github.com/hackerpeanutjohn/RainDigest/internal/usecase"
	"github.com/hackerpeanutjohn/RainDigest/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	fatalOnErr(err, "load config")

	log, err := logger.New(cfg.LogLevel)
	fatalOnErr(err, "init logger")
	defer log.Sync()

	// Every run gets its own id so interleaved cron runs stay separable
	// in the logs.
	log = log.With(zap.String("run_id", uuid.NewString()))
	log.Info("starting raindigest")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Graceful shutdown on SIGINT/SIGTERM
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		log.Info("received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	}()

	// Tracing (non-fatal if the collector is unavailable)
	if cfg.OTLPEndpoint != "" {
		tp, err := tracing.InitTracer(ctx, cfg.OTLPEndpoint)
		if err != nil {
			log.Warn("tracing init failed, continuing without tracing", zap.Error(err))
		} else {
			defer tp.Shutdown(context.Background())
		}
	}

	// Infra adapters
	bookmarks := raindrop.NewClient(raindrop.Config{
		Token:     cfg.RaindropToken,
		UserAgent: cfg.UserAgent,
	}, log)

	reader := readwise.NewClient(readwise.Config{Token: cfg.ReadwiseToken}, log)

	llm, err := gemini.NewProvider(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, log)
	fatalOnErr(err, "create gemini provider")

	media, err := ytdlp.NewFetcher(cfg.DataDir, cfg.SubtitleLangs, log)
	fatalOnErr(err, "create media fetcher")

	frames := vision.NewSelector(vision.Config{
		ProbeOffsets:      cfg.FrameProbeOffsets,
		EdgeLowThreshold:  cfg.EdgeLowThreshold,
		EdgeHighThreshold: cfg.EdgeHighThreshold,
	}, log)

	var images port.ImageStorage
	if cfg.R2Configured() {
		storage, err := r2.NewStorage(r2.StorageConfig{
			AccountID:    cfg.R2AccountID,
			AccessKey:    cfg.R2AccessKeyID,
			SecretKey:    cfg.R2SecretKey,
			Bucket:       cfg.R2Bucket,
			PublicDomain: cfg.R2PublicDomain,
		}, log)
		fatalOnErr(err, "create r2 storage")
		fatalOnErr(storage.EnsureBucket(ctx), "ensure r2 bucket")
		images = storage
	} else {
		log.Info("object storage not configured, highlight frames stay local")
	}

	store, err := history.NewStore(filepath.Join(cfg.DataDir, history.DefaultDBFile))
	fatalOnErr(err, "open history store")
	defer store.Close()

	var notifier port.FailureNotifier
	if cfg.NotifierConfigured() {
		notifier = email.NewSMTPNotifier(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPFrom, cfg.NotifyEmail, log)
	}

	// Use case
	uc := usecase.NewSummarizeUseCase(
		bookmarks, reader, llm, media, frames,
		images, store, notifier,
		markdown.NewRenderer(), log,
		usecase.SummarizeConfig{
			OutputDir:           cfg.OutputDir,
			MaxItems:            cfg.MaxItems,
			MaxRetries:          cfg.MaxRetries,
			PerPage:             cfg.PerPage,
			DryRun:              cfg.DryRun,
			DirectorMaxDuration: cfg.DirectorMaxDuration,
			Retention:           time.Duration(cfg.R2RetentionDays) * 24 * time.Hour,
		},
	)

	// Metrics server
	metricsSrv := metrics.StartServer(cfg.MetricsPort, log)

	if err := uc.Execute(ctx); err != nil {
		log.Error("run failed", zap.Error(err))
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	metricsSrv.Shutdown(shutdownCtx)

	log.Info("raindigest stopped")
}

func fatalOnErr(err error, msg string) {
	if err != nil {
		panic(msg + ": " + err.Error())
	}
}

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	_ "go.uber.org/automaxprocs"

	"github.com/chris/campaign-escrow/pkg/campaign"
	"github.com/chris/campaign-escrow/pkg/clock"
	"github.com/chris/campaign-escrow/pkg/config"
	"github.com/chris/campaign-escrow/pkg/events"
	"github.com/chris/campaign-escrow/pkg/handlers"
	wshandler "github.com/chris/campaign-escrow/pkg/handlers/websockets"
	"github.com/chris/campaign-escrow/pkg/storage"
	badgerstore "github.com/chris/campaign-escrow/pkg/storage/badger"
	dydbstore "github.com/chris/campaign-escrow/pkg/storage/dynamodb"
	"github.com/chris/campaign-escrow/pkg/sweep"
	"github.com/chris/campaign-escrow/pkg/websockets"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logger := cfg.NewLogger(os.Stdout)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	var (
		store     storage.Storage
		sqsClient *sqs.Client
	)
	switch cfg.StorageBackend {
	case config.BackendDynamoDB:
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return err
		}
		store = dydbstore.New(
			dynamodb.NewFromConfig(awsCfg),
			cfg.CampaignsTable,
			cfg.ContributionsTable,
			cfg.MetaTable,
			cfg.WalletsTable,
			cfg.LedgerTable,
		)
		if cfg.SQSQueueURL != "" {
			sqsClient = sqs.NewFromConfig(awsCfg)
		}
	default:
		bs, err := badgerstore.New(
			badgerstore.WithDataDir(cfg.BadgerDir),
			badgerstore.WithLogger(logger),
		)
		if err != nil {
			return err
		}
		defer bs.Close()
		store = bs
	}
	logger.Info("storage ready", "backend", cfg.StorageBackend)

	hub := websockets.NewHub(logger)
	defer hub.Close()

	notifiers := events.Multi{&events.LogNotifier{Logger: logger}, hub}
	if sqsClient != nil {
		notifiers = append(notifiers, events.NewSQSNotifier(sqsClient, cfg.SQSQueueURL))
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	engine, err := campaign.New(campaign.Config{
		Store:               store,
		Clock:               clock.System{},
		Notifier:            notifiers,
		Limits:              cfg.Limits,
		Logger:              logger,
		PromRegistry:        registry,
		SettlementBatchSize: cfg.SettlementBatchSize,
	})
	if err != nil {
		return err
	}

	if cfg.SweepInterval > 0 {
		sweeper := sweep.New(engine, clock.System{}, cfg.SweepInterval, logger)
		go sweeper.Run(ctx)
	}

	router := handlers.NewRouter(handlers.NewApiHandler(engine, store), cfg.RootToken, logger)
	router.Get("/healthz", handlers.Health)
	router.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	router.Handle("/ws", wshandler.NewHandler(hub))

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", "port", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	logger.Info("shutting down server")
	return srv.Shutdown(shutdownCtx)
}

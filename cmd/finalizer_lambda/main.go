package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"

	"github.com/chris/campaign-escrow/pkg/campaign"
	"github.com/chris/campaign-escrow/pkg/clock"
	"github.com/chris/campaign-escrow/pkg/config"
	"github.com/chris/campaign-escrow/pkg/events"
	dydbstore "github.com/chris/campaign-escrow/pkg/storage/dynamodb"
	"github.com/chris/campaign-escrow/pkg/sweep"
)

var (
	sweeper *sweep.Sweeper
	logger  *slog.Logger
)

func init() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logger = cfg.NewLogger(os.Stdout)

	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO())
	if err != nil {
		logger.Error("unable to load SDK config", "error", err)
		os.Exit(1)
	}

	store := dydbstore.New(
		dynamodb.NewFromConfig(awsCfg),
		cfg.CampaignsTable,
		cfg.ContributionsTable,
		cfg.MetaTable,
		cfg.WalletsTable,
		cfg.LedgerTable,
	)

	notifiers := events.Multi{&events.LogNotifier{Logger: logger}}
	if cfg.SQSQueueURL != "" {
		notifiers = append(notifiers, events.NewSQSNotifier(sqs.NewFromConfig(awsCfg), cfg.SQSQueueURL))
	}

	engine, err := campaign.New(campaign.Config{
		Store:               store,
		Clock:               clock.System{},
		Notifier:            notifiers,
		Limits:              cfg.Limits,
		Logger:              logger,
		SettlementBatchSize: cfg.SettlementBatchSize,
	})
	if err != nil {
		logger.Error("failed to create campaign engine", "error", err)
		os.Exit(1)
	}

	sweeper = sweep.New(engine, clock.System{}, cfg.SweepInterval, logger)
}

// HandleRequest is triggered by an EventBridge Schedule. Each invocation
// closes the campaigns that have ended and pays out pending proceeds.
func HandleRequest(ctx context.Context) error {
	logger.Info("starting finalization sweep")

	report, err := sweeper.Advance(ctx, clock.System{}.Now())
	for _, f := range report.Finalized {
		logger.Info("campaign finalized", "campaign_id", f.CampaignID, "status", f.Status, "raised", f.Raised)
	}
	for _, s := range report.Settled {
		logger.Info("proceeds settled", "campaign_id", s.CampaignID, "transferred", s.Transferred, "done", s.Done)
	}
	if err != nil {
		logger.Error("finalization sweep finished with errors", "error", err)
		return err
	}

	logger.Info("finalization sweep finished", "finalized", len(report.Finalized), "settled", len(report.Settled))
	return nil
}

func main() {
	lambda.Start(HandleRequest)
}

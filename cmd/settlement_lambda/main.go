package main

import (
	"context"
	"log/slog"
	"os"

	lambdaevents "github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/chris/campaign-escrow/pkg/campaign"
	"github.com/chris/campaign-escrow/pkg/clock"
	"github.com/chris/campaign-escrow/pkg/config"
	"github.com/chris/campaign-escrow/pkg/events"
	"github.com/chris/campaign-escrow/pkg/models"
	dydbstore "github.com/chris/campaign-escrow/pkg/storage/dynamodb"
)

// Settler pays out the proceeds of a successful campaign.
type Settler interface {
	SettleProceeds(ctx context.Context, id models.CampaignID) (*campaign.Settlement, error)
}

var (
	settler Settler
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

	// Settlement events are not re-published to the queue this lambda consumes.
	engine, err := campaign.New(campaign.Config{
		Store:               store,
		Clock:               clock.System{},
		Notifier:            &events.LogNotifier{Logger: logger},
		Limits:              cfg.Limits,
		Logger:              logger,
		SettlementBatchSize: cfg.SettlementBatchSize,
	})
	if err != nil {
		logger.Error("failed to create campaign engine", "error", err)
		os.Exit(1)
	}
	settler = engine
}

// HandleRequest consumes lifecycle events from SQS and settles every campaign
// that finalized as successful. Other events are acknowledged and dropped.
func HandleRequest(ctx context.Context, sqsEvent lambdaevents.SQSEvent) error {
	return handle(ctx, settler, sqsEvent)
}

func handle(ctx context.Context, s Settler, sqsEvent lambdaevents.SQSEvent) error {
	for _, message := range sqsEvent.Records {
		event, err := events.Decode(message.Body)
		if err != nil {
			logger.Error("failed to decode event", "message_id", message.MessageId, "error", err)
			return err
		}
		if event.Type != events.CampaignFinalized || event.Status != models.SUCCESS {
			continue
		}

		settlement, err := s.SettleProceeds(ctx, event.CampaignID)
		if err != nil {
			logger.Error("failed to settle campaign", "campaign_id", event.CampaignID, "error", err)
			return err
		}
		logger.Info("proceeds settled",
			"campaign_id", settlement.CampaignID,
			"transferred", settlement.Transferred,
			"batches", settlement.Batches,
			"done", settlement.Done,
		)
	}

	return nil
}

func main() {
	lambda.Start(HandleRequest)
}

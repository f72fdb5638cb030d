package dynamodb

import (
	"context"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/chris/campaign-escrow/pkg/storage"
)

const (
	ledgerGSI     = "gsi1pk-timestamp-index"
	settlementGSI = "settle_pending-id-index"

	nextIDKey = "next_campaign_id"
	activeKey = "active_campaigns"

	// settlePendingAttr is only present on successful campaigns awaiting payout,
	// which keeps settlementGSI sparse.
	settlePendingAttr  = "settle_pending"
	settlePendingValue = "PENDING"

	// maxTransactItems is the DynamoDB limit on items in one TransactWriteItems call.
	maxTransactItems = 100
)

// MaxSettlementBatchSize is the largest number of contributions one settlement
// commit can pay out. A batch of n writes 4n+2 items: the campaign, n deletes,
// n contributor wallets plus the owner's, and two ledger legs per transfer.
const MaxSettlementBatchSize = (maxTransactItems - 2) / 4

//go:generate go run github.com/vektra/mockery/v2 --name=DynamoDBAPI

// DynamoDBAPI is the subset of the DynamoDB client used by the store.
type DynamoDBAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	TransactWriteItems(ctx context.Context, params *dynamodb.TransactWriteItemsInput, optFns ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error)
}

// Store implements the Storage interface using AWS DynamoDB.
type Store struct {
	Client                 DynamoDBAPI
	CampaignsTableName     string
	ContributionsTableName string
	MetaTableName          string
	WalletsTableName       string
	LedgerTableName        string
}

// New creates a new Store.
func New(client DynamoDBAPI, campaignsTable, contributionsTable, metaTable, walletsTable, ledgerTable string) *Store {
	return &Store{
		Client:                 client,
		CampaignsTableName:     campaignsTable,
		ContributionsTableName: contributionsTable,
		MetaTableName:          metaTable,
		WalletsTableName:       walletsTable,
		LedgerTableName:        ledgerTable,
	}
}

// Make sure we conform to the interface
var _ storage.Storage = (*Store)(nil)

func numberAV(n int64) *types.AttributeValueMemberN {
	return &types.AttributeValueMemberN{Value: strconv.FormatInt(n, 10)}
}

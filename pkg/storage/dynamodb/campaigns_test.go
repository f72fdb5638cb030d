package dynamodb

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/chris/campaign-escrow/pkg/models"
	"github.com/chris/campaign-escrow/pkg/storage"
	"github.com/chris/campaign-escrow/pkg/storage/dynamodb/mocks"
)

func marshalAll[T any](t *testing.T, items []T) []map[string]types.AttributeValue {
	t.Helper()
	var out []map[string]types.AttributeValue
	for _, item := range items {
		av, err := attributevalue.MarshalMap(item)
		require.NoError(t, err)
		out = append(out, av)
	}
	return out
}

func TestGetCampaign(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	campaign := &models.Campaign{
		Id:       7,
		Owner:    "owner",
		Metadata: models.Metadata{Name: "Solar", Description: "Panels", Link: aws.String("https://example.org")},
		Start:    start,
		End:      start.Add(time.Hour),
		SoftCap:  100,
		HardCap:  500,
		Status:   models.UPCOMING,
		Version:  1,
	}

	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		av, err := attributevalue.MarshalMap(campaign)
		require.NoError(t, err)
		mockClient.On("GetItem", mock.Anything, mock.MatchedBy(func(in *dynamodb.GetItemInput) bool {
			return aws.ToString(in.TableName) == "campaigns"
		})).Return(&dynamodb.GetItemOutput{Item: av}, nil)

		store := newTestStore(mockClient)
		result, err := store.GetCampaign(context.Background(), 7)

		assert.NoError(t, err)
		assert.Equal(t, campaign, result)
		mockClient.AssertExpectations(t)
	})

	t.Run("Not Found", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{}, nil)

		store := newTestStore(mockClient)
		_, err := store.GetCampaign(context.Background(), 7)

		assert.ErrorIs(t, err, storage.ErrNotFound)
		mockClient.AssertExpectations(t)
	})

	t.Run("Storage Error", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(nil, errors.New("get failed"))

		store := newTestStore(mockClient)
		_, err := store.GetCampaign(context.Background(), 7)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to get campaign from DynamoDB")
		mockClient.AssertExpectations(t)
	})
}

func TestListCampaigns(t *testing.T) {
	t.Run("Pages And Sorts", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		lastKey := campaignKey(3)
		mockClient.On("Scan", mock.Anything, mock.MatchedBy(func(in *dynamodb.ScanInput) bool {
			return in.ExclusiveStartKey == nil
		})).Return(&dynamodb.ScanOutput{
			Items:            marshalAll(t, []models.Campaign{{Id: 3}, {Id: 1}}),
			LastEvaluatedKey: lastKey,
		}, nil).Once()
		mockClient.On("Scan", mock.Anything, mock.MatchedBy(func(in *dynamodb.ScanInput) bool {
			return in.ExclusiveStartKey != nil
		})).Return(&dynamodb.ScanOutput{
			Items: marshalAll(t, []models.Campaign{{Id: 0}, {Id: 2}}),
		}, nil).Once()

		store := newTestStore(mockClient)
		result, err := store.ListCampaigns(context.Background(), 3)

		require.NoError(t, err)
		ids := make([]models.CampaignID, 0, len(result))
		for _, c := range result {
			ids = append(ids, c.Id)
		}
		assert.Equal(t, []models.CampaignID{0, 1, 2}, ids)
		mockClient.AssertExpectations(t)
	})

	t.Run("Storage Error", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		mockClient.On("Scan", mock.Anything, mock.Anything).Return(nil, errors.New("scan failed"))

		store := newTestStore(mockClient)
		_, err := store.ListCampaigns(context.Background(), 10)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to scan campaigns table")
		mockClient.AssertExpectations(t)
	})
}

func TestContributions(t *testing.T) {
	entries := []models.Contribution{
		{CampaignID: 4, Contributor: "alice", Amount: 30},
		{CampaignID: 4, Contributor: "bob", Amount: 20},
	}

	t.Run("List", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		mockClient.On("Query", mock.Anything, mock.MatchedBy(func(in *dynamodb.QueryInput) bool {
			return aws.ToString(in.TableName) == "contributions" && aws.ToInt32(in.Limit) == 10
		})).Return(&dynamodb.QueryOutput{Items: marshalAll(t, entries)}, nil)

		store := newTestStore(mockClient)
		result, err := store.ListContributions(context.Background(), 4, 10)

		assert.NoError(t, err)
		assert.Equal(t, entries, result)
		mockClient.AssertExpectations(t)
	})

	t.Run("Get", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		av, err := attributevalue.MarshalMap(entries[0])
		require.NoError(t, err)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: av}, nil)

		store := newTestStore(mockClient)
		result, err := store.GetContribution(context.Background(), 4, "alice")

		assert.NoError(t, err)
		assert.Equal(t, &entries[0], result)
		mockClient.AssertExpectations(t)
	})

	t.Run("Get Missing", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{}, nil)

		store := newTestStore(mockClient)
		_, err := store.GetContribution(context.Background(), 4, "carol")

		assert.ErrorIs(t, err, storage.ErrNotFound)
		mockClient.AssertExpectations(t)
	})
}

func TestMetaRecords(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{}, nil)

		store := newTestStore(mockClient)
		next, err := store.NextCampaignID(context.Background())
		assert.NoError(t, err)
		assert.Equal(t, models.CampaignID(0), next)

		active, err := store.ActiveCampaigns(context.Background())
		assert.NoError(t, err)
		assert.Empty(t, active)
		mockClient.AssertExpectations(t)
	})

	t.Run("Stored", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		counter, err := attributevalue.MarshalMap(counterRecord{Key: nextIDKey, Value: 12})
		require.NoError(t, err)
		active, err := attributevalue.MarshalMap(activeRecord{Key: activeKey, IDs: []models.CampaignID{3, 9}, Version: 4})
		require.NoError(t, err)
		mockClient.On("GetItem", mock.Anything, mock.MatchedBy(func(in *dynamodb.GetItemInput) bool {
			return in.Key["key"].(*types.AttributeValueMemberS).Value == nextIDKey
		})).Return(&dynamodb.GetItemOutput{Item: counter}, nil)
		mockClient.On("GetItem", mock.Anything, mock.MatchedBy(func(in *dynamodb.GetItemInput) bool {
			return in.Key["key"].(*types.AttributeValueMemberS).Value == activeKey
		})).Return(&dynamodb.GetItemOutput{Item: active}, nil)

		store := newTestStore(mockClient)
		next, err := store.NextCampaignID(context.Background())
		assert.NoError(t, err)
		assert.Equal(t, models.CampaignID(12), next)

		ids, err := store.ActiveCampaigns(context.Background())
		assert.NoError(t, err)
		assert.Equal(t, []models.CampaignID{3, 9}, ids)
		mockClient.AssertExpectations(t)
	})
}

func TestPendingSettlements(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		mockClient.On("Query", mock.Anything, mock.MatchedBy(func(in *dynamodb.QueryInput) bool {
			return aws.ToString(in.IndexName) == settlementGSI
		})).Return(&dynamodb.QueryOutput{Items: marshalAll(t, []models.Campaign{{Id: 2}, {Id: 5}})}, nil)

		store := newTestStore(mockClient)
		ids, err := store.PendingSettlements(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, []models.CampaignID{2, 5}, ids)
		mockClient.AssertExpectations(t)
	})

	t.Run("Storage Error", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		mockClient.On("Query", mock.Anything, mock.Anything).Return(nil, errors.New("query failed"))

		store := newTestStore(mockClient)
		_, err := store.PendingSettlements(context.Background())

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to query for pending settlements")
		mockClient.AssertExpectations(t)
	})
}

func TestListLedgerEntries(t *testing.T) {
	entries := []models.LedgerEntry{{EntryID: "e-1", AccountID: "alice", Debit: 10}, {EntryID: "e-2", AccountID: "bob", Credit: 10}}

	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, LedgerTableName: "ledger"}

		mockClient.On("Query", mock.Anything, mock.MatchedBy(func(in *dynamodb.QueryInput) bool {
			return aws.ToString(in.IndexName) == ledgerGSI && !aws.ToBool(in.ScanIndexForward)
		})).Return(&dynamodb.QueryOutput{Items: marshalAll(t, entries)}, nil)

		result, err := store.ListLedgerEntries(context.Background(), 2)

		assert.NoError(t, err)
		assert.Equal(t, entries, result)
		mockClient.AssertExpectations(t)
	})

	t.Run("Storage Error", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, LedgerTableName: "ledger"}

		mockClient.On("Query", mock.Anything, mock.Anything).Return(nil, errors.New("query failed"))

		_, err := store.ListLedgerEntries(context.Background(), 2)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to query for ledger entries")
		mockClient.AssertExpectations(t)
	})
}

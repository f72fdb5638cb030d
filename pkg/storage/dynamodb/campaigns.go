package dynamodb

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/chris/campaign-escrow/pkg/models"
	"github.com/chris/campaign-escrow/pkg/storage"
)

// activeRecord is the meta item holding the active set.
type activeRecord struct {
	Key     string              `dynamodbav:"key"`
	IDs     []models.CampaignID `dynamodbav:"ids"`
	Version int64               `dynamodbav:"version"`
}

// counterRecord is the meta item holding the next campaign id.
type counterRecord struct {
	Key   string            `dynamodbav:"key"`
	Value models.CampaignID `dynamodbav:"value"`
}

func campaignKey(id models.CampaignID) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{"id": numberAV(int64(id))}
}

func contributionKey(id models.CampaignID, contributor string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"campaign_id": numberAV(int64(id)),
		"contributor": &types.AttributeValueMemberS{Value: contributor},
	}
}

func metaKey(key string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{"key": &types.AttributeValueMemberS{Value: key}}
}

// GetCampaign retrieves a campaign from DynamoDB by its ID.
func (s *Store) GetCampaign(ctx context.Context, id models.CampaignID) (*models.Campaign, error) {
	result, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(s.CampaignsTableName),
		Key:            campaignKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get campaign from DynamoDB: %w", err)
	}
	if result.Item == nil {
		return nil, fmt.Errorf("campaign %d: %w", id, storage.ErrNotFound)
	}

	var c models.Campaign
	if err := attributevalue.UnmarshalMap(result.Item, &c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal campaign: %w", err)
	}
	return &c, nil
}

// ListCampaigns scans the campaigns table and returns it in ascending id order.
func (s *Store) ListCampaigns(ctx context.Context, limit int32) ([]models.Campaign, error) {
	var campaigns []models.Campaign
	var startKey map[string]types.AttributeValue
	for {
		result, err := s.Client.Scan(ctx, &dynamodb.ScanInput{
			TableName:         aws.String(s.CampaignsTableName),
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to scan campaigns table: %w", err)
		}
		var page []models.Campaign
		if err := attributevalue.UnmarshalListOfMaps(result.Items, &page); err != nil {
			return nil, fmt.Errorf("failed to unmarshal campaigns: %w", err)
		}
		campaigns = append(campaigns, page...)
		if len(result.LastEvaluatedKey) == 0 {
			break
		}
		startKey = result.LastEvaluatedKey
	}

	slices.SortFunc(campaigns, func(a, b models.Campaign) int { return cmp.Compare(a.Id, b.Id) })
	if limit > 0 && int(limit) < len(campaigns) {
		campaigns = campaigns[:limit]
	}
	return campaigns, nil
}

// GetContribution retrieves a single contribution entry.
func (s *Store) GetContribution(ctx context.Context, id models.CampaignID, contributor string) (*models.Contribution, error) {
	result, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(s.ContributionsTableName),
		Key:            contributionKey(id, contributor),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get contribution from DynamoDB: %w", err)
	}
	if result.Item == nil {
		return nil, fmt.Errorf("contribution of %s to campaign %d: %w", contributor, id, storage.ErrNotFound)
	}

	var c models.Contribution
	if err := attributevalue.UnmarshalMap(result.Item, &c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal contribution: %w", err)
	}
	return &c, nil
}

// ListContributions queries the entries of one campaign, ordered by contributor.
func (s *Store) ListContributions(ctx context.Context, id models.CampaignID, limit int32) ([]models.Contribution, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.ContributionsTableName),
		KeyConditionExpression: aws.String("campaign_id = :id"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":id": numberAV(int64(id)),
		},
		ConsistentRead: aws.Bool(true),
	}
	if limit > 0 {
		input.Limit = aws.Int32(limit)
	}

	result, err := s.Client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query for contributions: %w", err)
	}

	var entries []models.Contribution
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal contributions: %w", err)
	}
	return entries, nil
}

// ActiveCampaigns reads the active set meta item.
func (s *Store) ActiveCampaigns(ctx context.Context) ([]models.CampaignID, error) {
	rec, err := s.getActive(ctx)
	if err != nil {
		return nil, err
	}
	return rec.IDs, nil
}

func (s *Store) getActive(ctx context.Context) (*activeRecord, error) {
	result, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(s.MetaTableName),
		Key:            metaKey(activeKey),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get active set from DynamoDB: %w", err)
	}
	rec := &activeRecord{Key: activeKey}
	if result.Item == nil {
		return rec, nil
	}
	if err := attributevalue.UnmarshalMap(result.Item, rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal active set: %w", err)
	}
	return rec, nil
}

// NextCampaignID reads the id counter. A missing counter means no campaign exists yet.
func (s *Store) NextCampaignID(ctx context.Context) (models.CampaignID, error) {
	result, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(s.MetaTableName),
		Key:            metaKey(nextIDKey),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return 0, fmt.Errorf("failed to get campaign counter from DynamoDB: %w", err)
	}
	if result.Item == nil {
		return 0, nil
	}
	var rec counterRecord
	if err := attributevalue.UnmarshalMap(result.Item, &rec); err != nil {
		return 0, fmt.Errorf("failed to unmarshal campaign counter: %w", err)
	}
	return rec.Value, nil
}

// PendingSettlements queries the sparse settlement index.
func (s *Store) PendingSettlements(ctx context.Context) ([]models.CampaignID, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.CampaignsTableName),
		IndexName:              aws.String(settlementGSI),
		KeyConditionExpression: aws.String("#pending = :pending"),
		ExpressionAttributeNames: map[string]string{
			"#pending": settlePendingAttr,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pending": &types.AttributeValueMemberS{Value: settlePendingValue},
		},
	}

	result, err := s.Client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query for pending settlements: %w", err)
	}

	var campaigns []models.Campaign
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &campaigns); err != nil {
		return nil, fmt.Errorf("failed to unmarshal pending settlements: %w", err)
	}
	ids := make([]models.CampaignID, 0, len(campaigns))
	for _, c := range campaigns {
		ids = append(ids, c.Id)
	}
	return ids, nil
}

package dynamodb

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/chris/campaign-escrow/pkg/models"
	"github.com/chris/campaign-escrow/pkg/storage"
)

func walletKey(userID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{"user_id": &types.AttributeValueMemberS{Value: userID}}
}

// CreateWallet opens an escrow account. Nothing is held in reserve at creation.
func (s *Store) CreateWallet(ctx context.Context, wallet *models.Wallet) (*models.Wallet, error) {
	if wallet.Balance < 0 {
		return nil, fmt.Errorf("wallet for user ID %s has negative balance %d", wallet.UserId, wallet.Balance)
	}
	wallet.Reserved = 0

	item, err := attributevalue.MarshalMap(wallet)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal wallet: %w", err)
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.WalletsTableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(user_id)"),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return nil, fmt.Errorf("wallet for user ID %s already exists: %w", wallet.UserId, storage.ErrWalletExists)
		}
		return nil, fmt.Errorf("failed to create wallet in DynamoDB: %w", err)
	}

	return wallet, nil
}

// DeleteWallet closes an escrow account. Accounts with funds in escrow stay open.
func (s *Store) DeleteWallet(ctx context.Context, userID string) error {
	_, err := s.Client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:                aws.String(s.WalletsTableName),
		Key:                      walletKey(userID),
		ConditionExpression:      aws.String("attribute_exists(user_id) AND #reserved = :zero"),
		ExpressionAttributeNames: map[string]string{"#reserved": "reserved"},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":zero": numberAV(0),
		},
		ReturnValuesOnConditionCheckFailure: types.ReturnValuesOnConditionCheckFailureAllOld,
	})
	if err == nil {
		return nil
	}

	var ccf *types.ConditionalCheckFailedException
	if !errors.As(err, &ccf) {
		return fmt.Errorf("failed to delete wallet from DynamoDB: %w", err)
	}
	// The old item comes back only when the wallet exists.
	if ccf.Item == nil {
		return fmt.Errorf("wallet for user ID %s not found: %w", userID, storage.ErrWalletNotFound)
	}
	return fmt.Errorf("wallet for user ID %s holds funds in escrow: %w", userID, storage.ErrConflict)
}

// GetWallet retrieves an escrow account with a strongly consistent read.
func (s *Store) GetWallet(ctx context.Context, userID string) (*models.Wallet, error) {
	result, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(s.WalletsTableName),
		Key:            walletKey(userID),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet from DynamoDB: %w", err)
	}
	if result.Item == nil {
		return nil, fmt.Errorf("wallet for user ID %s not found: %w", userID, storage.ErrWalletNotFound)
	}

	var wallet models.Wallet
	if err := attributevalue.UnmarshalMap(result.Item, &wallet); err != nil {
		return nil, fmt.Errorf("failed to unmarshal wallet: %w", err)
	}
	return &wallet, nil
}

// ListWallets scans every page of the wallets table and orders the result by user ID.
func (s *Store) ListWallets(ctx context.Context) ([]models.Wallet, error) {
	var wallets []models.Wallet
	var startKey map[string]types.AttributeValue
	for {
		result, err := s.Client.Scan(ctx, &dynamodb.ScanInput{
			TableName:         aws.String(s.WalletsTableName),
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to scan wallets table: %w", err)
		}

		var page []models.Wallet
		if err := attributevalue.UnmarshalListOfMaps(result.Items, &page); err != nil {
			return nil, fmt.Errorf("failed to unmarshal wallets: %w", err)
		}
		wallets = append(wallets, page...)

		if len(result.LastEvaluatedKey) == 0 {
			break
		}
		startKey = result.LastEvaluatedKey
	}

	slices.SortFunc(wallets, func(a, b models.Wallet) int { return cmp.Compare(a.UserId, b.UserId) })
	return wallets, nil
}

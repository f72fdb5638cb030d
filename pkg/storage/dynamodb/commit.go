package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"

	"github.com/chris/campaign-escrow/pkg/activeset"
	"github.com/chris/campaign-escrow/pkg/escrow"
	"github.com/chris/campaign-escrow/pkg/models"
	"github.com/chris/campaign-escrow/pkg/storage"
)

type itemKind int

const (
	itemCampaign itemKind = iota
	itemCounter
	itemActive
	itemContribution
	itemWallet
	itemLedger
)

// walletNeed is the minimum stored balance and reserve a wallet update requires.
type walletNeed struct {
	balance  int64
	reserved int64
}

// transaction accumulates the items of one TransactWriteItems call together
// with what each item is, so cancellation reasons can be mapped back.
type transaction struct {
	items []types.TransactWriteItem
	kinds []itemKind
	needs []walletNeed
}

func (t *transaction) add(kind itemKind, item types.TransactWriteItem) {
	t.items = append(t.items, item)
	t.kinds = append(t.kinds, kind)
	t.needs = append(t.needs, walletNeed{})
}

// Commit applies the changeset as a single DynamoDB transaction.
func (s *Store) Commit(ctx context.Context, cs *storage.Changeset) error {
	tx := &transaction{}
	if err := s.buildCounter(tx, cs); err != nil {
		return err
	}
	if err := s.buildCampaign(tx, cs.Campaign); err != nil {
		return err
	}
	if err := s.buildActive(ctx, tx, cs); err != nil {
		return err
	}
	if err := s.buildContributions(tx, cs); err != nil {
		return err
	}
	if err := s.buildMoves(tx, cs.Moves, time.Now().UTC()); err != nil {
		return err
	}

	if len(tx.items) == 0 {
		return nil
	}
	if len(tx.items) > maxTransactItems {
		return fmt.Errorf("changeset has %d items, more than the %d a transaction allows", len(tx.items), maxTransactItems)
	}

	slog.Log(ctx, slog.LevelDebug, "committing changeset", "items", len(tx.items))

	_, err := s.Client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: tx.items,
	})
	if err != nil {
		return tx.mapError(err)
	}
	return nil
}

func (s *Store) buildCounter(tx *transaction, cs *storage.Changeset) error {
	if cs.NextCampaignID == nil {
		return nil
	}
	next := *cs.NextCampaignID
	if next == 0 || (cs.Campaign != nil && cs.Campaign.Id != next-1) {
		return fmt.Errorf("next campaign id %d does not follow campaign: %w", next, storage.ErrConflict)
	}
	item, err := attributevalue.MarshalMap(counterRecord{Key: nextIDKey, Value: next})
	if err != nil {
		return fmt.Errorf("failed to marshal campaign counter: %w", err)
	}
	tx.add(itemCounter, types.TransactWriteItem{
		Put: &types.Put{
			TableName:           aws.String(s.MetaTableName),
			Item:                item,
			ConditionExpression: aws.String("attribute_not_exists(#key) OR #value = :current"),
			ExpressionAttributeNames: map[string]string{
				"#key":   "key",
				"#value": "value",
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":current": numberAV(int64(next - 1)),
			},
		},
	})
	return nil
}

func (s *Store) buildCampaign(tx *transaction, c *models.Campaign) error {
	if c == nil {
		return nil
	}
	item, err := attributevalue.MarshalMap(c)
	if err != nil {
		return fmt.Errorf("failed to marshal campaign: %w", err)
	}
	if c.Status == models.SUCCESS && !c.SettlementDone {
		item[settlePendingAttr] = &types.AttributeValueMemberS{Value: settlePendingValue}
	}

	put := &types.Put{
		TableName: aws.String(s.CampaignsTableName),
		Item:      item,
	}
	if c.Version == 1 {
		put.ConditionExpression = aws.String("attribute_not_exists(id)")
	} else {
		put.ConditionExpression = aws.String("#version = :prev")
		put.ExpressionAttributeNames = map[string]string{"#version": "version"}
		put.ExpressionAttributeValues = map[string]types.AttributeValue{
			":prev": numberAV(c.Version - 1),
		}
	}
	tx.add(itemCampaign, types.TransactWriteItem{Put: put})
	return nil
}

func (s *Store) buildActive(ctx context.Context, tx *transaction, cs *storage.Changeset) error {
	if cs.ActiveInsert == nil && cs.ActiveRemove == nil {
		return nil
	}
	rec, err := s.getActive(ctx)
	if err != nil {
		return err
	}
	set := activeset.FromIDs(cs.ActiveCapacity, rec.IDs)
	if cs.ActiveRemove != nil {
		set.Remove(*cs.ActiveRemove)
	}
	if cs.ActiveInsert != nil {
		if err := set.Insert(*cs.ActiveInsert); err != nil {
			return storage.ErrActiveSetFull
		}
	}

	item, err := attributevalue.MarshalMap(activeRecord{Key: activeKey, IDs: set.IDs(), Version: rec.Version + 1})
	if err != nil {
		return fmt.Errorf("failed to marshal active set: %w", err)
	}
	tx.add(itemActive, types.TransactWriteItem{
		Put: &types.Put{
			TableName:           aws.String(s.MetaTableName),
			Item:                item,
			ConditionExpression: aws.String("attribute_not_exists(#key) OR #version = :version"),
			ExpressionAttributeNames: map[string]string{
				"#key":     "key",
				"#version": "version",
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":version": numberAV(rec.Version),
			},
		},
	})
	return nil
}

func (s *Store) buildContributions(tx *transaction, cs *storage.Changeset) error {
	for _, w := range cs.Contributions {
		item, err := attributevalue.MarshalMap(w.Contribution)
		if err != nil {
			return fmt.Errorf("failed to marshal contribution: %w", err)
		}
		cond := "#amount = :prev"
		if w.Previous == 0 {
			cond = "attribute_not_exists(contributor) OR #amount = :prev"
		}
		tx.add(itemContribution, types.TransactWriteItem{
			Put: &types.Put{
				TableName:                aws.String(s.ContributionsTableName),
				Item:                     item,
				ConditionExpression:      aws.String(cond),
				ExpressionAttributeNames: map[string]string{"#amount": "amount"},
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":prev": numberAV(w.Previous),
				},
			},
		})
	}

	for _, r := range cs.Removed {
		tx.add(itemContribution, types.TransactWriteItem{
			Delete: &types.Delete{
				TableName:                aws.String(s.ContributionsTableName),
				Key:                      contributionKey(r.CampaignID, r.Contributor),
				ConditionExpression:      aws.String("#amount = :amount"),
				ExpressionAttributeNames: map[string]string{"#amount": "amount"},
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":amount": numberAV(r.Amount),
				},
			},
		})
	}
	return nil
}

// buildMoves folds the escrow moves into one conditional update per wallet and
// one put per ledger leg.
func (s *Store) buildMoves(tx *transaction, moves []models.EscrowMove, now time.Time) error {
	if len(moves) == 0 {
		return nil
	}
	for _, m := range moves {
		if err := escrow.Validate(m); err != nil {
			return err
		}
	}

	deltas := escrow.Net(moves)
	accounts := make([]string, 0, len(deltas))
	for account := range deltas {
		accounts = append(accounts, account)
	}
	slices.Sort(accounts)

	for _, account := range accounts {
		d := deltas[account]
		need := walletNeed{balance: -d.MinBalance, reserved: -d.MinReserved}
		tx.add(itemWallet, types.TransactWriteItem{
			Update: &types.Update{
				TableName:           aws.String(s.WalletsTableName),
				Key:                 walletKey(account),
				UpdateExpression:    aws.String("SET #balance = #balance + :db, #reserved = #reserved + :dr, #version = #version + :inc"),
				ConditionExpression: aws.String("attribute_exists(user_id) AND #balance >= :needBalance AND #reserved >= :needReserved"),
				ExpressionAttributeNames: map[string]string{
					"#balance":  "balance",
					"#reserved": "reserved",
					"#version":  "version",
				},
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":db":           numberAV(d.Balance),
					":dr":           numberAV(d.Reserved),
					":inc":          numberAV(1),
					":needBalance":  numberAV(need.balance),
					":needReserved": numberAV(need.reserved),
				},
				ReturnValuesOnConditionCheckFailure: types.ReturnValuesOnConditionCheckFailureAllOld,
			},
		})
		tx.needs[len(tx.needs)-1] = need
	}

	txID := uuid.New().String()
	for _, m := range moves {
		for _, entry := range escrow.Entries(m, txID, now) {
			item, err := attributevalue.MarshalMap(entry)
			if err != nil {
				return fmt.Errorf("failed to marshal ledger entry: %w", err)
			}
			tx.add(itemLedger, types.TransactWriteItem{
				Put: &types.Put{
					TableName:           aws.String(s.LedgerTableName),
					Item:                item,
					ConditionExpression: aws.String("attribute_not_exists(entry_id)"),
				},
			})
		}
	}
	return nil
}

// mapError translates a failed TransactWriteItems call into storage errors.
func (t *transaction) mapError(err error) error {
	var tce *types.TransactionCanceledException
	if !errors.As(err, &tce) {
		return fmt.Errorf("failed to execute transaction: %w", err)
	}

	var conflict bool
	for i, reason := range tce.CancellationReasons {
		code := aws.ToString(reason.Code)
		if code == "" || code == "None" || i >= len(t.kinds) {
			continue
		}
		if code != "ConditionalCheckFailed" {
			conflict = true
			continue
		}
		if t.kinds[i] != itemWallet {
			conflict = true
			continue
		}
		if reason.Item == nil {
			return storage.ErrWalletNotFound
		}
		var w models.Wallet
		if err := attributevalue.UnmarshalMap(reason.Item, &w); err != nil {
			return fmt.Errorf("failed to unmarshal wallet: %w", err)
		}
		if w.Reserved < t.needs[i].reserved {
			return fmt.Errorf("%w: %s holds %d", storage.ErrReservedUnderflow, w.UserId, w.Reserved)
		}
		return storage.ErrInsufficientFunds
	}
	if conflict {
		return storage.ErrConflict
	}
	return fmt.Errorf("failed to execute transaction: %w", err)
}

package badger

import (
	"context"
	"errors"
	"fmt"
	"time"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"github.com/chris/campaign-escrow/pkg/activeset"
	"github.com/chris/campaign-escrow/pkg/escrow"
	"github.com/chris/campaign-escrow/pkg/models"
	"github.com/chris/campaign-escrow/pkg/storage"
)

func campaignKey(id models.CampaignID) string {
	return fmt.Sprintf("%s%010d", campaignPrefix, id)
}

func settleKey(id models.CampaignID) string {
	return fmt.Sprintf("%s%010d", settlePrefix, id)
}

func contributionsPrefix(id models.CampaignID) string {
	return fmt.Sprintf("%s%010d/", contributionPrefix, id)
}

func contributionKey(id models.CampaignID, contributor string) string {
	return contributionsPrefix(id) + contributor
}

// GetCampaign retrieves a campaign by id.
func (s *Store) GetCampaign(ctx context.Context, id models.CampaignID) (*models.Campaign, error) {
	var c models.Campaign
	err := s.db.View(func(txn *badger.Txn) error {
		found, err := getJSON(txn, campaignKey(id), &c)
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("campaign %d: %w", id, storage.ErrNotFound)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListCampaigns returns campaigns in ascending id order.
func (s *Store) ListCampaigns(ctx context.Context, limit int32) ([]models.Campaign, error) {
	var out []models.Campaign
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		out, err = scanJSON[models.Campaign](txn, campaignPrefix, limit, false)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list campaigns: %w", err)
	}
	return out, nil
}

// GetContribution retrieves a single contribution entry.
func (s *Store) GetContribution(ctx context.Context, id models.CampaignID, contributor string) (*models.Contribution, error) {
	var c models.Contribution
	err := s.db.View(func(txn *badger.Txn) error {
		found, err := getJSON(txn, contributionKey(id, contributor), &c)
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("contribution of %s to campaign %d: %w", contributor, id, storage.ErrNotFound)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListContributions returns up to limit entries of one campaign.
func (s *Store) ListContributions(ctx context.Context, id models.CampaignID, limit int32) ([]models.Contribution, error) {
	var out []models.Contribution
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		out, err = scanJSON[models.Contribution](txn, contributionsPrefix(id), limit, false)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list contributions: %w", err)
	}
	return out, nil
}

// ActiveCampaigns returns the persisted active set.
func (s *Store) ActiveCampaigns(ctx context.Context) ([]models.CampaignID, error) {
	var ids []models.CampaignID
	err := s.db.View(func(txn *badger.Txn) error {
		_, err := getJSON(txn, activeKey, &ids)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read active set: %w", err)
	}
	return ids, nil
}

// NextCampaignID returns the id the next campaign will receive.
func (s *Store) NextCampaignID(ctx context.Context) (models.CampaignID, error) {
	var next models.CampaignID
	err := s.db.View(func(txn *badger.Txn) error {
		_, err := getJSON(txn, nextIDKey, &next)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("failed to read next campaign id: %w", err)
	}
	return next, nil
}

// PendingSettlements returns successful campaigns with proceeds still in escrow.
func (s *Store) PendingSettlements(ctx context.Context) ([]models.CampaignID, error) {
	var ids []models.CampaignID
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		ids, err = scanJSON[models.CampaignID](txn, settlePrefix, 0, false)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list pending settlements: %w", err)
	}
	return ids, nil
}

// Commit applies the changeset in a single badger transaction.
func (s *Store) Commit(ctx context.Context, cs *storage.Changeset) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := s.db.Update(func(txn *badger.Txn) error {
		return s.apply(txn, cs)
	})
	if errors.Is(err, badger.ErrConflict) {
		return storage.ErrConflict
	}
	return err
}

func (s *Store) apply(txn *badger.Txn, cs *storage.Changeset) error {
	now := time.Now().UTC()

	if cs.NextCampaignID != nil {
		var current models.CampaignID
		if _, err := getJSON(txn, nextIDKey, &current); err != nil {
			return err
		}
		if *cs.NextCampaignID != current+1 || (cs.Campaign != nil && cs.Campaign.Id != current) {
			return fmt.Errorf("next campaign id moved: %w", storage.ErrConflict)
		}
		if err := setJSON(txn, nextIDKey, *cs.NextCampaignID); err != nil {
			return err
		}
	}

	if c := cs.Campaign; c != nil {
		var stored models.Campaign
		found, err := getJSON(txn, campaignKey(c.Id), &stored)
		if err != nil {
			return err
		}
		if (c.Version == 1 && found) || (c.Version != 1 && (!found || stored.Version != c.Version-1)) {
			return fmt.Errorf("campaign %d version %d: %w", c.Id, c.Version, storage.ErrConflict)
		}
		if err := setJSON(txn, campaignKey(c.Id), c); err != nil {
			return err
		}
		if c.Status == models.SUCCESS && !c.SettlementDone {
			err = setJSON(txn, settleKey(c.Id), c.Id)
		} else {
			err = txn.Delete([]byte(settleKey(c.Id)))
		}
		if err != nil {
			return fmt.Errorf("failed to update settlement index: %w", err)
		}
	}

	if cs.ActiveInsert != nil || cs.ActiveRemove != nil {
		var ids []models.CampaignID
		if _, err := getJSON(txn, activeKey, &ids); err != nil {
			return err
		}
		set := activeset.FromIDs(cs.ActiveCapacity, ids)
		if cs.ActiveRemove != nil {
			set.Remove(*cs.ActiveRemove)
		}
		if cs.ActiveInsert != nil {
			if err := set.Insert(*cs.ActiveInsert); err != nil {
				return storage.ErrActiveSetFull
			}
		}
		if err := setJSON(txn, activeKey, set.IDs()); err != nil {
			return err
		}
	}

	for _, w := range cs.Contributions {
		key := contributionKey(w.Contribution.CampaignID, w.Contribution.Contributor)
		var stored models.Contribution
		if _, err := getJSON(txn, key, &stored); err != nil {
			return err
		}
		if stored.Amount != w.Previous {
			return fmt.Errorf("contribution of %s changed: %w", w.Contribution.Contributor, storage.ErrConflict)
		}
		if err := setJSON(txn, key, w.Contribution); err != nil {
			return err
		}
	}

	for _, r := range cs.Removed {
		key := contributionKey(r.CampaignID, r.Contributor)
		var stored models.Contribution
		found, err := getJSON(txn, key, &stored)
		if err != nil {
			return err
		}
		if !found || stored.Amount != r.Amount {
			return fmt.Errorf("contribution of %s changed: %w", r.Contributor, storage.ErrConflict)
		}
		if err := txn.Delete([]byte(key)); err != nil {
			return fmt.Errorf("failed to delete contribution: %w", err)
		}
	}

	return s.applyMoves(txn, cs.Moves, now)
}

func (s *Store) applyMoves(txn *badger.Txn, moves []models.EscrowMove, now time.Time) error {
	if len(moves) == 0 {
		return nil
	}
	wallets := make(map[string]*models.Wallet)
	load := func(userID string) error {
		if _, ok := wallets[userID]; ok {
			return nil
		}
		var w models.Wallet
		found, err := getJSON(txn, walletKey(userID), &w)
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("%w: %s", storage.ErrWalletNotFound, userID)
		}
		wallets[userID] = &w
		return nil
	}

	txID := uuid.New().String()
	for _, m := range moves {
		if err := load(m.Account); err != nil {
			return err
		}
		if m.Kind == models.TRANSFER {
			if err := load(m.To); err != nil {
				return err
			}
		}
		if err := escrow.Apply(wallets, m); err != nil {
			return err
		}
		for _, entry := range escrow.Entries(m, txID, now) {
			if err := setJSON(txn, ledgerKey(entry), entry); err != nil {
				return err
			}
		}
	}

	for _, w := range wallets {
		w.Version++
		if err := setJSON(txn, walletKey(w.UserId), w); err != nil {
			return err
		}
	}
	return nil
}

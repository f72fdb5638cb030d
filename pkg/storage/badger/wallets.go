package badger

import (
	"context"
	"fmt"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/chris/campaign-escrow/pkg/models"
	"github.com/chris/campaign-escrow/pkg/storage"
)

func walletKey(userID string) string {
	return walletPrefix + userID
}

// CreateWallet stores a new wallet. It fails if the user already has one.
func (s *Store) CreateWallet(ctx context.Context, wallet *models.Wallet) (*models.Wallet, error) {
	err := s.db.Update(func(txn *badger.Txn) error {
		var existing models.Wallet
		found, err := getJSON(txn, walletKey(wallet.UserId), &existing)
		if err != nil {
			return err
		}
		if found {
			return fmt.Errorf("wallet for user ID %s: %w", wallet.UserId, storage.ErrWalletExists)
		}
		return setJSON(txn, walletKey(wallet.UserId), wallet)
	})
	if err != nil {
		return nil, err
	}
	return wallet, nil
}

// GetWallet retrieves a user's wallet by their user ID.
func (s *Store) GetWallet(ctx context.Context, userID string) (*models.Wallet, error) {
	var w models.Wallet
	err := s.db.View(func(txn *badger.Txn) error {
		found, err := getJSON(txn, walletKey(userID), &w)
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("wallet for user ID %s: %w", userID, storage.ErrWalletNotFound)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// DeleteWallet removes a wallet. Wallets holding reserved funds cannot be deleted.
func (s *Store) DeleteWallet(ctx context.Context, userID string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		var w models.Wallet
		found, err := getJSON(txn, walletKey(userID), &w)
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("wallet for user ID %s: %w", userID, storage.ErrWalletNotFound)
		}
		if w.Reserved > 0 {
			return fmt.Errorf("wallet for user ID %s holds %d in escrow: %w", userID, w.Reserved, storage.ErrConflict)
		}
		if err := txn.Delete([]byte(walletKey(userID))); err != nil {
			return fmt.Errorf("failed to delete wallet: %w", err)
		}
		return nil
	})
}

// ListWallets retrieves all wallets.
func (s *Store) ListWallets(ctx context.Context) ([]models.Wallet, error) {
	var out []models.Wallet
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		out, err = scanJSON[models.Wallet](txn, walletPrefix, 0, false)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list wallets: %w", err)
	}
	return out, nil
}

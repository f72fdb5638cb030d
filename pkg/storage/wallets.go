package storage

import (
	"context"

	"github.com/chris/campaign-escrow/pkg/models"
)

// WalletStore defines the interface for managing escrow accounts.
type WalletStore interface {
	// GetWallet returns ErrWalletNotFound for an unknown user.
	GetWallet(ctx context.Context, userID string) (*models.Wallet, error)

	// CreateWallet opens an account with nothing reserved. It returns
	// ErrWalletExists if the user already has one.
	CreateWallet(ctx context.Context, wallet *models.Wallet) (*models.Wallet, error)

	// DeleteWallet closes an account. It returns ErrConflict while funds are
	// held in escrow.
	DeleteWallet(ctx context.Context, userID string) error

	// ListWallets returns every account.
	ListWallets(ctx context.Context) ([]models.Wallet, error)
}

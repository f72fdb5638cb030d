package storage

import (
	"context"

	"github.com/chris/campaign-escrow/pkg/models"
)

// LedgerReader reads the escrow ledger. Every escrow move writes one entry
// per affected account.
type LedgerReader interface {
	// ListLedgerEntries returns up to limit entries, newest first.
	ListLedgerEntries(ctx context.Context, limit int32) ([]models.LedgerEntry, error)
}

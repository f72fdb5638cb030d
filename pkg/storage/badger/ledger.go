package badger

import (
	"context"
	"fmt"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/chris/campaign-escrow/pkg/models"
)

// ledgerKey orders entries by time so the newest can be read by reverse iteration.
func ledgerKey(e models.LedgerEntry) string {
	return fmt.Sprintf("%s%020d/%s", ledgerPrefix, e.Timestamp.UnixNano(), e.EntryID)
}

// ListLedgerEntries returns the most recent entries, newest first.
func (s *Store) ListLedgerEntries(ctx context.Context, limit int32) ([]models.LedgerEntry, error) {
	var out []models.LedgerEntry
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		out, err = scanJSON[models.LedgerEntry](txn, ledgerPrefix, limit, true)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger entries: %w", err)
	}
	return out, nil
}

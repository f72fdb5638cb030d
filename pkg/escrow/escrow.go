// Package escrow implements the arithmetic of the reserve, release and
// transfer-reserved primitives over escrow accounts, and the ledger legs
// recorded for each movement. Backends apply it inside their commit.
package escrow

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/chris/campaign-escrow/pkg/models"
	"github.com/chris/campaign-escrow/pkg/storage"
)

// LedgerPartition is the GSI partition key shared by all ledger entries.
const LedgerPartition = "LEDGER_ENTRIES"

// SaturatingAdd returns a+b clamped to the int64 range.
func SaturatingAdd(a, b int64) int64 {
	if b > 0 && a > math.MaxInt64-b {
		return math.MaxInt64
	}
	if b < 0 && a < math.MinInt64-b {
		return math.MinInt64
	}
	return a + b
}

// Validate rejects moves that no backend should apply.
func Validate(move models.EscrowMove) error {
	if move.Amount <= 0 {
		return fmt.Errorf("escrow move %s for %s has non-positive amount %d", move.Kind, move.Account, move.Amount)
	}
	switch move.Kind {
	case models.RESERVE, models.RELEASE:
	case models.TRANSFER:
		if move.To == "" {
			return fmt.Errorf("escrow transfer from %s has no destination", move.Account)
		}
	default:
		return fmt.Errorf("unknown escrow move kind %q", move.Kind)
	}
	return nil
}

// Apply performs move against the given wallets, keyed by user id. Nothing is
// mutated when it returns an error.
func Apply(wallets map[string]*models.Wallet, move models.EscrowMove) error {
	if err := Validate(move); err != nil {
		return err
	}
	from, ok := wallets[move.Account]
	if !ok {
		return fmt.Errorf("%w: %s", storage.ErrWalletNotFound, move.Account)
	}

	switch move.Kind {
	case models.RESERVE:
		if from.Balance < move.Amount {
			return storage.ErrInsufficientFunds
		}
		from.Balance -= move.Amount
		from.Reserved = SaturatingAdd(from.Reserved, move.Amount)
	case models.RELEASE:
		if from.Reserved < move.Amount {
			return fmt.Errorf("%w: %s holds %d, release of %d", storage.ErrReservedUnderflow, move.Account, from.Reserved, move.Amount)
		}
		from.Reserved -= move.Amount
		from.Balance = SaturatingAdd(from.Balance, move.Amount)
	case models.TRANSFER:
		to, ok := wallets[move.To]
		if !ok {
			return fmt.Errorf("%w: %s", storage.ErrWalletNotFound, move.To)
		}
		if from.Reserved < move.Amount {
			return fmt.Errorf("%w: %s holds %d, transfer of %d", storage.ErrReservedUnderflow, move.Account, from.Reserved, move.Amount)
		}
		from.Reserved -= move.Amount
		to.Balance = SaturatingAdd(to.Balance, move.Amount)
	}
	return nil
}

// Delta is the net effect of a sequence of moves on one account.
// MinBalance and MinReserved are the lowest running deltas reached, so the
// sequence is feasible iff Balance+MinBalance >= 0 and Reserved+MinReserved >= 0
// for the stored values.
type Delta struct {
	Balance     int64
	Reserved    int64
	MinBalance  int64
	MinReserved int64
}

// Net folds moves into per-account deltas.
func Net(moves []models.EscrowMove) map[string]*Delta {
	deltas := make(map[string]*Delta)
	get := func(account string) *Delta {
		d, ok := deltas[account]
		if !ok {
			d = &Delta{}
			deltas[account] = d
		}
		return d
	}
	for _, m := range moves {
		from := get(m.Account)
		switch m.Kind {
		case models.RESERVE:
			from.Balance -= m.Amount
			from.Reserved += m.Amount
		case models.RELEASE:
			from.Reserved -= m.Amount
			from.Balance += m.Amount
		case models.TRANSFER:
			from.Reserved -= m.Amount
			to := get(m.To)
			to.Balance += m.Amount
			to.MinBalance = min(to.MinBalance, to.Balance)
		}
		from.MinBalance = min(from.MinBalance, from.Balance)
		from.MinReserved = min(from.MinReserved, from.Reserved)
	}
	return deltas
}

// Entries returns the ledger legs recording move.
func Entries(move models.EscrowMove, txID string, now time.Time) []models.LedgerEntry {
	entry := func(account string, debit, credit int64, desc string) models.LedgerEntry {
		return models.LedgerEntry{
			EntryID:       uuid.New().String(),
			TransactionID: txID,
			AccountID:     account,
			Debit:         debit,
			Credit:        credit,
			Description:   desc,
			Timestamp:     now,
			GSI1PK:        LedgerPartition,
		}
	}

	switch move.Kind {
	case models.RESERVE:
		return []models.LedgerEntry{entry(move.Account, move.Amount, 0, fmt.Sprintf("Reserve for %s", move.Reference))}
	case models.RELEASE:
		return []models.LedgerEntry{entry(move.Account, 0, move.Amount, fmt.Sprintf("Release for %s", move.Reference))}
	case models.TRANSFER:
		desc := fmt.Sprintf("Settlement for %s", move.Reference)
		return []models.LedgerEntry{
			entry(move.Account, move.Amount, 0, desc),
			entry(move.To, 0, move.Amount, desc),
		}
	}
	return nil
}

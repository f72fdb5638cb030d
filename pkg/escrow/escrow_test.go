package escrow

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chris/campaign-escrow/pkg/models"
	"github.com/chris/campaign-escrow/pkg/storage"
)

func wallets() map[string]*models.Wallet {
	return map[string]*models.Wallet{
		"alice": {UserId: "alice", Balance: 100},
		"bob":   {UserId: "bob", Balance: 50, Reserved: 30},
	}
}

func TestApply(t *testing.T) {
	t.Run("Reserve", func(t *testing.T) {
		w := wallets()
		require.NoError(t, Apply(w, models.EscrowMove{Kind: models.RESERVE, Account: "alice", Amount: 40}))
		assert.Equal(t, int64(60), w["alice"].Balance)
		assert.Equal(t, int64(40), w["alice"].Reserved)
	})

	t.Run("Reserve Insufficient Funds", func(t *testing.T) {
		w := wallets()
		err := Apply(w, models.EscrowMove{Kind: models.RESERVE, Account: "alice", Amount: 101})
		assert.ErrorIs(t, err, storage.ErrInsufficientFunds)
		assert.Equal(t, int64(100), w["alice"].Balance)
		assert.Zero(t, w["alice"].Reserved)
	})

	t.Run("Release", func(t *testing.T) {
		w := wallets()
		require.NoError(t, Apply(w, models.EscrowMove{Kind: models.RELEASE, Account: "bob", Amount: 30}))
		assert.Equal(t, int64(80), w["bob"].Balance)
		assert.Zero(t, w["bob"].Reserved)
	})

	t.Run("Release Underflow", func(t *testing.T) {
		w := wallets()
		err := Apply(w, models.EscrowMove{Kind: models.RELEASE, Account: "bob", Amount: 31})
		assert.ErrorIs(t, err, storage.ErrReservedUnderflow)
		assert.Equal(t, int64(30), w["bob"].Reserved)
	})

	t.Run("Transfer Reserved", func(t *testing.T) {
		w := wallets()
		require.NoError(t, Apply(w, models.EscrowMove{Kind: models.TRANSFER, Account: "bob", To: "alice", Amount: 20}))
		assert.Equal(t, int64(10), w["bob"].Reserved)
		assert.Equal(t, int64(50), w["bob"].Balance)
		assert.Equal(t, int64(120), w["alice"].Balance)
	})

	t.Run("Unknown Wallet", func(t *testing.T) {
		w := wallets()
		err := Apply(w, models.EscrowMove{Kind: models.TRANSFER, Account: "bob", To: "carol", Amount: 1})
		assert.ErrorIs(t, err, storage.ErrWalletNotFound)
		assert.Equal(t, int64(30), w["bob"].Reserved)
	})

	t.Run("Invalid Moves", func(t *testing.T) {
		w := wallets()
		assert.Error(t, Apply(w, models.EscrowMove{Kind: models.RESERVE, Account: "alice", Amount: 0}))
		assert.Error(t, Apply(w, models.EscrowMove{Kind: models.TRANSFER, Account: "bob", Amount: 1}))
		assert.Error(t, Apply(w, models.EscrowMove{Kind: "BURN", Account: "alice", Amount: 1}))
	})
}

func TestNet(t *testing.T) {
	moves := []models.EscrowMove{
		{Kind: models.RESERVE, Account: "alice", Amount: 10},
		{Kind: models.RELEASE, Account: "alice", Amount: 4},
		{Kind: models.TRANSFER, Account: "bob", To: "alice", Amount: 7},
		{Kind: models.TRANSFER, Account: "bob", To: "alice", Amount: 3},
	}
	deltas := Net(moves)

	require.Len(t, deltas, 2)
	assert.Equal(t, Delta{Balance: 4, Reserved: 6, MinBalance: -10, MinReserved: 0}, *deltas["alice"])
	assert.Equal(t, Delta{Balance: 0, Reserved: -10, MinBalance: 0, MinReserved: -10}, *deltas["bob"])
}

func TestEntries(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	reserve := Entries(models.EscrowMove{Kind: models.RESERVE, Account: "alice", Amount: 5, Reference: "campaign 1"}, "tx", now)
	require.Len(t, reserve, 1)
	assert.Equal(t, int64(5), reserve[0].Debit)
	assert.Equal(t, LedgerPartition, reserve[0].GSI1PK)
	assert.Equal(t, "tx", reserve[0].TransactionID)

	transfer := Entries(models.EscrowMove{Kind: models.TRANSFER, Account: "bob", To: "alice", Amount: 5}, "tx", now)
	require.Len(t, transfer, 2)
	assert.Equal(t, "bob", transfer[0].AccountID)
	assert.Equal(t, int64(5), transfer[0].Debit)
	assert.Equal(t, "alice", transfer[1].AccountID)
	assert.Equal(t, int64(5), transfer[1].Credit)
	assert.NotEqual(t, transfer[0].EntryID, transfer[1].EntryID)
}

func TestSaturatingAdd(t *testing.T) {
	assert.Equal(t, int64(math.MaxInt64), SaturatingAdd(math.MaxInt64-1, 5))
	assert.Equal(t, int64(math.MinInt64), SaturatingAdd(math.MinInt64+1, -5))
	assert.Equal(t, int64(7), SaturatingAdd(3, 4))
}

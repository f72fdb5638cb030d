package badger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chris/campaign-escrow/pkg/models"
	"github.com/chris/campaign-escrow/pkg/storage"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	s, err := New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func seedWallet(t *testing.T, s *Store, userID string, balance int64) {
	t.Helper()
	_, err := s.CreateWallet(context.Background(), &models.Wallet{UserId: userID, Balance: balance})
	require.NoError(t, err)
}

func idPtr(id models.CampaignID) *models.CampaignID { return &id }

func createChangeset(id models.CampaignID, owner string, deposit int64) *storage.Changeset {
	return &storage.Changeset{
		Campaign: &models.Campaign{
			Id:      id,
			Owner:   owner,
			Start:   time.Unix(100, 0).UTC(),
			End:     time.Unix(200, 0).UTC(),
			SoftCap: 10,
			HardCap: 20,
			Deposit: deposit,
			Status:  models.UPCOMING,
			Version: 1,
		},
		NextCampaignID: idPtr(id + 1),
		ActiveInsert:   idPtr(id),
		ActiveCapacity: 2,
		Moves:          []models.EscrowMove{{Kind: models.RESERVE, Account: owner, Amount: deposit, Reference: "campaign"}},
	}
}

func TestCommit(t *testing.T) {
	ctx := context.Background()

	t.Run("Create", func(t *testing.T) {
		s := newStore(t)
		seedWallet(t, s, "owner", 500)

		require.NoError(t, s.Commit(ctx, createChangeset(0, "owner", 100)))

		c, err := s.GetCampaign(ctx, 0)
		require.NoError(t, err)
		assert.Equal(t, "owner", c.Owner)

		next, err := s.NextCampaignID(ctx)
		require.NoError(t, err)
		assert.Equal(t, models.CampaignID(1), next)

		active, err := s.ActiveCampaigns(ctx)
		require.NoError(t, err)
		assert.Equal(t, []models.CampaignID{0}, active)

		w, err := s.GetWallet(ctx, "owner")
		require.NoError(t, err)
		assert.Equal(t, int64(400), w.Balance)
		assert.Equal(t, int64(100), w.Reserved)
		assert.Equal(t, int64(1), w.Version)

		entries, err := s.ListLedgerEntries(ctx, 10)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, int64(100), entries[0].Debit)
	})

	t.Run("Insufficient Funds Leaves Nothing Behind", func(t *testing.T) {
		s := newStore(t)
		seedWallet(t, s, "owner", 50)

		err := s.Commit(ctx, createChangeset(0, "owner", 100))
		assert.ErrorIs(t, err, storage.ErrInsufficientFunds)

		_, err = s.GetCampaign(ctx, 0)
		assert.ErrorIs(t, err, storage.ErrNotFound)
		next, _ := s.NextCampaignID(ctx)
		assert.Zero(t, next)
		active, _ := s.ActiveCampaigns(ctx)
		assert.Empty(t, active)
		w, _ := s.GetWallet(ctx, "owner")
		assert.Equal(t, int64(50), w.Balance)
		entries, _ := s.ListLedgerEntries(ctx, 10)
		assert.Empty(t, entries)
	})

	t.Run("Active Set Full", func(t *testing.T) {
		s := newStore(t)
		seedWallet(t, s, "owner", 1000)
		require.NoError(t, s.Commit(ctx, createChangeset(0, "owner", 100)))
		require.NoError(t, s.Commit(ctx, createChangeset(1, "owner", 100)))

		err := s.Commit(ctx, createChangeset(2, "owner", 100))
		assert.ErrorIs(t, err, storage.ErrActiveSetFull)

		w, _ := s.GetWallet(ctx, "owner")
		assert.Equal(t, int64(800), w.Balance)
	})

	t.Run("Stale Version Conflicts", func(t *testing.T) {
		s := newStore(t)
		seedWallet(t, s, "owner", 500)
		require.NoError(t, s.Commit(ctx, createChangeset(0, "owner", 100)))

		c, _ := s.GetCampaign(ctx, 0)
		c.Version = 3
		err := s.Commit(ctx, &storage.Changeset{Campaign: c})
		assert.ErrorIs(t, err, storage.ErrConflict)

		err = s.Commit(ctx, createChangeset(0, "owner", 100))
		assert.ErrorIs(t, err, storage.ErrConflict)
	})

	t.Run("Contribution Guards", func(t *testing.T) {
		s := newStore(t)
		seedWallet(t, s, "alice", 100)
		write := storage.ContributionWrite{Contribution: models.Contribution{CampaignID: 0, Contributor: "alice", Amount: 30}}
		require.NoError(t, s.Commit(ctx, &storage.Changeset{
			Contributions: []storage.ContributionWrite{write},
			Moves:         []models.EscrowMove{{Kind: models.RESERVE, Account: "alice", Amount: 30}},
		}))

		err := s.Commit(ctx, &storage.Changeset{Contributions: []storage.ContributionWrite{write}})
		assert.ErrorIs(t, err, storage.ErrConflict)

		list, err := s.ListContributions(ctx, 0, 0)
		require.NoError(t, err)
		assert.Len(t, list, 1)

		err = s.Commit(ctx, &storage.Changeset{Removed: []models.Contribution{{CampaignID: 0, Contributor: "alice", Amount: 29}}})
		assert.ErrorIs(t, err, storage.ErrConflict)

		require.NoError(t, s.Commit(ctx, &storage.Changeset{
			Removed: []models.Contribution{write.Contribution},
			Moves:   []models.EscrowMove{{Kind: models.RELEASE, Account: "alice", Amount: 30}},
		}))
		_, err = s.GetContribution(ctx, 0, "alice")
		assert.ErrorIs(t, err, storage.ErrNotFound)
		w, _ := s.GetWallet(ctx, "alice")
		assert.Equal(t, int64(100), w.Balance)
		assert.Zero(t, w.Reserved)
	})

	t.Run("Pending Settlement Index", func(t *testing.T) {
		s := newStore(t)
		seedWallet(t, s, "owner", 500)
		require.NoError(t, s.Commit(ctx, createChangeset(0, "owner", 100)))

		c, _ := s.GetCampaign(ctx, 0)
		c.Status = models.SUCCESS
		c.Version++
		require.NoError(t, s.Commit(ctx, &storage.Changeset{Campaign: c, ActiveRemove: idPtr(0), ActiveCapacity: 2}))

		pending, err := s.PendingSettlements(ctx)
		require.NoError(t, err)
		assert.Equal(t, []models.CampaignID{0}, pending)

		c.SettlementDone = true
		c.Version++
		require.NoError(t, s.Commit(ctx, &storage.Changeset{Campaign: c}))
		pending, err = s.PendingSettlements(ctx)
		require.NoError(t, err)
		assert.Empty(t, pending)
	})

	t.Run("Cancelled Context", func(t *testing.T) {
		s := newStore(t)
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		assert.ErrorIs(t, s.Commit(cctx, &storage.Changeset{}), context.Canceled)
	})
}

func TestWallets(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	seedWallet(t, s, "alice", 10)
	_, err := s.CreateWallet(ctx, &models.Wallet{UserId: "alice"})
	assert.ErrorIs(t, err, storage.ErrWalletExists)

	seedWallet(t, s, "bob", 10)
	wallets, err := s.ListWallets(ctx)
	require.NoError(t, err)
	assert.Len(t, wallets, 2)

	require.NoError(t, s.Commit(ctx, &storage.Changeset{Moves: []models.EscrowMove{{Kind: models.RESERVE, Account: "bob", Amount: 5}}}))
	assert.ErrorIs(t, s.DeleteWallet(ctx, "bob"), storage.ErrConflict)

	require.NoError(t, s.DeleteWallet(ctx, "alice"))
	_, err = s.GetWallet(ctx, "alice")
	assert.ErrorIs(t, err, storage.ErrWalletNotFound)
	assert.ErrorIs(t, s.DeleteWallet(ctx, "alice"), storage.ErrWalletNotFound)
}

func TestListLedgerEntriesNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	seedWallet(t, s, "alice", 100)

	require.NoError(t, s.Commit(ctx, &storage.Changeset{Moves: []models.EscrowMove{{Kind: models.RESERVE, Account: "alice", Amount: 5}}}))
	time.Sleep(time.Millisecond)
	require.NoError(t, s.Commit(ctx, &storage.Changeset{Moves: []models.EscrowMove{{Kind: models.RELEASE, Account: "alice", Amount: 5}}}))

	entries, err := s.ListLedgerEntries(ctx, 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, int64(5), entries[0].Credit)
}

func TestPersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	s, err := New(WithDataDir(dir), WithGc(false))
	require.NoError(t, err)
	seedWallet(t, s, "owner", 500)
	require.NoError(t, s.Commit(ctx, createChangeset(0, "owner", 100)))
	require.NoError(t, s.Close())

	s, err = New(WithDataDir(dir), WithGc(false))
	require.NoError(t, err)
	defer s.Close()
	c, err := s.GetCampaign(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(100), c.Deposit)
}

package storage

import (
	"context"

	"github.com/chris/campaign-escrow/pkg/models"
)

// ContributionWrite upserts a contribution entry. Previous is the amount the
// writer read before computing the new one and is checked at commit time
// (zero means the entry must not exist yet).
type ContributionWrite struct {
	Contribution models.Contribution
	Previous     int64
}

// Changeset is everything a single engine operation writes. A backend applies
// it as one atomic unit or not at all.
type Changeset struct {
	// Campaign is upserted when set. Its Version must be exactly one more than
	// the stored version; Version 1 means the record must not exist yet.
	Campaign *models.Campaign

	// NextCampaignID advances the id counter. The stored counter must equal
	// Campaign.Id when it is set.
	NextCampaignID *models.CampaignID

	ActiveInsert   *models.CampaignID
	ActiveRemove   *models.CampaignID
	ActiveCapacity int

	Contributions []ContributionWrite
	// Removed entries are deleted only if their stored amount still matches.
	Removed []models.Contribution

	// Moves are escrow movements applied to wallets, each recorded in the ledger.
	Moves []models.EscrowMove
}

// CampaignReader defines the read side of the campaign store.
type CampaignReader interface {
	// GetCampaign returns ErrNotFound when the campaign does not exist.
	GetCampaign(ctx context.Context, id models.CampaignID) (*models.Campaign, error)

	// ListCampaigns returns campaigns in ascending id order.
	ListCampaigns(ctx context.Context, limit int32) ([]models.Campaign, error)

	// GetContribution returns ErrNotFound when there is no entry.
	GetContribution(ctx context.Context, id models.CampaignID, contributor string) (*models.Contribution, error)

	// ListContributions returns up to limit entries for one campaign, ordered by contributor.
	ListContributions(ctx context.Context, id models.CampaignID, limit int32) ([]models.Contribution, error)

	// ActiveCampaigns returns the active set in ascending order.
	ActiveCampaigns(ctx context.Context) ([]models.CampaignID, error)

	// NextCampaignID returns the id the next created campaign will receive.
	NextCampaignID(ctx context.Context) (models.CampaignID, error)

	// PendingSettlements returns the ids of successful campaigns whose proceeds
	// have not been fully paid out.
	PendingSettlements(ctx context.Context) ([]models.CampaignID, error)
}

// CampaignWriter applies engine changesets.
type CampaignWriter interface {
	// Commit fails with ErrConflict, ErrActiveSetFull or ErrInsufficientFunds
	// without applying anything.
	Commit(ctx context.Context, cs *Changeset) error
}

//go:generate go run github.com/vektra/mockery/v2 --name=Storage

// Storage is the full backend surface used by the service.
type Storage interface {
	CampaignReader
	CampaignWriter
	WalletStore
	LedgerReader
}

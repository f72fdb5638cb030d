package campaign

import (
	"context"

	"github.com/chris/campaign-escrow/pkg/models"
)

//go:generate go run github.com/vektra/mockery/v2 --name=Service

// Service is the caller-facing surface of the engine.
type Service interface {
	CreateCampaign(ctx context.Context, origin models.Origin, nc NewCampaign) (*models.Campaign, error)
	UpdateMetadata(ctx context.Context, origin models.Origin, id models.CampaignID, md models.Metadata) (*models.Campaign, error)
	SetCaps(ctx context.Context, origin models.Origin, id models.CampaignID, softCap, hardCap int64) (*models.Campaign, error)
	CancelCampaign(ctx context.Context, origin models.Origin, id models.CampaignID) (*models.Campaign, error)
	Contribute(ctx context.Context, origin models.Origin, id models.CampaignID, amount int64) (*models.Campaign, error)
	ClaimRefund(ctx context.Context, origin models.Origin, id models.CampaignID) (int64, error)

	GetCampaign(ctx context.Context, id models.CampaignID) (*models.Campaign, error)
	ListCampaigns(ctx context.Context, limit int32) ([]models.Campaign, error)
	ListContributions(ctx context.Context, id models.CampaignID, limit int32) ([]models.Contribution, error)
	GetContribution(ctx context.Context, id models.CampaignID, contributor string) (*models.Contribution, error)
}

// Make sure we conform to the interface
var _ Service = (*Engine)(nil)

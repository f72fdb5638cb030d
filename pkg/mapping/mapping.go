package mapping

import (
	"github.com/chris/campaign-escrow/pkg/api"
	"github.com/chris/campaign-escrow/pkg/campaign"
	"github.com/chris/campaign-escrow/pkg/models"
)

// ToApiCampaign converts a domain Campaign model to an API Campaign model.
func ToApiCampaign(c *models.Campaign) *api.Campaign {
	return &api.Campaign{
		Id:             uint32(c.Id),
		Owner:          c.Owner,
		Metadata:       ToApiMetadata(c.Metadata),
		Start:          c.Start,
		End:            c.End,
		SoftCap:        c.SoftCap,
		HardCap:        c.HardCap,
		Raised:         c.Raised,
		Deposit:        c.Deposit,
		Settled:        c.Settled,
		SettlementDone: c.SettlementDone,
		Status:         api.CampaignStatus(c.Status),
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

func ToApiMetadata(md models.Metadata) api.Metadata {
	return api.Metadata{
		Name:        md.Name,
		Description: md.Description,
		Link:        md.Link,
	}
}

// ToDomainMetadata converts API metadata to the domain model.
func ToDomainMetadata(md *api.Metadata) models.Metadata {
	return models.Metadata{
		Name:        md.Name,
		Description: md.Description,
		Link:        md.Link,
	}
}

// ToDomainNewCampaign converts an API NewCampaign request to the engine's input.
func ToDomainNewCampaign(nc *api.NewCampaign) campaign.NewCampaign {
	return campaign.NewCampaign{
		Metadata: ToDomainMetadata(&nc.Metadata),
		Start:    nc.Start,
		End:      nc.End,
		SoftCap:  nc.SoftCap,
		HardCap:  nc.HardCap,
	}
}

// ToApiContribution converts a domain Contribution model to an API Contribution model.
func ToApiContribution(c *models.Contribution) *api.Contribution {
	return &api.Contribution{
		CampaignId:  uint32(c.CampaignID),
		Contributor: c.Contributor,
		Amount:      c.Amount,
		UpdatedAt:   c.UpdatedAt,
	}
}

// ToApiWallet converts a domain Wallet model to an API Wallet model.
func ToApiWallet(wallet *models.Wallet) *api.Wallet {
	w := &api.Wallet{
		UserId:   wallet.UserId,
		Balance:  wallet.Balance,
		Reserved: wallet.Reserved,
		Version:  wallet.Version,
	}
	if wallet.Name != "" {
		name := wallet.Name
		w.Name = &name
	}
	if !wallet.CreatedAt.IsZero() {
		createdAt := wallet.CreatedAt
		w.CreatedAt = &createdAt
	}
	return w
}

// ToDomainNewWallet converts an API NewWallet model to a domain Wallet model.
func ToDomainNewWallet(newWallet *api.NewWallet) *models.Wallet {
	w := &models.Wallet{
		UserId:  newWallet.UserId,
		Balance: 1000, // Seed new wallets with 1000 units.
		Version: 1,
	}
	if newWallet.Name != nil {
		w.Name = *newWallet.Name
	}
	return w
}

// ToApiLedgerEntry converts a domain LedgerEntry to an API LedgerEntry.
func ToApiLedgerEntry(entry *models.LedgerEntry) *api.LedgerEntry {
	e := &api.LedgerEntry{
		TransactionId: entry.TransactionID,
		EntryId:       entry.EntryID,
		AccountId:     entry.AccountID,
		Description:   entry.Description,
		Timestamp:     entry.Timestamp,
	}
	if entry.Debit != 0 {
		debit := entry.Debit
		e.Debit = &debit
	}
	if entry.Credit != 0 {
		credit := entry.Credit
		e.Credit = &credit
	}
	return e
}

package models

import (
	"time"
)

// CampaignID is the sequential identifier assigned to a campaign at creation.
type CampaignID uint32

// CampaignStatus defines the possible states of a campaign.
type CampaignStatus string

const (
	UPCOMING  CampaignStatus = "UPCOMING"
	ACTIVE    CampaignStatus = "ACTIVE"
	SUCCESS   CampaignStatus = "SUCCESS"
	FAILED    CampaignStatus = "FAILED"
	CANCELLED CampaignStatus = "CANCELLED"
)

// IsTerminal reports whether no further transition can leave the status.
func (s CampaignStatus) IsTerminal() bool {
	return s == SUCCESS || s == FAILED || s == CANCELLED
}

// Metadata is the descriptive part of a campaign.
type Metadata struct {
	Name        string  `json:"name" dynamodbav:"name"`
	Description string  `json:"description" dynamodbav:"description"`
	Link        *string `json:"link,omitempty" dynamodbav:"link,omitempty"`
}

// Campaign represents the internal domain model for a fundraising campaign.
// It includes dynamodbav tags for marshalling.
type Campaign struct {
	Id             CampaignID     `json:"id" dynamodbav:"id"`
	Owner          string         `json:"owner" dynamodbav:"owner"`
	Metadata       Metadata       `json:"metadata" dynamodbav:"metadata"`
	Start          time.Time      `json:"start" dynamodbav:"start"`
	End            time.Time      `json:"end" dynamodbav:"end"`
	SoftCap        int64          `json:"soft_cap" dynamodbav:"soft_cap"`
	HardCap        int64          `json:"hard_cap" dynamodbav:"hard_cap"`
	Raised         int64          `json:"raised" dynamodbav:"raised"`
	Deposit        int64          `json:"deposit" dynamodbav:"deposit"`
	Status         CampaignStatus `json:"status" dynamodbav:"status"`
	Settled        int64          `json:"settled" dynamodbav:"settled"`
	SettlementDone bool           `json:"settlement_done" dynamodbav:"settlement_done"`
	Version        int64          `json:"version" dynamodbav:"version"`
	CreatedAt      time.Time      `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at" dynamodbav:"updated_at"`
}

// EffectiveStatus derives the status an observer sees at the given time.
// A live campaign is stored as UPCOMING and reads as ACTIVE once it starts.
func (c *Campaign) EffectiveStatus(now time.Time) CampaignStatus {
	if c.Status.IsTerminal() {
		return c.Status
	}
	if !now.Before(c.Start) {
		return ACTIVE
	}
	return UPCOMING
}

// AcceptsContributions reports whether the campaign is open at the given time.
func (c *Campaign) AcceptsContributions(now time.Time) bool {
	return !c.Status.IsTerminal() && !now.Before(c.Start) && now.Before(c.End)
}

// Contribution is the cumulative amount one account has put into a campaign.
type Contribution struct {
	CampaignID  CampaignID `json:"campaign_id" dynamodbav:"campaign_id"`
	Contributor string     `json:"contributor" dynamodbav:"contributor"`
	Amount      int64      `json:"amount" dynamodbav:"amount"`
	UpdatedAt   time.Time  `json:"updated_at" dynamodbav:"updated_at"`
}

// Wallet represents the internal domain model for an escrow account.
// Balance is free to spend, Reserved is held in escrow.
type Wallet struct {
	UserId    string    `json:"user_id" dynamodbav:"user_id"`
	Name      string    `json:"name" dynamodbav:"name"`
	Balance   int64     `json:"balance" dynamodbav:"balance"`
	Reserved  int64     `json:"reserved" dynamodbav:"reserved"`
	Version   int64     `json:"version" dynamodbav:"version"`
	CreatedAt time.Time `json:"created_at" dynamodbav:"created_at"`
}

// LedgerEntry represents a single leg of an escrow movement.
type LedgerEntry struct {
	EntryID       string    `json:"entry_id" dynamodbav:"entry_id"`
	TransactionID string    `json:"transaction_id" dynamodbav:"transaction_id"`
	AccountID     string    `json:"account_id" dynamodbav:"account_id"`
	Debit         int64     `json:"debit,omitempty" dynamodbav:"debit,omitempty"`
	Credit        int64     `json:"credit,omitempty" dynamodbav:"credit,omitempty"`
	Description   string    `json:"description" dynamodbav:"description"`
	Timestamp     time.Time `json:"timestamp" dynamodbav:"timestamp"`
	GSI1PK        string    `json:"-" dynamodbav:"gsi1pk"`
}

// EscrowMoveKind names a primitive escrow operation.
type EscrowMoveKind string

const (
	// RESERVE moves funds from an account's balance into its reserve.
	RESERVE EscrowMoveKind = "RESERVE"
	// RELEASE moves funds from an account's reserve back to its balance.
	RELEASE EscrowMoveKind = "RELEASE"
	// TRANSFER moves reserved funds of Account into the balance of To.
	TRANSFER EscrowMoveKind = "TRANSFER"
)

// EscrowMove is one fund movement applied as part of a store commit.
type EscrowMove struct {
	Kind      EscrowMoveKind
	Account   string
	To        string
	Amount    int64
	Reference string
}

// Origin identifies the caller of an operation.
type Origin struct {
	Account string
	Root    bool
}

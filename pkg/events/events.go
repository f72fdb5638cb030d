// Package events carries campaign lifecycle notifications to observers.
// Delivery is fire-and-forget: the engine logs a failed Notify and moves on.
package events

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/chris/campaign-escrow/pkg/models"
)

// Type names a lifecycle event.
type Type string

const (
	CampaignCreated         Type = "campaign.created"
	CampaignMetadataUpdated Type = "campaign.metadata_updated"
	CampaignCapsUpdated     Type = "campaign.caps_updated"
	CampaignCancelled       Type = "campaign.cancelled"
	CampaignContribution    Type = "campaign.contribution"
	CampaignFinalized       Type = "campaign.finalized"
	CampaignRefunded        Type = "campaign.refunded"
	CampaignSettled         Type = "campaign.settled"
)

// Event is a single lifecycle notification.
type Event struct {
	Id         string                `json:"id"`
	Type       Type                  `json:"type"`
	CampaignID models.CampaignID     `json:"campaign_id"`
	Account    string                `json:"account,omitempty"`
	Amount     int64                 `json:"amount,omitempty"`
	Status     models.CampaignStatus `json:"status,omitempty"`
	SoftCap    int64                 `json:"soft_cap,omitempty"`
	HardCap    int64                 `json:"hard_cap,omitempty"`
	Timestamp  time.Time             `json:"timestamp"`
}

// New returns an event with a fresh id.
func New(t Type, id models.CampaignID, now time.Time) Event {
	return Event{
		Id:         uuid.New().String(),
		Type:       t,
		CampaignID: id,
		Timestamp:  now,
	}
}

//go:generate go run github.com/vektra/mockery/v2 --name=Notifier

// Notifier delivers lifecycle events.
type Notifier interface {
	Notify(ctx context.Context, event Event) error
}

// NoOp drops every event.
type NoOp struct{}

func (NoOp) Notify(context.Context, Event) error { return nil }

// Multi fans an event out to several notifiers. Every notifier is tried and
// the failures are joined.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, event Event) error {
	var errs []error
	for _, n := range m {
		if err := n.Notify(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// LogNotifier writes each event to a structured logger.
type LogNotifier struct {
	Logger *slog.Logger
}

func (l *LogNotifier) Notify(ctx context.Context, event Event) error {
	l.Logger.InfoContext(ctx, "campaign event",
		"event_id", event.Id,
		"type", event.Type,
		"campaign_id", event.CampaignID,
		"account", event.Account,
		"amount", event.Amount,
		"status", event.Status,
	)
	return nil
}

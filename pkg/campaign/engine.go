// Package campaign implements the campaign lifecycle state machine and its
// escrow accounting.
package campaign

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/chris/campaign-escrow/pkg/activeset"
	"github.com/chris/campaign-escrow/pkg/clock"
	"github.com/chris/campaign-escrow/pkg/escrow"
	"github.com/chris/campaign-escrow/pkg/events"
	"github.com/chris/campaign-escrow/pkg/models"
	"github.com/chris/campaign-escrow/pkg/storage"
)

// DefaultSettlementBatchSize keeps one settlement batch within a single DynamoDB transaction.
const DefaultSettlementBatchSize = 20

// Store is the persistence the engine needs.
type Store interface {
	storage.CampaignReader
	storage.CampaignWriter
}

// Config holds the engine's collaborators.
type Config struct {
	Store               Store
	Clock               clock.Clock
	Notifier            events.Notifier
	Limits              Limits
	Logger              *slog.Logger
	PromRegistry        prometheus.Registerer
	SettlementBatchSize int
}

// NewCampaign is the caller-supplied part of a campaign.
type NewCampaign struct {
	Metadata models.Metadata
	Start    time.Time
	End      time.Time
	SoftCap  int64
	HardCap  int64
}

// Finalization reports one campaign closed by Finalize.
type Finalization struct {
	CampaignID models.CampaignID
	Status     models.CampaignStatus
	Raised     int64
}

// Settlement reports the outcome of SettleProceeds.
type Settlement struct {
	CampaignID  models.CampaignID
	Transferred int64
	Batches     int
	Done        bool
}

// Engine runs every operation to completion under one lock and writes its
// effects as a single changeset, so a failed operation leaves no trace.
type Engine struct {
	mu        sync.Mutex
	store     Store
	clock     clock.Clock
	notifier  events.Notifier
	limits    Limits
	logger    *slog.Logger
	metrics   *engineMetrics
	batchSize int
}

// New creates an Engine. Clock, Notifier and Logger default to the wall
// clock, no notifications and a discarding logger.
func New(cfg Config) (*Engine, error) {
	if cfg.Store == nil {
		return nil, errors.New("campaign engine requires a store")
	}
	if err := cfg.Limits.Validate(); err != nil {
		return nil, fmt.Errorf("invalid limits: %w", err)
	}
	e := &Engine{
		store:     cfg.Store,
		clock:     cfg.Clock,
		notifier:  cfg.Notifier,
		limits:    cfg.Limits,
		logger:    cfg.Logger,
		metrics:   newEngineMetrics(cfg.PromRegistry),
		batchSize: cfg.SettlementBatchSize,
	}
	if e.clock == nil {
		e.clock = clock.System{}
	}
	if e.notifier == nil {
		e.notifier = events.NoOp{}
	}
	if e.logger == nil {
		e.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if e.batchSize <= 0 {
		e.batchSize = DefaultSettlementBatchSize
	} else if e.batchSize > math.MaxInt32 {
		e.batchSize = math.MaxInt32
	}
	return e, nil
}

// Now returns the engine's current logical time.
func (e *Engine) Now() time.Time {
	return e.clock.Now()
}

// CreateCampaign validates the request, reserves the owner's deposit and
// registers the campaign as Upcoming.
func (e *Engine) CreateCampaign(ctx context.Context, origin models.Origin, nc NewCampaign) (*models.Campaign, error) {
	if origin.Account == "" {
		return nil, ErrUnauthenticated
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.clock.Now()
	if !nc.Start.Before(nc.End) {
		return nil, fmt.Errorf("%w: start must be before end", ErrInvalidTimeRange)
	}
	if err := checkCaps(nc.SoftCap, nc.HardCap); err != nil {
		return nil, err
	}
	if nc.Start.Before(now) {
		return nil, fmt.Errorf("%w: start is in the past", ErrInvalidTimeRange)
	}
	if err := e.limits.CheckMetadata(nc.Metadata); err != nil {
		return nil, err
	}

	active, err := e.store.ActiveCampaigns(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read active campaigns: %w", err)
	}
	if activeset.FromIDs(e.limits.MaxActive, active).Full() {
		return nil, ErrTooManyActiveCampaigns
	}

	id, err := e.store.NextCampaignID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read next campaign id: %w", err)
	}
	if id == math.MaxUint32 {
		return nil, fmt.Errorf("%w: campaign id space exhausted", ErrInvariantViolation)
	}
	next := id + 1

	c := &models.Campaign{
		Id:        id,
		Owner:     origin.Account,
		Metadata:  nc.Metadata,
		Start:     nc.Start,
		End:       nc.End,
		SoftCap:   nc.SoftCap,
		HardCap:   nc.HardCap,
		Deposit:   e.limits.MinimumDeposit,
		Status:    models.UPCOMING,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	cs := &storage.Changeset{
		Campaign:       c,
		NextCampaignID: &next,
		ActiveInsert:   &id,
		ActiveCapacity: e.limits.MaxActive,
	}
	if c.Deposit > 0 {
		cs.Moves = append(cs.Moves, models.EscrowMove{
			Kind:      models.RESERVE,
			Account:   c.Owner,
			Amount:    c.Deposit,
			Reference: depositRef(id),
		})
	}
	if err := e.commit(ctx, cs, true); err != nil {
		return nil, err
	}

	e.metrics.campaignsCreated.Inc()
	e.metrics.activeCampaigns.Inc()
	e.logger.InfoContext(ctx, "campaign created", "campaign_id", id, "owner", c.Owner)
	ev := events.New(events.CampaignCreated, id, now)
	ev.Account = c.Owner
	ev.SoftCap, ev.HardCap = c.SoftCap, c.HardCap
	e.notify(ctx, ev)
	return c, nil
}

// UpdateMetadata replaces the metadata of a campaign that has not opened yet.
func (e *Engine) UpdateMetadata(ctx context.Context, origin models.Origin, id models.CampaignID, md models.Metadata) (*models.Campaign, error) {
	if origin.Account == "" {
		return nil, ErrUnauthenticated
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.clock.Now()
	c, err := e.editable(ctx, origin, id, now)
	if err != nil {
		return nil, err
	}
	if err := e.limits.CheckMetadata(md); err != nil {
		return nil, err
	}

	c.Metadata = md
	touch(c, now)
	if err := e.commit(ctx, &storage.Changeset{Campaign: c}, false); err != nil {
		return nil, err
	}

	e.notify(ctx, events.New(events.CampaignMetadataUpdated, id, now))
	return c, nil
}

// SetCaps replaces the caps of a campaign that has not opened yet.
func (e *Engine) SetCaps(ctx context.Context, origin models.Origin, id models.CampaignID, softCap, hardCap int64) (*models.Campaign, error) {
	if origin.Account == "" {
		return nil, ErrUnauthenticated
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.clock.Now()
	c, err := e.editable(ctx, origin, id, now)
	if err != nil {
		return nil, err
	}
	if err := checkCaps(softCap, hardCap); err != nil {
		return nil, err
	}

	c.SoftCap, c.HardCap = softCap, hardCap
	touch(c, now)
	if err := e.commit(ctx, &storage.Changeset{Campaign: c}, false); err != nil {
		return nil, err
	}

	ev := events.New(events.CampaignCapsUpdated, id, now)
	ev.SoftCap, ev.HardCap = softCap, hardCap
	e.notify(ctx, ev)
	return c, nil
}

// CancelCampaign closes a live campaign on behalf of its owner or root and
// returns the deposit. Contributors recover their funds with ClaimRefund.
func (e *Engine) CancelCampaign(ctx context.Context, origin models.Origin, id models.CampaignID) (*models.Campaign, error) {
	if origin.Account == "" && !origin.Root {
		return nil, ErrUnauthenticated
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.clock.Now()
	c, err := e.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !origin.Root && origin.Account != c.Owner {
		return nil, ErrNotOwner
	}
	if c.Status.IsTerminal() {
		return nil, ErrAlreadyFinalized
	}

	c.Status = models.CANCELLED
	touch(c, now)
	cs := &storage.Changeset{
		Campaign:       c,
		ActiveRemove:   &id,
		ActiveCapacity: e.limits.MaxActive,
		Moves:          releaseDeposit(c),
	}
	if err := e.commit(ctx, cs, false); err != nil {
		return nil, err
	}

	e.metrics.cancellations.Inc()
	e.metrics.activeCampaigns.Dec()
	e.logger.InfoContext(ctx, "campaign cancelled", "campaign_id", id, "root", origin.Root)
	ev := events.New(events.CampaignCancelled, id, now)
	ev.Account = origin.Account
	ev.Status = models.CANCELLED
	e.notify(ctx, ev)
	return c, nil
}

// Contribute escrows amount from the caller into an open campaign. A
// contribution that would overshoot the hard cap is rejected whole.
func (e *Engine) Contribute(ctx context.Context, origin models.Origin, id models.CampaignID, amount int64) (*models.Campaign, error) {
	if origin.Account == "" {
		return nil, ErrUnauthenticated
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.clock.Now()
	c, err := e.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !c.AcceptsContributions(now) {
		return nil, ErrNotActive
	}
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	raised := escrow.SaturatingAdd(c.Raised, amount)
	if raised > c.HardCap {
		return nil, ErrHardCapExceeded
	}

	var previous int64
	existing, err := e.store.GetContribution(ctx, id, origin.Account)
	switch {
	case err == nil:
		previous = existing.Amount
	case errors.Is(err, storage.ErrNotFound):
	default:
		return nil, fmt.Errorf("failed to read contribution: %w", err)
	}

	c.Raised = raised
	touch(c, now)
	cs := &storage.Changeset{
		Campaign: c,
		Contributions: []storage.ContributionWrite{{
			Contribution: models.Contribution{
				CampaignID:  id,
				Contributor: origin.Account,
				Amount:      escrow.SaturatingAdd(previous, amount),
				UpdatedAt:   now,
			},
			Previous: previous,
		}},
		Moves: []models.EscrowMove{{
			Kind:      models.RESERVE,
			Account:   origin.Account,
			Amount:    amount,
			Reference: contributionRef(id),
		}},
	}
	if err := e.commit(ctx, cs, true); err != nil {
		return nil, err
	}

	e.metrics.contributions.Inc()
	e.metrics.contributedAmount.Add(float64(amount))
	ev := events.New(events.CampaignContribution, id, now)
	ev.Account = origin.Account
	ev.Amount = amount
	e.notify(ctx, ev)
	return c, nil
}

// ClaimRefund returns the caller's whole contribution to a failed or
// cancelled campaign. The entry is deleted, so a second claim finds nothing.
func (e *Engine) ClaimRefund(ctx context.Context, origin models.Origin, id models.CampaignID) (int64, error) {
	if origin.Account == "" {
		return 0, ErrUnauthenticated
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.clock.Now()
	c, err := e.load(ctx, id)
	if err != nil {
		return 0, err
	}
	if c.Status != models.FAILED && c.Status != models.CANCELLED {
		return 0, ErrNotRefundable
	}

	entry, err := e.store.GetContribution(ctx, id, origin.Account)
	if errors.Is(err, storage.ErrNotFound) {
		return 0, ErrNoContributionFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read contribution: %w", err)
	}
	if entry.Amount <= 0 {
		return 0, ErrNoContributionFound
	}

	cs := &storage.Changeset{
		Removed: []models.Contribution{*entry},
		Moves: []models.EscrowMove{{
			Kind:      models.RELEASE,
			Account:   origin.Account,
			Amount:    entry.Amount,
			Reference: refundRef(id),
		}},
	}
	if err := e.commit(ctx, cs, false); err != nil {
		return 0, err
	}

	e.metrics.refunds.Inc()
	e.metrics.refundedAmount.Add(float64(entry.Amount))
	ev := events.New(events.CampaignRefunded, id, now)
	ev.Account = origin.Account
	ev.Amount = entry.Amount
	ev.Status = c.Status
	e.notify(ctx, ev)
	return entry.Amount, nil
}

// Finalize closes every active campaign whose end is at or before now. Each
// campaign is committed on its own, so one failure does not hold back the
// rest. Campaigns already closed are never touched again because only
// active-set members are visited.
func (e *Engine) Finalize(ctx context.Context, now time.Time) ([]Finalization, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	ids, err := e.store.ActiveCampaigns(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read active campaigns: %w", err)
	}

	var (
		done      []Finalization
		errs      []error
		remaining = len(ids)
	)
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		c, err := e.store.GetCampaign(ctx, id)
		if errors.Is(err, storage.ErrNotFound) {
			e.logger.ErrorContext(ctx, "active campaign missing from store", "campaign_id", id)
			errs = append(errs, fmt.Errorf("%w: active campaign %d has no record", ErrInvariantViolation, id))
			continue
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to load campaign %d: %w", id, err))
			continue
		}

		if c.Status.IsTerminal() {
			e.logger.WarnContext(ctx, "dropping finalized campaign from active set", "campaign_id", id, "status", c.Status)
			cs := &storage.Changeset{ActiveRemove: &id, ActiveCapacity: e.limits.MaxActive}
			if err := e.store.Commit(ctx, cs); err != nil {
				errs = append(errs, fmt.Errorf("failed to reconcile active set for campaign %d: %w", id, err))
				continue
			}
			remaining--
			continue
		}
		if now.Before(c.End) {
			continue
		}

		if c.Raised >= c.SoftCap {
			c.Status = models.SUCCESS
		} else {
			c.Status = models.FAILED
		}
		touch(c, now)
		cs := &storage.Changeset{
			Campaign:       c,
			ActiveRemove:   &id,
			ActiveCapacity: e.limits.MaxActive,
			Moves:          releaseDeposit(c),
		}
		if err := e.commit(ctx, cs, false); err != nil {
			errs = append(errs, fmt.Errorf("failed to finalize campaign %d: %w", id, err))
			continue
		}
		remaining--

		e.metrics.finalizations.WithLabelValues(string(c.Status)).Inc()
		e.logger.InfoContext(ctx, "campaign finalized", "campaign_id", id, "status", c.Status, "raised", c.Raised)
		ev := events.New(events.CampaignFinalized, id, now)
		ev.Status = c.Status
		ev.Amount = c.Raised
		e.notify(ctx, ev)
		done = append(done, Finalization{CampaignID: id, Status: c.Status, Raised: c.Raised})
	}
	e.metrics.activeCampaigns.Set(float64(remaining))

	return done, errors.Join(errs...)
}

// SettleProceeds pays the escrowed contributions of a successful campaign
// out to its owner. Entries move in batches, each batch atomic with the
// deletion of the entries it pays, so an interrupted settlement resumes
// where it stopped. Calling it on a settled campaign is a no-op.
func (e *Engine) SettleProceeds(ctx context.Context, id models.CampaignID) (*Settlement, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	c, err := e.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.Status != models.SUCCESS {
		return nil, ErrNotSettleable
	}
	result := &Settlement{CampaignID: id, Done: c.SettlementDone}

	for !c.SettlementDone {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		now := e.clock.Now()

		batch, err := e.store.ListContributions(ctx, id, int32(e.batchSize))
		if err != nil {
			return result, fmt.Errorf("failed to list contributions for settlement: %w", err)
		}
		if len(batch) == 0 {
			c.SettlementDone = true
			touch(c, now)
			if err := e.commit(ctx, &storage.Changeset{Campaign: c}, false); err != nil {
				return result, err
			}
			result.Done = true
			e.logger.InfoContext(ctx, "campaign proceeds settled", "campaign_id", id, "settled", c.Settled)
			ev := events.New(events.CampaignSettled, id, now)
			ev.Account = c.Owner
			ev.Amount = c.Settled
			ev.Status = c.Status
			e.notify(ctx, ev)
			break
		}

		cs := &storage.Changeset{Campaign: c}
		var sum int64
		for _, entry := range batch {
			cs.Removed = append(cs.Removed, entry)
			if entry.Amount <= 0 {
				continue
			}
			cs.Moves = append(cs.Moves, models.EscrowMove{
				Kind:      models.TRANSFER,
				Account:   entry.Contributor,
				To:        c.Owner,
				Amount:    entry.Amount,
				Reference: settlementRef(id),
			})
			sum = escrow.SaturatingAdd(sum, entry.Amount)
		}
		c.Settled = escrow.SaturatingAdd(c.Settled, sum)
		touch(c, now)
		if err := e.commit(ctx, cs, false); err != nil {
			return result, err
		}
		result.Transferred = escrow.SaturatingAdd(result.Transferred, sum)
		result.Batches++
		e.metrics.settledAmount.Add(float64(sum))
	}
	return result, nil
}

// GetCampaign returns a campaign with its status as observed now.
func (e *Engine) GetCampaign(ctx context.Context, id models.CampaignID) (*models.Campaign, error) {
	c, err := e.load(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Status = c.EffectiveStatus(e.clock.Now())
	return c, nil
}

// ListCampaigns returns campaigns in id order with their observed status.
func (e *Engine) ListCampaigns(ctx context.Context, limit int32) ([]models.Campaign, error) {
	list, err := e.store.ListCampaigns(ctx, limit)
	if err != nil {
		return nil, err
	}
	now := e.clock.Now()
	for i := range list {
		list[i].Status = list[i].EffectiveStatus(now)
	}
	return list, nil
}

// ActiveCampaigns returns the ids of campaigns that are not finalized yet.
func (e *Engine) ActiveCampaigns(ctx context.Context) ([]models.CampaignID, error) {
	return e.store.ActiveCampaigns(ctx)
}

func (e *Engine) ListContributions(ctx context.Context, id models.CampaignID, limit int32) ([]models.Contribution, error) {
	if _, err := e.load(ctx, id); err != nil {
		return nil, err
	}
	return e.store.ListContributions(ctx, id, limit)
}

func (e *Engine) GetContribution(ctx context.Context, id models.CampaignID, contributor string) (*models.Contribution, error) {
	if _, err := e.load(ctx, id); err != nil {
		return nil, err
	}
	entry, err := e.store.GetContribution(ctx, id, contributor)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrNoContributionFound
	}
	return entry, err
}

// PendingSettlements returns successful campaigns whose proceeds are still escrowed.
func (e *Engine) PendingSettlements(ctx context.Context) ([]models.CampaignID, error) {
	return e.store.PendingSettlements(ctx)
}

func (e *Engine) load(ctx context.Context, id models.CampaignID) (*models.Campaign, error) {
	c, err := e.store.GetCampaign(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrCampaignNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load campaign %d: %w", id, err)
	}
	return c, nil
}

// editable loads a campaign the owner may still change: stored Upcoming and not yet started.
func (e *Engine) editable(ctx context.Context, origin models.Origin, id models.CampaignID, now time.Time) (*models.Campaign, error) {
	c, err := e.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if origin.Account != c.Owner {
		return nil, ErrNotOwner
	}
	if c.Status != models.UPCOMING || !now.Before(c.Start) {
		return nil, ErrNotActive
	}
	return c, nil
}

// commit maps storage failures onto engine errors. reserving marks changesets
// whose moves draw on a caller's free balance.
func (e *Engine) commit(ctx context.Context, cs *storage.Changeset, reserving bool) error {
	err := e.store.Commit(ctx, cs)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, storage.ErrActiveSetFull):
		return ErrTooManyActiveCampaigns
	case errors.Is(err, storage.ErrInsufficientFunds):
		return err
	case reserving && errors.Is(err, storage.ErrWalletNotFound):
		return fmt.Errorf("%w: %w", storage.ErrInsufficientFunds, err)
	case errors.Is(err, storage.ErrReservedUnderflow), errors.Is(err, storage.ErrWalletNotFound):
		e.logger.ErrorContext(ctx, "escrow invariant broken", "error", err)
		return fmt.Errorf("%w: %w", ErrInvariantViolation, err)
	default:
		return fmt.Errorf("failed to commit changes: %w", err)
	}
}

func (e *Engine) notify(ctx context.Context, ev events.Event) {
	if err := e.notifier.Notify(ctx, ev); err != nil {
		e.logger.WarnContext(ctx, "failed to deliver campaign event", "type", ev.Type, "campaign_id", ev.CampaignID, "error", err)
	}
}

func checkCaps(softCap, hardCap int64) error {
	if softCap <= 0 || hardCap <= 0 {
		return fmt.Errorf("%w: caps must be positive", ErrCapsInvalid)
	}
	if softCap > hardCap {
		return fmt.Errorf("%w: soft cap %d exceeds hard cap %d", ErrCapsInvalid, softCap, hardCap)
	}
	return nil
}

func touch(c *models.Campaign, now time.Time) {
	c.Version++
	c.UpdatedAt = now
}

func releaseDeposit(c *models.Campaign) []models.EscrowMove {
	if c.Deposit <= 0 {
		return nil
	}
	return []models.EscrowMove{{
		Kind:      models.RELEASE,
		Account:   c.Owner,
		Amount:    c.Deposit,
		Reference: depositRef(c.Id),
	}}
}

func depositRef(id models.CampaignID) string      { return fmt.Sprintf("campaign %d deposit", id) }
func contributionRef(id models.CampaignID) string { return fmt.Sprintf("campaign %d contribution", id) }
func refundRef(id models.CampaignID) string       { return fmt.Sprintf("campaign %d refund", id) }
func settlementRef(id models.CampaignID) string   { return fmt.Sprintf("campaign %d proceeds", id) }

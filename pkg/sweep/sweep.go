// Package sweep drives time-based finalization: once per tick it closes every
// campaign whose end has passed and pays out proceeds still held in escrow.
package sweep

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/chris/campaign-escrow/pkg/campaign"
	"github.com/chris/campaign-escrow/pkg/clock"
	"github.com/chris/campaign-escrow/pkg/models"
)

// Engine is the part of the campaign engine the sweep drives.
type Engine interface {
	Finalize(ctx context.Context, now time.Time) ([]campaign.Finalization, error)
	PendingSettlements(ctx context.Context) ([]models.CampaignID, error)
	SettleProceeds(ctx context.Context, id models.CampaignID) (*campaign.Settlement, error)
}

// Report summarizes one Advance.
type Report struct {
	Finalized []campaign.Finalization
	Settled   []campaign.Settlement
}

// Sweeper calls Advance on every tick of its interval.
type Sweeper struct {
	engine   Engine
	clock    clock.Clock
	interval time.Duration
	logger   *slog.Logger
}

// New creates a Sweeper. A nil logger discards output.
func New(engine Engine, clk clock.Clock, interval time.Duration, logger *slog.Logger) *Sweeper {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if clk == nil {
		clk = clock.System{}
	}
	return &Sweeper{
		engine:   engine,
		clock:    clk,
		interval: interval,
		logger:   logger,
	}
}

// Advance finalizes everything due at now, then settles pending proceeds.
// It is safe to call repeatedly with the same or a later now.
func (s *Sweeper) Advance(ctx context.Context, now time.Time) (Report, error) {
	var report Report
	var errs []error

	finalized, err := s.engine.Finalize(ctx, now)
	report.Finalized = finalized
	if err != nil {
		errs = append(errs, fmt.Errorf("failed to finalize campaigns: %w", err))
	}

	pending, err := s.engine.PendingSettlements(ctx)
	if err != nil {
		errs = append(errs, fmt.Errorf("failed to list pending settlements: %w", err))
		return report, errors.Join(errs...)
	}
	for _, id := range pending {
		settlement, err := s.engine.SettleProceeds(ctx, id)
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to settle campaign %d: %w", id, err))
			continue
		}
		report.Settled = append(report.Settled, *settlement)
	}

	return report, errors.Join(errs...)
}

// Run advances on every tick until ctx is cancelled.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("finalization sweep started", "component", "sweep", "interval", s.interval)
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("finalization sweep stopped", "component", "sweep")
			return
		case <-ticker.C:
			report, err := s.Advance(ctx, s.clock.Now())
			if err != nil {
				s.logger.Error("sweep finished with errors", "component", "sweep", "error", err)
			}
			if len(report.Finalized) > 0 || len(report.Settled) > 0 {
				s.logger.Info("sweep advanced",
					"component", "sweep",
					"finalized", len(report.Finalized),
					"settled", len(report.Settled),
				)
			}
		}
	}
}

// Package scheduler runs background jobs on an interval. The only job
// today is the overdue installment sweep.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BudgetSource lists the budgets that currently hold pending installments
// past their due date.
type BudgetSource interface {
	BudgetIDsWithPendingPastDue(ctx context.Context, before time.Time) ([]uuid.UUID, error)
}

// OverdueRefresher flags a budget's pending past-due installments as overdue.
type OverdueRefresher interface {
	RefreshOverdue(ctx context.Context, budgetID uuid.UUID) (int, error)
}

// OverdueSweeperConfig holds configuration for the overdue sweep loop
type OverdueSweeperConfig struct {
	// Enabled determines if the sweeper is active
	Enabled bool

	// Interval is the time between sweep runs
	Interval time.Duration

	// SweepTimeout is the maximum time for a single sweep run
	SweepTimeout time.Duration
}

// DefaultOverdueSweeperConfig returns default configuration
func DefaultOverdueSweeperConfig() OverdueSweeperConfig {
	return OverdueSweeperConfig{
		Enabled:      true,
		Interval:     time.Hour,
		SweepTimeout: 5 * time.Minute,
	}
}

// OverdueSweeper periodically flags pending installments whose due date has
// passed. One sweep walks every budget with past-due pending installments;
// a failure on one budget does not stop the rest of the sweep.
type OverdueSweeper struct {
	source    BudgetSource
	refresher OverdueRefresher
	logger    *zap.Logger
	config    OverdueSweeperConfig
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
}

// NewOverdueSweeper creates a new overdue sweeper
func NewOverdueSweeper(
	source BudgetSource,
	refresher OverdueRefresher,
	logger *zap.Logger,
	config OverdueSweeperConfig,
) *OverdueSweeper {
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.Interval <= 0 {
		config.Interval = time.Hour
	}
	if config.SweepTimeout <= 0 {
		config.SweepTimeout = 5 * time.Minute
	}
	return &OverdueSweeper{
		source:    source,
		refresher: refresher,
		logger:    logger,
		config:    config,
	}
}

// Start starts the sweep loop
func (s *OverdueSweeper) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	if !s.config.Enabled {
		s.mu.Unlock()
		s.logger.Info("Overdue sweeper is disabled")
		return nil
	}
	s.isRunning = true
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go s.run(ctx)

	s.logger.Info("Overdue sweeper started",
		zap.Duration("interval", s.config.Interval),
	)

	return nil
}

// Stop gracefully stops the sweeper
func (s *OverdueSweeper) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Overdue sweeper stopped gracefully")
		return nil
	case <-ctx.Done():
		s.logger.Warn("Overdue sweeper stop timed out")
		return ctx.Err()
	}
}

func (s *OverdueSweeper) run(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Debug("Overdue sweep loop stopping")
			return
		case <-ticker.C:
			s.executeSweep(ctx)
		}
	}
}

// executeSweep runs a single sweep over every budget with past-due
// pending installments
func (s *OverdueSweeper) executeSweep(ctx context.Context) {
	sweepCtx, cancel := context.WithTimeout(ctx, s.config.SweepTimeout)
	defer cancel()

	startTime := time.Now()

	budgetIDs, err := s.source.BudgetIDsWithPendingPastDue(sweepCtx, startTime)
	if err != nil {
		s.logger.Error("Overdue sweep failed to list budgets", zap.Error(err))
		return
	}
	if len(budgetIDs) == 0 {
		return
	}

	flagged := 0
	failed := 0
	for _, budgetID := range budgetIDs {
		count, err := s.refresher.RefreshOverdue(sweepCtx, budgetID)
		if err != nil {
			failed++
			s.logger.Error("Overdue sweep failed for budget",
				zap.String("budget_id", budgetID.String()),
				zap.Error(err),
			)
			continue
		}
		flagged += count
	}

	s.logger.Info("Overdue sweep completed",
		zap.Duration("duration", time.Since(startTime)),
		zap.Int("budgets", len(budgetIDs)),
		zap.Int("flagged", flagged),
		zap.Int("failed", failed),
	)
}

// TriggerImmediateSweep triggers a sweep run outside the normal interval
func (s *OverdueSweeper) TriggerImmediateSweep(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return ErrSweeperNotRunning
	}
	s.wg.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.wg.Done()
		s.executeSweep(ctx)
	}()

	return nil
}

// IsRunning returns whether the sweeper is running
func (s *OverdueSweeper) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isRunning
}

package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubBudgetSource struct {
	mu        sync.Mutex
	budgetIDs []uuid.UUID
	calls     int
}

func (s *stubBudgetSource) BudgetIDsWithPendingPastDue(_ context.Context, _ time.Time) ([]uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.budgetIDs, nil
}

func (s *stubBudgetSource) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

type stubRefresher struct {
	mu        sync.Mutex
	refreshed []uuid.UUID
}

func (s *stubRefresher) RefreshOverdue(_ context.Context, budgetID uuid.UUID) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refreshed = append(s.refreshed, budgetID)
	return 1, nil
}

func (s *stubRefresher) refreshedIDs() []uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]uuid.UUID(nil), s.refreshed...)
}

func TestOverdueSweeperDisabled(t *testing.T) {
	sweeper := NewOverdueSweeper(&stubBudgetSource{}, &stubRefresher{}, zap.NewNop(), OverdueSweeperConfig{
		Enabled: false,
	})

	require.NoError(t, sweeper.Start(context.Background()))
	assert.False(t, sweeper.IsRunning())
}

func TestOverdueSweeperStartStop(t *testing.T) {
	sweeper := NewOverdueSweeper(&stubBudgetSource{}, &stubRefresher{}, zap.NewNop(), OverdueSweeperConfig{
		Enabled:  true,
		Interval: time.Hour,
	})

	require.NoError(t, sweeper.Start(context.Background()))
	assert.True(t, sweeper.IsRunning())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, sweeper.Stop(ctx))
	assert.False(t, sweeper.IsRunning())
}

func TestOverdueSweeperSweepsOnInterval(t *testing.T) {
	budgetID := uuid.New()
	source := &stubBudgetSource{budgetIDs: []uuid.UUID{budgetID}}
	refresher := &stubRefresher{}

	sweeper := NewOverdueSweeper(source, refresher, zap.NewNop(), OverdueSweeperConfig{
		Enabled:  true,
		Interval: 20 * time.Millisecond,
	})

	require.NoError(t, sweeper.Start(context.Background()))
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = sweeper.Stop(ctx)
	}()

	assert.Eventually(t, func() bool {
		ids := refresher.refreshedIDs()
		return len(ids) > 0 && ids[0] == budgetID
	}, time.Second, 10*time.Millisecond)
}

func TestOverdueSweeperTriggerImmediate(t *testing.T) {
	budgetID := uuid.New()
	source := &stubBudgetSource{budgetIDs: []uuid.UUID{budgetID}}
	refresher := &stubRefresher{}

	sweeper := NewOverdueSweeper(source, refresher, zap.NewNop(), OverdueSweeperConfig{
		Enabled:  true,
		Interval: time.Hour,
	})

	require.NoError(t, sweeper.Start(context.Background()))
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = sweeper.Stop(ctx)
	}()

	require.NoError(t, sweeper.TriggerImmediateSweep(context.Background()))

	assert.Eventually(t, func() bool {
		return source.callCount() > 0 && len(refresher.refreshedIDs()) == 1
	}, time.Second, 10*time.Millisecond)
}

func TestOverdueSweeperTriggerWhenStopped(t *testing.T) {
	sweeper := NewOverdueSweeper(&stubBudgetSource{}, &stubRefresher{}, zap.NewNop(), DefaultOverdueSweeperConfig())

	err := sweeper.TriggerImmediateSweep(context.Background())
	assert.ErrorIs(t, err, ErrSweeperNotRunning)
}

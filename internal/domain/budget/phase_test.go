package budget

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPhase(t *testing.T) {
	actorID := uuid.New()
	budgetID := uuid.New()

	t.Run("creates phase in pending status", func(t *testing.T) {
		due := time.Now().AddDate(0, 1, 0)
		p, err := NewPhase(actorID, budgetID, "Design", decimal.NewFromInt(4000), 1, &due)
		require.NoError(t, err)
		assert.Equal(t, PhaseStatusPending, p.Status)
		assert.Equal(t, "Design", p.Name)
		assert.Equal(t, 1, p.Position)
	})

	t.Run("rejects blank name", func(t *testing.T) {
		_, err := NewPhase(actorID, budgetID, "   ", decimal.NewFromInt(100), 1, nil)
		assert.Error(t, err)
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		_, err := NewPhase(actorID, budgetID, "Design", decimal.Zero, 1, nil)
		assert.Error(t, err)
	})

	t.Run("rejects empty budget id", func(t *testing.T) {
		_, err := NewPhase(actorID, uuid.Nil, "Design", decimal.NewFromInt(100), 1, nil)
		assert.Error(t, err)
	})
}

func TestPhaseUpdateAmount(t *testing.T) {
	p, err := NewPhase(uuid.New(), uuid.New(), "Dev", decimal.NewFromInt(6000), 2, nil)
	require.NoError(t, err)

	require.NoError(t, p.UpdateAmount(decimal.NewFromInt(5000)))
	assert.True(t, p.Amount.Equal(decimal.NewFromInt(5000)))
	assert.Error(t, p.UpdateAmount(decimal.NewFromInt(-1)))
}

func TestPhaseChangeStatus(t *testing.T) {
	p, err := NewPhase(uuid.New(), uuid.New(), "Dev", decimal.NewFromInt(6000), 1, nil)
	require.NoError(t, err)

	require.NoError(t, p.ChangeStatus(PhaseStatusInProgress))
	require.NoError(t, p.ChangeStatus(PhaseStatusCompleted))
	assert.Error(t, p.ChangeStatus(PhaseStatus("DONE")))
}

func TestPhaseRename(t *testing.T) {
	p, err := NewPhase(uuid.New(), uuid.New(), "Dev", decimal.NewFromInt(6000), 1, nil)
	require.NoError(t, err)

	require.NoError(t, p.Rename("Development"))
	assert.Equal(t, "Development", p.Name)
	assert.Error(t, p.Rename(""))
}

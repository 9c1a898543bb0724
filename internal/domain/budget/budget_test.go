package budget

import (
	"testing"

	"github.com/Whapy-Dev/Whapy-CRM-sub000/internal/domain/shared"
	"github.com/Whapy-Dev/Whapy-CRM-sub000/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBudget(t *testing.T) {
	actorID := uuid.New()
	projectID := uuid.New()

	t.Run("creates budget with defaults", func(t *testing.T) {
		b, err := NewBudget(actorID, projectID, decimal.NewFromInt(10000), decimal.Zero, "", "", nil)
		require.NoError(t, err)
		assert.Equal(t, projectID, b.ProjectID)
		assert.Equal(t, StatusUnsubmitted, b.Status)
		assert.Equal(t, valueobject.EUR, b.Currency)
		assert.Equal(t, 1, b.GetVersion())
		require.NotNil(t, b.GetCreatedBy())
		assert.Equal(t, actorID, *b.GetCreatedBy())
	})

	t.Run("rejects empty project", func(t *testing.T) {
		_, err := NewBudget(actorID, uuid.Nil, decimal.NewFromInt(100), decimal.Zero, "", "", nil)
		require.Error(t, err)
		var de *shared.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, "VALIDATION_ERROR", de.Code)
	})

	t.Run("rejects negative amount", func(t *testing.T) {
		_, err := NewBudget(actorID, projectID, decimal.NewFromInt(-1), decimal.Zero, "", "", nil)
		assert.Error(t, err)
	})

	t.Run("rejects zero amount plus addendum", func(t *testing.T) {
		_, err := NewBudget(actorID, projectID, decimal.Zero, decimal.Zero, "", "", nil)
		assert.Error(t, err)
	})

	t.Run("zero amount with positive addendum is allowed", func(t *testing.T) {
		b, err := NewBudget(actorID, projectID, decimal.Zero, decimal.NewFromInt(500), "", "", nil)
		require.NoError(t, err)
		assert.True(t, b.Amount.IsZero())
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		_, err := NewBudget(actorID, projectID, decimal.NewFromInt(100), decimal.Zero, "", Status("DRAFT"), nil)
		assert.Error(t, err)
	})
}

func TestBudgetChangeStatus(t *testing.T) {
	actorID := uuid.New()
	b, err := NewBudget(actorID, uuid.New(), decimal.NewFromInt(10000), decimal.Zero, "", StatusUnsubmitted, nil)
	require.NoError(t, err)

	t.Run("any status is reachable from any status", func(t *testing.T) {
		require.NoError(t, b.ChangeStatus(StatusAccepted))
		assert.True(t, b.IsAccepted())
		require.NoError(t, b.ChangeStatus(StatusRejected))
		require.NoError(t, b.ChangeStatus(StatusUnderReview))
		require.NoError(t, b.ChangeStatus(StatusUnsubmitted))
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		assert.Error(t, b.ChangeStatus(Status("LIMBO")))
	})

	t.Run("increments version on change", func(t *testing.T) {
		before := b.GetVersion()
		require.NoError(t, b.ChangeStatus(StatusAccepted))
		assert.Equal(t, before+1, b.GetVersion())
	})
}

func TestBudgetUpdateAmount(t *testing.T) {
	b, err := NewBudget(uuid.New(), uuid.New(), decimal.NewFromInt(10000), decimal.Zero, "", "", nil)
	require.NoError(t, err)

	t.Run("replaces amount", func(t *testing.T) {
		require.NoError(t, b.UpdateAmount(decimal.NewFromInt(12000)))
		assert.True(t, b.Amount.Equal(decimal.NewFromInt(12000)))
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		assert.Error(t, b.UpdateAmount(decimal.Zero))
		assert.Error(t, b.UpdateAmount(decimal.NewFromInt(-5)))
	})
}

func TestNewReviewerAssignment(t *testing.T) {
	t.Run("creates assignment", func(t *testing.T) {
		a, err := NewReviewerAssignment(uuid.New(), uuid.New())
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, a.GetID())
	})

	t.Run("rejects empty ids", func(t *testing.T) {
		_, err := NewReviewerAssignment(uuid.Nil, uuid.New())
		assert.Error(t, err)
		_, err = NewReviewerAssignment(uuid.New(), uuid.Nil)
		assert.Error(t, err)
	})
}

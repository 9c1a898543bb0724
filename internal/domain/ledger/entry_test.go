package ledger

import (
	"testing"
	"time"

	"github.com/Whapy-Dev/Whapy-CRM-sub000/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEntry(t *testing.T) {
	actorID := uuid.New()

	t.Run("creates manual income entry without links", func(t *testing.T) {
		e, err := NewEntry(actorID, "Consulting fee", decimal.NewFromInt(1500), "", "one-off", nil, nil, valueobject.AttachmentRef{})
		require.NoError(t, err)
		assert.Nil(t, e.InstallmentID)
		assert.Nil(t, e.BudgetID)
		assert.Equal(t, valueobject.EUR, e.Currency)
	})

	t.Run("rejects blank label", func(t *testing.T) {
		_, err := NewEntry(actorID, "  ", decimal.NewFromInt(100), "", "", nil, nil, valueobject.AttachmentRef{})
		assert.Error(t, err)
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		_, err := NewEntry(actorID, "Fee", decimal.Zero, "", "", nil, nil, valueobject.AttachmentRef{})
		assert.Error(t, err)
	})
}

func TestNewInstallmentEntry(t *testing.T) {
	installmentID := uuid.New()
	budgetID := uuid.New()
	ref, err := valueobject.NewAttachmentRef("invoices", "inv.pdf")
	require.NoError(t, err)

	e, err := NewInstallmentEntry(uuid.New(), "Installment payment", decimal.NewFromInt(1000), valueobject.EUR, "1 of 3", installmentID, budgetID, ref)
	require.NoError(t, err)
	require.NotNil(t, e.InstallmentID)
	assert.Equal(t, installmentID, *e.InstallmentID)
	require.NotNil(t, e.BudgetID)
	assert.Equal(t, budgetID, *e.BudgetID)
	assert.Equal(t, "1 of 3", e.Description)
	assert.Equal(t, ref, e.InvoiceRef)
}

func TestNewExpense(t *testing.T) {
	actorID := uuid.New()
	projectID := uuid.New()

	t.Run("creates expense", func(t *testing.T) {
		incurred := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
		e, err := NewExpense(actorID, projectID, decimal.NewFromInt(250), "", "Travel", "Ana Ruiz", incurred)
		require.NoError(t, err)
		assert.Equal(t, "Ana Ruiz", e.ResponsibleName)
		assert.Equal(t, incurred, e.IncurredAt)
	})

	t.Run("defaults incurred time when zero", func(t *testing.T) {
		e, err := NewExpense(actorID, projectID, decimal.NewFromInt(250), "", "Travel", "", time.Time{})
		require.NoError(t, err)
		assert.False(t, e.IncurredAt.IsZero())
	})

	t.Run("rejects blank description", func(t *testing.T) {
		_, err := NewExpense(actorID, projectID, decimal.NewFromInt(250), "", " ", "", time.Now())
		assert.Error(t, err)
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		_, err := NewExpense(actorID, projectID, decimal.Zero, "", "Travel", "", time.Now())
		assert.Error(t, err)
	})
}

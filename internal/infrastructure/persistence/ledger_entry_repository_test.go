package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/Whapy-Dev/Whapy-CRM-sub000/internal/domain/ledger"
	"github.com/Whapy-Dev/Whapy-CRM-sub000/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEntry(t *testing.T, budgetID uuid.UUID, amount int64, createdAt time.Time) *ledger.Entry {
	installmentID := uuid.New()
	e, err := ledger.NewInstallmentEntry(uuid.New(), "Installment payment", decimal.NewFromInt(amount), "", "1 of 1", installmentID, budgetID, valueobject.AttachmentRef{})
	require.NoError(t, err)
	if !createdAt.IsZero() {
		e.CreatedAt = createdAt
	}
	return e
}

func TestGormLedgerEntryRepository_SaveAndFind(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormLedgerEntryRepository(db)
	ctx := context.Background()

	budgetID := uuid.New()
	e := newTestEntry(t, budgetID, 2500, time.Time{})
	e.InvoiceRef = valueobject.AttachmentRef{Bucket: "whapy-invoices", Key: "invoices/x/invoice.pdf"}
	require.NoError(t, repo.Save(ctx, e))

	found, err := repo.FindByID(ctx, e.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, e.Label, found.Label)
	assert.True(t, found.Amount.Equal(decimal.NewFromInt(2500)))
	require.NotNil(t, found.BudgetID)
	assert.Equal(t, budgetID, *found.BudgetID)
	assert.Equal(t, e.InvoiceRef, found.InvoiceRef)

	missing, err := repo.FindByID(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestGormLedgerEntryRepository_ExistsForInstallment(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormLedgerEntryRepository(db)
	ctx := context.Background()

	e := newTestEntry(t, uuid.New(), 1000, time.Time{})
	require.NoError(t, repo.Save(ctx, e))

	exists, err := repo.ExistsForInstallment(ctx, *e.InstallmentID)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsForInstallment(ctx, uuid.New())
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestGormLedgerEntryRepository_RangeQueries(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormLedgerEntryRepository(db)
	ctx := context.Background()

	budgetID := uuid.New()
	jan := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	feb := time.Date(2026, 2, 15, 12, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Save(ctx, newTestEntry(t, budgetID, 1000, jan)))
	require.NoError(t, repo.Save(ctx, newTestEntry(t, budgetID, 2000, feb)))

	t.Run("lists entries within the range", func(t *testing.T) {
		from := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

		entries, err := repo.FindByBudgetIDInRange(ctx, budgetID, from, to)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.True(t, entries[0].Amount.Equal(decimal.NewFromInt(2000)))
	})

	t.Run("sums entries within the range", func(t *testing.T) {
		from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

		sum, err := repo.SumByBudgetIDInRange(ctx, budgetID, from, to)
		require.NoError(t, err)
		assert.True(t, sum.Equal(decimal.NewFromInt(1000)), "got %s", sum)
	})

	t.Run("sums all entries of a budget", func(t *testing.T) {
		sum, err := repo.SumByBudgetID(ctx, budgetID)
		require.NoError(t, err)
		assert.True(t, sum.Equal(decimal.NewFromInt(3000)), "got %s", sum)
	})

	t.Run("lists all entries of a budget in order", func(t *testing.T) {
		entries, err := repo.FindByBudgetID(ctx, budgetID)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.True(t, entries[0].Amount.Equal(decimal.NewFromInt(1000)))
	})
}

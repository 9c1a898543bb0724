package persistence

import (
	"context"
	"testing"

	"github.com/Whapy-Dev/Whapy-CRM-sub000/internal/domain/budget"
	"github.com/Whapy-Dev/Whapy-CRM-sub000/internal/domain/shared"
	"github.com/Whapy-Dev/Whapy-CRM-sub000/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.BudgetModel{},
		&models.PhaseModel{},
		&models.InstallmentModel{},
		&models.AddendumModel{},
		&models.ReviewerAssignmentModel{},
		&models.LedgerEntryModel{},
		&models.ExpenseModel{},
		&models.AuditEntryModel{},
	)
	require.NoError(t, err)

	return db
}

func newTestBudget(t *testing.T, amount int64) *budget.Budget {
	b, err := budget.NewBudget(uuid.New(), uuid.New(), decimal.NewFromInt(amount), decimal.Zero, "", budget.StatusAccepted, nil)
	require.NoError(t, err)
	return b
}

func TestGormBudgetRepository_SaveAndFind(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormBudgetRepository(db)
	ctx := context.Background()

	t.Run("saves and finds a budget by ID", func(t *testing.T) {
		b := newTestBudget(t, 10000)
		require.NoError(t, repo.Save(ctx, b))

		found, err := repo.FindByID(ctx, b.ID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, b.ID, found.ID)
		assert.Equal(t, b.ProjectID, found.ProjectID)
		assert.True(t, found.Amount.Equal(decimal.NewFromInt(10000)))
		assert.Equal(t, budget.StatusAccepted, found.Status)
		assert.Equal(t, b.CreatedBy, found.CreatedBy)
	})

	t.Run("returns nil for a missing budget", func(t *testing.T) {
		found, err := repo.FindByID(ctx, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("finds a budget by project", func(t *testing.T) {
		b := newTestBudget(t, 5000)
		require.NoError(t, repo.Save(ctx, b))

		found, err := repo.FindByProjectID(ctx, b.ProjectID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, b.ID, found.ID)

		missing, err := repo.FindByProjectID(ctx, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, missing)
	})
}

func TestGormBudgetRepository_ExistsForProject(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormBudgetRepository(db)
	ctx := context.Background()

	b := newTestBudget(t, 1000)
	require.NoError(t, repo.Save(ctx, b))

	exists, err := repo.ExistsForProject(ctx, b.ProjectID)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsForProject(ctx, uuid.New())
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestGormBudgetRepository_SaveWithLock(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormBudgetRepository(db)
	ctx := context.Background()

	t.Run("updates when the version matches", func(t *testing.T) {
		b := newTestBudget(t, 1000)
		require.NoError(t, repo.Save(ctx, b))

		b.Amount = decimal.NewFromInt(2000)
		b.IncrementVersion()
		require.NoError(t, repo.SaveWithLock(ctx, b))

		found, err := repo.FindByID(ctx, b.ID)
		require.NoError(t, err)
		assert.True(t, found.Amount.Equal(decimal.NewFromInt(2000)))
		assert.Equal(t, 2, found.Version)
	})

	t.Run("rejects a stale version", func(t *testing.T) {
		b := newTestBudget(t, 1000)
		require.NoError(t, repo.Save(ctx, b))

		stale := *b
		stale.IncrementVersion()
		require.NoError(t, repo.SaveWithLock(ctx, &stale))

		conflicting := *b
		conflicting.IncrementVersion()
		err := repo.SaveWithLock(ctx, &conflicting)
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "VERSION_CONFLICT", domainErr.Code)
	})
}

func TestGormBudgetRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormBudgetRepository(db)
	ctx := context.Background()

	b := newTestBudget(t, 1000)
	require.NoError(t, repo.Save(ctx, b))
	require.NoError(t, repo.Delete(ctx, b.ID))

	found, err := repo.FindByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Nil(t, found)
}

package persistence

import (
	"context"
	"errors"
	"testing"

	appbudget "github.com/Whapy-Dev/Whapy-CRM-sub000/internal/application/budget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormTransactionScope_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("commits when the function succeeds", func(t *testing.T) {
		db := setupTestDB(t)
		scope := NewGormTransactionScope(db)

		b := newTestBudget(t, 10000)
		p := newTestPhase(t, b.ID, 4000, 1)

		err := scope.Execute(ctx, func(repos appbudget.TransactionalRepositories) error {
			if err := repos.BudgetRepo().Save(ctx, b); err != nil {
				return err
			}
			return repos.PhaseRepo().Save(ctx, p)
		})
		require.NoError(t, err)

		found, err := NewGormBudgetRepository(db).FindByID(ctx, b.ID)
		require.NoError(t, err)
		assert.NotNil(t, found)

		phases, err := NewGormPhaseRepository(db).FindByBudgetID(ctx, b.ID)
		require.NoError(t, err)
		assert.Len(t, phases, 1)
	})

	t.Run("rolls back when the function fails", func(t *testing.T) {
		db := setupTestDB(t)
		scope := NewGormTransactionScope(db)

		b := newTestBudget(t, 10000)
		failure := errors.New("downstream failure")

		err := scope.Execute(ctx, func(repos appbudget.TransactionalRepositories) error {
			if err := repos.BudgetRepo().Save(ctx, b); err != nil {
				return err
			}
			return failure
		})
		require.ErrorIs(t, err, failure)

		found, err := NewGormBudgetRepository(db).FindByID(ctx, b.ID)
		require.NoError(t, err)
		assert.Nil(t, found)
	})
}

package report

import (
	"context"
	"testing"
	"time"

	"github.com/Whapy-Dev/Whapy-CRM-sub000/internal/domain/budget"
	"github.com/Whapy-Dev/Whapy-CRM-sub000/internal/domain/ledger"
	"github.com/Whapy-Dev/Whapy-CRM-sub000/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type pnlFixture struct {
	budgets  *MockBudgetRepository
	addenda  *MockAddendumRepository
	entries  *MockEntryRepository
	expenses *MockExpenseRepository
	audits   *MockAuditRepository
	svc      *PnLService
}

func newPnLFixture() *pnlFixture {
	f := &pnlFixture{
		budgets:  new(MockBudgetRepository),
		addenda:  new(MockAddendumRepository),
		entries:  new(MockEntryRepository),
		expenses: new(MockExpenseRepository),
		audits:   new(MockAuditRepository),
	}
	f.svc = NewPnLService(f.budgets, f.addenda, f.entries, f.expenses, f.audits, nil)
	return f
}

func testBudget(t *testing.T, amount int64) *budget.Budget {
	t.Helper()
	b, err := budget.NewBudget(uuid.New(), uuid.New(), decimal.NewFromInt(amount), decimal.Zero, "", budget.StatusAccepted, nil)
	require.NoError(t, err)
	return b
}

func assertDomainCode(t *testing.T, err error, code string) {
	t.Helper()
	var de *shared.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, code, de.Code)
}

func TestDayRange(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Madrid")
	require.NoError(t, err)

	from := time.Date(2026, 3, 10, 15, 30, 0, 0, loc)
	to := time.Date(2026, 3, 12, 9, 0, 0, 0, loc)

	start, end := dayRange(from, to)
	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, loc), start)
	assert.Equal(t, time.Date(2026, 3, 13, 0, 0, 0, 0, loc), end)

	t.Run("single day covers the whole day", func(t *testing.T) {
		day := time.Date(2026, 3, 10, 12, 0, 0, 0, loc)
		start, end := dayRange(day, day)
		assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, loc), start)
		assert.Equal(t, time.Date(2026, 3, 11, 0, 0, 0, 0, loc), end)
	})
}

func TestPnLServiceGetPnL(t *testing.T) {
	ctx := context.Background()
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)

	t.Run("computes income, expense, margin and pending", func(t *testing.T) {
		f := newPnLFixture()
		b := testBudget(t, 10000)

		f.budgets.On("FindByID", ctx, b.ID).Return(b, nil)
		f.entries.On("SumByBudgetIDInRange", ctx, b.ID, mock.Anything, mock.Anything).Return(decimal.NewFromInt(4000), nil)
		f.expenses.On("SumByFilter", ctx, mock.AnythingOfType("ledger.ExpenseFilter")).Return(decimal.NewFromInt(1000), nil)
		f.entries.On("SumByBudgetID", ctx, b.ID).Return(decimal.NewFromInt(6000), nil)
		f.addenda.On("SumAmountByBudgetID", ctx, b.ID).Return(decimal.NewFromInt(500), nil)

		resp, err := f.svc.GetPnL(ctx, PnLQuery{BudgetID: &b.ID, From: from, To: to})
		require.NoError(t, err)
		assert.True(t, resp.TotalIncome.Equal(decimal.NewFromInt(4000)))
		assert.True(t, resp.TotalExpense.Equal(decimal.NewFromInt(1000)))
		assert.True(t, resp.Balance.Equal(decimal.NewFromInt(3000)))
		assert.Equal(t, "75", resp.MarginPercent.String())
		assert.True(t, resp.CashCollected.Equal(decimal.NewFromInt(6000)))
		assert.True(t, resp.PendingToCollect.Equal(decimal.NewFromInt(4500)))
	})

	t.Run("empty range yields zeros and a zero margin", func(t *testing.T) {
		f := newPnLFixture()
		b := testBudget(t, 10000)

		f.budgets.On("FindByID", ctx, b.ID).Return(b, nil)
		f.entries.On("SumByBudgetIDInRange", ctx, b.ID, mock.Anything, mock.Anything).Return(decimal.Zero, nil)
		f.expenses.On("SumByFilter", ctx, mock.Anything).Return(decimal.Zero, nil)
		f.entries.On("SumByBudgetID", ctx, b.ID).Return(decimal.Zero, nil)
		f.addenda.On("SumAmountByBudgetID", ctx, b.ID).Return(decimal.Zero, nil)

		resp, err := f.svc.GetPnL(ctx, PnLQuery{BudgetID: &b.ID, From: from, To: to})
		require.NoError(t, err)
		assert.True(t, resp.TotalIncome.IsZero())
		assert.True(t, resp.Balance.IsZero())
		assert.True(t, resp.MarginPercent.IsZero())
		assert.True(t, resp.PendingToCollect.Equal(decimal.NewFromInt(10000)))
	})

	t.Run("negative balance produces a negative margin", func(t *testing.T) {
		f := newPnLFixture()
		b := testBudget(t, 10000)

		f.budgets.On("FindByID", ctx, b.ID).Return(b, nil)
		f.entries.On("SumByBudgetIDInRange", ctx, b.ID, mock.Anything, mock.Anything).Return(decimal.NewFromInt(1000), nil)
		f.expenses.On("SumByFilter", ctx, mock.Anything).Return(decimal.NewFromInt(1500), nil)
		f.entries.On("SumByBudgetID", ctx, b.ID).Return(decimal.NewFromInt(1000), nil)
		f.addenda.On("SumAmountByBudgetID", ctx, b.ID).Return(decimal.Zero, nil)

		resp, err := f.svc.GetPnL(ctx, PnLQuery{BudgetID: &b.ID, From: from, To: to})
		require.NoError(t, err)
		assert.Equal(t, "-50", resp.MarginPercent.String())
	})

	t.Run("resolves the budget by project", func(t *testing.T) {
		f := newPnLFixture()
		b := testBudget(t, 10000)

		f.budgets.On("FindByProjectID", ctx, b.ProjectID).Return(b, nil)
		f.entries.On("SumByBudgetIDInRange", ctx, b.ID, mock.Anything, mock.Anything).Return(decimal.Zero, nil)
		f.expenses.On("SumByFilter", ctx, mock.Anything).Return(decimal.Zero, nil)
		f.entries.On("SumByBudgetID", ctx, b.ID).Return(decimal.Zero, nil)
		f.addenda.On("SumAmountByBudgetID", ctx, b.ID).Return(decimal.Zero, nil)

		resp, err := f.svc.GetPnL(ctx, PnLQuery{ProjectID: &b.ProjectID, From: from, To: to})
		require.NoError(t, err)
		assert.Equal(t, b.ID, resp.BudgetID)
	})

	t.Run("requires a budget or project selector", func(t *testing.T) {
		f := newPnLFixture()
		_, err := f.svc.GetPnL(ctx, PnLQuery{From: from, To: to})
		assertDomainCode(t, err, "VALIDATION_ERROR")
	})

	t.Run("rejects an inverted range", func(t *testing.T) {
		f := newPnLFixture()
		b := testBudget(t, 10000)
		f.budgets.On("FindByID", ctx, b.ID).Return(b, nil)

		_, err := f.svc.GetPnL(ctx, PnLQuery{BudgetID: &b.ID, From: to, To: from})
		assertDomainCode(t, err, "VALIDATION_ERROR")
	})

	t.Run("budget not found", func(t *testing.T) {
		f := newPnLFixture()
		id := uuid.New()
		f.budgets.On("FindByID", ctx, id).Return(nil, nil)

		_, err := f.svc.GetPnL(ctx, PnLQuery{BudgetID: &id, From: from, To: to})
		assertDomainCode(t, err, "NOT_FOUND")
	})
}

func TestPnLServiceAddManualIncome(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New()

	t.Run("records income with no installment link", func(t *testing.T) {
		f := newPnLFixture()
		f.entries.On("Save", ctx, mock.AnythingOfType("*ledger.Entry")).Return(nil)
		f.audits.On("Save", ctx, mock.Anything).Return(nil)

		resp, err := f.svc.AddManualIncome(ctx, AddManualIncomeRequest{
			Label:   "Consulting fee",
			Amount:  decimal.NewFromInt(750),
			ActorID: actorID,
		})
		require.NoError(t, err)
		assert.Nil(t, resp.InstallmentID)
		assert.Nil(t, resp.BudgetID)
		assert.True(t, resp.Amount.Equal(decimal.NewFromInt(750)))
	})

	t.Run("verifies the linked budget", func(t *testing.T) {
		f := newPnLFixture()
		id := uuid.New()
		f.budgets.On("FindByID", ctx, id).Return(nil, nil)

		_, err := f.svc.AddManualIncome(ctx, AddManualIncomeRequest{
			Label:    "Consulting fee",
			Amount:   decimal.NewFromInt(750),
			BudgetID: &id,
			ActorID:  actorID,
		})
		assertDomainCode(t, err, "NOT_FOUND")
		f.entries.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects a blank label", func(t *testing.T) {
		f := newPnLFixture()
		_, err := f.svc.AddManualIncome(ctx, AddManualIncomeRequest{
			Label:   "  ",
			Amount:  decimal.NewFromInt(750),
			ActorID: actorID,
		})
		assertDomainCode(t, err, "VALIDATION_ERROR")
	})
}

func TestPnLServiceExpenses(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New()

	t.Run("create expense defaults the incurred date", func(t *testing.T) {
		f := newPnLFixture()
		f.expenses.On("Save", ctx, mock.AnythingOfType("*ledger.Expense")).Return(nil)
		f.audits.On("Save", ctx, mock.Anything).Return(nil)

		resp, err := f.svc.CreateExpense(ctx, CreateExpenseRequest{
			ProjectID:       uuid.New(),
			Amount:          decimal.NewFromInt(120),
			Description:     "Travel",
			ResponsibleName: "Ana",
			ActorID:         actorID,
		})
		require.NoError(t, err)
		assert.False(t, resp.IncurredAt.IsZero())
	})

	t.Run("list expenses widens the range to whole days", func(t *testing.T) {
		f := newPnLFixture()
		projectID := uuid.New()
		day := time.Date(2026, 2, 10, 18, 45, 0, 0, time.UTC)

		e, err := ledger.NewExpense(actorID, projectID, decimal.NewFromInt(120), "", "Travel", "Ana", day)
		require.NoError(t, err)

		f.expenses.On("FindByFilter", ctx, ledger.ExpenseFilter{
			ProjectID: projectID,
			From:      time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC),
			To:        time.Date(2026, 2, 11, 0, 0, 0, 0, time.UTC),
		}).Return([]ledger.Expense{*e}, nil)

		expenses, err := f.svc.ListExpenses(ctx, ExpenseListQuery{ProjectID: projectID, From: day, To: day})
		require.NoError(t, err)
		require.Len(t, expenses, 1)
		assert.Equal(t, "Ana", expenses[0].ResponsibleName)
	})

	t.Run("delete expense", func(t *testing.T) {
		f := newPnLFixture()
		e, err := ledger.NewExpense(actorID, uuid.New(), decimal.NewFromInt(120), "", "Travel", "Ana", time.Now())
		require.NoError(t, err)

		f.expenses.On("FindByID", ctx, e.ID).Return(e, nil)
		f.expenses.On("Delete", ctx, e.ID).Return(nil)
		f.audits.On("Save", ctx, mock.Anything).Return(nil)

		require.NoError(t, f.svc.DeleteExpense(ctx, e.ID, actorID))
	})

	t.Run("delete expense not found", func(t *testing.T) {
		f := newPnLFixture()
		id := uuid.New()
		f.expenses.On("FindByID", ctx, id).Return(nil, nil)

		err := f.svc.DeleteExpense(ctx, id, actorID)
		assertDomainCode(t, err, "NOT_FOUND")
	})
}

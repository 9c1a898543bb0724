package report

import (
	"context"
	"time"

	"github.com/Whapy-Dev/Whapy-CRM-sub000/internal/domain/audit"
	"github.com/Whapy-Dev/Whapy-CRM-sub000/internal/domain/budget"
	"github.com/Whapy-Dev/Whapy-CRM-sub000/internal/domain/ledger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type MockBudgetRepository struct {
	mock.Mock
}

func (m *MockBudgetRepository) FindByID(ctx context.Context, id uuid.UUID) (*budget.Budget, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*budget.Budget), args.Error(1)
}

func (m *MockBudgetRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*budget.Budget, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*budget.Budget), args.Error(1)
}

func (m *MockBudgetRepository) FindByProjectID(ctx context.Context, projectID uuid.UUID) (*budget.Budget, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*budget.Budget), args.Error(1)
}

func (m *MockBudgetRepository) ExistsForProject(ctx context.Context, projectID uuid.UUID) (bool, error) {
	args := m.Called(ctx, projectID)
	return args.Bool(0), args.Error(1)
}

func (m *MockBudgetRepository) Save(ctx context.Context, b *budget.Budget) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBudgetRepository) SaveWithLock(ctx context.Context, b *budget.Budget) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBudgetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockAddendumRepository struct {
	mock.Mock
}

func (m *MockAddendumRepository) FindByID(ctx context.Context, id uuid.UUID) (*budget.Addendum, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*budget.Addendum), args.Error(1)
}

func (m *MockAddendumRepository) FindByBudgetID(ctx context.Context, budgetID uuid.UUID) ([]budget.Addendum, error) {
	args := m.Called(ctx, budgetID)
	return args.Get(0).([]budget.Addendum), args.Error(1)
}

func (m *MockAddendumRepository) SumAmountByBudgetID(ctx context.Context, budgetID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, budgetID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockAddendumRepository) Save(ctx context.Context, a *budget.Addendum) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAddendumRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAddendumRepository) DeleteByBudgetID(ctx context.Context, budgetID uuid.UUID) error {
	args := m.Called(ctx, budgetID)
	return args.Error(0)
}

type MockEntryRepository struct {
	mock.Mock
}

func (m *MockEntryRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Entry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Entry), args.Error(1)
}

func (m *MockEntryRepository) FindByBudgetID(ctx context.Context, budgetID uuid.UUID) ([]ledger.Entry, error) {
	args := m.Called(ctx, budgetID)
	return args.Get(0).([]ledger.Entry), args.Error(1)
}

func (m *MockEntryRepository) FindByBudgetIDInRange(ctx context.Context, budgetID uuid.UUID, from, to time.Time) ([]ledger.Entry, error) {
	args := m.Called(ctx, budgetID, from, to)
	return args.Get(0).([]ledger.Entry), args.Error(1)
}

func (m *MockEntryRepository) ExistsForInstallment(ctx context.Context, installmentID uuid.UUID) (bool, error) {
	args := m.Called(ctx, installmentID)
	return args.Bool(0), args.Error(1)
}

func (m *MockEntryRepository) SumByBudgetIDInRange(ctx context.Context, budgetID uuid.UUID, from, to time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, budgetID, from, to)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockEntryRepository) SumByBudgetID(ctx context.Context, budgetID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, budgetID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockEntryRepository) Save(ctx context.Context, e *ledger.Entry) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

type MockExpenseRepository struct {
	mock.Mock
}

func (m *MockExpenseRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Expense, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Expense), args.Error(1)
}

func (m *MockExpenseRepository) FindByFilter(ctx context.Context, filter ledger.ExpenseFilter) ([]ledger.Expense, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]ledger.Expense), args.Error(1)
}

func (m *MockExpenseRepository) SumByFilter(ctx context.Context, filter ledger.ExpenseFilter) (decimal.Decimal, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockExpenseRepository) Save(ctx context.Context, e *ledger.Expense) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockExpenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockAuditRepository struct {
	mock.Mock
}

func (m *MockAuditRepository) Save(ctx context.Context, e *audit.Entry) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

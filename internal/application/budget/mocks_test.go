package budget

import (
	"context"
	"io"
	"time"

	"github.com/Whapy-Dev/Whapy-CRM-sub000/internal/domain/audit"
	"github.com/Whapy-Dev/Whapy-CRM-sub000/internal/domain/budget"
	"github.com/Whapy-Dev/Whapy-CRM-sub000/internal/domain/ledger"
	"github.com/Whapy-Dev/Whapy-CRM-sub000/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// =============================================================================
// Mock repositories shared across the service tests
// =============================================================================

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

type MockPhaseRepository struct {
	mock.Mock
}

func (m *MockPhaseRepository) FindByID(ctx context.Context, id uuid.UUID) (*budget.Phase, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*budget.Phase), args.Error(1)
}

func (m *MockPhaseRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*budget.Phase, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*budget.Phase), args.Error(1)
}

func (m *MockPhaseRepository) FindByBudgetID(ctx context.Context, budgetID uuid.UUID) ([]budget.Phase, error) {
	args := m.Called(ctx, budgetID)
	return args.Get(0).([]budget.Phase), args.Error(1)
}

func (m *MockPhaseRepository) SumAmountByBudgetID(ctx context.Context, budgetID uuid.UUID, excludeID *uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, budgetID, excludeID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockPhaseRepository) MaxPositionByBudgetID(ctx context.Context, budgetID uuid.UUID) (int, error) {
	args := m.Called(ctx, budgetID)
	return args.Int(0), args.Error(1)
}

func (m *MockPhaseRepository) Save(ctx context.Context, p *budget.Phase) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPhaseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPhaseRepository) DeleteByBudgetID(ctx context.Context, budgetID uuid.UUID) error {
	args := m.Called(ctx, budgetID)
	return args.Error(0)
}

type MockInstallmentRepository struct {
	mock.Mock
}

func (m *MockInstallmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*budget.Installment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*budget.Installment), args.Error(1)
}

func (m *MockInstallmentRepository) FindByPhaseID(ctx context.Context, phaseID uuid.UUID) ([]budget.Installment, error) {
	args := m.Called(ctx, phaseID)
	return args.Get(0).([]budget.Installment), args.Error(1)
}

func (m *MockInstallmentRepository) FindByBudgetID(ctx context.Context, budgetID uuid.UUID) ([]budget.Installment, error) {
	args := m.Called(ctx, budgetID)
	return args.Get(0).([]budget.Installment), args.Error(1)
}

func (m *MockInstallmentRepository) FindPendingPastDue(ctx context.Context, budgetID uuid.UUID, before time.Time) ([]budget.Installment, error) {
	args := m.Called(ctx, budgetID, before)
	return args.Get(0).([]budget.Installment), args.Error(1)
}

func (m *MockInstallmentRepository) SumAmountByPhaseID(ctx context.Context, phaseID uuid.UUID, excludeID *uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, phaseID, excludeID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockInstallmentRepository) MaxSequenceByPhaseID(ctx context.Context, phaseID uuid.UUID) (int, error) {
	args := m.Called(ctx, phaseID)
	return args.Int(0), args.Error(1)
}

func (m *MockInstallmentRepository) Save(ctx context.Context, i *budget.Installment) error {
	args := m.Called(ctx, i)
	return args.Error(0)
}

func (m *MockInstallmentRepository) SaveBatch(ctx context.Context, installments []*budget.Installment) error {
	args := m.Called(ctx, installments)
	return args.Error(0)
}

func (m *MockInstallmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockInstallmentRepository) DeleteByPhaseID(ctx context.Context, phaseID uuid.UUID) error {
	args := m.Called(ctx, phaseID)
	return args.Error(0)
}

func (m *MockInstallmentRepository) DeleteByBudgetID(ctx context.Context, budgetID uuid.UUID) error {
	args := m.Called(ctx, budgetID)
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

type MockReviewerRepository struct {
	mock.Mock
}

func (m *MockReviewerRepository) FindByBudgetID(ctx context.Context, budgetID uuid.UUID) ([]budget.ReviewerAssignment, error) {
	args := m.Called(ctx, budgetID)
	return args.Get(0).([]budget.ReviewerAssignment), args.Error(1)
}

func (m *MockReviewerRepository) SaveBatch(ctx context.Context, assignments []*budget.ReviewerAssignment) error {
	args := m.Called(ctx, assignments)
	return args.Error(0)
}

func (m *MockReviewerRepository) DeleteByBudgetID(ctx context.Context, budgetID uuid.UUID) error {
	args := m.Called(ctx, budgetID)
	return args.Error(0)
}

type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Entry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Entry), args.Error(1)
}

func (m *MockLedgerRepository) FindByBudgetID(ctx context.Context, budgetID uuid.UUID) ([]ledger.Entry, error) {
	args := m.Called(ctx, budgetID)
	return args.Get(0).([]ledger.Entry), args.Error(1)
}

func (m *MockLedgerRepository) FindByBudgetIDInRange(ctx context.Context, budgetID uuid.UUID, from, to time.Time) ([]ledger.Entry, error) {
	args := m.Called(ctx, budgetID, from, to)
	return args.Get(0).([]ledger.Entry), args.Error(1)
}

func (m *MockLedgerRepository) ExistsForInstallment(ctx context.Context, installmentID uuid.UUID) (bool, error) {
	args := m.Called(ctx, installmentID)
	return args.Bool(0), args.Error(1)
}

func (m *MockLedgerRepository) SumByBudgetIDInRange(ctx context.Context, budgetID uuid.UUID, from, to time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, budgetID, from, to)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockLedgerRepository) SumByBudgetID(ctx context.Context, budgetID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, budgetID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockLedgerRepository) Save(ctx context.Context, e *ledger.Entry) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

type MockAuditRepository struct {
	mock.Mock
}

func (m *MockAuditRepository) Save(ctx context.Context, e *audit.Entry) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

type MockInvoiceStorage struct {
	mock.Mock
}

func (m *MockInvoiceStorage) Store(ctx context.Context, key string, content io.Reader, contentType string) (valueobject.AttachmentRef, error) {
	args := m.Called(ctx, key, content, contentType)
	return args.Get(0).(valueobject.AttachmentRef), args.Error(1)
}

func (m *MockInvoiceStorage) Delete(ctx context.Context, ref valueobject.AttachmentRef) error {
	args := m.Called(ctx, ref)
	return args.Error(0)
}

type MockIdempotencyStore struct {
	mock.Mock
}

func (m *MockIdempotencyStore) MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, key, ttl)
	return args.Bool(0), args.Error(1)
}

func (m *MockIdempotencyStore) IsProcessed(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockIdempotencyStore) Release(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockIdempotencyStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

// testRepos bundles all mocks behind a NoOpTransactionScope
type testRepos struct {
	budgets      *MockBudgetRepository
	phases       *MockPhaseRepository
	installments *MockInstallmentRepository
	addenda      *MockAddendumRepository
	reviewers    *MockReviewerRepository
	ledger       *MockLedgerRepository
	audits       *MockAuditRepository
	scope        *NoOpTransactionScope
}

func newTestRepos() *testRepos {
	r := &testRepos{
		budgets:      new(MockBudgetRepository),
		phases:       new(MockPhaseRepository),
		installments: new(MockInstallmentRepository),
		addenda:      new(MockAddendumRepository),
		reviewers:    new(MockReviewerRepository),
		ledger:       new(MockLedgerRepository),
		audits:       new(MockAuditRepository),
	}
	r.scope = NewNoOpTransactionScope(r.budgets, r.phases, r.installments, r.addenda, r.reviewers, r.ledger, r.audits)
	return r
}

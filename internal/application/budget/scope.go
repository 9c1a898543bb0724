package budget

import (
	"context"

	"github.com/Whapy-Dev/Whapy-CRM-sub000/internal/domain/audit"
	"github.com/Whapy-Dev/Whapy-CRM-sub000/internal/domain/budget"
	"github.com/Whapy-Dev/Whapy-CRM-sub000/internal/domain/ledger"
)

// TransactionScope provides transactional access to the budget-side repositories.
// When a function is executed within a transaction scope, all repository operations
// will be part of the same database transaction and will be committed or rolled back atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to all repositories within a transaction.
// All repositories returned share the same underlying database transaction.
type TransactionalRepositories interface {
	// BudgetRepo returns the budget repository scoped to the current transaction
	BudgetRepo() budget.BudgetRepository
	// PhaseRepo returns the phase repository scoped to the current transaction
	PhaseRepo() budget.PhaseRepository
	// InstallmentRepo returns the installment repository scoped to the current transaction
	InstallmentRepo() budget.InstallmentRepository
	// AddendumRepo returns the addendum repository scoped to the current transaction
	AddendumRepo() budget.AddendumRepository
	// ReviewerRepo returns the reviewer assignment repository scoped to the current transaction
	ReviewerRepo() budget.ReviewerAssignmentRepository
	// LedgerRepo returns the income ledger repository scoped to the current transaction
	LedgerRepo() ledger.EntryRepository
	// AuditRepo returns the audit log repository scoped to the current transaction
	AuditRepo() audit.EntryRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use transactions.
// This is useful for testing or when transaction support is not required.
type NoOpTransactionScope struct {
	budgetRepo      budget.BudgetRepository
	phaseRepo       budget.PhaseRepository
	installmentRepo budget.InstallmentRepository
	addendumRepo    budget.AddendumRepository
	reviewerRepo    budget.ReviewerAssignmentRepository
	ledgerRepo      ledger.EntryRepository
	auditRepo       audit.EntryRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	budgetRepo budget.BudgetRepository,
	phaseRepo budget.PhaseRepository,
	installmentRepo budget.InstallmentRepository,
	addendumRepo budget.AddendumRepository,
	reviewerRepo budget.ReviewerAssignmentRepository,
	ledgerRepo ledger.EntryRepository,
	auditRepo audit.EntryRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		budgetRepo:      budgetRepo,
		phaseRepo:       phaseRepo,
		installmentRepo: installmentRepo,
		addendumRepo:    addendumRepo,
		reviewerRepo:    reviewerRepo,
		ledgerRepo:      ledgerRepo,
		auditRepo:       auditRepo,
	}
}

// Execute runs the function without a real transaction (for testing/compatibility).
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// BudgetRepo returns the budget repository.
func (s *NoOpTransactionScope) BudgetRepo() budget.BudgetRepository { return s.budgetRepo }

// PhaseRepo returns the phase repository.
func (s *NoOpTransactionScope) PhaseRepo() budget.PhaseRepository { return s.phaseRepo }

// InstallmentRepo returns the installment repository.
func (s *NoOpTransactionScope) InstallmentRepo() budget.InstallmentRepository {
	return s.installmentRepo
}

// AddendumRepo returns the addendum repository.
func (s *NoOpTransactionScope) AddendumRepo() budget.AddendumRepository { return s.addendumRepo }

// ReviewerRepo returns the reviewer assignment repository.
func (s *NoOpTransactionScope) ReviewerRepo() budget.ReviewerAssignmentRepository {
	return s.reviewerRepo
}

// LedgerRepo returns the income ledger repository.
func (s *NoOpTransactionScope) LedgerRepo() ledger.EntryRepository { return s.ledgerRepo }

// AuditRepo returns the audit log repository.
func (s *NoOpTransactionScope) AuditRepo() audit.EntryRepository { return s.auditRepo }

// Ensure NoOpTransactionScope implements both interfaces
var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)

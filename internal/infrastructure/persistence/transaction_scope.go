package persistence

import (
	"context"

	appbudget "github.com/Whapy-Dev/Whapy-CRM-sub000/internal/application/budget"
	"github.com/Whapy-Dev/Whapy-CRM-sub000/internal/domain/audit"
	"github.com/Whapy-Dev/Whapy-CRM-sub000/internal/domain/budget"
	"github.com/Whapy-Dev/Whapy-CRM-sub000/internal/domain/ledger"
	"gorm.io/gorm"
)

// GormTransactionScope implements TransactionScope using GORM transactions.
// It provides atomic execution of multiple repository operations.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope.
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
// If the function succeeds, the transaction is committed.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appbudget.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &gormTransactionalRepositories{tx: tx}
		return fn(repos)
	})
}

// gormTransactionalRepositories provides access to all repositories within a transaction.
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// BudgetRepo returns the budget repository scoped to the current transaction.
func (r *gormTransactionalRepositories) BudgetRepo() budget.BudgetRepository {
	return NewGormBudgetRepository(r.tx)
}

// PhaseRepo returns the phase repository scoped to the current transaction.
func (r *gormTransactionalRepositories) PhaseRepo() budget.PhaseRepository {
	return NewGormPhaseRepository(r.tx)
}

// InstallmentRepo returns the installment repository scoped to the current transaction.
func (r *gormTransactionalRepositories) InstallmentRepo() budget.InstallmentRepository {
	return NewGormInstallmentRepository(r.tx)
}

// AddendumRepo returns the addendum repository scoped to the current transaction.
func (r *gormTransactionalRepositories) AddendumRepo() budget.AddendumRepository {
	return NewGormAddendumRepository(r.tx)
}

// ReviewerRepo returns the reviewer assignment repository scoped to the current transaction.
func (r *gormTransactionalRepositories) ReviewerRepo() budget.ReviewerAssignmentRepository {
	return NewGormReviewerAssignmentRepository(r.tx)
}

// LedgerRepo returns the income ledger repository scoped to the current transaction.
func (r *gormTransactionalRepositories) LedgerRepo() ledger.EntryRepository {
	return NewGormLedgerEntryRepository(r.tx)
}

// AuditRepo returns the audit log repository scoped to the current transaction.
func (r *gormTransactionalRepositories) AuditRepo() audit.EntryRepository {
	return NewGormAuditRepository(r.tx)
}

// Ensure GormTransactionScope implements TransactionScope
var _ appbudget.TransactionScope = (*GormTransactionScope)(nil)

// Ensure gormTransactionalRepositories implements TransactionalRepositories
var _ appbudget.TransactionalRepositories = (*gormTransactionalRepositories)(nil)

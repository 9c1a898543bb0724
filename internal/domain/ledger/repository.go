package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EntryRepository defines the interface for income ledger persistence.
// Entries are append-only; there is no update or delete.
type EntryRepository interface {
	// FindByID finds an entry by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Entry, error)

	// FindByBudgetID lists all entries linked to a budget
	FindByBudgetID(ctx context.Context, budgetID uuid.UUID) ([]Entry, error)

	// FindByBudgetIDInRange lists entries linked to a budget created within
	// [from, to)
	FindByBudgetIDInRange(ctx context.Context, budgetID uuid.UUID, from, to time.Time) ([]Entry, error)

	// ExistsForInstallment checks whether an entry was already posted for an
	// installment
	ExistsForInstallment(ctx context.Context, installmentID uuid.UUID) (bool, error)

	// SumByBudgetIDInRange totals the entry amounts linked to a budget created
	// within [from, to)
	SumByBudgetIDInRange(ctx context.Context, budgetID uuid.UUID, from, to time.Time) (decimal.Decimal, error)

	// SumByBudgetID totals all entry amounts ever linked to a budget
	SumByBudgetID(ctx context.Context, budgetID uuid.UUID) (decimal.Decimal, error)

	// Save appends an entry
	Save(ctx context.Context, e *Entry) error
}

// ExpenseFilter narrows expense queries
type ExpenseFilter struct {
	ProjectID   uuid.UUID
	From        time.Time
	To          time.Time
	Responsible string // case-insensitive substring on ResponsibleName
}

// ExpenseRepository defines the interface for expense persistence
type ExpenseRepository interface {
	// FindByID finds an expense by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Expense, error)

	// FindByFilter lists expenses matching the filter, ordered by IncurredAt
	FindByFilter(ctx context.Context, filter ExpenseFilter) ([]Expense, error)

	// SumByFilter totals the expense amounts matching the filter
	SumByFilter(ctx context.Context, filter ExpenseFilter) (decimal.Decimal, error)

	// Save creates or updates an expense
	Save(ctx context.Context, e *Expense) error

	// Delete removes an expense
	Delete(ctx context.Context, id uuid.UUID) error
}

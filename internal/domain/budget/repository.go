package budget

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BudgetRepository defines the interface for budget persistence
type BudgetRepository interface {
	// FindByID finds a budget by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Budget, error)

	// FindByIDForUpdate finds a budget by ID holding a row lock until the
	// surrounding transaction ends. Callers must run inside a transaction scope.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Budget, error)

	// FindByProjectID finds the budget attached to a project
	FindByProjectID(ctx context.Context, projectID uuid.UUID) (*Budget, error)

	// ExistsForProject checks whether a budget already exists for a project
	ExistsForProject(ctx context.Context, projectID uuid.UUID) (bool, error)

	// Save creates or updates a budget
	Save(ctx context.Context, b *Budget) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, b *Budget) error

	// Delete removes a budget
	Delete(ctx context.Context, id uuid.UUID) error
}

// PhaseRepository defines the interface for phase persistence
type PhaseRepository interface {
	// FindByID finds a phase by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Phase, error)

	// FindByIDForUpdate finds a phase by ID holding a row lock until the
	// surrounding transaction ends
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Phase, error)

	// FindByBudgetID lists a budget's phases ordered by position
	FindByBudgetID(ctx context.Context, budgetID uuid.UUID) ([]Phase, error)

	// SumAmountByBudgetID totals the phase amounts allocated under a budget.
	// excludeID skips one phase, for re-checks during amount edits.
	SumAmountByBudgetID(ctx context.Context, budgetID uuid.UUID, excludeID *uuid.UUID) (decimal.Decimal, error)

	// MaxPositionByBudgetID returns the highest phase position under a budget,
	// 0 when the budget has no phases
	MaxPositionByBudgetID(ctx context.Context, budgetID uuid.UUID) (int, error)

	// Save creates or updates a phase
	Save(ctx context.Context, p *Phase) error

	// Delete removes a phase
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteByBudgetID removes all phases of a budget
	DeleteByBudgetID(ctx context.Context, budgetID uuid.UUID) error
}

// InstallmentRepository defines the interface for installment persistence
type InstallmentRepository interface {
	// FindByID finds an installment by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Installment, error)

	// FindByPhaseID lists a phase's installments ordered by sequence number
	FindByPhaseID(ctx context.Context, phaseID uuid.UUID) ([]Installment, error)

	// FindByBudgetID lists all installments under a budget
	FindByBudgetID(ctx context.Context, budgetID uuid.UUID) ([]Installment, error)

	// FindPendingPastDue lists PENDING_PAYMENT installments of a budget whose
	// due date lies before the given instant
	FindPendingPastDue(ctx context.Context, budgetID uuid.UUID, before time.Time) ([]Installment, error)

	// SumAmountByPhaseID totals the installment amounts allocated under a phase.
	// excludeID skips one installment, for re-checks during amount edits.
	SumAmountByPhaseID(ctx context.Context, phaseID uuid.UUID, excludeID *uuid.UUID) (decimal.Decimal, error)

	// MaxSequenceByPhaseID returns the highest sequence number under a phase,
	// 0 when the phase has no installments
	MaxSequenceByPhaseID(ctx context.Context, phaseID uuid.UUID) (int, error)

	// Save creates or updates an installment
	Save(ctx context.Context, i *Installment) error

	// SaveBatch creates several installments at once
	SaveBatch(ctx context.Context, installments []*Installment) error

	// Delete removes an installment
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteByPhaseID removes all installments of a phase
	DeleteByPhaseID(ctx context.Context, phaseID uuid.UUID) error

	// DeleteByBudgetID removes all installments under a budget
	DeleteByBudgetID(ctx context.Context, budgetID uuid.UUID) error
}

// AddendumRepository defines the interface for addendum persistence
type AddendumRepository interface {
	// FindByID finds an addendum by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Addendum, error)

	// FindByBudgetID lists a budget's addenda
	FindByBudgetID(ctx context.Context, budgetID uuid.UUID) ([]Addendum, error)

	// SumAmountByBudgetID totals the addendum amounts attached to a budget
	SumAmountByBudgetID(ctx context.Context, budgetID uuid.UUID) (decimal.Decimal, error)

	// Save creates an addendum
	Save(ctx context.Context, a *Addendum) error

	// Delete removes an addendum
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteByBudgetID removes all addenda of a budget
	DeleteByBudgetID(ctx context.Context, budgetID uuid.UUID) error
}

// ReviewerAssignmentRepository defines the interface for reviewer assignment persistence
type ReviewerAssignmentRepository interface {
	// FindByBudgetID lists the reviewers bound to a budget
	FindByBudgetID(ctx context.Context, budgetID uuid.UUID) ([]ReviewerAssignment, error)

	// SaveBatch creates the assignments for a budget
	SaveBatch(ctx context.Context, assignments []*ReviewerAssignment) error

	// DeleteByBudgetID removes all assignments of a budget
	DeleteByBudgetID(ctx context.Context, budgetID uuid.UUID) error
}

package budget

import (
	"github.com/Whapy-Dev/Whapy-CRM-sub000/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Addendum is a supplemental amount attached to a budget outside the
// phase hierarchy. Purely additive; it never mutates the budget amount.
type Addendum struct {
	shared.AuditedAggregateRoot
	BudgetID uuid.UUID       `json:"budget_id"`
	Amount   decimal.Decimal `json:"amount"`
}

// NewAddendum creates an addendum for a budget
func NewAddendum(actorID, budgetID uuid.UUID, amount decimal.Decimal) (*Addendum, error) {
	if budgetID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Budget ID cannot be empty")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Addendum amount must be positive")
	}
	return &Addendum{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(actorID),
		BudgetID:             budgetID,
		Amount:               amount,
	}, nil
}

package ledger

import (
	"strings"
	"time"

	"github.com/Whapy-Dev/Whapy-CRM-sub000/internal/domain/shared"
	"github.com/Whapy-Dev/Whapy-CRM-sub000/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Expense is a cost record attached to a project. Expenses are sourced
// independently of the budget hierarchy and only feed the P&L view.
type Expense struct {
	shared.AuditedAggregateRoot
	ProjectID       uuid.UUID            `json:"project_id"`
	Amount          decimal.Decimal      `json:"amount"`
	Currency        valueobject.Currency `json:"currency"`
	Description     string               `json:"description"`
	ResponsibleName string               `json:"responsible_name"`
	IncurredAt      time.Time            `json:"incurred_at"`
}

// NewExpense creates an expense record
func NewExpense(
	actorID uuid.UUID,
	projectID uuid.UUID,
	amount decimal.Decimal,
	currency valueobject.Currency,
	description string,
	responsibleName string,
	incurredAt time.Time,
) (*Expense, error) {
	if projectID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Project ID cannot be empty")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Expense amount must be positive")
	}
	if strings.TrimSpace(description) == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Expense description cannot be blank")
	}
	if currency == "" {
		currency = valueobject.DefaultCurrency
	}
	if incurredAt.IsZero() {
		incurredAt = time.Now()
	}
	return &Expense{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(actorID),
		ProjectID:            projectID,
		Amount:               amount,
		Currency:             currency,
		Description:          description,
		ResponsibleName:      responsibleName,
		IncurredAt:           incurredAt,
	}, nil
}

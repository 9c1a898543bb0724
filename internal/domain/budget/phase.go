package budget

import (
	"fmt"
	"strings"
	"time"

	"github.com/Whapy-Dev/Whapy-CRM-sub000/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PhaseStatus represents the progress status of a phase
type PhaseStatus string

const (
	PhaseStatusPending    PhaseStatus = "PENDING"
	PhaseStatusInProgress PhaseStatus = "IN_PROGRESS"
	PhaseStatusCompleted  PhaseStatus = "COMPLETED"
)

// IsValid checks if the status is a valid PhaseStatus
func (s PhaseStatus) IsValid() bool {
	switch s {
	case PhaseStatusPending, PhaseStatusInProgress, PhaseStatusCompleted:
		return true
	}
	return false
}

// String returns the string representation of PhaseStatus
func (s PhaseStatus) String() string {
	return string(s)
}

// Phase is a named slice of a budget's amount grouping related installments.
// The sum of a budget's phase amounts never exceeds the budget amount.
type Phase struct {
	shared.AuditedAggregateRoot
	BudgetID uuid.UUID       `json:"budget_id"`
	Name     string          `json:"name"`
	Amount   decimal.Decimal `json:"amount"`
	Position int             `json:"position"`
	Status   PhaseStatus     `json:"status"`
	DueDate  *time.Time      `json:"due_date,omitempty"`
}

// NewPhase creates a phase in PENDING status.
// The capacity check against the budget is the service's responsibility;
// the constructor only validates the phase's own fields.
func NewPhase(
	actorID uuid.UUID,
	budgetID uuid.UUID,
	name string,
	amount decimal.Decimal,
	position int,
	dueDate *time.Time,
) (*Phase, error) {
	if budgetID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Budget ID cannot be empty")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Phase name cannot be blank")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Phase amount must be positive")
	}
	if position < 0 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Phase position cannot be negative")
	}

	return &Phase{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(actorID),
		BudgetID:             budgetID,
		Name:                 name,
		Amount:               amount,
		Position:             position,
		Status:               PhaseStatusPending,
		DueDate:              dueDate,
	}, nil
}

// Rename changes the phase name
func (p *Phase) Rename(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("VALIDATION_ERROR", "Phase name cannot be blank")
	}
	p.Name = name
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// UpdateAmount replaces the phase amount. The caller re-checks the new
// amount against sibling phases and against this phase's installments.
func (p *Phase) UpdateAmount(newAmount decimal.Decimal) error {
	if newAmount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("VALIDATION_ERROR", "Phase amount must be positive")
	}
	p.Amount = newAmount
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// ChangeStatus moves the phase to a new progress status
func (p *Phase) ChangeStatus(newStatus PhaseStatus) error {
	if !newStatus.IsValid() {
		return shared.NewDomainError("VALIDATION_ERROR", fmt.Sprintf("Unknown phase status %q", newStatus))
	}
	p.Status = newStatus
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// SetDueDate updates the due date
func (p *Phase) SetDueDate(dueDate *time.Time) {
	p.DueDate = dueDate
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

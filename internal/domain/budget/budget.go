package budget

import (
	"fmt"
	"time"

	"github.com/Whapy-Dev/Whapy-CRM-sub000/internal/domain/shared"
	"github.com/Whapy-Dev/Whapy-CRM-sub000/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status represents the review status of a budget
type Status string

const (
	StatusUnsubmitted Status = "UNSUBMITTED"
	StatusUnderReview Status = "UNDER_REVIEW"
	StatusRejected    Status = "REJECTED"
	StatusAccepted    Status = "ACCEPTED"
)

// IsValid checks if the status is a valid budget Status
func (s Status) IsValid() bool {
	switch s {
	case StatusUnsubmitted, StatusUnderReview, StatusRejected, StatusAccepted:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// Budget is the top-level commercial proposal aggregate.
// A project carries at most one budget; its amount is the ceiling for
// the sum of its phases.
type Budget struct {
	shared.AuditedAggregateRoot
	ProjectID        uuid.UUID            `json:"project_id"`
	Amount           decimal.Decimal      `json:"amount"`
	Currency         valueobject.Currency `json:"currency"`
	Status           Status               `json:"status"`
	LinkedDocumentID *uuid.UUID           `json:"linked_document_id,omitempty"`
}

// NewBudget creates a budget in the given status.
// initialAddendum participates only in the non-zero total check; it is
// persisted as a separate Addendum row by the caller.
func NewBudget(
	actorID uuid.UUID,
	projectID uuid.UUID,
	amount decimal.Decimal,
	initialAddendum decimal.Decimal,
	currency valueobject.Currency,
	status Status,
	linkedDocumentID *uuid.UUID,
) (*Budget, error) {
	if projectID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Project ID cannot be empty")
	}
	if amount.IsNegative() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Budget amount cannot be negative")
	}
	if amount.Add(initialAddendum).LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Budget amount plus addendum must be positive")
	}
	if currency == "" {
		currency = valueobject.DefaultCurrency
	}
	if status == "" {
		status = StatusUnsubmitted
	}
	if !status.IsValid() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", fmt.Sprintf("Unknown budget status %q", status))
	}

	return &Budget{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(actorID),
		ProjectID:            projectID,
		Amount:               amount,
		Currency:             currency,
		Status:               status,
		LinkedDocumentID:     linkedDocumentID,
	}, nil
}

// ChangeStatus moves the budget to a new status.
// Any status is reachable from any status.
func (b *Budget) ChangeStatus(newStatus Status) error {
	if !newStatus.IsValid() {
		return shared.NewDomainError("VALIDATION_ERROR", fmt.Sprintf("Unknown budget status %q", newStatus))
	}
	b.Status = newStatus
	b.UpdatedAt = time.Now()
	b.IncrementVersion()
	return nil
}

// UpdateAmount replaces the budget amount. The caller re-validates the
// new amount against the already allocated phase total.
func (b *Budget) UpdateAmount(newAmount decimal.Decimal) error {
	if newAmount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("VALIDATION_ERROR", "Budget amount must be positive")
	}
	b.Amount = newAmount
	b.UpdatedAt = time.Now()
	b.IncrementVersion()
	return nil
}

// SetLinkedDocument attaches or detaches the supporting document reference
func (b *Budget) SetLinkedDocument(documentID *uuid.UUID) {
	b.LinkedDocumentID = documentID
	b.UpdatedAt = time.Now()
	b.IncrementVersion()
}

// IsAccepted returns true if the budget has been accepted
func (b *Budget) IsAccepted() bool {
	return b.Status == StatusAccepted
}

// GetAmountMoney returns the amount as Money in the budget currency
func (b *Budget) GetAmountMoney() valueobject.Money {
	m, _ := valueobject.NewMoney(b.Amount, b.Currency)
	return m
}

// ReviewerAssignment binds a reviewer identity to a budget.
// Assignments are created with the budget and immutable afterwards.
type ReviewerAssignment struct {
	shared.BaseEntity
	BudgetID   uuid.UUID `json:"budget_id"`
	ReviewerID uuid.UUID `json:"reviewer_id"`
}

// NewReviewerAssignment creates a reviewer assignment for a budget
func NewReviewerAssignment(budgetID, reviewerID uuid.UUID) (*ReviewerAssignment, error) {
	if budgetID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Budget ID cannot be empty")
	}
	if reviewerID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Reviewer ID cannot be empty")
	}
	return &ReviewerAssignment{
		BaseEntity: shared.NewBaseEntity(),
		BudgetID:   budgetID,
		ReviewerID: reviewerID,
	}, nil
}

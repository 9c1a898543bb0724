package budget

import (
	"fmt"
	"time"

	"github.com/Whapy-Dev/Whapy-CRM-sub000/internal/domain/shared"
	"github.com/Whapy-Dev/Whapy-CRM-sub000/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InstallmentStatus represents the payment status of an installment
type InstallmentStatus string

const (
	InstallmentStatusPendingPayment InstallmentStatus = "PENDING_PAYMENT"
	InstallmentStatusPaid           InstallmentStatus = "PAID"
	InstallmentStatusOverdue        InstallmentStatus = "OVERDUE"
)

// IsValid checks if the status is a valid InstallmentStatus
func (s InstallmentStatus) IsValid() bool {
	switch s {
	case InstallmentStatusPendingPayment, InstallmentStatusPaid, InstallmentStatusOverdue:
		return true
	}
	return false
}

// String returns the string representation of InstallmentStatus
func (s InstallmentStatus) String() string {
	return string(s)
}

// IsPayable returns true if the installment can still be marked paid.
// Overdue installments remain payable.
func (s InstallmentStatus) IsPayable() bool {
	return s == InstallmentStatusPendingPayment || s == InstallmentStatusOverdue
}

// Installment is the smallest payable unit, belonging to a phase.
// PENDING_PAYMENT to PAID is one-directional and posts an income
// ledger entry.
type Installment struct {
	shared.AuditedAggregateRoot
	PhaseID        uuid.UUID                 `json:"phase_id"`
	BudgetID       uuid.UUID                 `json:"budget_id"`
	Amount         decimal.Decimal           `json:"amount"`
	SequenceNumber int                       `json:"sequence_number"`
	Detail         string                    `json:"detail"`
	Status         InstallmentStatus         `json:"status"`
	Currency       valueobject.Currency      `json:"currency"`
	DueDate        *time.Time                `json:"due_date,omitempty"`
	InvoiceRef     valueobject.AttachmentRef `json:"invoice_ref,omitempty"`
	PaidAt         *time.Time                `json:"paid_at,omitempty"`
}

// InstallmentDetail renders the display label for position seq of total
func InstallmentDetail(seq, total int) string {
	return fmt.Sprintf("%d of %d", seq, total)
}

// NewInstallment creates an installment in PENDING_PAYMENT status.
// seq is 1-based within the phase; total is the batch size used for the
// detail label.
func NewInstallment(
	actorID uuid.UUID,
	phaseID uuid.UUID,
	budgetID uuid.UUID,
	amount decimal.Decimal,
	seq int,
	total int,
	currency valueobject.Currency,
	dueDate *time.Time,
) (*Installment, error) {
	if phaseID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Phase ID cannot be empty")
	}
	if budgetID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Budget ID cannot be empty")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Installment amount must be positive")
	}
	if seq <= 0 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Installment sequence must be positive")
	}
	if total < seq {
		total = seq
	}
	if currency == "" {
		currency = valueobject.DefaultCurrency
	}

	return &Installment{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(actorID),
		PhaseID:              phaseID,
		BudgetID:             budgetID,
		Amount:               amount,
		SequenceNumber:       seq,
		Detail:               InstallmentDetail(seq, total),
		Status:               InstallmentStatusPendingPayment,
		Currency:             currency,
		DueDate:              dueDate,
	}, nil
}

// Edit updates the amount and/or due date of an unpaid installment.
// Nil patch fields leave the current value untouched. The caller
// re-checks amount changes against phase capacity.
func (i *Installment) Edit(amount *decimal.Decimal, dueDate *time.Time) error {
	if i.Status == InstallmentStatusPaid {
		return shared.NewDomainError("INVALID_STATE", "Cannot edit an installment that has been paid")
	}
	if amount != nil {
		if amount.LessThanOrEqual(decimal.Zero) {
			return shared.NewDomainError("VALIDATION_ERROR", "Installment amount must be positive")
		}
		i.Amount = *amount
	}
	if dueDate != nil {
		i.DueDate = dueDate
	}
	i.UpdatedAt = time.Now()
	i.IncrementVersion()
	return nil
}

// MarkPaid transitions the installment to PAID, recording the payment
// time and the optional invoice reference. The transition is
// one-directional.
func (i *Installment) MarkPaid(invoiceRef valueobject.AttachmentRef) error {
	if i.Status == InstallmentStatusPaid {
		return shared.NewDomainError("INVALID_STATE", "Installment has already been paid")
	}
	if !i.Status.IsPayable() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot pay installment in %s status", i.Status))
	}
	now := time.Now()
	i.Status = InstallmentStatusPaid
	i.PaidAt = &now
	if !invoiceRef.IsZero() {
		i.InvoiceRef = invoiceRef
	}
	i.UpdatedAt = now
	i.IncrementVersion()
	return nil
}

// MarkOverdue flags a pending installment whose due date has passed
func (i *Installment) MarkOverdue(now time.Time) bool {
	if i.Status != InstallmentStatusPendingPayment {
		return false
	}
	if i.DueDate == nil || !now.After(*i.DueDate) {
		return false
	}
	i.Status = InstallmentStatusOverdue
	i.UpdatedAt = now
	i.IncrementVersion()
	return true
}

// IsPaid returns true if the installment has been paid
func (i *Installment) IsPaid() bool {
	return i.Status == InstallmentStatusPaid
}

// GetAmountMoney returns the amount as Money in the installment currency
func (i *Installment) GetAmountMoney() valueobject.Money {
	m, _ := valueobject.NewMoney(i.Amount, i.Currency)
	return m
}

package ledger

import (
	"strings"

	"github.com/Whapy-Dev/Whapy-CRM-sub000/internal/domain/shared"
	"github.com/Whapy-Dev/Whapy-CRM-sub000/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Entry is an income ledger record. Entries are immutable once written
// and survive the deletion of the budget hierarchy that produced them.
type Entry struct {
	shared.AuditedAggregateRoot
	Label         string                    `json:"label"`
	Amount        decimal.Decimal           `json:"amount"`
	Currency      valueobject.Currency      `json:"currency"`
	Description   string                    `json:"description"`
	InstallmentID *uuid.UUID                `json:"installment_id,omitempty"`
	BudgetID      *uuid.UUID                `json:"budget_id,omitempty"`
	InvoiceRef    valueobject.AttachmentRef `json:"invoice_ref,omitempty"`
}

// NewEntry creates an income ledger entry
func NewEntry(
	actorID uuid.UUID,
	label string,
	amount decimal.Decimal,
	currency valueobject.Currency,
	description string,
	installmentID *uuid.UUID,
	budgetID *uuid.UUID,
	invoiceRef valueobject.AttachmentRef,
) (*Entry, error) {
	if strings.TrimSpace(label) == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Ledger entry label cannot be blank")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Ledger entry amount must be positive")
	}
	if currency == "" {
		currency = valueobject.DefaultCurrency
	}
	return &Entry{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(actorID),
		Label:                label,
		Amount:               amount,
		Currency:             currency,
		Description:          description,
		InstallmentID:        installmentID,
		BudgetID:             budgetID,
		InvoiceRef:           invoiceRef,
	}, nil
}

// NewInstallmentEntry creates the ledger entry posted when an
// installment is paid
func NewInstallmentEntry(
	actorID uuid.UUID,
	label string,
	amount decimal.Decimal,
	currency valueobject.Currency,
	detail string,
	installmentID uuid.UUID,
	budgetID uuid.UUID,
	invoiceRef valueobject.AttachmentRef,
) (*Entry, error) {
	return NewEntry(actorID, label, amount, currency, detail, &installmentID, &budgetID, invoiceRef)
}

// GetAmountMoney returns the amount as Money in the entry currency
func (e *Entry) GetAmountMoney() valueobject.Money {
	m, _ := valueobject.NewMoney(e.Amount, e.Currency)
	return m
}

package models

import (
	"time"

	"github.com/Whapy-Dev/Whapy-CRM-sub000/internal/domain/ledger"
	"github.com/Whapy-Dev/Whapy-CRM-sub000/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LedgerEntryModel is the persistence model for income ledger entries.
// Rows are append-only; there is no update or delete path.
type LedgerEntryModel struct {
	AuditedAggregateModel
	Label         string                    `gorm:"type:varchar(200);not null"`
	Amount        decimal.Decimal           `gorm:"type:decimal(18,4);not null"`
	Currency      valueobject.Currency      `gorm:"type:varchar(3);not null;default:'EUR'"`
	Description   string                    `gorm:"type:text"`
	InstallmentID *uuid.UUID                `gorm:"type:uuid;index"`
	BudgetID      *uuid.UUID                `gorm:"type:uuid;index"`
	InvoiceRef    valueobject.AttachmentRef `gorm:"type:jsonb"`
}

// TableName returns the table name for GORM
func (LedgerEntryModel) TableName() string {
	return "ledger_entries"
}

// ToDomain converts the persistence model to a domain Entry entity.
func (m *LedgerEntryModel) ToDomain() *ledger.Entry {
	e := &ledger.Entry{
		Label:         m.Label,
		Amount:        m.Amount,
		Currency:      m.Currency,
		Description:   m.Description,
		InstallmentID: m.InstallmentID,
		BudgetID:      m.BudgetID,
		InvoiceRef:    m.InvoiceRef,
	}
	m.PopulateAuditedAggregateRoot(&e.AuditedAggregateRoot)
	return e
}

// FromDomain populates the persistence model from a domain Entry entity.
func (m *LedgerEntryModel) FromDomain(e *ledger.Entry) {
	m.FromDomainAuditedAggregateRoot(e.AuditedAggregateRoot)
	m.Label = e.Label
	m.Amount = e.Amount
	m.Currency = e.Currency
	m.Description = e.Description
	m.InstallmentID = e.InstallmentID
	m.BudgetID = e.BudgetID
	m.InvoiceRef = e.InvoiceRef
}

// LedgerEntryModelFromDomain creates a new persistence model from a domain Entry.
func LedgerEntryModelFromDomain(e *ledger.Entry) *LedgerEntryModel {
	m := &LedgerEntryModel{}
	m.FromDomain(e)
	return m
}

// ExpenseModel is the persistence model for project expenses.
type ExpenseModel struct {
	AuditedAggregateModel
	ProjectID       uuid.UUID            `gorm:"type:uuid;not null;index"`
	Amount          decimal.Decimal      `gorm:"type:decimal(18,4);not null"`
	Currency        valueobject.Currency `gorm:"type:varchar(3);not null;default:'EUR'"`
	Description     string               `gorm:"type:text;not null"`
	ResponsibleName string               `gorm:"type:varchar(200);index"`
	IncurredAt      time.Time            `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (ExpenseModel) TableName() string {
	return "expenses"
}

// ToDomain converts the persistence model to a domain Expense entity.
func (m *ExpenseModel) ToDomain() *ledger.Expense {
	e := &ledger.Expense{
		ProjectID:       m.ProjectID,
		Amount:          m.Amount,
		Currency:        m.Currency,
		Description:     m.Description,
		ResponsibleName: m.ResponsibleName,
		IncurredAt:      m.IncurredAt,
	}
	m.PopulateAuditedAggregateRoot(&e.AuditedAggregateRoot)
	return e
}

// FromDomain populates the persistence model from a domain Expense entity.
func (m *ExpenseModel) FromDomain(e *ledger.Expense) {
	m.FromDomainAuditedAggregateRoot(e.AuditedAggregateRoot)
	m.ProjectID = e.ProjectID
	m.Amount = e.Amount
	m.Currency = e.Currency
	m.Description = e.Description
	m.ResponsibleName = e.ResponsibleName
	m.IncurredAt = e.IncurredAt
}

// ExpenseModelFromDomain creates a new persistence model from a domain Expense.
func ExpenseModelFromDomain(e *ledger.Expense) *ExpenseModel {
	m := &ExpenseModel{}
	m.FromDomain(e)
	return m
}

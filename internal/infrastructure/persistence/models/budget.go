package models

import (
	"time"

	"github.com/Whapy-Dev/Whapy-CRM-sub000/internal/domain/budget"
	"github.com/Whapy-Dev/Whapy-CRM-sub000/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BudgetModel is the persistence model for the Budget aggregate root.
type BudgetModel struct {
	AuditedAggregateModel
	ProjectID        uuid.UUID            `gorm:"type:uuid;not null;uniqueIndex:idx_budgets_project"`
	Amount           decimal.Decimal      `gorm:"type:decimal(18,4);not null"`
	Currency         valueobject.Currency `gorm:"type:varchar(3);not null;default:'EUR'"`
	Status           budget.Status        `gorm:"type:varchar(20);not null;default:'UNSUBMITTED';index"`
	LinkedDocumentID *uuid.UUID           `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (BudgetModel) TableName() string {
	return "budgets"
}

// ToDomain converts the persistence model to a domain Budget entity.
func (m *BudgetModel) ToDomain() *budget.Budget {
	b := &budget.Budget{
		ProjectID:        m.ProjectID,
		Amount:           m.Amount,
		Currency:         m.Currency,
		Status:           m.Status,
		LinkedDocumentID: m.LinkedDocumentID,
	}
	m.PopulateAuditedAggregateRoot(&b.AuditedAggregateRoot)
	return b
}

// FromDomain populates the persistence model from a domain Budget entity.
func (m *BudgetModel) FromDomain(b *budget.Budget) {
	m.FromDomainAuditedAggregateRoot(b.AuditedAggregateRoot)
	m.ProjectID = b.ProjectID
	m.Amount = b.Amount
	m.Currency = b.Currency
	m.Status = b.Status
	m.LinkedDocumentID = b.LinkedDocumentID
}

// BudgetModelFromDomain creates a new persistence model from a domain Budget.
func BudgetModelFromDomain(b *budget.Budget) *BudgetModel {
	m := &BudgetModel{}
	m.FromDomain(b)
	return m
}

// PhaseModel is the persistence model for the Phase aggregate root.
type PhaseModel struct {
	AuditedAggregateModel
	BudgetID uuid.UUID          `gorm:"type:uuid;not null;index"`
	Name     string             `gorm:"type:varchar(200);not null"`
	Amount   decimal.Decimal    `gorm:"type:decimal(18,4);not null"`
	Position int                `gorm:"not null"`
	Status   budget.PhaseStatus `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	DueDate  *time.Time         `gorm:"index"`
}

// TableName returns the table name for GORM
func (PhaseModel) TableName() string {
	return "phases"
}

// ToDomain converts the persistence model to a domain Phase entity.
func (m *PhaseModel) ToDomain() *budget.Phase {
	p := &budget.Phase{
		BudgetID: m.BudgetID,
		Name:     m.Name,
		Amount:   m.Amount,
		Position: m.Position,
		Status:   m.Status,
		DueDate:  m.DueDate,
	}
	m.PopulateAuditedAggregateRoot(&p.AuditedAggregateRoot)
	return p
}

// FromDomain populates the persistence model from a domain Phase entity.
func (m *PhaseModel) FromDomain(p *budget.Phase) {
	m.FromDomainAuditedAggregateRoot(p.AuditedAggregateRoot)
	m.BudgetID = p.BudgetID
	m.Name = p.Name
	m.Amount = p.Amount
	m.Position = p.Position
	m.Status = p.Status
	m.DueDate = p.DueDate
}

// PhaseModelFromDomain creates a new persistence model from a domain Phase.
func PhaseModelFromDomain(p *budget.Phase) *PhaseModel {
	m := &PhaseModel{}
	m.FromDomain(p)
	return m
}

// InstallmentModel is the persistence model for the Installment aggregate root.
type InstallmentModel struct {
	AuditedAggregateModel
	PhaseID        uuid.UUID                 `gorm:"type:uuid;not null;index"`
	BudgetID       uuid.UUID                 `gorm:"type:uuid;not null;index"`
	Amount         decimal.Decimal           `gorm:"type:decimal(18,4);not null"`
	SequenceNumber int                       `gorm:"not null"`
	Detail         string                    `gorm:"type:varchar(50);not null"`
	Status         budget.InstallmentStatus  `gorm:"type:varchar(20);not null;default:'PENDING_PAYMENT';index"`
	Currency       valueobject.Currency      `gorm:"type:varchar(3);not null;default:'EUR'"`
	DueDate        *time.Time                `gorm:"index"`
	InvoiceRef     valueobject.AttachmentRef `gorm:"type:jsonb"`
	PaidAt         *time.Time
}

// TableName returns the table name for GORM
func (InstallmentModel) TableName() string {
	return "installments"
}

// ToDomain converts the persistence model to a domain Installment entity.
func (m *InstallmentModel) ToDomain() *budget.Installment {
	i := &budget.Installment{
		PhaseID:        m.PhaseID,
		BudgetID:       m.BudgetID,
		Amount:         m.Amount,
		SequenceNumber: m.SequenceNumber,
		Detail:         m.Detail,
		Status:         m.Status,
		Currency:       m.Currency,
		DueDate:        m.DueDate,
		InvoiceRef:     m.InvoiceRef,
		PaidAt:         m.PaidAt,
	}
	m.PopulateAuditedAggregateRoot(&i.AuditedAggregateRoot)
	return i
}

// FromDomain populates the persistence model from a domain Installment entity.
func (m *InstallmentModel) FromDomain(i *budget.Installment) {
	m.FromDomainAuditedAggregateRoot(i.AuditedAggregateRoot)
	m.PhaseID = i.PhaseID
	m.BudgetID = i.BudgetID
	m.Amount = i.Amount
	m.SequenceNumber = i.SequenceNumber
	m.Detail = i.Detail
	m.Status = i.Status
	m.Currency = i.Currency
	m.DueDate = i.DueDate
	m.InvoiceRef = i.InvoiceRef
	m.PaidAt = i.PaidAt
}

// InstallmentModelFromDomain creates a new persistence model from a domain Installment.
func InstallmentModelFromDomain(i *budget.Installment) *InstallmentModel {
	m := &InstallmentModel{}
	m.FromDomain(i)
	return m
}

// AddendumModel is the persistence model for the Addendum aggregate root.
type AddendumModel struct {
	AuditedAggregateModel
	BudgetID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (AddendumModel) TableName() string {
	return "addenda"
}

// ToDomain converts the persistence model to a domain Addendum entity.
func (m *AddendumModel) ToDomain() *budget.Addendum {
	a := &budget.Addendum{
		BudgetID: m.BudgetID,
		Amount:   m.Amount,
	}
	m.PopulateAuditedAggregateRoot(&a.AuditedAggregateRoot)
	return a
}

// FromDomain populates the persistence model from a domain Addendum entity.
func (m *AddendumModel) FromDomain(a *budget.Addendum) {
	m.FromDomainAuditedAggregateRoot(a.AuditedAggregateRoot)
	m.BudgetID = a.BudgetID
	m.Amount = a.Amount
}

// AddendumModelFromDomain creates a new persistence model from a domain Addendum.
func AddendumModelFromDomain(a *budget.Addendum) *AddendumModel {
	m := &AddendumModel{}
	m.FromDomain(a)
	return m
}

// ReviewerAssignmentModel is the persistence model for reviewer assignments.
type ReviewerAssignmentModel struct {
	BaseModel
	BudgetID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reviewers_budget_reviewer,priority:1"`
	ReviewerID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reviewers_budget_reviewer,priority:2"`
}

// TableName returns the table name for GORM
func (ReviewerAssignmentModel) TableName() string {
	return "reviewer_assignments"
}

// ToDomain converts the persistence model to a domain ReviewerAssignment entity.
func (m *ReviewerAssignmentModel) ToDomain() *budget.ReviewerAssignment {
	return &budget.ReviewerAssignment{
		BaseEntity: m.BaseModel.ToDomain(),
		BudgetID:   m.BudgetID,
		ReviewerID: m.ReviewerID,
	}
}

// FromDomain populates the persistence model from a domain ReviewerAssignment entity.
func (m *ReviewerAssignmentModel) FromDomain(a *budget.ReviewerAssignment) {
	m.FromDomainBaseEntity(a.BaseEntity)
	m.BudgetID = a.BudgetID
	m.ReviewerID = a.ReviewerID
}

// ReviewerAssignmentModelFromDomain creates a new persistence model from a domain ReviewerAssignment.
func ReviewerAssignmentModelFromDomain(a *budget.ReviewerAssignment) *ReviewerAssignmentModel {
	m := &ReviewerAssignmentModel{}
	m.FromDomain(a)
	return m
}

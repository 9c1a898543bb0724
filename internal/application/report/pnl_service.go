package report

import (
	"context"
	"fmt"
	"time"

	"github.com/Whapy-Dev/Whapy-CRM-sub000/internal/domain/audit"
	budgetdomain "github.com/Whapy-Dev/Whapy-CRM-sub000/internal/domain/budget"
	"github.com/Whapy-Dev/Whapy-CRM-sub000/internal/domain/ledger"
	"github.com/Whapy-Dev/Whapy-CRM-sub000/internal/domain/shared"
	"github.com/Whapy-Dev/Whapy-CRM-sub000/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	appbudget "github.com/Whapy-Dev/Whapy-CRM-sub000/internal/application/budget"
)

// PnLService aggregates income ledger entries and expenses into the
// profit and loss view. Results are recomputed on every call; nothing
// is cached.
type PnLService struct {
	budgetRepo   budgetdomain.BudgetRepository
	addendumRepo budgetdomain.AddendumRepository
	ledgerRepo   ledger.EntryRepository
	expenseRepo  ledger.ExpenseRepository
	auditRepo    audit.EntryRepository
	logger       *zap.Logger
}

// NewPnLService creates a new PnLService
func NewPnLService(
	budgetRepo budgetdomain.BudgetRepository,
	addendumRepo budgetdomain.AddendumRepository,
	ledgerRepo ledger.EntryRepository,
	expenseRepo ledger.ExpenseRepository,
	auditRepo audit.EntryRepository,
	logger *zap.Logger,
) *PnLService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PnLService{
		budgetRepo:   budgetRepo,
		addendumRepo: addendumRepo,
		ledgerRepo:   ledgerRepo,
		expenseRepo:  expenseRepo,
		auditRepo:    auditRepo,
		logger:       logger,
	}
}

// PnLQuery selects the budget and the reporting window. Exactly one of
// BudgetID or ProjectID must be set. From and To are inclusive whole
// calendar days in their own location.
type PnLQuery struct {
	BudgetID    *uuid.UUID `form:"budget_id"`
	ProjectID   *uuid.UUID `form:"project_id"`
	From        time.Time  `form:"from" binding:"required"`
	To          time.Time  `form:"to" binding:"required"`
	Responsible string     `form:"responsible"`
}

// PnLResponse is the computed profit and loss view
type PnLResponse struct {
	BudgetID         uuid.UUID       `json:"budget_id"`
	ProjectID        uuid.UUID       `json:"project_id"`
	From             time.Time       `json:"from"`
	To               time.Time       `json:"to"`
	TotalIncome      decimal.Decimal `json:"total_income"`
	TotalExpense     decimal.Decimal `json:"total_expense"`
	Balance          decimal.Decimal `json:"balance"`
	MarginPercent    decimal.Decimal `json:"margin_percent"`
	CashCollected    decimal.Decimal `json:"cash_collected"`
	PendingToCollect decimal.Decimal `json:"pending_to_collect"`
}

// dayRange widens From/To to whole calendar days: [From 00:00, To+1d 00:00)
func dayRange(from, to time.Time) (time.Time, time.Time) {
	start := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())
	end := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, to.Location()).AddDate(0, 0, 1)
	return start, end
}

// GetPnL computes the profit and loss view for a budget over a date range
func (s *PnLService) GetPnL(ctx context.Context, q PnLQuery) (*PnLResponse, error) {
	var b *budgetdomain.Budget
	var err error
	switch {
	case q.BudgetID != nil:
		b, err = s.budgetRepo.FindByID(ctx, *q.BudgetID)
	case q.ProjectID != nil:
		b, err = s.budgetRepo.FindByProjectID(ctx, *q.ProjectID)
	default:
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Either budget_id or project_id is required")
	}
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Budget not found")
	}
	if q.To.Before(q.From) {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Range end must not precede range start")
	}

	from, to := dayRange(q.From, q.To)

	income, err := s.ledgerRepo.SumByBudgetIDInRange(ctx, b.ID, from, to)
	if err != nil {
		return nil, err
	}
	expense, err := s.expenseRepo.SumByFilter(ctx, ledger.ExpenseFilter{
		ProjectID:   b.ProjectID,
		From:        from,
		To:          to,
		Responsible: q.Responsible,
	})
	if err != nil {
		return nil, err
	}
	cashCollected, err := s.ledgerRepo.SumByBudgetID(ctx, b.ID)
	if err != nil {
		return nil, err
	}
	addendaSum, err := s.addendumRepo.SumAmountByBudgetID(ctx, b.ID)
	if err != nil {
		return nil, err
	}

	balance := income.Sub(expense)
	margin := decimal.Zero
	if !income.IsZero() {
		margin = balance.Div(income).Mul(decimal.NewFromInt(100)).Round(2)
	}
	effective := appbudget.EffectiveAmount(b.Amount, addendaSum)

	return &PnLResponse{
		BudgetID:         b.ID,
		ProjectID:        b.ProjectID,
		From:             from,
		To:               to,
		TotalIncome:      income,
		TotalExpense:     expense,
		Balance:          balance,
		MarginPercent:    margin,
		CashCollected:    cashCollected,
		PendingToCollect: effective.Sub(cashCollected),
	}, nil
}

// AddManualIncomeRequest represents a request to record income that is
// not tied to an installment
type AddManualIncomeRequest struct {
	Label       string          `json:"label" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Currency    string          `json:"currency"`
	Description string          `json:"description"`
	BudgetID    *uuid.UUID      `json:"budget_id"`
	ActorID     uuid.UUID       `json:"-"`
}

// LedgerEntryResponse represents an income ledger entry in API responses
type LedgerEntryResponse struct {
	ID            uuid.UUID                 `json:"id"`
	Label         string                    `json:"label"`
	Amount        decimal.Decimal           `json:"amount"`
	Currency      string                    `json:"currency"`
	Description   string                    `json:"description"`
	InstallmentID *uuid.UUID                `json:"installment_id,omitempty"`
	BudgetID      *uuid.UUID                `json:"budget_id,omitempty"`
	InvoiceRef    valueobject.AttachmentRef `json:"invoice_ref,omitempty"`
	CreatedAt     time.Time                 `json:"created_at"`
}

func toLedgerEntryResponse(e *ledger.Entry) *LedgerEntryResponse {
	return &LedgerEntryResponse{
		ID:            e.ID,
		Label:         e.Label,
		Amount:        e.Amount,
		Currency:      string(e.Currency),
		Description:   e.Description,
		InstallmentID: e.InstallmentID,
		BudgetID:      e.BudgetID,
		InvoiceRef:    e.InvoiceRef,
		CreatedAt:     e.CreatedAt,
	}
}

// AddManualIncome appends an income ledger entry with no installment link
func (s *PnLService) AddManualIncome(ctx context.Context, req AddManualIncomeRequest) (*LedgerEntryResponse, error) {
	if req.BudgetID != nil {
		b, err := s.budgetRepo.FindByID(ctx, *req.BudgetID)
		if err != nil {
			return nil, err
		}
		if b == nil {
			return nil, shared.NewDomainError("NOT_FOUND", "Budget not found")
		}
	}

	entry, err := ledger.NewEntry(
		req.ActorID,
		req.Label,
		req.Amount,
		valueobject.Currency(req.Currency),
		req.Description,
		nil,
		req.BudgetID,
		valueobject.AttachmentRef{},
	)
	if err != nil {
		return nil, err
	}
	if err := s.ledgerRepo.Save(ctx, entry); err != nil {
		return nil, err
	}
	s.appendAudit(ctx, req.ActorID, "ledger.manual_income", "ledger_entry", entry.ID,
		fmt.Sprintf("amount=%s", entry.Amount.String()))

	return toLedgerEntryResponse(entry), nil
}

// ListLedgerEntries lists all income entries linked to a budget
func (s *PnLService) ListLedgerEntries(ctx context.Context, budgetID uuid.UUID) ([]LedgerEntryResponse, error) {
	entries, err := s.ledgerRepo.FindByBudgetID(ctx, budgetID)
	if err != nil {
		return nil, err
	}
	responses := make([]LedgerEntryResponse, len(entries))
	for i, e := range entries {
		responses[i] = *toLedgerEntryResponse(&e)
	}
	return responses, nil
}

// CreateExpenseRequest represents a request to record a project expense
type CreateExpenseRequest struct {
	ProjectID       uuid.UUID       `json:"project_id" binding:"required"`
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	Currency        string          `json:"currency"`
	Description     string          `json:"description" binding:"required"`
	ResponsibleName string          `json:"responsible_name"`
	IncurredAt      time.Time       `json:"incurred_at"`
	ActorID         uuid.UUID       `json:"-"`
}

// ExpenseListQuery narrows an expense listing
type ExpenseListQuery struct {
	ProjectID   uuid.UUID `form:"project_id" binding:"required"`
	From        time.Time `form:"from" binding:"required"`
	To          time.Time `form:"to" binding:"required"`
	Responsible string    `form:"responsible"`
}

// ExpenseResponse represents an expense in API responses
type ExpenseResponse struct {
	ID              uuid.UUID       `json:"id"`
	ProjectID       uuid.UUID       `json:"project_id"`
	Amount          decimal.Decimal `json:"amount"`
	Currency        string          `json:"currency"`
	Description     string          `json:"description"`
	ResponsibleName string          `json:"responsible_name"`
	IncurredAt      time.Time       `json:"incurred_at"`
	CreatedAt       time.Time       `json:"created_at"`
}

func toExpenseResponse(e *ledger.Expense) *ExpenseResponse {
	return &ExpenseResponse{
		ID:              e.ID,
		ProjectID:       e.ProjectID,
		Amount:          e.Amount,
		Currency:        string(e.Currency),
		Description:     e.Description,
		ResponsibleName: e.ResponsibleName,
		IncurredAt:      e.IncurredAt,
		CreatedAt:       e.CreatedAt,
	}
}

// CreateExpense records a project expense
func (s *PnLService) CreateExpense(ctx context.Context, req CreateExpenseRequest) (*ExpenseResponse, error) {
	e, err := ledger.NewExpense(
		req.ActorID,
		req.ProjectID,
		req.Amount,
		valueobject.Currency(req.Currency),
		req.Description,
		req.ResponsibleName,
		req.IncurredAt,
	)
	if err != nil {
		return nil, err
	}
	if err := s.expenseRepo.Save(ctx, e); err != nil {
		return nil, err
	}
	s.appendAudit(ctx, req.ActorID, "expense.create", "expense", e.ID,
		fmt.Sprintf("project=%s amount=%s", e.ProjectID, e.Amount.String()))
	return toExpenseResponse(e), nil
}

// ListExpenses lists a project's expenses over whole calendar days
func (s *PnLService) ListExpenses(ctx context.Context, q ExpenseListQuery) ([]ExpenseResponse, error) {
	from, to := dayRange(q.From, q.To)
	expenses, err := s.expenseRepo.FindByFilter(ctx, ledger.ExpenseFilter{
		ProjectID:   q.ProjectID,
		From:        from,
		To:          to,
		Responsible: q.Responsible,
	})
	if err != nil {
		return nil, err
	}
	responses := make([]ExpenseResponse, len(expenses))
	for i, e := range expenses {
		responses[i] = *toExpenseResponse(&e)
	}
	return responses, nil
}

// DeleteExpense removes an expense record
func (s *PnLService) DeleteExpense(ctx context.Context, expenseID, actorID uuid.UUID) error {
	e, err := s.expenseRepo.FindByID(ctx, expenseID)
	if err != nil {
		return err
	}
	if e == nil {
		return shared.NewDomainError("NOT_FOUND", "Expense not found")
	}
	if err := s.expenseRepo.Delete(ctx, expenseID); err != nil {
		return err
	}
	s.appendAudit(ctx, actorID, "expense.delete", "expense", expenseID, "")
	return nil
}

// appendAudit writes an audit entry; read-model mutations tolerate a
// failed audit write with a logged warning
func (s *PnLService) appendAudit(ctx context.Context, actorID uuid.UUID, action, entityType string, entityID uuid.UUID, detail string) {
	entry, err := audit.NewEntry(actorID, action, entityType, entityID, detail)
	if err == nil {
		err = s.auditRepo.Save(ctx, entry)
	}
	if err != nil {
		s.logger.Warn("audit write failed", zap.String("action", action), zap.Error(err))
	}
}

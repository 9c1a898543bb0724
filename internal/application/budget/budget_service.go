package budget

import (
	"context"
	"fmt"
	"time"

	"github.com/Whapy-Dev/Whapy-CRM-sub000/internal/domain/audit"
	"github.com/Whapy-Dev/Whapy-CRM-sub000/internal/domain/budget"
	"github.com/Whapy-Dev/Whapy-CRM-sub000/internal/domain/shared"
	"github.com/Whapy-Dev/Whapy-CRM-sub000/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// BudgetService provides application-level budget operations
type BudgetService struct {
	budgetRepo      budget.BudgetRepository
	phaseRepo       budget.PhaseRepository
	installmentRepo budget.InstallmentRepository
	addendumRepo    budget.AddendumRepository
	reviewerRepo    budget.ReviewerAssignmentRepository
	scope           TransactionScope
	logger          *zap.Logger
}

// NewBudgetService creates a new BudgetService
func NewBudgetService(
	budgetRepo budget.BudgetRepository,
	phaseRepo budget.PhaseRepository,
	installmentRepo budget.InstallmentRepository,
	addendumRepo budget.AddendumRepository,
	reviewerRepo budget.ReviewerAssignmentRepository,
	scope TransactionScope,
	logger *zap.Logger,
) *BudgetService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BudgetService{
		budgetRepo:      budgetRepo,
		phaseRepo:       phaseRepo,
		installmentRepo: installmentRepo,
		addendumRepo:    addendumRepo,
		reviewerRepo:    reviewerRepo,
		scope:           scope,
		logger:          logger,
	}
}

// EffectiveAmount is the displayed budget total: the base amount plus
// the sum of its addenda. Every reconciliation site uses this formula.
func EffectiveAmount(amount, addendaSum decimal.Decimal) decimal.Decimal {
	return amount.Add(addendaSum)
}

// CreateBudgetRequest represents a request to create a budget
type CreateBudgetRequest struct {
	ProjectID        uuid.UUID       `json:"project_id" binding:"required"`
	Amount           decimal.Decimal `json:"amount"`
	Addendum         decimal.Decimal `json:"addendum"`
	Currency         string          `json:"currency"`
	Status           string          `json:"status"`
	LinkedDocumentID *uuid.UUID      `json:"linked_document_id"`
	ReviewerIDs      []uuid.UUID     `json:"reviewer_ids" binding:"required,min=1"`
	ActorID          uuid.UUID       `json:"-"` // Set from JWT context, not from request body
}

// UpdateStatusRequest represents a request to change a budget's status
type UpdateStatusRequest struct {
	Status  string    `json:"status" binding:"required"`
	ActorID uuid.UUID `json:"-"`
}

// UpdateAmountRequest represents a request to change a budget's amount
type UpdateAmountRequest struct {
	Amount  decimal.Decimal `json:"amount" binding:"required"`
	ActorID uuid.UUID       `json:"-"`
}

// BudgetResponse represents a budget in API responses
type BudgetResponse struct {
	ID               uuid.UUID       `json:"id"`
	ProjectID        uuid.UUID       `json:"project_id"`
	Amount           decimal.Decimal `json:"amount"`
	EffectiveAmount  decimal.Decimal `json:"effective_amount"`
	Currency         string          `json:"currency"`
	Status           string          `json:"status"`
	LinkedDocumentID *uuid.UUID      `json:"linked_document_id,omitempty"`
	ReviewerIDs      []uuid.UUID     `json:"reviewer_ids,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
	Version          int             `json:"version"`
}

// BudgetTreeResponse is the full budget hierarchy for display
type BudgetTreeResponse struct {
	Budget  BudgetResponse      `json:"budget"`
	Addenda []AddendumResponse  `json:"addenda"`
	Phases  []PhaseTreeResponse `json:"phases"`
}

// PhaseTreeResponse is a phase with its installments
type PhaseTreeResponse struct {
	Phase        PhaseResponse         `json:"phase"`
	Installments []InstallmentResponse `json:"installments"`
}

func toBudgetResponse(b *budget.Budget, addendaSum decimal.Decimal, reviewerIDs []uuid.UUID) *BudgetResponse {
	return &BudgetResponse{
		ID:               b.ID,
		ProjectID:        b.ProjectID,
		Amount:           b.Amount,
		EffectiveAmount:  EffectiveAmount(b.Amount, addendaSum),
		Currency:         string(b.Currency),
		Status:           b.Status.String(),
		LinkedDocumentID: b.LinkedDocumentID,
		ReviewerIDs:      reviewerIDs,
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.UpdatedAt,
		Version:          b.Version,
	}
}

// appendAudit writes an audit trail entry through the transactional audit repository
func appendAudit(ctx context.Context, repos TransactionalRepositories, actorID uuid.UUID, action, entityType string, entityID uuid.UUID, detail string) error {
	entry, err := audit.NewEntry(actorID, action, entityType, entityID, detail)
	if err != nil {
		return err
	}
	return repos.AuditRepo().Save(ctx, entry)
}

// CreateBudget creates a budget together with its reviewer assignments and
// the optional initial addendum, in one transaction
func (s *BudgetService) CreateBudget(ctx context.Context, req CreateBudgetRequest) (*BudgetResponse, error) {
	if len(req.ReviewerIDs) == 0 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "At least one reviewer is required")
	}

	exists, err := s.budgetRepo.ExistsForProject(ctx, req.ProjectID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A budget already exists for this project")
	}

	b, err := budget.NewBudget(
		req.ActorID,
		req.ProjectID,
		req.Amount,
		req.Addendum,
		valueobject.Currency(req.Currency),
		budget.Status(req.Status),
		req.LinkedDocumentID,
	)
	if err != nil {
		return nil, err
	}

	assignments := make([]*budget.ReviewerAssignment, 0, len(req.ReviewerIDs))
	for _, reviewerID := range req.ReviewerIDs {
		a, err := budget.NewReviewerAssignment(b.ID, reviewerID)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}

	var initialAddendum *budget.Addendum
	if req.Addendum.IsPositive() {
		initialAddendum, err = budget.NewAddendum(req.ActorID, b.ID, req.Addendum)
		if err != nil {
			return nil, err
		}
	}

	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.BudgetRepo().Save(ctx, b); err != nil {
			return err
		}
		if err := repos.ReviewerRepo().SaveBatch(ctx, assignments); err != nil {
			return err
		}
		if initialAddendum != nil {
			if err := repos.AddendumRepo().Save(ctx, initialAddendum); err != nil {
				return err
			}
		}
		return appendAudit(ctx, repos, req.ActorID, "budget.create", "budget", b.ID,
			fmt.Sprintf("amount=%s currency=%s", b.Amount.String(), b.Currency))
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("budget created",
		zap.String("budget_id", b.ID.String()),
		zap.String("project_id", b.ProjectID.String()))

	addendaSum := decimal.Zero
	if initialAddendum != nil {
		addendaSum = initialAddendum.Amount
	}
	return toBudgetResponse(b, addendaSum, req.ReviewerIDs), nil
}

// UpdateStatus moves a budget to a new status
func (s *BudgetService) UpdateStatus(ctx context.Context, budgetID uuid.UUID, req UpdateStatusRequest) (*BudgetResponse, error) {
	var b *budget.Budget
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		b, err = repos.BudgetRepo().FindByID(ctx, budgetID)
		if err != nil {
			return err
		}
		if b == nil {
			return shared.NewDomainError("NOT_FOUND", "Budget not found")
		}
		previous := b.Status
		if err := b.ChangeStatus(budget.Status(req.Status)); err != nil {
			return err
		}
		if err := repos.BudgetRepo().SaveWithLock(ctx, b); err != nil {
			return err
		}
		return appendAudit(ctx, repos, req.ActorID, "budget.update_status", "budget", b.ID,
			fmt.Sprintf("%s -> %s", previous, b.Status))
	})
	if err != nil {
		return nil, err
	}
	return s.budgetResponse(ctx, b)
}

// UpdateAmount replaces the budget amount, re-checked against the phase
// total already allocated under it
func (s *BudgetService) UpdateAmount(ctx context.Context, budgetID uuid.UUID, req UpdateAmountRequest) (*BudgetResponse, error) {
	var b *budget.Budget
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		b, err = repos.BudgetRepo().FindByIDForUpdate(ctx, budgetID)
		if err != nil {
			return err
		}
		if b == nil {
			return shared.NewDomainError("NOT_FOUND", "Budget not found")
		}
		allocated, err := repos.PhaseRepo().SumAmountByBudgetID(ctx, budgetID, nil)
		if err != nil {
			return err
		}
		if req.Amount.LessThan(allocated) {
			return shared.NewDomainError("ALLOCATION_EXCEEDED",
				fmt.Sprintf("New amount %s is below the %s already allocated to phases", req.Amount.String(), allocated.String()))
		}
		if err := b.UpdateAmount(req.Amount); err != nil {
			return err
		}
		if err := repos.BudgetRepo().Save(ctx, b); err != nil {
			return err
		}
		return appendAudit(ctx, repos, req.ActorID, "budget.update_amount", "budget", b.ID,
			fmt.Sprintf("amount=%s", b.Amount.String()))
	})
	if err != nil {
		return nil, err
	}
	return s.budgetResponse(ctx, b)
}

// DeleteBudget removes a budget and its whole hierarchy in one transaction.
// Installments, phases, addenda and reviewer assignments go with it; income
// ledger entries stay as immutable history.
func (s *BudgetService) DeleteBudget(ctx context.Context, budgetID, actorID uuid.UUID) error {
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		b, err := repos.BudgetRepo().FindByID(ctx, budgetID)
		if err != nil {
			return err
		}
		if b == nil {
			return shared.NewDomainError("NOT_FOUND", "Budget not found")
		}
		if err := repos.InstallmentRepo().DeleteByBudgetID(ctx, budgetID); err != nil {
			return err
		}
		if err := repos.PhaseRepo().DeleteByBudgetID(ctx, budgetID); err != nil {
			return err
		}
		if err := repos.AddendumRepo().DeleteByBudgetID(ctx, budgetID); err != nil {
			return err
		}
		if err := repos.ReviewerRepo().DeleteByBudgetID(ctx, budgetID); err != nil {
			return err
		}
		if err := repos.BudgetRepo().Delete(ctx, budgetID); err != nil {
			return err
		}
		return appendAudit(ctx, repos, actorID, "budget.delete", "budget", budgetID, "")
	})
	if err != nil {
		return err
	}
	s.logger.Info("budget deleted", zap.String("budget_id", budgetID.String()))
	return nil
}

// GetBudgetTree returns the full budget hierarchy for a project
func (s *BudgetService) GetBudgetTree(ctx context.Context, projectID uuid.UUID) (*BudgetTreeResponse, error) {
	b, err := s.budgetRepo.FindByProjectID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "No budget exists for this project")
	}

	addenda, err := s.addendumRepo.FindByBudgetID(ctx, b.ID)
	if err != nil {
		return nil, err
	}
	addendaSum := decimal.Zero
	addendaResponses := make([]AddendumResponse, len(addenda))
	for i, a := range addenda {
		addendaSum = addendaSum.Add(a.Amount)
		addendaResponses[i] = *toAddendumResponse(&a)
	}

	assignments, err := s.reviewerRepo.FindByBudgetID(ctx, b.ID)
	if err != nil {
		return nil, err
	}
	reviewerIDs := make([]uuid.UUID, len(assignments))
	for i, a := range assignments {
		reviewerIDs[i] = a.ReviewerID
	}

	phases, err := s.phaseRepo.FindByBudgetID(ctx, b.ID)
	if err != nil {
		return nil, err
	}
	installments, err := s.installmentRepo.FindByBudgetID(ctx, b.ID)
	if err != nil {
		return nil, err
	}
	byPhase := make(map[uuid.UUID][]InstallmentResponse)
	for _, inst := range installments {
		byPhase[inst.PhaseID] = append(byPhase[inst.PhaseID], *toInstallmentResponse(&inst))
	}

	phaseNodes := make([]PhaseTreeResponse, len(phases))
	for i, p := range phases {
		children := byPhase[p.ID]
		if children == nil {
			children = []InstallmentResponse{}
		}
		phaseNodes[i] = PhaseTreeResponse{
			Phase:        *toPhaseResponse(&p),
			Installments: children,
		}
	}

	return &BudgetTreeResponse{
		Budget:  *toBudgetResponse(b, addendaSum, reviewerIDs),
		Addenda: addendaResponses,
		Phases:  phaseNodes,
	}, nil
}

// budgetResponse assembles a response with the current addenda sum and reviewers
func (s *BudgetService) budgetResponse(ctx context.Context, b *budget.Budget) (*BudgetResponse, error) {
	addendaSum, err := s.addendumRepo.SumAmountByBudgetID(ctx, b.ID)
	if err != nil {
		return nil, err
	}
	assignments, err := s.reviewerRepo.FindByBudgetID(ctx, b.ID)
	if err != nil {
		return nil, err
	}
	reviewerIDs := make([]uuid.UUID, len(assignments))
	for i, a := range assignments {
		reviewerIDs[i] = a.ReviewerID
	}
	return toBudgetResponse(b, addendaSum, reviewerIDs), nil
}

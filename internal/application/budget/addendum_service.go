package budget

import (
	"context"
	"fmt"
	"time"

	"github.com/Whapy-Dev/Whapy-CRM-sub000/internal/domain/budget"
	"github.com/Whapy-Dev/Whapy-CRM-sub000/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// AddendumService provides application-level addendum operations.
// Addenda are additive amounts outside the phase hierarchy; none of
// these operations touch the budget amount itself.
type AddendumService struct {
	addendumRepo budget.AddendumRepository
	scope        TransactionScope
	logger       *zap.Logger
}

// NewAddendumService creates a new AddendumService
func NewAddendumService(addendumRepo budget.AddendumRepository, scope TransactionScope, logger *zap.Logger) *AddendumService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AddendumService{
		addendumRepo: addendumRepo,
		scope:        scope,
		logger:       logger,
	}
}

// AddAddendumRequest represents a request to attach an addendum to a budget
type AddAddendumRequest struct {
	BudgetID uuid.UUID       `json:"budget_id" binding:"required"`
	Amount   decimal.Decimal `json:"amount" binding:"required"`
	ActorID  uuid.UUID       `json:"-"`
}

// AddendumResponse represents an addendum in API responses
type AddendumResponse struct {
	ID        uuid.UUID       `json:"id"`
	BudgetID  uuid.UUID       `json:"budget_id"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt time.Time       `json:"created_at"`
}

func toAddendumResponse(a *budget.Addendum) *AddendumResponse {
	return &AddendumResponse{
		ID:        a.ID,
		BudgetID:  a.BudgetID,
		Amount:    a.Amount,
		CreatedAt: a.CreatedAt,
	}
}

// AddAddendum attaches an addendum to a budget
func (s *AddendumService) AddAddendum(ctx context.Context, req AddAddendumRequest) (*AddendumResponse, error) {
	var a *budget.Addendum
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		b, err := repos.BudgetRepo().FindByID(ctx, req.BudgetID)
		if err != nil {
			return err
		}
		if b == nil {
			return shared.NewDomainError("NOT_FOUND", "Budget not found")
		}
		a, err = budget.NewAddendum(req.ActorID, req.BudgetID, req.Amount)
		if err != nil {
			return err
		}
		if err := repos.AddendumRepo().Save(ctx, a); err != nil {
			return err
		}
		return appendAudit(ctx, repos, req.ActorID, "addendum.add", "addendum", a.ID,
			fmt.Sprintf("budget=%s amount=%s", req.BudgetID, req.Amount.String()))
	})
	if err != nil {
		return nil, err
	}
	return toAddendumResponse(a), nil
}

// RemoveAddendum hard-deletes one addendum
func (s *AddendumService) RemoveAddendum(ctx context.Context, addendumID, actorID uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		a, err := repos.AddendumRepo().FindByID(ctx, addendumID)
		if err != nil {
			return err
		}
		if a == nil {
			return shared.NewDomainError("NOT_FOUND", "Addendum not found")
		}
		if err := repos.AddendumRepo().Delete(ctx, addendumID); err != nil {
			return err
		}
		return appendAudit(ctx, repos, actorID, "addendum.remove", "addendum", addendumID,
			fmt.Sprintf("budget=%s", a.BudgetID))
	})
}

// RemoveAllForBudget hard-deletes every addendum of a budget
func (s *AddendumService) RemoveAllForBudget(ctx context.Context, budgetID, actorID uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.AddendumRepo().DeleteByBudgetID(ctx, budgetID); err != nil {
			return err
		}
		return appendAudit(ctx, repos, actorID, "addendum.remove_all", "budget", budgetID, "")
	})
}

// ListAddenda lists the addenda of a budget
func (s *AddendumService) ListAddenda(ctx context.Context, budgetID uuid.UUID) ([]AddendumResponse, error) {
	addenda, err := s.addendumRepo.FindByBudgetID(ctx, budgetID)
	if err != nil {
		return nil, err
	}
	responses := make([]AddendumResponse, len(addenda))
	for i, a := range addenda {
		responses[i] = *toAddendumResponse(&a)
	}
	return responses, nil
}

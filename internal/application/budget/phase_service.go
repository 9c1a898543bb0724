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

// PhaseService provides application-level phase allocation operations.
// Every availability check runs under a budget row lock so concurrent
// allocations against the same budget serialize instead of jointly
// overallocating.
type PhaseService struct {
	phaseRepo budget.PhaseRepository
	scope     TransactionScope
	logger    *zap.Logger
}

// NewPhaseService creates a new PhaseService
func NewPhaseService(phaseRepo budget.PhaseRepository, scope TransactionScope, logger *zap.Logger) *PhaseService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PhaseService{
		phaseRepo: phaseRepo,
		scope:     scope,
		logger:    logger,
	}
}

// CreatePhaseRequest represents a request to create a phase
type CreatePhaseRequest struct {
	BudgetID uuid.UUID       `json:"budget_id" binding:"required"`
	Name     string          `json:"name" binding:"required"`
	Amount   decimal.Decimal `json:"amount" binding:"required"`
	DueDate  *time.Time      `json:"due_date"`
	ActorID  uuid.UUID       `json:"-"`
}

// UpdatePhaseRequest represents a partial phase update; nil fields are untouched
type UpdatePhaseRequest struct {
	Name    *string          `json:"name"`
	Amount  *decimal.Decimal `json:"amount"`
	Status  *string          `json:"status"`
	DueDate *time.Time       `json:"due_date"`
	ActorID uuid.UUID        `json:"-"`
}

// PhaseResponse represents a phase in API responses
type PhaseResponse struct {
	ID        uuid.UUID       `json:"id"`
	BudgetID  uuid.UUID       `json:"budget_id"`
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
	Position  int             `json:"position"`
	Status    string          `json:"status"`
	DueDate   *time.Time      `json:"due_date,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	Version   int             `json:"version"`
}

func toPhaseResponse(p *budget.Phase) *PhaseResponse {
	return &PhaseResponse{
		ID:        p.ID,
		BudgetID:  p.BudgetID,
		Name:      p.Name,
		Amount:    p.Amount,
		Position:  p.Position,
		Status:    p.Status.String(),
		DueDate:   p.DueDate,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
		Version:   p.Version,
	}
}

// CreatePhase creates a phase under an accepted budget. The check against
// the remaining budget capacity and the insert run in one transaction
// holding the budget row lock.
func (s *PhaseService) CreatePhase(ctx context.Context, req CreatePhaseRequest) (*PhaseResponse, error) {
	var p *budget.Phase
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		b, err := repos.BudgetRepo().FindByIDForUpdate(ctx, req.BudgetID)
		if err != nil {
			return err
		}
		if b == nil {
			return shared.NewDomainError("NOT_FOUND", "Budget not found")
		}
		if !b.IsAccepted() {
			return shared.NewDomainError("INVALID_STATE", "Phases can only be created on an accepted budget")
		}

		allocated, err := repos.PhaseRepo().SumAmountByBudgetID(ctx, req.BudgetID, nil)
		if err != nil {
			return err
		}
		available := b.Amount.Sub(allocated)
		if req.Amount.GreaterThan(available) {
			return shared.NewDomainError("ALLOCATION_EXCEEDED",
				fmt.Sprintf("Phase amount %s exceeds the %s still available on the budget", req.Amount.String(), available.String()))
		}

		maxPos, err := repos.PhaseRepo().MaxPositionByBudgetID(ctx, req.BudgetID)
		if err != nil {
			return err
		}

		p, err = budget.NewPhase(req.ActorID, req.BudgetID, req.Name, req.Amount, maxPos+1, req.DueDate)
		if err != nil {
			return err
		}
		if err := repos.PhaseRepo().Save(ctx, p); err != nil {
			return err
		}
		return appendAudit(ctx, repos, req.ActorID, "phase.create", "phase", p.ID,
			fmt.Sprintf("budget=%s amount=%s", req.BudgetID, req.Amount.String()))
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("phase created",
		zap.String("phase_id", p.ID.String()),
		zap.String("budget_id", req.BudgetID.String()))
	return toPhaseResponse(p), nil
}

// UpdatePhase applies a partial update. Amount changes are re-checked
// against sibling phases and against the phase's own installment total,
// under the budget row lock.
func (s *PhaseService) UpdatePhase(ctx context.Context, phaseID uuid.UUID, req UpdatePhaseRequest) (*PhaseResponse, error) {
	var p *budget.Phase
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		p, err = repos.PhaseRepo().FindByID(ctx, phaseID)
		if err != nil {
			return err
		}
		if p == nil {
			return shared.NewDomainError("NOT_FOUND", "Phase not found")
		}

		if req.Amount != nil {
			b, err := repos.BudgetRepo().FindByIDForUpdate(ctx, p.BudgetID)
			if err != nil {
				return err
			}
			if b == nil {
				return shared.NewDomainError("NOT_FOUND", "Budget not found")
			}
			siblings, err := repos.PhaseRepo().SumAmountByBudgetID(ctx, p.BudgetID, &phaseID)
			if err != nil {
				return err
			}
			if siblings.Add(*req.Amount).GreaterThan(b.Amount) {
				return shared.NewDomainError("ALLOCATION_EXCEEDED",
					fmt.Sprintf("Phase amount %s exceeds the %s still available on the budget", req.Amount.String(), b.Amount.Sub(siblings).String()))
			}
			scheduled, err := repos.InstallmentRepo().SumAmountByPhaseID(ctx, phaseID, nil)
			if err != nil {
				return err
			}
			if req.Amount.LessThan(scheduled) {
				return shared.NewDomainError("ALLOCATION_EXCEEDED",
					fmt.Sprintf("Phase amount %s is below the %s already scheduled in installments", req.Amount.String(), scheduled.String()))
			}
			if err := p.UpdateAmount(*req.Amount); err != nil {
				return err
			}
		}
		if req.Name != nil {
			if err := p.Rename(*req.Name); err != nil {
				return err
			}
		}
		if req.Status != nil {
			if err := p.ChangeStatus(budget.PhaseStatus(*req.Status)); err != nil {
				return err
			}
		}
		if req.DueDate != nil {
			p.SetDueDate(req.DueDate)
		}

		if err := repos.PhaseRepo().Save(ctx, p); err != nil {
			return err
		}
		return appendAudit(ctx, repos, req.ActorID, "phase.update", "phase", p.ID, "")
	})
	if err != nil {
		return nil, err
	}
	return toPhaseResponse(p), nil
}

// DeletePhase removes a phase and its installments in one transaction
func (s *PhaseService) DeletePhase(ctx context.Context, phaseID, actorID uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		p, err := repos.PhaseRepo().FindByID(ctx, phaseID)
		if err != nil {
			return err
		}
		if p == nil {
			return shared.NewDomainError("NOT_FOUND", "Phase not found")
		}
		if err := repos.InstallmentRepo().DeleteByPhaseID(ctx, phaseID); err != nil {
			return err
		}
		if err := repos.PhaseRepo().Delete(ctx, phaseID); err != nil {
			return err
		}
		return appendAudit(ctx, repos, actorID, "phase.delete", "phase", phaseID,
			fmt.Sprintf("budget=%s", p.BudgetID))
	})
}

// ListPhases lists the phases of a budget in position order
func (s *PhaseService) ListPhases(ctx context.Context, budgetID uuid.UUID) ([]PhaseResponse, error) {
	phases, err := s.phaseRepo.FindByBudgetID(ctx, budgetID)
	if err != nil {
		return nil, err
	}
	responses := make([]PhaseResponse, len(phases))
	for i, p := range phases {
		responses[i] = *toPhaseResponse(&p)
	}
	return responses, nil
}

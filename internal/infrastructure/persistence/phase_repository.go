package persistence

import (
	"context"
	"errors"

	"github.com/Whapy-Dev/Whapy-CRM-sub000/internal/domain/budget"
	"github.com/Whapy-Dev/Whapy-CRM-sub000/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormPhaseRepository implements budget.PhaseRepository using GORM
type GormPhaseRepository struct {
	db *gorm.DB
}

// NewGormPhaseRepository creates a new GORM-based phase repository
func NewGormPhaseRepository(db *gorm.DB) *GormPhaseRepository {
	return &GormPhaseRepository{db: db}
}

// FindByID finds a phase by ID
func (r *GormPhaseRepository) FindByID(ctx context.Context, id uuid.UUID) (*budget.Phase, error) {
	var model models.PhaseModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForUpdate finds a phase by ID holding a row lock until the
// surrounding transaction ends
func (r *GormPhaseRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*budget.Phase, error) {
	var model models.PhaseModel
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByBudgetID lists a budget's phases ordered by position
func (r *GormPhaseRepository) FindByBudgetID(ctx context.Context, budgetID uuid.UUID) ([]budget.Phase, error) {
	var phaseModels []models.PhaseModel
	err := r.db.WithContext(ctx).
		Where("budget_id = ?", budgetID).
		Order("position ASC").
		Find(&phaseModels).Error
	if err != nil {
		return nil, err
	}

	phases := make([]budget.Phase, len(phaseModels))
	for i, m := range phaseModels {
		phases[i] = *m.ToDomain()
	}
	return phases, nil
}

// SumAmountByBudgetID totals the phase amounts allocated under a budget.
// excludeID skips one phase, for re-checks during amount edits.
func (r *GormPhaseRepository) SumAmountByBudgetID(ctx context.Context, budgetID uuid.UUID, excludeID *uuid.UUID) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	query := r.db.WithContext(ctx).
		Model(&models.PhaseModel{}).
		Select("COALESCE(SUM(amount), 0) as total").
		Where("budget_id = ?", budgetID)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	if err := query.Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

// MaxPositionByBudgetID returns the highest phase position under a budget,
// 0 when the budget has no phases
func (r *GormPhaseRepository) MaxPositionByBudgetID(ctx context.Context, budgetID uuid.UUID) (int, error) {
	var result struct {
		Max int
	}
	err := r.db.WithContext(ctx).
		Model(&models.PhaseModel{}).
		Select("COALESCE(MAX(position), 0) as max").
		Where("budget_id = ?", budgetID).
		Scan(&result).Error
	if err != nil {
		return 0, err
	}
	return result.Max, nil
}

// Save creates or updates a phase
func (r *GormPhaseRepository) Save(ctx context.Context, p *budget.Phase) error {
	model := models.PhaseModelFromDomain(p)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete removes a phase
func (r *GormPhaseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.PhaseModel{}).Error
}

// DeleteByBudgetID removes all phases of a budget
func (r *GormPhaseRepository) DeleteByBudgetID(ctx context.Context, budgetID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("budget_id = ?", budgetID).Delete(&models.PhaseModel{}).Error
}

var _ budget.PhaseRepository = (*GormPhaseRepository)(nil)

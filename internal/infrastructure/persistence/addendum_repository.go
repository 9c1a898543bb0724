package persistence

import (
	"context"
	"errors"

	"github.com/Whapy-Dev/Whapy-CRM-sub000/internal/domain/budget"
	"github.com/Whapy-Dev/Whapy-CRM-sub000/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormAddendumRepository implements budget.AddendumRepository using GORM
type GormAddendumRepository struct {
	db *gorm.DB
}

// NewGormAddendumRepository creates a new GORM-based addendum repository
func NewGormAddendumRepository(db *gorm.DB) *GormAddendumRepository {
	return &GormAddendumRepository{db: db}
}

// FindByID finds an addendum by ID
func (r *GormAddendumRepository) FindByID(ctx context.Context, id uuid.UUID) (*budget.Addendum, error) {
	var model models.AddendumModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByBudgetID lists a budget's addenda ordered by creation time
func (r *GormAddendumRepository) FindByBudgetID(ctx context.Context, budgetID uuid.UUID) ([]budget.Addendum, error) {
	var addendumModels []models.AddendumModel
	err := r.db.WithContext(ctx).
		Where("budget_id = ?", budgetID).
		Order("created_at ASC").
		Find(&addendumModels).Error
	if err != nil {
		return nil, err
	}

	addenda := make([]budget.Addendum, len(addendumModels))
	for i, m := range addendumModels {
		addenda[i] = *m.ToDomain()
	}
	return addenda, nil
}

// SumAmountByBudgetID totals the addendum amounts attached to a budget
func (r *GormAddendumRepository) SumAmountByBudgetID(ctx context.Context, budgetID uuid.UUID) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	err := r.db.WithContext(ctx).
		Model(&models.AddendumModel{}).
		Select("COALESCE(SUM(amount), 0) as total").
		Where("budget_id = ?", budgetID).
		Scan(&result).Error
	if err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

// Save creates an addendum
func (r *GormAddendumRepository) Save(ctx context.Context, a *budget.Addendum) error {
	model := models.AddendumModelFromDomain(a)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete removes an addendum
func (r *GormAddendumRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.AddendumModel{}).Error
}

// DeleteByBudgetID removes all addenda of a budget
func (r *GormAddendumRepository) DeleteByBudgetID(ctx context.Context, budgetID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("budget_id = ?", budgetID).Delete(&models.AddendumModel{}).Error
}

var _ budget.AddendumRepository = (*GormAddendumRepository)(nil)

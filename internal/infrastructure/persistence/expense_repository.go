package persistence

import (
	"context"
	"errors"

	"github.com/Whapy-Dev/Whapy-CRM-sub000/internal/domain/ledger"
	"github.com/Whapy-Dev/Whapy-CRM-sub000/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormExpenseRepository implements ledger.ExpenseRepository using GORM
type GormExpenseRepository struct {
	db *gorm.DB
}

// NewGormExpenseRepository creates a new GORM-based expense repository
func NewGormExpenseRepository(db *gorm.DB) *GormExpenseRepository {
	return &GormExpenseRepository{db: db}
}

// FindByID finds an expense by ID
func (r *GormExpenseRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Expense, error) {
	var model models.ExpenseModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByFilter lists expenses matching the filter, ordered by IncurredAt
func (r *GormExpenseRepository) FindByFilter(ctx context.Context, filter ledger.ExpenseFilter) ([]ledger.Expense, error) {
	var expenseModels []models.ExpenseModel
	err := applyExpenseFilter(r.db.WithContext(ctx), filter).
		Order("incurred_at ASC").
		Find(&expenseModels).Error
	if err != nil {
		return nil, err
	}

	expenses := make([]ledger.Expense, len(expenseModels))
	for i, m := range expenseModels {
		expenses[i] = *m.ToDomain()
	}
	return expenses, nil
}

// SumByFilter totals the expense amounts matching the filter
func (r *GormExpenseRepository) SumByFilter(ctx context.Context, filter ledger.ExpenseFilter) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	err := applyExpenseFilter(r.db.WithContext(ctx), filter).
		Select("COALESCE(SUM(amount), 0) as total").
		Scan(&result).Error
	if err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

// Save creates or updates an expense
func (r *GormExpenseRepository) Save(ctx context.Context, e *ledger.Expense) error {
	model := models.ExpenseModelFromDomain(e)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete removes an expense
func (r *GormExpenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.ExpenseModel{}).Error
}

func applyExpenseFilter(db *gorm.DB, filter ledger.ExpenseFilter) *gorm.DB {
	query := db.Model(&models.ExpenseModel{}).Where("project_id = ?", filter.ProjectID)
	if !filter.From.IsZero() {
		query = query.Where("incurred_at >= ?", filter.From)
	}
	if !filter.To.IsZero() {
		query = query.Where("incurred_at < ?", filter.To)
	}
	if filter.Responsible != "" {
		query = query.Where("LOWER(responsible_name) LIKE LOWER(?)", "%"+filter.Responsible+"%")
	}
	return query
}

var _ ledger.ExpenseRepository = (*GormExpenseRepository)(nil)

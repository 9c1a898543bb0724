package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/Whapy-Dev/Whapy-CRM-sub000/internal/domain/budget"
	"github.com/Whapy-Dev/Whapy-CRM-sub000/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormInstallmentRepository implements budget.InstallmentRepository using GORM
type GormInstallmentRepository struct {
	db *gorm.DB
}

// NewGormInstallmentRepository creates a new GORM-based installment repository
func NewGormInstallmentRepository(db *gorm.DB) *GormInstallmentRepository {
	return &GormInstallmentRepository{db: db}
}

// FindByID finds an installment by ID
func (r *GormInstallmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*budget.Installment, error) {
	var model models.InstallmentModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByPhaseID lists a phase's installments ordered by sequence number
func (r *GormInstallmentRepository) FindByPhaseID(ctx context.Context, phaseID uuid.UUID) ([]budget.Installment, error) {
	var installmentModels []models.InstallmentModel
	err := r.db.WithContext(ctx).
		Where("phase_id = ?", phaseID).
		Order("sequence_number ASC").
		Find(&installmentModels).Error
	if err != nil {
		return nil, err
	}
	return toDomainInstallments(installmentModels), nil
}

// FindByBudgetID lists all installments under a budget
func (r *GormInstallmentRepository) FindByBudgetID(ctx context.Context, budgetID uuid.UUID) ([]budget.Installment, error) {
	var installmentModels []models.InstallmentModel
	err := r.db.WithContext(ctx).
		Where("budget_id = ?", budgetID).
		Order("sequence_number ASC").
		Find(&installmentModels).Error
	if err != nil {
		return nil, err
	}
	return toDomainInstallments(installmentModels), nil
}

// FindPendingPastDue lists PENDING_PAYMENT installments of a budget whose
// due date lies before the given instant
func (r *GormInstallmentRepository) FindPendingPastDue(ctx context.Context, budgetID uuid.UUID, before time.Time) ([]budget.Installment, error) {
	var installmentModels []models.InstallmentModel
	err := r.db.WithContext(ctx).
		Where("budget_id = ? AND status = ? AND due_date IS NOT NULL AND due_date < ?",
			budgetID, budget.InstallmentStatusPendingPayment, before).
		Order("due_date ASC").
		Find(&installmentModels).Error
	if err != nil {
		return nil, err
	}
	return toDomainInstallments(installmentModels), nil
}

// BudgetIDsWithPendingPastDue lists the distinct budgets that have at least
// one PENDING_PAYMENT installment whose due date lies before the given
// instant. Used by the periodic overdue sweep.
func (r *GormInstallmentRepository) BudgetIDsWithPendingPastDue(ctx context.Context, before time.Time) ([]uuid.UUID, error) {
	var budgetIDs []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&models.InstallmentModel{}).
		Distinct("budget_id").
		Where("status = ? AND due_date IS NOT NULL AND due_date < ?",
			budget.InstallmentStatusPendingPayment, before).
		Pluck("budget_id", &budgetIDs).Error
	if err != nil {
		return nil, err
	}
	return budgetIDs, nil
}

// SumAmountByPhaseID totals the installment amounts allocated under a phase.
// excludeID skips one installment, for re-checks during amount edits.
func (r *GormInstallmentRepository) SumAmountByPhaseID(ctx context.Context, phaseID uuid.UUID, excludeID *uuid.UUID) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	query := r.db.WithContext(ctx).
		Model(&models.InstallmentModel{}).
		Select("COALESCE(SUM(amount), 0) as total").
		Where("phase_id = ?", phaseID)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	if err := query.Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

// MaxSequenceByPhaseID returns the highest sequence number under a phase,
// 0 when the phase has no installments
func (r *GormInstallmentRepository) MaxSequenceByPhaseID(ctx context.Context, phaseID uuid.UUID) (int, error) {
	var result struct {
		Max int
	}
	err := r.db.WithContext(ctx).
		Model(&models.InstallmentModel{}).
		Select("COALESCE(MAX(sequence_number), 0) as max").
		Where("phase_id = ?", phaseID).
		Scan(&result).Error
	if err != nil {
		return 0, err
	}
	return result.Max, nil
}

// Save creates or updates an installment
func (r *GormInstallmentRepository) Save(ctx context.Context, i *budget.Installment) error {
	model := models.InstallmentModelFromDomain(i)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveBatch creates several installments at once
func (r *GormInstallmentRepository) SaveBatch(ctx context.Context, installments []*budget.Installment) error {
	if len(installments) == 0 {
		return nil
	}
	installmentModels := make([]*models.InstallmentModel, len(installments))
	for i, inst := range installments {
		installmentModels[i] = models.InstallmentModelFromDomain(inst)
	}
	return r.db.WithContext(ctx).Create(&installmentModels).Error
}

// Delete removes an installment
func (r *GormInstallmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.InstallmentModel{}).Error
}

// DeleteByPhaseID removes all installments of a phase
func (r *GormInstallmentRepository) DeleteByPhaseID(ctx context.Context, phaseID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("phase_id = ?", phaseID).Delete(&models.InstallmentModel{}).Error
}

// DeleteByBudgetID removes all installments under a budget
func (r *GormInstallmentRepository) DeleteByBudgetID(ctx context.Context, budgetID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("budget_id = ?", budgetID).Delete(&models.InstallmentModel{}).Error
}

func toDomainInstallments(installmentModels []models.InstallmentModel) []budget.Installment {
	installments := make([]budget.Installment, len(installmentModels))
	for i, m := range installmentModels {
		installments[i] = *m.ToDomain()
	}
	return installments
}

var _ budget.InstallmentRepository = (*GormInstallmentRepository)(nil)

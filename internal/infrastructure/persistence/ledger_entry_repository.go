package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/Whapy-Dev/Whapy-CRM-sub000/internal/domain/ledger"
	"github.com/Whapy-Dev/Whapy-CRM-sub000/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormLedgerEntryRepository implements ledger.EntryRepository using GORM.
// Entries are append-only; the repository exposes no update or delete.
type GormLedgerEntryRepository struct {
	db *gorm.DB
}

// NewGormLedgerEntryRepository creates a new GORM-based ledger entry repository
func NewGormLedgerEntryRepository(db *gorm.DB) *GormLedgerEntryRepository {
	return &GormLedgerEntryRepository{db: db}
}

// FindByID finds an entry by ID
func (r *GormLedgerEntryRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Entry, error) {
	var model models.LedgerEntryModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByBudgetID lists all entries linked to a budget
func (r *GormLedgerEntryRepository) FindByBudgetID(ctx context.Context, budgetID uuid.UUID) ([]ledger.Entry, error) {
	var entryModels []models.LedgerEntryModel
	err := r.db.WithContext(ctx).
		Where("budget_id = ?", budgetID).
		Order("created_at ASC").
		Find(&entryModels).Error
	if err != nil {
		return nil, err
	}
	return toDomainEntries(entryModels), nil
}

// FindByBudgetIDInRange lists entries linked to a budget created within [from, to)
func (r *GormLedgerEntryRepository) FindByBudgetIDInRange(ctx context.Context, budgetID uuid.UUID, from, to time.Time) ([]ledger.Entry, error) {
	var entryModels []models.LedgerEntryModel
	err := r.db.WithContext(ctx).
		Where("budget_id = ? AND created_at >= ? AND created_at < ?", budgetID, from, to).
		Order("created_at ASC").
		Find(&entryModels).Error
	if err != nil {
		return nil, err
	}
	return toDomainEntries(entryModels), nil
}

// ExistsForInstallment checks whether an entry was already posted for an installment
func (r *GormLedgerEntryRepository) ExistsForInstallment(ctx context.Context, installmentID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.LedgerEntryModel{}).
		Where("installment_id = ?", installmentID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// SumByBudgetIDInRange totals the entry amounts linked to a budget created
// within [from, to)
func (r *GormLedgerEntryRepository) SumByBudgetIDInRange(ctx context.Context, budgetID uuid.UUID, from, to time.Time) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	err := r.db.WithContext(ctx).
		Model(&models.LedgerEntryModel{}).
		Select("COALESCE(SUM(amount), 0) as total").
		Where("budget_id = ? AND created_at >= ? AND created_at < ?", budgetID, from, to).
		Scan(&result).Error
	if err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

// SumByBudgetID totals all entry amounts ever linked to a budget
func (r *GormLedgerEntryRepository) SumByBudgetID(ctx context.Context, budgetID uuid.UUID) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	err := r.db.WithContext(ctx).
		Model(&models.LedgerEntryModel{}).
		Select("COALESCE(SUM(amount), 0) as total").
		Where("budget_id = ?", budgetID).
		Scan(&result).Error
	if err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

// Save appends an entry
func (r *GormLedgerEntryRepository) Save(ctx context.Context, e *ledger.Entry) error {
	model := models.LedgerEntryModelFromDomain(e)
	return r.db.WithContext(ctx).Create(model).Error
}

func toDomainEntries(entryModels []models.LedgerEntryModel) []ledger.Entry {
	entries := make([]ledger.Entry, len(entryModels))
	for i, m := range entryModels {
		entries[i] = *m.ToDomain()
	}
	return entries
}

var _ ledger.EntryRepository = (*GormLedgerEntryRepository)(nil)

package persistence

import (
	"context"

	"github.com/Whapy-Dev/Whapy-CRM-sub000/internal/domain/budget"
	"github.com/Whapy-Dev/Whapy-CRM-sub000/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormReviewerAssignmentRepository implements budget.ReviewerAssignmentRepository using GORM
type GormReviewerAssignmentRepository struct {
	db *gorm.DB
}

// NewGormReviewerAssignmentRepository creates a new GORM-based reviewer assignment repository
func NewGormReviewerAssignmentRepository(db *gorm.DB) *GormReviewerAssignmentRepository {
	return &GormReviewerAssignmentRepository{db: db}
}

// FindByBudgetID lists the reviewers bound to a budget
func (r *GormReviewerAssignmentRepository) FindByBudgetID(ctx context.Context, budgetID uuid.UUID) ([]budget.ReviewerAssignment, error) {
	var assignmentModels []models.ReviewerAssignmentModel
	err := r.db.WithContext(ctx).
		Where("budget_id = ?", budgetID).
		Order("created_at ASC").
		Find(&assignmentModels).Error
	if err != nil {
		return nil, err
	}

	assignments := make([]budget.ReviewerAssignment, len(assignmentModels))
	for i, m := range assignmentModels {
		assignments[i] = *m.ToDomain()
	}
	return assignments, nil
}

// SaveBatch creates the assignments for a budget
func (r *GormReviewerAssignmentRepository) SaveBatch(ctx context.Context, assignments []*budget.ReviewerAssignment) error {
	if len(assignments) == 0 {
		return nil
	}
	assignmentModels := make([]*models.ReviewerAssignmentModel, len(assignments))
	for i, a := range assignments {
		assignmentModels[i] = models.ReviewerAssignmentModelFromDomain(a)
	}
	return r.db.WithContext(ctx).Create(&assignmentModels).Error
}

// DeleteByBudgetID removes all assignments of a budget
func (r *GormReviewerAssignmentRepository) DeleteByBudgetID(ctx context.Context, budgetID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("budget_id = ?", budgetID).Delete(&models.ReviewerAssignmentModel{}).Error
}

var _ budget.ReviewerAssignmentRepository = (*GormReviewerAssignmentRepository)(nil)

package persistence

import (
	"context"

	"github.com/Whapy-Dev/Whapy-CRM-sub000/internal/domain/audit"
	"github.com/Whapy-Dev/Whapy-CRM-sub000/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormAuditRepository implements audit.EntryRepository using GORM.
// The audit log is append-only.
type GormAuditRepository struct {
	db *gorm.DB
}

// NewGormAuditRepository creates a new GORM-based audit repository
func NewGormAuditRepository(db *gorm.DB) *GormAuditRepository {
	return &GormAuditRepository{db: db}
}

// Save appends an audit entry
func (r *GormAuditRepository) Save(ctx context.Context, e *audit.Entry) error {
	model := models.AuditEntryModelFromDomain(e)
	return r.db.WithContext(ctx).Create(model).Error
}

var _ audit.EntryRepository = (*GormAuditRepository)(nil)

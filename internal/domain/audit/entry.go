package audit

import (
	"context"

	"github.com/Whapy-Dev/Whapy-CRM-sub000/internal/domain/shared"
	"github.com/google/uuid"
)

// Entry is an append-only audit trail record of a mutating operation
type Entry struct {
	shared.BaseEntity
	ActorID    uuid.UUID `json:"actor_id"`
	Action     string    `json:"action"`
	EntityType string    `json:"entity_type"`
	EntityID   uuid.UUID `json:"entity_id"`
	Detail     string    `json:"detail"`
}

// NewEntry creates an audit entry
func NewEntry(actorID uuid.UUID, action, entityType string, entityID uuid.UUID, detail string) (*Entry, error) {
	if action == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Audit action cannot be empty")
	}
	if entityType == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Audit entity type cannot be empty")
	}
	return &Entry{
		BaseEntity: shared.NewBaseEntity(),
		ActorID:    actorID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Detail:     detail,
	}, nil
}

// EntryRepository defines the interface for the audit log sink.
// The log is append-only; querying it is out of scope here.
type EntryRepository interface {
	// Save appends an audit entry
	Save(ctx context.Context, e *Entry) error
}

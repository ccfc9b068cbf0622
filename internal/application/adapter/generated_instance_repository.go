package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/finledger/backend/internal/domain/entity"
)

// GeneratedInstanceRepository defines the interface for occurrence-resolution
// records. The store enforces the unique key (rule + calendar date); Create
// returns domainerror.ErrDuplicateKey on a collision.
type GeneratedInstanceRepository interface {
	// Create persists a new instance record.
	Create(ctx context.Context, instance *entity.GeneratedInstance) error

	// FindByKey retrieves the instance for a (rule, date) pair.
	// Returns ErrGeneratedInstanceNotFound when the pair is unresolved.
	FindByKey(ctx context.Context, ruleID uuid.UUID, date time.Time) (*entity.GeneratedInstance, error)

	// FindInWindow retrieves all instances for a user with dates in the closed
	// window [start, end].
	FindInWindow(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*entity.GeneratedInstance, error)

	// DeleteByKey removes the instance for a (rule, date) pair.
	DeleteByKey(ctx context.Context, ruleID uuid.UUID, date time.Time) error
}

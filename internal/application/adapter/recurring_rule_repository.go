// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/finledger/backend/internal/domain/entity"
)

// RecurringRuleRepository defines the interface for recurring rule persistence.
//
// The store enforces at most one active rule per (user, signature). Create
// returns domainerror.ErrDuplicateKey when an insert collides with that
// constraint; callers resolve the race by re-querying.
type RecurringRuleRepository interface {
	// Create persists a new rule.
	Create(ctx context.Context, rule *entity.RecurringRule) error

	// FindByID retrieves a rule by its ID. Returns ErrRecurringRuleNotFound when absent.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.RecurringRule, error)

	// FindActiveBySignature retrieves the active rule carrying the given
	// signature for a user. Returns ErrRecurringRuleNotFound when none exists.
	FindActiveBySignature(ctx context.Context, userID uuid.UUID, signature string) (*entity.RecurringRule, error)

	// FindActiveByUser retrieves all active rules for a user, ordered by creation time.
	FindActiveByUser(ctx context.Context, userID uuid.UUID) ([]*entity.RecurringRule, error)

	// FindByUser retrieves all rules for a user, active and inactive.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.RecurringRule, error)

	// DeactivateDuplicates deactivates every active rule sharing the signature
	// except keepID. Returns the number of rules deactivated.
	DeactivateDuplicates(ctx context.Context, userID uuid.UUID, signature string, keepID uuid.UUID) (int64, error)

	// Update persists changes to an existing rule.
	Update(ctx context.Context, rule *entity.RecurringRule) error

	// Delete hard-removes a rule. Already-generated instances and transactions
	// are left untouched.
	Delete(ctx context.Context, id uuid.UUID) error

	// FindActiveOwners lists the distinct users owning at least one active rule.
	FindActiveOwners(ctx context.Context) ([]uuid.UUID, error)
}

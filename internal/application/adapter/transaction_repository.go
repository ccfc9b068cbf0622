package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/finledger/backend/internal/domain/entity"
)

// TransactionRepository defines the ledger store interface consumed by the
// recurring engine. The wider ledger API (listing, aggregation, import) lives
// with its own feature; generation only ever appends.
type TransactionRepository interface {
	// Create persists a new ledger transaction. When the transaction carries a
	// fingerprint and it collides with an existing one, Create returns
	// domainerror.ErrDuplicateKey.
	Create(ctx context.Context, transaction *entity.Transaction) error

	// FindByID retrieves a transaction by its ID. Returns ErrTransactionNotFound when absent.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)

	// FindByRecurringRule retrieves all transactions generated by a rule,
	// ordered by date.
	FindByRecurringRule(ctx context.Context, ruleID uuid.UUID) ([]*entity.Transaction, error)
}

package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType represents the kind of financial movement.
type TransactionType string

const (
	TransactionTypeExpense  TransactionType = "expense"
	TransactionTypeIncome   TransactionType = "income"
	TransactionTypeTransfer TransactionType = "transfer"
)

// IsValid reports whether the transaction type is supported.
func (t TransactionType) IsValid() bool {
	return t == TransactionTypeExpense || t == TransactionTypeIncome || t == TransactionTypeTransfer
}

// TransactionStatus is the confirmation state of a ledger transaction.
// Generated transactions start out pending so a human confirms them later.
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusConfirmed TransactionStatus = "confirmed"
)

// Transaction represents a financial event in the ledger.
type Transaction struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	Type        TransactionType
	Currency    string
	CategoryID  *uuid.UUID
	AccountID   *uuid.UUID
	ToAccountID *uuid.UUID
	Notes       string
	Tags        []string
	Status      TransactionStatus

	// RecurringRuleID back-references the rule that generated this transaction.
	RecurringRuleID *uuid.UUID

	// Fingerprint is an optional idempotency key. When present the ledger
	// store enforces it unique, so a repeated import of the same source row
	// collides instead of duplicating.
	Fingerprint *string

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// NewTransactionFromTemplate stamps out a pending ledger transaction from a
// recurring rule's template, dated at the given occurrence date.
func NewTransactionFromTemplate(
	userID uuid.UUID,
	ruleID uuid.UUID,
	date time.Time,
	template TransactionTemplate,
) *Transaction {
	now := time.Now().UTC()

	description := template.Note
	if description == "" {
		description = "Recurring " + string(template.Type)
	}

	return &Transaction{
		ID:              uuid.New(),
		UserID:          userID,
		Date:            DateOnly(date),
		Description:     description,
		Amount:          template.Amount,
		Type:            template.Type,
		Currency:        template.Currency,
		CategoryID:      template.CategoryID,
		AccountID:       template.AccountID,
		ToAccountID:     template.ToAccountID,
		Notes:           template.Note,
		Tags:            template.Tags,
		Status:          TransactionStatusPending,
		RecurringRuleID: &ruleID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

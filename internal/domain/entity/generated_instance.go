package entity

import (
	"time"

	"github.com/google/uuid"
)

// InstanceOutcome records how a (rule, date) occurrence was resolved.
type InstanceOutcome string

const (
	// InstanceOutcomeCreated means a ledger transaction was materialized for the date.
	InstanceOutcomeCreated InstanceOutcome = "created"
	// InstanceOutcomeIgnored means the date was deliberately skipped, no transaction.
	InstanceOutcomeIgnored InstanceOutcome = "ignored"
)

// GeneratedInstance marks that a specific (rule, calendar date) pair has been
// resolved, either by materializing a transaction or by ignoring the date.
// The unique key is the idempotency guarantee: no pair is ever resolved twice.
type GeneratedInstance struct {
	ID            uuid.UUID
	RuleID        uuid.UUID
	UserID        uuid.UUID
	Date          time.Time
	UniqueKey     string
	Outcome       InstanceOutcome
	TransactionID *uuid.UUID
	CreatedAt     time.Time
}

// InstanceKey derives the unique key for a (rule, calendar date) pair.
func InstanceKey(ruleID uuid.UUID, date time.Time) string {
	return ruleID.String() + "_" + DateOnly(date).Format("2006-01-02")
}

// NewGeneratedInstance creates an instance record for a resolved occurrence.
// transactionID must be set for the created outcome and nil for ignored.
func NewGeneratedInstance(
	ruleID uuid.UUID,
	userID uuid.UUID,
	date time.Time,
	outcome InstanceOutcome,
	transactionID *uuid.UUID,
) *GeneratedInstance {
	day := DateOnly(date)
	return &GeneratedInstance{
		ID:            uuid.New(),
		RuleID:        ruleID,
		UserID:        userID,
		Date:          day,
		UniqueKey:     InstanceKey(ruleID, day),
		Outcome:       outcome,
		TransactionID: transactionID,
		CreatedAt:     time.Now().UTC(),
	}
}

// Package recurring contains the recurring-transaction rule engine use cases.
package recurring

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/finledger/backend/internal/application/adapter"
	"github.com/finledger/backend/internal/domain/entity"
	domainerror "github.com/finledger/backend/internal/domain/error"
)

// PreviewPeriodMonthly is the only supported preview/run period: the first
// through last calendar day of the anchor's month.
const PreviewPeriodMonthly = "monthly"

// RuleOutput is the use-case-level view of a recurring rule.
type RuleOutput struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Frequency entity.Frequency
	Interval  int
	StartDate time.Time
	EndDate   *time.Time
	Template  entity.TransactionTemplate
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ToRuleOutput maps a rule entity to its output form.
func ToRuleOutput(rule *entity.RecurringRule) *RuleOutput {
	return &RuleOutput{
		ID:        rule.ID,
		UserID:    rule.UserID,
		Frequency: rule.Frequency,
		Interval:  rule.Interval,
		StartDate: rule.StartDate,
		EndDate:   rule.EndDate,
		Template:  rule.Template,
		Active:    rule.Active,
		CreatedAt: rule.CreatedAt,
		UpdatedAt: rule.UpdatedAt,
	}
}

// validateCadence checks frequency and interval.
func validateCadence(frequency entity.Frequency, interval int) error {
	if !frequency.IsValid() {
		return domainerror.NewRecurringError(
			domainerror.ErrCodeInvalidFrequency,
			"frequency must be 'weekly', 'monthly' or 'yearly'",
			domainerror.ErrInvalidFrequency,
		)
	}
	if interval < 1 {
		return domainerror.NewRecurringError(
			domainerror.ErrCodeInvalidInterval,
			"interval must be a positive integer",
			domainerror.ErrInvalidInterval,
		)
	}
	return nil
}

// validateWindow checks that the end date, when present, does not precede the start date.
func validateWindow(startDate time.Time, endDate *time.Time) error {
	if endDate != nil && entity.DateOnly(*endDate).Before(entity.DateOnly(startDate)) {
		return domainerror.NewRecurringError(
			domainerror.ErrCodeInvalidDateRange,
			"end date must not precede start date",
			domainerror.ErrInvalidDateRange,
		)
	}
	return nil
}

// validateTemplate checks the transaction template's required fields.
func validateTemplate(template entity.TransactionTemplate) error {
	if !template.Type.IsValid() {
		return domainerror.NewRecurringError(
			domainerror.ErrCodeInvalidTemplate,
			"template type must be 'income', 'expense' or 'transfer'",
			domainerror.ErrInvalidTemplate,
		)
	}
	if template.Currency == "" {
		return domainerror.NewRecurringError(
			domainerror.ErrCodeInvalidTemplate,
			"template currency is required",
			domainerror.ErrInvalidTemplate,
		)
	}
	return nil
}

// findOwnedRule loads a rule and verifies ownership. A rule owned by a
// different user surfaces as not found so the API leaks no existence signal.
func findOwnedRule(
	ctx context.Context,
	ruleRepo adapter.RecurringRuleRepository,
	ruleID uuid.UUID,
	userID uuid.UUID,
) (*entity.RecurringRule, error) {
	rule, err := ruleRepo.FindByID(ctx, ruleID)
	if err != nil {
		if errors.Is(err, domainerror.ErrRecurringRuleNotFound) {
			return nil, ruleNotFoundError()
		}
		return nil, fmt.Errorf("failed to find recurring rule: %w", err)
	}
	if rule.UserID != userID {
		return nil, ruleNotFoundError()
	}
	return rule, nil
}

func ruleNotFoundError() error {
	return domainerror.NewRecurringError(
		domainerror.ErrCodeRuleNotFound,
		"recurring rule not found",
		domainerror.ErrRecurringRuleNotFound,
	)
}

func alreadyGeneratedError(date time.Time) error {
	return domainerror.NewRecurringError(
		domainerror.ErrCodeAlreadyGenerated,
		"occurrence on "+entity.DateOnly(date).Format("2006-01-02")+" was already resolved",
		domainerror.ErrOccurrenceAlreadyGenerated,
	)
}

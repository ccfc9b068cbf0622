package recurring

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finledger/backend/internal/application/adapter"
	"github.com/finledger/backend/internal/domain/entity"
)

// TemplatePatch carries optional template field changes for a rule update.
type TemplatePatch struct {
	Type        *entity.TransactionType
	Amount      *decimal.Decimal
	Currency    *string
	CategoryID  *uuid.UUID
	AccountID   *uuid.UUID
	ToAccountID *uuid.UUID
	Note        *string
	Tags        []string
}

func (p *TemplatePatch) empty() bool {
	return p.Type == nil && p.Amount == nil && p.Currency == nil &&
		p.CategoryID == nil && p.AccountID == nil && p.ToAccountID == nil &&
		p.Note == nil && p.Tags == nil
}

// UpdateRuleInput represents the input for recurring rule update.
// Nil fields are left unchanged. ClearEndDate removes the end date, making
// the rule open-ended again; it takes precedence over EndDate.
type UpdateRuleInput struct {
	RuleID       uuid.UUID
	UserID       uuid.UUID
	Frequency    *entity.Frequency
	Interval     *int
	StartDate    *time.Time
	EndDate      *time.Time
	ClearEndDate bool
	Active       *bool
	Template     *TemplatePatch
}

// UpdateRuleOutput represents the output of recurring rule update.
type UpdateRuleOutput struct {
	Rule *RuleOutput
}

// UpdateRuleUseCase handles recurring rule updates.
//
// Update deliberately does not recompute or re-check the signature, so an
// update can leave two active rules with the same effective cadence and
// template; duplicate suppression applies to create only.
type UpdateRuleUseCase struct {
	ruleRepo adapter.RecurringRuleRepository
}

// NewUpdateRuleUseCase creates a new UpdateRuleUseCase instance.
func NewUpdateRuleUseCase(ruleRepo adapter.RecurringRuleRepository) *UpdateRuleUseCase {
	return &UpdateRuleUseCase{
		ruleRepo: ruleRepo,
	}
}

// Execute performs the rule update.
func (uc *UpdateRuleUseCase) Execute(ctx context.Context, input UpdateRuleInput) (*UpdateRuleOutput, error) {
	rule, err := findOwnedRule(ctx, uc.ruleRepo, input.RuleID, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Frequency != nil {
		rule.Frequency = *input.Frequency
	}
	if input.Interval != nil {
		rule.Interval = *input.Interval
	}
	if err := validateCadence(rule.Frequency, rule.Interval); err != nil {
		return nil, err
	}

	if input.StartDate != nil {
		rule.StartDate = entity.DateOnly(*input.StartDate)
	}
	if input.ClearEndDate {
		rule.EndDate = nil
	} else if input.EndDate != nil {
		end := entity.DateOnly(*input.EndDate)
		rule.EndDate = &end
	}
	if err := validateWindow(rule.StartDate, rule.EndDate); err != nil {
		return nil, err
	}

	if input.Active != nil {
		rule.Active = *input.Active
	}

	if input.Template != nil && !input.Template.empty() {
		applyTemplatePatch(&rule.Template, input.Template)
		rule.Template.Normalize()
		if err := validateTemplate(rule.Template); err != nil {
			return nil, err
		}
	}

	rule.UpdatedAt = time.Now().UTC()

	if err := uc.ruleRepo.Update(ctx, rule); err != nil {
		return nil, fmt.Errorf("failed to update recurring rule: %w", err)
	}

	return &UpdateRuleOutput{Rule: ToRuleOutput(rule)}, nil
}

func applyTemplatePatch(template *entity.TransactionTemplate, patch *TemplatePatch) {
	if patch.Type != nil {
		template.Type = *patch.Type
	}
	if patch.Amount != nil {
		template.Amount = *patch.Amount
	}
	if patch.Currency != nil {
		template.Currency = *patch.Currency
	}
	if patch.CategoryID != nil {
		template.CategoryID = patch.CategoryID
	}
	if patch.AccountID != nil {
		template.AccountID = patch.AccountID
	}
	if patch.ToAccountID != nil {
		template.ToAccountID = patch.ToAccountID
	}
	if patch.Note != nil {
		template.Note = *patch.Note
	}
	if patch.Tags != nil {
		template.Tags = patch.Tags
	}
}

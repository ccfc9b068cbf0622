package recurring

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/finledger/backend/internal/application/adapter"
	"github.com/finledger/backend/internal/domain/entity"
	domainerror "github.com/finledger/backend/internal/domain/error"
)

// SplitRuleInput represents the input for splitting a rule at a date.
type SplitRuleInput struct {
	RuleID      uuid.UUID
	UserID      uuid.UUID
	SplitDate   time.Time
	NewTemplate entity.TransactionTemplate
}

// SplitRuleOutput represents the output of a split: the end-dated original
// and the successor rule starting at the split date.
type SplitRuleOutput struct {
	Original *RuleOutput
	NewRule  *RuleOutput
}

// SplitRuleUseCase implements "change starting now" semantics: the original
// rule is end-dated at splitDate − 1 day so historical occurrences stay
// untouched, and a successor with the same cadence starts at splitDate.
type SplitRuleUseCase struct {
	ruleRepo adapter.RecurringRuleRepository
	create   *CreateRuleUseCase
}

// NewSplitRuleUseCase creates a new SplitRuleUseCase instance.
func NewSplitRuleUseCase(ruleRepo adapter.RecurringRuleRepository, create *CreateRuleUseCase) *SplitRuleUseCase {
	return &SplitRuleUseCase{
		ruleRepo: ruleRepo,
		create:   create,
	}
}

// Execute performs the split. No calendar day can produce occurrences from
// both rules: the original stops the day before the successor starts.
func (uc *SplitRuleUseCase) Execute(ctx context.Context, input SplitRuleInput) (*SplitRuleOutput, error) {
	rule, err := findOwnedRule(ctx, uc.ruleRepo, input.RuleID, input.UserID)
	if err != nil {
		return nil, err
	}

	splitDate := entity.DateOnly(input.SplitDate)
	if !splitDate.After(rule.StartDate) {
		return nil, domainerror.NewRecurringError(
			domainerror.ErrCodeInvalidSplitDate,
			"split date must be after the rule start date",
			domainerror.ErrInvalidSplitDate,
		)
	}

	// Validate the successor's template before touching the original, so a
	// rejected split leaves the rule exactly as it was.
	template := input.NewTemplate
	template.Normalize()
	if err := validateTemplate(template); err != nil {
		return nil, err
	}

	newEnd := splitDate.AddDate(0, 0, -1)
	rule.EndDate = &newEnd
	rule.UpdatedAt = time.Now().UTC()
	if err := uc.ruleRepo.Update(ctx, rule); err != nil {
		return nil, fmt.Errorf("failed to end-date recurring rule: %w", err)
	}

	created, err := uc.create.Execute(ctx, CreateRuleInput{
		UserID:    input.UserID,
		Frequency: rule.Frequency,
		Interval:  rule.Interval,
		StartDate: splitDate,
		Template:  template,
	})
	if err != nil {
		return nil, err
	}

	return &SplitRuleOutput{
		Original: ToRuleOutput(rule),
		NewRule:  created.Rule,
	}, nil
}

package recurring

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/finledger/backend/internal/application/adapter"
)

// ListRulesInput represents the input for listing recurring rules.
type ListRulesInput struct {
	UserID     uuid.UUID
	ActiveOnly bool
}

// ListRulesOutput represents the output of listing recurring rules.
type ListRulesOutput struct {
	Rules []*RuleOutput
}

// ListRulesUseCase handles listing a user's recurring rules.
type ListRulesUseCase struct {
	ruleRepo adapter.RecurringRuleRepository
}

// NewListRulesUseCase creates a new ListRulesUseCase instance.
func NewListRulesUseCase(ruleRepo adapter.RecurringRuleRepository) *ListRulesUseCase {
	return &ListRulesUseCase{
		ruleRepo: ruleRepo,
	}
}

// Execute lists the user's rules. Inactive rules are retained for history and
// included unless ActiveOnly is set.
func (uc *ListRulesUseCase) Execute(ctx context.Context, input ListRulesInput) (*ListRulesOutput, error) {
	find := uc.ruleRepo.FindByUser
	if input.ActiveOnly {
		find = uc.ruleRepo.FindActiveByUser
	}

	rules, err := find(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list recurring rules: %w", err)
	}

	outputs := make([]*RuleOutput, len(rules))
	for i, rule := range rules {
		outputs[i] = ToRuleOutput(rule)
	}
	return &ListRulesOutput{Rules: outputs}, nil
}

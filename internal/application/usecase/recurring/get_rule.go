package recurring

import (
	"context"

	"github.com/google/uuid"

	"github.com/finledger/backend/internal/application/adapter"
)

// GetRuleInput represents the input for fetching a single rule.
type GetRuleInput struct {
	RuleID uuid.UUID
	UserID uuid.UUID
}

// GetRuleOutput represents the output of fetching a single rule.
type GetRuleOutput struct {
	Rule *RuleOutput
}

// GetRuleUseCase handles fetching a single recurring rule.
type GetRuleUseCase struct {
	ruleRepo adapter.RecurringRuleRepository
}

// NewGetRuleUseCase creates a new GetRuleUseCase instance.
func NewGetRuleUseCase(ruleRepo adapter.RecurringRuleRepository) *GetRuleUseCase {
	return &GetRuleUseCase{
		ruleRepo: ruleRepo,
	}
}

// Execute fetches the rule with an ownership check.
func (uc *GetRuleUseCase) Execute(ctx context.Context, input GetRuleInput) (*GetRuleOutput, error) {
	rule, err := findOwnedRule(ctx, uc.ruleRepo, input.RuleID, input.UserID)
	if err != nil {
		return nil, err
	}
	return &GetRuleOutput{Rule: ToRuleOutput(rule)}, nil
}

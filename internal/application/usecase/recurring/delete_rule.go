package recurring

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/finledger/backend/internal/application/adapter"
)

// DeleteRuleInput represents the input for recurring rule deletion.
type DeleteRuleInput struct {
	RuleID uuid.UUID
	UserID uuid.UUID
}

// DeleteRuleOutput represents the output of recurring rule deletion.
type DeleteRuleOutput struct{}

// DeleteRuleUseCase handles recurring rule deletion. Delete is a destructive
// removal, not a deactivation; already-generated instances and transactions
// are not cascaded.
type DeleteRuleUseCase struct {
	ruleRepo adapter.RecurringRuleRepository
}

// NewDeleteRuleUseCase creates a new DeleteRuleUseCase instance.
func NewDeleteRuleUseCase(ruleRepo adapter.RecurringRuleRepository) *DeleteRuleUseCase {
	return &DeleteRuleUseCase{
		ruleRepo: ruleRepo,
	}
}

// Execute performs the rule deletion.
func (uc *DeleteRuleUseCase) Execute(ctx context.Context, input DeleteRuleInput) (*DeleteRuleOutput, error) {
	rule, err := findOwnedRule(ctx, uc.ruleRepo, input.RuleID, input.UserID)
	if err != nil {
		return nil, err
	}

	if err := uc.ruleRepo.Delete(ctx, rule.ID); err != nil {
		return nil, fmt.Errorf("failed to delete recurring rule: %w", err)
	}

	return &DeleteRuleOutput{}, nil
}

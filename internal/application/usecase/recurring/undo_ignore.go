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

// UndoIgnoreInput represents the input for undoing an ignore.
type UndoIgnoreInput struct {
	RuleID uuid.UUID
	UserID uuid.UUID
	Date   time.Time
}

// UndoIgnoreOutput represents the output of undoing an ignore.
type UndoIgnoreOutput struct{}

// UndoIgnoreUseCase removes an ignored instance record, returning the
// occurrence to new status. Only ignored instances are reversible; a
// materialized (created) occurrence is permanent.
type UndoIgnoreUseCase struct {
	ruleRepo     adapter.RecurringRuleRepository
	instanceRepo adapter.GeneratedInstanceRepository
}

// NewUndoIgnoreUseCase creates a new UndoIgnoreUseCase instance.
func NewUndoIgnoreUseCase(
	ruleRepo adapter.RecurringRuleRepository,
	instanceRepo adapter.GeneratedInstanceRepository,
) *UndoIgnoreUseCase {
	return &UndoIgnoreUseCase{
		ruleRepo:     ruleRepo,
		instanceRepo: instanceRepo,
	}
}

// Execute performs the undo.
func (uc *UndoIgnoreUseCase) Execute(ctx context.Context, input UndoIgnoreInput) (*UndoIgnoreOutput, error) {
	rule, err := findOwnedRule(ctx, uc.ruleRepo, input.RuleID, input.UserID)
	if err != nil {
		return nil, err
	}

	date := entity.DateOnly(input.Date)

	instance, err := uc.instanceRepo.FindByKey(ctx, rule.ID, date)
	if err != nil {
		if errors.Is(err, domainerror.ErrGeneratedInstanceNotFound) {
			return nil, domainerror.NewRecurringError(
				domainerror.ErrCodeInstanceNotFound,
				"no ignored occurrence on "+date.Format("2006-01-02"),
				domainerror.ErrGeneratedInstanceNotFound,
			)
		}
		return nil, fmt.Errorf("failed to look up generated instance: %w", err)
	}

	if instance.Outcome != entity.InstanceOutcomeIgnored {
		return nil, domainerror.NewRecurringError(
			domainerror.ErrCodeNotIgnored,
			"occurrence on "+date.Format("2006-01-02")+" was materialized and cannot be undone",
			domainerror.ErrOccurrenceNotIgnored,
		)
	}

	if err := uc.instanceRepo.DeleteByKey(ctx, rule.ID, date); err != nil {
		return nil, fmt.Errorf("failed to remove ignored instance: %w", err)
	}

	return &UndoIgnoreOutput{}, nil
}

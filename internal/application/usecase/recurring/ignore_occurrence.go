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

// IgnoreOccurrenceInput represents the input for ignoring one occurrence date.
type IgnoreOccurrenceInput struct {
	RuleID uuid.UUID
	UserID uuid.UUID
	Date   time.Time
}

// IgnoreOccurrenceOutput represents the output of ignoring an occurrence.
type IgnoreOccurrenceOutput struct {
	Instance *entity.GeneratedInstance
}

// IgnoreOccurrenceUseCase records a (rule, date) pair as deliberately
// skipped. Preview reports the date as ignored and run never materializes it.
type IgnoreOccurrenceUseCase struct {
	ruleRepo     adapter.RecurringRuleRepository
	instanceRepo adapter.GeneratedInstanceRepository
}

// NewIgnoreOccurrenceUseCase creates a new IgnoreOccurrenceUseCase instance.
func NewIgnoreOccurrenceUseCase(
	ruleRepo adapter.RecurringRuleRepository,
	instanceRepo adapter.GeneratedInstanceRepository,
) *IgnoreOccurrenceUseCase {
	return &IgnoreOccurrenceUseCase{
		ruleRepo:     ruleRepo,
		instanceRepo: instanceRepo,
	}
}

// Execute performs the ignore.
func (uc *IgnoreOccurrenceUseCase) Execute(ctx context.Context, input IgnoreOccurrenceInput) (*IgnoreOccurrenceOutput, error) {
	rule, err := findOwnedRule(ctx, uc.ruleRepo, input.RuleID, input.UserID)
	if err != nil {
		return nil, err
	}

	date := entity.DateOnly(input.Date)

	_, err = uc.instanceRepo.FindByKey(ctx, rule.ID, date)
	if err == nil {
		return nil, alreadyGeneratedError(date)
	}
	if !errors.Is(err, domainerror.ErrGeneratedInstanceNotFound) {
		return nil, fmt.Errorf("failed to look up generated instance: %w", err)
	}

	instance := entity.NewGeneratedInstance(
		rule.ID, input.UserID, date, entity.InstanceOutcomeIgnored, nil,
	)
	if err := uc.instanceRepo.Create(ctx, instance); err != nil {
		if errors.Is(err, domainerror.ErrDuplicateKey) {
			return nil, alreadyGeneratedError(date)
		}
		return nil, fmt.Errorf("failed to record ignored instance: %w", err)
	}

	return &IgnoreOccurrenceOutput{Instance: instance}, nil
}

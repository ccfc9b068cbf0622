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

// MaterializeInput represents the input for materializing one occurrence.
// The date bypasses the rule's window and cadence, so a caller can pull a
// future occurrence forward.
type MaterializeInput struct {
	RuleID           uuid.UUID
	UserID           uuid.UUID
	Date             time.Time
	TemplateOverride *entity.TransactionTemplate
}

// MaterializeOutput represents the output of materializing one occurrence.
type MaterializeOutput struct {
	Transaction *entity.Transaction
	Instance    *entity.GeneratedInstance
}

// MaterializeUseCase creates a single occurrence's transaction on demand.
// Unlike run, a duplicate here is surfaced to the caller: materializing an
// already-resolved date is a real mistake, not a benign race.
type MaterializeUseCase struct {
	ruleRepo        adapter.RecurringRuleRepository
	instanceRepo    adapter.GeneratedInstanceRepository
	transactionRepo adapter.TransactionRepository
}

// NewMaterializeUseCase creates a new MaterializeUseCase instance.
func NewMaterializeUseCase(
	ruleRepo adapter.RecurringRuleRepository,
	instanceRepo adapter.GeneratedInstanceRepository,
	transactionRepo adapter.TransactionRepository,
) *MaterializeUseCase {
	return &MaterializeUseCase{
		ruleRepo:        ruleRepo,
		instanceRepo:    instanceRepo,
		transactionRepo: transactionRepo,
	}
}

// Execute performs the materialization.
func (uc *MaterializeUseCase) Execute(ctx context.Context, input MaterializeInput) (*MaterializeOutput, error) {
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

	template := rule.Template
	if input.TemplateOverride != nil {
		template = *input.TemplateOverride
		template.Normalize()
		if err := validateTemplate(template); err != nil {
			return nil, err
		}
	}

	transaction := entity.NewTransactionFromTemplate(input.UserID, rule.ID, date, template)
	if err := uc.transactionRepo.Create(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	instance := entity.NewGeneratedInstance(
		rule.ID, input.UserID, date, entity.InstanceOutcomeCreated, &transaction.ID,
	)
	if err := uc.instanceRepo.Create(ctx, instance); err != nil {
		if errors.Is(err, domainerror.ErrDuplicateKey) {
			return nil, alreadyGeneratedError(date)
		}
		return nil, fmt.Errorf("failed to record generated instance: %w", err)
	}

	return &MaterializeOutput{
		Transaction: transaction,
		Instance:    instance,
	}, nil
}

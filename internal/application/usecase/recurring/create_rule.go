package recurring

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/finledger/backend/internal/application/adapter"
	"github.com/finledger/backend/internal/domain/entity"
	domainerror "github.com/finledger/backend/internal/domain/error"
	"github.com/finledger/backend/internal/domain/recurrence"
)

// CreateRuleInput represents the input for recurring rule creation.
type CreateRuleInput struct {
	UserID    uuid.UUID
	Frequency entity.Frequency
	Interval  int
	StartDate time.Time
	EndDate   *time.Time
	Template  entity.TransactionTemplate
}

// CreateRuleOutput represents the output of recurring rule creation.
// Existing is true when an active duplicate already carried the same
// signature and was returned instead of a fresh rule.
type CreateRuleOutput struct {
	Rule     *RuleOutput
	Existing bool
}

// CreateRuleUseCase handles recurring rule creation with duplicate suppression.
type CreateRuleUseCase struct {
	ruleRepo adapter.RecurringRuleRepository
}

// NewCreateRuleUseCase creates a new CreateRuleUseCase instance.
func NewCreateRuleUseCase(ruleRepo adapter.RecurringRuleRepository) *CreateRuleUseCase {
	return &CreateRuleUseCase{
		ruleRepo: ruleRepo,
	}
}

// Execute performs the rule creation. Creating a duplicate of an existing
// active rule is not an error: the existing rule wins, and any other active
// duplicates are deactivated.
func (uc *CreateRuleUseCase) Execute(ctx context.Context, input CreateRuleInput) (*CreateRuleOutput, error) {
	if err := validateCadence(input.Frequency, input.Interval); err != nil {
		return nil, err
	}
	if err := validateWindow(input.StartDate, input.EndDate); err != nil {
		return nil, err
	}

	template := input.Template
	template.Normalize()
	if err := validateTemplate(template); err != nil {
		return nil, err
	}

	signature := recurrence.RuleSignature(
		input.UserID, input.Frequency, input.Interval, input.StartDate, template,
	)

	// Idempotent create: an existing active rule with the same signature wins.
	existing, err := uc.ruleRepo.FindActiveBySignature(ctx, input.UserID, signature)
	if err == nil {
		uc.deactivateStale(ctx, input.UserID, signature, existing.ID)
		return &CreateRuleOutput{Rule: ToRuleOutput(existing), Existing: true}, nil
	}
	if !errors.Is(err, domainerror.ErrRecurringRuleNotFound) {
		return nil, fmt.Errorf("failed to look up rule signature: %w", err)
	}

	rule := entity.NewRecurringRule(
		input.UserID, input.Frequency, input.Interval,
		input.StartDate, input.EndDate, template, signature,
	)

	if err := uc.ruleRepo.Create(ctx, rule); err != nil {
		if errors.Is(err, domainerror.ErrDuplicateKey) {
			// A concurrent create won the signature race; return the winner.
			winner, findErr := uc.ruleRepo.FindActiveBySignature(ctx, input.UserID, signature)
			if findErr != nil {
				return nil, fmt.Errorf("failed to resolve duplicate rule race: %w", findErr)
			}
			return &CreateRuleOutput{Rule: ToRuleOutput(winner), Existing: true}, nil
		}
		return nil, fmt.Errorf("failed to create recurring rule: %w", err)
	}

	// Stale duplicates can exist when an older rule predates the active-signature
	// constraint; sweep them after a fresh insert.
	uc.deactivateStale(ctx, input.UserID, signature, rule.ID)

	return &CreateRuleOutput{Rule: ToRuleOutput(rule)}, nil
}

func (uc *CreateRuleUseCase) deactivateStale(ctx context.Context, userID uuid.UUID, signature string, keepID uuid.UUID) {
	count, err := uc.ruleRepo.DeactivateDuplicates(ctx, userID, signature, keepID)
	if err != nil {
		slog.Warn("Failed to deactivate duplicate recurring rules",
			"userID", userID,
			"error", err,
		)
		return
	}
	if count > 0 {
		slog.Info("Deactivated duplicate recurring rules",
			"userID", userID,
			"count", count,
		)
	}
}

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
)

// OccurrenceOutcome tags the result of one occurrence during a run.
type OccurrenceOutcome string

const (
	// OutcomeCreated means a transaction and instance were written for the date.
	OutcomeCreated OccurrenceOutcome = "created"
	// OutcomeSkippedDuplicate means a concurrent run resolved the date first.
	OutcomeSkippedDuplicate OccurrenceOutcome = "skipped_duplicate"
	// OutcomeFailed means a non-conflict store error stopped this occurrence;
	// the rest of the batch proceeds.
	OutcomeFailed OccurrenceOutcome = "failed"
)

// OccurrenceResult is the per-occurrence outcome of a run.
type OccurrenceResult struct {
	RuleID        uuid.UUID
	Date          time.Time
	Outcome       OccurrenceOutcome
	TransactionID *uuid.UUID
	Reason        string
}

// RunInput represents the input for generating a period's transactions.
type RunInput struct {
	UserID     uuid.UUID
	Period     string
	AnchorDate time.Time
}

// RunOutput represents the output of a run. Generated counts only freshly
// created transactions; a repeated run for the same period converges to zero.
type RunOutput struct {
	Generated int
	Results   []OccurrenceResult
}

// RunUseCase materializes every new occurrence of a period into a pending
// ledger transaction, exactly once. Concurrency safety comes entirely from
// the instance store's unique key: a duplicate-key conflict on the instance
// write means another caller resolved the date first, and the occurrence is
// skipped without error.
type RunUseCase struct {
	preview         *PreviewUseCase
	instanceRepo    adapter.GeneratedInstanceRepository
	transactionRepo adapter.TransactionRepository
}

// NewRunUseCase creates a new RunUseCase instance.
func NewRunUseCase(
	preview *PreviewUseCase,
	instanceRepo adapter.GeneratedInstanceRepository,
	transactionRepo adapter.TransactionRepository,
) *RunUseCase {
	return &RunUseCase{
		preview:         preview,
		instanceRepo:    instanceRepo,
		transactionRepo: transactionRepo,
	}
}

// Execute performs the run.
func (uc *RunUseCase) Execute(ctx context.Context, input RunInput) (*RunOutput, error) {
	previewOut, err := uc.preview.Execute(ctx, PreviewInput(input))
	if err != nil {
		return nil, err
	}

	output := &RunOutput{}
	for _, item := range previewOut.Items {
		if item.Status != OccurrenceStatusNew {
			continue
		}
		result := uc.materializeOccurrence(ctx, input.UserID, item)
		if result.Outcome == OutcomeCreated {
			output.Generated++
		}
		output.Results = append(output.Results, result)
	}
	return output, nil
}

// materializeOccurrence writes the transaction first, then the instance. A
// crash between the two writes leaves an orphan transaction without an
// instance; the instance key is what prevents duplication, so the next run
// simply generates again and the orphan stays reconcilable.
func (uc *RunUseCase) materializeOccurrence(ctx context.Context, userID uuid.UUID, item PreviewItem) OccurrenceResult {
	result := OccurrenceResult{RuleID: item.RuleID, Date: item.Date}

	transaction := entity.NewTransactionFromTemplate(userID, item.RuleID, item.Date, item.Template)
	if err := uc.transactionRepo.Create(ctx, transaction); err != nil {
		if errors.Is(err, domainerror.ErrDuplicateKey) {
			result.Outcome = OutcomeSkippedDuplicate
			return result
		}
		slog.Warn("Failed to create transaction for occurrence",
			"ruleID", item.RuleID,
			"date", item.Date.Format("2006-01-02"),
			"error", err,
		)
		result.Outcome = OutcomeFailed
		result.Reason = fmt.Sprintf("transaction create: %v", err)
		return result
	}

	instance := entity.NewGeneratedInstance(
		item.RuleID, userID, item.Date, entity.InstanceOutcomeCreated, &transaction.ID,
	)
	if err := uc.instanceRepo.Create(ctx, instance); err != nil {
		if errors.Is(err, domainerror.ErrDuplicateKey) {
			// Concurrent run won this date; our transaction is the orphan.
			result.Outcome = OutcomeSkippedDuplicate
			return result
		}
		slog.Warn("Failed to record generated instance",
			"ruleID", item.RuleID,
			"date", item.Date.Format("2006-01-02"),
			"error", err,
		)
		result.Outcome = OutcomeFailed
		result.Reason = fmt.Sprintf("instance create: %v", err)
		return result
	}

	result.Outcome = OutcomeCreated
	result.TransactionID = &transaction.ID
	return result
}

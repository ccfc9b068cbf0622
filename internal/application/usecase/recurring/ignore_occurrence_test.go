package recurring

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finledger/backend/internal/domain/entity"
	domainerror "github.com/finledger/backend/internal/domain/error"
)

func TestIgnoreOccurrenceUseCase(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	occurrence := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)

	setup := func(t *testing.T) (*engineFixture, *RuleOutput, *IgnoreOccurrenceUseCase) {
		f := newEngineFixture()
		input := newCreateInput(userID)
		input.StartDate = occurrence
		rule := f.mustCreate(t, input)
		return f, rule, NewIgnoreOccurrenceUseCase(f.ruleRepo, f.instanceRepo)
	}

	t.Run("records an ignored instance without a transaction", func(t *testing.T) {
		f, rule, uc := setup(t)

		output, err := uc.Execute(ctx, IgnoreOccurrenceInput{RuleID: rule.ID, UserID: userID, Date: occurrence})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.Instance.Outcome != entity.InstanceOutcomeIgnored {
			t.Errorf("expected outcome ignored, got %s", output.Instance.Outcome)
		}
		if output.Instance.TransactionID != nil {
			t.Error("expected no transaction id on an ignored instance")
		}
		if f.transactionRepo.count() != 0 {
			t.Error("expected ignore to create no transactions")
		}
	})

	t.Run("ignoring twice conflicts", func(t *testing.T) {
		_, rule, uc := setup(t)

		if _, err := uc.Execute(ctx, IgnoreOccurrenceInput{RuleID: rule.ID, UserID: userID, Date: occurrence}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		_, err := uc.Execute(ctx, IgnoreOccurrenceInput{RuleID: rule.ID, UserID: userID, Date: occurrence})
		if !errors.Is(err, domainerror.ErrOccurrenceAlreadyGenerated) {
			t.Errorf("expected already-generated conflict, got %v", err)
		}
	})

	t.Run("ignoring a materialized occurrence conflicts", func(t *testing.T) {
		f, rule, uc := setup(t)

		txnID := uuid.New()
		mustCreateInstance(t, f.instanceRepo, entity.NewGeneratedInstance(
			rule.ID, userID, occurrence, entity.InstanceOutcomeCreated, &txnID,
		))

		_, err := uc.Execute(ctx, IgnoreOccurrenceInput{RuleID: rule.ID, UserID: userID, Date: occurrence})
		if !errors.Is(err, domainerror.ErrOccurrenceAlreadyGenerated) {
			t.Errorf("expected already-generated conflict, got %v", err)
		}
	})

	t.Run("another user's rule is not found", func(t *testing.T) {
		_, rule, uc := setup(t)
		_, err := uc.Execute(ctx, IgnoreOccurrenceInput{RuleID: rule.ID, UserID: uuid.New(), Date: occurrence})
		if !errors.Is(err, domainerror.ErrRecurringRuleNotFound) {
			t.Errorf("expected not found, got %v", err)
		}
	})
}

func TestUndoIgnoreUseCase(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	occurrence := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)

	setup := func(t *testing.T) (*engineFixture, *RuleOutput, *UndoIgnoreUseCase) {
		f := newEngineFixture()
		input := newCreateInput(userID)
		input.StartDate = occurrence
		rule := f.mustCreate(t, input)
		return f, rule, NewUndoIgnoreUseCase(f.ruleRepo, f.instanceRepo)
	}

	t.Run("restores an ignored occurrence to new", func(t *testing.T) {
		f, rule, uc := setup(t)
		mustCreateInstance(t, f.instanceRepo, entity.NewGeneratedInstance(
			rule.ID, userID, occurrence, entity.InstanceOutcomeIgnored, nil,
		))

		if _, err := uc.Execute(ctx, UndoIgnoreInput{RuleID: rule.ID, UserID: userID, Date: occurrence}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		// The next run materializes the date again.
		output, err := f.run.Execute(ctx, marchInput(userID))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.Generated != 1 {
			t.Errorf("expected the restored date to be generated, got %d", output.Generated)
		}
	})

	t.Run("no instance means nothing to undo", func(t *testing.T) {
		_, rule, uc := setup(t)
		_, err := uc.Execute(ctx, UndoIgnoreInput{RuleID: rule.ID, UserID: userID, Date: occurrence})
		if !errors.Is(err, domainerror.ErrGeneratedInstanceNotFound) {
			t.Errorf("expected instance not found, got %v", err)
		}
	})

	t.Run("a materialized occurrence cannot be undone", func(t *testing.T) {
		f, rule, uc := setup(t)
		txnID := uuid.New()
		mustCreateInstance(t, f.instanceRepo, entity.NewGeneratedInstance(
			rule.ID, userID, occurrence, entity.InstanceOutcomeCreated, &txnID,
		))

		_, err := uc.Execute(ctx, UndoIgnoreInput{RuleID: rule.ID, UserID: userID, Date: occurrence})
		if !errors.Is(err, domainerror.ErrOccurrenceNotIgnored) {
			t.Errorf("expected not-ignored conflict, got %v", err)
		}
	})
}

func TestMaterializeUseCase(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	occurrence := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)

	setup := func(t *testing.T) (*engineFixture, *RuleOutput, *MaterializeUseCase) {
		f := newEngineFixture()
		input := newCreateInput(userID)
		input.StartDate = occurrence
		rule := f.mustCreate(t, input)
		return f, rule, NewMaterializeUseCase(f.ruleRepo, f.instanceRepo, f.transactionRepo)
	}

	t.Run("creates the transaction and marks the date resolved", func(t *testing.T) {
		f, rule, uc := setup(t)

		output, err := uc.Execute(ctx, MaterializeInput{RuleID: rule.ID, UserID: userID, Date: occurrence})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.Instance.Outcome != entity.InstanceOutcomeCreated {
			t.Errorf("expected outcome created, got %s", output.Instance.Outcome)
		}
		if output.Transaction.Status != entity.TransactionStatusPending {
			t.Errorf("expected a pending transaction, got %s", output.Transaction.Status)
		}

		// A subsequent run skips the date.
		runOut, err := f.run.Execute(ctx, marchInput(userID))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if runOut.Generated != 0 {
			t.Errorf("expected run to skip the materialized date, generated %d", runOut.Generated)
		}
	})

	t.Run("template override changes the transaction, not the rule", func(t *testing.T) {
		f, rule, uc := setup(t)

		override := newTestTemplate()
		override.Amount = decimal.NewFromFloat(12.49)
		output, err := uc.Execute(ctx, MaterializeInput{
			RuleID:           rule.ID,
			UserID:           userID,
			Date:             occurrence,
			TemplateOverride: &override,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !output.Transaction.Amount.Equal(decimal.NewFromFloat(12.49)) {
			t.Errorf("expected the override amount, got %s", output.Transaction.Amount)
		}

		stored, err := f.ruleRepo.FindByID(ctx, rule.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !stored.Template.Amount.Equal(decimal.NewFromFloat(9.99)) {
			t.Error("expected the rule template to be unchanged by an override")
		}
	})

	t.Run("invalid override is rejected", func(t *testing.T) {
		_, rule, uc := setup(t)

		override := newTestTemplate()
		override.Currency = ""
		_, err := uc.Execute(ctx, MaterializeInput{
			RuleID:           rule.ID,
			UserID:           userID,
			Date:             occurrence,
			TemplateOverride: &override,
		})
		if !errors.Is(err, domainerror.ErrInvalidTemplate) {
			t.Errorf("expected invalid template, got %v", err)
		}
	})

	t.Run("a resolved date conflicts", func(t *testing.T) {
		f, rule, uc := setup(t)
		mustCreateInstance(t, f.instanceRepo, entity.NewGeneratedInstance(
			rule.ID, userID, occurrence, entity.InstanceOutcomeIgnored, nil,
		))

		_, err := uc.Execute(ctx, MaterializeInput{RuleID: rule.ID, UserID: userID, Date: occurrence})
		if !errors.Is(err, domainerror.ErrOccurrenceAlreadyGenerated) {
			t.Errorf("expected already-generated conflict, got %v", err)
		}
		if f.transactionRepo.count() != 0 {
			t.Error("expected no transaction for a conflicting materialize")
		}
	})
}

package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/finledger/backend/internal/application/adapter"
	"github.com/finledger/backend/internal/application/usecase/recurring"
	"github.com/finledger/backend/internal/domain/entity"
	"github.com/finledger/backend/internal/integration/persistence"
	"github.com/finledger/backend/internal/integration/persistence/model"
)

func setupScheduler(t *testing.T) (*Scheduler, adapter.RecurringRuleRepository, adapter.TransactionRepository) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.RecurringRuleModel{},
		&model.GeneratedInstanceModel{},
		&model.TransactionModel{},
	))

	ruleRepo := persistence.NewRecurringRuleRepository(db)
	instanceRepo := persistence.NewGeneratedInstanceRepository(db)
	transactionRepo := persistence.NewTransactionRepository(db)
	runUseCase := recurring.NewRunUseCase(
		recurring.NewPreviewUseCase(ruleRepo, instanceRepo),
		instanceRepo,
		transactionRepo,
	)
	return NewScheduler(runUseCase, ruleRepo, DefaultConfig()), ruleRepo, transactionRepo
}

func TestScheduler_RunAll(t *testing.T) {
	ctx := context.Background()
	s, ruleRepo, transactionRepo := setupScheduler(t)

	// A monthly rule due on the current day of month generates this month.
	userID := uuid.New()
	start := entity.DateOnly(time.Now().UTC())
	rule := entity.NewRecurringRule(userID, entity.FrequencyMonthly, 1, start, nil, entity.TransactionTemplate{
		Type:     entity.TransactionTypeExpense,
		Amount:   decimal.NewFromFloat(42),
		Currency: "EUR",
	}, "sched-sig")
	require.NoError(t, ruleRepo.Create(ctx, rule))

	s.runAll(ctx)

	generated, err := transactionRepo.FindByRecurringRule(ctx, rule.ID)
	require.NoError(t, err)
	require.Len(t, generated, 1)

	// A second sweep generates nothing new.
	s.runAll(ctx)
	generated, err = transactionRepo.FindByRecurringRule(ctx, rule.ID)
	require.NoError(t, err)
	require.Len(t, generated, 1)
}

func TestScheduler_NoOwners(t *testing.T) {
	s, _, _ := setupScheduler(t)
	// A sweep with no rules must not error or panic.
	s.runAll(context.Background())
}

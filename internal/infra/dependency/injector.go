// Package dependency provides dependency injection for the application.
package dependency

import (
	"gorm.io/gorm"

	"github.com/finledger/backend/config"
	"github.com/finledger/backend/internal/application/usecase/recurring"
	"github.com/finledger/backend/internal/infra/server/router"
	"github.com/finledger/backend/internal/integration/adapters"
	"github.com/finledger/backend/internal/integration/entrypoint/controller"
	"github.com/finledger/backend/internal/integration/entrypoint/middleware"
	"github.com/finledger/backend/internal/integration/persistence"
	"github.com/finledger/backend/internal/integration/scheduler"
)

// Injector holds all application dependencies.
type Injector struct {
	Config    *config.Config
	DB        *gorm.DB
	Router    *router.Router
	Scheduler *scheduler.Scheduler
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, db *gorm.DB) *Injector {
	// Create repositories
	ruleRepo := persistence.NewRecurringRuleRepository(db)
	instanceRepo := persistence.NewGeneratedInstanceRepository(db)
	transactionRepo := persistence.NewTransactionRepository(db)

	// Create adapters/services
	tokenService := adapters.NewTokenService(cfg.JWT.Secret)

	// Create recurring rule use cases
	createRuleUseCase := recurring.NewCreateRuleUseCase(ruleRepo)
	listRulesUseCase := recurring.NewListRulesUseCase(ruleRepo)
	getRuleUseCase := recurring.NewGetRuleUseCase(ruleRepo)
	updateRuleUseCase := recurring.NewUpdateRuleUseCase(ruleRepo)
	deleteRuleUseCase := recurring.NewDeleteRuleUseCase(ruleRepo)
	previewUseCase := recurring.NewPreviewUseCase(ruleRepo, instanceRepo)
	runUseCase := recurring.NewRunUseCase(previewUseCase, instanceRepo, transactionRepo)
	materializeUseCase := recurring.NewMaterializeUseCase(ruleRepo, instanceRepo, transactionRepo)
	splitRuleUseCase := recurring.NewSplitRuleUseCase(ruleRepo, createRuleUseCase)
	ignoreUseCase := recurring.NewIgnoreOccurrenceUseCase(ruleRepo, instanceRepo)
	undoIgnoreUseCase := recurring.NewUndoIgnoreUseCase(ruleRepo, instanceRepo)

	// Create controllers
	healthController := controller.NewHealthController(func() bool {
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	})

	recurringRuleController := controller.NewRecurringRuleController(
		createRuleUseCase,
		listRulesUseCase,
		getRuleUseCase,
		updateRuleUseCase,
		deleteRuleUseCase,
		previewUseCase,
		runUseCase,
		materializeUseCase,
		splitRuleUseCase,
		ignoreUseCase,
		undoIgnoreUseCase,
	)

	// Create middleware
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	// Create router
	appRouter := router.NewRouter(
		healthController,
		recurringRuleController,
		authMiddleware,
	)

	// Create scheduler
	generationScheduler := scheduler.NewScheduler(runUseCase, ruleRepo, scheduler.Config{
		Interval: cfg.Scheduler.Interval,
	})

	return &Injector{
		Config:    cfg,
		DB:        db,
		Router:    appRouter,
		Scheduler: generationScheduler,
	}
}

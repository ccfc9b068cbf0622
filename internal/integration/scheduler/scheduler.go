// Package scheduler runs periodic generation of recurring transactions.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/finledger/backend/internal/application/adapter"
	"github.com/finledger/backend/internal/application/usecase/recurring"
)

// Scheduler periodically materializes the current month's occurrences for
// every user who owns an active rule. Generation is idempotent, so running
// on a timer alongside manual runs is safe.
type Scheduler struct {
	runUseCase *recurring.RunUseCase
	ruleRepo   adapter.RecurringRuleRepository
	interval   time.Duration
}

// Config holds configuration for the scheduler.
type Config struct {
	Interval time.Duration
}

// DefaultConfig returns the default scheduler configuration.
func DefaultConfig() Config {
	return Config{
		Interval: time.Hour,
	}
}

// NewScheduler creates a new scheduler.
func NewScheduler(runUseCase *recurring.RunUseCase, ruleRepo adapter.RecurringRuleRepository, config Config) *Scheduler {
	return &Scheduler{
		runUseCase: runUseCase,
		ruleRepo:   ruleRepo,
		interval:   config.Interval,
	}
}

// Start begins the scheduler loop. It blocks until the context is cancelled.
func (s *Scheduler) Start(ctx context.Context) {
	slog.Info("Recurring scheduler started", "interval", s.interval)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	// Run immediately on start, then on ticker
	s.runAll(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Recurring scheduler shutting down")
			return
		case <-ticker.C:
			s.runAll(ctx)
		}
	}
}

// runAll generates the current month's transactions for every rule owner.
func (s *Scheduler) runAll(ctx context.Context) {
	owners, err := s.ruleRepo.FindActiveOwners(ctx)
	if err != nil {
		slog.Error("Failed to list rule owners", "error", err)
		return
	}

	if len(owners) == 0 {
		return
	}

	now := time.Now().UTC()
	anchor := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	var generated int
	for _, userID := range owners {
		select {
		case <-ctx.Done():
			return
		default:
		}

		output, err := s.runUseCase.Execute(ctx, recurring.RunInput{
			UserID:     userID,
			Period:     recurring.PreviewPeriodMonthly,
			AnchorDate: anchor,
		})
		if err != nil {
			slog.Error("Scheduled run failed", "userID", userID, "error", err)
			continue
		}
		generated += output.Generated
	}

	if generated > 0 {
		slog.Info("Scheduled generation finished",
			"owners", len(owners),
			"generated", generated,
			"month", anchor.Format("2006-01"),
		)
	}
}

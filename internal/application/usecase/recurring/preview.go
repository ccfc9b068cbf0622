package recurring

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/finledger/backend/internal/application/adapter"
	"github.com/finledger/backend/internal/domain/entity"
	domainerror "github.com/finledger/backend/internal/domain/error"
	"github.com/finledger/backend/internal/domain/recurrence"
)

// OccurrenceStatus labels a previewed occurrence date.
type OccurrenceStatus string

const (
	// OccurrenceStatusNew means no instance exists yet; run would materialize it.
	OccurrenceStatusNew OccurrenceStatus = "new"
	// OccurrenceStatusAlreadyGenerated means a transaction was already created for the date.
	OccurrenceStatusAlreadyGenerated OccurrenceStatus = "already_generated"
	// OccurrenceStatusIgnored means the date was deliberately skipped.
	OccurrenceStatusIgnored OccurrenceStatus = "ignored"
)

// PreviewItem is one occurrence in a preview, with its resolution status.
type PreviewItem struct {
	RuleID   uuid.UUID
	Date     time.Time
	Template entity.TransactionTemplate
	Status   OccurrenceStatus
}

// PreviewInput represents the input for a period preview.
type PreviewInput struct {
	UserID     uuid.UUID
	Period     string
	AnchorDate time.Time
}

// PreviewOutput represents the output of a period preview.
type PreviewOutput struct {
	WindowStart time.Time
	WindowEnd   time.Time
	Items       []PreviewItem
}

// PreviewUseCase computes the occurrences all active rules produce in a
// period, labelled against already-resolved instances. Purely read-only.
type PreviewUseCase struct {
	ruleRepo     adapter.RecurringRuleRepository
	instanceRepo adapter.GeneratedInstanceRepository
}

// NewPreviewUseCase creates a new PreviewUseCase instance.
func NewPreviewUseCase(
	ruleRepo adapter.RecurringRuleRepository,
	instanceRepo adapter.GeneratedInstanceRepository,
) *PreviewUseCase {
	return &PreviewUseCase{
		ruleRepo:     ruleRepo,
		instanceRepo: instanceRepo,
	}
}

// Execute performs the preview. Items are ordered by date, then rule id.
func (uc *PreviewUseCase) Execute(ctx context.Context, input PreviewInput) (*PreviewOutput, error) {
	if input.Period != PreviewPeriodMonthly {
		return nil, domainerror.NewRecurringError(
			domainerror.ErrCodeInvalidPreviewPeriod,
			"period must be 'monthly'",
			domainerror.ErrInvalidPreviewPeriod,
		)
	}

	windowStart, windowEnd := recurrence.MonthWindow(input.AnchorDate)

	rules, err := uc.ruleRepo.FindActiveByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list active rules: %w", err)
	}

	instances, err := uc.instanceRepo.FindInWindow(ctx, input.UserID, windowStart, windowEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to list generated instances: %w", err)
	}
	resolved := make(map[string]*entity.GeneratedInstance, len(instances))
	for _, instance := range instances {
		resolved[instance.UniqueKey] = instance
	}

	var items []PreviewItem
	for _, rule := range rules {
		for _, date := range recurrence.Occurrences(rule, windowStart, windowEnd) {
			items = append(items, PreviewItem{
				RuleID:   rule.ID,
				Date:     date,
				Template: rule.Template,
				Status:   statusFor(resolved[entity.InstanceKey(rule.ID, date)]),
			})
		}
	}

	sort.Slice(items, func(i, j int) bool {
		if !items[i].Date.Equal(items[j].Date) {
			return items[i].Date.Before(items[j].Date)
		}
		return items[i].RuleID.String() < items[j].RuleID.String()
	})

	return &PreviewOutput{
		WindowStart: windowStart,
		WindowEnd:   windowEnd,
		Items:       items,
	}, nil
}

func statusFor(instance *entity.GeneratedInstance) OccurrenceStatus {
	if instance == nil {
		return OccurrenceStatusNew
	}
	if instance.Outcome == entity.InstanceOutcomeIgnored {
		return OccurrenceStatusIgnored
	}
	return OccurrenceStatusAlreadyGenerated
}

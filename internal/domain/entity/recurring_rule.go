// Package entity defines the core business entities for the domain layer.
package entity

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Frequency represents the cadence unit of a recurring rule.
type Frequency string

const (
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
	FrequencyYearly  Frequency = "yearly"
)

// IsValid reports whether the frequency is one of the supported cadence units.
func (f Frequency) IsValid() bool {
	return f == FrequencyWeekly || f == FrequencyMonthly || f == FrequencyYearly
}

// TransactionTemplate is the transaction shape a recurring rule stamps out
// for every occurrence.
type TransactionTemplate struct {
	Type        TransactionType
	Amount      decimal.Decimal
	Currency    string
	CategoryID  *uuid.UUID
	AccountID   *uuid.UUID
	ToAccountID *uuid.UUID
	Note        string
	Tags        []string
}

// Normalize canonicalizes the template in place: currency upper-cased, note
// trimmed, tags sorted and de-duplicated. Two templates describing the same
// obligation normalize to identical values, which the rule signature relies on.
func (t *TransactionTemplate) Normalize() {
	t.Currency = strings.ToUpper(strings.TrimSpace(t.Currency))
	t.Note = strings.TrimSpace(t.Note)
	t.Tags = normalizeTags(t.Tags)
}

func normalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	if len(out) == 0 {
		return nil
	}
	sort.Strings(out)
	return out
}

// RecurringRule is a declarative recipe for generating ledger transactions on
// a calendar cadence. Dates are calendar dates at UTC midnight; EndDate is
// inclusive and nil means open-ended.
type RecurringRule struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Frequency Frequency
	Interval  int
	StartDate time.Time
	EndDate   *time.Time
	Template  TransactionTemplate
	Signature string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewRecurringRule creates a new active RecurringRule entity. The template is
// normalized and the start/end dates are truncated to calendar dates; the
// signature is computed by the caller from the normalized fields.
func NewRecurringRule(
	userID uuid.UUID,
	frequency Frequency,
	interval int,
	startDate time.Time,
	endDate *time.Time,
	template TransactionTemplate,
	signature string,
) *RecurringRule {
	now := time.Now().UTC()
	template.Normalize()

	rule := &RecurringRule{
		ID:        uuid.New(),
		UserID:    userID,
		Frequency: frequency,
		Interval:  interval,
		StartDate: DateOnly(startDate),
		Template:  template,
		Signature: signature,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if endDate != nil {
		end := DateOnly(*endDate)
		rule.EndDate = &end
	}
	return rule
}

// DateOnly truncates a timestamp to its calendar date at UTC midnight.
func DateOnly(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

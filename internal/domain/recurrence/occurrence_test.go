package recurrence

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/finledger/backend/internal/domain/entity"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func monthlyRule(start time.Time, interval int) *entity.RecurringRule {
	return &entity.RecurringRule{
		ID:        uuid.New(),
		Frequency: entity.FrequencyMonthly,
		Interval:  interval,
		StartDate: start,
	}
}

func TestOccurrences_EndOfMonthRollover(t *testing.T) {
	tests := []struct {
		name        string
		start       time.Time
		windowStart time.Time
		windowEnd   time.Time
		expected    []time.Time
	}{
		{
			name:        "Jan 31 rule lands on Feb 29 in a leap year",
			start:       date(2024, time.January, 31),
			windowStart: date(2024, time.February, 1),
			windowEnd:   date(2024, time.February, 29),
			expected:    []time.Time{date(2024, time.February, 29)},
		},
		{
			name:        "Jan 31 rule lands on Feb 28 in a non-leap year",
			start:       date(2025, time.January, 31),
			windowStart: date(2025, time.February, 1),
			windowEnd:   date(2025, time.February, 28),
			expected:    []time.Time{date(2025, time.February, 28)},
		},
		{
			name:        "rollover does not stick: March returns to the 31st",
			start:       date(2024, time.January, 31),
			windowStart: date(2024, time.March, 1),
			windowEnd:   date(2024, time.March, 31),
			expected:    []time.Time{date(2024, time.March, 31)},
		},
		{
			name:        "day 30 clamps only in February",
			start:       date(2025, time.January, 30),
			windowStart: date(2025, time.February, 1),
			windowEnd:   date(2025, time.April, 30),
			expected: []time.Time{
				date(2025, time.February, 28),
				date(2025, time.March, 30),
				date(2025, time.April, 30),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Occurrences(monthlyRule(tt.start, 1), tt.windowStart, tt.windowEnd)
			assertDates(t, got, tt.expected)
		})
	}
}

func TestOccurrences_Cadence(t *testing.T) {
	t.Run("weekly interval 2", func(t *testing.T) {
		rule := &entity.RecurringRule{
			ID:        uuid.New(),
			Frequency: entity.FrequencyWeekly,
			Interval:  2,
			StartDate: date(2024, time.March, 1),
		}
		got := Occurrences(rule, date(2024, time.March, 1), date(2024, time.March, 31))
		assertDates(t, got, []time.Time{
			date(2024, time.March, 1),
			date(2024, time.March, 15),
			date(2024, time.March, 29),
		})
	})

	t.Run("monthly interval 3 skips intermediate months", func(t *testing.T) {
		rule := monthlyRule(date(2024, time.January, 15), 3)
		got := Occurrences(rule, date(2024, time.January, 1), date(2024, time.December, 31))
		assertDates(t, got, []time.Time{
			date(2024, time.January, 15),
			date(2024, time.April, 15),
			date(2024, time.July, 15),
			date(2024, time.October, 15),
		})
	})

	t.Run("yearly Feb 29 clamps to Feb 28 off-leap", func(t *testing.T) {
		rule := &entity.RecurringRule{
			ID:        uuid.New(),
			Frequency: entity.FrequencyYearly,
			Interval:  1,
			StartDate: date(2024, time.February, 29),
		}
		got := Occurrences(rule, date(2025, time.January, 1), date(2025, time.December, 31))
		assertDates(t, got, []time.Time{date(2025, time.February, 28)})
	})
}

func TestOccurrences_WindowAndEndDate(t *testing.T) {
	t.Run("start date inside window is included", func(t *testing.T) {
		rule := monthlyRule(date(2024, time.March, 15), 1)
		got := Occurrences(rule, date(2024, time.March, 1), date(2024, time.March, 31))
		assertDates(t, got, []time.Time{date(2024, time.March, 15)})
	})

	t.Run("rule starting after the window yields nothing", func(t *testing.T) {
		rule := monthlyRule(date(2024, time.June, 1), 1)
		got := Occurrences(rule, date(2024, time.March, 1), date(2024, time.March, 31))
		if len(got) != 0 {
			t.Errorf("expected no occurrences, got %v", got)
		}
	})

	t.Run("end date truncates the window", func(t *testing.T) {
		end := date(2024, time.March, 10)
		rule := monthlyRule(date(2024, time.January, 5), 1)
		rule.EndDate = &end
		got := Occurrences(rule, date(2024, time.January, 1), date(2024, time.December, 31))
		assertDates(t, got, []time.Time{
			date(2024, time.January, 5),
			date(2024, time.February, 5),
			date(2024, time.March, 5),
		})
	})

	t.Run("end date equal to an occurrence keeps it", func(t *testing.T) {
		end := date(2024, time.February, 5)
		rule := monthlyRule(date(2024, time.January, 5), 1)
		rule.EndDate = &end
		got := Occurrences(rule, date(2024, time.January, 1), date(2024, time.December, 31))
		assertDates(t, got, []time.Time{
			date(2024, time.January, 5),
			date(2024, time.February, 5),
		})
	})

	t.Run("interval below 1 yields nothing", func(t *testing.T) {
		rule := monthlyRule(date(2024, time.January, 5), 0)
		if got := Occurrences(rule, date(2024, time.January, 1), date(2024, time.December, 31)); got != nil {
			t.Errorf("expected nil, got %v", got)
		}
	})

	t.Run("unknown frequency yields nothing", func(t *testing.T) {
		rule := &entity.RecurringRule{
			ID:        uuid.New(),
			Frequency: entity.Frequency("daily"),
			Interval:  1,
			StartDate: date(2024, time.January, 5),
		}
		if got := Occurrences(rule, date(2024, time.January, 1), date(2024, time.December, 31)); got != nil {
			t.Errorf("expected nil, got %v", got)
		}
	})
}

func TestOccurrences_AdvanceCap(t *testing.T) {
	// A weekly rule far in the past cannot reach a window beyond 1000 steps.
	rule := &entity.RecurringRule{
		ID:        uuid.New(),
		Frequency: entity.FrequencyWeekly,
		Interval:  1,
		StartDate: date(2000, time.January, 1),
	}
	got := Occurrences(rule, date(2030, time.January, 1), date(2030, time.December, 31))
	if len(got) != 0 {
		t.Errorf("expected the advance cap to stop enumeration, got %d occurrences", len(got))
	}
}

func TestMonthWindow(t *testing.T) {
	first, last := MonthWindow(date(2024, time.February, 14))
	if !first.Equal(date(2024, time.February, 1)) {
		t.Errorf("expected window start 2024-02-01, got %s", first.Format("2006-01-02"))
	}
	if !last.Equal(date(2024, time.February, 29)) {
		t.Errorf("expected window end 2024-02-29, got %s", last.Format("2006-01-02"))
	}
}

func assertDates(t *testing.T, got, expected []time.Time) {
	t.Helper()
	if len(got) != len(expected) {
		t.Fatalf("expected %d occurrences, got %d: %v", len(expected), len(got), got)
	}
	for i := range expected {
		if !got[i].Equal(expected[i]) {
			t.Errorf("occurrence %d: expected %s, got %s",
				i, expected[i].Format("2006-01-02"), got[i].Format("2006-01-02"))
		}
	}
}

// Package recurrence implements the pure calendar math for recurring rules:
// occurrence enumeration and rule fingerprinting. It performs no I/O.
package recurrence

import (
	"time"

	"github.com/finledger/backend/internal/domain/entity"
)

// maxAdvances bounds the number of cadence steps considered in a single call,
// so a malformed rule cannot spin the loop forever.
const maxAdvances = 1000

// Occurrences enumerates the calendar dates at which a rule produces an
// occurrence within the closed window [windowStart, windowEnd].
//
// Dates are generated by advancing the rule's start date by whole cadence
// steps, never by advancing the previous occurrence. That keeps end-of-month
// rollover anchored: a monthly rule starting Jan 31 yields Feb 29 (leap) or
// Feb 28, and then Mar 31 again rather than Mar 28.
//
// The result is a fresh ascending slice; the function is safe to call
// repeatedly with identical results. A rule with an interval below 1 or an
// unknown frequency yields no occurrences.
func Occurrences(rule *entity.RecurringRule, windowStart, windowEnd time.Time) []time.Time {
	if rule.Interval < 1 || !rule.Frequency.IsValid() {
		return nil
	}

	windowStart = entity.DateOnly(windowStart)
	end := entity.DateOnly(windowEnd)
	if rule.EndDate != nil && rule.EndDate.Before(end) {
		end = *rule.EndDate
	}

	start := entity.DateOnly(rule.StartDate)

	var dates []time.Time
	for step := 0; step < maxAdvances; step++ {
		date := advance(start, rule.Frequency, rule.Interval*step)
		if date.After(end) {
			break
		}
		if !date.Before(windowStart) {
			dates = append(dates, date)
		}
	}
	return dates
}

// advance moves the anchor date forward by the given number of cadence units.
func advance(anchor time.Time, frequency entity.Frequency, units int) time.Time {
	switch frequency {
	case entity.FrequencyWeekly:
		return anchor.AddDate(0, 0, 7*units)
	case entity.FrequencyMonthly:
		return addMonthsClamped(anchor, units)
	case entity.FrequencyYearly:
		return addMonthsClamped(anchor, 12*units)
	default:
		return anchor
	}
}

// addMonthsClamped adds months with calendar-correct rollover: the day of
// month is clamped to the target month's length instead of overflowing the
// way time.AddDate does (Jan 31 + 1 month = Feb 29/28, not Mar 2/3).
func addMonthsClamped(t time.Time, months int) time.Time {
	year, month, day := t.Date()

	total := int(month) - 1 + months
	targetYear := year + total/12
	targetMonth := time.Month(total%12 + 1)

	if last := daysInMonth(targetYear, targetMonth); day > last {
		day = last
	}
	return time.Date(targetYear, targetMonth, day, 0, 0, 0, 0, time.UTC)
}

func daysInMonth(year int, month time.Month) int {
	// Day zero of the following month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// MonthWindow returns the first and last calendar day of the anchor's month.
func MonthWindow(anchor time.Time) (time.Time, time.Time) {
	year, month, _ := anchor.UTC().Date()
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC)
	return first, last
}

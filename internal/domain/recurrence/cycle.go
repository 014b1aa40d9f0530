// Package recurrence implements the date-cycle arithmetic for the bill
// recurrence engine: advancing a due date by one cycle and deriving the
// display name of a bill instance.
package recurrence

import (
	"fmt"
	"time"

	"github.com/billfold/backend/internal/domain/entity"
)

// DateOnly strips the time component, keeping year/month/day in UTC.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// NextDueDate advances a due date by one cycle of the given frequency.
// Month-based frequencies clamp to the last day of the target month, so
// Jan 31 + 1 month yields Feb 28 (or Feb 29 in leap years) rather than
// rolling into March. For one-time rules the input is returned unchanged;
// callers must treat that as "no next instance".
func NextDueDate(current time.Time, frequency entity.BillFrequency) time.Time {
	current = DateOnly(current)

	switch frequency {
	case entity.FrequencyWeekly:
		return current.AddDate(0, 0, 7)
	case entity.FrequencyMonthly:
		return addMonthsClamped(current, 1)
	case entity.FrequencyQuarterly:
		return addMonthsClamped(current, 3)
	case entity.FrequencyYearly:
		return addMonthsClamped(current, 12)
	default:
		return current
	}
}

// addMonthsClamped adds months keeping the day of month, clamped to the
// last day of the target month. A bare AddDate would normalize Jan 31 + 1
// month to Mar 2/3.
func addMonthsClamped(d time.Time, months int) time.Time {
	firstOfTarget := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, months, 0)

	day := d.Day()
	if last := lastDayOfMonth(firstOfTarget.Year(), firstOfTarget.Month()); day > last {
		day = last
	}

	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day, 0, 0, 0, 0, time.UTC)
}

// lastDayOfMonth returns the number of days in the given month.
func lastDayOfMonth(year int, month time.Month) int {
	// Day zero of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// InstanceName derives the deterministic display name of a bill instance
// from its due date, the rule name and the rule frequency:
//
//	monthly   → "Rent - Sep 2025"
//	yearly    → "Insurance - 2025"
//	weekly    → "Cleaning - Monday, 01 Sep"
//	quarterly → "Taxes - Q3 2025"
//
// One-time and unrecognized frequencies return the rule name unchanged.
func InstanceName(dueDate time.Time, ruleName string, frequency entity.BillFrequency) string {
	switch frequency {
	case entity.FrequencyMonthly:
		return fmt.Sprintf("%s - %s", ruleName, dueDate.Format("Jan 2006"))
	case entity.FrequencyYearly:
		return fmt.Sprintf("%s - %s", ruleName, dueDate.Format("2006"))
	case entity.FrequencyWeekly:
		return fmt.Sprintf("%s - %s", ruleName, dueDate.Format("Monday, 02 Jan"))
	case entity.FrequencyQuarterly:
		quarter := (int(dueDate.Month())-1)/3 + 1
		return fmt.Sprintf("%s - Q%d %d", ruleName, quarter, dueDate.Year())
	default:
		return ruleName
	}
}

// ValidFrequency reports whether f is one of the supported frequencies.
func ValidFrequency(f entity.BillFrequency) bool {
	switch f {
	case entity.FrequencyWeekly, entity.FrequencyMonthly, entity.FrequencyQuarterly,
		entity.FrequencyYearly, entity.FrequencyOneTime:
		return true
	}
	return false
}

package gtd

import "time"

// --- Day-delta math ---
//
// Both functions work at date granularity: the time of day on either side
// is dropped before subtracting, so a task created late last night is one
// day old all of today.

// DaysUntilDue returns the whole-day delta between the task's due date and
// today. ok is false when the task has no due date or the date string does
// not parse. Negative values mean overdue.
func DaysUntilDue(t Task, today time.Time) (days int, ok bool) {
	if t.Due == nil || t.Due.Date == "" {
		return 0, false
	}
	s := t.Due.Date
	if len(s) > 10 {
		s = s[:10]
	}
	due, err := time.Parse("2006-01-02", s)
	if err != nil {
		return 0, false
	}
	return daysBetween(dateOnly(today), due), true
}

// TaskAgeDays returns how many days ago the task was created. ok is false
// when the creation timestamp is missing or malformed.
func TaskAgeDays(t Task, today time.Time) (days int, ok bool) {
	if t.CreatedAt == "" {
		return 0, false
	}
	created, err := time.Parse(time.RFC3339, t.CreatedAt)
	if err != nil {
		return 0, false
	}
	return daysBetween(dateOnly(created), dateOnly(today)), true
}

// dateOnly drops the time of day, anchoring the date at UTC midnight so
// that subtractions come out as exact multiples of 24h.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// daysBetween returns to minus from in whole days. Both arguments must be
// midnight-anchored.
func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}

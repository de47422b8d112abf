package gcal

import (
	"fmt"
	"time"
)

// Window bounds a calendar query as a half-open interval [From, To).
type Window struct {
	From time.Time
	To   time.Time
}

// WindowFor resolves a named time range relative to now. "today" runs
// midnight to end of day, "evening" from 5pm, "tomorrow" covers the next
// calendar day, "week" the next seven days.
func WindowFor(name string, now time.Time) (Window, error) {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	endOfDay := midnight.Add(24*time.Hour - time.Second)

	switch name {
	case "today":
		return Window{From: midnight, To: endOfDay}, nil
	case "evening":
		return Window{From: midnight.Add(17 * time.Hour), To: endOfDay}, nil
	case "tomorrow":
		return Window{From: midnight.AddDate(0, 0, 1), To: endOfDay.AddDate(0, 0, 1)}, nil
	case "week":
		return Window{From: midnight, To: midnight.AddDate(0, 0, 7)}, nil
	default:
		return Window{}, fmt.Errorf("invalid time_range: %s. Use: today, evening, tomorrow, week", name)
	}
}

// RangeWindow covers daysBack days before today through daysForward days
// after, both anchored at midnight.
func RangeWindow(daysBack, daysForward int, now time.Time) Window {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return Window{
		From: midnight.AddDate(0, 0, -daysBack),
		To:   midnight.AddDate(0, 0, daysForward),
	}
}

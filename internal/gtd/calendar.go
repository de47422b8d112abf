package gtd

import "time"

// --- Calendar events ---

// TimedEvent is an event with a specific start time.
type TimedEvent struct {
	Summary  string `json:"summary"`
	Date     string `json:"date,omitempty"`
	Start    string `json:"start"`
	End      string `json:"end,omitempty"`
	Location string `json:"location,omitempty"`
}

// AllDayEvent is a date-only event.
type AllDayEvent struct {
	Summary string `json:"summary"`
	Date    string `json:"date,omitempty"`
}

// EventSummary counts the event buckets.
type EventSummary struct {
	TimedEvents int `json:"timed_events"`
	AllDay      int `json:"all_day"`
}

// EventsReport is a set of calendar events split by kind.
type EventsReport struct {
	GeneratedAt string        `json:"generated_at,omitempty"`
	Range       *EventRange   `json:"range,omitempty"`
	Events      []TimedEvent  `json:"events"`
	AllDay      []AllDayEvent `json:"all_day"`
	Summary     EventSummary  `json:"summary"`
}

// EventRange records the window a report covers.
type EventRange struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// SplitEvents partitions calendar events into timed and all-day buckets.
// Untitled events get a placeholder title, timed starts are reduced to
// HH:MM, and timestamps that fail to parse are passed through raw.
func SplitEvents(events []Event) EventsReport {
	report := EventsReport{
		Events: []TimedEvent{},
		AllDay: []AllDayEvent{},
	}

	for _, e := range events {
		summary := e.Summary
		if summary == "" {
			summary = "(No title)"
		}
		if e.AllDay {
			report.AllDay = append(report.AllDay, AllDayEvent{
				Summary: summary,
				Date:    e.Start,
			})
			continue
		}
		report.Events = append(report.Events, TimedEvent{
			Summary:  summary,
			Date:     clockDate(e.Start),
			Start:    clockTime(e.Start),
			End:      clockTime(e.End),
			Location: e.Location,
		})
	}

	report.Summary = EventSummary{
		TimedEvents: len(report.Events),
		AllDay:      len(report.AllDay),
	}
	return report
}

func clockTime(ts string) string {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return ts
	}
	return t.Format("15:04")
}

func clockDate(ts string) string {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return ""
	}
	return t.Format("2006-01-02")
}

package tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/HendryAvila/rubberduck/internal/gcal"
	"github.com/HendryAvila/rubberduck/internal/gtd"
	"github.com/mark3labs/mcp-go/mcp"
)

// CalendarReviewTool walks the past week's events looking for follow-up
// tasks to capture and the upcoming week for preparation needs.
type CalendarReviewTool struct {
	events EventSource
}

// NewCalendarReviewTool creates the calendar review tool.
func NewCalendarReviewTool(events EventSource) *CalendarReviewTool {
	return &CalendarReviewTool{events: events}
}

// Definition returns the MCP tool definition.
func (t *CalendarReviewTool) Definition() mcp.Tool {
	return mcp.NewTool("run_calendar_review",
		mcp.WithDescription("Review the past week's calendar events for follow-up tasks worth capturing and the upcoming week's events for preparation needs. First step of the weekly review."),
	)
}

// Handle executes the calendar review.
func (t *CalendarReviewTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if t.events == nil {
		return mcp.NewToolResultText("## Calendar Review\n\n" +
			"*Google Calendar is not configured.*\n\n" +
			"Review your calendar manually:\n" +
			"- Past week: did any event generate follow-up tasks?\n" +
			"- Upcoming week: does anything need preparation?"), nil
	}

	now := timeNow()
	past := gcal.RangeWindow(7, 0, now)
	upcoming := gcal.RangeWindow(0, 7, now)

	pastEvents, err := t.events.EventsBetween(ctx, past.From, past.To, gcal.DefaultMaxResults)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Error running calendar review: %v", err)), nil
	}
	upcomingEvents, err := t.events.EventsBetween(ctx, upcoming.From, upcoming.To, gcal.DefaultMaxResults)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Error running calendar review: %v", err)), nil
	}

	return mcp.NewToolResultText(renderCalendarReview(pastEvents, upcomingEvents)), nil
}

func renderCalendarReview(past, upcoming []gtd.Event) string {
	var b strings.Builder
	b.WriteString("## Calendar Review\n\n")

	b.WriteString("### Past Week\n")
	b.WriteString("*Did any of these generate follow-up tasks? Capture them now.*\n\n")
	if len(past) == 0 {
		b.WriteString("*No events in the past week.*\n")
	}
	for _, e := range past {
		b.WriteString(reviewEventLine(e))
	}
	b.WriteString("\n")

	b.WriteString("### Upcoming Week\n")
	b.WriteString("*Does anything here need preparation tasks?*\n\n")
	if len(upcoming) == 0 {
		b.WriteString("*No events in the coming week.*\n")
	}
	for _, e := range upcoming {
		b.WriteString(reviewEventLine(e))
	}
	b.WriteString("\n")

	b.WriteString("---\n")
	fmt.Fprintf(&b, "**Summary:** %d past events, %d upcoming events", len(past), len(upcoming))
	return b.String()
}

// reviewEventLine renders one event with its day, start time for timed
// events, and location when present.
func reviewEventLine(e gtd.Event) string {
	summary := e.Summary
	if summary == "" {
		summary = "(No title)"
	}
	line := fmt.Sprintf("- %s: **%s**", eventDay(e.Start), summary)
	if !e.AllDay {
		line += fmt.Sprintf(" (%s)", clock12(e.Start))
	}
	if e.Location != "" {
		line += " @ " + e.Location
	}
	return line + "\n"
}

// eventDay renders the day of an event start, accepting both RFC 3339
// timestamps and bare dates. Unparseable input passes through raw.
func eventDay(start string) string {
	if t, err := time.Parse(time.RFC3339, start); err == nil {
		return t.Format("Mon, Jan 02")
	}
	if t, err := time.Parse("2006-01-02", start); err == nil {
		return t.Format("Mon, Jan 02")
	}
	return start
}

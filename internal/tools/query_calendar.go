package tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/HendryAvila/rubberduck/internal/gcal"
	"github.com/mark3labs/mcp-go/mcp"
)

// QueryCalendarTool lists calendar events for a named time range.
type QueryCalendarTool struct {
	events EventSource
}

// NewQueryCalendarTool creates the calendar query tool.
func NewQueryCalendarTool(events EventSource) *QueryCalendarTool {
	return &QueryCalendarTool{events: events}
}

// Definition returns the MCP tool definition.
func (t *QueryCalendarTool) Definition() mcp.Tool {
	return mcp.NewTool("query_calendar",
		mcp.WithDescription("Query Google Calendar events. Ranges: 'today', 'evening' (5pm to midnight), 'tomorrow', or 'week' (next seven days, grouped by day). Use before scheduling anything or when asked about the calendar."),
		mcp.WithString("time_range",
			mcp.Description("Which window to query."),
			mcp.Enum("today", "evening", "tomorrow", "week"),
			mcp.DefaultString("today"),
		),
	)
}

// Handle executes the calendar query.
func (t *QueryCalendarTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if t.events == nil {
		return mcp.NewToolResultText("Google Calendar is not configured. Set GOOGLE_SERVICE_ACCOUNT_JSON."), nil
	}

	timeRange := req.GetString("time_range", "today")
	window, err := gcal.WindowFor(timeRange, timeNow())
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	events, err := t.events.EventsBetween(ctx, window.From, window.To, gcal.DefaultMaxResults)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Error querying calendar: %v", err)), nil
	}
	if len(events) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No events found for %s.", timeRange)), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "## Calendar: %s\n\n", rangeTitle(timeRange))

	// The week view groups events under a header per day; events arrive
	// ordered by start time, so a header change marks a new day.
	currentDay := ""
	for _, e := range events {
		if timeRange == "week" {
			if day := weekDayHeader(e.Start); day != "" && day != currentDay {
				currentDay = day
				fmt.Fprintf(&b, "### %s\n", day)
			}
		}
		b.WriteString(eventLine(e))
	}
	return mcp.NewToolResultText(strings.TrimRight(b.String(), "\n")), nil
}

// weekDayHeader renders the day header for the week view, empty when the
// start timestamp cannot be parsed.
func weekDayHeader(start string) string {
	if t, err := time.Parse(time.RFC3339, start); err == nil {
		return t.Format("Monday, Jan 02")
	}
	if t, err := time.Parse("2006-01-02", start); err == nil {
		return t.Format("Monday, Jan 02")
	}
	return ""
}

func rangeTitle(name string) string {
	if name == "" {
		return name
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

package tools

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/HendryAvila/rubberduck/internal/gcal"
	"github.com/HendryAvila/rubberduck/internal/gtd"
	"github.com/mark3labs/mcp-go/mcp"
)

// MorningPlanningTool builds a prioritized plan for today: calendar
// commitments first, then overdue alerts, a top-3 pick, and what else the
// day holds.
type MorningPlanningTool struct {
	tasks  TaskSource
	events EventSource
}

// NewMorningPlanningTool creates the morning planning tool.
func NewMorningPlanningTool(tasks TaskSource, events EventSource) *MorningPlanningTool {
	return &MorningPlanningTool{tasks: tasks, events: events}
}

// Definition returns the MCP tool definition.
func (t *MorningPlanningTool) Definition() mcp.Tool {
	return mcp.NewTool("run_morning_planning",
		mcp.WithDescription("Plan today: calendar commitments, overdue alerts, today's top 3 priorities (overdue first, then due today, then due this week), time-scheduled tasks, and a look at the rest of the week."),
	)
}

// Handle executes the morning planning workflow.
func (t *MorningPlanningTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if t.tasks == nil {
		return mcp.NewToolResultText("Todoist is not configured. Cannot run morning planning."), nil
	}

	tasks, err := t.tasks.OpenTasks(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Error running morning planning: %v", err)), nil
	}

	now := timeNow()
	buckets := bucketByUrgency(tasks, now)

	var b strings.Builder
	fmt.Fprintf(&b, "## Morning Planning - %s\n", now.Format("Monday, January 02"))
	fmt.Fprintf(&b, "*Generated at %s*\n\n", now.Format("3:04 PM"))

	t.writeCalendarSection(ctx, &b, now)

	if len(buckets.overdue) > 0 {
		b.WriteString("### OVERDUE (Address First)\n")
		for i, at := range buckets.overdue {
			if i >= 5 {
				break
			}
			fmt.Fprintf(&b, "- [ID:%s] %s (%d days overdue)\n", at.task.ID, at.task.Content, at.days)
		}
		b.WriteString("\n")
	}

	b.WriteString("### TODAY'S TOP 3 PRIORITIES\n")
	top := topPriorities(buckets, 3)
	if len(top) > 0 {
		for i, task := range top {
			fmt.Fprintf(&b, "%d. [ID:%s] %s%s\n", i+1, task.ID, task.Content, dueInfo(task))
		}
	} else {
		b.WriteString("*No urgent tasks - consider strategic work or clearing backlog*\n")
	}
	b.WriteString("\n")

	if len(buckets.scheduledToday) > 0 {
		b.WriteString("### Scheduled for Today\n")
		for _, task := range buckets.scheduledToday {
			fmt.Fprintf(&b, "- %s: [ID:%s] %s\n", clock12(task.Due.Datetime), task.ID, task.Content)
		}
		b.WriteString("\n")
	}

	picked := taskIDSet(top)
	scheduled := taskIDSet(buckets.scheduledToday)
	var remaining []gtd.Task
	for _, task := range buckets.dueToday {
		if picked[task.ID] || scheduled[task.ID] {
			continue
		}
		remaining = append(remaining, task)
	}
	if len(remaining) > 0 {
		b.WriteString("### Also Due Today\n")
		for i, task := range remaining {
			if i >= 5 {
				break
			}
			fmt.Fprintf(&b, "- [ID:%s] %s\n", task.ID, task.Content)
		}
		b.WriteString("\n")
	}

	var upcoming []agedTask
	for _, at := range buckets.dueThisWeek {
		if picked[at.task.ID] {
			continue
		}
		upcoming = append(upcoming, at)
	}
	if len(upcoming) > 0 {
		b.WriteString("### Coming This Week\n")
		for i, at := range upcoming {
			if i >= 5 {
				break
			}
			fmt.Fprintf(&b, "- %s: [ID:%s] %s\n", dayName(now, at.days), at.task.ID, at.task.Content)
		}
		b.WriteString("\n")
	}

	b.WriteString("---\n")
	fmt.Fprintf(&b, "*%d overdue | %d due today | %d due this week | %d unscheduled*",
		len(buckets.overdue), len(buckets.dueToday), len(buckets.dueThisWeek), buckets.noDate)

	return mcp.NewToolResultText(b.String()), nil
}

// writeCalendarSection appends today's events. The section is omitted
// entirely when the calendar is not configured or the fetch fails; the
// plan is task-centric and should not break on calendar trouble.
func (t *MorningPlanningTool) writeCalendarSection(ctx context.Context, b *strings.Builder, now time.Time) {
	if t.events == nil {
		return
	}
	window, err := gcal.WindowFor("today", now)
	if err != nil {
		return
	}
	events, err := t.events.EventsBetween(ctx, window.From, window.To, 20)
	if err != nil {
		return
	}

	if len(events) == 0 {
		b.WriteString("### Calendar\n")
		b.WriteString("*No events scheduled for today*\n\n")
		return
	}

	b.WriteString("### Calendar (Fixed Commitments)\n")
	for _, e := range events {
		b.WriteString(eventLine(e))
	}
	b.WriteString("\n")
}

// eventLine renders one calendar event with its start time or all-day
// marker and the location when present.
func eventLine(e gtd.Event) string {
	display := "All day"
	if !e.AllDay {
		display = clock12(e.Start)
	}
	summary := e.Summary
	if summary == "" {
		summary = "(No title)"
	}
	if e.Location != "" {
		return fmt.Sprintf("- **%s**: %s @ %s\n", display, summary, e.Location)
	}
	return fmt.Sprintf("- **%s**: %s\n", display, summary)
}

// agedTask pairs a task with a day distance, overdue days or days until
// due depending on the bucket.
type agedTask struct {
	task gtd.Task
	days int
}

type urgencyBuckets struct {
	overdue        []agedTask
	dueToday       []gtd.Task
	dueThisWeek    []agedTask
	scheduledToday []gtd.Task
	noDate         int
}

// bucketByUrgency partitions tasks for the daily plans. Tasks due today
// with a clock time additionally land in scheduledToday.
func bucketByUrgency(tasks []gtd.Task, today time.Time) urgencyBuckets {
	var buckets urgencyBuckets
	for _, task := range tasks {
		days, ok := gtd.DaysUntilDue(task, today)
		if !ok {
			buckets.noDate++
			continue
		}
		switch {
		case days < 0:
			buckets.overdue = append(buckets.overdue, agedTask{task: task, days: -days})
		case days == 0:
			buckets.dueToday = append(buckets.dueToday, task)
		case days <= 7:
			buckets.dueThisWeek = append(buckets.dueThisWeek, agedTask{task: task, days: days})
		}
		if days == 0 && task.Due.Datetime != "" {
			buckets.scheduledToday = append(buckets.scheduledToday, task)
		}
	}

	sort.SliceStable(buckets.overdue, func(i, j int) bool {
		return buckets.overdue[i].days > buckets.overdue[j].days
	})
	sort.SliceStable(buckets.dueThisWeek, func(i, j int) bool {
		return buckets.dueThisWeek[i].days < buckets.dueThisWeek[j].days
	})
	return buckets
}

// topPriorities picks up to limit tasks in urgency order: overdue, then
// due today, then due this week. No task appears twice.
func topPriorities(buckets urgencyBuckets, limit int) []gtd.Task {
	var top []gtd.Task
	seen := map[string]bool{}

	add := func(task gtd.Task) {
		if len(top) >= limit || seen[task.ID] {
			return
		}
		seen[task.ID] = true
		top = append(top, task)
	}

	for _, at := range buckets.overdue {
		add(at.task)
	}
	for _, task := range buckets.dueToday {
		add(task)
	}
	for _, at := range buckets.dueThisWeek {
		add(at.task)
	}
	return top
}

func taskIDSet(tasks []gtd.Task) map[string]bool {
	set := make(map[string]bool, len(tasks))
	for _, t := range tasks {
		set[t.ID] = true
	}
	return set
}

package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/HendryAvila/rubberduck/internal/gtd"
	"github.com/mark3labs/mcp-go/mcp"
)

// WaitingReviewTool reviews delegated tasks and suggests follow-up wording
// scaled to how long each item has been waiting.
type WaitingReviewTool struct {
	tasks TaskSource
}

// NewWaitingReviewTool creates the waiting-for review tool.
func NewWaitingReviewTool(tasks TaskSource) *WaitingReviewTool {
	return &WaitingReviewTool{tasks: tasks}
}

// Definition returns the MCP tool definition.
func (t *WaitingReviewTool) Definition() mcp.Tool {
	return mcp.NewTool("run_waiting_for_review",
		mcp.WithDescription("Review tasks delegated to others (carrying a waiting/waiting-for label). Buckets them by age and suggests follow-up wording, from a gentle check-in to escalation."),
	)
}

// Handle executes the waiting-for review.
func (t *WaitingReviewTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if t.tasks == nil {
		return mcp.NewToolResultText("Todoist is not configured. Cannot run waiting-for review."), nil
	}

	tasks, err := t.tasks.OpenTasks(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Error running waiting-for review: %v", err)), nil
	}
	projects, err := t.tasks.Projects(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Error running waiting-for review: %v", err)), nil
	}

	report := gtd.CheckWaiting(tasks, projects, timeNow())
	return mcp.NewToolResultText(renderWaitingReview(report)), nil
}

func renderWaitingReview(report gtd.WaitingReport) string {
	var b strings.Builder
	b.WriteString("## Waiting-For Review\n\n")

	if report.Summary.Total == 0 {
		b.WriteString("*No waiting-for items found.*")
		return b.String()
	}

	if len(report.NeedsFollowup) > 0 {
		b.WriteString("### NEEDS FOLLOW-UP\n\n")
		for _, item := range report.NeedsFollowup {
			icon := "⚠️"
			if item.Urgency == gtd.UrgencyEscalate {
				icon = "🔴"
			}
			fmt.Fprintf(&b, "- %s [ID:%s] **%s** (%dd) - %s\n", icon, item.ID, item.Content, item.DaysWaiting, item.Project)
			fmt.Fprintf(&b, "      Suggested: %q\n\n", item.SuggestedAction)
		}
	}

	if len(report.GentleCheck) > 0 {
		b.WriteString("### GENTLE CHECK-IN\n\n")
		for _, item := range report.GentleCheck {
			fmt.Fprintf(&b, "- [ID:%s] **%s** (%dd) - %s\n", item.ID, item.Content, item.DaysWaiting, item.Project)
			fmt.Fprintf(&b, "      Suggested: %q\n\n", item.SuggestedAction)
		}
	}

	if len(report.StillFresh) > 0 {
		b.WriteString("### STILL WITHIN TIMELINE\n\n")
		for _, item := range report.StillFresh {
			age := "new"
			if item.DaysWaiting > 0 {
				age = fmt.Sprintf("%dd", item.DaysWaiting)
			}
			fmt.Fprintf(&b, "- [ID:%s] %s (%s) - %s\n", item.ID, item.Content, age, item.Project)
		}
		b.WriteString("\n")
	}

	b.WriteString("---\n")
	fmt.Fprintf(&b, "**Summary:** %d waiting-for items (%d need follow-up)",
		report.Summary.Total, report.Summary.NeedsFollowup)
	return b.String()
}

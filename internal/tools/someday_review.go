package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/HendryAvila/rubberduck/internal/gtd"
	"github.com/mark3labs/mcp-go/mcp"
)

// SomedayReviewTool assesses backburner items by age so the long tail gets
// pruned instead of growing forever.
type SomedayReviewTool struct {
	tasks TaskSource
}

// NewSomedayReviewTool creates the someday-maybe review tool.
func NewSomedayReviewTool(tasks TaskSource) *SomedayReviewTool {
	return &SomedayReviewTool{tasks: tasks}
}

// Definition returns the MCP tool definition.
func (t *SomedayReviewTool) Definition() mcp.Tool {
	return mcp.NewTool("run_someday_maybe_review",
		mcp.WithDescription("Review backburner (someday-maybe) items by age: over a year suggests deleting, over six months needs an activate-or-delete decision, younger items stay parked until the next review."),
	)
}

// Handle executes the someday-maybe review.
func (t *SomedayReviewTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if t.tasks == nil {
		return mcp.NewToolResultText("Todoist is not configured. Cannot run someday-maybe review."), nil
	}

	tasks, err := t.tasks.OpenTasks(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Error running someday-maybe review: %v", err)), nil
	}
	projects, err := t.tasks.Projects(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Error running someday-maybe review: %v", err)), nil
	}

	report := gtd.CheckSomeday(tasks, projects, timeNow())
	return mcp.NewToolResultText(renderSomedayReview(report)), nil
}

func renderSomedayReview(report gtd.SomedayReport) string {
	var b strings.Builder
	b.WriteString("## Someday-Maybe Review\n\n")

	if report.Summary.Total == 0 {
		b.WriteString("*No someday-maybe items found.*")
		return b.String()
	}

	if len(report.ConsiderDeleting) > 0 {
		b.WriteString("### 🗑️ CONSIDER DELETING\n")
		b.WriteString("*Over 1 year in backburner - still relevant?*\n\n")
		for i, item := range report.ConsiderDeleting {
			if i >= 5 {
				break
			}
			fmt.Fprintf(&b, "- [ ] **%s** (%dd)\n", item.Content, item.DaysOld)
			fmt.Fprintf(&b, "      Project: %s\n", item.Project)
		}
		b.WriteString("\n")
	}

	if len(report.NeedsDecision) > 0 {
		b.WriteString("### 🤔 NEEDS DECISION\n")
		b.WriteString("*6+ months old - activate or delete?*\n\n")
		for i, item := range report.NeedsDecision {
			if i >= 5 {
				break
			}
			fmt.Fprintf(&b, "- [ ] **%s** (%dd)\n", item.Content, item.DaysOld)
			fmt.Fprintf(&b, "      Project: %s\n", item.Project)
		}
		b.WriteString("\n")
	}

	if len(report.Keep) > 0 {
		b.WriteString("### ✓ KEEP ON BACKBURNER\n")
		b.WriteString("*Still interesting, check next review*\n\n")
		for i, item := range report.Keep {
			if i >= 10 {
				break
			}
			age := "new"
			if item.DaysOld > 0 {
				age = fmt.Sprintf("%dd", item.DaysOld)
			}
			fmt.Fprintf(&b, "- %s (%s) - %s\n", item.Content, age, item.Project)
		}
		if len(report.Keep) > 10 {
			fmt.Fprintf(&b, "- *...and %d more*\n", len(report.Keep)-10)
		}
		b.WriteString("\n")
	}

	b.WriteString("---\n")
	fmt.Fprintf(&b, "**Summary:** %d someday-maybe items (%d to delete, %d to review)",
		report.Summary.Total, report.Summary.ConsiderDeleting, report.Summary.NeedsDecision)
	return b.String()
}

package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/HendryAvila/rubberduck/internal/gtd"
	"github.com/mark3labs/mcp-go/mcp"
)

// ProjectReviewTool classifies every project by health and annotates the
// listing with stored goals and deadlines.
type ProjectReviewTool struct {
	tasks TaskSource
	meta  MetadataSource
}

// NewProjectReviewTool creates the project review tool.
func NewProjectReviewTool(tasks TaskSource, meta MetadataSource) *ProjectReviewTool {
	return &ProjectReviewTool{tasks: tasks, meta: meta}
}

// Definition returns the MCP tool definition.
func (t *ProjectReviewTool) Definition() mcp.Tool {
	return mcp.NewTool("run_project_review",
		mcp.WithDescription("Review every project's health: active (progress this week), stalled (next actions but no progress), waiting (everything delegated), or incomplete (no next action defined). Someday-maybe projects are counted separately and category projects are exempt."),
	)
}

// Handle executes the project review.
func (t *ProjectReviewTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if t.tasks == nil {
		return mcp.NewToolResultText("Todoist is not configured. Cannot run project review."), nil
	}

	tasks, err := t.tasks.OpenTasks(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Error running project review: %v", err)), nil
	}
	projects, err := t.tasks.Projects(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Error running project review: %v", err)), nil
	}
	completions, err := t.tasks.CompletedSince(ctx, timeNow().AddDate(0, 0, -7))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Error running project review: %v", err)), nil
	}

	var categories map[string]bool
	if t.meta != nil {
		categories = t.meta.Categories()
	}

	report := gtd.CheckProjects(tasks, projects, completions, categories)
	return mcp.NewToolResultText(t.renderProjectReview(report)), nil
}

// annotate returns the due suffix for the project name and the indented
// goal line, both empty when no metadata is stored for the project.
func (t *ProjectReviewTool) annotate(name string) (due, goal string) {
	if t.meta == nil {
		return "", ""
	}
	entry, ok := t.meta.Get(name)
	if !ok {
		return "", ""
	}
	if entry.Due != "" {
		due = fmt.Sprintf(" (due %s)", entry.Due)
	}
	if entry.Goal != "" {
		goal = fmt.Sprintf("\n  Goal: %s", entry.Goal)
	}
	return due, goal
}

func (t *ProjectReviewTool) renderProjectReview(report gtd.ProjectReport) string {
	var b strings.Builder
	b.WriteString("## Project Review\n\n")

	if len(report.Active) > 0 {
		b.WriteString("### ✓ ACTIVE (making progress)\n\n")
		for i, p := range report.Active {
			if i >= 6 {
				break
			}
			due, goal := t.annotate(p.Name)
			fmt.Fprintf(&b, "- **%s**%s: %d done this week, %d open%s\n", p.Name, due, p.CompletedThisWeek, p.OpenTasks, goal)
		}
		b.WriteString("\n")
	}

	if len(report.Stalled) > 0 {
		b.WriteString("### ⚠️ STALLED (has next actions, no progress)\n")
		b.WriteString("*Decision needed: better next action? defer? abandon?*\n\n")
		for i, p := range report.Stalled {
			if i >= 5 {
				break
			}
			due, goal := t.annotate(p.Name)
			next := ""
			if p.NextAction != nil {
				next = fmt.Sprintf(" -> [ID:%s] %s", p.NextAction.ID, truncate(p.NextAction.Content, 50))
			}
			fmt.Fprintf(&b, "- **%s**%s: %d tasks%s%s\n", p.Name, due, p.OpenTasks, next, goal)
		}
		b.WriteString("\n")
	}

	if len(report.Waiting) > 0 {
		b.WriteString("### ⏳ WAITING (all tasks waiting-for)\n\n")
		for i, p := range report.Waiting {
			if i >= 5 {
				break
			}
			due, goal := t.annotate(p.Name)
			fmt.Fprintf(&b, "- **%s**%s: %d waiting-for items%s\n", p.Name, due, p.WaitingTasks, goal)
		}
		b.WriteString("\n")
	}

	if len(report.Incomplete) > 0 {
		b.WriteString("### 🔴 INCOMPLETE (needs next action)\n")
		b.WriteString("*GTD requires every project have a next action*\n\n")
		for i, p := range report.Incomplete {
			if i >= 5 {
				break
			}
			due, goal := t.annotate(p.Name)
			fmt.Fprintf(&b, "- **%s**%s: %d tasks, needs next action defined%s\n", p.Name, due, p.OpenTasks, goal)
		}
		b.WriteString("\n")
	}

	b.WriteString("---\n")
	fmt.Fprintf(&b, "**Summary:** %d active, %d stalled, %d waiting, %d incomplete",
		report.Summary.Active, report.Summary.Stalled, report.Summary.Waiting, report.Summary.Incomplete)
	if report.Summary.SomedayMaybe > 0 {
		fmt.Fprintf(&b, "\n*(Plus %d someday-maybe projects)*", report.Summary.SomedayMaybe)
	}
	return b.String()
}

package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/HendryAvila/rubberduck/internal/gtd"
	"github.com/HendryAvila/rubberduck/internal/todoist"
	"github.com/mark3labs/mcp-go/mcp"
)

// ListProjectsTool renders the project hierarchy with per-project task
// counts so IDs are at hand for filing and updating.
type ListProjectsTool struct {
	tasks TaskSource
}

// NewListProjectsTool creates the project listing tool.
func NewListProjectsTool(tasks TaskSource) *ListProjectsTool {
	return &ListProjectsTool{tasks: tasks}
}

// Definition returns the MCP tool definition.
func (t *ListProjectsTool) Definition() mcp.Tool {
	return mcp.NewTool("list_projects",
		mcp.WithDescription("List all projects as an indented hierarchy with open task counts and project IDs. Useful before filing a task or reviewing how work is organized."),
	)
}

// Handle executes the project listing.
func (t *ListProjectsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if t.tasks == nil {
		return mcp.NewToolResultText("Todoist is not configured."), nil
	}

	projects, err := t.tasks.Projects(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Error listing projects: %v", err)), nil
	}
	tasks, err := t.tasks.OpenTasks(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Error listing projects: %v", err)), nil
	}

	counts := map[string]int{}
	for _, task := range tasks {
		counts[task.ProjectID]++
	}

	children := map[string][]gtd.Project{}
	var roots []gtd.Project
	for _, p := range projects {
		if p.ParentID == "" {
			roots = append(roots, p)
			continue
		}
		children[p.ParentID] = append(children[p.ParentID], p)
	}

	var b strings.Builder
	b.WriteString("Projects (indented = sub-project):")
	var write func(p gtd.Project, depth int, parent string)
	write = func(p gtd.Project, depth int, parent string) {
		info := ""
		if parent != "" {
			info = fmt.Sprintf(" (sub-project of %s)", parent)
		}
		fmt.Fprintf(&b, "\n%s- [ID:%s] %s%s (%d tasks)",
			strings.Repeat("  ", depth), p.ID, p.Name, info, counts[p.ID])
		for _, child := range children[p.ID] {
			write(child, depth+1, p.Name)
		}
	}
	for _, root := range roots {
		write(root, 0, "")
	}
	return mcp.NewToolResultText(b.String()), nil
}

// ─── UpdateProjectTool ───────────────────────────────────────────────────────

// UpdateProjectTool renames a project or toggles its favorite flag.
type UpdateProjectTool struct {
	writer TaskWriter
}

// NewUpdateProjectTool creates the project update tool.
func NewUpdateProjectTool(writer TaskWriter) *UpdateProjectTool {
	return &UpdateProjectTool{writer: writer}
}

// Definition returns the MCP tool definition.
func (t *UpdateProjectTool) Definition() mcp.Tool {
	return mcp.NewTool("update_project",
		mcp.WithDescription("Rename a project or change its favorite status. Requires the project ID from list_projects."),
		mcp.WithString("project_id",
			mcp.Required(),
			mcp.Description("The project ID to update."),
		),
		mcp.WithString("name",
			mcp.Description("New name for the project."),
		),
		mcp.WithBoolean("is_favorite",
			mcp.Description("Whether the project should be a favorite."),
		),
	)
}

// Handle executes the project update.
func (t *UpdateProjectTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if t.writer == nil {
		return mcp.NewToolResultText("Todoist is not configured."), nil
	}

	id := req.GetString("project_id", "")
	if id == "" {
		return mcp.NewToolResultError("'project_id' is required"), nil
	}

	args := todoist.UpdateProjectArgs{Name: req.GetString("name", "")}
	// Favorite is tri-state: absent means leave it alone.
	if fav, ok := req.GetArguments()["is_favorite"].(bool); ok {
		args.IsFavorite = &fav
	}
	if args.Name == "" && args.IsFavorite == nil {
		return mcp.NewToolResultText("Please provide a new name or favorite status to update."), nil
	}

	project, err := t.writer.UpdateProject(ctx, id, args)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Error updating project: %v", err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Updated project: %s\nID: %s\nFavorite: %t",
		project.Name, project.ID, project.IsFavorite)), nil
}

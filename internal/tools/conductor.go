package tools

import (
	"context"

	"github.com/HendryAvila/rubberduck/internal/review"
	"github.com/mark3labs/mcp-go/mcp"
)

// ConductorTool drives the step-by-step weekly review session.
type ConductorTool struct {
	conductor *review.Conductor
}

// NewConductorTool creates the weekly review conductor tool.
func NewConductorTool(conductor *review.Conductor) *ConductorTool {
	return &ConductorTool{conductor: conductor}
}

// Definition returns the MCP tool definition.
func (t *ConductorTool) Definition() mcp.Tool {
	return mcp.NewTool("weekly_review_conductor",
		mcp.WithDescription("Drive the weekly review one step at a time. Start a session, check where it stands, advance after finishing a step, or abandon it. Each response names the single sub-review tool to call next."),
		mcp.WithString("action",
			mcp.Required(),
			mcp.Description("'start' begins a session (or resumes one in progress), 'status' reports the current step, 'next' marks the current step done and advances, 'complete' ends the session early, 'abandon' discards it."),
			mcp.Enum("start", "status", "next", "complete", "abandon"),
		),
	)
}

// Handle executes the conductor tool.
func (t *ConductorTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	action := req.GetString("action", "")
	if action == "" {
		return mcp.NewToolResultError("'action' is required"), nil
	}
	return mcp.NewToolResultText(t.conductor.Do(action)), nil
}

package tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/HendryAvila/rubberduck/internal/preempt"
	"github.com/mark3labs/mcp-go/mcp"
)

// BotStatusTool answers "are you busy?" with the coordinator snapshot.
type BotStatusTool struct {
	coord *preempt.Coordinator
}

// NewBotStatusTool creates the status tool.
func NewBotStatusTool(coord *preempt.Coordinator) *BotStatusTool {
	return &BotStatusTool{coord: coord}
}

// Definition returns the MCP tool definition.
func (t *BotStatusTool) Definition() mcp.Tool {
	return mcp.NewTool("bot_status",
		mcp.WithDescription("Report the assistant's operational state: idle or working, the current task and how long it has run, and whether a preemption request is pending."),
	)
}

// Handle executes the status report.
func (t *BotStatusTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	state := t.coord.State()

	var b strings.Builder
	b.WriteString("## Bot Status\n\n")
	fmt.Fprintf(&b, "- Status: %s\n", state.Status)
	if state.Status == preempt.StatusWorking {
		fmt.Fprintf(&b, "- Current task: %s\n", state.CurrentTask)
		if !state.StartedAt.IsZero() {
			fmt.Fprintf(&b, "- Working for: %s\n", timeNow().Sub(state.StartedAt).Round(time.Second))
		}
	}
	if state.PreemptRequested {
		reason := state.PreemptReason
		if reason == "" {
			reason = "unspecified"
		}
		fmt.Fprintf(&b, "- Preemption requested: yes (%s)", reason)
	} else {
		b.WriteString("- Preemption requested: no")
	}
	return mcp.NewToolResultText(b.String()), nil
}

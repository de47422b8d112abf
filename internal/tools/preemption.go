package tools

import (
	"context"
	"fmt"
	"time"

	"github.com/HendryAvila/rubberduck/internal/preempt"
	"github.com/mark3labs/mcp-go/mcp"
)

// StartWorkTool marks the autonomous worker busy on a described task.
type StartWorkTool struct {
	coord *preempt.Coordinator
}

// NewStartWorkTool creates the start-work tool.
func NewStartWorkTool(coord *preempt.Coordinator) *StartWorkTool {
	return &StartWorkTool{coord: coord}
}

// Definition returns the MCP tool definition.
func (t *StartWorkTool) Definition() mcp.Tool {
	return mcp.NewTool("start_work",
		mcp.WithDescription("Mark the start of an autonomous work session. Call before beginning background work, and pair it with finish_work when done. Starting again while working replaces the current task; there is no queue."),
		mcp.WithString("description",
			mcp.Required(),
			mcp.Description("Short description of the work, e.g. 'archiving journal'."),
		),
	)
}

// Handle executes the start-work call.
func (t *StartWorkTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	description := req.GetString("description", "")
	if description == "" {
		return mcp.NewToolResultError("'description' is required"), nil
	}
	t.coord.StartWork(description)
	return mcp.NewToolResultText(fmt.Sprintf("Work started: %s", description)), nil
}

// ─── FinishWorkTool ──────────────────────────────────────────────────────────

// FinishWorkTool marks the autonomous worker idle.
type FinishWorkTool struct {
	coord *preempt.Coordinator
}

// NewFinishWorkTool creates the finish-work tool.
func NewFinishWorkTool(coord *preempt.Coordinator) *FinishWorkTool {
	return &FinishWorkTool{coord: coord}
}

// Definition returns the MCP tool definition.
func (t *FinishWorkTool) Definition() mcp.Tool {
	return mcp.NewTool("finish_work",
		mcp.WithDescription("Mark the end of an autonomous work session. Safe to call even when already idle. Does not clear a pending preemption request; that belongs to clear_preempt."),
	)
}

// Handle executes the finish-work call.
func (t *FinishWorkTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	t.coord.FinishWork()
	return mcp.NewToolResultText("Work finished. Worker is idle."), nil
}

// ─── RequestPreemptTool ──────────────────────────────────────────────────────

// RequestPreemptTool raises the yield flag for the worker, optionally
// waiting for it to go idle.
type RequestPreemptTool struct {
	coord *preempt.Coordinator
}

// NewRequestPreemptTool creates the preemption request tool.
func NewRequestPreemptTool(coord *preempt.Coordinator) *RequestPreemptTool {
	return &RequestPreemptTool{coord: coord}
}

// Definition returns the MCP tool definition.
func (t *RequestPreemptTool) Definition() mcp.Tool {
	return mcp.NewTool("request_preempt",
		mcp.WithDescription("Ask the autonomous worker to yield at its next checkpoint, because an interactive request wants the floor. Optionally wait (up to 60s) for the worker to actually go idle."),
		mcp.WithString("reason",
			mcp.Description("Why the worker should yield. Defaults to 'interactive request'."),
		),
		mcp.WithBoolean("wait",
			mcp.Description("Wait for the worker to go idle before returning."),
		),
	)
}

// Handle executes the preemption request.
func (t *RequestPreemptTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	reason := req.GetString("reason", "")
	if reason == "" {
		reason = "interactive request"
	}
	t.coord.RequestPreempt(reason)

	if wait, _ := req.GetArguments()["wait"].(bool); wait {
		if t.coord.AwaitIdle(ctx) {
			return mcp.NewToolResultText(fmt.Sprintf("Preemption requested: %s. Worker has yielded; the floor is yours.", reason)), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Preemption requested: %s. Worker is still busy after waiting; proceeding anyway.", reason)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Preemption requested: %s. The worker will yield at its next checkpoint.", reason)), nil
}

// ─── ClearPreemptTool ────────────────────────────────────────────────────────

// ClearPreemptTool withdraws a pending preemption request.
type ClearPreemptTool struct {
	coord *preempt.Coordinator
}

// NewClearPreemptTool creates the clear-preempt tool.
func NewClearPreemptTool(coord *preempt.Coordinator) *ClearPreemptTool {
	return &ClearPreemptTool{coord: coord}
}

// Definition returns the MCP tool definition.
func (t *ClearPreemptTool) Definition() mcp.Tool {
	return mcp.NewTool("clear_preempt",
		mcp.WithDescription("Withdraw a pending preemption request once the interactive exchange is over, so background work can resume."),
	)
}

// Handle executes the clear-preempt call.
func (t *ClearPreemptTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	t.coord.ClearPreempt()
	return mcp.NewToolResultText("Preemption flag cleared."), nil
}

// ─── ShouldYieldTool ─────────────────────────────────────────────────────────

// ShouldYieldTool is the worker's checkpoint poll.
type ShouldYieldTool struct {
	coord *preempt.Coordinator
}

// NewShouldYieldTool creates the yield-check tool.
func NewShouldYieldTool(coord *preempt.Coordinator) *ShouldYieldTool {
	return &ShouldYieldTool{coord: coord}
}

// Definition returns the MCP tool definition.
func (t *ShouldYieldTool) Definition() mcp.Tool {
	return mcp.NewTool("should_yield",
		mcp.WithDescription("Check whether a preemption request is pending. Background work must call this between units of work and stop early when the answer is yes."),
	)
}

// Handle executes the yield check.
func (t *ShouldYieldTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if !t.coord.ShouldYield() {
		return mcp.NewToolResultText("No - continue working."), nil
	}
	state := t.coord.State()
	if state.PreemptReason != "" {
		return mcp.NewToolResultText(fmt.Sprintf("Yes - yield at the next checkpoint. Reason: %s", state.PreemptReason)), nil
	}
	return mcp.NewToolResultText("Yes - yield at the next checkpoint."), nil
}

// ─── CheckStuckTool ──────────────────────────────────────────────────────────

// CheckStuckTool resets a worker that died without cleanup.
type CheckStuckTool struct {
	coord *preempt.Coordinator
}

// NewCheckStuckTool creates the stuck-worker check tool.
func NewCheckStuckTool(coord *preempt.Coordinator) *CheckStuckTool {
	return &CheckStuckTool{coord: coord}
}

// Definition returns the MCP tool definition.
func (t *CheckStuckTool) Definition() mcp.Tool {
	return mcp.NewTool("check_stuck",
		mcp.WithDescription("Reset the worker if it has been marked working for over ten minutes, which means it crashed without running its cleanup. Reports what it found either way."),
	)
}

// Handle executes the stuck check.
func (t *CheckStuckTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if t.coord.CheckStuck() {
		return mcp.NewToolResultText("Worker was stuck (working over 10 minutes) and has been reset to idle."), nil
	}
	state := t.coord.State()
	if state.Status == preempt.StatusWorking {
		elapsed := timeNow().Sub(state.StartedAt).Round(time.Second)
		return mcp.NewToolResultText(fmt.Sprintf("Worker is healthy: working on '%s' for %s.", state.CurrentTask, elapsed)), nil
	}
	return mcp.NewToolResultText("Worker is idle; nothing to reset."), nil
}

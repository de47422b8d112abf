package prompts

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// MorningPrompt handles the morning MCP prompt.
// It instructs the AI to build and present the day's plan.
type MorningPrompt struct{}

// NewMorningPrompt creates a MorningPrompt.
func NewMorningPrompt() *MorningPrompt {
	return &MorningPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *MorningPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("morning",
		mcp.WithPromptDescription(
			"Plan the day. Pulls calendar commitments, overdue items, and "+
				"today's tasks into a prioritized plan.",
		),
	)
}

// Handle processes the morning prompt request.
func (p *MorningPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	return &mcp.GetPromptResult{
		Description: "Morning planning",
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(
					"Good morning - plan my day.\n\n" +
						"Please run `run_morning_planning`, then:\n" +
						"1. Tell me the fixed commitments I can't move\n" +
						"2. Flag anything overdue and ask what I want to do about it\n" +
						"3. Confirm the top 3 priorities or adjust them with me\n" +
						"4. Keep it short - I'm starting my day, not reading a report",
				),
			},
		},
	}, nil
}

// EndOfDayPrompt handles the end-of-day MCP prompt.
// It instructs the AI to close out today and set up tomorrow.
type EndOfDayPrompt struct{}

// NewEndOfDayPrompt creates an EndOfDayPrompt.
func NewEndOfDayPrompt() *EndOfDayPrompt {
	return &EndOfDayPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *EndOfDayPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("end-of-day",
		mcp.WithPromptDescription(
			"Close out the day. Reviews what slipped, reschedules leftovers, "+
				"and sets tomorrow's priorities.",
		),
	)
}

// Handle processes the end-of-day prompt request.
func (p *EndOfDayPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	return &mcp.GetPromptResult{
		Description: "End-of-day review",
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(
					"Let's wrap up the day.\n\n" +
						"Please run `run_end_of_day_review`, then:\n" +
						"1. Walk me through what didn't get done and suggest realistic new dates\n" +
						"2. Use `update_task` to reschedule as we agree\n" +
						"3. Confirm tomorrow's top priorities\n" +
						"4. Ask if anything came up today that I should capture before I forget",
				),
			},
		},
	}, nil
}

// Package prompts implements MCP prompt handlers for the assistant's rituals.
//
// MCP prompts are user-triggered workflows (like slash commands) that
// instruct the AI to execute a specific sequence. Unlike tools (which
// the AI calls), prompts are initiated by the user.
package prompts

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// WeeklyReviewPrompt handles the weekly-review MCP prompt.
// It guides the AI through the conductor-led weekly review.
type WeeklyReviewPrompt struct{}

// NewWeeklyReviewPrompt creates a WeeklyReviewPrompt.
func NewWeeklyReviewPrompt() *WeeklyReviewPrompt {
	return &WeeklyReviewPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *WeeklyReviewPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("weekly-review",
		mcp.WithPromptDescription(
			"Run the GTD weekly review. Walks the six sub-reviews one step "+
				"at a time, acting on findings before moving on.",
		),
		mcp.WithArgument("mode",
			mcp.ArgumentDescription(
				"Review mode: 'guided' (step-by-step conductor, default) or 'digest' (one-shot summary)",
			),
		),
	)
}

// Handle processes the weekly-review prompt request.
func (p *WeeklyReviewPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	mode := "guided"
	if args := req.Params.Arguments; args != nil {
		if m, ok := args["mode"]; ok && m != "" {
			mode = m
		}
	}

	if mode == "digest" {
		return &mcp.GetPromptResult{
			Description: "Weekly review digest",
			Messages: []mcp.PromptMessage{
				{
					Role: mcp.RoleUser,
					Content: mcp.NewTextContent(
						"I want a quick weekly review.\n\n" +
							"Please run `run_weekly_review` and walk me through the digest: " +
							"overdue items first, then stalled projects, then waiting-for " +
							"items that need a follow-up. Suggest concrete next moves and " +
							"use `update_task`/`complete_task` as we decide.",
					),
				},
			},
		}, nil
	}

	return &mcp.GetPromptResult{
		Description: "Guided weekly review",
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(
					"I want to do my weekly review step by step.\n\n" +
						"Please:\n" +
						"1. Call `weekly_review_conductor` with action='start'\n" +
						"2. Run the sub-review tool it names and discuss the findings with me\n" +
						"3. Help me act on them (`create_task`, `update_task`, `complete_task`)\n" +
						"4. Call the conductor with action='next' when I'm ready to move on\n" +
						"5. Repeat until the review is complete\n\n" +
						"One step at a time - don't run ahead of me.",
				),
			},
		},
	}, nil
}

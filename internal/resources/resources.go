// Package resources implements MCP resource handlers for assistant state.
//
// Resources provide read-only data that the host can consume for context.
// They use URI-based addressing (rubberduck://...) following MCP conventions.
package resources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/HendryAvila/rubberduck/internal/review"
	"github.com/mark3labs/mcp-go/mcp"
)

// Handler manages assistant resource endpoints.
type Handler struct {
	store review.Store
}

// NewHandler creates a resource Handler with its dependencies.
func NewHandler(store review.Store) *Handler {
	return &Handler{store: store}
}

// sessionStatus is the JSON shape served for the review session resource.
type sessionStatus struct {
	Active         bool     `json:"active"`
	StartedAt      string   `json:"started_at,omitempty"`
	CurrentStep    string   `json:"current_step,omitempty"`
	StepNumber     int      `json:"step_number,omitempty"`
	TotalSteps     int      `json:"total_steps"`
	CompletedSteps []string `json:"completed_steps,omitempty"`
}

// SessionResource returns the MCP resource definition for the weekly
// review session.
func (h *Handler) SessionResource() mcp.Resource {
	return mcp.NewResource(
		"rubberduck://review/session",
		"Weekly Review Session",
		mcp.WithResourceDescription("Current weekly review session: the step in progress and the steps completed"),
		mcp.WithMIMEType("application/json"),
	)
}

// HandleSession returns the current review session as JSON. An absent
// session, or one pointing at an unknown step, reads as inactive rather
// than an error.
func (h *Handler) HandleSession(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	status := sessionStatus{TotalSteps: len(review.Steps)}

	session, err := h.store.Load()
	if err != nil {
		return errorResource(req.Params.URI, err.Error()), nil
	}
	if session != nil {
		if idx := review.StepIndex(session.CurrentStep); idx >= 0 {
			status.Active = true
			status.StartedAt = session.StartedAt
			status.CurrentStep = session.CurrentStep
			status.StepNumber = idx + 1
			status.CompletedSteps = session.CompletedSteps
		}
	}

	data, err := json.MarshalIndent(status, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling session status: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

// errorResource returns a resource with an error message.
func errorResource(uri, message string) []mcp.ResourceContents {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "text/plain",
			Text:     fmt.Sprintf("Error: %s", message),
		},
	}
}

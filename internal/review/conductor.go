package review

import (
	"fmt"
	"strings"
	"time"
)

// Conductor sequences the weekly review. Every action returns a guidance
// message rather than an error; a broken session never takes the host
// process down with it.
type Conductor struct {
	store Store
}

// NewConductor creates a conductor over the given session store.
func NewConductor(store Store) *Conductor {
	return &Conductor{store: store}
}

const noSessionMsg = "No active weekly review session. " +
	"Call `weekly_review_conductor` with action \"start\" to begin."

// Do executes one conductor action: start, status, next, complete or
// abandon. Unknown actions report themselves instead of failing.
func (c *Conductor) Do(action string) string {
	action = strings.ToLower(strings.TrimSpace(action))
	session := c.load()

	switch action {
	case "start":
		return c.start(session)
	case "status":
		return c.status(session)
	case "next":
		return c.next(session)
	case "complete":
		return c.complete(session)
	case "abandon":
		_ = c.store.Clear()
		return "Weekly review session cleared."
	default:
		return fmt.Sprintf("Unknown action: %s. Valid actions: start, status, next, complete, abandon.", action)
	}
}

// load treats any store failure as "no session".
func (c *Conductor) load() *Session {
	session, err := c.store.Load()
	if err != nil {
		return nil
	}
	return session
}

func (c *Conductor) start(session *Session) string {
	if session != nil && IsStale(session, timeNow()) {
		_ = c.store.Clear()
		session = nil
	}

	if session != nil {
		idx := StepIndex(session.CurrentStep)
		if idx < 0 {
			// Session points at a step that no longer exists. Start over.
			_ = c.store.Clear()
		} else {
			return "Weekly review already in progress.\n\n" + stepGuidance(idx)
		}
	}

	session = &Session{
		StartedAt:      timeNow().UTC().Format(time.RFC3339),
		CurrentStep:    Steps[0].ID,
		CompletedSteps: []string{},
	}
	if err := c.store.Save(session); err != nil {
		return fmt.Sprintf("Could not save review session: %v", err)
	}
	return "Weekly review started!\n\n" + stepGuidance(0)
}

func (c *Conductor) status(session *Session) string {
	if session == nil {
		return noSessionMsg
	}
	idx := StepIndex(session.CurrentStep)
	if idx < 0 {
		_ = c.store.Clear()
		return noSessionMsg
	}
	progress := fmt.Sprintf("Weekly review in progress (%d of %d complete).", len(session.CompletedSteps), len(Steps))
	return progress + "\n\n" + stepGuidance(idx)
}

func (c *Conductor) next(session *Session) string {
	if session == nil {
		return noSessionMsg
	}
	idx := StepIndex(session.CurrentStep)
	if idx < 0 {
		_ = c.store.Clear()
		return noSessionMsg
	}

	session.CompletedSteps = append(session.CompletedSteps, session.CurrentStep)

	if idx >= len(Steps)-1 {
		_ = c.store.Clear()
		return fmt.Sprintf("Weekly review complete! Covered: %s.", strings.Join(stepNames(), ", "))
	}

	session.CurrentStep = Steps[idx+1].ID
	if err := c.store.Save(session); err != nil {
		return fmt.Sprintf("Could not save review session: %v", err)
	}
	return fmt.Sprintf("Step %d complete.\n\n%s", idx+1, stepGuidance(idx+1))
}

func (c *Conductor) complete(session *Session) string {
	if session == nil {
		return "No active weekly review session to complete."
	}

	completed := session.CompletedSteps
	_ = c.store.Clear()

	if len(completed) == 0 {
		return "Weekly review ended (no steps completed)."
	}

	done := map[string]bool{}
	for _, id := range completed {
		done[id] = true
	}
	var names []string
	for _, s := range Steps {
		if done[s.ID] {
			names = append(names, s.Name)
		}
	}
	return fmt.Sprintf("Weekly review completed early. Covered: %s.", strings.Join(names, ", "))
}

func stepGuidance(idx int) string {
	s := Steps[idx]
	return fmt.Sprintf("**Step %d of %d: %s**\n\nCall `%s` to run this review.", idx+1, len(Steps), s.Name, s.Tool)
}

func stepNames() []string {
	names := make([]string, len(Steps))
	for i, s := range Steps {
		names[i] = s.Name
	}
	return names
}

// Package preempt arbitrates between interactive requests and in-flight
// autonomous work. The discipline is cooperative: the background worker
// polls ShouldYield between discrete units of work and bails out early
// when an interactive request wants the floor. Nothing here can interrupt
// a unit of work already in progress.
//
// Design principles:
//   - Explicit construction: callers hold a *Coordinator, no package-level
//     singleton, so tests can run independent instances.
//   - Paired lifecycle: every StartWork is matched by a deferred
//     FinishWork, including early-return and error paths.
//   - Separate clusters: FinishWork clears the working fields only; the
//     preemption flag and reason belong to RequestPreempt/ClearPreempt.
package preempt

import (
	"context"
	"sync"
	"time"
)

// Status is the bot's operational state.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusWorking Status = "working"
	// StatusWrappingUp is reserved. The coordinator only ever toggles
	// between idle and working; preemption-in-progress is tracked by the
	// flag, not a third state.
	StatusWrappingUp Status = "wrapping_up"
)

// A worker still marked working after this long is presumed to have
// crashed without cleanup.
const stuckThreshold = 10 * time.Minute

// AwaitIdle polls at this interval, giving up after the bound. The caller
// proceeds either way; user interactivity always wins.
const (
	awaitPollInterval = 500 * time.Millisecond
	awaitBound        = 60 * time.Second
)

// State is a point-in-time snapshot of the coordinator.
type State struct {
	Status           Status    `json:"status"`
	CurrentTask      string    `json:"current_task,omitempty"`
	StartedAt        time.Time `json:"started_at,omitempty"`
	PreemptRequested bool      `json:"preempt_requested"`
	PreemptReason    string    `json:"preempt_reason,omitempty"`
}

// Coordinator tracks whether the autonomous worker is busy and whether an
// interactive request has asked it to yield. A zero Coordinator is not
// ready; use New.
type Coordinator struct {
	mu sync.Mutex

	status           Status
	currentTask      string
	startedAt        time.Time
	preemptRequested bool
	preemptReason    string
}

// New returns an idle Coordinator.
func New() *Coordinator {
	return &Coordinator{status: StatusIdle}
}

// StartWork marks the worker as busy on the described task. Calling it
// while already working silently overwrites the prior task; there is no
// queue, a single in-flight task by design.
func (c *Coordinator) StartWork(description string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.status = StatusWorking
	c.currentTask = description
	c.startedAt = timeNow()
}

// FinishWork marks the worker idle and clears the working fields. Always
// safe to call, even when already idle. The preemption flag is left alone;
// the requesting side clears it via ClearPreempt.
func (c *Coordinator) FinishWork() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.finishLocked()
}

func (c *Coordinator) finishLocked() {
	c.status = StatusIdle
	c.currentTask = ""
	c.startedAt = time.Time{}
}

// RequestPreempt asks the worker to yield at its next checkpoint.
// Idempotent; the latest reason wins.
func (c *Coordinator) RequestPreempt(reason string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.preemptRequested = true
	c.preemptReason = reason
}

// ClearPreempt withdraws a pending preemption request. Idempotent.
func (c *Coordinator) ClearPreempt() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.preemptRequested = false
	c.preemptReason = ""
}

// ShouldYield reports whether a preemption request is pending. The worker
// must check this before each discrete unit of work and return early when
// true, still running its deferred FinishWork on the way out.
func (c *Coordinator) ShouldYield() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.preemptRequested
}

// CheckStuck resets a worker that has been marked working for over ten
// minutes, returning true if it did so. A worker that crashed without its
// cleanup running is indistinguishable from a slow one; this is the only
// safety valve.
func (c *Coordinator) CheckStuck() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.status != StatusWorking || c.startedAt.IsZero() {
		return false
	}
	if timeNow().Sub(c.startedAt) > stuckThreshold {
		c.finishLocked()
		return true
	}
	return false
}

// State returns a snapshot of the coordinator.
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return State{
		Status:           c.status,
		CurrentTask:      c.currentTask,
		StartedAt:        c.startedAt,
		PreemptRequested: c.preemptRequested,
		PreemptReason:    c.preemptReason,
	}
}

// AwaitIdle polls until the worker goes idle, the bound elapses, or ctx is
// done. Returns true only if idle was observed. Callers proceed with their
// request regardless of the result.
func (c *Coordinator) AwaitIdle(ctx context.Context) bool {
	deadline := timeNow().Add(awaitBound)
	for {
		c.mu.Lock()
		idle := c.status == StatusIdle
		c.mu.Unlock()
		if idle {
			return true
		}
		if timeNow().After(deadline) {
			return false
		}
		select {
		case <-ctx.Done():
			return false
		case <-time.After(awaitPollInterval):
		}
	}
}

package preempt

import (
	"context"
	"testing"
	"time"
)

func init() {
	// Freeze time for deterministic tests.
	timeNow = func() time.Time {
		return time.Date(2026, 2, 23, 12, 0, 0, 0, time.UTC)
	}
}

// --- Lifecycle ---

func TestNew_StartsIdle(t *testing.T) {
	c := New()
	state := c.State()
	if state.Status != StatusIdle {
		t.Errorf("Status = %s, want idle", state.Status)
	}
	if state.CurrentTask != "" {
		t.Errorf("CurrentTask = %q, want empty", state.CurrentTask)
	}
}

func TestStartWork_SetsWorking(t *testing.T) {
	c := New()
	c.StartWork("archiving old entries")

	state := c.State()
	if state.Status != StatusWorking {
		t.Errorf("Status = %s, want working", state.Status)
	}
	if state.CurrentTask != "archiving old entries" {
		t.Errorf("CurrentTask = %q, want archiving old entries", state.CurrentTask)
	}
	if state.StartedAt.IsZero() {
		t.Error("StartedAt should be set")
	}
}

func TestStartWork_OverwritesPriorTask(t *testing.T) {
	c := New()
	c.StartWork("first task")
	c.StartWork("second task")

	if got := c.State().CurrentTask; got != "second task" {
		t.Errorf("CurrentTask = %q, want second task", got)
	}
}

func TestFinishWork_ReturnsToIdle(t *testing.T) {
	c := New()
	c.StartWork("some task")
	c.FinishWork()

	state := c.State()
	if state.Status != StatusIdle {
		t.Errorf("Status = %s, want idle", state.Status)
	}
	if state.CurrentTask != "" {
		t.Errorf("CurrentTask = %q, want empty", state.CurrentTask)
	}
	if !state.StartedAt.IsZero() {
		t.Error("StartedAt should be cleared")
	}
}

func TestFinishWork_SafeWhenIdle(t *testing.T) {
	c := New()
	c.FinishWork()
	c.FinishWork()

	if got := c.State().Status; got != StatusIdle {
		t.Errorf("Status = %s, want idle", got)
	}
}

func TestFinishWork_LeavesPreemptFlag(t *testing.T) {
	// The flag belongs to the requesting side; finishing work must not
	// swallow a request the worker never observed.
	c := New()
	c.StartWork("batch job")
	c.RequestPreempt("user message")
	c.FinishWork()

	if !c.ShouldYield() {
		t.Error("preempt flag should survive FinishWork")
	}
	if got := c.State().PreemptReason; got != "user message" {
		t.Errorf("PreemptReason = %q, want user message", got)
	}
}

// --- Preemption flag ---

func TestShouldYield_FalseByDefault(t *testing.T) {
	c := New()
	c.StartWork("some task")
	if c.ShouldYield() {
		t.Error("ShouldYield should be false with no request pending")
	}
}

func TestShouldYield_TrueAfterRequest(t *testing.T) {
	c := New()
	c.StartWork("some task")
	c.RequestPreempt("user message")
	if !c.ShouldYield() {
		t.Error("ShouldYield should be true after RequestPreempt")
	}
}

func TestClearPreempt_ResetsFlag(t *testing.T) {
	c := New()
	c.RequestPreempt("user message")
	c.ClearPreempt()

	if c.ShouldYield() {
		t.Error("ShouldYield should be false after ClearPreempt")
	}
	if got := c.State().PreemptReason; got != "" {
		t.Errorf("PreemptReason = %q, want empty", got)
	}
}

func TestRequestPreempt_WorksWhileIdle(t *testing.T) {
	c := New()
	c.RequestPreempt("queued before work started")
	if !c.ShouldYield() {
		t.Error("preemption can be requested regardless of status")
	}
}

func TestRequestPreempt_LatestReasonWins(t *testing.T) {
	c := New()
	c.RequestPreempt("first")
	c.RequestPreempt("second")
	if got := c.State().PreemptReason; got != "second" {
		t.Errorf("PreemptReason = %q, want second", got)
	}
}

// --- CheckStuck ---

func TestCheckStuck_ElevenMinutesResets(t *testing.T) {
	c := New()
	c.StartWork("hung job")
	c.startedAt = timeNow().Add(-11 * time.Minute)

	if !c.CheckStuck() {
		t.Fatal("CheckStuck should report stuck after 11 minutes")
	}
	if got := c.State().Status; got != StatusIdle {
		t.Errorf("Status = %s, want idle after reset", got)
	}
}

func TestCheckStuck_NineMinutesLeavesWorking(t *testing.T) {
	c := New()
	c.StartWork("slow job")
	c.startedAt = timeNow().Add(-9 * time.Minute)

	if c.CheckStuck() {
		t.Fatal("CheckStuck should not trigger at 9 minutes")
	}
	if got := c.State().Status; got != StatusWorking {
		t.Errorf("Status = %s, want working", got)
	}
}

func TestCheckStuck_ExactlyTenMinutesNotStuck(t *testing.T) {
	c := New()
	c.StartWork("borderline job")
	c.startedAt = timeNow().Add(-10 * time.Minute)

	if c.CheckStuck() {
		t.Error("threshold is strict; exactly 10 minutes is not stuck")
	}
}

func TestCheckStuck_IdleIsNotStuck(t *testing.T) {
	c := New()
	if c.CheckStuck() {
		t.Error("CheckStuck on idle coordinator should be false")
	}
}

func TestCheckStuck_NoStartTimeIsNotStuck(t *testing.T) {
	c := New()
	c.status = StatusWorking // inconsistent state, tolerated

	if c.CheckStuck() {
		t.Error("CheckStuck without a start time should be false")
	}
}

func TestCheckStuck_LeavesPreemptFlag(t *testing.T) {
	c := New()
	c.StartWork("hung job")
	c.RequestPreempt("user message")
	c.startedAt = timeNow().Add(-11 * time.Minute)

	c.CheckStuck()

	if !c.ShouldYield() {
		t.Error("stuck reset should not clear the preempt flag")
	}
}

// --- AwaitIdle ---

func TestAwaitIdle_ImmediateWhenIdle(t *testing.T) {
	c := New()
	if !c.AwaitIdle(context.Background()) {
		t.Error("AwaitIdle on an idle coordinator should return true immediately")
	}
}

func TestAwaitIdle_StopsOnContextCancel(t *testing.T) {
	c := New()
	c.StartWork("long job")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if c.AwaitIdle(ctx) {
		t.Error("AwaitIdle should give up when the context is cancelled")
	}
}

// --- Worker discipline ---

func TestWorkerLoop_YieldsBetweenUnits(t *testing.T) {
	c := New()

	processed := 0
	run := func() {
		c.StartWork("processing batches")
		defer c.FinishWork()
		for i := 0; i < 5; i++ {
			if c.ShouldYield() {
				return
			}
			processed++
			if processed == 2 {
				c.RequestPreempt("interactive request arrived")
			}
		}
	}
	run()

	if processed != 2 {
		t.Errorf("processed = %d, want 2 (yielded at next checkpoint)", processed)
	}
	if got := c.State().Status; got != StatusIdle {
		t.Errorf("Status = %s, want idle (deferred FinishWork ran)", got)
	}
	if !c.ShouldYield() {
		t.Error("flag still pending until the requester clears it")
	}
}

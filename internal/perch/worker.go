// Package perch runs the assistant's background maintenance. The name
// comes from a duck sitting quietly on its perch: once a minute it
// looks around, and if the owner has gone quiet it tidies up, moving
// old journal entries into the archive.
//
// All work happens under the preemption protocol: the worker announces
// itself to the coordinator, checks ShouldYield between batches, and
// drops everything mid-pass when the owner comes back.
package perch

import (
	"context"
	"log"
	"path/filepath"
	"time"

	"github.com/HendryAvila/rubberduck/internal/preempt"
)

const (
	// tickInterval is how often the worker wakes up.
	tickInterval = time.Minute

	// conversationGap is how long the journal must be quiet before the
	// worker considers the owner gone.
	conversationGap = 30 * time.Minute

	// archiveEvery caps archive passes to one per interval.
	archiveEvery = 6 * time.Hour

	// retainFor is how long entries stay live before archival.
	retainFor = 30 * 24 * time.Hour

	// batchSize bounds one archive transaction. ShouldYield runs
	// between batches, so this is also the preemption latency.
	batchSize = 200
)

// Journal is the slice of the journal store the worker needs.
// Abstracted for testability (DIP).
type Journal interface {
	LastEntryTime() (time.Time, error)
	ArchiveBefore(cutoff time.Time, limit int) (int, error)
}

// Worker owns the maintenance loop.
type Worker struct {
	journal   Journal
	coord     *preempt.Coordinator
	statePath string
}

// NewWorker wires the worker to its journal and coordinator. State
// persists under stateDir so archive cadence survives restarts.
func NewWorker(journal Journal, coord *preempt.Coordinator, stateDir string) *Worker {
	return &Worker{
		journal:   journal,
		coord:     coord,
		statePath: filepath.Join(stateDir, StateFile),
	}
}

// Run ticks once a minute until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.Tick()
		}
	}
}

// Tick checks whether maintenance is due and runs it.
func (w *Worker) Tick() {
	now := timeNow().UTC()
	state := w.loadState()
	state.LastTickTS = now.Format(time.RFC3339)

	if !w.archiveDue(state, now) {
		w.saveState(state)
		return
	}

	if w.runArchive(now) {
		state.LastArchiveTS = now.Format(time.RFC3339)
	}
	w.saveState(state)
}

// archiveDue reports whether an archive pass should run this tick.
func (w *Worker) archiveDue(state State, now time.Time) bool {
	if last, err := time.Parse(time.RFC3339, state.LastArchiveTS); err == nil && now.Sub(last) < archiveEvery {
		return false
	}

	last, err := w.journal.LastEntryTime()
	if err != nil {
		log.Printf("WARNING: perch: reading journal activity: %v", err)
		return false
	}
	if last.IsZero() {
		return false
	}
	// A quiet journal means the owner is done talking.
	if now.Sub(last) < conversationGap {
		return false
	}
	return true
}

// runArchive moves expired entries in batches, yielding to the owner
// between batches. Reports whether the pass ran to completion.
func (w *Worker) runArchive(now time.Time) bool {
	w.coord.StartWork("archiving journal")
	defer w.coord.FinishWork()

	cutoff := now.Add(-retainFor)
	total := 0
	for {
		if w.coord.ShouldYield() {
			log.Printf("perch: archive preempted after %d entries", total)
			return false
		}
		moved, err := w.journal.ArchiveBefore(cutoff, batchSize)
		if err != nil {
			log.Printf("WARNING: perch: archive failed: %v", err)
			return false
		}
		total += moved
		if moved < batchSize {
			break
		}
	}

	if total > 0 {
		log.Printf("perch: archived %d journal entries", total)
	}
	return true
}

package perch

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
)

// StateFile is the worker's state file inside the state directory.
const StateFile = "perch_state.json"

// State records when the worker last ran and last archived. Timestamps
// are RFC 3339 in UTC.
type State struct {
	LastTickTS    string `json:"last_tick_ts,omitempty"`
	LastArchiveTS string `json:"last_archive_ts,omitempty"`
}

// loadState reads the persisted state. Missing or corrupt files read
// as a fresh state; the worker self-heals on the next save.
func (w *Worker) loadState() State {
	data, err := os.ReadFile(w.statePath)
	if err != nil {
		return State{}
	}
	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		return State{}
	}
	return s
}

func (w *Worker) saveState(s State) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return
	}
	if err := os.MkdirAll(filepath.Dir(w.statePath), 0o755); err != nil {
		log.Printf("WARNING: perch: saving state: %v", err)
		return
	}
	if err := os.WriteFile(w.statePath, data, 0o644); err != nil {
		log.Printf("WARNING: perch: saving state: %v", err)
	}
}

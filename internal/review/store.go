package review

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// SessionFile is the filename for the persisted review session.
const SessionFile = "weekly_review_session.json"

// Store defines the persistence interface for review sessions.
// Abstracted for testability (DIP).
type Store interface {
	Load() (*Session, error)
	Save(session *Session) error
	Clear() error
}

// FileStore implements Store using a JSON file under the state directory.
// There is no file locking; the server runs as a single process, and
// concurrent processes would race on the file.
type FileStore struct {
	path string
}

// NewFileStore creates a filesystem-backed session store rooted at stateDir.
func NewFileStore(stateDir string) *FileStore {
	return &FileStore{path: filepath.Join(stateDir, SessionFile)}
}

// Path returns the absolute path of the session file.
func (fs *FileStore) Path() string {
	return fs.path
}

// Load reads the current session. Returns nil (not an error) when no
// session exists or the file does not parse; a half-written session is as
// good as none.
func (fs *FileStore) Load() (*Session, error) {
	data, err := os.ReadFile(fs.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading review session: %w", err)
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, nil
	}
	return &session, nil
}

// Save writes the session, creating the state directory if needed.
func (fs *FileStore) Save(session *Session) error {
	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling review session: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(fs.path), 0o755); err != nil {
		return fmt.Errorf("creating state directory: %w", err)
	}
	return os.WriteFile(fs.path, data, 0o644)
}

// Clear removes the session file. Clearing an absent session is a no-op.
func (fs *FileStore) Clear() error {
	if err := os.Remove(fs.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clearing review session: %w", err)
	}
	return nil
}

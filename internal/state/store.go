package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileStore persists one JSON state file per session id.
type FileStore struct {
	dir string
}

// NewFileStore creates a store rooted at dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// CacheDir returns the platform-appropriate cache directory.
func CacheDir() string {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "orburn")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".cache", "orburn")
}

// SessionsDir returns the default directory for session state files.
func SessionsDir() string {
	return filepath.Join(CacheDir(), "sessions")
}

// Load reads the state for a session id. A missing or structurally invalid
// file is equivalent to an empty initial state, never an error: losing a
// corrupt record is safer than refusing to render.
func (fs *FileStore) Load(sessionID string) SessionState {
	fresh := SessionState{SessionID: sessionID}

	data, err := os.ReadFile(fs.path(sessionID))
	if err != nil {
		return fresh
	}

	var st SessionState
	if err := json.Unmarshal(data, &st); err != nil {
		return fresh
	}
	st.SessionID = sessionID
	return st
}

// Save atomically replaces the session's state file. The write goes to a
// temp file first so an interrupted run leaves the last good record intact.
func (fs *FileStore) Save(st SessionState) error {
	if err := os.MkdirAll(fs.dir, 0o750); err != nil {
		return fmt.Errorf("creating state dir: %w", err)
	}

	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling state: %w", err)
	}
	data = append(data, '\n')

	path := fs.path(st.SessionID)
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("writing state tmp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("replacing state file: %w", err)
	}
	return nil
}

func (fs *FileStore) path(sessionID string) string {
	return filepath.Join(fs.dir, sanitizeFileComponent(sessionID)+".json")
}

// sanitizeFileComponent keeps arbitrary session tokens filesystem-safe.
func sanitizeFileComponent(v string) string {
	replacer := strings.NewReplacer(
		"/", "_",
		"\\", "_",
		":", "_",
		" ", "_",
	)
	out := replacer.Replace(v)
	if out == "" {
		out = "default"
	}
	return out
}

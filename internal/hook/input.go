// Package hook decodes the statusline payload the assistant pipes to us.
package hook

import (
	"encoding/json"
	"fmt"
	"io"
)

// Input is the JSON payload delivered on stdin for each statusline render.
// Unknown fields are ignored; the hook format grows over time.
type Input struct {
	SessionID      string `json:"session_id"`
	TranscriptPath string `json:"transcript_path"`
	Model          struct {
		ID          string `json:"id"`
		DisplayName string `json:"display_name"`
	} `json:"model"`
	Workspace struct {
		CurrentDir string `json:"current_dir"`
	} `json:"workspace"`
}

// Read decodes a statusline payload. A payload without a session id is
// unusable for accounting and reported as an error.
func Read(r io.Reader) (Input, error) {
	var in Input
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		return Input{}, fmt.Errorf("decoding statusline payload: %w", err)
	}
	if in.SessionID == "" {
		return Input{}, fmt.Errorf("statusline payload has no session_id")
	}
	return in, nil
}

package hook

import (
	"strings"
	"testing"
)

func TestRead_FullPayload(t *testing.T) {
	payload := `{
		"session_id": "sess-abc",
		"transcript_path": "/tmp/t.jsonl",
		"model": {"id": "anthropic/claude-3.5-sonnet", "display_name": "Claude 3.5 Sonnet"},
		"workspace": {"current_dir": "/home/u/proj"},
		"some_future_field": {"ignored": true}
	}`

	in, err := Read(strings.NewReader(payload))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if in.SessionID != "sess-abc" {
		t.Errorf("SessionID = %q, want sess-abc", in.SessionID)
	}
	if in.TranscriptPath != "/tmp/t.jsonl" {
		t.Errorf("TranscriptPath = %q, want /tmp/t.jsonl", in.TranscriptPath)
	}
	if in.Model.ID != "anthropic/claude-3.5-sonnet" {
		t.Errorf("Model.ID = %q", in.Model.ID)
	}
}

func TestRead_MissingSessionID(t *testing.T) {
	if _, err := Read(strings.NewReader(`{"transcript_path":"/tmp/t.jsonl"}`)); err == nil {
		t.Fatal("expected error for payload without session_id")
	}
}

func TestRead_MalformedJSON(t *testing.T) {
	if _, err := Read(strings.NewReader(`{{{`)); err == nil {
		t.Fatal("expected error for malformed payload")
	}
}

func TestRead_EmptyInput(t *testing.T) {
	if _, err := Read(strings.NewReader("")); err == nil {
		t.Fatal("expected error for empty input")
	}
}

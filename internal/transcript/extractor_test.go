package transcript

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeTranscript creates a temp JSONL file and returns its path.
func writeTranscript(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "transcript.jsonl")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestExtractGenerationIDs_Basic(t *testing.T) {
	path := writeTranscript(t,
		`{"type":"assistant","message":{"id":"gen-1111-aaa","model":"anthropic/claude-3.5-sonnet"}}`,
		`{"type":"user","content":"hello"}`,
		`{"type":"assistant","message":{"id":"gen-2222-bbb"}}`,
	)

	got := ExtractGenerationIDs(path)
	want := []string{"gen-1111-aaa", "gen-2222-bbb"}
	if len(got) != len(want) {
		t.Fatalf("ids = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ids[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestExtractGenerationIDs_DedupPreservesFirstSeenOrder(t *testing.T) {
	path := writeTranscript(t,
		`{"id":"gen-b"}`,
		`{"id":"gen-a"}`,
		`{"id":"gen-b"}`,
		`{"id":"gen-a","again":"gen-a"}`,
	)

	got := ExtractGenerationIDs(path)
	want := []string{"gen-b", "gen-a"}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("ids = %v, want %v", got, want)
	}
}

func TestExtractGenerationIDs_MultipleIDsPerLine(t *testing.T) {
	path := writeTranscript(t,
		`{"id":"gen-1","parent":"gen-2","refs":["gen-3"]}`,
	)

	got := ExtractGenerationIDs(path)
	if len(got) != 3 {
		t.Fatalf("ids = %v, want 3 unique ids", got)
	}
}

func TestExtractGenerationIDs_MalformedLinesSkipped(t *testing.T) {
	path := writeTranscript(t,
		`not json at all`,
		`{"id":"gen-ok"}`,
		`{"broken":"gen-unterminated`,
		``,
	)

	got := ExtractGenerationIDs(path)
	if len(got) != 1 || got[0] != "gen-ok" {
		t.Errorf("ids = %v, want [gen-ok]", got)
	}
}

func TestExtractGenerationIDs_MissingFile(t *testing.T) {
	got := ExtractGenerationIDs(filepath.Join(t.TempDir(), "nope.jsonl"))
	if len(got) != 0 {
		t.Errorf("ids = %v, want empty for missing file", got)
	}
}

func TestExtractGenerationIDs_EmptyPath(t *testing.T) {
	if got := ExtractGenerationIDs(""); len(got) != 0 {
		t.Errorf("ids = %v, want empty for empty path", got)
	}
}

func TestExtractGenerationIDs_Deterministic(t *testing.T) {
	path := writeTranscript(t,
		`{"id":"gen-x"}`,
		`{"id":"gen-y"}`,
		`{"id":"gen-z"}`,
	)

	first := ExtractGenerationIDs(path)
	second := ExtractGenerationIDs(path)
	if len(first) != len(second) {
		t.Fatalf("runs differ: %v vs %v", first, second)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("run mismatch at %d: %q vs %q", i, first[i], second[i])
		}
	}
}

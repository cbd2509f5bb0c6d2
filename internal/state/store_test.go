package state

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFileStore_Roundtrip(t *testing.T) {
	fs := NewFileStore(t.TempDir())

	usage := 12.5
	st := SessionState{
		SessionID:          "sess-1",
		SeenGenerationIDs:  []string{"gen-a", "gen-b"},
		TotalCost:          3.25,
		TotalCacheDiscount: -0.4,
		LastProvider:       "Anthropic",
		LastModel:          "anthropic/claude-3.5-sonnet",
		KeyUsage:           &usage,
		BalanceFetchedAt:   time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
	}

	if err := fs.Save(st); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got := fs.Load("sess-1")
	if got.TotalCost != 3.25 {
		t.Errorf("TotalCost = %v, want 3.25", got.TotalCost)
	}
	if got.TotalCacheDiscount != -0.4 {
		t.Errorf("TotalCacheDiscount = %v, want -0.4", got.TotalCacheDiscount)
	}
	if len(got.SeenGenerationIDs) != 2 || got.SeenGenerationIDs[0] != "gen-a" {
		t.Errorf("SeenGenerationIDs = %v, want order preserved", got.SeenGenerationIDs)
	}
	if got.KeyUsage == nil || *got.KeyUsage != 12.5 {
		t.Errorf("KeyUsage = %v, want 12.5", got.KeyUsage)
	}
	if got.KeyLimit != nil {
		t.Errorf("KeyLimit = %v, want nil roundtripped", *got.KeyLimit)
	}
	if !got.BalanceFetchedAt.Equal(st.BalanceFetchedAt) {
		t.Errorf("BalanceFetchedAt = %v, want %v", got.BalanceFetchedAt, st.BalanceFetchedAt)
	}
}

func TestFileStore_MissingFileYieldsEmptyState(t *testing.T) {
	fs := NewFileStore(t.TempDir())

	st := fs.Load("never-saved")
	if st.SessionID != "never-saved" {
		t.Errorf("SessionID = %q, want never-saved", st.SessionID)
	}
	if st.TotalCost != 0 || len(st.SeenGenerationIDs) != 0 {
		t.Error("missing file should load as empty state")
	}
}

func TestFileStore_CorruptFileYieldsEmptyState(t *testing.T) {
	dir := t.TempDir()
	fs := NewFileStore(dir)

	if err := os.WriteFile(filepath.Join(dir, "sess-bad.json"), []byte("{{{ not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	got := fs.Load("sess-bad")
	missing := fs.Load("sess-missing")

	got.SessionID, missing.SessionID = "", ""
	if got.TotalCost != missing.TotalCost || len(got.SeenGenerationIDs) != len(missing.SeenGenerationIDs) {
		t.Error("corrupt file should load identically to a missing file")
	}
}

func TestFileStore_SaveLeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	fs := NewFileStore(dir)

	if err := fs.Save(SessionState{SessionID: "sess-1"}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("dir entries = %d, want 1", len(entries))
	}
	if entries[0].Name() != "sess-1.json" {
		t.Errorf("file = %q, want sess-1.json", entries[0].Name())
	}
}

func TestFileStore_SanitizesSessionID(t *testing.T) {
	dir := t.TempDir()
	fs := NewFileStore(dir)

	if err := fs.Save(SessionState{SessionID: "a/b:c d"}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got := fs.Load("a/b:c d")
	if got.SessionID != "a/b:c d" {
		t.Errorf("SessionID = %q, want original token preserved", got.SessionID)
	}
}

func TestSeenSet(t *testing.T) {
	st := SessionState{SeenGenerationIDs: []string{"gen-a", "gen-b"}}
	set := st.SeenSet()
	if _, ok := set["gen-a"]; !ok {
		t.Error("gen-a missing from seen set")
	}
	if _, ok := set["gen-c"]; ok {
		t.Error("gen-c unexpectedly in seen set")
	}
}

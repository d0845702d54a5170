package store_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/git-subrepo/git-subrepo/internal/store"
)

func setFormer(t *testing.T, path, value string) {
	t.Helper()
	cmd := exec.Command("git", "config", "-f", path, "subrepo.former", value)
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git config subrepo.former: %v\n%s", err, out)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".gitrepo")

	in := store.Record{
		Remote: "https://example.com/foo.git",
		Branch: "main",
		Commit: "abc123",
		Parent: "def456",
		CmdVer: "0.1.0",
	}
	if err := store.Save(path, in); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := store.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != in {
		t.Fatalf("round-trip mismatch: got %+v, want %+v", got, in)
	}
}

func TestLoadFallsBackToLegacyFormer(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".gitrepo")
	if err := store.Save(path, store.Record{Remote: "r", Branch: "b"}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	// Simulate a legacy file: set `former` directly via git config, since
	// Save never writes it.
	setFormer(t, path, "legacy-parent-sha")

	got, err := store.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Parent != "legacy-parent-sha" {
		t.Fatalf("expected parent to fall back to former, got %q", got.Parent)
	}
}

func TestHeaderWrittenOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".gitrepo")
	if err := store.Save(path, store.Record{Remote: "r", Branch: "b"}); err != nil {
		t.Fatalf("first Save: %v", err)
	}
	if err := store.Save(path, store.Record{Remote: "r2", Branch: "b2"}); err != nil {
		t.Fatalf("second Save: %v", err)
	}

	got, err := store.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Remote != "r2" || got.Branch != "b2" {
		t.Fatalf("expected second Save's values to win, got %+v", got)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	if n := strings.Count(string(raw), "# This file is used by git-subrepo"); n != 1 {
		t.Fatalf("expected the header exactly once, found it %d times:\n%s", n, raw)
	}
}

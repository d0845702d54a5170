package subrepo_test

import (
	"testing"

	"github.com/git-subrepo/git-subrepo/internal/subrepo"
)

func TestStatusAcrossManyDedupesNested(t *testing.T) {
	bareA, _ := newUpstream(t, "master")
	bareB, _ := newUpstream(t, "master")
	bareC, _ := newUpstream(t, "master")
	_, e := newMainline(t)

	if _, err := e.Clone(bareA, "a", subrepo.CloneOptions{}); err != nil {
		t.Fatalf("Clone a: %v", err)
	}
	if _, err := e.Clone(bareB, "b", subrepo.CloneOptions{}); err != nil {
		t.Fatalf("Clone b: %v", err)
	}
	// Nest a third subrepo inside a/ to exercise the dedupe rule (§4.2.7
	// scenario e): it should not appear as its own entry.
	if _, err := e.Clone(bareC, "a/vendor/c", subrepo.CloneOptions{}); err != nil {
		t.Fatalf("Clone nested c: %v", err)
	}

	discovered, err := e.Discover()
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(discovered) != 2 {
		t.Fatalf("Discover() = %v, want exactly 2 entries (a, b)", discovered)
	}
	if discovered[0] != "a" || discovered[1] != "b" {
		t.Fatalf("Discover() = %v, want [a b] in lexicographic order", discovered)
	}

	statuses, err := e.Status(nil, false)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if len(statuses) != 2 {
		t.Fatalf("Status() returned %d entries, want 2", len(statuses))
	}
}

func TestStatusReportsHealthNotes(t *testing.T) {
	bare, _ := newUpstream(t, "master")
	_, e := newMainline(t)

	if _, err := e.Clone(bare, "foo", subrepo.CloneOptions{}); err != nil {
		t.Fatalf("Clone: %v", err)
	}

	statuses, err := e.Status([]string{"foo"}, false)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if len(statuses) != 1 {
		t.Fatalf("expected exactly one status entry, got %d", len(statuses))
	}
	if len(statuses[0].Health) != 0 {
		t.Errorf("expected a freshly cloned subrepo to report no health issues, got %v", statuses[0].Health)
	}
}

package subrepo_test

import (
	"testing"

	"github.com/git-subrepo/git-subrepo/internal/refs"
	"github.com/git-subrepo/git-subrepo/internal/subrepo"
)

func TestFetchUpdatesFetchRef(t *testing.T) {
	bare, upstreamHead := newUpstream(t, "master")
	_, e := newMainline(t)

	if _, err := e.Clone(bare, "foo", subrepo.CloneOptions{}); err != nil {
		t.Fatalf("Clone: %v", err)
	}

	ns := refs.For("foo")
	got, err := e.Driver.ResolveRef(ns.Ref(refs.Fetch))
	if err != nil || got != upstreamHead {
		t.Fatalf("fetch ref after clone = %q, %v, want %q", got, err, upstreamHead)
	}

	newHead := addUpstreamCommit(t, bare, "master", "another change\n")

	reported, err := e.Fetch("foo")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if reported != newHead {
		t.Fatalf("Fetch() = %q, want %q", reported, newHead)
	}

	got, err = e.Driver.ResolveRef(ns.Ref(refs.Fetch))
	if err != nil || got != newHead {
		t.Fatalf("fetch ref after Fetch = %q, %v, want %q", got, err, newHead)
	}
}

func TestFetchFailsWithoutGitrepo(t *testing.T) {
	_, e := newMainline(t)
	if _, err := e.Fetch("nonexistent"); err == nil {
		t.Fatal("expected Fetch to fail for a subdir with no .gitrepo")
	}
}

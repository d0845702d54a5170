package subrepo_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/git-subrepo/git-subrepo/internal/gitrepo"
	"github.com/git-subrepo/git-subrepo/internal/refs"
	"github.com/git-subrepo/git-subrepo/internal/subrepo"
)

func TestPushLocalEdits(t *testing.T) {
	bare, upstreamHead := newUpstream(t, "master")
	root, e := newMainline(t)

	if _, err := e.Clone(bare, "foo", subrepo.CloneOptions{}); err != nil {
		t.Fatalf("Clone: %v", err)
	}

	if err := os.WriteFile(filepath.Join(root, "foo", "README.md"), []byte("local change\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	git(t, root, "add", ".")
	git(t, root, "commit", "-q", "-m", "local change to foo")

	if err := e.Push("foo", "main", subrepo.PushOptions{}); err != nil {
		t.Fatalf("Push: %v", err)
	}

	ns := refs.For("foo")
	if !e.Driver.RefExists(ns.Ref(refs.Push)) {
		t.Error("expected refs/subrepo/foo/push to exist after push")
	}
	if e.Driver.RefExists("refs/heads/" + ns.PushBranch()) {
		t.Error("expected the temporary push branch to be cleaned up")
	}

	// Inspect upstream's new tip directly.
	mirror := t.TempDir()
	git(t, mirror, "clone", "-q", bare, ".")
	content, err := readFile(filepath.Join(mirror, "README.md"))
	if err != nil {
		t.Fatalf("reading pushed content: %v", err)
	}
	if content != "local change\n" {
		t.Errorf("upstream README.md = %q, want %q", content, "local change\n")
	}

	upstreamDriver := gitrepo.New(mirror)
	newUpstreamHead, err := upstreamDriver.HeadCommit()
	if err != nil {
		t.Fatalf("HeadCommit: %v", err)
	}
	if newUpstreamHead == upstreamHead {
		t.Error("expected upstream HEAD to have moved")
	}
}

func TestPushRejectsWithoutAncestryUnlessForced(t *testing.T) {
	bare, _ := newUpstream(t, "master")
	root, e := newMainline(t)

	if _, err := e.Clone(bare, "foo", subrepo.CloneOptions{}); err != nil {
		t.Fatalf("Clone: %v", err)
	}

	// Advance upstream so the local fetch tip is stale, then push without
	// refreshing it — Push always fetches first internally here, so
	// instead exercise --force acceptance on a branch lacking upstream_head
	// by pushing an explicit, deliberately behind branch.
	git(t, root, "branch", "behind", "HEAD")
	addUpstreamCommit(t, bare, "master", "v2\n")

	if err := e.Push("foo", "main", subrepo.PushOptions{BranchName: "behind"}); err == nil {
		t.Fatal("expected Push to reject a branch that does not contain upstream_head")
	}
	if err := e.Push("foo", "main", subrepo.PushOptions{BranchName: "behind", Force: true}); err != nil {
		t.Fatalf("expected --force to override the ancestry check, got %v", err)
	}
}

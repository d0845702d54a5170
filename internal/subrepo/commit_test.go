package subrepo_test

import (
	"strings"
	"testing"

	"github.com/git-subrepo/git-subrepo/internal/subrepo"
)

func TestCommitMessageIsMachineParseable(t *testing.T) {
	bare, _ := newUpstream(t, "master")
	root, e := newMainline(t)

	if _, err := e.Clone(bare, "foo", subrepo.CloneOptions{OriginalArgs: bare + " foo"}); err != nil {
		t.Fatalf("Clone: %v", err)
	}

	msg := git(t, root, "log", "-1", "--format=%B")
	for _, want := range []string{
		"git subrepo clone " + bare + " foo",
		"subdir:",
		"upstream:",
		"git-subrepo:",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("commit message missing %q:\n%s", want, msg)
		}
	}
}

func TestCommitRejectsRefThatPredatesUpstreamHead(t *testing.T) {
	bare, _ := newUpstream(t, "master")
	root, e := newMainline(t)

	if _, err := e.Clone(bare, "foo", subrepo.CloneOptions{}); err != nil {
		t.Fatalf("Clone: %v", err)
	}

	// An arbitrary unrelated commit doesn't contain upstream_head.
	writeAndCommit(t, root, "stray.txt", "x", "add stray.txt")
	strayHead := strings.TrimSpace(git(t, root, "rev-parse", "HEAD"))

	if _, err := e.Commit("foo", strayHead, subrepo.CommitOptions{Command: "commit"}); err == nil {
		t.Fatal("expected Commit to reject a ref that does not contain upstream_head")
	}
	if _, err := e.Commit("foo", strayHead, subrepo.CommitOptions{Command: "commit", Force: true}); err != nil {
		t.Fatalf("expected --force to override the ancestry check, got %v", err)
	}
}

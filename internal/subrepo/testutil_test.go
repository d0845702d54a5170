package subrepo_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/git-subrepo/git-subrepo/internal/gitrepo"
	"github.com/git-subrepo/git-subrepo/internal/subrepo"
)

func git(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("git %v: %v\n%s", args, err, out)
	}
	return string(out)
}

// newUpstream creates a bare repository with one commit on branch.
func newUpstream(t *testing.T, branch string) (dir string, headSHA string) {
	t.Helper()
	work := t.TempDir()
	git(t, work, "init", "-q")
	git(t, work, "config", "user.email", "upstream@example.com")
	git(t, work, "config", "user.name", "Upstream")
	if err := os.WriteFile(filepath.Join(work, "README.md"), []byte("upstream\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	git(t, work, "add", ".")
	git(t, work, "commit", "-q", "-m", "upstream initial")
	git(t, work, "branch", "-M", branch)

	bare := t.TempDir()
	git(t, bare, "init", "-q", "--bare")
	git(t, work, "push", "-q", bare, branch)

	head, err := gitrepo.New(work).HeadCommit()
	if err != nil {
		t.Fatalf("HeadCommit: %v", err)
	}
	return bare, head
}

func addUpstreamCommit(t *testing.T, bare, branch, fileContents string) string {
	t.Helper()
	work := t.TempDir()
	git(t, work, "clone", "-q", bare, ".")
	git(t, work, "config", "user.email", "upstream@example.com")
	git(t, work, "config", "user.name", "Upstream")
	if err := os.WriteFile(filepath.Join(work, "README.md"), []byte(fileContents), 0o644); err != nil {
		t.Fatal(err)
	}
	git(t, work, "add", ".")
	git(t, work, "commit", "-q", "-m", "upstream follow-up")
	git(t, work, "push", "-q", "origin", branch)

	head, err := gitrepo.New(work).HeadCommit()
	if err != nil {
		t.Fatalf("HeadCommit: %v", err)
	}
	return head
}

// newMainline creates a clean, top-level mainline repo with one commit
// on branch "main" and returns its Engine.
func newMainline(t *testing.T) (root string, e *subrepo.Engine) {
	t.Helper()
	root = t.TempDir()
	git(t, root, "init", "-q")
	git(t, root, "config", "user.email", "mainline@example.com")
	git(t, root, "config", "user.name", "Mainline")
	if err := os.WriteFile(filepath.Join(root, "TOP.md"), []byte("top\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	git(t, root, "add", ".")
	git(t, root, "commit", "-q", "-m", "mainline initial")
	git(t, root, "branch", "-M", "main")

	d := gitrepo.New(root)
	e = subrepo.New(d, root, "test")
	return root, e
}

func readFile(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func writeAndCommit(t *testing.T, root, relPath, contents, msg string) {
	t.Helper()
	abs := filepath.Join(root, relPath)
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(abs, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	git(t, root, "add", ".")
	git(t, root, "commit", "-q", "-m", msg)
}

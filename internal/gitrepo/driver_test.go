package gitrepo_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/git-subrepo/git-subrepo/internal/gitrepo"
)

func initRepo(t *testing.T, dir string) gitrepo.Driver {
	t.Helper()
	run(t, dir, "init", "-q")
	run(t, dir, "config", "user.email", "test@example.com")
	run(t, dir, "config", "user.name", "Test")
	return gitrepo.New(dir)
}

func run(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("git %v: %v\n%s", args, err, out)
	}
	return string(out)
}

func commitFile(t *testing.T, dir, name, contents, msg string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(filepath.Join(dir, name)), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	run(t, dir, "add", ".")
	run(t, dir, "commit", "-q", "-m", msg)
}

func TestVersionAndTopLevel(t *testing.T) {
	dir := t.TempDir()
	d := initRepo(t, dir)

	v, err := d.Version()
	if err != nil {
		t.Fatalf("Version: %v", err)
	}
	if v == "" {
		t.Fatal("expected non-empty version banner")
	}

	if !d.IsInsideWorkTree() {
		t.Fatal("expected IsInsideWorkTree true")
	}

	top, err := d.TopLevel()
	if err != nil {
		t.Fatalf("TopLevel: %v", err)
	}
	if filepath.Clean(top) != filepath.Clean(dir) {
		t.Fatalf("TopLevel = %q, want %q", top, dir)
	}
}

func TestRevParseAndRefExists(t *testing.T) {
	dir := t.TempDir()
	d := initRepo(t, dir)
	commitFile(t, dir, "a.txt", "hello", "first")

	sha, err := d.RevParse("HEAD")
	if err != nil {
		t.Fatalf("RevParse: %v", err)
	}
	if len(sha) != 40 {
		t.Fatalf("expected a full sha, got %q", sha)
	}

	if !d.RefExists("refs/heads/master") && !d.RefExists("refs/heads/main") {
		t.Fatal("expected default branch ref to exist")
	}

	if d.RefExists("refs/heads/does-not-exist") {
		t.Fatal("expected nonexistent ref to report false")
	}
}

func TestCleanlinessChecks(t *testing.T) {
	dir := t.TempDir()
	d := initRepo(t, dir)
	commitFile(t, dir, "a.txt", "hello", "first")

	if err := d.VerifyCleanState(); err != nil {
		t.Fatalf("expected clean state, got %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "a.txt"), []byte("changed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if !d.HasUnstagedChanges() {
		t.Fatal("expected HasUnstagedChanges true after edit")
	}
	if err := d.VerifyCleanState(); err == nil {
		t.Fatal("expected VerifyCleanState to fail with unstaged changes")
	}

	run(t, dir, "checkout", "--", "a.txt")
	if err := os.WriteFile(filepath.Join(dir, "untracked.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if !d.HasUntrackedFiles() {
		t.Fatal("expected HasUntrackedFiles true")
	}
}

func TestCommitTreeAndCatCommit(t *testing.T) {
	dir := t.TempDir()
	d := initRepo(t, dir)
	commitFile(t, dir, "a.txt", "hello", "first")

	head, err := d.HeadCommit()
	if err != nil {
		t.Fatalf("HeadCommit: %v", err)
	}

	c, err := d.CatCommit(head)
	if err != nil {
		t.Fatalf("CatCommit: %v", err)
	}
	if c.Message != "first\n" && c.Message != "first" {
		t.Fatalf("unexpected message %q", c.Message)
	}
	if len(c.Parents) != 0 {
		t.Fatalf("expected root commit to have no parents, got %v", c.Parents)
	}

	tree, err := d.WriteTree()
	if err != nil {
		t.Fatalf("WriteTree: %v", err)
	}
	newSHA, err := d.CommitTree(tree, "synthetic")
	if err != nil {
		t.Fatalf("CommitTree: %v", err)
	}
	if newSHA == head {
		t.Fatal("expected a distinct commit for a distinct message")
	}
}

func TestRemoveFromTree(t *testing.T) {
	dir := t.TempDir()
	d := initRepo(t, dir)
	commitFile(t, dir, "a.txt", "a", "first")
	commitFile(t, dir, ".gitrepo", "marker", "second")

	head, err := d.HeadCommit()
	if err != nil {
		t.Fatalf("HeadCommit: %v", err)
	}
	tree, err := d.Rev(head + "^{tree}")
	if err != nil {
		t.Fatalf("Rev: %v", err)
	}

	stripped, err := d.RemoveFromTree(tree, ".gitrepo")
	if err != nil {
		t.Fatalf("RemoveFromTree: %v", err)
	}
	if stripped == tree {
		t.Fatal("expected a distinct tree after stripping .gitrepo")
	}

	out := run(t, dir, "ls-tree", "--name-only", stripped)
	if out == "" {
		t.Fatal("expected remaining entries in stripped tree")
	}
}

func TestCheckoutTreeInto(t *testing.T) {
	dir := t.TempDir()
	d := initRepo(t, dir)
	commitFile(t, dir, "sub/file.txt", "payload", "seed")

	head, err := d.HeadCommit()
	if err != nil {
		t.Fatalf("HeadCommit: %v", err)
	}

	dest := filepath.Join(dir, "dest")
	if err := os.MkdirAll(dest, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := d.CheckoutTreeInto(dest, head); err != nil {
		t.Fatalf("CheckoutTreeInto: %v", err)
	}

	got, err := os.ReadFile(filepath.Join(dest, "sub", "file.txt"))
	if err != nil {
		t.Fatalf("reading materialised file: %v", err)
	}
	if string(got) != "payload" {
		t.Fatalf("got %q, want %q", got, "payload")
	}
}

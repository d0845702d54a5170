package gitrepo

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// Checkout switches the current branch.
func (d *DefaultDriver) Checkout(branch string) error {
	res := d.run("checkout", branch)
	return res.wrap("checkout")
}

// CreateBranch creates name at startPoint without checking it out.
func (d *DefaultDriver) CreateBranch(name, startPoint string) error {
	res := d.run("branch", name, startPoint)
	return res.wrap("branch")
}

// DeleteBranch removes a local branch.
func (d *DefaultDriver) DeleteBranch(name string, force bool) error {
	flag := "-d"
	if force {
		flag = "-D"
	}
	res := d.run("branch", flag, name)
	return res.wrap("branch -d")
}

// ResetHard moves HEAD, the index, and the working tree to commit.
func (d *DefaultDriver) ResetHard(commit string) error {
	res := d.run("reset", "--hard", commit)
	return res.wrap("reset --hard")
}

// ResetMixed moves HEAD and the index to commit, leaving the working
// tree untouched.
func (d *DefaultDriver) ResetMixed(commit string) error {
	res := d.run("reset", "--mixed", commit)
	return res.wrap("reset --mixed")
}

// RemoveIndexFile deletes the index outright, used when there is no HEAD
// to mixed-reset back to (§4.2.5 step 5, empty-repo case).
func (d *DefaultDriver) RemoveIndexFile() error {
	res := d.run("rev-parse", "--git-dir")
	if err := res.wrap("rev-parse --git-dir"); err != nil {
		return err
	}
	gitDir := res.Output
	if !filepath.IsAbs(gitDir) {
		gitDir = filepath.Join(d.Dir, gitDir)
	}
	path := filepath.Join(gitDir, "index")
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove index: %w", err)
	}
	return nil
}

// AddPath stages path (file or directory, recursively).
func (d *DefaultDriver) AddPath(path string) error {
	res := d.run("add", "--", path)
	return res.wrap("add")
}

// RemovePathTracked removes a path from both the index and the working
// tree, recursively, tolerating paths that aren't tracked.
func (d *DefaultDriver) RemovePathTracked(path string) error {
	res := d.run("rm", "-r", "--ignore-unmatch", "--", path)
	return res.wrap("rm -r")
}

// RemoveDirContents deletes everything inside absDir but keeps the
// directory itself, per §4.2.5 step 3.
func (d *DefaultDriver) RemoveDirContents(absDir string) error {
	entries, err := os.ReadDir(absDir)
	if err != nil {
		if os.IsNotExist(err) {
			return os.MkdirAll(absDir, 0o755)
		}
		return err
	}
	for _, e := range entries {
		if err := os.RemoveAll(filepath.Join(absDir, e.Name())); err != nil {
			return err
		}
	}
	return nil
}

// CheckoutTreeInto populates absWorkTree with the contents of commit by
// running `reset --hard` with GIT_WORK_TREE overridden. The index ends up
// a flat (repo-root-relative) copy of commit's tree, while the files
// themselves land under absWorkTree on disk — the "working-tree root for
// a single command" primitive §4.1 calls for.
func (d *DefaultDriver) CheckoutTreeInto(absWorkTree, commit string) error {
	res := d.run("rev-parse", "--git-dir")
	if err := res.wrap("rev-parse --git-dir"); err != nil {
		return err
	}
	gitDir := res.Output
	if !filepath.IsAbs(gitDir) {
		gitDir = filepath.Join(d.Dir, gitDir)
	}

	cmd := exec.Command("git", "reset", "--hard", commit)
	cmd.Dir = d.Dir
	cmd.Env = append(os.Environ(),
		"GIT_DIR="+gitDir,
		"GIT_WORK_TREE="+absWorkTree,
	)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("git reset --hard (work-tree=%s): %w: %s", absWorkTree, err, out)
	}
	return nil
}

package gitrepo

import (
	"strconv"
	"strings"
)

// Version returns the output of `git version`, e.g. "git version 2.43.0".
func (d *DefaultDriver) Version() (string, error) {
	res := d.run("version")
	if err := res.wrap("version"); err != nil {
		return "", err
	}
	return res.Output, nil
}

// TopLevel returns the absolute path of the working tree root, the same
// check §6.3 requires before any command proceeds.
func (d *DefaultDriver) TopLevel() (string, error) {
	res := d.run("rev-parse", "--show-toplevel")
	if err := res.wrap("rev-parse --show-toplevel"); err != nil {
		return "", err
	}
	return res.Output, nil
}

// IsInsideWorkTree reports whether Dir sits inside a git working tree.
func (d *DefaultDriver) IsInsideWorkTree() bool {
	res := d.run("rev-parse", "--is-inside-work-tree")
	return res.Ok() && res.Output == "true"
}

// RevParse resolves any revision expression to a full commit sha.
func (d *DefaultDriver) RevParse(rev string) (string, error) {
	res := d.run("rev-parse", "--verify", "--quiet", rev+"^{commit}")
	if err := res.wrap("rev-parse"); err != nil {
		return "", err
	}
	return res.Output, nil
}

// Rev resolves any rev expression verbatim (commit-ish or tree-ish),
// unlike RevParse which pins the result to a commit object.
func (d *DefaultDriver) Rev(rev string) (string, error) {
	res := d.run("rev-parse", "--verify", "--quiet", rev)
	if err := res.wrap("rev-parse"); err != nil {
		return "", err
	}
	return res.Output, nil
}

// ShortSHA returns the abbreviated form of a commit id.
func (d *DefaultDriver) ShortSHA(rev string) (string, error) {
	res := d.run("rev-parse", "--short", rev)
	if err := res.wrap("rev-parse --short"); err != nil {
		return "", err
	}
	return res.Output, nil
}

// RefExists reports whether a full ref name (refs/heads/..., refs/tags/...,
// refs/subrepo/...) exists; short branch names are not resolved.
func (d *DefaultDriver) RefExists(ref string) bool {
	res := d.run("show-ref", "--verify", "--quiet", ref)
	return res.Ok()
}

// IsAncestor reports whether ancestor is reachable from descendant.
func (d *DefaultDriver) IsAncestor(ancestor, descendant string) (bool, error) {
	res := d.run("merge-base", "--is-ancestor", ancestor, descendant)
	if res.Ok() {
		return true, nil
	}
	if exitErr, ok := res.Err.(interface{ ExitCode() int }); ok && exitErr.ExitCode() == 1 {
		return false, nil
	}
	return false, res.wrap("merge-base --is-ancestor")
}

// CommitCount returns the number of commits reachable in revRange
// (e.g. "base..tip").
func (d *DefaultDriver) CommitCount(revRange string) (int, error) {
	res := d.run("rev-list", "--count", revRange)
	if err := res.wrap("rev-list --count"); err != nil {
		return 0, err
	}
	return strconv.Atoi(strings.TrimSpace(res.Output))
}

// ListRefs lists every ref under the given prefix (e.g. "refs/subrepo/foo/").
func (d *DefaultDriver) ListRefs(prefix string) ([]string, error) {
	res := d.run("for-each-ref", "--format=%(refname)", prefix)
	if err := res.wrap("for-each-ref"); err != nil {
		return nil, err
	}
	if res.Output == "" {
		return nil, nil
	}
	return strings.Split(res.Output, "\n"), nil
}

// ResolveRef returns the commit a ref currently points at.
func (d *DefaultDriver) ResolveRef(ref string) (string, error) {
	return d.RevParse(ref)
}

// UpdateRef creates or moves ref to point at commit.
func (d *DefaultDriver) UpdateRef(ref, commit string) error {
	res := d.run("update-ref", ref, commit)
	return res.wrap("update-ref")
}

// DeleteRef removes ref, if present.
func (d *DefaultDriver) DeleteRef(ref string) error {
	if !d.RefExists(ref) {
		return nil
	}
	res := d.run("update-ref", "-d", ref)
	return res.wrap("update-ref -d")
}

// CurrentBranch returns the short name of the checked-out branch, or an
// error if HEAD is detached.
func (d *DefaultDriver) CurrentBranch() (string, error) {
	res := d.run("symbolic-ref", "--short", "HEAD")
	if err := res.wrap("symbolic-ref"); err != nil {
		return "", err
	}
	return res.Output, nil
}

// HeadCommit returns the commit HEAD points at.
func (d *DefaultDriver) HeadCommit() (string, error) {
	return d.RevParse("HEAD")
}

// HasHead reports whether HEAD resolves to a commit at all (false for a
// freshly `git init`ed repository with no commits).
func (d *DefaultDriver) HasHead() bool {
	_, err := d.HeadCommit()
	return err == nil
}

// IsDetachedHead reports whether HEAD is not a symbolic ref to a branch.
func (d *DefaultDriver) IsDetachedHead() bool {
	_, err := d.CurrentBranch()
	return err != nil
}

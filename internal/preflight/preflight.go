// Package preflight performs the repo-is-ready checks every subrepo
// command requires before it touches anything (§4.1, §6.3, §7).
package preflight

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/git-subrepo/git-subrepo/internal/gitrepo"
	"github.com/git-subrepo/git-subrepo/internal/refs"
)

// MinGitVersion is the lowest git version this tool supports (§6.3).
const MinGitVersion = "1.7"

// CheckEnvironment validates the ambient conditions every command needs:
// git is new enough, we're inside a working tree, and we're at its top
// level (§6.3).
func CheckEnvironment(d gitrepo.Driver, cwd string) error {
	version, err := d.Version()
	if err != nil {
		return fmt.Errorf("git-subrepo: git not found on PATH: %w", err)
	}
	if ok, err := versionAtLeast(version, MinGitVersion); err != nil {
		return fmt.Errorf("git-subrepo: could not parse %q: %w", version, err)
	} else if !ok {
		return fmt.Errorf("git-subrepo: requires git >= %s, found %q", MinGitVersion, version)
	}

	if !d.IsInsideWorkTree() {
		return fmt.Errorf("git-subrepo: not inside a git working tree")
	}

	top, err := d.TopLevel()
	if err != nil {
		return fmt.Errorf("git-subrepo: %w", err)
	}
	if normalize(top) != normalize(cwd) {
		return fmt.Errorf("git-subrepo: must be run from the top level of the working tree (%s)", top)
	}

	return nil
}

// CheckOnBranch validates that HEAD is a real, non-synthesised branch
// (§6.3: refuses detached HEAD, anonymous branches, and subrepo/* branches).
func CheckOnBranch(d gitrepo.Driver) (string, error) {
	if d.IsDetachedHead() {
		return "", fmt.Errorf("git-subrepo: HEAD is detached; check out a branch first")
	}
	branch, err := d.CurrentBranch()
	if err != nil {
		return "", fmt.Errorf("git-subrepo: not on a branch: %w", err)
	}
	if refs.IsSynthBranch(branch) {
		return "", fmt.Errorf("git-subrepo: refusing to run on synthesised branch %q", branch)
	}
	return branch, nil
}

// CheckClean validates there are no staged changes, unstaged changes or
// untracked files, per the "state errors" class in §7.
func CheckClean(d gitrepo.Driver) error {
	if err := d.VerifyCleanState(); err != nil {
		return fmt.Errorf("git-subrepo: %w", err)
	}
	return nil
}

// Ready runs the full suite of checks a mutating subrepo command needs:
// environment, a real branch checked out, and a clean worktree. It
// returns the current branch name on success.
func Ready(d gitrepo.Driver, cwd string) (string, error) {
	if err := CheckEnvironment(d, cwd); err != nil {
		return "", err
	}
	branch, err := CheckOnBranch(d)
	if err != nil {
		return "", err
	}
	if err := CheckClean(d); err != nil {
		return "", err
	}
	return branch, nil
}

func normalize(path string) string {
	return strings.TrimRight(strings.ReplaceAll(path, "\\", "/"), "/")
}

// versionAtLeast compares "git version X.Y.Z..." banners loosely by
// major.minor, per §6.3 ("detected by string-comparing the version banner").
func versionAtLeast(banner, min string) (bool, error) {
	fields := strings.Fields(banner)
	var verStr string
	for _, f := range fields {
		if len(f) > 0 && (f[0] >= '0' && f[0] <= '9') {
			verStr = f
			break
		}
	}
	if verStr == "" {
		return false, fmt.Errorf("no version token in %q", banner)
	}
	gotMajor, gotMinor, err := majorMinor(verStr)
	if err != nil {
		return false, err
	}
	wantMajor, wantMinor, err := majorMinor(min)
	if err != nil {
		return false, err
	}
	if gotMajor != wantMajor {
		return gotMajor > wantMajor, nil
	}
	return gotMinor >= wantMinor, nil
}

func majorMinor(v string) (int, int, error) {
	parts := strings.SplitN(v, ".", 3)
	if len(parts) < 2 {
		return 0, 0, fmt.Errorf("malformed version %q", v)
	}
	major, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, err
	}
	minor, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, err
	}
	return major, minor, nil
}

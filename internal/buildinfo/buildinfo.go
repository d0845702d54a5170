// Package buildinfo carries the tool's own version and provenance,
// used both by the `version` command and embedded in every commit
// message the engine produces (§4.3).
package buildinfo

import (
	"os/exec"
	"strings"
)

// Version is overridden at link time with -ldflags "-X ...Version=...".
var Version = "dev"

// OwnOriginAndCommit best-effort reports the remote URL and commit of
// the git-subrepo binary's own source checkout, if it is being run
// from inside one (e.g. during development). Both return values are
// empty when undeterminable; callers must tolerate that.
func OwnOriginAndCommit(dir string) (origin, commit string) {
	if out, err := run(dir, "rev-parse", "HEAD"); err == nil {
		commit = strings.TrimSpace(out)
	}
	if out, err := run(dir, "config", "--get", "remote.origin.url"); err == nil {
		origin = strings.TrimSpace(out)
	}
	return origin, commit
}

func run(dir string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.Output()
	return string(out), err
}

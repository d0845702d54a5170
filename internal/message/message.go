// Package message builds the canonical, machine-parseable commit
// message every mainline commit created by commit/pull/clone carries
// (§4.3).
package message

import "fmt"

// Fields holds everything the template needs.
type Fields struct {
	Command       string // e.g. "commit", "pull", "clone"
	OriginalArgs  string
	Subdir        string
	MergedShort   string // short sha of the source ref squashed in
	UpstreamURL   string
	UpstreamBranch string
	UpstreamShort string // short sha of the upstream head
	ToolVersion   string
	ToolOrigin    string // tool's own git remote, if derivable; may be ""
	ToolCommit    string // tool's own commit, if derivable; may be ""
}

// Build renders the canonical message body.
func Build(f Fields) string {
	msg := fmt.Sprintf("git subrepo %s %s\n\n", f.Command, f.OriginalArgs)
	msg += "subrepo:\n"
	msg += fmt.Sprintf("  subdir:   %q\n", f.Subdir)
	msg += fmt.Sprintf("  merged:   %q\n", f.MergedShort)
	msg += "upstream:\n"
	msg += fmt.Sprintf("  origin:   %q\n", f.UpstreamURL)
	msg += fmt.Sprintf("  branch:   %q\n", f.UpstreamBranch)
	msg += fmt.Sprintf("  commit:   %q\n", f.UpstreamShort)
	msg += "git-subrepo:\n"
	msg += fmt.Sprintf("  version:  %q\n", f.ToolVersion)
	msg += fmt.Sprintf("  origin:   %q\n", f.ToolOrigin)
	msg += fmt.Sprintf("  commit:   %q\n", f.ToolCommit)
	return msg
}

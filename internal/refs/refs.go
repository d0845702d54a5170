// Package refs centralises construction of the non-persistent ref
// namespace a subrepo uses: refs/subrepo/<subdir>/{branch,commit,fetch,pull,push}.
// Grounded on the donor's RepoBranchRef/ParseRepoFromBranch helpers
// (core/internal/grove/branch_ref.go), generalised from GitGrove's
// hierarchical repo-branch refs to this spec's flat per-subdir namespace.
package refs

import (
	"fmt"
	"strings"
)

// Kind identifies one of the five tips tracked per subrepo.
type Kind string

const (
	Branch Kind = "branch"
	Commit Kind = "commit"
	Fetch  Kind = "fetch"
	Pull   Kind = "pull"
	Push   Kind = "push"
)

var allKinds = []Kind{Branch, Commit, Fetch, Pull, Push}

// All returns every ref kind tracked for a subrepo, in a fixed order
// suitable for deterministic `status --verbose` output.
func All() []Kind { return allKinds }

// Namespace builds and parses refs/subrepo/<subdir>/* ref names for one
// subrepo.
type Namespace struct {
	Subdir string
}

// For returns the namespace rooted at subdir.
func For(subdir string) Namespace {
	return Namespace{Subdir: strings.Trim(subdir, "/")}
}

// Prefix is the ref path shared by every ref of this subrepo, with a
// trailing slash so it can be used directly with for-each-ref/update-ref -d.
func (n Namespace) Prefix() string {
	return fmt.Sprintf("refs/subrepo/%s/", n.Subdir)
}

// Ref returns the full ref name for one kind.
func (n Namespace) Ref(kind Kind) string {
	return n.Prefix() + string(kind)
}

// SynthBranch is the local branch `subrepo/<subdir>` built by `branch`.
func (n Namespace) SynthBranch() string {
	return fmt.Sprintf("subrepo/%s", n.Subdir)
}

// PushBranch is the temporary rebase target `subrepo-push/<subdir>`.
func (n Namespace) PushBranch() string {
	return fmt.Sprintf("subrepo-push/%s", n.Subdir)
}

// RemoteName is the convenience remote `subrepo/<subdir>`.
func (n Namespace) RemoteName() string {
	return fmt.Sprintf("subrepo/%s", n.Subdir)
}

// IsSynthBranch reports whether branchName (short form) is a subrepo
// branch of any kind, used by preflight to reject operating on one
// (§6.3: "Refuses to operate ... on a subrepo/* branch").
func IsSynthBranch(branchName string) bool {
	return strings.HasPrefix(branchName, "subrepo/") || strings.HasPrefix(branchName, "subrepo-push/")
}

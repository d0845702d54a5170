// Package gitrepo is the only place in this module that knows how to talk
// to the git binary. Every other package depends on the Driver interface,
// never on os/exec directly.
package gitrepo

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"

	"github.com/rs/zerolog/log"
)

// Result captures the outcome of a single git invocation.
type Result struct {
	Args   []string
	Output string
	Err    error
}

// Ok reports whether the command exited zero.
func (r Result) Ok() bool { return r.Err == nil }

// Driver is the narrow, typed surface this module needs from git. It
// exists so the subrepo engine can be tested against a fake without a
// real repository, and so there is exactly one place that shells out.
type Driver interface {
	// Environment
	Version() (string, error)
	TopLevel() (string, error)
	IsInsideWorkTree() bool

	// Worktree cleanliness, grounded on the donor's
	// HasStagedChanges/HasUnstagedChanges/HasUntrackedFiles/VerifyCleanState.
	HasStagedChanges() bool
	HasUnstagedChanges() bool
	HasUntrackedFiles() bool
	VerifyCleanState() error

	// Revisions and refs
	RevParse(rev string) (string, error)
	ShortSHA(rev string) (string, error)
	RefExists(ref string) bool
	IsAncestor(ancestor, descendant string) (bool, error)
	CommitCount(revRange string) (int, error)
	ListRefs(prefix string) ([]string, error)
	ResolveRef(ref string) (string, error)
	UpdateRef(ref, commit string) error
	DeleteRef(ref string) error

	// HEAD / branch state
	CurrentBranch() (string, error)
	HeadCommit() (string, error)
	HasHead() bool
	IsDetachedHead() bool

	// Remotes
	LsRemote(url string) (map[string]string, error)
	RemoteDefaultBranch(url string) (string, error)
	RemoteGetURL(name string) (string, error)
	RemoteAdd(name, url string) error
	RemoteSetURL(name, url string) error
	RemoteRemove(name string) error

	// Fetch / push
	Fetch(remote, branch string) (string, error)
	Push(remote, refspec string, force bool) (string, error)

	// Worktree mutation
	Checkout(branch string) error
	CreateBranch(name, startPoint string) error
	DeleteBranch(name string, force bool) error
	ResetHard(commit string) error
	ResetMixed(commit string) error
	RemoveIndexFile() error
	AddPath(path string) error
	RemovePathTracked(path string) error
	RemoveDirContents(absDir string) error
	CheckoutTreeInto(workTree, commit string) error

	// Low-level object creation, used by the history rewriter and commit
	Rev(rev string) (string, error)
	CommitTree(tree, message string, parents ...string) (string, error)
	WriteTree() (string, error)
	CatCommit(sha string) (Commit, error)
	RevList(args ...string) ([]string, error)
	SubtreePath(commitOrTree, path string) (string, error)
	RemoveFromTree(tree, path string) (string, error)

	// Rebase
	Rebase(branch, onto string) (conflict bool, output string, err error)
	RebaseAbort() error
}

// Commit is the minimal view of a commit object needed by the history
// rewriter: its tree, parents and message (CatCommit reads them with
// rev-parse, rev-list --parents and log).
type Commit struct {
	SHA     string
	Tree    string
	Parents []string
	Message string
}

// DefaultDriver shells out to the system git binary.
type DefaultDriver struct {
	Dir string
}

// New returns a Driver rooted at dir (the mainline working tree).
func New(dir string) Driver {
	return &DefaultDriver{Dir: dir}
}

func (d *DefaultDriver) run(args ...string) Result {
	cmd := exec.Command("git", args...)
	cmd.Dir = d.Dir

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	err := cmd.Run()
	res := Result{Args: args, Output: strings.TrimSpace(out.String()), Err: err}

	log.Debug().Strs("args", args).Int("exit", exitCode(err)).Msg("git")
	return res
}

func (d *DefaultDriver) runWithStdin(stdin string, args ...string) Result {
	cmd := exec.Command("git", args...)
	cmd.Dir = d.Dir
	cmd.Stdin = strings.NewReader(stdin)

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	err := cmd.Run()
	res := Result{Args: args, Output: strings.TrimSpace(out.String()), Err: err}
	log.Debug().Strs("args", args).Int("exit", exitCode(err)).Msg("git")
	return res
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	if exitErr, ok := err.(*exec.ExitError); ok {
		return exitErr.ExitCode()
	}
	return -1
}

func (r Result) wrap(verb string) error {
	if r.Err == nil {
		return nil
	}
	return fmt.Errorf("git %s: %w: %s", verb, r.Err, r.Output)
}

package subrepo

import (
	"errors"
	"fmt"

	"github.com/git-subrepo/git-subrepo/internal/cliexit"
	"github.com/git-subrepo/git-subrepo/internal/refs"
	"github.com/git-subrepo/git-subrepo/internal/store"
	"github.com/rs/zerolog/log"
)

// PullOptions parameterises `pull` (§4.2.4). RemoteOverride/BranchOverride
// and Update mirror the same fields commit/clone use, applied to the
// final squash commit.
type PullOptions struct {
	Update         bool
	RemoteOverride string
	BranchOverride string
	OriginalArgs   string
}

// Pull fetches upstream, rebases local subrepo changes on top of it, and
// squashes the result back into mainline (§4.2.4).
func (e *Engine) Pull(subdir string, originalBranch string, opts PullOptions) (string, error) {
	d := e.Driver
	ns := refs.For(subdir)

	rec, err := store.Load(e.gitrepoPath(subdir))
	if err != nil {
		return "", fmt.Errorf("%s is not a subrepo (no .gitrepo): %w", subdir, err)
	}

	upstreamHead, err := e.Fetch(subdir)
	if err != nil {
		return "", err
	}
	if upstreamHead == rec.Commit {
		return "", cliexit.NoOp(fmt.Sprintf("%s is up to date with %s", subdir, upstreamHead))
	}

	branchName := ns.SynthBranch()
	if d.RefExists("refs/heads/" + branchName) {
		if err := d.DeleteBranch(branchName, true); err != nil {
			return "", err
		}
	}

	_, berr := e.Branch(subdir, BranchOptions{Force: true})
	var noOp *cliexit.Error
	switch {
	case berr == nil:
		log.Info().Str("subdir", subdir).Msg("rebasing synthesised branch onto fetched upstream")
		conflict, output, rerr := d.Rebase(branchName, ns.Ref(refs.Fetch))
		if rerr != nil {
			return "", fmt.Errorf("rebase %s onto %s: %w", branchName, ns.Ref(refs.Fetch), rerr)
		}
		if conflict {
			return "", cliexit.PullConflict(
				fmt.Sprintf("rebase conflict while pulling %s; resolve, then run `git subrepo commit %s`\n"+
					"(or run `git rebase --abort && git checkout %s && git subrepo clean %s` to give up)\n\n%s",
					subdir, subdir, originalBranch, subdir, output),
				errors.New("rebase stopped on conflict"),
			)
		}
	case errors.As(berr, &noOp):
		// No local subrepo changes since the last pull/clone: the
		// synthesised branch is just the fetched tip (§4.2.4 step 4).
		if err := d.CreateBranch(branchName, ns.Ref(refs.Fetch)); err != nil {
			return "", err
		}
	default:
		return "", berr
	}

	if err := d.Checkout(originalBranch); err != nil {
		return "", fmt.Errorf("checking out %s: %w", originalBranch, err)
	}

	newCommit, err := e.Commit(subdir, branchName, CommitOptions{
		Force:          true,
		Update:         opts.Update,
		RemoteOverride: opts.RemoteOverride,
		BranchOverride: opts.BranchOverride,
		Command:        "pull",
		OriginalArgs:   opts.OriginalArgs,
	})
	if err != nil {
		return "", err
	}

	if err := d.UpdateRef(ns.Ref(refs.Pull), newCommit); err != nil {
		return "", err
	}

	return newCommit, nil
}

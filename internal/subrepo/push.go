package subrepo

import (
	"errors"
	"fmt"

	"github.com/git-subrepo/git-subrepo/internal/cliexit"
	"github.com/git-subrepo/git-subrepo/internal/refs"
	"github.com/git-subrepo/git-subrepo/internal/store"
	"github.com/rs/zerolog/log"
)

// PushOptions parameterises `push` (§4.2.6).
type PushOptions struct {
	// BranchName, if non-empty, is an already-existing local branch
	// pushed as-is instead of a freshly synthesised one (§9 open
	// question iii).
	BranchName string
	Force      bool
}

// Push synthesises (or reuses) a branch whose history matches what
// upstream would have received directly, rebases it onto the fetched
// upstream tip, and pushes it to remote:branch.
func (e *Engine) Push(subdir, originalBranch string, opts PushOptions) error {
	d := e.Driver
	ns := refs.For(subdir)

	rec, err := store.Load(e.gitrepoPath(subdir))
	if err != nil {
		return fmt.Errorf("%s is not a subrepo (no .gitrepo): %w", subdir, err)
	}

	candidate := opts.BranchName
	isTemp := false

	if candidate == "" {
		isTemp = true
		pushBranch := ns.PushBranch()

		if d.RefExists("refs/heads/" + pushBranch) {
			return fmt.Errorf("%s already exists from a previous aborted push; resolve or `git subrepo clean %s` first", pushBranch, subdir)
		}

		if _, err := e.Fetch(subdir); err != nil {
			return err
		}

		_, berr := e.branchNamed(subdir, pushBranch, false)
		var noOp *cliexit.Error
		if errors.As(berr, &noOp) {
			return cliexit.NoOp(fmt.Sprintf("no new commits in %s to push", subdir))
		}
		if berr != nil {
			return berr
		}

		log.Info().Str("subdir", subdir).Msg("rebasing push candidate onto fetched upstream")
		conflict, output, rerr := d.Rebase(pushBranch, ns.Ref(refs.Fetch))
		if rerr != nil {
			return fmt.Errorf("rebase %s onto %s: %w", pushBranch, ns.Ref(refs.Fetch), rerr)
		}
		if conflict {
			return cliexit.PushConflict(
				fmt.Sprintf("rebase conflict while preparing to push %s; resolve, then run `git subrepo push %s %s`\n"+
					"(or run `git rebase --abort && git checkout %s && git subrepo clean %s` to give up)\n\n%s",
					subdir, subdir, pushBranch, originalBranch, subdir, output),
				errors.New("rebase stopped on conflict"),
			)
		}

		if err := d.Checkout(originalBranch); err != nil {
			return fmt.Errorf("checking out %s: %w", originalBranch, err)
		}
		candidate = pushBranch
	} else if !d.RefExists("refs/heads/" + candidate) {
		return fmt.Errorf("branch %q does not exist", candidate)
	}

	if !opts.Force {
		upstreamHead := rec.Commit
		if fetchRef := ns.Ref(refs.Fetch); d.RefExists(fetchRef) {
			if h, err := d.ResolveRef(fetchRef); err == nil {
				upstreamHead = h
			}
		}
		ok, err := d.IsAncestor(upstreamHead, candidate)
		if err != nil {
			return fmt.Errorf("checking upstream ancestry: %w", err)
		}
		if !ok {
			return fmt.Errorf("%s does not contain upstream head %s; use --force to override", candidate, upstreamHead)
		}
	}

	refspec := fmt.Sprintf("%s:refs/heads/%s", candidate, rec.Branch)
	if _, err := d.Push(rec.Remote, refspec, opts.Force); err != nil {
		return fmt.Errorf("push %s to %s: %w", candidate, rec.Remote, err)
	}

	candidateCommit, err := d.RevParse(candidate)
	if err != nil {
		return err
	}
	if err := d.UpdateRef(ns.Ref(refs.Push), candidateCommit); err != nil {
		return err
	}

	if isTemp {
		if err := d.DeleteBranch(candidate, true); err != nil {
			return err
		}
	}

	log.Info().Str("subdir", subdir).Str("remote", rec.Remote).Str("branch", rec.Branch).Msg("pushed")
	return nil
}

package subrepo

import (
	"fmt"

	"github.com/git-subrepo/git-subrepo/internal/cliexit"
	"github.com/git-subrepo/git-subrepo/internal/gitrepo"
	"github.com/git-subrepo/git-subrepo/internal/refs"
	"github.com/git-subrepo/git-subrepo/internal/store"
	"github.com/rs/zerolog/log"
)

// synthCommit is the state the rewrite walk tracks for each new commit
// it produces, keyed by the new commit's own sha, before the
// finalisation pass (parent rewrite II + tree rewrite) runs over them.
type synthCommit struct {
	tree    string
	parents []string
	message string
}

// BranchOptions parameterises `branch` (§4.2.3).
type BranchOptions struct {
	Force bool
}

// Branch synthesises the upstream-equivalent branch subrepo/<subdir>
// out of subdir's slice of mainline history since the last pull/clone.
// When there are no new commits to extract it returns a no-op
// *cliexit.Error (cliexit.CodeNoOp).
func (e *Engine) Branch(subdir string, opts BranchOptions) (string, error) {
	return e.branchNamed(subdir, refs.For(subdir).SynthBranch(), opts.Force)
}

func (e *Engine) branchNamed(subdir, branchName string, force bool) (string, error) {
	d := e.Driver

	if d.RefExists("refs/heads/" + branchName) {
		if !force {
			return branchName, nil
		}
		if err := d.DeleteBranch(branchName, true); err != nil {
			return "", err
		}
	}

	rec, err := store.Load(e.gitrepoPath(subdir))
	if err != nil {
		return "", fmt.Errorf("%s is not a subrepo (no .gitrepo): %w", subdir, err)
	}
	if rec.Parent == "" {
		return "", fmt.Errorf("%s has no recorded parent commit; cannot synthesise a branch", subdir)
	}

	originalHead, err := d.HeadCommit()
	if err != nil {
		return "", err
	}

	revRange := rec.Parent + ".." + originalHead
	n, err := d.CommitCount(revRange)
	if err != nil {
		return "", err
	}
	if n < 2 {
		return "", cliexit.NoOp(fmt.Sprintf("no new commits in %s since %s", subdir, rec.Parent))
	}

	oldShas, err := d.RevList("--topo-order", "--reverse", revRange)
	if err != nil {
		return "", err
	}

	var upstreamBase string
	if rec.Commit != "" {
		if sha, err := d.RevParse(rec.Commit); err == nil {
			upstreamBase = sha
		}
	}

	tip, err := rewriteHistory(d, oldShas, rec.Parent, subdir, upstreamBase)
	if err != nil {
		return "", err
	}
	if tip == "" {
		return "", cliexit.NoOp(fmt.Sprintf("no new commits in %s since %s", subdir, rec.Parent))
	}

	if err := d.CreateBranch(branchName, tip); err != nil {
		return "", err
	}
	if err := d.ResetHard(originalHead); err != nil {
		return "", err
	}

	log.Info().Str("subdir", subdir).Str("branch", branchName).Str("tip", tip).Msg("synthesised subrepo branch")
	return branchName, nil
}

// rewriteHistory performs the three-pass rewrite of §4.2.3 steps 3-7 in
// two walks: a forward walk that drops the detach-point parent and
// re-roots each commit's tree at subdir (collapsing commits that never
// touched it), and a finalisation walk that replaces the old pull-base
// root with upstreamBase (the recorded upstream commit, so the branch
// rebases onto the fetched upstream as an ordinary diff; when
// upstreamBase is "" the first real change becomes a parentless root)
// and strips .gitrepo from every remaining tree. Returns "" if fewer
// than two commits (the pull base plus at least one real change)
// survive the subdirectory rewrite.
func rewriteHistory(d gitrepo.Driver, oldShas []string, detachParent, subdir, upstreamBase string) (string, error) {
	oldToNew := make(map[string]string, len(oldShas))
	synth := make(map[string]synthCommit, len(oldShas))
	var order []string

	for _, old := range oldShas {
		c, err := d.CatCommit(old)
		if err != nil {
			return "", fmt.Errorf("reading commit %s: %w", old, err)
		}

		var newParents []string
		for _, p := range c.Parents {
			if p == detachParent {
				continue
			}
			if np, ok := oldToNew[p]; ok {
				newParents = append(newParents, np)
			}
		}

		newTree, terr := d.SubtreePath(old, subdir)
		if terr != nil {
			// Commit's tree doesn't contain subdir at all (shouldn't
			// happen once the subrepo exists, but collapse defensively
			// the same way a no-op touch would).
			if len(newParents) == 1 {
				oldToNew[old] = newParents[0]
				continue
			}
			return "", fmt.Errorf("commit %s has no %s subtree: %w", old, subdir, terr)
		}

		if len(newParents) == 1 {
			if prev, ok := synth[newParents[0]]; ok && prev.tree == newTree {
				oldToNew[old] = newParents[0]
				continue
			}
		}

		newSHA, err := d.CommitTree(newTree, c.Message, newParents...)
		if err != nil {
			return "", fmt.Errorf("commit-tree for %s: %w", old, err)
		}
		oldToNew[old] = newSHA
		synth[newSHA] = synthCommit{tree: newTree, parents: newParents, message: c.Message}
		order = append(order, newSHA)
	}

	if len(order) < 2 {
		return "", nil
	}

	root := order[0]
	finalized := make(map[string]string, len(order))
	finalized[root] = ""

	var tip string
	for _, sha := range order[1:] {
		sc := synth[sha]

		var adjParents []string
		for _, p := range sc.parents {
			if p == root {
				if upstreamBase != "" {
					adjParents = append(adjParents, upstreamBase)
				}
				continue
			}
			if f, ok := finalized[p]; ok {
				if f != "" {
					adjParents = append(adjParents, f)
				}
				continue
			}
			adjParents = append(adjParents, p)
		}

		strippedTree, err := d.RemoveFromTree(sc.tree, ".gitrepo")
		if err != nil {
			return "", fmt.Errorf("stripping .gitrepo from %s: %w", sha, err)
		}

		finalSHA, err := d.CommitTree(strippedTree, sc.message, adjParents...)
		if err != nil {
			return "", fmt.Errorf("finalising commit for %s: %w", sha, err)
		}
		finalized[sha] = finalSHA
		tip = finalSHA
	}

	return tip, nil
}

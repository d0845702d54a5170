package subrepo

import (
	"fmt"

	"github.com/git-subrepo/git-subrepo/internal/message"
	"github.com/git-subrepo/git-subrepo/internal/refs"
	"github.com/git-subrepo/git-subrepo/internal/store"
	"github.com/rs/zerolog/log"
)

// CommitOptions parameterises the squash-and-commit step shared by
// `clone` and `commit` (§4.2.1, §4.2.5).
type CommitOptions struct {
	// Force skips the ancestry check against the fetched upstream head.
	Force bool
	// Update overrides Remote/Branch in the .gitrepo record from CLI flags.
	Update bool
	RemoteOverride string
	BranchOverride string

	Command      string // for the commit message, e.g. "clone", "commit"
	OriginalArgs string
}

// Commit squashes the tree at commitRef (default subrepo/<subdir>, but
// callers always resolve the ref themselves) into <subdir>/ on the
// current mainline branch (§4.2.5).
func (e *Engine) Commit(subdir, commitRef string, opts CommitOptions) (string, error) {
	d := e.Driver
	ns := refs.For(subdir)

	resolved, err := d.RevParse(commitRef)
	if err != nil {
		return "", fmt.Errorf("commit ref %q does not resolve: %w", commitRef, err)
	}

	// upstreamHead is the fetched upstream tip (refs/subrepo/<subdir>/fetch),
	// not commitRef's own SHA: commitRef may be a rebased branch carrying
	// unpushed local commits, and §3/§8 property 1 require .gitrepo's
	// commit field to record upstream_head itself.
	var upstreamHead string
	fetchRef := ns.Ref(refs.Fetch)
	if d.RefExists(fetchRef) {
		upstreamHead, err = d.ResolveRef(fetchRef)
		if err != nil {
			return "", err
		}
	}

	if !opts.Force && upstreamHead != "" {
		ok, err := d.IsAncestor(upstreamHead, resolved)
		if err != nil {
			return "", fmt.Errorf("checking upstream ancestry: %w", err)
		}
		if !ok {
			return "", fmt.Errorf("%s does not contain the fetched upstream head %s; use --force to override", commitRef, upstreamHead)
		}
	}

	var originalHead string
	hadHead := d.HasHead()
	if hadHead {
		originalHead, err = d.HeadCommit()
		if err != nil {
			return "", err
		}
	}

	subdirAbs := e.absPath(subdir)
	if err := d.RemoveDirContents(subdirAbs); err != nil {
		return "", fmt.Errorf("clearing %s: %w", subdir, err)
	}

	if err := d.CheckoutTreeInto(subdirAbs, resolved); err != nil {
		return "", fmt.Errorf("materialising %s: %w", commitRef, err)
	}

	if hadHead {
		if err := d.ResetMixed(originalHead); err != nil {
			return "", fmt.Errorf("restoring index to %s: %w", originalHead, err)
		}
	} else {
		if err := d.RemoveIndexFile(); err != nil {
			return "", err
		}
	}

	rec, err := e.buildRecord(subdir, upstreamHead, originalHead, opts)
	if err != nil {
		return "", err
	}
	gitrepoPath := e.gitrepoPath(subdir)
	if err := store.Save(gitrepoPath, rec); err != nil {
		return "", fmt.Errorf("writing %s: %w", gitrepoPath, err)
	}

	if err := d.AddPath(subdirAbs); err != nil {
		return "", fmt.Errorf("staging %s: %w", subdir, err)
	}

	mergedShort, err := d.ShortSHA(resolved)
	if err != nil {
		return "", err
	}
	upstreamShort, err := d.ShortSHA(rec.Commit)
	if err != nil {
		return "", err
	}

	msg := message.Build(message.Fields{
		Command:        opts.Command,
		OriginalArgs:   opts.OriginalArgs,
		Subdir:         subdir,
		MergedShort:    mergedShort,
		UpstreamURL:    rec.Remote,
		UpstreamBranch: rec.Branch,
		UpstreamShort:  upstreamShort,
		ToolVersion:    e.ToolVersion,
		ToolOrigin:     e.ToolOrigin,
		ToolCommit:     e.ToolCommit,
	})

	var newCommit string
	if hadHead {
		tree, err := d.WriteTree()
		if err != nil {
			return "", err
		}
		newCommit, err = d.CommitTree(tree, msg, originalHead)
		if err != nil {
			return "", err
		}
		if err := d.ResetHard(newCommit); err != nil {
			return "", fmt.Errorf("fast-forwarding to new squash commit: %w", err)
		}
	} else {
		tree, err := d.WriteTree()
		if err != nil {
			return "", err
		}
		newCommit, err = d.CommitTree(tree, msg)
		if err != nil {
			return "", err
		}
		if err := d.ResetHard(newCommit); err != nil {
			return "", err
		}
	}

	if err := d.UpdateRef(ns.Ref(refs.Commit), resolved); err != nil {
		return "", err
	}

	log.Info().Str("subdir", subdir).Str("commit", newCommit).Msg("squashed subrepo content into mainline")
	return newCommit, nil
}

// buildRecord assembles the .gitrepo record to persist. upstreamHead is
// the resolved refs/subrepo/<subdir>/fetch tip (empty if nothing has
// ever been fetched for subdir, in which case the previously recorded
// commit is left untouched rather than replaced by a guess).
func (e *Engine) buildRecord(subdir, upstreamHead, originalHead string, opts CommitOptions) (store.Record, error) {
	var rec store.Record
	gitrepoPath := e.gitrepoPath(subdir)
	if existing, err := store.Load(gitrepoPath); err == nil {
		rec = existing
	}

	if opts.Update && opts.RemoteOverride != "" {
		rec.Remote = opts.RemoteOverride
	}
	if opts.Update && opts.BranchOverride != "" {
		rec.Branch = opts.BranchOverride
	}
	if rec.Remote == "" {
		rec.Remote = opts.RemoteOverride
	}
	if rec.Branch == "" {
		rec.Branch = opts.BranchOverride
	}

	if upstreamHead != "" {
		rec.Commit = upstreamHead
	}
	rec.Parent = originalHead
	rec.CmdVer = e.ToolVersion

	if rec.Remote == "" {
		return store.Record{}, fmt.Errorf("no remote recorded for %s; pass --remote or commit from a clone", subdir)
	}
	return rec, nil
}

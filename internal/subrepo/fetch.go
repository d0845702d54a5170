package subrepo

import (
	"fmt"

	"github.com/git-subrepo/git-subrepo/internal/refs"
	"github.com/git-subrepo/git-subrepo/internal/store"
	"github.com/rs/zerolog/log"
)

// Fetch fetches remote/branch from subdir's recorded .gitrepo and
// records the result (§4.2.2). It returns the fetched upstream commit.
func (e *Engine) Fetch(subdir string) (string, error) {
	rec, err := store.Load(e.gitrepoPath(subdir))
	if err != nil {
		return "", fmt.Errorf("%s is not a subrepo (no .gitrepo): %w", subdir, err)
	}

	d := e.Driver
	ns := refs.For(subdir)

	log.Info().Str("subdir", subdir).Str("remote", rec.Remote).Str("branch", rec.Branch).Msg("fetching")
	upstreamHead, err := d.Fetch(rec.Remote, rec.Branch)
	if err != nil {
		return "", fmt.Errorf("fetch %s %s: %w", rec.Remote, rec.Branch, err)
	}
	if err := d.UpdateRef(ns.Ref(refs.Fetch), upstreamHead); err != nil {
		return "", err
	}
	if err := ensureRemote(d, ns.RemoteName(), rec.Remote); err != nil {
		return "", err
	}
	return upstreamHead, nil
}

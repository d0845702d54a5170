package subrepo

import (
	"github.com/git-subrepo/git-subrepo/internal/refs"
	"github.com/rs/zerolog/log"
)

// CleanOptions parameterises `clean` (§4.2.8).
type CleanOptions struct {
	Force bool
}

// Clean removes the synthesised branches and convenience remote for
// subdir, and with Force, every ref under its namespace too.
func (e *Engine) Clean(subdir string, opts CleanOptions) error {
	d := e.Driver
	ns := refs.For(subdir)

	for _, branch := range []string{ns.SynthBranch(), ns.PushBranch()} {
		if d.RefExists("refs/heads/" + branch) {
			if err := d.DeleteBranch(branch, true); err != nil {
				return err
			}
			log.Info().Str("branch", branch).Msg("removed synthesised branch")
		}
	}

	if err := d.RemoteRemove(ns.RemoteName()); err != nil {
		return err
	}

	if opts.Force {
		existing, err := d.ListRefs(ns.Prefix())
		if err != nil {
			return err
		}
		for _, ref := range existing {
			if err := d.DeleteRef(ref); err != nil {
				return err
			}
		}
		log.Info().Str("subdir", subdir).Msg("removed all subrepo refs")
	}

	return nil
}

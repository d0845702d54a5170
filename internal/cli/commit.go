package cli

import (
	"fmt"

	"github.com/git-subrepo/git-subrepo/internal/cli/arg"
	"github.com/git-subrepo/git-subrepo/internal/refs"
	"github.com/rs/zerolog/log"
)

type commitCommand struct{}

func (commitCommand) Name() string        { return "commit" }
func (commitCommand) Description() string { return "Squash a subrepo branch into the mainline" }
func (commitCommand) AllowedOptions() []string {
	return []string{"fetch", "force"}
}

func (commitCommand) Run(ctx *Context, a arg.Args) error {
	if len(a.Positional) == 0 {
		return fmt.Errorf("git-subrepo: usage: git-subrepo commit <subdir> [<commit-ref>]")
	}
	subdir := a.Positional[0]

	if a.Bool("fetch") {
		if _, err := ctx.Engine.Fetch(subdir); err != nil {
			return err
		}
	}

	commitRef := refs.For(subdir).SynthBranch()
	if len(a.Positional) > 1 {
		commitRef = a.Positional[1]
	}

	newCommit, err := ctx.Engine.Commit(subdir, commitRef, commitOptions(a, "commit", ctx.RawArgs))
	if err != nil {
		return err
	}
	log.Info().Str("subdir", subdir).Str("commit", newCommit).Msg("committed")
	return nil
}

func init() { registerCommand(commitCommand{}) }

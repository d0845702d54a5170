package cli

import (
	"fmt"

	"github.com/git-subrepo/git-subrepo/internal/cli/arg"
	"github.com/rs/zerolog/log"
)

type cloneCommand struct{}

func (cloneCommand) Name() string        { return "clone" }
func (cloneCommand) Description() string { return "Embed a remote repository as a subrepo" }
func (cloneCommand) AllowedOptions() []string {
	return []string{"branch", "force"}
}

func (cloneCommand) Run(ctx *Context, a arg.Args) error {
	if len(a.Positional) == 0 {
		return fmt.Errorf("git-subrepo: usage: git-subrepo clone <url> [<subdir>]")
	}
	url := a.Positional[0]
	var subdir string
	if len(a.Positional) > 1 {
		subdir = a.Positional[1]
	}

	commit, err := ctx.Engine.Clone(url, subdir, cloneOptions(a, ctx.RawArgs))
	if err != nil {
		return err
	}
	log.Info().Str("commit", commit).Msg("clone complete")
	return nil
}

func init() { registerCommand(cloneCommand{}) }

package cli

import (
	"fmt"

	"github.com/git-subrepo/git-subrepo/internal/cli/arg"
	"github.com/rs/zerolog/log"
)

type pullCommand struct{}

func (pullCommand) Name() string        { return "pull" }
func (pullCommand) Description() string { return "Pull upstream changes into a subrepo" }
func (pullCommand) AllowedOptions() []string {
	return []string{"all", "branch", "remote", "update"}
}

func (pullCommand) Run(ctx *Context, a arg.Args) error {
	if a.Bool("update") && a.String("branch", "") == "" && a.String("remote", "") == "" {
		return fmt.Errorf("git-subrepo: --update requires --branch and/or --remote")
	}

	subdirs, err := resolveSubdirs(ctx, a)
	if err != nil {
		return err
	}

	return runPerSubdir(subdirs, func(subdir string) error {
		commit, err := ctx.Engine.Pull(subdir, ctx.Branch, pullOptions(a, ctx.RawArgs))
		if err != nil {
			return err
		}
		log.Info().Str("subdir", subdir).Str("commit", commit).Msg("pulled")
		return nil
	})
}

func init() { registerCommand(pullCommand{}) }

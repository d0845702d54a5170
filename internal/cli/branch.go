package cli

import (
	"github.com/git-subrepo/git-subrepo/internal/cli/arg"
	"github.com/git-subrepo/git-subrepo/internal/subrepo"
	"github.com/rs/zerolog/log"
)

type branchCommand struct{}

func (branchCommand) Name() string        { return "branch" }
func (branchCommand) Description() string { return "Synthesise the subrepo's standalone branch" }
func (branchCommand) AllowedOptions() []string {
	return []string{"all", "fetch", "force"}
}

func (branchCommand) Run(ctx *Context, a arg.Args) error {
	subdirs, err := resolveSubdirs(ctx, a)
	if err != nil {
		return err
	}

	return runPerSubdir(subdirs, func(subdir string) error {
		if a.Bool("fetch") {
			if _, err := ctx.Engine.Fetch(subdir); err != nil {
				return err
			}
		}

		name, err := ctx.Engine.Branch(subdir, subrepo.BranchOptions{Force: a.Bool("force")})
		if err != nil {
			return err
		}
		log.Info().Str("subdir", subdir).Str("branch", name).Msg("branch ready")
		return nil
	})
}

func init() { registerCommand(branchCommand{}) }

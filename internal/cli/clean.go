package cli

import (
	"github.com/git-subrepo/git-subrepo/internal/cli/arg"
	"github.com/git-subrepo/git-subrepo/internal/subrepo"
	"github.com/rs/zerolog/log"
)

type cleanCommand struct{}

func (cleanCommand) Name() string        { return "clean" }
func (cleanCommand) Description() string { return "Remove a subrepo's synthesised branches and refs" }
func (cleanCommand) AllowedOptions() []string {
	return []string{"all", "force"}
}

func (cleanCommand) Run(ctx *Context, a arg.Args) error {
	subdirs, err := resolveSubdirs(ctx, a)
	if err != nil {
		return err
	}

	return runPerSubdir(subdirs, func(subdir string) error {
		if err := ctx.Engine.Clean(subdir, subrepo.CleanOptions{Force: a.Bool("force")}); err != nil {
			return err
		}
		log.Info().Str("subdir", subdir).Msg("cleaned")
		return nil
	})
}

func init() { registerCommand(cleanCommand{}) }

package cli

import (
	"fmt"

	"github.com/git-subrepo/git-subrepo/internal/cli/arg"
	"github.com/git-subrepo/git-subrepo/internal/store"
	"github.com/rs/zerolog/log"
)

type pushCommand struct{}

func (pushCommand) Name() string        { return "push" }
func (pushCommand) Description() string { return "Push a subrepo's changes upstream" }
func (pushCommand) AllowedOptions() []string {
	return []string{"all", "branch", "force", "remote", "update"}
}

func (pushCommand) Run(ctx *Context, a arg.Args) error {
	if a.Bool("update") && a.String("branch", "") == "" && a.String("remote", "") == "" {
		return fmt.Errorf("git-subrepo: --update requires --branch and/or --remote")
	}

	subdirs, err := resolveSubdirsForPush(ctx, a)
	if err != nil {
		return err
	}

	return runPerSubdir(subdirs, func(subdir string) error {
		if branch, remote := a.String("branch", ""), a.String("remote", ""); branch != "" || remote != "" {
			path := ctx.Engine.GitrepoPath(subdir)
			rec, err := store.Load(path)
			if err != nil {
				return fmt.Errorf("%s is not a subrepo (no .gitrepo): %w", subdir, err)
			}
			if branch != "" {
				rec.Branch = branch
			}
			if remote != "" {
				rec.Remote = remote
			}
			if err := store.Save(path, rec); err != nil {
				return err
			}
		}

		if err := ctx.Engine.Push(subdir, ctx.Branch, pushOptions(a)); err != nil {
			return err
		}
		log.Info().Str("subdir", subdir).Msg("pushed")
		return nil
	})
}

// resolveSubdirsForPush mirrors resolveSubdirs but tolerates push's
// optional trailing <branch-name> positional argument.
func resolveSubdirsForPush(ctx *Context, a arg.Args) ([]string, error) {
	if a.Bool("all") {
		if len(a.Positional) > 0 {
			return nil, fmt.Errorf("git-subrepo: --all takes no subdir argument")
		}
		return ctx.Engine.Discover()
	}
	if len(a.Positional) == 0 {
		return nil, fmt.Errorf("git-subrepo: missing required <subdir> argument")
	}
	return []string{a.Positional[0]}, nil
}

func init() { registerCommand(pushCommand{}) }

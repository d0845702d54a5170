package cli

import (
	"fmt"

	"github.com/git-subrepo/git-subrepo/internal/cli/arg"
	"github.com/git-subrepo/git-subrepo/internal/store"
	"github.com/rs/zerolog/log"
)

type fetchCommand struct{}

func (fetchCommand) Name() string        { return "fetch" }
func (fetchCommand) Description() string { return "Fetch a subrepo's upstream branch" }
func (fetchCommand) AllowedOptions() []string {
	return []string{"all", "branch", "remote"}
}

func (fetchCommand) Run(ctx *Context, a arg.Args) error {
	subdirs, err := resolveSubdirs(ctx, a)
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

		commit, err := ctx.Engine.Fetch(subdir)
		if err != nil {
			return err
		}
		log.Info().Str("subdir", subdir).Str("commit", commit).Msg("fetched")
		return nil
	})
}

func init() { registerCommand(fetchCommand{}) }

package cli

import (
	"fmt"

	"github.com/git-subrepo/git-subrepo/internal/buildinfo"
	"github.com/git-subrepo/git-subrepo/internal/cli/arg"
)

type versionCommand struct{}

func (versionCommand) Name() string        { return "version" }
func (versionCommand) Description() string { return "Print the git-subrepo version" }
func (versionCommand) AllowedOptions() []string {
	return nil
}

func (versionCommand) Run(ctx *Context, a arg.Args) error {
	fmt.Printf("git-subrepo %s\n", buildinfo.Version)
	return nil
}

func init() { registerCommand(versionCommand{}) }

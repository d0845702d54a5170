package cli

import (
	"fmt"
	"io"

	"github.com/git-subrepo/git-subrepo/internal/cli/arg"
	"github.com/git-subrepo/git-subrepo/internal/cli/pager"
	"github.com/git-subrepo/git-subrepo/internal/refs"
	"github.com/git-subrepo/git-subrepo/internal/subrepo"
)

type statusCommand struct{}

func (statusCommand) Name() string        { return "status" }
func (statusCommand) Description() string { return "Show the tracked state of subrepos" }
func (statusCommand) AllowedOptions() []string {
	return []string{"fetch"}
}

func (statusCommand) Run(ctx *Context, a arg.Args) error {
	entries, err := ctx.Engine.Status(a.Positional, a.Bool("fetch"))
	if err != nil {
		return err
	}

	w := pager.Writer()
	defer w.Close()
	printStatus(w, entries, ctx.Quiet, ctx.Verbose)
	return nil
}

// printStatus honours three detail tiers: quiet prints bare subdir
// paths, the default prints remote/branch/commit/parent, verbose adds
// the five ref tips and any health notes (§4.2.7).
func printStatus(w io.Writer, entries []subrepo.SubrepoStatus, quiet, verbose bool) {
	for _, s := range entries {
		if quiet {
			fmt.Fprintln(w, s.Subdir)
			continue
		}

		fmt.Fprintf(w, "%s\n", s.Subdir)
		fmt.Fprintf(w, "  remote:  %s\n", s.Record.Remote)
		fmt.Fprintf(w, "  branch:  %s\n", s.Record.Branch)
		fmt.Fprintf(w, "  commit:  %s\n", s.Record.Commit)
		fmt.Fprintf(w, "  parent:  %s\n", s.Record.Parent)

		if !verbose {
			continue
		}
		for _, kind := range refs.All() {
			if tip, ok := s.Refs[kind]; ok {
				fmt.Fprintf(w, "  %-8s %s\n", string(kind)+":", tip)
			}
		}
		for _, note := range s.Health {
			fmt.Fprintf(w, "  ! %s\n", note)
		}
	}
}

func init() { registerCommand(statusCommand{}) }

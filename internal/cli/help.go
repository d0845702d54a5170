package cli

import (
	"fmt"

	"github.com/git-subrepo/git-subrepo/internal/cli/arg"
)

type helpCommand struct{}

func (helpCommand) Name() string        { return "help" }
func (helpCommand) Description() string { return "Show usage for git-subrepo or one command" }
func (helpCommand) AllowedOptions() []string {
	return nil
}

func (helpCommand) Run(ctx *Context, a arg.Args) error {
	if len(a.Positional) == 0 {
		PrintUsage()
		return nil
	}

	name := a.Positional[0]
	c, ok := GetCommand(name)
	if !ok {
		return fmt.Errorf("git-subrepo: unknown command %q; see `git-subrepo help`", name)
	}

	fmt.Printf("git-subrepo %s — %s\n", c.Name(), c.Description())
	if opts := c.AllowedOptions(); len(opts) > 0 {
		fmt.Print("Options:")
		for _, opt := range opts {
			fmt.Printf(" --%s", opt)
		}
		fmt.Println()
	}
	return nil
}

// PrintUsage prints the top-level usage summary listing every
// registered command, used both by `help` and by a bare invocation.
func PrintUsage() {
	fmt.Println("usage: git-subrepo <command> [<args>] [<options>]")
	fmt.Println()
	fmt.Println("Commands:")
	for _, name := range ListCommands() {
		c, _ := GetCommand(name)
		fmt.Printf("  %-10s %s\n", name, c.Description())
	}
}

func init() { registerCommand(helpCommand{}) }

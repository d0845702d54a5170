// Package cli wires the subrepo engine to the command line: argument
// parsing, a command registry, per-command option whitelists (§4.4),
// and the exit-code mapping described in §6.2/§7.
package cli

import (
	"fmt"
	"sort"

	"github.com/git-subrepo/git-subrepo/internal/cli/arg"
	"github.com/git-subrepo/git-subrepo/internal/gitrepo"
	"github.com/git-subrepo/git-subrepo/internal/subrepo"
)

// Context carries everything a command needs beyond its own flags.
type Context struct {
	Driver  gitrepo.Driver
	Engine  *subrepo.Engine
	Root    string
	Branch  string
	RawArgs string // the command's own argv, space-joined, for commit messages

	// Verbose/Quiet mirror the GIT_SUBREPO_VERBOSE/GIT_SUBREPO_QUIET
	// environment presets (§6.2) and shape status's output detail.
	Verbose bool
	Quiet   bool
}

// Command is one subcommand of the git-subrepo CLI.
type Command interface {
	// Name is the word typed on the command line, e.g. "clone".
	Name() string
	Description() string
	// AllowedOptions lists the flag names (without dashes) this
	// command accepts; any other flag is an argument error (§7).
	AllowedOptions() []string
	// Run validates positional arguments and executes the command.
	Run(ctx *Context, a arg.Args) error
}

var registry = make(map[string]Command)

func registerCommand(c Command) {
	registry[c.Name()] = c
}

// GetCommand looks up a registered command by name.
func GetCommand(name string) (Command, bool) {
	c, ok := registry[name]
	return c, ok
}

// ListCommands returns every registered command name, sorted.
func ListCommands() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Runner validates the option whitelist before executing a command.
type Runner struct{}

// Run enforces the option whitelist (§4.4) then executes the command.
func (Runner) Run(c Command, ctx *Context, a arg.Args) error {
	allowed := make(map[string]bool, len(c.AllowedOptions()))
	for _, opt := range c.AllowedOptions() {
		allowed[opt] = true
	}
	for opt := range a.Options {
		if !allowed[opt] {
			return fmt.Errorf("git-subrepo: option --%s is not allowed for %q; see `git-subrepo help %s`", opt, c.Name(), c.Name())
		}
	}
	return c.Run(ctx, a)
}

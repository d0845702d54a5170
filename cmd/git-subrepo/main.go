// Command git-subrepo embeds, tracks, and round-trips a subdirectory of
// one git repository against a separate upstream history, implementing
// the clone/fetch/branch/pull/commit/push/status/clean protocol.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/git-subrepo/git-subrepo/internal/buildinfo"
	"github.com/git-subrepo/git-subrepo/internal/cli"
	"github.com/git-subrepo/git-subrepo/internal/cli/arg"
	"github.com/git-subrepo/git-subrepo/internal/cli/logging"
	"github.com/git-subrepo/git-subrepo/internal/cliexit"
	"github.com/git-subrepo/git-subrepo/internal/gitrepo"
	"github.com/git-subrepo/git-subrepo/internal/preflight"
	"github.com/git-subrepo/git-subrepo/internal/subrepo"
	"github.com/rs/zerolog/log"
)

// noGitCommands don't need a working tree at all; they run before any
// preflight check.
var noGitCommands = map[string]bool{"help": true, "version": true}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(argv []string) int {
	verbosity := logging.FromEnv()
	parsed := arg.Parse(argv)
	switch {
	case parsed.Bool("quiet"):
		verbosity = logging.LevelQuiet
	case parsed.Bool("debug"):
		verbosity = logging.LevelDebug
	case parsed.Bool("verbose"):
		verbosity = logging.LevelVerbose
	}
	logging.Configure(verbosity)

	if len(argv) == 0 {
		cli.PrintUsage()
		return 0
	}

	name := argv[0]
	command, ok := cli.GetCommand(name)
	if !ok {
		fmt.Fprintf(os.Stderr, "git-subrepo: unknown command %q\n\n", name)
		cli.PrintUsage()
		return 1
	}

	rest := argv[1:]
	a := arg.Parse(rest)

	if noGitCommands[name] {
		if err := (cli.Runner{}).Run(command, &cli.Context{}, a); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0
	}

	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintln(os.Stderr, "git-subrepo: cannot determine working directory:", err)
		return 1
	}

	driver := gitrepo.New(cwd)

	if err := preflight.CheckEnvironment(driver, cwd); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	branch, err := preflight.CheckOnBranch(driver)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if err := preflight.CheckClean(driver); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	engine := subrepo.New(driver, cwd, buildinfo.Version)
	engine.ToolOrigin, engine.ToolCommit = ownProvenance()

	ctx := &cli.Context{
		Driver:  driver,
		Engine:  engine,
		Root:    cwd,
		Branch:  branch,
		RawArgs: strings.Join(rest, " "),
		Verbose: verbosity == logging.LevelVerbose || verbosity == logging.LevelDebug,
		Quiet:   verbosity == logging.LevelQuiet,
	}

	if err := (cli.Runner{}).Run(command, ctx, a); err != nil {
		return exitCode(err)
	}
	return 0
}

// ownProvenance reports the binary's own source provenance when it is
// run from inside a checkout of its own repository during development;
// both values are empty otherwise (§4.3: "if derivable").
func ownProvenance() (origin, commit string) {
	exe, err := os.Executable()
	if err != nil {
		return "", ""
	}
	return buildinfo.OwnOriginAndCommit(filepath.Dir(exe))
}

func exitCode(err error) int {
	var ce *cliexit.Error
	if errors.As(err, &ce) {
		if ce.Code == cliexit.CodeNoOp {
			log.Info().Msg(ce.Message)
			return 0
		}
		fmt.Fprintln(os.Stderr, ce.Error())
		return ce.Code
	}
	fmt.Fprintln(os.Stderr, err)
	return 1
}

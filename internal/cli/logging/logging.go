// Package logging configures the process-wide zerolog logger used by
// every internal package. It always writes through a zerolog console
// writer on stderr, colored when stderr is a terminal and uncolored
// otherwise, matching the donor's preference for zerolog as its sole
// logging dependency.
package logging

import (
	"os"
	"time"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Verbosity levels, as returned by FromEnv and passed to Configure.
const (
	LevelQuiet   = "quiet"
	LevelNormal  = "normal"
	LevelVerbose = "verbose"
	LevelDebug   = "debug"
)

// Configure installs the global logger according to verbosity. It is
// called once from main before any command runs.
func Configure(verbosity string) {
	zerolog.TimeFieldFormat = time.RFC3339

	var out *os.File = os.Stderr
	var writer zerolog.ConsoleWriter
	if isatty.IsTerminal(out.Fd()) || isatty.IsCygwinTerminal(out.Fd()) {
		writer = zerolog.ConsoleWriter{
			Out:        colorable.NewColorable(out),
			TimeFormat: "15:04:05",
			NoColor:    false,
		}
	} else {
		writer = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: "15:04:05",
			NoColor:    true,
		}
	}

	level := zerolog.InfoLevel
	switch verbosity {
	case LevelQuiet:
		level = zerolog.ErrorLevel
	case LevelVerbose:
		level = zerolog.DebugLevel
	case LevelDebug:
		level = zerolog.TraceLevel
	}

	log.Logger = zerolog.New(writer).With().Timestamp().Logger().Level(level)
}

// FromEnv derives a verbosity level from the GIT_SUBREPO_QUIET,
// GIT_SUBREPO_VERBOSE and GIT_SUBREPO_DEBUG environment variables,
// giving debug the highest precedence and quiet the lowest.
func FromEnv() string {
	switch {
	case os.Getenv("GIT_SUBREPO_DEBUG") != "":
		return LevelDebug
	case os.Getenv("GIT_SUBREPO_VERBOSE") != "":
		return LevelVerbose
	case os.Getenv("GIT_SUBREPO_QUIET") != "":
		return LevelQuiet
	default:
		return LevelNormal
	}
}

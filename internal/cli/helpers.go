package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/git-subrepo/git-subrepo/internal/cli/arg"
	"github.com/git-subrepo/git-subrepo/internal/cliexit"
	"github.com/rs/zerolog/log"
)

// resolveSubdirs turns a command's positional arguments plus --all into
// the list of subdirs it should operate on (§4.4: "with --all, no
// subdir argument is taken").
func resolveSubdirs(ctx *Context, a arg.Args) ([]string, error) {
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

// runPerSubdir runs fn once per subdir. With a single subdir its error
// (if any) is returned as-is so the caller's exit code mapping (§6.2)
// still sees a *cliexit.Error. With multiple subdirs (--all) every one
// runs regardless of earlier failures (§7: "prefer continue with a
// per-subrepo summary"), and a combined error is returned only if at
// least one subdir failed for a reason other than a no-op.
func runPerSubdir(subdirs []string, fn func(subdir string) error) error {
	if len(subdirs) == 1 {
		return fn(subdirs[0])
	}

	var failed []string
	for _, subdir := range subdirs {
		err := fn(subdir)
		if err == nil {
			continue
		}
		var noOp *cliexit.Error
		if errors.As(err, &noOp) && noOp.Code == cliexit.CodeNoOp {
			log.Info().Str("subdir", subdir).Msg(noOp.Message)
			continue
		}
		log.Error().Str("subdir", subdir).Err(err).Msg("failed")
		failed = append(failed, subdir)
	}
	if len(failed) > 0 {
		return fmt.Errorf("git-subrepo: %d of %d subrepos failed: %s", len(failed), len(subdirs), strings.Join(failed, ", "))
	}
	return nil
}

package subrepo

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/git-subrepo/git-subrepo/internal/cliexit"
	"github.com/git-subrepo/git-subrepo/internal/refs"
	"github.com/git-subrepo/git-subrepo/internal/store"
	"github.com/rs/zerolog/log"
)

var subdirNameRe = regexp.MustCompile(`^[A-Za-z0-9-]+$`)

// CloneOptions parameterises `clone` (§4.2.1).
type CloneOptions struct {
	Branch       string
	Force        bool
	OriginalArgs string
}

// Clone embeds url's branch at subdir (derived from url if empty) as a
// new subrepo on the current mainline branch.
func (e *Engine) Clone(url, subdir string, opts CloneOptions) (string, error) {
	d := e.Driver

	if subdir == "" {
		derived, err := deriveSubdir(url)
		if err != nil {
			return "", err
		}
		subdir = derived
	}

	ns := refs.For(subdir)
	subdirAbs := e.absPath(subdir)
	gitrepoPath := e.gitrepoPath(subdir)

	existing, hadExisting := tryLoad(gitrepoPath)

	if opts.Force && hadExisting {
		// re-clone path handled after we know upstream_head, below.
	} else if !opts.Force {
		if err := requireEmptyOrAbsent(subdirAbs); err != nil {
			return "", err
		}
	}

	branch := opts.Branch
	if branch == "" {
		resolved, err := d.RemoteDefaultBranch(url)
		if err != nil {
			return "", fmt.Errorf("could not determine default branch for %s: %w", url, err)
		}
		branch = resolved
	}

	log.Info().Str("remote", url).Str("branch", branch).Msg("fetching upstream for clone")
	upstreamHead, err := d.Fetch(url, branch)
	if err != nil {
		return "", fmt.Errorf("fetch %s %s: %w", url, branch, err)
	}
	if err := d.UpdateRef(ns.Ref(refs.Fetch), upstreamHead); err != nil {
		return "", err
	}
	if err := ensureRemote(d, ns.RemoteName(), url); err != nil {
		return "", err
	}

	if opts.Force && hadExisting {
		if existing.Commit == upstreamHead {
			return "", cliexit.NoOp(fmt.Sprintf("%s is up to date with %s", subdir, upstreamHead))
		}
		if err := d.RemovePathTracked(subdir); err != nil {
			return "", fmt.Errorf("removing previous %s: %w", subdir, err)
		}
		if err := os.RemoveAll(subdirAbs); err != nil {
			return "", err
		}
	}

	if err := os.MkdirAll(subdirAbs, 0o755); err != nil {
		return "", err
	}

	newCommit, err := e.Commit(subdir, upstreamHead, CommitOptions{
		Force:          true,
		Update:         false,
		RemoteOverride: url,
		BranchOverride: branch,
		Command:        "clone",
		OriginalArgs:   opts.OriginalArgs,
	})
	if err != nil {
		return "", err
	}

	return newCommit, nil
}

func deriveSubdir(url string) (string, error) {
	trimmed := strings.TrimRight(url, "/")
	trimmed = strings.TrimSuffix(trimmed, ".git")
	parts := strings.Split(trimmed, "/")
	name := parts[len(parts)-1]
	if !subdirNameRe.MatchString(name) {
		return "", fmt.Errorf("could not derive a valid subdir name from %q (got %q); pass one explicitly", url, name)
	}
	return name, nil
}

func requireEmptyOrAbsent(absDir string) error {
	entries, err := os.ReadDir(absDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if len(entries) > 0 {
		return fmt.Errorf("%s already exists and is not empty; use --force to re-clone", absDir)
	}
	return nil
}

func tryLoad(gitrepoPath string) (store.Record, bool) {
	rec, err := store.Load(gitrepoPath)
	if err != nil {
		return store.Record{}, false
	}
	return rec, true
}

func ensureRemote(d interface {
	RemoteGetURL(name string) (string, error)
	RemoteAdd(name, url string) error
	RemoteSetURL(name, url string) error
}, name, url string) error {
	current, err := d.RemoteGetURL(name)
	if err != nil {
		return d.RemoteAdd(name, url)
	}
	if current != url {
		return d.RemoteSetURL(name, url)
	}
	return nil
}

// Package subrepo implements the history-rewriting protocol described in
// spec §4.2: clone, fetch, branch, commit, pull, push, status, and
// clean, built as algorithms over internal/gitrepo, internal/store, and
// internal/refs.
package subrepo

import (
	"path/filepath"

	"github.com/git-subrepo/git-subrepo/internal/gitrepo"
)

// Engine is the entry point for every subrepo operation. One Engine is
// constructed per CLI invocation, rooted at the mainline working tree.
type Engine struct {
	Driver      gitrepo.Driver
	Root        string
	ToolVersion string
	// ToolOrigin/ToolCommit identify the git-subrepo binary's own
	// source provenance, embedded in every commit message (§4.3).
	// Both may be empty when undeterminable.
	ToolOrigin string
	ToolCommit string
}

// New constructs an Engine. root must be the absolute top-level path of
// the mainline working tree (preflight.CheckEnvironment already verified
// this before the engine is ever touched).
func New(d gitrepo.Driver, root, toolVersion string) *Engine {
	return &Engine{Driver: d, Root: root, ToolVersion: toolVersion}
}

func (e *Engine) absPath(subdir string) string {
	return filepath.Join(e.Root, filepath.FromSlash(subdir))
}

func (e *Engine) gitrepoPath(subdir string) string {
	return filepath.Join(e.absPath(subdir), ".gitrepo")
}

// GitrepoPath returns the absolute path to subdir's .gitrepo file, for
// callers outside the package that need to read or rewrite it directly
// (e.g. the CLI's pre-fetch --branch/--remote override).
func (e *Engine) GitrepoPath(subdir string) string {
	return e.gitrepoPath(subdir)
}

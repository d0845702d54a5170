package subrepo

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Discover walks the worktree for files named .gitrepo, skipping
// anything under a .git directory, and returns the canonicalised subdir
// paths in lexicographic order. A subrepo nested inside another (e.g.
// a/vendor/c/.gitrepo when a/.gitrepo is already reported) is dropped so
// only the outermost subdir survives (§4.2.7, scenario e).
func (e *Engine) Discover() ([]string, error) {
	var found []string

	err := filepath.WalkDir(e.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() && d.Name() == ".git" {
			return filepath.SkipDir
		}
		if !d.IsDir() && d.Name() == ".gitrepo" {
			rel, err := filepath.Rel(e.Root, filepath.Dir(path))
			if err != nil {
				return err
			}
			found = append(found, filepath.ToSlash(rel))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(found)
	return dedupeNested(found), nil
}

// dedupeNested drops any entry that sits inside another entry already
// present, keeping only outermost subrepos. found must be sorted.
func dedupeNested(found []string) []string {
	var out []string
	for _, candidate := range found {
		nested := false
		for _, kept := range out {
			if strings.HasPrefix(candidate, kept+"/") {
				nested = true
				break
			}
		}
		if !nested {
			out = append(out, candidate)
		}
	}
	return out
}

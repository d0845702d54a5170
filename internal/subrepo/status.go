package subrepo

import (
	"fmt"

	"github.com/git-subrepo/git-subrepo/internal/refs"
	"github.com/git-subrepo/git-subrepo/internal/store"
)

// SubrepoStatus is one subrepo's reported state for `status` (§4.2.7).
type SubrepoStatus struct {
	Subdir string
	Record store.Record
	Refs   map[refs.Kind]string
	Health []string
}

// Status reports on subdirs, or every discovered subrepo if subdirs is
// empty. When fetch is true each subrepo is fetched first.
func (e *Engine) Status(subdirs []string, fetch bool) ([]SubrepoStatus, error) {
	if len(subdirs) == 0 {
		discovered, err := e.Discover()
		if err != nil {
			return nil, err
		}
		subdirs = discovered
	}

	out := make([]SubrepoStatus, 0, len(subdirs))
	for _, subdir := range subdirs {
		st, err := e.statusOne(subdir, fetch)
		if err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, nil
}

func (e *Engine) statusOne(subdir string, fetch bool) (SubrepoStatus, error) {
	rec, err := store.Load(e.gitrepoPath(subdir))
	if err != nil {
		return SubrepoStatus{}, fmt.Errorf("%s is not a subrepo (no .gitrepo): %w", subdir, err)
	}

	if fetch {
		if _, err := e.Fetch(subdir); err != nil {
			return SubrepoStatus{}, err
		}
	}

	ns := refs.For(subdir)
	tips := make(map[refs.Kind]string)
	for _, kind := range refs.All() {
		ref := ns.Ref(kind)
		if e.Driver.RefExists(ref) {
			if sha, err := e.Driver.ResolveRef(ref); err == nil {
				tips[kind] = sha
			}
		}
	}

	return SubrepoStatus{
		Subdir: subdir,
		Record: rec,
		Refs:   tips,
		Health: e.health(subdir, rec),
	}, nil
}

// health folds the donor's separate "doctor" checks into status output
// (§12): is .gitrepo's commit resolvable, is parent an ancestor of HEAD.
func (e *Engine) health(subdir string, rec store.Record) []string {
	var notes []string
	d := e.Driver

	if rec.Commit != "" && !d.RefExists("refs/subrepo/"+subdir+"/fetch") {
		if _, err := d.RevParse(rec.Commit); err != nil {
			notes = append(notes, fmt.Sprintf("recorded commit %s does not resolve locally; run fetch", rec.Commit))
		}
	}

	if rec.Parent != "" {
		head, err := d.HeadCommit()
		if err == nil {
			if ok, err := d.IsAncestor(rec.Parent, head); err == nil && !ok && rec.Parent != head {
				notes = append(notes, fmt.Sprintf("parent %s is not an ancestor of HEAD", rec.Parent))
			}
		}
	}

	return notes
}

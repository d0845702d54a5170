package gitrepo

import (
	"fmt"
	"strings"
)

// WriteTree writes the current index to a tree object.
func (d *DefaultDriver) WriteTree() (string, error) {
	res := d.run("write-tree")
	if err := res.wrap("write-tree"); err != nil {
		return "", err
	}
	return res.Output, nil
}

// CommitTree creates a commit object from tree with the given parents,
// without touching the index, the working tree, or any ref.
func (d *DefaultDriver) CommitTree(tree, message string, parents ...string) (string, error) {
	args := []string{"commit-tree", tree}
	for _, p := range parents {
		args = append(args, "-p", p)
	}
	args = append(args, "-m", message)
	res := d.run(args...)
	if err := res.wrap("commit-tree"); err != nil {
		return "", err
	}
	return res.Output, nil
}

// CatCommit parses a commit's tree, parents, and message.
func (d *DefaultDriver) CatCommit(sha string) (Commit, error) {
	tree, err := d.run2("rev-parse", sha+"^{tree}")
	if err != nil {
		return Commit{}, err
	}

	parentsOut := d.run("rev-list", "--parents", "-n", "1", sha)
	if err := parentsOut.wrap("rev-list --parents"); err != nil {
		return Commit{}, err
	}
	fields := strings.Fields(parentsOut.Output)
	var parents []string
	if len(fields) > 1 {
		parents = fields[1:]
	}

	msg := d.run("log", "-n", "1", "--format=%B", sha)
	if err := msg.wrap("log --format=%B"); err != nil {
		return Commit{}, err
	}

	return Commit{SHA: sha, Tree: tree, Parents: parents, Message: msg.Output}, nil
}

func (d *DefaultDriver) run2(args ...string) (string, error) {
	res := d.run(args...)
	if err := res.wrap(strings.Join(args, " ")); err != nil {
		return "", err
	}
	return res.Output, nil
}

// RevList runs `git rev-list <args...>` and returns one sha per line.
func (d *DefaultDriver) RevList(args ...string) ([]string, error) {
	full := append([]string{"rev-list"}, args...)
	res := d.run(full...)
	if err := res.wrap("rev-list"); err != nil {
		return nil, err
	}
	if res.Output == "" {
		return nil, nil
	}
	return strings.Split(res.Output, "\n"), nil
}

// SubtreePath resolves the tree object rooted at path inside commitOrTree,
// e.g. SubtreePath(commit, "foo") returns the tree id of foo/ as recorded
// in that commit. Used by the subdirectory rewrite pass.
func (d *DefaultDriver) SubtreePath(commitOrTree, path string) (string, error) {
	res := d.run("rev-parse", "--verify", "--quiet", fmt.Sprintf("%s:%s", commitOrTree, path))
	if err := res.wrap("rev-parse <rev>:<path>"); err != nil {
		return "", err
	}
	return res.Output, nil
}

// RemoveFromTree returns a new tree object equal to tree but with path
// removed, used by the tree-filter pass that strips .gitrepo.
func (d *DefaultDriver) RemoveFromTree(tree, path string) (string, error) {
	lsRes := d.run("ls-tree", tree)
	if err := lsRes.wrap("ls-tree"); err != nil {
		return "", err
	}
	if lsRes.Output == "" {
		return tree, nil
	}

	var kept []string
	found := false
	for _, line := range strings.Split(lsRes.Output, "\n") {
		fields := strings.SplitN(line, "\t", 2)
		if len(fields) != 2 {
			kept = append(kept, line)
			continue
		}
		if fields[1] == path {
			found = true
			continue
		}
		kept = append(kept, line)
	}
	if !found {
		return tree, nil
	}

	cmd := d.runWithStdin(strings.Join(kept, "\n"), "mktree")
	if err := cmd.wrap("mktree"); err != nil {
		return "", err
	}
	return cmd.Output, nil
}

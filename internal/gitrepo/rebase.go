package gitrepo

import "strings"

// Rebase replays branch onto onto. If the rebase stops on a conflict it
// is left mid-rebase for the user to resolve (§7); conflict is true and
// output carries git's own diagnostic so the caller can show it verbatim.
func (d *DefaultDriver) Rebase(branch, onto string) (conflict bool, output string, err error) {
	if err := d.Checkout(branch); err != nil {
		return false, "", err
	}
	res := d.run("rebase", onto)
	if res.Ok() {
		return false, res.Output, nil
	}
	if isConflict(res.Output) {
		return true, res.Output, nil
	}
	return false, res.Output, res.wrap("rebase")
}

// RebaseAbort runs `git rebase --abort`. Nothing in the engine calls it;
// the conflict messages tell the user to run `git rebase --abort` by hand.
func (d *DefaultDriver) RebaseAbort() error {
	res := d.run("rebase", "--abort")
	return res.wrap("rebase --abort")
}

func isConflict(output string) bool {
	return strings.Contains(output, "CONFLICT") || strings.Contains(output, "could not apply")
}

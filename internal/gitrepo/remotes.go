package gitrepo

import (
	"fmt"
	"strings"
)

// LsRemote lists every ref a remote advertises, keyed by full ref name
// (including the synthetic "HEAD" entry git always reports first).
func (d *DefaultDriver) LsRemote(url string) (map[string]string, error) {
	res := d.run("ls-remote", url)
	if err := res.wrap("ls-remote"); err != nil {
		return nil, err
	}
	out := make(map[string]string)
	for _, line := range strings.Split(res.Output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			continue
		}
		out[fields[1]] = fields[0]
	}
	return out, nil
}

// RemoteDefaultBranch implements the clone algorithm from §4.2.1: locate
// the entry tagged HEAD, then find another ref under refs/heads/ pointing
// at the same commit.
func (d *DefaultDriver) RemoteDefaultBranch(url string) (string, error) {
	refs, err := d.LsRemote(url)
	if err != nil {
		return "", err
	}
	headSHA, ok := refs["HEAD"]
	if !ok {
		return "", fmt.Errorf("remote %s did not advertise HEAD", url)
	}
	for ref, sha := range refs {
		if ref == "HEAD" || sha != headSHA {
			continue
		}
		if branch, ok := strings.CutPrefix(ref, "refs/heads/"); ok {
			return branch, nil
		}
	}
	return "", fmt.Errorf("could not determine default branch for %s", url)
}

// RemoteGetURL returns the URL configured for a named remote.
func (d *DefaultDriver) RemoteGetURL(name string) (string, error) {
	res := d.run("remote", "get-url", name)
	if err := res.wrap("remote get-url"); err != nil {
		return "", err
	}
	return res.Output, nil
}

// RemoteAdd configures a new named remote.
func (d *DefaultDriver) RemoteAdd(name, url string) error {
	res := d.run("remote", "add", name, url)
	return res.wrap("remote add")
}

// RemoteSetURL rewrites the URL of an existing named remote.
func (d *DefaultDriver) RemoteSetURL(name, url string) error {
	res := d.run("remote", "set-url", name, url)
	return res.wrap("remote set-url")
}

// RemoteRemove deletes a named remote if configured.
func (d *DefaultDriver) RemoteRemove(name string) error {
	if _, err := d.RemoteGetURL(name); err != nil {
		return nil
	}
	res := d.run("remote", "remove", name)
	return res.wrap("remote remove")
}

// Fetch fetches branch from remote into FETCH_HEAD and returns the
// resulting commit id.
func (d *DefaultDriver) Fetch(remote, branch string) (string, error) {
	res := d.run("fetch", remote, branch)
	if err := res.wrap("fetch"); err != nil {
		return "", err
	}
	return d.RevParse("FETCH_HEAD")
}

// Push pushes refspec to remote, optionally forced.
func (d *DefaultDriver) Push(remote, refspec string, force bool) (string, error) {
	args := []string{"push"}
	if force {
		args = append(args, "--force")
	}
	args = append(args, remote, refspec)
	res := d.run(args...)
	if err := res.wrap("push"); err != nil {
		return "", err
	}
	return res.Output, nil
}

// Package pager pipes long-form command output (status, log-like
// listings) through the user's pager when stdout is a terminal,
// falling back to a direct write otherwise.
package pager

import (
	"io"
	"os"
	"os/exec"

	"github.com/mattn/go-isatty"
)

// Writer returns an io.WriteCloser that writes to stdout, optionally
// through a pager subprocess. Callers must Close it once done so the
// pager has a chance to flush and exit before the process returns.
func Writer() io.WriteCloser {
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		return nopCloser{os.Stdout}
	}

	name := os.Getenv("GIT_SUBREPO_PAGER")
	if name == "" {
		name = os.Getenv("PAGER")
	}
	if name == "" {
		name = "less -FRX"
	}

	cmd := exec.Command("sh", "-c", name)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nopCloser{os.Stdout}
	}
	if err := cmd.Start(); err != nil {
		return nopCloser{os.Stdout}
	}

	return &pagerCloser{stdin: stdin, cmd: cmd}
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

type pagerCloser struct {
	stdin io.WriteCloser
	cmd   *exec.Cmd
}

func (p *pagerCloser) Write(b []byte) (int, error) { return p.stdin.Write(b) }

func (p *pagerCloser) Close() error {
	_ = p.stdin.Close()
	return p.cmd.Wait()
}

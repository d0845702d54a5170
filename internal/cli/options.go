package cli

import (
	"github.com/git-subrepo/git-subrepo/internal/cli/arg"
	"github.com/git-subrepo/git-subrepo/internal/subrepo"
)

func cloneOptions(a arg.Args, rawArgs string) subrepo.CloneOptions {
	return subrepo.CloneOptions{
		Branch:       a.String("branch", ""),
		Force:        a.Bool("force"),
		OriginalArgs: rawArgs,
	}
}

func commitOptions(a arg.Args, command, rawArgs string) subrepo.CommitOptions {
	return subrepo.CommitOptions{
		Force:          a.Bool("force"),
		Update:         a.Bool("update"),
		RemoteOverride: a.String("remote", ""),
		BranchOverride: a.String("branch", ""),
		Command:        command,
		OriginalArgs:   rawArgs,
	}
}

func pullOptions(a arg.Args, rawArgs string) subrepo.PullOptions {
	return subrepo.PullOptions{
		Update:         a.Bool("update"),
		RemoteOverride: a.String("remote", ""),
		BranchOverride: a.String("branch", ""),
		OriginalArgs:   rawArgs,
	}
}

func pushOptions(a arg.Args) subrepo.PushOptions {
	var branchName string
	if len(a.Positional) > 1 {
		branchName = a.Positional[1]
	}
	return subrepo.PushOptions{
		BranchName: branchName,
		Force:      a.Bool("force"),
	}
}

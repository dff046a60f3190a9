/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package gitutil provides repository identity helpers backed by go-git.
package gitutil

import (
	git "github.com/go-git/go-git/v5"
)

// RemoteURL returns the first URL of the origin remote for the repository at
// path, or "" when the path is not a git repository or has no remotes.
func RemoteURL(path string) string {
	r, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return ""
	}

	remote, err := r.Remote(git.DefaultRemoteName)
	if err != nil {
		// Fall back to any remote when origin is absent.
		remotes, listErr := r.Remotes()
		if listErr != nil || len(remotes) == 0 {
			return ""
		}
		remote = remotes[0]
	}

	urls := remote.Config().URLs
	if len(urls) == 0 {
		return ""
	}
	return urls[0]
}

// IsRepo reports whether path is inside a git repository.
func IsRepo(path string) bool {
	_, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	return err == nil
}

// CurrentBranch returns the short name of the checked-out branch, or "" when
// unavailable (detached HEAD, not a repository).
func CurrentBranch(path string) string {
	r, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return ""
	}
	head, err := r.Head()
	if err != nil || !head.Name().IsBranch() {
		return ""
	}
	return head.Name().Short()
}

// HasUncommittedChanges reports whether the worktree at path has local
// modifications. Returns false for non-repositories.
func HasUncommittedChanges(path string) bool {
	r, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return false
	}
	wt, err := r.Worktree()
	if err != nil {
		return false
	}
	status, err := wt.Status()
	if err != nil {
		return false
	}
	return !status.IsClean()
}

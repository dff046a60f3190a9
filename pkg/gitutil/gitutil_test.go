/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package gitutil

import (
	"testing"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
)

func TestRemoteURL(t *testing.T) {
	dir := t.TempDir()
	r, err := git.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("PlainInit: %v", err)
	}
	_, err = r.CreateRemote(&config.RemoteConfig{
		Name: "origin",
		URLs: []string{"https://github.com/org/demo.git"},
	})
	if err != nil {
		t.Fatalf("CreateRemote: %v", err)
	}

	if got := RemoteURL(dir); got != "https://github.com/org/demo.git" {
		t.Errorf("RemoteURL = %q", got)
	}
}

func TestRemoteURLFallsBackToAnyRemote(t *testing.T) {
	dir := t.TempDir()
	r, err := git.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("PlainInit: %v", err)
	}
	_, err = r.CreateRemote(&config.RemoteConfig{
		Name: "upstream",
		URLs: []string{"https://github.com/org/upstream.git"},
	})
	if err != nil {
		t.Fatalf("CreateRemote: %v", err)
	}

	if got := RemoteURL(dir); got != "https://github.com/org/upstream.git" {
		t.Errorf("RemoteURL = %q", got)
	}
}

func TestRemoteURLNonRepo(t *testing.T) {
	if got := RemoteURL(t.TempDir()); got != "" {
		t.Errorf("RemoteURL on non-repo = %q, want empty", got)
	}
}

func TestIsRepo(t *testing.T) {
	dir := t.TempDir()
	if IsRepo(dir) {
		t.Error("empty directory should not be a repository")
	}
	if _, err := git.PlainInit(dir, false); err != nil {
		t.Fatalf("PlainInit: %v", err)
	}
	if !IsRepo(dir) {
		t.Error("initialized directory should be a repository")
	}
}

func TestCurrentBranchNonRepo(t *testing.T) {
	if got := CurrentBranch(t.TempDir()); got != "" {
		t.Errorf("CurrentBranch on non-repo = %q, want empty", got)
	}
}

func TestHasUncommittedChangesNonRepo(t *testing.T) {
	if HasUncommittedChanges(t.TempDir()) {
		t.Error("non-repo should report no uncommitted changes")
	}
}

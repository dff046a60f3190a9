/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	git "github.com/go-git/go-git/v5"
)

// captureLogs routes the default logger to a buffer for the duration of the
// test.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestLogRepoStateNonRepo(t *testing.T) {
	buf := captureLogs(t)

	logRepoState(t.TempDir())

	if !strings.Contains(buf.String(), "not a git repository") {
		t.Errorf("unexpected log output:\n%s", buf.String())
	}
}

func TestLogRepoState(t *testing.T) {
	buf := captureLogs(t)

	dir := t.TempDir()
	if _, err := git.PlainInit(dir, false); err != nil {
		t.Fatalf("PlainInit: %v", err)
	}

	logRepoState(dir)

	out := buf.String()
	for _, want := range []string{"scanning git repository", "branch=", "dirty=false"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package detector

import (
	"context"
	"strings"

	"github.com/NVIDIA/deploy-replicator/pkg/pattern"
	"github.com/NVIDIA/deploy-replicator/pkg/repo"
)

// Detector finds deployment patterns of a single kind in a repository tree.
// Implementations are independent of each other and fail open: a malformed
// file is logged and skipped, never surfaced as a detector error.
type Detector interface {
	// Kind returns the pattern kind this detector produces.
	Kind() pattern.Kind

	// Detect walks the repository and returns all patterns found.
	Detect(ctx context.Context, r repo.Repository) ([]pattern.Pattern, error)
}

// vendorDirs are dependency directories excluded from recursive searches.
var vendorDirs = map[string]bool{
	"node_modules": true,
	"vendor":       true,
}

// skipPath reports whether a repository-relative path contains a hidden
// directory segment or a known vendor directory.
func skipPath(path string) bool {
	for _, part := range strings.Split(path, "/") {
		if part == "." || part == ".." {
			continue
		}
		if strings.HasPrefix(part, ".") || vendorDirs[part] {
			return true
		}
	}
	return false
}

// parentDir returns the slash-separated parent of a repository-relative
// path, or "." for top-level entries.
func parentDir(path string) string {
	idx := strings.LastIndex(path, "/")
	if idx < 0 {
		return "."
	}
	return path[:idx]
}

// baseName returns the last segment of a slash-separated path.
func baseName(path string) string {
	if idx := strings.LastIndex(path, "/"); idx >= 0 {
		return path[idx+1:]
	}
	return path
}

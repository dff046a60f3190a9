/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package detector

import (
	"context"
	"io/fs"
	"log/slog"
	"path"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/NVIDIA/deploy-replicator/pkg/pattern"
	"github.com/NVIDIA/deploy-replicator/pkg/repo"
)

// kustomizationFiles are the descriptor names searched for, in order.
var kustomizationFiles = []string{"kustomization.yaml", "kustomization.yml"}

// kustomization is the subset of a kustomization file consulted during
// detection.
type kustomization struct {
	Resources []string `yaml:"resources"`
}

// Kustomize detects kustomization patterns. Present for reporting
// completeness; the apply pipeline does not act on this kind.
type Kustomize struct{}

// NewKustomize creates a new kustomization detector.
func NewKustomize() *Kustomize {
	return &Kustomize{}
}

// Kind returns the kustomize pattern kind.
func (d *Kustomize) Kind() pattern.Kind {
	return pattern.KindKustomize
}

// Detect finds every kustomization descriptor under the repository root,
// skipping hidden directories.
func (d *Kustomize) Detect(ctx context.Context, r repo.Repository) ([]pattern.Pattern, error) {
	var patterns []pattern.Pattern
	seen := make(map[string]bool)

	err := r.WalkDir(".", func(p string, entry fs.DirEntry, err error) error {
		if err != nil {
			if entry != nil && entry.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if entry.IsDir() {
			if p != "." && skipPath(p) {
				return fs.SkipDir
			}
			return nil
		}
		if !isKustomizationFile(entry.Name()) || skipPath(p) {
			return nil
		}
		pat, ok := d.analyzeKustomization(r, p)
		if !ok || seen[pat.Identity()] {
			return nil
		}
		seen[pat.Identity()] = true
		patterns = append(patterns, pat)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return patterns, nil
}

func isKustomizationFile(name string) bool {
	for _, f := range kustomizationFiles {
		if name == f {
			return true
		}
	}
	return false
}

// analyzeKustomization builds a pattern from a kustomization file, recording
// resource references and the file's structural role.
func (d *Kustomize) analyzeKustomization(r repo.Repository, filePath string) (pattern.Pattern, bool) {
	content, err := r.ReadFile(filePath)
	if err != nil {
		slog.Warn("failed to read kustomization", "path", filePath, "error", err)
		return pattern.Pattern{}, false
	}

	var k kustomization
	if err := yaml.Unmarshal(content, &k); err != nil {
		slog.Warn("failed to parse kustomization", "path", filePath, "error", err)
		return pattern.Pattern{}, false
	}

	dir := parentDir(filePath)

	pat := pattern.Pattern{
		Kind:        pattern.KindKustomize,
		Name:        baseName(dir),
		SourcePath:  dir,
		ConfigFiles: []string{filePath},
		Attributes: map[string]any{
			pattern.AttrResources:   k.Resources,
			pattern.AttrHasOverlays: r.IsDir(path.Join(parentDir(dir), "overlays")),
		},
	}

	// A base segment anywhere in the path wins over overlays.
	parts := strings.Split(dir, "/")
	if slices.Contains(parts, "base") {
		pat.Attributes[pattern.AttrStructure] = "base"
	} else if slices.Contains(parts, "overlays") {
		pat.Attributes[pattern.AttrStructure] = "overlay"
		pat.Attributes[pattern.AttrOverlayName] = baseName(dir)
	}

	return pat, true
}

/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package detector

import (
	"context"
	"io/fs"
	"log/slog"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/NVIDIA/deploy-replicator/pkg/pattern"
	"github.com/NVIDIA/deploy-replicator/pkg/repo"
)

// conventionalArgoDirs are searched in order before the repository-wide pass.
var conventionalArgoDirs = []string{
	"argocd",
	"argo-cd",
	"deployments/argocd",
	"k8s/argocd",
	".argocd",
}

// argoManifest is the subset of an Application manifest consulted during
// detection.
type argoManifest struct {
	Metadata struct {
		Name string `yaml:"name"`
	} `yaml:"metadata"`
	Spec struct {
		Source map[string]any `yaml:"source"`
	} `yaml:"spec"`
}

// ArgoCD detects ArgoCD Application manifests. It first scans conventional
// directories, then performs a repository-wide search for YAML files whose
// name contains "application", merging the two passes with duplicate
// suppression keyed on pattern identity (kind plus source path).
type ArgoCD struct{}

// NewArgoCD creates a new ArgoCD application detector.
func NewArgoCD() *ArgoCD {
	return &ArgoCD{}
}

// Kind returns the argocd pattern kind.
func (d *ArgoCD) Kind() pattern.Kind {
	return pattern.KindArgoCD
}

// Detect finds all ArgoCD Application manifests in the repository.
func (d *ArgoCD) Detect(ctx context.Context, r repo.Repository) ([]pattern.Pattern, error) {
	var patterns []pattern.Pattern
	seen := make(map[string]bool)

	add := func(pat pattern.Pattern) {
		if seen[pat.Identity()] {
			return
		}
		seen[pat.Identity()] = true
		patterns = append(patterns, pat)
	}

	// Pass 1: conventional directory locations, non-recursive.
	for _, dir := range conventionalArgoDirs {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if !r.IsDir(dir) {
			continue
		}
		for _, pat := range d.scanDirectory(r, dir) {
			add(pat)
		}
	}

	// Pass 2: repository-wide search for *application*.yaml files.
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
			return nil
		}
		name := entry.Name()
		if !strings.Contains(name, "application") || !strings.HasSuffix(name, ".yaml") {
			return nil
		}
		if pat, ok := d.analyzeApplication(r, p); ok {
			add(pat)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return patterns, nil
}

// scanDirectory classifies every YAML file directly under dir.
func (d *ArgoCD) scanDirectory(r repo.Repository, dir string) []pattern.Pattern {
	var patterns []pattern.Pattern
	_ = r.WalkDir(dir, func(p string, entry fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if entry.IsDir() {
			if p != dir {
				return fs.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(entry.Name(), ".yaml") {
			return nil
		}
		if pat, ok := d.analyzeApplication(r, p); ok {
			patterns = append(patterns, pat)
		}
		return nil
	})
	return patterns
}

// analyzeApplication builds a pattern from a manifest file if it classifies
// as an ArgoCD Application. Parse and analysis failures are no-match.
func (d *ArgoCD) analyzeApplication(r repo.Repository, filePath string) (pattern.Pattern, bool) {
	content, err := r.ReadFile(filePath)
	if err != nil {
		slog.Warn("failed to read application manifest", "path", filePath, "error", err)
		return pattern.Pattern{}, false
	}

	if !pattern.IsArgoApplication(content) {
		return pattern.Pattern{}, false
	}

	var m argoManifest
	if err := yaml.Unmarshal(content, &m); err != nil {
		slog.Warn("failed to parse application manifest", "path", filePath, "error", err)
		return pattern.Pattern{}, false
	}

	name := m.Metadata.Name
	if name == "" {
		name = strings.TrimSuffix(baseName(filePath), ".yaml")
	}

	sourceType := "kustomize"
	if _, ok := m.Spec.Source["helm"]; ok {
		sourceType = "helm"
	}

	return pattern.Pattern{
		Kind:        pattern.KindArgoCD,
		Name:        name,
		SourcePath:  filePath,
		ConfigFiles: []string{filePath},
		Attributes: map[string]any{
			pattern.AttrSourceType: sourceType,
		},
	}, true
}

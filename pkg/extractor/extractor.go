/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package extractor

import (
	"fmt"
	"log/slog"

	"github.com/distribution/reference"
	"gopkg.in/yaml.v3"

	"github.com/NVIDIA/deploy-replicator/pkg/pattern"
	"github.com/NVIDIA/deploy-replicator/pkg/repo"
)

// VariableSet is a flat mapping from variable key to string value. Every key
// has a defined default; a VariableSet is immutable once produced and is
// consumed only by the renderer and the analysis report.
type VariableSet map[string]string

// Clone returns a copy of the variable set.
func (v VariableSet) Clone() VariableSet {
	out := make(VariableSet, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}

// helmValues is the subset of a chart's values file consulted during
// extraction.
type helmValues struct {
	Namespace string         `yaml:"namespace"`
	Image     map[string]any `yaml:"image"`
}

// argoSpec is the subset of an Application manifest consulted during
// extraction.
type argoSpec struct {
	Spec struct {
		Destination struct {
			Namespace string `yaml:"namespace"`
		} `yaml:"destination"`
		Source struct {
			RepoURL string `yaml:"repoURL"`
			Path    string `yaml:"path"`
		} `yaml:"source"`
	} `yaml:"spec"`
}

// Extract derives the normalized variable set for a detected pattern,
// merging values from the pattern's config files over documented defaults.
// When a pattern has multiple config files, later files win on key
// conflicts. Config parse failures are logged and leave the defaults in
// place; extraction itself never fails.
func Extract(r repo.Repository, pat pattern.Pattern) VariableSet {
	switch pat.Kind {
	case pattern.KindHelm:
		return extractHelm(r, pat)
	case pattern.KindArgoCD:
		return extractArgo(r, pat)
	default:
		return VariableSet{"app_name": pat.Name}
	}
}

func extractHelm(r repo.Repository, pat pattern.Pattern) VariableSet {
	vars := VariableSet{
		"app_name":         pat.Name,
		"namespace":        "default",
		"image.repository": "",
		"image.tag":        "latest",
	}

	for _, configFile := range pat.ConfigFiles {
		content, err := r.ReadFile(configFile)
		if err != nil {
			slog.Warn("failed to read values file", "path", configFile, "error", err)
			continue
		}
		var values helmValues
		if err := yaml.Unmarshal(content, &values); err != nil {
			slog.Warn("failed to parse values file", "path", configFile, "error", err)
			continue
		}
		if values.Namespace != "" {
			vars["namespace"] = values.Namespace
		}
		// Merge the image mapping over defaults key by key; unset keys keep
		// their explicit default values and non-scalar entries are ignored.
		for k, v := range values.Image {
			switch v.(type) {
			case nil, map[string]any, []any:
			default:
				vars["image."+k] = fmt.Sprint(v)
			}
		}
	}

	validateImageRef(vars["image.repository"], vars["image.tag"], pat)
	return vars
}

func extractArgo(r repo.Repository, pat pattern.Pattern) VariableSet {
	vars := VariableSet{
		"app_name":        pat.Name,
		"namespace":       "argocd",
		"project":         "default",
		"repo_url":        "",
		"target_revision": "HEAD",
		"path":            "",
	}

	// Last-write-wins across config files.
	for _, configFile := range pat.ConfigFiles {
		content, err := r.ReadFile(configFile)
		if err != nil {
			slog.Warn("failed to read application manifest", "path", configFile, "error", err)
			continue
		}
		var m argoSpec
		if err := yaml.Unmarshal(content, &m); err != nil {
			slog.Warn("failed to parse application manifest", "path", configFile, "error", err)
			continue
		}
		if m.Spec.Destination.Namespace != "" {
			vars["namespace"] = m.Spec.Destination.Namespace
		}
		if m.Spec.Source.RepoURL != "" {
			vars["repo_url"] = m.Spec.Source.RepoURL
		}
		if m.Spec.Source.Path != "" {
			vars["path"] = m.Spec.Source.Path
		}
	}

	return vars
}

// validateImageRef checks that an extracted image reference is well formed,
// logging a warning for malformed refs. The extracted values are kept as-is
// either way.
func validateImageRef(repository, tag string, pat pattern.Pattern) {
	if repository == "" {
		return
	}
	ref := repository
	if tag != "" {
		ref = fmt.Sprintf("%s:%s", repository, tag)
	}
	if _, err := reference.ParseNormalizedNamed(ref); err != nil {
		slog.Warn("values file declares a malformed image reference",
			"pattern", pat.String(),
			"image", ref,
			"error", err,
		)
	}
}

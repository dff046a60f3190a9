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
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/NVIDIA/deploy-replicator/pkg/pattern"
	"github.com/NVIDIA/deploy-replicator/pkg/repo"
)

const (
	chartFileName  = "Chart.yaml"
	valuesFileName = "values.yaml"
	templatesDir   = "templates"

	// defaultChartVersion is used when a chart declares no version.
	defaultChartVersion = "0.1.0"
)

// chartDescriptor is the subset of Chart.yaml consulted during detection.
type chartDescriptor struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}

// Helm detects Helm chart patterns by locating Chart.yaml descriptors.
type Helm struct{}

// NewHelm creates a new Helm chart detector.
func NewHelm() *Helm {
	return &Helm{}
}

// Kind returns the helm pattern kind.
func (d *Helm) Kind() pattern.Kind {
	return pattern.KindHelm
}

// Detect finds every Chart.yaml under the repository root, skipping hidden
// and vendor directories, and builds one pattern per chart directory.
func (d *Helm) Detect(ctx context.Context, r repo.Repository) ([]pattern.Pattern, error) {
	var patterns []pattern.Pattern

	err := r.WalkDir(".", func(p string, entry fs.DirEntry, err error) error {
		if err != nil {
			slog.Debug("skipping unreadable path", "path", p, "error", err)
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
		if entry.Name() != chartFileName || skipPath(p) {
			return nil
		}
		if pat, ok := d.analyzeChart(r, parentDir(p)); ok {
			patterns = append(patterns, pat)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return patterns, nil
}

// analyzeChart builds a pattern from a chart directory. Analysis failures
// are logged and reported as no match.
func (d *Helm) analyzeChart(r repo.Repository, chartDir string) (pattern.Pattern, bool) {
	chartPath := path.Join(chartDir, chartFileName)

	content, err := r.ReadFile(chartPath)
	if err != nil {
		slog.Warn("failed to read chart descriptor", "path", chartPath, "error", err)
		return pattern.Pattern{}, false
	}

	var desc chartDescriptor
	if err := yaml.Unmarshal(content, &desc); err != nil {
		slog.Warn("failed to parse chart descriptor", "path", chartPath, "error", err)
		return pattern.Pattern{}, false
	}

	name := desc.Name
	if name == "" {
		// A chart at the repository root has no directory segment to name it.
		if chartDir == "." {
			name = path.Base(filepath.ToSlash(r.Root()))
		} else {
			name = baseName(chartDir)
		}
	}
	version := desc.Version
	if version == "" {
		version = defaultChartVersion
	}

	pat := pattern.Pattern{
		Kind:       pattern.KindHelm,
		Name:       name,
		SourcePath: chartDir,
		Attributes: map[string]any{
			pattern.AttrVersion: version,
		},
	}

	valuesPath := path.Join(chartDir, valuesFileName)
	if r.Exists(valuesPath) {
		pat.ConfigFiles = append(pat.ConfigFiles, valuesPath)
	}

	tmplDir := path.Join(chartDir, templatesDir)
	if r.IsDir(tmplDir) {
		pat.Attributes[pattern.AttrTemplateCount] = countYAMLFiles(r, tmplDir)
	}

	return pat, true
}

// countYAMLFiles counts the YAML files directly under dir.
func countYAMLFiles(r repo.Repository, dir string) int {
	count := 0
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
		if strings.HasSuffix(entry.Name(), ".yaml") {
			count++
		}
		return nil
	})
	return count
}

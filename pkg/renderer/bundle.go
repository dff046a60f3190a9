/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package renderer

import (
	_ "embed"
	"fmt"
	"log/slog"
	"path"

	"github.com/NVIDIA/deploy-replicator/pkg/pattern"
	"github.com/NVIDIA/deploy-replicator/pkg/repo"
)

//go:embed templates/Chart.yaml.tmpl
var chartTemplate string

//go:embed templates/values.yaml.tmpl
var valuesTemplate string

//go:embed templates/deployment.yaml.tmpl
var deploymentTemplate string

//go:embed templates/application.yaml.tmpl
var applicationTemplate string

// Template is an in-memory artifact bundle: the unrendered file bodies for
// one pattern, keyed by relative file path.
type Template struct {
	// Kind is the pattern kind this bundle was built for.
	Kind pattern.Kind

	// Name is the pattern name, used for output directory and file naming.
	Name string

	// Files maps relative file paths to raw (unrendered) text bodies.
	Files map[string]string
}

// Build creates template bundles for the given patterns. Kinds without a
// template body (kustomize) are skipped.
func Build(patterns []pattern.Pattern) []Template {
	templates := make([]Template, 0, len(patterns))
	for _, pat := range patterns {
		switch pat.Kind {
		case pattern.KindHelm:
			templates = append(templates, Template{
				Kind: pattern.KindHelm,
				Name: pat.Name,
				Files: map[string]string{
					"Chart.yaml":                chartTemplate,
					"values.yaml":               valuesTemplate,
					"templates/deployment.yaml": deploymentTemplate,
				},
			})
		case pattern.KindArgoCD:
			templates = append(templates, Template{
				Kind: pattern.KindArgoCD,
				Name: pat.Name,
				Files: map[string]string{
					"application.yaml": applicationTemplate,
				},
			})
		default:
			slog.Debug("no template body for pattern kind, skipping",
				"kind", pat.Kind,
				"pattern", pat.String(),
			)
		}
	}
	return templates
}

// Save persists unrendered template bundles under outputDir: helm bundles as
// <outputDir>/helm/<name>/... and argocd bundles as
// <outputDir>/argocd/<name>-application.yaml.
func Save(templates []Template, outputDir string) error {
	out := repo.OS(outputDir)
	for _, tmpl := range templates {
		for relPath, body := range tmpl.Files {
			var target string
			switch tmpl.Kind {
			case pattern.KindHelm:
				target = path.Join("helm", tmpl.Name, relPath)
			case pattern.KindArgoCD:
				target = path.Join("argocd", fmt.Sprintf("%s-application.yaml", tmpl.Name))
			default:
				continue
			}
			if err := out.WriteFile(target, []byte(body), 0600); err != nil {
				return fmt.Errorf("failed to save template %s: %w", target, err)
			}
		}
	}
	return nil
}

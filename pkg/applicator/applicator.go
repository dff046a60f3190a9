/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package applicator

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/NVIDIA/deploy-replicator/pkg/extractor"
	"github.com/NVIDIA/deploy-replicator/pkg/pattern"
	"github.com/NVIDIA/deploy-replicator/pkg/renderer"
	"github.com/NVIDIA/deploy-replicator/pkg/repo"
	"github.com/NVIDIA/deploy-replicator/pkg/scanner"
)

const (
	helmTargetDir   = "deployments/helm"
	argocdTargetDir = "deployments/argocd"
)

// Options control the apply state machine.
type Options struct {
	// DryRun short-circuits every pattern to StatusWouldApply before any
	// filesystem mutation.
	DryRun bool

	// Force permits applying over an already-present pattern of the same
	// kind.
	Force bool
}

// Applicator applies template bundles to a target repository, deciding per
// pattern whether to skip, preview, or write.
type Applicator struct {
	scanner *scanner.Scanner
}

// New creates an applicator with a default scanner for existing-pattern
// lookup in the target repository.
func New() *Applicator {
	return &Applicator{scanner: scanner.New()}
}

// Apply reads on-disk templates under templateDir (helm/* directories and
// argocd/*.yaml files) and applies them to the target repository.
//
// Writes are per-pattern and not rolled back: a failure mid-pattern leaves
// already-written files in place, reports the pattern as failed, and the
// batch continues with remaining patterns.
func (a *Applicator) Apply(ctx context.Context, templateDir string, target repo.Repository, opts Options) ([]Result, error) {
	existing, err := a.existingByKind(ctx, target)
	if err != nil {
		return nil, err
	}

	vars := extractor.ForRepository(target.Root())
	templates := repo.OS(templateDir)
	var results []Result

	for _, entry := range listDir(templates, "helm") {
		if !entry.isDir {
			continue
		}
		res := a.applyChartDir(templates, path.Join("helm", entry.name), entry.name,
			target, vars, existing[pattern.KindHelm], opts)
		results = append(results, res)
	}

	for _, entry := range listDir(templates, "argocd") {
		if entry.isDir || !hasYAMLSuffix(entry.name) {
			continue
		}
		res := a.applyApplicationFile(templates, path.Join("argocd", entry.name), entry.name,
			target, vars, existing[pattern.KindArgoCD], opts)
		results = append(results, res)
	}

	observeResults(results)
	return results, nil
}

// ApplyDirect applies in-memory template bundles to the target repository
// using target-derived variables, without an intermediate disk write. The
// direct flow has no force flag and performs no existing-pattern skip,
// matching the replicate semantics.
func (a *Applicator) ApplyDirect(ctx context.Context, templates []renderer.Template, target repo.Repository, opts Options) ([]Result, error) {
	vars := extractor.ForRepository(target.Root())
	var results []Result

	for _, tmpl := range templates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		switch tmpl.Kind {
		case pattern.KindHelm:
			results = append(results, a.writeBundle(tmpl,
				path.Join(helmTargetDir, tmpl.Name), target, vars, opts))
		case pattern.KindArgoCD:
			results = append(results, a.writeApplicationBundle(tmpl, target, vars, opts))
		default:
			continue
		}
	}

	observeResults(results)
	return results, nil
}

// existingByKind scans the target repository and reports which pattern kinds
// are already present. Lookup is keyed by kind only, not name: two
// differently named charts in the target count as one "helm exists" fact.
func (a *Applicator) existingByKind(ctx context.Context, target repo.Repository) (map[pattern.Kind]bool, error) {
	report, err := a.scanner.Scan(ctx, target)
	if err != nil {
		return nil, err
	}
	existing := make(map[pattern.Kind]bool)
	for _, p := range report.Patterns {
		existing[p.Kind] = true
	}
	return existing, nil
}

// applyChartDir applies one on-disk chart template directory. Files with a
// YAML or template suffix are rendered; all other files are preserved
// byte-for-byte.
func (a *Applicator) applyChartDir(templates repo.Repository, tmplDir, chartName string,
	target repo.Repository, vars extractor.VariableSet, exists bool, opts Options) Result {

	id := fmt.Sprintf("%s/%s", pattern.KindHelm, chartName)
	targetPath := path.Join(helmTargetDir, chartName)
	displayPath := filepath.Join(target.Root(), filepath.FromSlash(targetPath))

	if exists && !opts.Force {
		return Result{Pattern: id, Status: StatusSkipped, Message: "Helm chart already exists"}
	}
	if opts.DryRun {
		return Result{Pattern: id, Status: StatusWouldApply,
			Message: fmt.Sprintf("Would create Helm chart at %s", displayPath)}
	}

	var failure error
	walkErr := templates.WalkDir(tmplDir, func(p string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}
		rel := strings.TrimPrefix(p, tmplDir+"/")
		content, readErr := templates.ReadFile(p)
		if readErr != nil {
			return readErr
		}

		data := content
		if isRenderable(entry.Name()) {
			rendered, renderErr := renderer.Render(string(content), vars)
			if renderErr != nil {
				failure = renderErr
				return fs.SkipAll
			}
			data = []byte(rendered)
		}
		return target.WriteFile(path.Join(targetPath, rel), data, 0600)
	})

	if failure == nil {
		failure = walkErr
	}
	if failure != nil {
		slog.Error("failed to apply chart template", "pattern", id, "error", failure)
		return Result{Pattern: id, Status: StatusFailed, Message: failure.Error()}
	}

	return Result{Pattern: id, Status: StatusApplied,
		Message: fmt.Sprintf("Created Helm chart at %s", displayPath)}
}

// applyApplicationFile applies one on-disk application manifest template.
// The target file keeps the template file's own name.
func (a *Applicator) applyApplicationFile(templates repo.Repository, tmplPath, fileName string,
	target repo.Repository, vars extractor.VariableSet, exists bool, opts Options) Result {

	appName := strings.TrimSuffix(strings.TrimSuffix(strings.TrimSuffix(fileName, ".yaml"), ".yml"), "-application")
	id := fmt.Sprintf("%s/%s", pattern.KindArgoCD, appName)
	targetPath := path.Join(argocdTargetDir, fileName)
	displayPath := filepath.Join(target.Root(), filepath.FromSlash(targetPath))

	if exists && !opts.Force {
		return Result{Pattern: id, Status: StatusSkipped, Message: "ArgoCD application already exists"}
	}
	if opts.DryRun {
		return Result{Pattern: id, Status: StatusWouldApply,
			Message: fmt.Sprintf("Would create ArgoCD app at %s", displayPath)}
	}

	content, err := templates.ReadFile(tmplPath)
	if err == nil {
		var rendered string
		rendered, err = renderer.Render(string(content), vars)
		if err == nil {
			err = target.WriteFile(targetPath, []byte(rendered), 0600)
		}
	}
	if err != nil {
		slog.Error("failed to apply application template", "pattern", id, "error", err)
		return Result{Pattern: id, Status: StatusFailed, Message: err.Error()}
	}

	return Result{Pattern: id, Status: StatusApplied,
		Message: fmt.Sprintf("Created ArgoCD application at %s", displayPath)}
}

// writeBundle renders an in-memory bundle's files into targetPath.
func (a *Applicator) writeBundle(tmpl renderer.Template, targetPath string,
	target repo.Repository, vars extractor.VariableSet, opts Options) Result {

	id := fmt.Sprintf("%s/%s", tmpl.Kind, tmpl.Name)
	displayPath := filepath.Join(target.Root(), filepath.FromSlash(targetPath))

	if opts.DryRun {
		return Result{Pattern: id, Status: StatusWouldApply,
			Message: fmt.Sprintf("Would create Helm chart at %s", displayPath)}
	}

	// Stable file order so repeated applies write identically.
	relPaths := make([]string, 0, len(tmpl.Files))
	for rel := range tmpl.Files {
		relPaths = append(relPaths, rel)
	}
	sort.Strings(relPaths)

	for _, rel := range relPaths {
		rendered, err := renderer.Render(tmpl.Files[rel], vars)
		if err != nil {
			slog.Error("failed to render template file", "pattern", id, "file", rel, "error", err)
			return Result{Pattern: id, Status: StatusFailed, Message: err.Error()}
		}
		if err := target.WriteFile(path.Join(targetPath, rel), []byte(rendered), 0600); err != nil {
			slog.Error("failed to write template file", "pattern", id, "file", rel, "error", err)
			return Result{Pattern: id, Status: StatusFailed, Message: err.Error()}
		}
	}

	return Result{Pattern: id, Status: StatusApplied,
		Message: fmt.Sprintf("Created Helm chart at %s", displayPath)}
}

// writeApplicationBundle renders an in-memory argocd bundle to
// deployments/argocd/<name>-application.yaml.
func (a *Applicator) writeApplicationBundle(tmpl renderer.Template,
	target repo.Repository, vars extractor.VariableSet, opts Options) Result {

	id := fmt.Sprintf("%s/%s", tmpl.Kind, tmpl.Name)
	targetPath := path.Join(argocdTargetDir, fmt.Sprintf("%s-application.yaml", tmpl.Name))
	displayPath := filepath.Join(target.Root(), filepath.FromSlash(targetPath))

	if opts.DryRun {
		return Result{Pattern: id, Status: StatusWouldApply,
			Message: fmt.Sprintf("Would create ArgoCD app at %s", displayPath)}
	}

	rendered, err := renderer.Render(tmpl.Files["application.yaml"], vars)
	if err != nil {
		slog.Error("failed to render application template", "pattern", id, "error", err)
		return Result{Pattern: id, Status: StatusFailed, Message: err.Error()}
	}
	if err := target.WriteFile(targetPath, []byte(rendered), 0600); err != nil {
		slog.Error("failed to write application template", "pattern", id, "error", err)
		return Result{Pattern: id, Status: StatusFailed, Message: err.Error()}
	}

	return Result{Pattern: id, Status: StatusApplied,
		Message: fmt.Sprintf("Created ArgoCD application at %s", displayPath)}
}

// isRenderable reports whether a template file should be rendered rather
// than copied byte-for-byte.
func isRenderable(name string) bool {
	return hasYAMLSuffix(name) || strings.HasSuffix(name, ".tmpl")
}

func hasYAMLSuffix(name string) bool {
	return strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml")
}

// dirEntry is one immediate child of a template directory.
type dirEntry struct {
	name  string
	isDir bool
}

// listDir returns the immediate children of dir, sorted by name. A missing
// directory yields no entries.
func listDir(r repo.Repository, dir string) []dirEntry {
	if !r.IsDir(dir) {
		return nil
	}
	var entries []dirEntry
	_ = r.WalkDir(dir, func(p string, entry fs.DirEntry, err error) error {
		if err != nil || p == dir {
			return nil
		}
		if path.Dir(p) != dir {
			if entry.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		entries = append(entries, dirEntry{name: entry.Name(), isDir: entry.IsDir()})
		return nil
	})
	sort.Slice(entries, func(i, j int) bool { return entries[i].name < entries[j].name })
	return entries
}

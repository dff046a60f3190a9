/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package applicator

import (
	"context"
	"strings"
	"testing"

	"github.com/NVIDIA/deploy-replicator/pkg/renderer"
	"github.com/NVIDIA/deploy-replicator/pkg/repo"
	"github.com/NVIDIA/deploy-replicator/pkg/scanner"
)

// Exercises the full replicate flow: scan a source repository, build
// templates from its patterns, apply them directly to a target.
func TestReplicateFlow(t *testing.T) {
	source := repo.Mem("source", map[string]string{
		"charts/web/Chart.yaml":       "apiVersion: v2\nname: web\nversion: 0.5.0\n",
		"charts/web/values.yaml":      "image:\n  repository: myorg/web\n  tag: v2\n",
		"argocd/web-application.yaml": "apiVersion: argoproj.io/v1alpha1\nkind: Application\nmetadata:\n  name: web\n",
	})

	report, err := scanner.New().Scan(context.Background(), source)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(report.Patterns) != 2 {
		t.Fatalf("expected 2 patterns, got %d: %v", len(report.Patterns), report.Patterns)
	}

	targetDir := newTargetDir(t, "payments")
	target := repo.OS(targetDir)

	templates := renderer.Build(report.Patterns)
	results, err := New().ApplyDirect(context.Background(), templates, target, Options{})
	if err != nil {
		t.Fatalf("ApplyDirect: %v", err)
	}
	if s := Summarize(results); s.Applied != 2 || s.Failed != 0 {
		t.Fatalf("summary = %+v, want 2 applied", s)
	}

	// Output directories are named for the source patterns, contents are
	// rendered for the target repository.
	chart, err := target.ReadFile("deployments/helm/web/Chart.yaml")
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(chart), "name: payments") {
		t.Errorf("chart not rendered for target: %s", chart)
	}
	// The chart version comes from the bundled template, not the source.
	if !strings.Contains(string(chart), "version: 0.1.0") {
		t.Errorf("chart missing template version: %s", chart)
	}

	app, err := target.ReadFile("deployments/argocd/web-application.yaml")
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	for _, want := range []string{
		"name: payments",
		"namespace: payments",
		"https://github.com/org/payments",
		"releaseName: payments",
	} {
		if !strings.Contains(string(app), want) {
			t.Errorf("application manifest missing %q:\n%s", want, app)
		}
	}

	// The replicated target itself scans clean with the applied patterns.
	recheck, err := scanner.New().Scan(context.Background(), target)
	if err != nil {
		t.Fatalf("rescan: %v", err)
	}
	if len(recheck.Patterns) != 2 {
		t.Errorf("rescan found %d patterns, want 2: %v", len(recheck.Patterns), recheck.Patterns)
	}
}

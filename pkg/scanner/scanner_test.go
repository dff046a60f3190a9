/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package scanner

import (
	"context"
	"errors"
	"testing"

	"github.com/NVIDIA/deploy-replicator/pkg/pattern"
	"github.com/NVIDIA/deploy-replicator/pkg/repo"
)

func TestScanEmptyRepository(t *testing.T) {
	report, err := New().Scan(context.Background(), repo.Mem("empty", nil))
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(report.Patterns) != 0 {
		t.Errorf("expected no patterns, got %d", len(report.Patterns))
	}
	if report.ScanID == "" {
		t.Error("expected a scan ID")
	}
	if report.Repository != "empty" {
		t.Errorf("Repository = %q", report.Repository)
	}
}

func TestScanMixedRepository(t *testing.T) {
	r := repo.Mem("mixed", map[string]string{
		"charts/web/Chart.yaml":       "name: web\nversion: 0.1.0\n",
		"charts/api/Chart.yaml":       "name: api\nversion: 0.2.0\n",
		"argocd/web-application.yaml": "apiVersion: argoproj.io/v1alpha1\nkind: Application\nmetadata:\n  name: web\n",
		"k8s/base/kustomization.yaml": "resources: []\n",
	})

	report, err := New().Scan(context.Background(), r)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	counts := report.CountByKind()
	if counts[pattern.KindHelm] != 2 {
		t.Errorf("helm count = %d, want 2", counts[pattern.KindHelm])
	}
	if counts[pattern.KindArgoCD] != 1 {
		t.Errorf("argocd count = %d, want 1", counts[pattern.KindArgoCD])
	}
	if counts[pattern.KindKustomize] != 1 {
		t.Errorf("kustomize count = %d, want 1", counts[pattern.KindKustomize])
	}
	if len(report.Patterns) != 4 {
		t.Errorf("total patterns = %d, want 4", len(report.Patterns))
	}

	// Output order follows detector registration order regardless of which
	// detector finishes first.
	if report.Patterns[0].Kind != pattern.KindHelm {
		t.Errorf("first pattern kind = %q, want helm", report.Patterns[0].Kind)
	}
	if report.Patterns[len(report.Patterns)-1].Kind != pattern.KindKustomize {
		t.Errorf("last pattern kind = %q, want kustomize", report.Patterns[len(report.Patterns)-1].Kind)
	}
}

type stubDetector struct {
	kind     pattern.Kind
	patterns []pattern.Pattern
	err      error
}

func (d *stubDetector) Kind() pattern.Kind { return d.kind }

func (d *stubDetector) Detect(_ context.Context, _ repo.Repository) ([]pattern.Pattern, error) {
	return d.patterns, d.err
}

func TestScanFailsOpenOnDetectorError(t *testing.T) {
	good := &stubDetector{
		kind:     pattern.KindHelm,
		patterns: []pattern.Pattern{{Kind: pattern.KindHelm, Name: "ok", SourcePath: "charts/ok"}},
	}
	bad := &stubDetector{
		kind: pattern.KindArgoCD,
		err:  errors.New("boom"),
	}

	report, err := NewWithDetectors(good, bad).Scan(context.Background(), repo.Mem("x", nil))
	if err != nil {
		t.Fatalf("Scan should not fail when one detector errors: %v", err)
	}
	if len(report.Patterns) != 1 || report.Patterns[0].Name != "ok" {
		t.Errorf("expected only the healthy detector's patterns, got %v", report.Patterns)
	}
}

func TestScanSuppressesIdentityDuplicates(t *testing.T) {
	a := &stubDetector{
		kind:     pattern.KindArgoCD,
		patterns: []pattern.Pattern{{Kind: pattern.KindArgoCD, Name: "web", SourcePath: "argocd/web.yaml"}},
	}
	b := &stubDetector{
		kind:     pattern.KindArgoCD,
		patterns: []pattern.Pattern{{Kind: pattern.KindArgoCD, Name: "renamed", SourcePath: "argocd/web.yaml"}},
	}

	report, err := NewWithDetectors(a, b).Scan(context.Background(), repo.Mem("x", nil))
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(report.Patterns) != 1 {
		t.Fatalf("expected 1 pattern after identity dedup, got %d", len(report.Patterns))
	}
	// First detector wins on identity conflicts.
	if report.Patterns[0].Name != "web" {
		t.Errorf("Name = %q, want web", report.Patterns[0].Name)
	}
}

func TestScanCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := New().Scan(ctx, repo.Mem("x", map[string]string{"charts/a/Chart.yaml": "name: a\n"})); err == nil {
		t.Error("expected error for canceled context")
	}
}

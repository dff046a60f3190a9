/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package scanner

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/NVIDIA/deploy-replicator/pkg/detector"
	"github.com/NVIDIA/deploy-replicator/pkg/pattern"
	"github.com/NVIDIA/deploy-replicator/pkg/repo"
)

// Report is the result of one repository scan.
type Report struct {
	// ScanID uniquely identifies this scan run.
	ScanID string `json:"scan_id" yaml:"scan_id"`

	// Repository is the scanned repository location.
	Repository string `json:"repository" yaml:"repository"`

	// Patterns holds all detected patterns in detector order.
	Patterns []pattern.Pattern `json:"patterns" yaml:"patterns"`

	// Duration is the time taken by the scan.
	Duration time.Duration `json:"duration" yaml:"duration"`
}

// CountByKind returns the number of detected patterns per kind.
func (r *Report) CountByKind() map[pattern.Kind]int {
	counts := make(map[pattern.Kind]int)
	for _, p := range r.Patterns {
		counts[p.Kind]++
	}
	return counts
}

// Scanner composes pattern detectors and runs them over a repository root.
type Scanner struct {
	detectors []detector.Detector
}

// New creates a scanner with the default detector set: Helm charts, ArgoCD
// applications, kustomizations.
func New() *Scanner {
	return NewWithDetectors(
		detector.NewHelm(),
		detector.NewArgoCD(),
		detector.NewKustomize(),
	)
}

// NewWithDetectors creates a scanner with an explicit detector set.
func NewWithDetectors(detectors ...detector.Detector) *Scanner {
	return &Scanner{detectors: detectors}
}

// Scan runs every detector over the repository and concatenates results in
// detector order. Detectors run concurrently; results are slotted by
// detector index so execution order never affects output order. A failing
// detector is logged and contributes nothing; the scan itself only fails on
// context cancellation.
func (s *Scanner) Scan(ctx context.Context, r repo.Repository) (*Report, error) {
	start := time.Now()
	scanID := uuid.NewString()

	slog.Debug("scanning repository",
		"scan_id", scanID,
		"repository", r.Root(),
		"detectors", len(s.detectors),
	)

	results := make([][]pattern.Pattern, len(s.detectors))
	g, gctx := errgroup.WithContext(ctx)

	for i, d := range s.detectors {
		g.Go(func() error {
			patterns, err := d.Detect(gctx, r)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				// Fail open: one bad detector never aborts the scan.
				slog.Warn("detector failed, excluding its results",
					"scan_id", scanID,
					"kind", d.Kind(),
					"error", err,
				)
				return nil
			}
			results[i] = patterns
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &Report{
		ScanID:     scanID,
		Repository: r.Root(),
	}

	// Concatenate in detector order; suppress identity duplicates so a scan
	// never returns two patterns with the same (kind, sourcePath).
	seen := make(map[string]bool)
	for _, patterns := range results {
		for _, p := range patterns {
			if seen[p.Identity()] {
				continue
			}
			seen[p.Identity()] = true
			report.Patterns = append(report.Patterns, p)
			patternsDetected.WithLabelValues(string(p.Kind)).Inc()
		}
	}

	report.Duration = time.Since(start)
	scanDuration.Observe(report.Duration.Seconds())

	slog.Info("scan complete",
		"scan_id", scanID,
		"repository", r.Root(),
		"patterns", len(report.Patterns),
		"duration_sec", report.Duration.Seconds(),
	)

	return report, nil
}

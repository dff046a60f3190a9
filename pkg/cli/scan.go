/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/deploy-replicator/pkg/gitutil"
	"github.com/NVIDIA/deploy-replicator/pkg/oci"
	"github.com/NVIDIA/deploy-replicator/pkg/renderer"
	"github.com/NVIDIA/deploy-replicator/pkg/repo"
	"github.com/NVIDIA/deploy-replicator/pkg/scanner"
	"github.com/NVIDIA/deploy-replicator/pkg/serializer"
)

const (
	outputFormatDir = "dir"
	outputFormatOCI = "oci"
)

func scanCmd() *cli.Command {
	return &cli.Command{
		Name:                  "scan",
		EnableShellCompletion: true,
		Usage:                 "Detect deployment patterns in a repository",
		ArgsUsage:             "<repository>",
		Description: `Scan a repository for deployment patterns including:
  - Helm charts (Chart.yaml)
  - ArgoCD Application manifests (argoproj.io Application kind)
  - Kustomize configurations (kustomization.yaml)

The scan report can be output in table, YAML, or JSON format. With --output,
parameterized templates are generated from the detected patterns and written
to a local directory or packaged as an OCI artifact.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Directory where parameterized templates are written",
			},
			&cli.StringFlag{
				Name:  "output-format",
				Value: outputFormatDir,
				Usage: "Template output format (supported values: dir, oci)",
			},
			&cli.StringFlag{
				Name:  "registry",
				Usage: "OCI registry host for packaged templates (e.g., ghcr.io)",
			},
			&cli.StringFlag{
				Name:  "repository",
				Usage: "OCI repository path for packaged templates (e.g., org/templates)",
			},
			&cli.StringFlag{
				Name:  "tag",
				Usage: "OCI tag for packaged templates (defaults to latest)",
			},
			&cli.BoolFlag{
				Name:  "push",
				Usage: "Push the packaged templates to the remote registry",
			},
			formatFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			repoPath, err := repositoryArg(cmd, 0)
			if err != nil {
				return err
			}

			format := cmd.String("format")
			if serializer.Format(format).IsUnknown() {
				return fmt.Errorf("unknown output format: %q", format)
			}

			logRepoState(repoPath)

			report, err := scanner.New().Scan(ctx, repo.OS(repoPath))
			if err != nil {
				return fmt.Errorf("error scanning repository %q: %w", repoPath, err)
			}

			if err := writeReport(ctx, report, format); err != nil {
				return err
			}

			outputDir := cmd.String("output")
			if outputDir == "" {
				return nil
			}
			return writeTemplates(ctx, cmd, report, outputDir)
		},
	}
}

// logRepoState records the git state of the scanned path as a diagnostic.
// Non-repositories are noted and scanned the same way.
func logRepoState(repoPath string) {
	if !gitutil.IsRepo(repoPath) {
		slog.Debug("path is not a git repository", "path", repoPath)
		return
	}
	slog.Debug("scanning git repository",
		"path", repoPath,
		"branch", gitutil.CurrentBranch(repoPath),
		"dirty", gitutil.HasUncommittedChanges(repoPath))
}

// writeReport serializes the scan report to stdout. The table format uses a
// pattern listing instead of the generic flattened view.
func writeReport(ctx context.Context, report *scanner.Report, format string) error {
	if format == formatTable {
		printReportTable(os.Stdout, report)
		return nil
	}
	return serializer.NewStdoutWriter(serializer.Format(format)).Serialize(ctx, report)
}

// writeTemplates builds parameterized templates from the detected patterns
// and writes them to a directory or packages them as an OCI artifact.
func writeTemplates(ctx context.Context, cmd *cli.Command, report *scanner.Report, outputDir string) error {
	templates := renderer.Build(report.Patterns)
	if len(templates) == 0 {
		slog.Info("no templatable patterns detected, skipping template output")
		return nil
	}

	switch cmd.String("output-format") {
	case outputFormatDir:
		if err := renderer.Save(templates, outputDir); err != nil {
			return fmt.Errorf("error writing templates to %q: %w", outputDir, err)
		}
		fmt.Fprintf(os.Stdout, "Templates written to %s\n", outputDir)
		return nil

	case outputFormatOCI:
		return packageTemplates(ctx, cmd, templates, outputDir)

	default:
		return fmt.Errorf("unknown template output format: %q (supported values: %s, %s)",
			cmd.String("output-format"), outputFormatDir, outputFormatOCI)
	}
}

// packageTemplates saves templates to a staging directory, packages them as
// an OCI artifact in an Image Layout under outputDir, and optionally pushes
// the layout to the remote registry.
func packageTemplates(ctx context.Context, cmd *cli.Command, templates []renderer.Template, outputDir string) error {
	ref, err := oci.NewReference(cmd.String("registry"), cmd.String("repository"), cmd.String("tag"))
	if err != nil {
		return err
	}

	stagingDir, err := os.MkdirTemp("", "replicator-templates-*")
	if err != nil {
		return fmt.Errorf("failed to create staging directory: %w", err)
	}
	defer func() { _ = os.RemoveAll(stagingDir) }()

	if err := renderer.Save(templates, stagingDir); err != nil {
		return fmt.Errorf("error staging templates: %w", err)
	}

	result, err := oci.Package(ctx, oci.PackageOptions{
		SourceDir: stagingDir,
		OutputDir: filepath.Join(outputDir, "oci-layout"),
		Reference: ref,
		Annotations: map[string]string{
			"org.opencontainers.image.version": version,
			"org.opencontainers.image.vendor":  "NVIDIA",
			"org.opencontainers.image.title":   "Deployment Templates",
		},
	})
	if err != nil {
		return fmt.Errorf("error packaging templates as OCI artifact: %w", err)
	}

	slog.Info("templates packaged as OCI artifact",
		"reference", result.Reference,
		"digest", result.Digest,
		"store_path", result.StorePath)
	fmt.Fprintf(os.Stdout, "Templates packaged as %s (%s)\n", result.Reference, result.Digest)

	if !cmd.Bool("push") {
		return nil
	}

	pushResult, err := oci.PushFromStore(ctx, result.StorePath, oci.PushOptions{Reference: ref})
	if err != nil {
		return fmt.Errorf("error pushing templates to registry: %w", err)
	}

	slog.Info("templates pushed to registry",
		"reference", pushResult.Reference,
		"digest", pushResult.Digest)
	fmt.Fprintf(os.Stdout, "Templates pushed to %s\n", pushResult.Reference)
	return nil
}

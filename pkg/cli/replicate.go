/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/deploy-replicator/pkg/applicator"
	"github.com/NVIDIA/deploy-replicator/pkg/renderer"
	"github.com/NVIDIA/deploy-replicator/pkg/repo"
	"github.com/NVIDIA/deploy-replicator/pkg/scanner"
)

func replicateCmd() *cli.Command {
	return &cli.Command{
		Name:                  "replicate",
		EnableShellCompletion: true,
		Usage:                 "Replicate deployment patterns from one repository to another",
		ArgsUsage:             "<sourceRepo> <targetRepo>",
		Description: `Scan a source repository for deployment patterns, build parameterized
templates from them in memory, and apply the templates to a target repository
using variables derived from the target.

This is the end-to-end equivalent of running scan with --output followed by
apply, without the intermediate template directory.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "Preview changes without writing any files",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			sourcePath, err := repositoryArg(cmd, 0)
			if err != nil {
				return err
			}
			targetPath, err := repositoryArg(cmd, 1)
			if err != nil {
				return err
			}

			report, err := scanner.New().Scan(ctx, repo.OS(sourcePath))
			if err != nil {
				return fmt.Errorf("error scanning repository %q: %w", sourcePath, err)
			}

			fmt.Fprintf(os.Stdout, "Found %d pattern(s) in %s\n", len(report.Patterns), sourcePath)
			if len(report.Patterns) == 0 {
				return nil
			}

			templates := renderer.Build(report.Patterns)
			results, err := applicator.New().ApplyDirect(ctx, templates, repo.OS(targetPath), applicator.Options{
				DryRun: cmd.Bool("dry-run"),
			})
			if err != nil {
				return fmt.Errorf("error replicating patterns to %q: %w", targetPath, err)
			}

			printResultsTable(os.Stdout, results)

			summary := applicator.Summarize(results)
			fmt.Fprintf(os.Stdout, "%s\n", summaryLine(summary))

			if applicator.HasFailures(results) {
				return fmt.Errorf("%d pattern(s) failed to apply", summary.Failed)
			}
			return nil
		},
	}
}

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
	"github.com/NVIDIA/deploy-replicator/pkg/repo"
	"github.com/NVIDIA/deploy-replicator/pkg/serializer"
)

func applyCmd() *cli.Command {
	return &cli.Command{
		Name:                  "apply",
		EnableShellCompletion: true,
		Usage:                 "Apply rendered templates to a target repository",
		ArgsUsage:             "<templateDir> <targetRepo>",
		Description: `Apply previously generated templates to a target repository.

Templates are read from <templateDir> (helm/* chart directories and
argocd/*.yaml application manifests), rendered with variables derived from
the target repository, and written under deployments/ in the target.

Patterns already present in the target are skipped unless --force is set.
With --dry-run, no files are written and each pattern reports what would
be applied.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "Preview changes without writing any files",
			},
			&cli.BoolFlag{
				Name:  "force",
				Usage: "Apply patterns even when they already exist in the target",
			},
			formatFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			templateDir, err := directoryArg(cmd, 0, "template directory")
			if err != nil {
				return err
			}
			targetPath, err := repositoryArg(cmd, 1)
			if err != nil {
				return err
			}

			format := cmd.String("format")
			if serializer.Format(format).IsUnknown() {
				return fmt.Errorf("unknown output format: %q", format)
			}

			results, err := applicator.New().Apply(ctx, templateDir, repo.OS(targetPath), applicator.Options{
				DryRun: cmd.Bool("dry-run"),
				Force:  cmd.Bool("force"),
			})
			if err != nil {
				return fmt.Errorf("error applying templates to %q: %w", targetPath, err)
			}

			if err := writeResults(ctx, results, format); err != nil {
				return err
			}

			if applicator.HasFailures(results) {
				return fmt.Errorf("%d pattern(s) failed to apply", applicator.Summarize(results).Failed)
			}
			return nil
		},
	}
}

// writeResults serializes apply results to stdout. The table format uses a
// result listing instead of the generic flattened view.
func writeResults(ctx context.Context, results []applicator.Result, format string) error {
	if format == formatTable {
		printResultsTable(os.Stdout, results)
		fmt.Fprintf(os.Stdout, "\n%s\n", summaryLine(applicator.Summarize(results)))
		return nil
	}
	return serializer.NewStdoutWriter(serializer.Format(format)).Serialize(ctx, results)
}

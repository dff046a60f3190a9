/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/urfave/cli/v3"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/NVIDIA/deploy-replicator/pkg/applicator"
	apperrors "github.com/NVIDIA/deploy-replicator/pkg/errors"
	"github.com/NVIDIA/deploy-replicator/pkg/pattern"
	"github.com/NVIDIA/deploy-replicator/pkg/repo"
	"github.com/NVIDIA/deploy-replicator/pkg/scanner"
)

var titleCaser = cases.Title(language.English)

// repositoryArg returns the positional argument at index i, validated as an
// existing directory.
func repositoryArg(cmd *cli.Command, i int) (string, error) {
	return directoryArg(cmd, i, "repository")
}

// directoryArg returns the positional argument at index i, validated as an
// existing directory described by what in error messages.
func directoryArg(cmd *cli.Command, i int, what string) (string, error) {
	arg := cmd.Args().Get(i)
	if arg == "" {
		return "", apperrors.New(apperrors.ErrCodeInvalidRequest,
			fmt.Sprintf("missing %s argument", what))
	}
	if !repo.OS(arg).IsDir(".") {
		return "", apperrors.NewWithContext(apperrors.ErrCodeNotFound,
			fmt.Sprintf("%s does not exist or is not a directory", what),
			map[string]any{"path": arg})
	}
	return arg, nil
}

// displayKind renders a pattern kind for table output (e.g., "Helm").
func displayKind(k pattern.Kind) string {
	return titleCaser.String(string(k))
}

// printReportTable writes a human-readable pattern listing with per-kind
// counts.
func printReportTable(w io.Writer, report *scanner.Report) {
	fmt.Fprintf(w, "Repository: %s\n", report.Repository)
	fmt.Fprintf(w, "Scan ID:    %s\n", report.ScanID)
	fmt.Fprintf(w, "Duration:   %s\n\n", report.Duration)

	if len(report.Patterns) == 0 {
		fmt.Fprintln(w, "No deployment patterns detected.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "KIND\tNAME\tSOURCE\tCONFIGS")
	fmt.Fprintln(tw, "----\t----\t------\t-------")
	for _, p := range report.Patterns {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", displayKind(p.Kind), p.Name, p.SourcePath, len(p.ConfigFiles))
	}
	_ = tw.Flush()

	fmt.Fprintln(w)
	counts := report.CountByKind()
	for _, kind := range pattern.SupportedKinds() {
		if counts[kind] > 0 {
			fmt.Fprintf(w, "%s: %d\n", displayKind(kind), counts[kind])
		}
	}
}

// summaryLine renders an apply summary. Dry-run previews are counted
// separately from real applies.
func summaryLine(s applicator.Summary) string {
	line := fmt.Sprintf("Applied: %d, Skipped: %d, Failed: %d", s.Applied, s.Skipped, s.Failed)
	if s.WouldApply > 0 {
		line += fmt.Sprintf(", Would apply: %d", s.WouldApply)
	}
	return line
}

// printResultsTable writes a human-readable apply result listing.
func printResultsTable(w io.Writer, results []applicator.Result) {
	if len(results) == 0 {
		fmt.Fprintln(w, "No patterns to apply.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PATTERN\tSTATUS\tMESSAGE")
	fmt.Fprintln(tw, "-------\t------\t-------")
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Pattern, r.Status, r.Message)
	}
	_ = tw.Flush()
}

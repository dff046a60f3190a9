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
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/deploy-replicator/pkg/logging"
)

const (
	name           = "replicator"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

const formatTable = "table"

var formatFlag = &cli.StringFlag{
	Name:  "format",
	Value: formatTable,
	Usage: "Report output format (supported values: table, yaml, json)",
}

func rootCmd() *cli.Command {
	return &cli.Command{
		Name:                  name,
		EnableShellCompletion: true,
		Version:               version,
		Usage:                 "Deployment pattern replicator",
		Description: fmt.Sprintf(`replicator - Deployment pattern replicator

Version: %s
Commit:  %s
Built:   %s

Tooling to detect deployment patterns in a source repository and replicate
them into target repositories:

scan      - detects Helm charts, ArgoCD applications, and kustomizations
apply     - applies rendered templates to a target repository
replicate - scans a source repository and applies its patterns to a target`, version, commit, date),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log-level",
				Value: "info",
				Usage: "Log level (debug, info, warn, error)",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			logLevel := cmd.String("log-level")
			logging.SetDefaultStructuredLoggerWithLevel(name, version, logLevel)
			slog.Debug("starting",
				"name", name,
				"version", version,
				"commit", commit,
				"date", date,
				"logLevel", logLevel)
			return ctx, nil
		},
		Commands: []*cli.Command{
			scanCmd(),
			applyCmd(),
			replicateCmd(),
		},
	}
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle SIGINT/SIGTERM for graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nReceived interrupt signal, shutting down gracefully...")
		cancel()
	}()

	if err := rootCmd().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package logging provides structured logging for the replicator.
//
// It wraps the standard library slog package with project defaults: JSON
// output to stderr, module and version context on every record, source
// location tracking at debug level, and level configuration via the
// LOG_LEVEL environment variable or an explicit level string.
//
// Setting the default logger:
//
//	logging.SetDefaultStructuredLoggerWithLevel("replicator", "v1.0.0", "debug")
//	slog.Info("scan complete", "patterns", 3)
package logging

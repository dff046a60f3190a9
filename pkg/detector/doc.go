/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package detector implements per-kind deployment pattern detectors.
//
// Each detector walks a repository tree through the repo.Repository
// abstraction and produces typed pattern records. Detectors fail open:
// malformed or unreadable files are logged and excluded from results, and a
// detector never aborts a scan because one file could not be analyzed.
package detector

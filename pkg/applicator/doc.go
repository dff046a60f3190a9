/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package applicator writes rendered deployment templates into a target
// repository. Each pattern moves through a small state machine: absent
// patterns are applied (or previewed under dry run), present patterns are
// skipped unless force is set. Failures are recorded per pattern and never
// roll back files already written.
package applicator

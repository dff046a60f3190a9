/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package renderer holds the parameterized artifact bodies and the
// substitution engine that turns them into file contents.
//
// One fixed body exists per (kind, file role) pair, embedded from
// templates/. Substitution is literal: ${key} placeholders are replaced
// from the variable set or from the documented per-key default table, and a
// single ${if key=value} ... ${end} conditional block is supported. The
// engine is intentionally not a general templating language so the bodies
// can carry Helm's {{ }} actions verbatim.
package renderer

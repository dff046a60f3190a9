/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package extractor derives template variable sets.
//
// Two sources exist: Extract produces a kind-specific variable set from a
// detected pattern and its config files (used by the analysis report), and
// ForRepository produces apply-time defaults from the target repository
// identity (used by the direct-apply flow).
package extractor

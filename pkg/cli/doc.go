/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package cli implements the replicator command line interface: scan,
// apply, and replicate commands built on urfave/cli.
package cli

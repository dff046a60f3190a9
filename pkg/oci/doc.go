/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package oci packages rendered template bundles as OCI artifacts and
// pushes them to OCI registries.
package oci

/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package pattern defines the deployment pattern data model and the manifest
// classifier shared by all detectors.
//
// A Pattern is a value object describing one detected deployment
// configuration unit (Helm chart, ArgoCD application, or kustomization).
// Patterns flow through the scan, extract, render, and apply stages without
// mutation; each stage produces fresh values.
package pattern

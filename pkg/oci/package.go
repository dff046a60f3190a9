/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package oci

import (
	"context"
	"fmt"
	"path/filepath"

	ociv1 "github.com/opencontainers/image-spec/specs-go/v1"
	oras "oras.land/oras-go/v2"
	"oras.land/oras-go/v2/content/file"
	ocistore "oras.land/oras-go/v2/content/oci"
)

// ArtifactType is the media type for replicator template OCI artifacts.
const ArtifactType = "application/vnd.nvidia.replicator.templates"

// PackageOptions configures local OCI artifact packaging.
type PackageOptions struct {
	// SourceDir is the directory containing rendered templates to package.
	SourceDir string
	// OutputDir is where the OCI Image Layout will be created.
	OutputDir string
	// Reference is the registry reference recorded for the artifact.
	Reference *Reference
	// Annotations are additional manifest annotations to include.
	Annotations map[string]string
}

// PackageResult contains the result of a successful local packaging.
type PackageResult struct {
	// Digest is the SHA256 digest of the packaged artifact.
	Digest string
	// Reference is the full image reference (registry/repository:tag).
	Reference string
	// StorePath is the path to the local OCI Image Layout directory.
	StorePath string
}

// Package packages a template directory as an OCI artifact in a local OCI
// Image Layout, tagged with the reference tag. The layout can be pushed
// later with PushFromStore or distributed as-is.
func Package(ctx context.Context, opts PackageOptions) (*PackageResult, error) {
	if opts.Reference == nil {
		return nil, fmt.Errorf("reference is required for OCI packaging")
	}

	absSourceDir, err := filepath.Abs(opts.SourceDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve source directory: %w", err)
	}
	absOutputDir, err := filepath.Abs(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve output directory: %w", err)
	}

	fs, err := file.New(absSourceDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create file store: %w", err)
	}
	defer func() { _ = fs.Close() }()

	// Make tars deterministic so repeated packaging yields the same digest
	fs.TarReproducible = true

	layerDesc, err := fs.Add(ctx, ".", ociv1.MediaTypeImageLayerGzip, absSourceDir)
	if err != nil {
		return nil, fmt.Errorf("failed to add source directory to store: %w", err)
	}

	manifestDesc, err := oras.PackManifest(ctx, fs, oras.PackManifestVersion1_1, ArtifactType,
		oras.PackManifestOptions{
			Layers:              []ociv1.Descriptor{layerDesc},
			ManifestAnnotations: opts.Annotations,
		})
	if err != nil {
		return nil, fmt.Errorf("failed to pack manifest: %w", err)
	}

	if err := fs.Tag(ctx, manifestDesc, opts.Reference.Tag); err != nil {
		return nil, fmt.Errorf("failed to tag manifest in file store: %w", err)
	}

	store, err := ocistore.New(absOutputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create OCI layout store: %w", err)
	}

	desc, err := oras.Copy(ctx, fs, opts.Reference.Tag, store, opts.Reference.Tag, oras.DefaultCopyOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to copy artifact to OCI layout: %w", err)
	}

	return &PackageResult{
		Digest:    desc.Digest.String(),
		Reference: opts.Reference.String(),
		StorePath: absOutputDir,
	}, nil
}

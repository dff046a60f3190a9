/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package oci

import (
	"fmt"
	"strings"

	"github.com/distribution/reference"

	apperrors "github.com/NVIDIA/deploy-replicator/pkg/errors"
)

// Reference represents a validated OCI registry reference for template
// artifacts.
type Reference struct {
	// Registry is the OCI registry host (e.g., "ghcr.io", "localhost:5000").
	Registry string
	// Repository is the image repository path (e.g., "nvidia/templates").
	Repository string
	// Tag is the image tag (e.g., "v1.0.0").
	Tag string
}

// NewReference validates the registry, repository, and tag components and
// returns a Reference. The tag defaults to "latest" when empty.
func NewReference(registry, repository, tag string) (*Reference, error) {
	registry = stripProtocol(strings.TrimSpace(registry))
	repository = strings.TrimSpace(repository)
	if registry == "" {
		return nil, apperrors.New(apperrors.ErrCodeInvalidRequest, "registry is required")
	}
	if repository == "" {
		return nil, apperrors.New(apperrors.ErrCodeInvalidRequest, "repository is required")
	}
	if tag == "" {
		tag = "latest"
	}

	refString := fmt.Sprintf("%s/%s:%s", registry, repository, tag)
	if _, err := reference.ParseNormalizedNamed(refString); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidRequest,
			fmt.Sprintf("invalid image reference %q", refString), err)
	}

	return &Reference{
		Registry:   registry,
		Repository: repository,
		Tag:        tag,
	}, nil
}

// String returns the Docker-style image reference (registry/repository:tag).
func (r *Reference) String() string {
	return fmt.Sprintf("%s/%s:%s", r.Registry, r.Repository, r.Tag)
}

// stripProtocol removes http:// or https:// prefix from a registry URL.
func stripProtocol(registry string) string {
	registry = strings.TrimPrefix(registry, "https://")
	registry = strings.TrimPrefix(registry, "http://")
	return registry
}

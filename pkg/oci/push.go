/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package oci

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"

	oras "oras.land/oras-go/v2"
	ocistore "oras.land/oras-go/v2/content/oci"
	"oras.land/oras-go/v2/registry/remote"
	"oras.land/oras-go/v2/registry/remote/auth"
	"oras.land/oras-go/v2/registry/remote/credentials"
)

// PushOptions configures the OCI push operation.
type PushOptions struct {
	// Reference identifies the remote registry target.
	Reference *Reference
	// PlainHTTP uses HTTP instead of HTTPS for the registry connection.
	PlainHTTP bool
	// InsecureTLS skips TLS certificate verification.
	InsecureTLS bool
}

// PushResult contains the result of a successful OCI push.
type PushResult struct {
	// Digest is the SHA256 digest of the pushed artifact.
	Digest string
	// Reference is the full image reference (registry/repository:tag).
	Reference string
}

// PushFromStore pushes a previously packaged OCI Image Layout to a remote
// registry using ORAS.
func PushFromStore(ctx context.Context, storePath string, opts PushOptions) (*PushResult, error) {
	if opts.Reference == nil {
		return nil, fmt.Errorf("reference is required to push OCI image")
	}

	store, err := ocistore.New(storePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open OCI layout store: %w", err)
	}

	repo, err := remote.NewRepository(fmt.Sprintf("%s/%s", opts.Reference.Registry, opts.Reference.Repository))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize remote repository: %w", err)
	}
	repo.PlainHTTP = opts.PlainHTTP
	repo.Client = createAuthClient(opts.PlainHTTP, opts.InsecureTLS)

	desc, err := oras.Copy(ctx, store, opts.Reference.Tag, repo, opts.Reference.Tag, oras.DefaultCopyOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to push artifact to registry: %w", err)
	}

	return &PushResult{
		Digest:    desc.Digest.String(),
		Reference: opts.Reference.String(),
	}, nil
}

// createAuthClient creates an HTTP client with optional TLS configuration
// and Docker credential support.
func createAuthClient(plainHTTP, insecureTLS bool) *auth.Client {
	credStore, _ := credentials.NewStoreFromDocker(credentials.StoreOptions{})

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if !plainHTTP && insecureTLS {
		if transport.TLSClientConfig == nil {
			transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec
		} else {
			transport.TLSClientConfig.InsecureSkipVerify = true //nolint:gosec
		}
	}

	return &auth.Client{
		Client:     &http.Client{Transport: transport},
		Cache:      auth.NewCache(),
		Credential: credentials.Credential(credStore),
	}
}

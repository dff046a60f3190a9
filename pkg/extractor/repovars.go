/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package extractor

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"k8s.io/apimachinery/pkg/util/validation"

	"github.com/NVIDIA/deploy-replicator/pkg/gitutil"
)

// ForRepository derives apply-time template variables purely from the target
// repository identity. This is the variable source for the direct-apply flow;
// pattern-specific extraction feeds only the analysis path.
//
// The repository URL comes from the configured git remote when one exists,
// otherwise a constructed fallback under github.com/org is used.
func ForRepository(repoPath string) VariableSet {
	repoName := filepath.Base(filepath.Clean(repoPath))

	if errs := validation.IsDNS1123Subdomain(repoName); len(errs) > 0 {
		slog.Warn("repository name is not a valid resource name, generated manifests may need editing",
			"repository", repoName,
			"reason", errs[0],
		)
	}

	repoURL := gitutil.RemoteURL(repoPath)
	if repoURL == "" {
		repoURL = fmt.Sprintf("https://github.com/org/%s", repoName)
	}

	return VariableSet{
		"app_name":         repoName,
		"repo_name":        repoName,
		"repo_url":         repoURL,
		"chart_version":    "0.1.0",
		"app_version":      "1.0.0",
		"image_repository": fmt.Sprintf("myorg/%s", repoName),
		"image_tag":        "latest",
		"source_path":      "deployments/helm/" + repoName,
		"dest_namespace":   repoName,
		"source_type":      "helm",
	}
}

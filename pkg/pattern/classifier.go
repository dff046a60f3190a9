/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package pattern

import (
	"path/filepath"

	"gopkg.in/yaml.v3"
	"k8s.io/apimachinery/pkg/runtime/schema"
)

// argoGroup is the API group that marks a manifest as an ArgoCD resource.
const argoGroup = "argoproj.io"

// applicationKind is the resource kind required for ArgoCD application
// manifests. Matching on kind alone produces false positives from unrelated
// resources, so the group check above is also required.
const applicationKind = "Application"

// manifest is the minimal shape needed to classify a parsed document.
type manifest struct {
	APIVersion string `yaml:"apiVersion"`
	Kind       string `yaml:"kind"`
}

// Classify determines whether the file at path with the given raw content is
// a recognized manifest kind. Chart and kustomization matches are directory
// conventions keyed on the file name; the ArgoCD match is shape-based on the
// parsed content. Classification is total: malformed content is "no match",
// never an error.
func Classify(path string, content []byte) (Kind, bool) {
	switch filepath.Base(path) {
	case "Chart.yaml":
		// Convention match. Content must still be parsable structured data.
		var doc map[string]any
		if err := yaml.Unmarshal(content, &doc); err != nil {
			return "", false
		}
		return KindHelm, true
	case "kustomization.yaml", "kustomization.yml":
		var doc map[string]any
		if err := yaml.Unmarshal(content, &doc); err != nil {
			return "", false
		}
		return KindKustomize, true
	}

	if IsArgoApplication(content) {
		return KindArgoCD, true
	}
	return "", false
}

// IsArgoApplication reports whether the content is an ArgoCD Application
// manifest: API group under argoproj.io AND kind Application. Both conditions
// are required.
func IsArgoApplication(content []byte) bool {
	var m manifest
	if err := yaml.Unmarshal(content, &m); err != nil {
		return false
	}
	if m.Kind != applicationKind {
		return false
	}
	gv, err := schema.ParseGroupVersion(m.APIVersion)
	if err != nil {
		return false
	}
	return gv.Group == argoGroup
}

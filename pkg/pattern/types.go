/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package pattern

import "fmt"

const (
	// KindHelm identifies a Helm chart pattern (Chart.yaml descriptor).
	KindHelm Kind = "helm"

	// KindArgoCD identifies an ArgoCD Application manifest pattern.
	KindArgoCD Kind = "argocd"

	// KindKustomize identifies a kustomization pattern. Detected and
	// reported, but not acted on by the apply pipeline.
	KindKustomize Kind = "kustomize"
)

// Kind identifies a deployment pattern type.
type Kind string

// ParseKind converts a string to a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case string(KindHelm):
		return KindHelm, nil
	case string(KindArgoCD):
		return KindArgoCD, nil
	case string(KindKustomize):
		return KindKustomize, nil
	default:
		return "", fmt.Errorf("unknown pattern kind: %s", s)
	}
}

// SupportedKinds returns all pattern kinds in detection order.
func SupportedKinds() []Kind {
	return []Kind{KindHelm, KindArgoCD, KindKustomize}
}

// Attribute keys used in Pattern.Attributes.
const (
	// AttrVersion is the declared chart version.
	AttrVersion = "version"

	// AttrTemplateCount is the number of YAML files under a chart's
	// templates directory.
	AttrTemplateCount = "templateCount"

	// AttrSourceType records whether an ArgoCD application source section
	// carries a helm sub-key ("helm") or not ("kustomize").
	AttrSourceType = "sourceType"

	// AttrResources lists resource references declared in a kustomization.
	AttrResources = "resources"

	// AttrHasOverlays records whether a sibling overlays directory exists.
	AttrHasOverlays = "hasOverlays"

	// AttrStructure labels a kustomization's structural role: "base" when
	// its path contains a base segment, "overlay" for an overlays segment.
	AttrStructure = "structure"

	// AttrOverlayName is the overlay directory name for overlay-role
	// kustomizations.
	AttrOverlayName = "overlayName"
)

// Pattern is a detected deployment configuration unit. Patterns are value
// objects: created fresh on every scan, never mutated after construction,
// and never persisted.
//
// Kind and SourcePath together uniquely identify a pattern within one scan.
type Pattern struct {
	// Kind is the pattern type.
	Kind Kind `json:"kind" yaml:"kind"`

	// Name is the declared metadata name, falling back to the containing
	// directory (or file stem) when no name is declared.
	Name string `json:"name" yaml:"name"`

	// SourcePath is the repository-relative path to the root file or
	// directory that defines this pattern.
	SourcePath string `json:"source_path" yaml:"source_path"`

	// ConfigFiles holds repository-relative paths to the files belonging
	// to this pattern, in merge-precedence order (later files win).
	ConfigFiles []string `json:"config_files,omitempty" yaml:"config_files,omitempty"`

	// Attributes holds kind-specific auxiliary facts.
	Attributes map[string]any `json:"attributes,omitempty" yaml:"attributes,omitempty"`
}

// Identity returns the scan-unique identity key for the pattern.
func (p Pattern) Identity() string {
	return fmt.Sprintf("%s:%s", p.Kind, p.SourcePath)
}

// String returns the display identifier used in apply results, e.g. "helm/demo".
func (p Pattern) String() string {
	return fmt.Sprintf("%s/%s", p.Kind, p.Name)
}

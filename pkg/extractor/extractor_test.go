/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/deploy-replicator/pkg/pattern"
	"github.com/NVIDIA/deploy-replicator/pkg/repo"
)

func TestExtractHelmDefaults(t *testing.T) {
	// No config files: every key keeps its documented default.
	pat := pattern.Pattern{Kind: pattern.KindHelm, Name: "web", SourcePath: "charts/web"}

	vars := Extract(repo.Mem("demo", nil), pat)

	assert.Equal(t, "web", vars["app_name"])
	assert.Equal(t, "default", vars["namespace"])
	assert.Equal(t, "", vars["image.repository"])
	assert.Equal(t, "latest", vars["image.tag"])
}

func TestExtractHelmValues(t *testing.T) {
	r := repo.Mem("demo", map[string]string{
		"charts/web/values.yaml": `namespace: prod
image:
  repository: myorg/web
  tag: v2
`,
	})
	pat := pattern.Pattern{
		Kind:        pattern.KindHelm,
		Name:        "web",
		SourcePath:  "charts/web",
		ConfigFiles: []string{"charts/web/values.yaml"},
	}

	vars := Extract(r, pat)

	assert.Equal(t, "prod", vars["namespace"])
	assert.Equal(t, "myorg/web", vars["image.repository"])
	assert.Equal(t, "v2", vars["image.tag"])
}

func TestExtractHelmPartialImageMap(t *testing.T) {
	// An image map without a tag keeps the tag default.
	r := repo.Mem("demo", map[string]string{
		"charts/web/values.yaml": "image:\n  repository: myorg/web\n",
	})
	pat := pattern.Pattern{
		Kind:        pattern.KindHelm,
		Name:        "web",
		SourcePath:  "charts/web",
		ConfigFiles: []string{"charts/web/values.yaml"},
	}

	vars := Extract(r, pat)

	assert.Equal(t, "myorg/web", vars["image.repository"])
	assert.Equal(t, "latest", vars["image.tag"])
}

func TestExtractHelmTagWithoutRepository(t *testing.T) {
	// The unset field keeps its explicit empty default.
	r := repo.Mem("demo", map[string]string{
		"charts/web/values.yaml": "image:\n  tag: v2\n",
	})
	pat := pattern.Pattern{
		Kind:        pattern.KindHelm,
		Name:        "web",
		SourcePath:  "charts/web",
		ConfigFiles: []string{"charts/web/values.yaml"},
	}

	vars := Extract(r, pat)

	assert.Equal(t, "v2", vars["image.tag"])
	assert.Equal(t, "", vars["image.repository"])
}

func TestExtractHelmNestedImageKeys(t *testing.T) {
	// A nested mapping under image is skipped without discarding the
	// scalar keys or the rest of the document.
	r := repo.Mem("demo", map[string]string{
		"charts/web/values.yaml": `namespace: prod
image:
  repository: myorg/web
  tag: v2
  pullSecrets:
    - regcred
  extra:
    a: b
`,
	})
	pat := pattern.Pattern{
		Kind:        pattern.KindHelm,
		Name:        "web",
		SourcePath:  "charts/web",
		ConfigFiles: []string{"charts/web/values.yaml"},
	}

	vars := Extract(r, pat)

	assert.Equal(t, "prod", vars["namespace"])
	assert.Equal(t, "myorg/web", vars["image.repository"])
	assert.Equal(t, "v2", vars["image.tag"])
	assert.NotContains(t, vars, "image.extra")
	assert.NotContains(t, vars, "image.pullSecrets")
}

func TestExtractHelmNumericTag(t *testing.T) {
	r := repo.Mem("demo", map[string]string{
		"charts/web/values.yaml": "image:\n  repository: nginx\n  tag: 1.21\n",
	})
	pat := pattern.Pattern{
		Kind:        pattern.KindHelm,
		Name:        "web",
		SourcePath:  "charts/web",
		ConfigFiles: []string{"charts/web/values.yaml"},
	}

	vars := Extract(r, pat)

	assert.Equal(t, "1.21", vars["image.tag"])
}

func TestExtractHelmMalformedValuesKeepsDefaults(t *testing.T) {
	r := repo.Mem("demo", map[string]string{
		"charts/web/values.yaml": "image: [unclosed\n",
	})
	pat := pattern.Pattern{
		Kind:        pattern.KindHelm,
		Name:        "web",
		SourcePath:  "charts/web",
		ConfigFiles: []string{"charts/web/values.yaml"},
	}

	vars := Extract(r, pat)

	assert.Equal(t, "default", vars["namespace"])
	assert.Equal(t, "latest", vars["image.tag"])
}

func TestExtractHelmLaterFilesWin(t *testing.T) {
	r := repo.Mem("demo", map[string]string{
		"charts/web/values.yaml":      "namespace: staging\n",
		"charts/web/values-prod.yaml": "namespace: prod\n",
	})
	pat := pattern.Pattern{
		Kind:       pattern.KindHelm,
		Name:       "web",
		SourcePath: "charts/web",
		ConfigFiles: []string{
			"charts/web/values.yaml",
			"charts/web/values-prod.yaml",
		},
	}

	vars := Extract(r, pat)

	assert.Equal(t, "prod", vars["namespace"])
}

func TestExtractArgo(t *testing.T) {
	r := repo.Mem("demo", map[string]string{
		"argocd/web.yaml": `apiVersion: argoproj.io/v1alpha1
kind: Application
metadata:
  name: web
spec:
  destination:
    namespace: prod
  source:
    repoURL: https://github.com/org/web
    path: deployments/helm/web
`,
	})
	pat := pattern.Pattern{
		Kind:        pattern.KindArgoCD,
		Name:        "web",
		SourcePath:  "argocd/web.yaml",
		ConfigFiles: []string{"argocd/web.yaml"},
	}

	vars := Extract(r, pat)

	assert.Equal(t, "web", vars["app_name"])
	assert.Equal(t, "prod", vars["namespace"])
	assert.Equal(t, "https://github.com/org/web", vars["repo_url"])
	assert.Equal(t, "deployments/helm/web", vars["path"])
	assert.Equal(t, "default", vars["project"])
	assert.Equal(t, "HEAD", vars["target_revision"])
}

func TestExtractArgoDefaults(t *testing.T) {
	pat := pattern.Pattern{Kind: pattern.KindArgoCD, Name: "web", SourcePath: "argocd/web.yaml"}

	vars := Extract(repo.Mem("demo", nil), pat)

	assert.Equal(t, "argocd", vars["namespace"])
	assert.Equal(t, "", vars["repo_url"])
	assert.Equal(t, "", vars["path"])
}

func TestExtractUnknownKind(t *testing.T) {
	pat := pattern.Pattern{Kind: pattern.KindKustomize, Name: "base", SourcePath: "k8s/base"}

	vars := Extract(repo.Mem("demo", nil), pat)

	require.Len(t, vars, 1)
	assert.Equal(t, "base", vars["app_name"])
}

func TestVariableSetClone(t *testing.T) {
	orig := VariableSet{"app_name": "web"}
	clone := orig.Clone()
	clone["app_name"] = "changed"

	assert.Equal(t, "web", orig["app_name"])
}

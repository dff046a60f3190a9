/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package renderer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/NVIDIA/deploy-replicator/pkg/errors"
	"github.com/NVIDIA/deploy-replicator/pkg/extractor"
)

func TestRenderSubstitution(t *testing.T) {
	vars := extractor.VariableSet{"app_name": "web", "chart_version": "2.0.0"}

	out, err := Render("name: ${app_name}\nversion: ${chart_version}\n", vars)

	require.NoError(t, err)
	assert.Equal(t, "name: web\nversion: 2.0.0\n", out)
}

func TestRenderFallsBackToDefaults(t *testing.T) {
	out, err := Render("tag: ${image_tag}\nport: ${service_port}\n", extractor.VariableSet{})

	require.NoError(t, err)
	assert.Equal(t, "tag: latest\nport: 80\n", out)
}

func TestRenderDestNamespaceFallsBackToAppName(t *testing.T) {
	out, err := Render("namespace: ${dest_namespace}\n", extractor.VariableSet{"app_name": "web"})

	require.NoError(t, err)
	assert.Equal(t, "namespace: web\n", out)
}

func TestRenderUnknownPlaceholderFails(t *testing.T) {
	_, err := Render("x: ${no_such_key}\n", extractor.VariableSet{})

	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeRenderFailure))
}

func TestRenderHelmSyntaxPassesThrough(t *testing.T) {
	body := "image: \"{{ .Values.image.repository }}:{{ .Values.image.tag }}\"\n"

	out, err := Render(body, extractor.VariableSet{})

	require.NoError(t, err)
	assert.Equal(t, body, out)
}

func TestRenderConditionalKept(t *testing.T) {
	body := `source:
${if source_type=helm}
  helm: {}
${end}
`
	out, err := Render(body, extractor.VariableSet{"source_type": "helm"})

	require.NoError(t, err)
	assert.Contains(t, out, "helm: {}")
	assert.NotContains(t, out, "${if")
	assert.NotContains(t, out, "${end}")
}

func TestRenderConditionalDropped(t *testing.T) {
	body := `source:
${if source_type=helm}
  helm: {}
${end}
`
	out, err := Render(body, extractor.VariableSet{"source_type": "kustomize"})

	require.NoError(t, err)
	assert.NotContains(t, out, "helm: {}")
	assert.Equal(t, "source:\n", out)
}

func TestRenderUnbalancedConditionalFails(t *testing.T) {
	_, err := Render("${if source_type=helm}\nhelm: {}\n", extractor.VariableSet{})

	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeRenderFailure))
}

func TestRenderIsPure(t *testing.T) {
	vars := extractor.VariableSet{"app_name": "web"}

	_, err := Render("name: ${app_name} ns: ${dest_namespace}\n", vars)

	require.NoError(t, err)
	assert.Len(t, vars, 1, "rendering must not mutate the variable set")
}

func TestBuiltinTemplatesRenderWithDefaultsOnly(t *testing.T) {
	// Every placeholder in the embedded bodies has a default, so a fully
	// empty variable set must render cleanly.
	for name, body := range map[string]string{
		"chart":       chartTemplate,
		"values":      valuesTemplate,
		"application": applicationTemplate,
	} {
		t.Run(name, func(t *testing.T) {
			out, err := Render(body, extractor.VariableSet{})
			require.NoError(t, err)
			assert.False(t, strings.Contains(out, "${"), "unresolved placeholder in %s: %s", name, out)
		})
	}
}

func TestApplicationTemplateHelmBlock(t *testing.T) {
	helm, err := Render(applicationTemplate, extractor.VariableSet{"source_type": "helm"})
	require.NoError(t, err)
	assert.Contains(t, helm, "releaseName:")

	kustomize, err := Render(applicationTemplate, extractor.VariableSet{"source_type": "kustomize"})
	require.NoError(t, err)
	assert.NotContains(t, kustomize, "releaseName:")
}

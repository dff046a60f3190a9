/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package renderer

import (
	"fmt"
	"regexp"
	"strings"

	apperrors "github.com/NVIDIA/deploy-replicator/pkg/errors"
	"github.com/NVIDIA/deploy-replicator/pkg/extractor"
)

// Placeholder syntax is ${key}. The deliberately small engine performs
// literal replacement plus one conditional block; generated chart bodies
// carry Helm's own {{ }} actions, which pass through untouched.
var placeholderRe = regexp.MustCompile(`\$\{([a-z][a-z0-9_.]*)\}`)

// Conditional block markers: ${if key=value} ... ${end}, each on its own
// line. Blocks do not nest.
var (
	condStartRe = regexp.MustCompile(`(?m)^[ \t]*\$\{if ([a-z][a-z0-9_.]*)=([a-z0-9_.-]+)\}[ \t]*\r?\n`)
	condEndRe   = regexp.MustCompile(`(?m)^[ \t]*\$\{end\}[ \t]*\r?\n?`)
)

// Defaults is the per-key default table consulted when a variable set does
// not supply a placeholder value. Every placeholder used by the built-in
// template bodies has an entry here, so rendering with a partial variable
// set never fails.
var Defaults = map[string]string{
	"app_name":         "app",
	"repo_name":        "app",
	"repo_url":         "",
	"chart_version":    "0.1.0",
	"app_version":      "1.0.0",
	"replica_count":    "1",
	"image_repository": "nginx",
	"image_tag":        "latest",
	"pull_policy":      "IfNotPresent",
	"service_type":     "ClusterIP",
	"service_port":     "80",
	"ingress_enabled":  "false",
	"ingress_class":    "nginx",
	"cpu_limit":        "100m",
	"memory_limit":     "128Mi",
	"cpu_request":      "100m",
	"memory_request":   "128Mi",
	"argocd_namespace": "argocd",
	"project":          "default",
	"target_revision":  "HEAD",
	"source_path":      "",
	"dest_server":      "https://kubernetes.default.svc",
	"auto_prune":       "true",
	"self_heal":        "true",
	"source_type":      "helm",
}

// Render substitutes variables into a template body. Values are looked up in
// vars first, then in the default table; dest_namespace falls back to the
// resolved app_name. A placeholder with neither a value nor a default is a
// hard error, never silently blanked. Rendering is pure: no I/O, no
// mutation of vars.
func Render(body string, vars extractor.VariableSet) (string, error) {
	out, err := renderConditionals(body, vars)
	if err != nil {
		return "", err
	}

	var renderErr error
	out = placeholderRe.ReplaceAllStringFunc(out, func(match string) string {
		key := placeholderRe.FindStringSubmatch(match)[1]
		val, ok := resolve(key, vars)
		if !ok && renderErr == nil {
			renderErr = apperrors.New(apperrors.ErrCodeRenderFailure,
				fmt.Sprintf("no value or default for placeholder %q", key))
		}
		return val
	})
	if renderErr != nil {
		return "", renderErr
	}

	// Any marker surviving the conditional pass means the block structure
	// was malformed.
	if strings.Contains(out, "${if ") || strings.Contains(out, "${end}") {
		return "", apperrors.New(apperrors.ErrCodeRenderFailure,
			"unbalanced conditional block in template")
	}

	return out, nil
}

// resolve looks up a placeholder value: vars, then the defaults table.
func resolve(key string, vars extractor.VariableSet) (string, bool) {
	if val, ok := vars[key]; ok {
		return val, true
	}
	if key == "dest_namespace" {
		// Default destination namespace is the application name.
		return resolve("app_name", vars)
	}
	val, ok := Defaults[key]
	return val, ok
}

// renderConditionals keeps or drops ${if key=value} ... ${end} blocks based
// on the resolved value of key.
func renderConditionals(body string, vars extractor.VariableSet) (string, error) {
	for {
		start := condStartRe.FindStringSubmatchIndex(body)
		if start == nil {
			return body, nil
		}

		key := body[start[2]:start[3]]
		want := body[start[4]:start[5]]

		rest := body[start[1]:]
		end := condEndRe.FindStringIndex(rest)
		if end == nil {
			return "", apperrors.New(apperrors.ErrCodeRenderFailure,
				fmt.Sprintf("conditional block on %q has no matching end marker", key))
		}

		val, ok := resolve(key, vars)
		if !ok {
			return "", apperrors.New(apperrors.ErrCodeRenderFailure,
				fmt.Sprintf("no value or default for conditional key %q", key))
		}

		var block string
		if val == want {
			block = rest[:end[0]]
		}
		body = body[:start[0]] + block + rest[end[1]:]
	}
}

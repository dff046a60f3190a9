/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package applicator

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var applyResults = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "replicator_apply_results_total",
	Help: "Total number of pattern apply results by terminal status.",
}, []string{"status"})

func observeResults(results []Result) {
	for _, r := range results {
		applyResults.WithLabelValues(string(r.Status)).Inc()
	}
}

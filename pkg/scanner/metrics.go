/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package scanner

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	scanDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "replicator_scan_duration_seconds",
			Help:    "Duration of repository scans in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10},
		},
	)

	patternsDetected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "replicator_patterns_detected_total",
			Help: "Total number of deployment patterns detected, by kind",
		},
		[]string{"kind"},
	)
)

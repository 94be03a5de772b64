/*
Copyright © 2025 The speclint Authors
SPDX-License-Identifier: Apache-2.0
*/

package rule

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	statusPass = "pass"
	statusFail = "fail"
)

var (
	// Validation metrics
	validationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "speclint_validation_duration_seconds",
			Help:    "Time taken to validate a single spec folder",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10},
		},
	)

	validationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "speclint_validations_total",
			Help: "Total number of spec folder validations",
		},
		[]string{"status"}, // pass or fail
	)

	violationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "speclint_violations_total",
			Help: "Total number of recorded violations by rule group",
		},
		[]string{"group"}, // structure, common, v1, v2, policy, imports
	)
)

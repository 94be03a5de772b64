/*
Copyright © 2025 The speclint Authors
SPDX-License-Identifier: Apache-2.0
*/

package analyzer

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

var (
	// analysisDuration tracks how long full repository analyses take.
	analysisDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "speclint_analysis_duration_seconds",
		Help:    "Duration of full repository analyses in seconds",
		Buckets: []float64{1, 5, 10, 30, 60, 120, 300},
	})

	// analysesTotal counts repository analyses by outcome.
	analysesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "speclint_analyses_total",
		Help: "Total number of repository analyses by status",
	}, []string{"status"})

	// folderScanDuration tracks per-folder validation time during analysis.
	folderScanDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "speclint_analyzer_folder_scan_duration_seconds",
		Help:    "Duration of per-folder validations during analysis in seconds",
		Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10},
	})

	// foldersAnalyzedTotal counts folders validated across all analyses.
	foldersAnalyzedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "speclint_analyzer_folders_total",
		Help: "Total number of spec folders validated during analyses",
	})
)

/*
Copyright © 2025 The speclint Authors
SPDX-License-Identifier: Apache-2.0
*/

package defaults

import "time"

// Version-control timeouts for git queries.
const (
	// VCSQueryTimeout bounds a single git subprocess invocation.
	// Queries should respect parent context deadlines when shorter.
	VCSQueryTimeout = 10 * time.Second
)

// Validation timeouts for rule evaluation.
const (
	// ValidateTimeout bounds the validation of a single spec folder,
	// including its import boundary scan.
	ValidateTimeout = 30 * time.Second

	// AnalyzeTimeout bounds a repository-wide compliance analysis.
	// Large spec repositories hold a few thousand folders; the scan is
	// filesystem-bound and parallelized.
	AnalyzeTimeout = 5 * time.Minute
)

// Registry timeouts for report publishing.
const (
	// OCIPushTimeout bounds packaging and pushing a compliance report
	// to an OCI registry.
	OCIPushTimeout = 2 * time.Minute
)

// Analysis tuning.
const (
	// AnalyzeConcurrency is the default number of folders validated in
	// parallel during repository analysis.
	AnalyzeConcurrency = 4
)

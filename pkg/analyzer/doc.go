/*
Copyright © 2025 The speclint Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package analyzer validates every spec folder in a repository and
// aggregates the outcomes into a compliance report.
//
// # Discovery
//
// Spec folders are anchored by a tspconfig.yaml or a main.tsp anywhere
// under the specification tree. Folders inside examples subtrees and
// hidden directories are skipped, and the shared common-types organization
// is recorded as exempt instead of validated. Organizations are enumerated
// from the specification tree itself so that ones without a single
// anchored folder still appear in the report.
//
// # Aggregation
//
// Folders are validated concurrently with a bounded worker group and the
// results are sorted by path, so a report is deterministic for a given
// tree regardless of scheduling. Per-organization summaries mark an
// organization fully compliant only when every one of its folders passed.
package analyzer

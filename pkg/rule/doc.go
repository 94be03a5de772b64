/*
Copyright © 2025 The speclint Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package rule evaluates the spec folder layout rules and produces a
// Verdict.
//
// # Evaluation Model
//
// Validate runs every applicable rule against one folder and accumulates
// violations instead of stopping at the first failure, so a single run
// reports everything an author has to fix. Only two conditions
// short-circuit: a folder that does not exist, and a folder deeper than
// the global depth cap. The Verdict's error return is reserved for unusable
// inputs and collaborator failures; rule outcomes always travel inside the
// Verdict.
//
// # Rule Families
//
// Rules are grouped by the layout convention they belong to:
//
//   - structure: folder existence and the global depth cap
//   - common: rules shared by both layout versions (config file naming,
//     required definition files, examples, organization casing)
//   - v1: legacy layout rules (package depth, segment capitalization,
//     the ".Management" suffix hint)
//   - v2: migrated layout rules (exact shape depths, namespace and
//     service folder casing)
//   - policy: v2 adoption required by the organization's state on the
//     integration target branch
//   - imports: the import boundary of the folder
//
// # V2 Enforcement
//
// A folder that still looks like v1 may belong to an organization that has
// already migrated. The Validator asks its Oracle; any oracle error is
// mapped to "do not enforce" so version-control trouble never fails a run.
package rule

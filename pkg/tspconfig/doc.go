/*
Copyright © 2025 The speclint Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package tspconfig reads the per-folder TypeSpec configuration file.
//
// A spec folder carries a tspconfig.yaml describing its emitters and their
// options. The validation rules consume a single value from it: the
// azure-resource-provider-folder option of the autorest emitter, which
// reveals whether the folder generates into a resource-manager target and
// therefore drives the ".Management" package suffix rule.
//
// The hint is advisory. Callers treat a missing file, unparseable YAML, or
// an absent option as "no hint" rather than as a validation failure.
package tspconfig

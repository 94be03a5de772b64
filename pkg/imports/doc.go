/*
Copyright © 2025 The speclint Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package imports enforces the import boundary of a spec folder.
//
// TypeSpec sources may import other files by relative or absolute path.
// Those imports must stay inside an allowed root: the organization folder
// for v1 specs, the spec folder itself for v2. The Checker scans every
// .tsp file under the allowed root, extracts its path imports, resolves
// them against the importing file's directory, and reports the ones that
// escape.
//
// Bare package imports such as "@typespec/http" name installed packages,
// not files, and are exempt from the boundary.
package imports

/*
Copyright © 2025 The speclint Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package fsys provides the read-only filesystem collaborator used by the
// validation rules and the repository analyzer.
//
// The Service interface keeps rule code independent of the operating
// system so tests can substitute the Mock implementation. All operations
// take a context and return early when it is cancelled.
//
// Usage:
//
//	svc := fsys.NewOSService()
//	ok, err := svc.DirExists(ctx, "/repo/specification/contoso")
//
// Glob walks a subtree and matches base names only, so a pattern like
// "*.tsp" finds definition files at any depth under the given root.
package fsys

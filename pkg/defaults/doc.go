/*
Copyright © 2025 The speclint Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package defaults provides centralized configuration constants for the speclint system.
//
// This package defines timeout values and tuning parameters used across the
// codebase. Centralizing these values ensures consistency and makes tuning easier.
//
// # Usage
//
// Import and use constants directly:
//
//	import "github.com/typespec-tools/speclint/pkg/defaults"
//
//	ctx, cancel := context.WithTimeout(ctx, defaults.ValidateTimeout)
//	defer cancel()
//
// # Timeout Guidelines
//
// When choosing timeout values:
//
//   - VCS queries: 10s default, respects parent context deadline
//   - Folder validation: 30s for a single spec folder
//   - Repository analysis: 5m for a full spec tree walk
//   - Report publishing: 2m for an OCI registry push
package defaults

/*
Copyright © 2025 The speclint Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package errors provides structured error types for better observability
// and programmatic error handling across the application.
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeVCSUnavailable,
//	    "failed to list target branch tree",
//	    cause,
//	    map[string]interface{}{
//	        "ref":  ref,
//	        "path": path,
//	    },
//	)
package errors

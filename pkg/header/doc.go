/*
Copyright © 2025 The speclint Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package header provides common header types for speclint data structures.
//
// The Header type is embedded inline in serialized results (verdicts,
// compliance reports) to provide consistent Kind, APIVersion, and metadata
// fields following Kubernetes-style resource conventions.
//
// Init stamps a header with the resource kind, schema version, RFC3339
// creation timestamp, tool version, and a unique run identifier:
//
//	result.Init(header.KindVerdict, "speclint.dev/v1alpha1", version)
package header

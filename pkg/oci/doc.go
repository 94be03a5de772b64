/*
Copyright © 2025 The speclint Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package oci provides functionality for packaging and pushing compliance reports to OCI-compliant registries.
//
// This package enables validation reports to be pushed to any OCI-compliant registry
// (Docker Hub, GHCR, ECR, local registries, etc.) using the ORAS (OCI Registry As Storage) library.
// Artifacts are packaged as OCI Image Layout format and can be pushed to remote registries.
//
// # Overview
//
// The package provides three main operations:
//   - Package: Creates a local OCI artifact in OCI Image Layout format
//   - PushFromStore: Pushes a previously packaged artifact to a remote registry
//   - Push: Packs and pushes a directory to a remote registry in one step
//
// Package and PushFromStore can be combined for a package-then-push workflow
// (see PackageAndPush), or used independently.
//
// # Core Types
//
//   - PackageOptions: Configuration for local OCI packaging
//   - PackageResult: Result of local packaging (digest, reference, store path)
//   - PushOptions: Configuration for pushing to remote registries
//   - PushResult: Result of a successful push (digest, reference)
//   - Reference: Parsed output target (OCI registry reference or local path)
//
// # Usage
//
// Package and push in two steps:
//
//	// First, package locally
//	pkgResult, err := oci.Package(ctx, oci.PackageOptions{
//	    SourceDir:  "/path/to/report",
//	    OutputDir:  "/path/to/output",
//	    Registry:   "ghcr.io",
//	    Repository: "contoso/spec-reports",
//	    Tag:        "v1.0.0",
//	})
//	if err != nil {
//	    return err
//	}
//
//	// Then push to registry
//	pushResult, err := oci.PushFromStore(ctx, pkgResult.StorePath, oci.PushOptions{
//	    Registry:   "ghcr.io",
//	    Repository: "contoso/spec-reports",
//	    Tag:        "v1.0.0",
//	})
//
// Output targets can also be parsed from a single string:
//
//	ref, err := oci.ParseOutputTarget("oci://ghcr.io/contoso/spec-reports:v1.0.0")
//
// # Configuration
//
// PushOptions supports several configuration options:
//   - PlainHTTP: Use HTTP instead of HTTPS (for local development registries)
//   - InsecureTLS: Skip TLS certificate verification
//   - Annotations: Additional manifest annotations (e.g., report timestamp)
//
// # Authentication
//
// The package automatically uses Docker credential helpers for authentication.
// Credentials are loaded from the standard Docker configuration (~/.docker/config.json)
// using the ORAS credentials package.
//
// # Artifact Type
//
// Artifacts are pushed with the media type "application/vnd.speclint.report".
// This custom media type identifies speclint reports and distinguishes them from
// runnable container images. Consumers that don't understand this type should
// treat the artifact as a non-executable blob.
package oci

/*
Copyright © 2025 The speclint Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package cli implements the command-line interface for the speclint tool.
//
// # Overview
//
// The speclint CLI validates TypeSpec API spec folders against the repository
// layout conventions. It checks a single folder on demand, or walks a whole
// spec repository and aggregates the outcomes into a compliance report. It is
// designed for spec authors verifying their own folders and for CI pipelines
// tracking repository-wide convention adoption.
//
// # Commands
//
// validate - Check a single spec folder:
//
//	speclint validate --folder specification/contoso/Widgets [--target-branch main] [--fail-on-error]
//
// Runs the structural, naming, and import rules against one folder and emits
// a verdict listing every violation found. The folder's layout version is
// detected from its path shape, and the policy oracle decides whether the
// newer layout is enforced for it. Output defaults to stdout in YAML format.
//
// analyze - Build a repository compliance report:
//
//	speclint analyze [--repo DIR] [--concurrency N] [--output FILE]
//
// Discovers every spec folder under the repository's specification tree,
// validates each one in parallel, and aggregates per-folder verdicts into
// repository and per-organization summaries. The report can optionally be
// pushed to an OCI registry for archival:
//
//	speclint analyze --push --registry ghcr.io --repository contoso/spec-reports
//
// # Global Flags
//
//	--output, -o   Output file path (default: stdout)
//	--format, -t   Output format: yaml, json, table (default: yaml)
//	--help, -h     Show command help
//	--version, -v  Show version information
//
// # Output Formats
//
// YAML (default):
//   - Human-readable, preserves structure
//   - Suitable for version control
//
// JSON:
//   - Machine-parseable, compact
//   - Suitable for programmatic consumption
//
// Table:
//   - Hierarchical text representation
//   - Suitable for terminal viewing
//
// # Usage Examples
//
// Validate a folder and fail the build on violations:
//
//	speclint validate -f specification/contoso/Widgets --fail-on-error
//
// Validate against a release branch instead of main:
//
//	speclint validate -f specification/contoso/Widgets --target-branch release/2025-06
//
// Analyze a repository and write the report as JSON:
//
//	speclint analyze --repo /src/azure-rest-api-specs -o report.json -t json
//
// # Configuration
//
// Both commands read an optional .speclint.yaml file at the repository root
// and SPECLINT_* environment variables. Command-line flags take precedence
// over environment variables, which take precedence over the file.
//
// # Environment Variables
//
//	SPECLINT_LOG_LEVEL      Set logging verbosity (debug, info, warn, error)
//	SPECLINT_FORMAT         Default output format
//	SPECLINT_REPO           Repository root directory
//	SPECLINT_TARGET_BRANCH  Branch the policy oracle compares against
//	SPECLINT_CONCURRENCY    Folders validated in parallel during analyze
//
// # Exit Codes
//
//	0  Success
//	1  General error (invalid arguments, execution failure, --fail-on-error)
//	2  Context canceled or timeout
//
// # Architecture
//
// The CLI uses the urfave/cli/v3 framework and delegates to specialized packages:
//   - pkg/rule - Single-folder validation
//   - pkg/analyzer - Repository-wide discovery and aggregation
//   - pkg/policy - Layout enforcement decisions
//   - pkg/vcs - Git repository queries
//   - pkg/serializer - Output formatting
//   - pkg/logging - Structured logging
//
// Version information is embedded at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/typespec-tools/speclint/pkg/cli.version=1.0.0'"
package cli

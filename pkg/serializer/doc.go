/*
Copyright © 2025 The speclint Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package serializer provides encoding and decoding of verdict and report data in multiple formats.
//
// # Overview
//
// The serializer package handles conversion between validation data structures and
// various output formats including JSON, YAML, and human-readable tables. It supports
// both encoding (writing data) and decoding (reading data) operations with automatic
// format detection.
//
// # Supported Formats
//
// JSON:
//   - Machine-parseable, compact representation
//   - Suitable for CI pipelines and programmatic consumption
//   - Standard encoding/json package
//
// YAML:
//   - Human-readable with preserved structure
//   - Suitable for committed reports and version control
//   - gopkg.in/yaml.v3 package
//
// Table:
//   - Flattened FIELD / VALUE text representation
//   - Suitable for terminal/console viewing
//   - Read-only (no deserialization support)
//
// # Usage - Encoding
//
// Write to stdout (YAML):
//
//	w := serializer.NewStdoutWriter(serializer.FormatYAML)
//	if err := w.Serialize(ctx, verdict); err != nil {
//	    log.Fatal(err)
//	}
//
// Write to a file, falling back to stdout when the path is empty:
//
//	ser := serializer.NewFileWriterOrStdout(serializer.FormatJSON, "verdict.json")
//	if c, ok := ser.(serializer.Closer); ok {
//	    defer c.Close()
//	}
//	if err := ser.Serialize(ctx, verdict); err != nil {
//	    log.Fatal(err)
//	}
//
// # Usage - Decoding
//
// Read from a file with automatic format detection:
//
//	reader, err := serializer.NewFileReaderAuto("report.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer reader.Close()
//
//	var report analyzer.ComplianceReport
//	if err := reader.Deserialize(&report); err != nil {
//	    log.Fatal(err)
//	}
//
// Or load in one call:
//
//	report, err := serializer.FromFile[analyzer.ComplianceReport]("report.yaml")
//
// # Format Detection
//
// File extension-based detection:
//   - .json → JSON
//   - .yaml, .yml → YAML
//   - .table, .txt → Table
//   - Other → JSON (default)
//
// # Resource Management
//
// Always close writers and readers that manage files:
//
//	reader, err := serializer.NewFileReaderAuto("verdict.json")
//	if err != nil {
//	    return err
//	}
//	defer reader.Close()
//
// Stdout writers don't require closing but Close() is safe to call.
//
// # Error Handling
//
// Errors are returned when:
//   - Format is unknown or unsupported
//   - File cannot be opened or created
//   - Data cannot be marshaled/unmarshaled
//   - Table format used for deserialization
//
// All errors include context for debugging.
//
// # Integration
//
// Used throughout speclint for data I/O:
//   - pkg/cli - Command output formatting
//   - pkg/rule - Verdict serialization
//   - pkg/analyzer - Compliance report serialization
package serializer

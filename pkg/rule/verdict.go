/*
Copyright © 2025 The speclint Authors
SPDX-License-Identifier: Apache-2.0
*/

package rule

import (
	"fmt"
	"strings"
	"time"

	"github.com/typespec-tools/speclint/pkg/header"
	"github.com/typespec-tools/speclint/pkg/layout"
)

// Group identifies the rule family that produced a violation. It doubles
// as the metrics label for violation counters.
type Group string

// Group constants for every rule family the Validator evaluates.
const (
	GroupStructure Group = "structure"
	GroupCommon    Group = "common"
	GroupV1        Group = "v1"
	GroupV2        Group = "v2"
	GroupPolicy    Group = "policy"
	GroupImports   Group = "imports"
)

// String returns the string representation of the Group.
func (g Group) String() string {
	return string(g)
}

// Violation is one rule failure with its human-readable message.
type Violation struct {
	// Group is the rule family that recorded the violation.
	Group Group `json:"group" yaml:"group"`

	// Message describes the violation and what the author has to fix.
	Message string `json:"message" yaml:"message"`
}

// Diagnostic is one non-fatal trace entry recorded during evaluation.
// Diagnostics explain what the Validator saw; they never affect the
// outcome.
type Diagnostic struct {
	// Kind classifies the entry, e.g. "folder", "config" or "imports".
	Kind string `json:"kind" yaml:"kind"`

	// Detail is the entry payload.
	Detail string `json:"detail" yaml:"detail"`
}

// Verdict is the complete outcome of validating one spec folder.
type Verdict struct {
	header.Header `json:",inline" yaml:",inline"`

	// Folder is the folder path exactly as passed to Validate.
	Folder string `json:"folder" yaml:"folder"`

	// RelativePath is the normalized folder path relative to the
	// repository root.
	RelativePath string `json:"relativePath" yaml:"relativePath"`

	// LayoutVersion is the structurally detected layout convention.
	LayoutVersion layout.Version `json:"layoutVersion,omitempty" yaml:"layoutVersion,omitempty"`

	// SpecKind is the v2 layout family. Empty for v1 folders.
	SpecKind layout.SpecKind `json:"specKind,omitempty" yaml:"specKind,omitempty"`

	// V2Enforced reports that the integration target branch required the
	// v2 rules for this folder regardless of its detected version.
	V2Enforced bool `json:"v2Enforced" yaml:"v2Enforced"`

	// Success is true when no violation was recorded.
	Success bool `json:"success" yaml:"success"`

	// Violations are the recorded rule failures in evaluation order.
	Violations []Violation `json:"violations" yaml:"violations"`

	// Diagnostics are the trace entries recorded during evaluation.
	Diagnostics []Diagnostic `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`

	// Duration is how long the validation took.
	Duration time.Duration `json:"duration" yaml:"duration"`
}

// NewVerdict creates an empty Verdict with initialized slices.
func NewVerdict() *Verdict {
	return &Verdict{
		Violations:  make([]Violation, 0),
		Diagnostics: make([]Diagnostic, 0),
	}
}

// ErrorText joins every violation message in evaluation order, one message
// per line, each line newline-terminated. It returns the empty string when
// the verdict is a success.
func (v *Verdict) ErrorText() string {
	if len(v.Violations) == 0 {
		return ""
	}

	var b strings.Builder
	for _, viol := range v.Violations {
		b.WriteString(viol.Message)
		b.WriteByte('\n')
	}
	return b.String()
}

// DiagnosticLog joins every diagnostic entry in evaluation order, one
// "kind: detail" line per entry.
func (v *Verdict) DiagnosticLog() string {
	if len(v.Diagnostics) == 0 {
		return ""
	}

	var b strings.Builder
	for _, d := range v.Diagnostics {
		b.WriteString(d.Kind)
		b.WriteString(": ")
		b.WriteString(d.Detail)
		b.WriteByte('\n')
	}
	return b.String()
}

// addViolation records one rule failure.
func (v *Verdict) addViolation(group Group, format string, args ...any) {
	v.Violations = append(v.Violations, Violation{
		Group:   group,
		Message: fmt.Sprintf(format, args...),
	})
	violationsTotal.WithLabelValues(string(group)).Inc()
}

// addDiagnostic records one trace entry.
func (v *Verdict) addDiagnostic(kind, format string, args ...any) {
	v.Diagnostics = append(v.Diagnostics, Diagnostic{
		Kind:   kind,
		Detail: fmt.Sprintf(format, args...),
	})
}

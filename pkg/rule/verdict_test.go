/*
Copyright © 2025 The speclint Authors
SPDX-License-Identifier: Apache-2.0
*/

package rule

import (
	"testing"
)

func TestErrorText(t *testing.T) {
	tests := []struct {
		name       string
		violations []Violation
		want       string
	}{
		{
			name:       "no violations",
			violations: nil,
			want:       "",
		},
		{
			name: "single violation",
			violations: []Violation{
				{Group: GroupStructure, Message: "The spec folder \"x\" does not exist."},
			},
			want: "The spec folder \"x\" does not exist.\n",
		},
		{
			name: "order preserved",
			violations: []Violation{
				{Group: GroupCommon, Message: "first"},
				{Group: GroupV1, Message: "second"},
				{Group: GroupImports, Message: "third"},
			},
			want: "first\nsecond\nthird\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewVerdict()
			v.Violations = append(v.Violations, tt.violations...)
			if got := v.ErrorText(); got != tt.want {
				t.Errorf("ErrorText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDiagnosticLog(t *testing.T) {
	v := NewVerdict()
	if got := v.DiagnosticLog(); got != "" {
		t.Errorf("DiagnosticLog() on empty verdict = %q, want empty", got)
	}

	v.addDiagnostic(diagFolder, "specification/contoso/Widgets")
	v.addDiagnostic(diagImports, "%s imports [%s]", "main.tsp", "./models.tsp")

	want := "folder: specification/contoso/Widgets\n" +
		"imports: main.tsp imports [./models.tsp]\n"
	if got := v.DiagnosticLog(); got != want {
		t.Errorf("DiagnosticLog() = %q, want %q", got, want)
	}
}

func TestAddViolationFormats(t *testing.T) {
	v := NewVerdict()
	v.addViolation(GroupV2, "The service folder %q must be PascalCase and contain only letters and digits.", "my-widgets")

	if len(v.Violations) != 1 {
		t.Fatalf("Violations = %d, want 1", len(v.Violations))
	}
	got := v.Violations[0]
	if got.Group != GroupV2 {
		t.Errorf("Group = %s, want %s", got.Group, GroupV2)
	}
	want := "The service folder \"my-widgets\" must be PascalCase and contain only letters and digits."
	if got.Message != want {
		t.Errorf("Message = %q, want %q", got.Message, want)
	}
}

func TestNewVerdictInitialized(t *testing.T) {
	v := NewVerdict()
	if v.Violations == nil || v.Diagnostics == nil {
		t.Error("NewVerdict() must initialize both slices")
	}
	if len(v.Violations) != 0 || len(v.Diagnostics) != 0 {
		t.Error("NewVerdict() must start empty")
	}
}

/*
Copyright © 2025 The speclint Authors
SPDX-License-Identifier: Apache-2.0
*/

package header

import (
	"testing"

	"github.com/google/uuid"
)

func TestKindIsValid(t *testing.T) {
	tests := []struct {
		name string
		kind Kind
		want bool
	}{
		{name: "verdict", kind: KindVerdict, want: true},
		{name: "compliance report", kind: KindComplianceReport, want: true},
		{name: "unknown", kind: Kind("Snapshot"), want: false},
		{name: "empty", kind: Kind(""), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.kind.IsValid(); got != tt.want {
				t.Errorf("IsValid(%q) = %v, want %v", tt.kind, got, tt.want)
			}
		})
	}
}

func TestNew(t *testing.T) {
	h := New(
		WithKind(KindVerdict),
		WithAPIVersion("speclint.dev/v1alpha1"),
		WithMetadata("source", "specification/contoso/Contoso"),
	)

	if h.Kind != KindVerdict {
		t.Errorf("expected kind %s, got %s", KindVerdict, h.Kind)
	}
	if h.APIVersion != "speclint.dev/v1alpha1" {
		t.Errorf("unexpected apiVersion %s", h.APIVersion)
	}
	if h.Metadata["source"] != "specification/contoso/Contoso" {
		t.Errorf("unexpected metadata: %v", h.Metadata)
	}
}

func TestInit(t *testing.T) {
	var h Header
	h.Init(KindComplianceReport, "speclint.dev/v1alpha1", "v1.2.3")

	if h.Kind != KindComplianceReport {
		t.Errorf("expected kind %s, got %s", KindComplianceReport, h.Kind)
	}
	if h.Metadata["timestamp"] == "" {
		t.Error("expected timestamp to be set")
	}
	if h.Metadata["version"] != "v1.2.3" {
		t.Errorf("expected version v1.2.3, got %s", h.Metadata["version"])
	}
	if _, err := uuid.Parse(h.Metadata["id"]); err != nil {
		t.Errorf("expected metadata id to be a UUID, got %q", h.Metadata["id"])
	}
}

func TestInitWithoutVersion(t *testing.T) {
	var h Header
	h.Init(KindVerdict, "speclint.dev/v1alpha1", "")

	if _, ok := h.Metadata["version"]; ok {
		t.Error("expected version metadata to be omitted when empty")
	}
}

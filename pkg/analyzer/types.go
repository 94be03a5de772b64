/*
Copyright © 2025 The speclint Authors
SPDX-License-Identifier: Apache-2.0
*/

package analyzer

import (
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/typespec-tools/speclint/pkg/header"
	"github.com/typespec-tools/speclint/pkg/layout"
	"github.com/typespec-tools/speclint/pkg/rule"
)

// ExemptOrganization is the shared-types organization that is recorded in
// reports but never validated.
const ExemptOrganization = "common-types"

// managementSuffix marks a package folder that belongs to the management
// plane even under the v1 layout.
const managementSuffix = ".Management"

// Plane identifies which API plane a spec folder serves.
type Plane string

// Plane constants.
const (
	PlaneManagement Plane = "management"
	PlaneData       Plane = "data"
)

// String returns the string representation of the Plane.
func (p Plane) String() string {
	return string(p)
}

// FolderResult is the per-folder slice of a compliance report.
type FolderResult struct {
	// Path is the folder path relative to the repository root.
	Path string `json:"path" yaml:"path"`

	// Organization is the organization segment of the path.
	Organization string `json:"organization" yaml:"organization"`

	// LayoutVersion is the structurally detected layout convention.
	LayoutVersion layout.Version `json:"layoutVersion,omitempty" yaml:"layoutVersion,omitempty"`

	// SpecKind is the v2 layout family. Empty for v1 folders.
	SpecKind layout.SpecKind `json:"specKind,omitempty" yaml:"specKind,omitempty"`

	// Plane classifies the folder as management-plane or data-plane.
	Plane Plane `json:"plane" yaml:"plane"`

	// V2Enforced reports that the integration target branch required the
	// v2 rules for this folder.
	V2Enforced bool `json:"v2Enforced" yaml:"v2Enforced"`

	// Success is true when the folder validated without violations.
	Success bool `json:"success" yaml:"success"`

	// Violations are the recorded rule failures in evaluation order.
	Violations []rule.Violation `json:"violations,omitempty" yaml:"violations,omitempty"`
}

// OrgSummary aggregates the folder results of one organization.
type OrgSummary struct {
	// Name is the organization segment as it appears on disk.
	Name string `json:"name" yaml:"name"`

	// DisplayName is a human-readable rendering of the name.
	DisplayName string `json:"displayName,omitempty" yaml:"displayName,omitempty"`

	// Exempt marks the shared-types organization that is never validated.
	Exempt bool `json:"exempt,omitempty" yaml:"exempt,omitempty"`

	// Folders is the number of validated spec folders.
	Folders int `json:"folders" yaml:"folders"`

	// V1Folders counts folders on the legacy layout.
	V1Folders int `json:"v1Folders" yaml:"v1Folders"`

	// V2Folders counts folders on the migrated layout.
	V2Folders int `json:"v2Folders" yaml:"v2Folders"`

	// Compliant counts folders that validated without violations.
	Compliant int `json:"compliant" yaml:"compliant"`

	// FullyCompliant is true when every folder of the organization passed.
	FullyCompliant bool `json:"fullyCompliant" yaml:"fullyCompliant"`
}

// Summary holds the repository-level totals of a compliance report.
type Summary struct {
	// Organizations is the number of organizations in the tree,
	// anchored or not.
	Organizations int `json:"organizations" yaml:"organizations"`

	// Folders is the number of validated spec folders.
	Folders int `json:"folders" yaml:"folders"`

	// V1Folders counts folders on the legacy layout.
	V1Folders int `json:"v1Folders" yaml:"v1Folders"`

	// V2Folders counts folders on the migrated layout.
	V2Folders int `json:"v2Folders" yaml:"v2Folders"`

	// Compliant counts folders that validated without violations.
	Compliant int `json:"compliant" yaml:"compliant"`

	// Violations is the total violation count across all folders.
	Violations int `json:"violations" yaml:"violations"`
}

// ComplianceReport is the outcome of validating every spec folder in a
// repository.
type ComplianceReport struct {
	header.Header `json:",inline" yaml:",inline"`

	// RepoRoot is the analyzed repository root.
	RepoRoot string `json:"repoRoot" yaml:"repoRoot"`

	// Summary holds the repository-level totals.
	Summary Summary `json:"summary" yaml:"summary"`

	// Organizations are the per-organization summaries sorted by name.
	Organizations []*OrgSummary `json:"organizations" yaml:"organizations"`

	// Folders are the per-folder results sorted by path.
	Folders []*FolderResult `json:"folders" yaml:"folders"`

	// Duration is how long the analysis took.
	Duration time.Duration `json:"duration" yaml:"duration"`
}

// NewComplianceReport creates an empty ComplianceReport with initialized
// slices.
func NewComplianceReport() *ComplianceReport {
	return &ComplianceReport{
		Organizations: make([]*OrgSummary, 0),
		Folders:       make([]*FolderResult, 0),
	}
}

// newFolderResult reduces a verdict to its report slice.
func newFolderResult(v *rule.Verdict) *FolderResult {
	p := layout.Classify(v.RelativePath)
	org, _ := p.Organization()

	return &FolderResult{
		Path:          v.RelativePath,
		Organization:  org,
		LayoutVersion: v.LayoutVersion,
		SpecKind:      v.SpecKind,
		Plane:         classifyPlane(p),
		V2Enforced:    v.V2Enforced,
		Success:       v.Success,
		Violations:    v.Violations,
	}
}

// classifyPlane assigns a folder to the management or data plane. A
// resource-manager path segment or a ".Management" package suffix selects
// the management plane; everything else serves the data plane.
func classifyPlane(p layout.Path) Plane {
	if p.Kind == layout.SpecKindResourceManager ||
		strings.HasSuffix(p.PackageFolder(), managementSuffix) {
		return PlaneManagement
	}
	return PlaneData
}

// displayName renders an organization segment for humans,
// e.g. "widget-factory" becomes "Widget Factory".
func displayName(org string) string {
	parts := strings.FieldsFunc(org, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	titler := cases.Title(language.English)
	for i, part := range parts {
		parts[i] = titler.String(part)
	}

	return strings.Join(parts, " ")
}

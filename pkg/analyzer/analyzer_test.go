/*
Copyright © 2025 The speclint Authors
SPDX-License-Identifier: Apache-2.0
*/

package analyzer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/typespec-tools/speclint/pkg/header"
	"github.com/typespec-tools/speclint/pkg/layout"
	"github.com/typespec-tools/speclint/pkg/rule"
)

const (
	testConfig = "emit:\n  - \"@azure-tools/typespec-autorest\"\n"
	testMain   = "namespace Contoso.Widgets;\n\nmodel Widget {\n  id: string;\n}\n"
)

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

// newTestRepo lays out a small specification tree with one compliant v1
// folder, one compliant v2 folder, one failing v1 folder, and several
// anchors that discovery must skip.
func newTestRepo(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	spec := filepath.Join(root, "specification")

	// Compliant v1 folder.
	widgets := filepath.Join(spec, "contoso", "Widgets")
	writeTestFile(t, filepath.Join(widgets, "tspconfig.yaml"), testConfig)
	writeTestFile(t, filepath.Join(widgets, "main.tsp"), testMain)
	writeTestFile(t, filepath.Join(widgets, "examples", "widget.json"), "{}")

	// Anchor inside an examples subtree. Skipped.
	writeTestFile(t, filepath.Join(widgets, "examples", "case", "main.tsp"), testMain)

	// Compliant v2 data-plane folder.
	fabric := filepath.Join(spec, "fabric", "data-plane", "Fabric")
	writeTestFile(t, filepath.Join(fabric, "tspconfig.yaml"), testConfig)
	writeTestFile(t, filepath.Join(fabric, "main.tsp"), testMain)
	writeTestFile(t, filepath.Join(fabric, "examples", "fabric.json"), "{}")

	// Failing v1 folder. Lowercase package, no config, no examples.
	writeTestFile(t, filepath.Join(spec, "widgets", "tools", "main.tsp"), testMain)

	// Anchor under the exempt shared-types organization. Skipped.
	writeTestFile(t, filepath.Join(spec, ExemptOrganization, "types", "main.tsp"), testMain)

	// Anchor under a hidden directory. Skipped.
	writeTestFile(t, filepath.Join(spec, ".tools", "main.tsp"), testMain)

	// Organization without a single anchored folder.
	require.NoError(t, os.MkdirAll(filepath.Join(spec, "emptyorg"), 0o755))

	// Non-directory entries never become organizations.
	writeTestFile(t, filepath.Join(spec, "README.md"), "# specs\n")

	return root
}

func TestAnalyzeReport(t *testing.T) {
	root := newTestRepo(t)

	a := New(
		WithVersion("v1.2.3"),
		WithRepoRoot(root),
		WithConcurrency(2),
	)

	report, err := a.Analyze(t.Context())
	require.NoError(t, err)
	require.NotNil(t, report)

	assert.Equal(t, header.KindComplianceReport, report.Kind)
	assert.Equal(t, rule.APIVersion, report.APIVersion)
	assert.Equal(t, "v1.2.3", report.Metadata["version"])
	assert.Equal(t, root, report.RepoRoot)
	assert.Positive(t, report.Duration)

	require.Len(t, report.Folders, 3)
	assert.Equal(t, "specification/contoso/Widgets", report.Folders[0].Path)
	assert.Equal(t, "specification/fabric/data-plane/Fabric", report.Folders[1].Path)
	assert.Equal(t, "specification/widgets/tools", report.Folders[2].Path)

	widgets := report.Folders[0]
	assert.Equal(t, "contoso", widgets.Organization)
	assert.Equal(t, layout.VersionV1, widgets.LayoutVersion)
	assert.Equal(t, PlaneData, widgets.Plane)
	assert.True(t, widgets.Success)
	assert.Empty(t, widgets.Violations)

	fabric := report.Folders[1]
	assert.Equal(t, "fabric", fabric.Organization)
	assert.Equal(t, layout.VersionV2, fabric.LayoutVersion)
	assert.Equal(t, layout.SpecKindDataPlane, fabric.SpecKind)
	assert.Equal(t, PlaneData, fabric.Plane)
	assert.True(t, fabric.Success)

	tools := report.Folders[2]
	assert.Equal(t, "widgets", tools.Organization)
	assert.Equal(t, layout.VersionV1, tools.LayoutVersion)
	assert.False(t, tools.Success)
	require.Len(t, tools.Violations, 3)
	assert.Equal(t, rule.GroupCommon, tools.Violations[0].Group)
	assert.Equal(t, rule.GroupV1, tools.Violations[1].Group)
	assert.Equal(t, rule.GroupV1, tools.Violations[2].Group)

	assert.Equal(t, 5, report.Summary.Organizations)
	assert.Equal(t, 3, report.Summary.Folders)
	assert.Equal(t, 2, report.Summary.V1Folders)
	assert.Equal(t, 1, report.Summary.V2Folders)
	assert.Equal(t, 2, report.Summary.Compliant)
	assert.Equal(t, 3, report.Summary.Violations)
}

func TestAnalyzeOrganizations(t *testing.T) {
	root := newTestRepo(t)

	a := New(WithRepoRoot(root))

	report, err := a.Analyze(t.Context())
	require.NoError(t, err)

	require.Len(t, report.Organizations, 5)

	names := make([]string, 0, len(report.Organizations))
	for _, org := range report.Organizations {
		names = append(names, org.Name)
	}
	assert.Equal(t, []string{ExemptOrganization, "contoso", "emptyorg", "fabric", "widgets"}, names)

	common := report.Organizations[0]
	assert.True(t, common.Exempt)
	assert.Zero(t, common.Folders)
	assert.True(t, common.FullyCompliant)

	contoso := report.Organizations[1]
	assert.Equal(t, "Contoso", contoso.DisplayName)
	assert.False(t, contoso.Exempt)
	assert.Equal(t, 1, contoso.Folders)
	assert.Equal(t, 1, contoso.V1Folders)
	assert.Equal(t, 1, contoso.Compliant)
	assert.True(t, contoso.FullyCompliant)

	empty := report.Organizations[2]
	assert.Zero(t, empty.Folders)
	assert.True(t, empty.FullyCompliant)

	widgets := report.Organizations[4]
	assert.Equal(t, 1, widgets.Folders)
	assert.Zero(t, widgets.Compliant)
	assert.False(t, widgets.FullyCompliant)
}

func TestAnalyzeEmptyRepoRoot(t *testing.T) {
	a := New()

	report, err := a.Analyze(t.Context())
	require.Error(t, err)
	assert.Nil(t, report)
	assert.ErrorContains(t, err, "repository root cannot be empty")
}

func TestAnalyzeMissingSpecDir(t *testing.T) {
	a := New(WithRepoRoot(t.TempDir()))

	report, err := a.Analyze(t.Context())
	require.Error(t, err)
	assert.Nil(t, report)
	assert.ErrorContains(t, err, "no specification directory")
}

func TestAnalyzeCustomSpecDir(t *testing.T) {
	root := t.TempDir()
	widgets := filepath.Join(root, "specs", "contoso", "Widgets")
	writeTestFile(t, filepath.Join(widgets, "tspconfig.yaml"), testConfig)
	writeTestFile(t, filepath.Join(widgets, "main.tsp"), testMain)
	writeTestFile(t, filepath.Join(widgets, "examples", "widget.json"), "{}")

	a := New(WithRepoRoot(root), WithSpecDir("specs"))

	report, err := a.Analyze(t.Context())
	require.NoError(t, err)

	require.Len(t, report.Folders, 1)
	assert.Equal(t, "specs/contoso/Widgets", report.Folders[0].Path)
	assert.Equal(t, "contoso", report.Folders[0].Organization)
	assert.True(t, report.Folders[0].Success)

	require.Len(t, report.Organizations, 1)
	assert.Equal(t, "contoso", report.Organizations[0].Name)
}

// fakeValidator is a FolderValidator double that records the folders it was
// handed and fails on demand.
type fakeValidator struct {
	mu     sync.Mutex
	root   string
	seen   []string
	failOn string
	err    error
}

func (f *fakeValidator) Validate(_ context.Context, folder string) (*rule.Verdict, error) {
	f.mu.Lock()
	f.seen = append(f.seen, folder)
	f.mu.Unlock()

	if f.err != nil && strings.HasSuffix(folder, f.failOn) {
		return nil, f.err
	}

	rel, err := filepath.Rel(f.root, folder)
	if err != nil {
		return nil, err
	}

	v := rule.NewVerdict()
	v.RelativePath = layout.Normalize(rel)
	v.LayoutVersion = layout.Classify(v.RelativePath).Version
	v.Success = true

	return v, nil
}

func TestAnalyzeDiscovery(t *testing.T) {
	root := newTestRepo(t)
	fake := &fakeValidator{root: root}

	a := New(
		WithRepoRoot(root),
		WithValidator(fake),
		WithConcurrency(8),
	)

	report, err := a.Analyze(t.Context())
	require.NoError(t, err)

	// Only the three anchored spec folders reach the validator. Anchors
	// under examples, hidden directories, and the exempt organization
	// never do.
	assert.Len(t, fake.seen, 3)
	for _, folder := range fake.seen {
		assert.NotContains(t, folder, "examples")
		assert.NotContains(t, folder, ".tools")
		assert.NotContains(t, folder, ExemptOrganization)
	}

	require.Len(t, report.Folders, 3)
	assert.True(t, report.Folders[0].Path < report.Folders[1].Path)
	assert.True(t, report.Folders[1].Path < report.Folders[2].Path)
}

func TestAnalyzeValidatorError(t *testing.T) {
	root := newTestRepo(t)
	fake := &fakeValidator{
		root:   root,
		failOn: "tools",
		err:    errors.New("git unavailable"),
	}

	a := New(WithRepoRoot(root), WithValidator(fake))

	report, err := a.Analyze(t.Context())
	require.Error(t, err)
	assert.Nil(t, report)
	assert.ErrorContains(t, err, "failed to validate folder")
	assert.ErrorContains(t, err, "git unavailable")
}

func TestNewDefaults(t *testing.T) {
	a := New()
	assert.Equal(t, 4, a.concurrency)
	assert.Equal(t, layout.RootSegment, a.specDir)
	assert.NotNil(t, a.fs)

	a = New(WithConcurrency(-1), WithSpecDir(""))
	assert.Equal(t, 1, a.concurrency)
	assert.Equal(t, layout.RootSegment, a.specDir)
}

func TestClassifyPlane(t *testing.T) {
	tests := []struct {
		name string
		rel  string
		want Plane
	}{
		{
			name: "v2 data plane",
			rel:  "specification/contoso/data-plane/Widgets",
			want: PlaneData,
		},
		{
			name: "v2 resource manager",
			rel:  "specification/contoso/resource-manager/Microsoft.Contoso/Widgets",
			want: PlaneManagement,
		},
		{
			name: "v1 management suffix",
			rel:  "specification/contoso/Widgets.Management",
			want: PlaneManagement,
		},
		{
			name: "v1 plain",
			rel:  "specification/contoso/Widgets",
			want: PlaneData,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyPlane(layout.Classify(tt.rel))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		org  string
		want string
	}{
		{org: "contoso", want: "Contoso"},
		{org: "widget-factory", want: "Widget Factory"},
		{org: "widget.factory", want: "Widget Factory"},
		{org: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.org, func(t *testing.T) {
			assert.Equal(t, tt.want, displayName(tt.org))
		})
	}
}

func TestSkipFolder(t *testing.T) {
	spec := "/repo/specification"

	tests := []struct {
		name string
		dir  string
		want bool
	}{
		{
			name: "regular folder",
			dir:  "/repo/specification/contoso/Widgets",
			want: false,
		},
		{
			name: "examples subtree",
			dir:  "/repo/specification/contoso/Widgets/examples/case",
			want: true,
		},
		{
			name: "hidden directory",
			dir:  "/repo/specification/.tools",
			want: true,
		},
		{
			name: "exempt organization",
			dir:  "/repo/specification/common-types/types",
			want: true,
		},
		{
			name: "specification root itself",
			dir:  "/repo/specification",
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, skipFolder(spec, tt.dir))
		})
	}
}

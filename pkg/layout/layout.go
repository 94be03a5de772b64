/*
Copyright © 2025 The speclint Authors
SPDX-License-Identifier: Apache-2.0
*/

package layout

import (
	"path"
	"path/filepath"
	"strings"
)

const (
	// RootSegment is the required first path segment of every spec folder.
	RootSegment = "specification"

	// MarkerDataPlane is the literal segment selecting the v2 data-plane shape.
	MarkerDataPlane = "data-plane"

	// MarkerResourceManager is the literal segment selecting the v2
	// resource-manager shape.
	MarkerResourceManager = "resource-manager"

	// MaxDepth is the maximum number of path segments permitted below the
	// repository root for any spec folder, regardless of layout version.
	MaxDepth = 5

	// minMarkerIndex is the first segment index at which a v2 marker is
	// recognized. A marker in the specification or organization position
	// does not select v2.
	minMarkerIndex = 2

	// DataPlaneDepth is the exact segment count of a well-formed v2
	// data-plane folder (specification/org/data-plane/Service).
	DataPlaneDepth = 4

	// ResourceManagerDepth is the exact segment count of a well-formed v2
	// resource-manager folder (specification/org/resource-manager/RP.Namespace/Service).
	ResourceManagerDepth = 5

	// V1MaxDepth is the maximum segment count of a v1 folder, keeping the
	// package folder at most 3 levels below the organization.
	V1MaxDepth = 4
)

// Version represents the folder layout convention a path conforms to.
type Version string

// Version constants for the two coexisting layout conventions.
const (
	// VersionV1 is the legacy layout (specification/org/Package[.Sub]...).
	VersionV1 Version = "v1"

	// VersionV2 is the migrated layout keyed by a data-plane or
	// resource-manager marker segment.
	VersionV2 Version = "v2"
)

// String returns the string representation of the Version.
func (v Version) String() string {
	return string(v)
}

// SpecKind identifies which v2 layout family a path belongs to.
type SpecKind string

// SpecKind constants. SpecKindNone applies to v1 paths.
const (
	SpecKindNone            SpecKind = ""
	SpecKindDataPlane       SpecKind = "data-plane"
	SpecKindResourceManager SpecKind = "resource-manager"
)

// String returns the string representation of the SpecKind.
func (k SpecKind) String() string {
	return string(k)
}

// Path is the classified form of a spec folder path relative to the
// repository root.
type Path struct {
	// Rel is the normalized folder path relative to the repository root.
	Rel string

	// Segments are the non-empty components of Rel in order.
	Segments []string

	// Version is the structurally detected layout version.
	Version Version

	// Kind is the v2 layout family; SpecKindNone under v1.
	Kind SpecKind

	// HasBothMarkers reports that both v2 markers appear at recognized
	// indices, which is itself malformed.
	HasBothMarkers bool
}

// Classify splits a repository-relative folder path into segments and
// detects its layout version and kind. The path is v2 only when a marker
// segment sits at index two or deeper; markers in the specification or
// organization position leave the path v1 and are reported by other checks.
func Classify(rel string) Path {
	segments := SplitSegments(rel)

	p := Path{
		Rel:      strings.Join(segments, "/"),
		Segments: segments,
		Version:  VersionV1,
	}

	var dataPlane, resourceManager bool
	for i := minMarkerIndex; i < len(segments); i++ {
		switch segments[i] {
		case MarkerDataPlane:
			dataPlane = true
		case MarkerResourceManager:
			resourceManager = true
		}
	}

	switch {
	case dataPlane && resourceManager:
		p.Version = VersionV2
		p.HasBothMarkers = true
		// Earliest marker wins so later checks still run against one shape.
		for i := minMarkerIndex; i < len(segments); i++ {
			if segments[i] == MarkerDataPlane {
				p.Kind = SpecKindDataPlane
				break
			}
			if segments[i] == MarkerResourceManager {
				p.Kind = SpecKindResourceManager
				break
			}
		}
	case dataPlane:
		p.Version = VersionV2
		p.Kind = SpecKindDataPlane
	case resourceManager:
		p.Version = VersionV2
		p.Kind = SpecKindResourceManager
	}

	return p
}

// Depth returns the number of path segments below the repository root.
func (p Path) Depth() int {
	return len(p.Segments)
}

// Organization returns the organization segment (index 1) and whether it
// is present.
func (p Path) Organization() (string, bool) {
	if len(p.Segments) < 2 {
		return "", false
	}
	return p.Segments[1], true
}

// PackageFolder returns the final path segment, the folder under validation.
func (p Path) PackageFolder() string {
	if len(p.Segments) == 0 {
		return ""
	}
	return p.Segments[len(p.Segments)-1]
}

// Namespace returns the second-to-last segment, the resource-provider
// namespace position of a v2 resource-manager path, and whether it exists.
func (p Path) Namespace() (string, bool) {
	if len(p.Segments) < 2 {
		return "", false
	}
	return p.Segments[len(p.Segments)-2], true
}

// ExceedsMaxDepth reports whether the path breaks the global depth cap.
func (p Path) ExceedsMaxDepth() bool {
	return p.Depth() > MaxDepth
}

// Normalize canonicalizes a path for comparison: separators become forward
// slashes and redundant elements are removed.
func Normalize(p string) string {
	cleaned := path.Clean(strings.ReplaceAll(p, "\\", "/"))
	if cleaned == "." {
		return ""
	}
	return cleaned
}

// SplitSegments normalizes a path and returns its non-empty components.
func SplitSegments(p string) []string {
	normalized := Normalize(p)
	if normalized == "" {
		return nil
	}

	parts := strings.Split(normalized, "/")
	segments := make([]string, 0, len(parts))
	for _, part := range parts {
		if part == "" || part == "." {
			continue
		}
		segments = append(segments, part)
	}
	return segments
}

// RelativeToRoot computes the folder path relative to the repository root
// in normalized form. When exactly one of the two paths is absolute, both
// are resolved against the working directory first, so a relative folder
// argument works against a discovered absolute root.
func RelativeToRoot(repoRoot, folder string) (string, error) {
	if filepath.IsAbs(repoRoot) != filepath.IsAbs(folder) {
		r, err := filepath.Abs(repoRoot)
		if err != nil {
			return "", err
		}
		f, err := filepath.Abs(folder)
		if err != nil {
			return "", err
		}
		repoRoot, folder = r, f
	}

	rel, err := filepath.Rel(repoRoot, folder)
	if err != nil {
		return "", err
	}
	return Normalize(rel), nil
}

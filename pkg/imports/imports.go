/*
Copyright © 2025 The speclint Authors
SPDX-License-Identifier: Apache-2.0
*/

package imports

import (
	"context"
	"log/slog"
	"path/filepath"
	"regexp"
	"strings"

	apperrors "github.com/typespec-tools/speclint/pkg/errors"
	"github.com/typespec-tools/speclint/pkg/fsys"
)

// sourcePattern matches the definition files subject to the boundary scan.
const sourcePattern = "*.tsp"

// importLine matches a whole line holding a single import statement and
// captures the import path.
var importLine = regexp.MustCompile(`^\s*import\s+"([^"]+)"\s*;\s*$`)

// FileScan records one scanned file and the path imports found in it.
type FileScan struct {
	// File is the scanned source file.
	File string `json:"file" yaml:"file"`

	// Imports are the relative and absolute imports the file declares,
	// in source order.
	Imports []string `json:"imports,omitempty" yaml:"imports,omitempty"`
}

// Finding describes one import that resolves outside the allowed root.
type Finding struct {
	// File is the importing source file.
	File string `json:"file" yaml:"file"`

	// Import is the import path as written in the source.
	Import string `json:"import" yaml:"import"`

	// AllowedRoot is the subtree the import escaped.
	AllowedRoot string `json:"allowedRoot" yaml:"allowedRoot"`
}

// Result is the outcome of scanning one allowed root.
type Result struct {
	// Scanned lists every visited file with its path imports, in the
	// stable order the filesystem service returns.
	Scanned []FileScan `json:"scanned,omitempty" yaml:"scanned,omitempty"`

	// Findings lists the imports that escaped the allowed root.
	Findings []Finding `json:"findings,omitempty" yaml:"findings,omitempty"`
}

// Checker scans definition sources for imports that escape an allowed root.
type Checker struct {
	fs fsys.Service
}

// NewChecker creates a Checker backed by the given filesystem service, or
// the operating system when nil.
func NewChecker(fs fsys.Service) *Checker {
	if fs == nil {
		fs = fsys.NewOSService()
	}
	return &Checker{fs: fs}
}

// Check enumerates the definition files under allowedRoot and reports the
// relative and absolute imports that resolve outside it.
func (c *Checker) Check(ctx context.Context, allowedRoot string) (*Result, error) {
	files, err := c.fs.Glob(ctx, allowedRoot, sourcePattern, false)
	if err != nil {
		return nil, apperrors.WrapWithContext(apperrors.ErrCodeInternal,
			"failed to enumerate definition files", err,
			map[string]any{"root": allowedRoot})
	}

	res := &Result{}
	for _, file := range files {
		raw, err := c.fs.ReadFile(ctx, file)
		if err != nil {
			return nil, apperrors.WrapWithContext(apperrors.ErrCodeInternal,
				"failed to read definition file", err,
				map[string]any{"file": file})
		}

		imps := extractPathImports(string(raw))
		res.Scanned = append(res.Scanned, FileScan{File: file, Imports: imps})
		slog.Debug("scanned definition file", "file", file, "imports", len(imps))

		for _, imp := range imps {
			if escapesRoot(file, imp, allowedRoot) {
				res.Findings = append(res.Findings, Finding{
					File:        file,
					Import:      imp,
					AllowedRoot: allowedRoot,
				})
			}
		}
	}

	return res, nil
}

// extractPathImports returns the relative and absolute imports declared in
// src, in source order. Bare package imports are skipped.
func extractPathImports(src string) []string {
	var imports []string
	for _, line := range strings.Split(src, "\n") {
		m := importLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		if isPathImport(m[1]) {
			imports = append(imports, m[1])
		}
	}
	return imports
}

// isPathImport reports whether the import names a filesystem location
// rather than an installed package.
func isPathImport(imp string) bool {
	return strings.HasPrefix(imp, "./") ||
		strings.HasPrefix(imp, "../") ||
		filepath.IsAbs(imp)
}

// escapesRoot resolves imp against the importing file's directory and
// reports whether the result leaves root.
func escapesRoot(file, imp, root string) bool {
	resolved := imp
	if !filepath.IsAbs(resolved) {
		resolved = filepath.Join(filepath.Dir(file), imp)
	}

	rel, err := filepath.Rel(root, resolved)
	if err != nil {
		return true
	}
	return rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

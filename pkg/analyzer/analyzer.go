/*
Copyright © 2025 The speclint Authors
SPDX-License-Identifier: Apache-2.0
*/

package analyzer

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/typespec-tools/speclint/pkg/defaults"
	apperrors "github.com/typespec-tools/speclint/pkg/errors"
	"github.com/typespec-tools/speclint/pkg/fsys"
	"github.com/typespec-tools/speclint/pkg/header"
	"github.com/typespec-tools/speclint/pkg/layout"
	"github.com/typespec-tools/speclint/pkg/rule"
	"github.com/typespec-tools/speclint/pkg/tspconfig"
)

const (
	// anchorMain marks a folder as a spec folder by entrypoint.
	anchorMain = "main.tsp"

	// examplesDirName is the per-folder subtree that never contains
	// spec folders of its own.
	examplesDirName = "examples"
)

// FolderValidator validates a single spec folder. It is implemented by
// rule.Validator.
type FolderValidator interface {
	Validate(ctx context.Context, folder string) (*rule.Verdict, error)
}

// Analyzer walks a repository and validates every discovered spec folder.
type Analyzer struct {
	// Version is the version stamped into report headers.
	Version string

	// RepoRoot is the repository root containing the specification tree.
	RepoRoot string

	fs          fsys.Service
	validator   FolderValidator
	specDir     string
	concurrency int
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithVersion sets the version stamped into report headers.
func WithVersion(version string) Option {
	return func(a *Analyzer) {
		a.Version = version
	}
}

// WithRepoRoot sets the repository root to analyze.
func WithRepoRoot(root string) Option {
	return func(a *Analyzer) {
		a.RepoRoot = root
	}
}

// WithFilesystem sets the filesystem service used for discovery.
func WithFilesystem(fs fsys.Service) Option {
	return func(a *Analyzer) {
		a.fs = fs
	}
}

// WithSpecDir sets the name of the specification tree under the repository
// root. Empty keeps the default.
func WithSpecDir(dir string) Option {
	return func(a *Analyzer) {
		if dir != "" {
			a.specDir = dir
		}
	}
}

// WithValidator sets the per-folder validator. When unset, a rule.Validator
// sharing the analyzer's filesystem and repository root is used.
func WithValidator(v FolderValidator) Option {
	return func(a *Analyzer) {
		a.validator = v
	}
}

// WithConcurrency caps the number of folders validated in parallel.
func WithConcurrency(n int) Option {
	return func(a *Analyzer) {
		a.concurrency = n
	}
}

// New creates an Analyzer with the provided options.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		specDir:     layout.RootSegment,
		concurrency: defaults.AnalyzeConcurrency,
	}

	for _, opt := range opts {
		opt(a)
	}

	if a.fs == nil {
		a.fs = fsys.NewOSService()
	}
	if a.concurrency < 1 {
		a.concurrency = 1
	}

	return a
}

// Analyze discovers every spec folder under the repository's specification
// tree, validates them concurrently, and aggregates the verdicts into a
// ComplianceReport. Per-folder violations land in the report, not in the
// returned error. The error is reserved for the analysis itself failing.
func (a *Analyzer) Analyze(ctx context.Context) (*ComplianceReport, error) {
	start := time.Now()

	if strings.TrimSpace(a.RepoRoot) == "" {
		analysesTotal.WithLabelValues(statusError).Inc()
		return nil, apperrors.New(apperrors.ErrCodeInvalidRequest, "repository root cannot be empty")
	}

	specRoot := filepath.Join(a.RepoRoot, a.specDir)

	exists, err := a.fs.DirExists(ctx, specRoot)
	if err != nil {
		analysesTotal.WithLabelValues(statusError).Inc()
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, "failed to check specification directory", err)
	}
	if !exists {
		analysesTotal.WithLabelValues(statusError).Inc()
		return nil, apperrors.NewWithContext(apperrors.ErrCodeNotFound,
			"no specification directory under repository root",
			map[string]any{"repoRoot": a.RepoRoot, "specDir": a.specDir})
	}

	folders, err := a.discover(ctx, specRoot)
	if err != nil {
		analysesTotal.WithLabelValues(statusError).Inc()
		return nil, err
	}

	slog.Debug("starting repository analysis",
		"repoRoot", a.RepoRoot,
		"folders", len(folders),
		"concurrency", a.concurrency,
	)

	results, err := a.validateAll(ctx, folders)
	if err != nil {
		analysesTotal.WithLabelValues(statusError).Inc()
		return nil, err
	}

	orgs, err := a.organizations(ctx, specRoot, results)
	if err != nil {
		analysesTotal.WithLabelValues(statusError).Inc()
		return nil, err
	}

	report := NewComplianceReport()
	report.Init(header.KindComplianceReport, rule.APIVersion, a.Version)
	report.RepoRoot = a.RepoRoot
	report.Folders = results
	report.Organizations = orgs
	report.Summary = summarize(orgs, results)
	report.Duration = time.Since(start)

	analysisDuration.Observe(report.Duration.Seconds())
	analysesTotal.WithLabelValues(statusSuccess).Inc()

	slog.Debug("repository analysis complete",
		"folders", report.Summary.Folders,
		"compliant", report.Summary.Compliant,
		"violations", report.Summary.Violations,
		"duration", report.Duration,
	)

	return report, nil
}

// discover returns the sorted set of spec folders under the specification
// tree. A folder qualifies when it holds a tspconfig.yaml or a main.tsp.
// Folders inside examples subtrees, hidden directories, and the exempt
// shared-types organization are skipped.
func (a *Analyzer) discover(ctx context.Context, specRoot string) ([]string, error) {
	configs, err := a.fs.Glob(ctx, specRoot, tspconfig.FileName, false)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, "failed to scan for spec folder configs", err)
	}

	mains, err := a.fs.Glob(ctx, specRoot, anchorMain, false)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, "failed to scan for spec folder entrypoints", err)
	}

	seen := make(map[string]struct{})
	folders := make([]string, 0, len(configs))

	for _, anchor := range append(configs, mains...) {
		dir := filepath.Dir(anchor)
		if _, ok := seen[dir]; ok {
			continue
		}
		seen[dir] = struct{}{}

		if skipFolder(specRoot, dir) {
			continue
		}
		folders = append(folders, dir)
	}

	sort.Strings(folders)

	return folders, nil
}

// skipFolder reports whether a discovered anchor directory should be left
// out of validation.
func skipFolder(specRoot, dir string) bool {
	rel, err := filepath.Rel(specRoot, dir)
	if err != nil {
		return true
	}

	segments := layout.SplitSegments(rel)
	if len(segments) == 0 {
		// The specification root itself can host stray anchor files but
		// is not a spec folder.
		return true
	}

	for _, seg := range segments {
		if seg == examplesDirName {
			return true
		}
		if strings.HasPrefix(seg, ".") {
			return true
		}
		if seg == ExemptOrganization {
			return true
		}
	}

	return false
}

// validateAll fans the discovered folders out to the validator and collects
// the results sorted by path.
func (a *Analyzer) validateAll(ctx context.Context, folders []string) ([]*FolderResult, error) {
	validator := a.validator
	if validator == nil {
		validator = rule.New(
			rule.WithVersion(a.Version),
			rule.WithRepoRoot(a.RepoRoot),
			rule.WithFilesystem(a.fs),
		)
	}

	results := make([]*FolderResult, 0, len(folders))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.concurrency)

	for _, folder := range folders {
		g.Go(func() error {
			scanStart := time.Now()

			verdict, err := validator.Validate(gctx, folder)

			folderScanDuration.Observe(time.Since(scanStart).Seconds())
			foldersAnalyzedTotal.Inc()

			if err != nil {
				return apperrors.Wrap(apperrors.ErrCodeInternal,
					fmt.Sprintf("failed to validate folder %q", folder), err)
			}

			mu.Lock()
			results = append(results, newFolderResult(verdict))
			mu.Unlock()

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Path < results[j].Path
	})

	return results, nil
}

// organizations builds the per-organization summaries. Organizations are
// enumerated from the specification tree itself so that ones without a
// single anchored folder still appear in the report.
func (a *Analyzer) organizations(ctx context.Context, specRoot string, results []*FolderResult) ([]*OrgSummary, error) {
	entries, err := a.fs.ReadDir(ctx, specRoot)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, "failed to list organizations", err)
	}

	byName := make(map[string]*OrgSummary)
	orgs := make([]*OrgSummary, 0, len(entries))

	add := func(name string) *OrgSummary {
		if s, ok := byName[name]; ok {
			return s
		}
		s := &OrgSummary{
			Name:           name,
			DisplayName:    displayName(name),
			Exempt:         name == ExemptOrganization,
			FullyCompliant: true,
		}
		byName[name] = s
		orgs = append(orgs, s)
		return s
	}

	for _, e := range entries {
		if !e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		add(e.Name())
	}

	for _, r := range results {
		s := add(r.Organization)
		s.Folders++

		switch r.LayoutVersion {
		case layout.VersionV1:
			s.V1Folders++
		case layout.VersionV2:
			s.V2Folders++
		}

		if r.Success {
			s.Compliant++
		} else {
			s.FullyCompliant = false
		}
	}

	sort.Slice(orgs, func(i, j int) bool {
		return orgs[i].Name < orgs[j].Name
	})

	return orgs, nil
}

// summarize rolls the per-organization and per-folder numbers up into the
// repository totals.
func summarize(orgs []*OrgSummary, results []*FolderResult) Summary {
	s := Summary{
		Organizations: len(orgs),
		Folders:       len(results),
	}

	for _, r := range results {
		switch r.LayoutVersion {
		case layout.VersionV1:
			s.V1Folders++
		case layout.VersionV2:
			s.V2Folders++
		}
		if r.Success {
			s.Compliant++
		}
		s.Violations += len(r.Violations)
	}

	return s
}

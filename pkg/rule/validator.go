/*
Copyright © 2025 The speclint Authors
SPDX-License-Identifier: Apache-2.0
*/

package rule

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	apperrors "github.com/typespec-tools/speclint/pkg/errors"
	"github.com/typespec-tools/speclint/pkg/fsys"
	"github.com/typespec-tools/speclint/pkg/header"
	"github.com/typespec-tools/speclint/pkg/imports"
	"github.com/typespec-tools/speclint/pkg/layout"
	"github.com/typespec-tools/speclint/pkg/tspconfig"
)

const (
	// APIVersion is the API version for verdicts.
	APIVersion = "speclint.dev/v1alpha1"

	// mainFile is the root definition file of a spec folder.
	mainFile = "main.tsp"

	// clientFile is the client-only definition file of a spec folder.
	clientFile = "client.tsp"

	// examplesDir must accompany a root definition file.
	examplesDir = "examples"

	// configGlob discovers configuration files regardless of extension so
	// misnamed ones can be reported.
	configGlob = "tspconfig.*"

	// managementSuffix marks a package folder that generates into a
	// resource-manager target.
	managementSuffix = ".Management"

	// sharedMarker exempts a package folder from the config file
	// requirement.
	sharedMarker = "Shared"
)

// Diagnostic kinds.
const (
	diagFolder  = "folder"
	diagConfig  = "config"
	diagImports = "imports"
)

// Shape hints quoted in depth violations.
const (
	dataPlaneShape       = "specification/{organization}/data-plane/{ServiceName}"
	resourceManagerShape = "specification/{organization}/resource-manager/{RP.Namespace}/{ServiceName}"
)

// Oracle decides whether the v2 layout rules must be enforced for a
// folder. Implementations may fail; the Validator maps every error to "do
// not enforce" at a single boundary.
type Oracle interface {
	Decide(ctx context.Context, p layout.Path) (bool, error)
}

// Validator evaluates the layout rules against one spec folder at a time.
// It holds no per-run state and is safe for concurrent use.
type Validator struct {
	// Version is the validator version stamped on verdicts.
	Version string

	// RepoRoot is the repository root folder paths are resolved against.
	RepoRoot string

	fs      fsys.Service
	oracle  Oracle
	checker *imports.Checker
}

// Option is a functional option for configuring Validator instances.
type Option func(*Validator)

// WithVersion returns an Option that sets the Validator version string.
func WithVersion(version string) Option {
	return func(v *Validator) {
		v.Version = version
	}
}

// WithRepoRoot returns an Option that sets the repository root.
func WithRepoRoot(root string) Option {
	return func(v *Validator) {
		v.RepoRoot = root
	}
}

// WithFilesystem returns an Option that overrides the filesystem service.
func WithFilesystem(fs fsys.Service) Option {
	return func(v *Validator) {
		v.fs = fs
	}
}

// WithOracle returns an Option that sets the v2 enforcement oracle.
// Without one the Validator never enforces v2 on v1-shaped folders.
func WithOracle(o Oracle) Option {
	return func(v *Validator) {
		v.oracle = o
	}
}

// New creates a new Validator with the provided options.
func New(opts ...Option) *Validator {
	v := &Validator{}

	for _, opt := range opts {
		opt(v)
	}

	if v.fs == nil {
		v.fs = fsys.NewOSService()
	}
	v.checker = imports.NewChecker(v.fs)

	return v
}

// Validate evaluates every applicable layout rule against folder and
// returns the accumulated Verdict. Rule outcomes are always expressed
// through the Verdict; the error return is reserved for unusable input and
// collaborator failures outside the rules' tolerance.
func (v *Validator) Validate(ctx context.Context, folder string) (*Verdict, error) {
	start := time.Now()

	if strings.TrimSpace(folder) == "" {
		return nil, apperrors.New(apperrors.ErrCodeInvalidRequest, "folder cannot be empty")
	}

	verdict := NewVerdict()
	verdict.Init(header.KindVerdict, APIVersion, v.Version)
	verdict.Folder = folder

	rel := layout.Normalize(folder)
	if v.RepoRoot != "" {
		r, err := layout.RelativeToRoot(v.RepoRoot, folder)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeInvalidPath,
				"failed to resolve folder against repository root", err)
		}
		rel = r
	}

	p := layout.Classify(rel)
	if len(p.Segments) > 0 && p.Segments[0] == ".." {
		return nil, apperrors.NewWithContext(apperrors.ErrCodeInvalidPath,
			"folder is outside the repository root",
			map[string]any{"folder": folder, "repoRoot": v.RepoRoot})
	}

	verdict.RelativePath = p.Rel
	verdict.LayoutVersion = p.Version
	verdict.SpecKind = p.Kind
	verdict.addDiagnostic(diagFolder, "%s", p.Rel)

	// The folder has to exist before anything else is worth reporting.
	exists, err := v.fs.DirExists(ctx, folder)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal,
			"failed to check folder existence", err)
	}
	if !exists {
		verdict.addViolation(GroupStructure, "The spec folder %q does not exist.", folder)
		return v.finish(verdict, start), nil
	}

	// Global depth cap, regardless of layout version.
	if p.ExceedsMaxDepth() {
		verdict.addViolation(GroupStructure,
			"Please limit the folder structure depth to %d levels or less. The current depth is %d.",
			layout.MaxDepth, p.Depth())
		return v.finish(verdict, start), nil
	}

	if p.HasBothMarkers {
		verdict.addViolation(GroupV2,
			"The spec folder path cannot contain both %q and %q segments.",
			layout.MarkerDataPlane, layout.MarkerResourceManager)
	}

	if err := v.checkCommon(ctx, verdict, folder, p); err != nil {
		return nil, err
	}

	enforced := v.decideEnforcement(ctx, p)
	verdict.V2Enforced = enforced

	switch {
	case p.Version == layout.VersionV2:
		if err := v.checkV2(ctx, verdict, folder, p); err != nil {
			return nil, err
		}
	case enforced:
		v.requireV2Adoption(verdict, p)
	default:
		if err := v.checkV1(ctx, verdict, folder, p); err != nil {
			return nil, err
		}
	}

	if err := v.checkImports(ctx, verdict, folder, p, enforced); err != nil {
		return nil, err
	}

	return v.finish(verdict, start), nil
}

// finish seals the verdict and records the run metrics.
func (v *Validator) finish(verdict *Verdict, start time.Time) *Verdict {
	verdict.Success = len(verdict.Violations) == 0
	verdict.Duration = time.Since(start)

	validationDuration.Observe(verdict.Duration.Seconds())
	status := statusPass
	if !verdict.Success {
		status = statusFail
	}
	validationsTotal.WithLabelValues(status).Inc()

	slog.Debug("validation completed",
		"folder", verdict.RelativePath,
		"layout", verdict.LayoutVersion,
		"kind", verdict.SpecKind,
		"enforced", verdict.V2Enforced,
		"violations", len(verdict.Violations),
		"success", verdict.Success,
		"duration", verdict.Duration)

	return verdict
}

// checkCommon applies the rules shared by both layout versions.
func (v *Validator) checkCommon(ctx context.Context, verdict *Verdict, folder string, p layout.Path) error {
	// Any config file anywhere under the folder must carry the one
	// accepted name.
	configs, err := v.fs.Glob(ctx, folder, configGlob, false)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInternal,
			"failed to discover config files", err)
	}
	verdict.addDiagnostic(diagConfig, "files: [%s]", strings.Join(configs, ", "))
	for _, cfg := range configs {
		if filepath.Base(cfg) != tspconfig.FileName {
			verdict.addViolation(GroupCommon,
				"Invalid config file %q. The config file must be named %q.",
				cfg, tspconfig.FileName)
		}
	}

	mainExists, err := v.fs.PathExists(ctx, filepath.Join(folder, mainFile))
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInternal,
			"failed to check for "+mainFile, err)
	}
	clientExists, err := v.fs.PathExists(ctx, filepath.Join(folder, clientFile))
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInternal,
			"failed to check for "+clientFile, err)
	}
	if !mainExists && !clientExists {
		verdict.addViolation(GroupCommon,
			"The spec folder must contain a %q or a %q file.", mainFile, clientFile)
	}

	// A root definition file ships its examples next to it.
	if mainExists {
		examplesExist, err := v.fs.DirExists(ctx, filepath.Join(folder, examplesDir))
		if err != nil {
			return apperrors.Wrap(apperrors.ErrCodeInternal,
				"failed to check for the examples folder", err)
		}
		if !examplesExist {
			verdict.addViolation(GroupCommon,
				"The spec folder contains a %q file and must also contain an %q folder.",
				mainFile, examplesDir)
		}
	}

	if org, ok := p.Organization(); ok && !layout.IsLowerCase(org) {
		verdict.addViolation(GroupCommon,
			"The organization folder %q must be lower case.", org)
	}

	return nil
}

// checkV1 applies the legacy layout rules.
func (v *Validator) checkV1(ctx context.Context, verdict *Verdict, folder string, p layout.Path) error {
	pkg := p.PackageFolder()

	if p.Depth() > layout.V1MaxDepth {
		verdict.addViolation(GroupV1,
			"Please limit the package folder depth to 3 levels or less below the organization folder. The current depth is %d.",
			p.Depth())
	}

	if !layout.IsCapitalizedAfterPeriods(pkg) {
		verdict.addViolation(GroupV1,
			"The package folder %q must be capitalized after every period.", pkg)
	}

	if strings.Contains(pkg, "Management") && strings.Contains(pkg, sharedMarker) &&
		!strings.Contains(pkg, "Management."+sharedMarker) {
		verdict.addViolation(GroupV1,
			"In the package folder %q, 'Shared' should follow 'Management'.", pkg)
	}

	cfgExists, err := v.fs.PathExists(ctx, filepath.Join(folder, tspconfig.FileName))
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInternal,
			"failed to check for "+tspconfig.FileName, err)
	}

	if !cfgExists && !strings.Contains(pkg, sharedMarker) {
		verdict.addViolation(GroupV1,
			"The spec folder must contain a %q file.", tspconfig.FileName)
	}

	if cfgExists {
		v.checkManagementSuffix(ctx, verdict, folder, pkg)
	}

	return nil
}

// checkManagementSuffix applies the ".Management" suffix rule driven by
// the resource-provider folder hint in the config file. A missing or
// unreadable hint skips the check.
func (v *Validator) checkManagementSuffix(ctx context.Context, verdict *Verdict, folder, pkg string) {
	cfg, err := tspconfig.Load(ctx, v.fs, folder)
	if err != nil {
		slog.Debug("config file unreadable, skipping the .Management suffix check",
			"folder", folder,
			"error", err)
		return
	}

	rpFolder, ok := cfg.ResourceProviderFolder()
	if !ok {
		return
	}
	verdict.addDiagnostic(diagConfig, "azure-resource-provider-folder: %s", rpFolder)

	targetsRM := strings.HasSuffix(rpFolder, layout.MarkerResourceManager)
	hasSuffix := strings.HasSuffix(pkg, managementSuffix)
	switch {
	case targetsRM && !hasSuffix:
		verdict.addViolation(GroupV1,
			"The package folder %q generates into a resource-manager folder and must end with %q.",
			pkg, managementSuffix)
	case !targetsRM && hasSuffix:
		verdict.addViolation(GroupV1,
			"The package folder %q does not generate into a resource-manager folder and must not end with %q.",
			pkg, managementSuffix)
	}
}

// checkV2 applies the migrated layout rules for the detected spec kind.
func (v *Validator) checkV2(ctx context.Context, verdict *Verdict, folder string, p layout.Path) error {
	cfgExists, err := v.fs.PathExists(ctx, filepath.Join(folder, tspconfig.FileName))
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInternal,
			"failed to check for "+tspconfig.FileName, err)
	}
	if !cfgExists {
		verdict.addViolation(GroupV2,
			"The spec folder must contain a %q file.", tspconfig.FileName)
	}

	if org, ok := p.Organization(); ok && !layout.IsLowerCase(org) {
		verdict.addViolation(GroupV2,
			"The organization folder %q must be all lowercase.", org)
	}

	switch p.Kind {
	case layout.SpecKindDataPlane:
		if p.Depth() != layout.DataPlaneDepth {
			verdict.addViolation(GroupV2,
				"A data-plane spec folder must be exactly %d levels deep (%s). The current depth is %d.",
				layout.DataPlaneDepth, dataPlaneShape, p.Depth())
		}
	case layout.SpecKindResourceManager:
		if p.Depth() != layout.ResourceManagerDepth {
			verdict.addViolation(GroupV2,
				"A resource-manager spec folder must be exactly %d levels deep (%s). The current depth is %d.",
				layout.ResourceManagerDepth, resourceManagerShape, p.Depth())
		}
		if ns, ok := p.Namespace(); ok && !layout.IsDotJoinedPascalPair(ns) {
			verdict.addViolation(GroupV2,
				"The resource provider namespace %q must be two PascalCase names joined by a single period, e.g. %q.",
				ns, "Microsoft.Contoso")
		}
	}

	if svc := p.PackageFolder(); !layout.IsPascalCaseAlnum(svc) {
		verdict.addViolation(GroupV2,
			"The service folder %q must be PascalCase and contain only letters and digits.", svc)
	}

	return nil
}

// decideEnforcement consults the oracle. Every oracle failure is mapped to
// "do not enforce" here so version-control trouble never surfaces as a
// violation or an error.
func (v *Validator) decideEnforcement(ctx context.Context, p layout.Path) bool {
	if v.oracle == nil {
		return false
	}

	enforce, err := v.oracle.Decide(ctx, p)
	if err != nil {
		slog.Debug("v2 enforcement oracle unavailable, not enforcing",
			"folder", p.Rel,
			"error", err)
		return false
	}
	return enforce
}

// requireV2Adoption records the violation for a v1-shaped folder whose
// organization has already moved to layout v2 on the integration target.
func (v *Validator) requireV2Adoption(verdict *Verdict, p layout.Path) {
	org, _ := p.Organization()
	service := suggestedServiceName(org)

	verdict.addViolation(GroupPolicy,
		"The organization %q is already using folder structure v2. Please move this spec under %q or %q.",
		org,
		fmt.Sprintf("%s/%s/%s/%s", layout.RootSegment, org, layout.MarkerDataPlane, service),
		fmt.Sprintf("%s/%s/%s/Microsoft.%s/%s", layout.RootSegment, org, layout.MarkerResourceManager, service, service))
}

// suggestedServiceName derives a PascalCase service name example from an
// organization segment, e.g. "widget-factory" becomes "WidgetFactory".
func suggestedServiceName(org string) string {
	parts := strings.FieldsFunc(org, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	titler := cases.Title(language.English)
	var b strings.Builder
	for _, part := range parts {
		b.WriteString(titler.String(part))
	}

	if b.Len() == 0 {
		return "ServiceName"
	}
	return b.String()
}

// checkImports verifies that no definition file under the allowed root
// imports sources outside it.
func (v *Validator) checkImports(ctx context.Context, verdict *Verdict, folder string, p layout.Path, enforced bool) error {
	root := v.allowedRoot(folder, p, enforced)

	res, err := v.checker.Check(ctx, root)
	if err != nil {
		return err
	}

	for _, scan := range res.Scanned {
		verdict.addDiagnostic(diagImports, "%s imports [%s]", scan.File, strings.Join(scan.Imports, ", "))
	}
	for _, f := range res.Findings {
		verdict.addViolation(GroupImports,
			"The file %q has import %q which resolves outside the allowed root %q.",
			f.File, f.Import, f.AllowedRoot)
	}

	return nil
}

// allowedRoot is the subtree imports must stay within: the organization
// folder for v1, the folder under validation for v2 and v2-enforced specs.
func (v *Validator) allowedRoot(folder string, p layout.Path, enforced bool) string {
	if p.Version == layout.VersionV2 || enforced {
		return folder
	}
	if len(p.Segments) < 2 {
		return folder
	}
	if v.RepoRoot != "" {
		return filepath.Join(v.RepoRoot, p.Segments[0], p.Segments[1])
	}
	return filepath.Join(p.Segments[0], p.Segments[1])
}

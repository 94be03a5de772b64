/*
Copyright © 2025 The speclint Authors
SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/typespec-tools/speclint/pkg/analyzer"
	"github.com/typespec-tools/speclint/pkg/config"
	"github.com/typespec-tools/speclint/pkg/defaults"
	"github.com/typespec-tools/speclint/pkg/oci"
	"github.com/typespec-tools/speclint/pkg/policy"
	"github.com/typespec-tools/speclint/pkg/rule"
	"github.com/typespec-tools/speclint/pkg/serializer"
	"github.com/typespec-tools/speclint/pkg/vcs"
)

// defaultOCITag is applied when --push is used without --tag.
const defaultOCITag = "latest"

// analyzeCmdOptions holds parsed options for the analyze command.
type analyzeCmdOptions struct {
	repoRoot    string
	concurrency int
	output      string
	push        bool
	registry    string
	repository  string
	tag         string
	plainHTTP   bool
	insecureTLS bool
}

// parseAnalyzeCmdOptions parses and validates command options.
func parseAnalyzeCmdOptions(cmd *cli.Command) (*analyzeCmdOptions, error) {
	opts := &analyzeCmdOptions{
		repoRoot:    cmd.String("repo"),
		concurrency: int(cmd.Int("concurrency")),
		output:      cmd.String("output"),
		push:        cmd.Bool("push"),
		registry:    cmd.String("registry"),
		repository:  cmd.String("repository"),
		tag:         cmd.String("tag"),
		plainHTTP:   cmd.Bool("plain-http"),
		insecureTLS: cmd.Bool("insecure-tls"),
	}

	if opts.concurrency < 1 {
		return nil, fmt.Errorf("--concurrency must be at least 1, got %d", opts.concurrency)
	}

	// Validate OCI flags when push is requested
	if opts.push {
		if opts.registry == "" {
			return nil, fmt.Errorf("--registry is required when --push is set")
		}
		if opts.repository == "" {
			return nil, fmt.Errorf("--repository is required when --push is set")
		}
		if err := oci.ValidateRegistryReference(opts.registry, opts.repository); err != nil {
			return nil, fmt.Errorf("invalid OCI reference: %w", err)
		}
	}

	return opts, nil
}

func analyzeCmd() *cli.Command {
	return &cli.Command{
		Name:                  "analyze",
		EnableShellCompletion: true,
		Usage:                 "Validate every spec folder and build a compliance report",
		Description: `Discover every spec folder under the repository's specification tree,
validate each one against the layout rules, and aggregate the outcomes
into a compliance report.

Spec folders are anchored by a tspconfig.yaml or a main.tsp file.
Folders inside examples subtrees and hidden directories are skipped,
and the shared common-types organization is recorded as exempt instead
of validated.

The report holds repository totals, per-organization summaries with v1
and v2 folder counts, and a per-folder entry with every violation.

# Examples

Analyze the repository containing the working directory:
  speclint analyze

Analyze an explicit repository with higher parallelism:
  speclint analyze --repo /src/specs --concurrency 16

Write the report to a file as JSON:
  speclint analyze -o report.json -t json

Push the report to an OCI registry:
  speclint analyze --push --registry ghcr.io --repository contoso/spec-reports --tag v1.0.0

Push to a local registry over HTTP (for development):
  speclint analyze --push --registry localhost:5000 --repository spec-reports --plain-http`,
		Flags: []cli.Flag{
			repoFlag,
			&cli.IntFlag{
				Name:    "concurrency",
				Aliases: []string{"c"},
				Value:   defaults.AnalyzeConcurrency,
				Sources: cli.EnvVars("SPECLINT_CONCURRENCY"),
				Usage:   "Number of folders validated in parallel",
			},
			outputFlag,
			formatFlag,
			// OCI registry flags (used when push is set)
			&cli.BoolFlag{
				Name:  "push",
				Usage: "Push the compliance report to an OCI registry (requires --registry and --repository)",
			},
			&cli.StringFlag{
				Name:  "registry",
				Usage: "OCI registry host for the report reference (e.g., ghcr.io, localhost:5000)",
			},
			&cli.StringFlag{
				Name:  "repository",
				Usage: "OCI repository path for the report reference (e.g., contoso/spec-reports)",
			},
			&cli.StringFlag{
				Name:  "tag",
				Usage: fmt.Sprintf("OCI image tag (default: %s)", defaultOCITag),
			},
			&cli.BoolFlag{
				Name:  "insecure-tls",
				Usage: "Skip TLS certificate verification for the OCI registry",
			},
			&cli.BoolFlag{
				Name:  "plain-http",
				Usage: "Use HTTP instead of HTTPS for the OCI registry (for local development)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			ctx, cancel := context.WithTimeout(ctx, defaults.AnalyzeTimeout)
			defer cancel()

			opts, err := parseAnalyzeCmdOptions(cmd)
			if err != nil {
				return err
			}

			// The analysis needs a repository root to find the
			// specification tree under.
			client := vcs.NewGitClient(opts.repoRoot)
			repoRoot := opts.repoRoot
			if repoRoot == "" {
				root, rootErr := client.RepoRoot(ctx)
				if rootErr != nil {
					return fmt.Errorf("failed to resolve repository root, pass --repo: %w", rootErr)
				}
				repoRoot = root
			}

			cfg, err := config.Load(repoRoot)
			if err != nil {
				return err
			}
			applyConfigLogLevel(cfg.LogLevel)

			outFormat, err := resolveFormat(cmd, cfg.Format)
			if err != nil {
				return err
			}

			concurrency := cfg.Concurrency
			if cmd.IsSet("concurrency") {
				concurrency = opts.concurrency
			}

			slog.Info("analyzing repository",
				"repoRoot", repoRoot,
				"targetBranch", cfg.TargetBranch,
				"concurrency", concurrency)

			v := rule.New(
				rule.WithVersion(version),
				rule.WithRepoRoot(repoRoot),
				rule.WithOracle(policy.New(client, policy.WithTargetBranch(cfg.TargetBranch))),
			)

			a := analyzer.New(
				analyzer.WithVersion(version),
				analyzer.WithRepoRoot(repoRoot),
				analyzer.WithSpecDir(cfg.SpecDir),
				analyzer.WithValidator(v),
				analyzer.WithConcurrency(concurrency),
			)

			report, err := a.Analyze(ctx)
			if err != nil {
				return fmt.Errorf("analysis failed: %w", err)
			}

			ser := serializer.NewFileWriterOrStdout(outFormat, opts.output)
			defer closeSerializer(ser)

			if err := ser.Serialize(ctx, report); err != nil {
				return fmt.Errorf("failed to serialize compliance report: %w", err)
			}

			slog.Info("analysis completed",
				"organizations", report.Summary.Organizations,
				"folders", report.Summary.Folders,
				"compliant", report.Summary.Compliant,
				"violations", report.Summary.Violations,
				"duration", report.Duration)

			// Package and push the report as an OCI artifact when requested
			if opts.push {
				return pushReport(ctx, opts, report, outFormat)
			}

			return nil
		},
	}
}

// pushReport stages the compliance report on disk, packages it as an OCI
// artifact, and pushes it to the configured registry.
func pushReport(ctx context.Context, opts *analyzeCmdOptions, report *analyzer.ComplianceReport, format serializer.Format) error {
	ctx, cancel := context.WithTimeout(ctx, defaults.OCIPushTimeout)
	defer cancel()

	stageDir, err := os.MkdirTemp("", "speclint-report-*")
	if err != nil {
		return fmt.Errorf("failed to create staging directory: %w", err)
	}
	defer func() {
		if rmErr := os.RemoveAll(stageDir); rmErr != nil {
			slog.Warn("failed to remove staging directory", "path", stageDir, "error", rmErr)
		}
	}()

	// The artifact source tree holds just the report file. The OCI store
	// is created next to it so the tar never includes the store itself.
	sourceDir := filepath.Join(stageDir, "artifacts")
	if err := os.MkdirAll(sourceDir, 0o750); err != nil {
		return fmt.Errorf("failed to create artifact directory: %w", err)
	}

	reportPath := filepath.Join(sourceDir, "report."+string(format))
	f, err := os.Create(reportPath)
	if err != nil {
		return fmt.Errorf("failed to stage compliance report: %w", err)
	}
	if err := serializer.NewWriter(format, f).Serialize(ctx, report); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to stage compliance report: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to stage compliance report: %w", err)
	}

	tag := opts.tag
	if tag == "" {
		tag = defaultOCITag
	}

	result, err := oci.PackageAndPush(ctx, oci.OutputConfig{
		SourceDir: sourceDir,
		OutputDir: stageDir,
		Reference: &oci.Reference{
			IsOCI:      true,
			Registry:   opts.registry,
			Repository: opts.repository,
			Tag:        tag,
		},
		Version:     version,
		PlainHTTP:   opts.plainHTTP,
		InsecureTLS: opts.insecureTLS,
	})
	if err != nil {
		return fmt.Errorf("failed to push compliance report: %w", err)
	}

	slog.Info("compliance report pushed",
		"reference", result.Reference,
		"digest", result.Digest)

	return nil
}

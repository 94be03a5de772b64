/*
Copyright © 2025 The speclint Authors
SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/typespec-tools/speclint/pkg/config"
	"github.com/typespec-tools/speclint/pkg/defaults"
	"github.com/typespec-tools/speclint/pkg/policy"
	"github.com/typespec-tools/speclint/pkg/rule"
	"github.com/typespec-tools/speclint/pkg/serializer"
	"github.com/typespec-tools/speclint/pkg/vcs"
)

// validateCmdOptions holds parsed options for the validate command.
type validateCmdOptions struct {
	folder       string
	repoRoot     string
	targetBranch string
	output       string
	failOnError  bool
}

// parseValidateCmdOptions parses and validates command options.
func parseValidateCmdOptions(cmd *cli.Command) (*validateCmdOptions, error) {
	opts := &validateCmdOptions{
		folder:       cmd.String("folder"),
		repoRoot:     cmd.String("repo"),
		targetBranch: cmd.String("target-branch"),
		output:       cmd.String("output"),
		failOnError:  cmd.Bool("fail-on-error"),
	}

	if opts.folder == "" {
		return nil, fmt.Errorf("--folder cannot be empty")
	}

	return opts, nil
}

func validateCmd() *cli.Command {
	return &cli.Command{
		Name:                  "validate",
		EnableShellCompletion: true,
		Usage:                 "Validate a single spec folder against the layout rules",
		Description: `Validate one spec folder against the folder structure conventions.

The folder's layout version is detected structurally: a data-plane or
resource-manager segment at the third position or deeper selects the v2
rules, anything else falls under the legacy v1 rules. When the folder's
organization has already committed a v2 tree on the integration target
branch, v1-shaped folders are rejected with a migration hint.

The verdict lists every violation with the rule family that produced it,
plus diagnostic traces describing what the validator saw.

# Rule Families

  structure - folder existence and the global depth cap
  common    - config file naming, entrypoints, examples, organization casing
  v1        - legacy layout rules (depth, package folder casing)
  v2        - migrated layout rules (exact depth, namespace, service casing)
  policy    - v2 adoption enforcement from the target branch
  imports   - import statements resolving outside the allowed root

# Examples

Validate a folder inside the current repository:
  speclint validate --folder specification/contoso/Widgets

Validate against an explicit repository root:
  speclint validate -f specification/contoso/Widgets --repo /src/specs

Write the verdict to a file as JSON:
  speclint validate -f specification/contoso/Widgets -o verdict.json -t json

Fail the command when any rule is violated (useful for CI/CD):
  speclint validate -f specification/contoso/Widgets --fail-on-error`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "folder",
				Aliases:  []string{"f"},
				Required: true,
				Usage:    "Spec folder to validate, relative to the repository root or absolute",
			},
			repoFlag,
			&cli.StringFlag{
				Name:    "target-branch",
				Sources: cli.EnvVars("SPECLINT_TARGET_BRANCH"),
				Usage:   "Integration branch consulted for v2 adoption (default: from config, then main)",
			},
			&cli.BoolFlag{
				Name:  "fail-on-error",
				Usage: "Exit with non-zero status if any rule is violated",
			},
			outputFlag,
			formatFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			ctx, cancel := context.WithTimeout(ctx, defaults.ValidateTimeout)
			defer cancel()

			opts, err := parseValidateCmdOptions(cmd)
			if err != nil {
				return err
			}

			// Resolve the repository root when not given. Validation still
			// works without one, the folder is then taken as is.
			client := vcs.NewGitClient(opts.repoRoot)
			repoRoot := opts.repoRoot
			if repoRoot == "" {
				root, rootErr := client.RepoRoot(ctx)
				if rootErr != nil {
					slog.Debug("repository root not resolvable, validating folder as given",
						"error", rootErr)
				} else {
					repoRoot = root
				}
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

			targetBranch := cfg.TargetBranch
			if opts.targetBranch != "" {
				targetBranch = opts.targetBranch
			}

			slog.Info("validating spec folder",
				"folder", opts.folder,
				"repoRoot", repoRoot,
				"targetBranch", targetBranch)

			v := rule.New(
				rule.WithVersion(version),
				rule.WithRepoRoot(repoRoot),
				rule.WithOracle(policy.New(client, policy.WithTargetBranch(targetBranch))),
			)

			verdict, err := v.Validate(ctx, opts.folder)
			if err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}

			ser := serializer.NewFileWriterOrStdout(outFormat, opts.output)
			defer closeSerializer(ser)

			if err := ser.Serialize(ctx, verdict); err != nil {
				return fmt.Errorf("failed to serialize verdict: %w", err)
			}

			slog.Info("validation completed",
				"folder", verdict.RelativePath,
				"layout", verdict.LayoutVersion,
				"enforced", verdict.V2Enforced,
				"success", verdict.Success,
				"violations", len(verdict.Violations),
				"duration", verdict.Duration)

			// Check if we should fail on rule violations
			if opts.failOnError && !verdict.Success {
				return fmt.Errorf("validation failed: %d rule violation(s)", len(verdict.Violations))
			}

			return nil
		},
	}
}

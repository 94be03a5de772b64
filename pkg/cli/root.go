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
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/typespec-tools/speclint/pkg/logging"
)

const (
	name           = "speclint"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// logLevelExplicit records whether the level came from the flag or its
// environment source. Config files never override an explicit choice.
var logLevelExplicit bool

// applyConfigLogLevel reconfigures the default logger from the repository
// configuration once it is loaded.
func applyConfigLogLevel(level string) {
	if logLevelExplicit || level == "" {
		return
	}
	logging.SetDefaultStructuredLoggerWithLevel(name, version, level)
}

// rootCmd assembles the base command with every subcommand attached.
func rootCmd() *cli.Command {
	return &cli.Command{
		Name:                  name,
		EnableShellCompletion: true,
		Version:               version,
		Usage:                 "TypeSpec folder structure validation",
		Description: fmt.Sprintf(`speclint - TypeSpec folder structure validation

Version: %s
Commit:  %s
Built:   %s

Validates the spec folders of a TypeSpec repository against the two
coexisting layout conventions:

validate - evaluates a single spec folder and reports a verdict with
           every rule violation and diagnostic trace.

analyze  - discovers every spec folder under the specification tree,
           validates them concurrently, and aggregates the outcomes
           into a per-organization compliance report.`, version, commit, date),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "info",
				Sources: cli.EnvVars("SPECLINT_LOG_LEVEL"),
				Usage:   "Log level (debug, info, warn, error)",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			logLevelExplicit = cmd.IsSet("log-level")
			logging.SetDefaultStructuredLoggerWithLevel(name, version, cmd.String("log-level"))
			slog.Debug("starting",
				"name", name,
				"version", version,
				"commit", commit,
				"date", date)
			return ctx, nil
		},
		Commands: []*cli.Command{
			validateCmd(),
			analyzeCmd(),
		},
	}
}

// Execute runs the CLI. It is called by main.main() and only returns after
// the selected command finishes or fails.
func Execute() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle SIGINT/SIGTERM for graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nReceived interrupt signal, shutting down gracefully...")
		cancel()
	}()

	if err := rootCmd().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

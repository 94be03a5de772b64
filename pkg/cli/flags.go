/*
Copyright © 2025 The speclint Authors
SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/typespec-tools/speclint/pkg/serializer"
)

// Flags shared across commands.
var (
	outputFlag = &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "Output file path (default: stdout)",
	}

	formatFlag = &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"t"},
		Value:   string(serializer.FormatYAML),
		Sources: cli.EnvVars("SPECLINT_FORMAT"),
		Usage:   fmt.Sprintf("Output format: %s", strings.Join(serializer.SupportedFormats(), ", ")),
	}

	repoFlag = &cli.StringFlag{
		Name:    "repo",
		Sources: cli.EnvVars("SPECLINT_REPO"),
		Usage:   "Repository root path (default: discovered with git from the working directory)",
	}
)

// parseOutputFormat reads and validates the format flag.
func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	format := serializer.Format(cmd.String("format"))
	if format.IsUnknown() {
		return "", fmt.Errorf("unknown output format: %q (supported: %s)",
			format, strings.Join(serializer.SupportedFormats(), ", "))
	}
	return format, nil
}

// resolveFormat picks the output format for a command run. An explicitly set
// flag wins over the configured default.
func resolveFormat(cmd *cli.Command, configured serializer.Format) (serializer.Format, error) {
	if cmd.IsSet("format") {
		return parseOutputFormat(cmd)
	}
	if configured != "" {
		return configured, nil
	}
	return parseOutputFormat(cmd)
}

// closeSerializer closes serializers that hold file handles.
func closeSerializer(ser serializer.Serializer) {
	if closer, ok := ser.(serializer.Closer); ok {
		if err := closer.Close(); err != nil {
			slog.Warn("failed to close serializer", "error", err)
		}
	}
}

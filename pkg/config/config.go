/*
Copyright © 2025 The speclint Authors
SPDX-License-Identifier: Apache-2.0
*/

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/typespec-tools/speclint/pkg/defaults"
	apperrors "github.com/typespec-tools/speclint/pkg/errors"
	"github.com/typespec-tools/speclint/pkg/layout"
	"github.com/typespec-tools/speclint/pkg/policy"
	"github.com/typespec-tools/speclint/pkg/serializer"
)

const (
	// FileName is the optional per-repository configuration file.
	FileName = ".speclint.yaml"

	// EnvPrefix prefixes every environment variable the loader consults,
	// e.g. SPECLINT_TARGET_BRANCH maps to the target-branch key.
	EnvPrefix = "SPECLINT_"

	// delim separates nested configuration keys.
	delim = "."
)

// Config holds the runtime settings shared by the commands.
type Config struct {
	// TargetBranch is the integration branch consulted when deciding
	// whether an organization has adopted layout v2.
	TargetBranch string `koanf:"target-branch"`

	// Format is the default output format for verdicts and reports.
	Format serializer.Format `koanf:"format"`

	// LogLevel sets the default logger verbosity.
	LogLevel string `koanf:"log-level"`

	// SpecDir is the name of the specification tree under the repository
	// root.
	SpecDir string `koanf:"spec-dir"`

	// Concurrency caps parallel folder validations during analysis.
	Concurrency int `koanf:"concurrency"`
}

// Load assembles the configuration for a repository. Precedence, lowest to
// highest: built-in defaults, an optional .speclint.yaml in dir, then
// SPECLINT_-prefixed environment variables. A missing config file is fine; a
// malformed one is an error.
func Load(dir string) (*Config, error) {
	k := koanf.New(delim)

	if err := k.Load(confmap.Provider(map[string]interface{}{
		"target-branch": policy.DefaultTargetBranch,
		"format":        string(serializer.FormatYAML),
		"log-level":     "info",
		"spec-dir":      layout.RootSegment,
		"concurrency":   defaults.AnalyzeConcurrency,
	}, delim), nil); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeConfigParse, "failed to load default configuration", err)
	}

	path := filepath.Join(dir, FileName)
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeConfigParse,
				fmt.Sprintf("failed to parse config file %q", path), err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, delim, envKeyTransform), nil); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeConfigParse, "failed to load environment variables", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeConfigParse, "failed to decode configuration", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate rejects settings no command can run with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.TargetBranch) == "" {
		return apperrors.New(apperrors.ErrCodeConfigParse, "target branch cannot be empty")
	}

	if c.Format.IsUnknown() {
		return apperrors.New(apperrors.ErrCodeConfigParse,
			fmt.Sprintf("unsupported output format %q, supported formats: %s",
				c.Format, strings.Join(serializer.SupportedFormats(), ", ")))
	}

	if strings.TrimSpace(c.SpecDir) == "" {
		return apperrors.New(apperrors.ErrCodeConfigParse, "spec directory cannot be empty")
	}

	if c.Concurrency < 1 {
		return apperrors.New(apperrors.ErrCodeConfigParse, "concurrency must be at least 1")
	}

	return nil
}

// envKeyTransform maps an environment variable name to its configuration
// key, e.g. SPECLINT_TARGET_BRANCH becomes target-branch.
func envKeyTransform(name string) string {
	key := strings.ToLower(strings.TrimPrefix(name, EnvPrefix))
	return strings.ReplaceAll(key, "_", "-")
}

/*
Copyright © 2025 The speclint Authors
SPDX-License-Identifier: Apache-2.0
*/

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/typespec-tools/speclint/pkg/serializer"
)

func writeConfigFile(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o600))
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "main", cfg.TargetBranch)
	assert.Equal(t, serializer.FormatYAML, cfg.Format)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "specification", cfg.SpecDir)
	assert.Equal(t, 4, cfg.Concurrency)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "target-branch: develop\nformat: json\nconcurrency: 8\n")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "develop", cfg.TargetBranch)
	assert.Equal(t, serializer.FormatJSON, cfg.Format)
	assert.Equal(t, 8, cfg.Concurrency)

	// Keys the file does not set keep their defaults.
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "specification", cfg.SpecDir)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "target-branch: develop\nformat: json\n")

	t.Setenv("SPECLINT_TARGET_BRANCH", "release")
	t.Setenv("SPECLINT_FORMAT", "table")
	t.Setenv("SPECLINT_LOG_LEVEL", "debug")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "release", cfg.TargetBranch)
	assert.Equal(t, serializer.FormatTable, cfg.Format)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadMalformedFile(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "target-branch: [unclosed\n")

	cfg, err := Load(dir)
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.ErrorContains(t, err, "failed to parse config file")
}

func TestLoadInvalidFormat(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "format: xml\n")

	cfg, err := Load(dir)
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.ErrorContains(t, err, "unsupported output format")
}

func TestLoadInvalidConcurrency(t *testing.T) {
	t.Setenv("SPECLINT_CONCURRENCY", "0")

	cfg, err := Load(t.TempDir())
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.ErrorContains(t, err, "concurrency must be at least 1")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name: "valid",
			cfg: Config{
				TargetBranch: "main",
				Format:       serializer.FormatJSON,
				SpecDir:      "specification",
				Concurrency:  1,
			},
		},
		{
			name: "empty target branch",
			cfg: Config{
				Format:      serializer.FormatJSON,
				SpecDir:     "specification",
				Concurrency: 1,
			},
			wantErr: "target branch cannot be empty",
		},
		{
			name: "empty spec dir",
			cfg: Config{
				TargetBranch: "main",
				Format:       serializer.FormatJSON,
				Concurrency:  1,
			},
			wantErr: "spec directory cannot be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestEnvKeyTransform(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "SPECLINT_TARGET_BRANCH", want: "target-branch"},
		{in: "SPECLINT_FORMAT", want: "format"},
		{in: "SPECLINT_LOG_LEVEL", want: "log-level"},
		{in: "SPECLINT_CONCURRENCY", want: "concurrency"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, envKeyTransform(tt.in))
		})
	}
}

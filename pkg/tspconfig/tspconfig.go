/*
Copyright © 2025 The speclint Authors
SPDX-License-Identifier: Apache-2.0
*/

package tspconfig

import (
	"context"
	"path/filepath"

	"gopkg.in/yaml.v3"

	apperrors "github.com/typespec-tools/speclint/pkg/errors"
	"github.com/typespec-tools/speclint/pkg/fsys"
)

const (
	// FileName is the only accepted name for a per-folder configuration file.
	FileName = "tspconfig.yaml"

	// autorestEmitter is the emitter whose options carry the
	// resource-provider folder hint.
	autorestEmitter = "@azure-tools/typespec-autorest"

	// resourceProviderFolderOption names the folder the autorest emitter
	// generates into.
	resourceProviderFolderOption = "azure-resource-provider-folder"
)

// Config is the decoded tspconfig.yaml content. Only the emitter option
// tree the validation rules consume is mapped; everything else in the file
// is ignored.
type Config struct {
	// Options maps emitter names to their option values.
	Options map[string]map[string]any `yaml:"options"`
}

// Load reads and parses the tspconfig.yaml in folder through the given
// filesystem service.
func Load(ctx context.Context, fs fsys.Service, folder string) (*Config, error) {
	path := filepath.Join(folder, FileName)

	raw, err := fs.ReadFile(ctx, path)
	if err != nil {
		return nil, apperrors.WrapWithContext(apperrors.ErrCodeNotFound,
			"failed to read config file", err,
			map[string]any{"path": path})
	}

	return Parse(raw)
}

// Parse decodes raw tspconfig.yaml content.
func Parse(raw []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeConfigParse,
			"failed to parse config file", err)
	}
	return &cfg, nil
}

// ResourceProviderFolder returns the azure-resource-provider-folder option
// of the autorest emitter and whether it is present as a non-empty string.
func (c *Config) ResourceProviderFolder() (string, bool) {
	if c == nil || c.Options == nil {
		return "", false
	}

	opts, ok := c.Options[autorestEmitter]
	if !ok {
		return "", false
	}

	v, ok := opts[resourceProviderFolderOption]
	if !ok {
		return "", false
	}

	s, ok := v.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

/*
Copyright © 2025 The speclint Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package config loads the runtime settings shared by the speclint
// commands.
//
// Settings are layered from three sources, lowest to highest precedence:
// built-in defaults, an optional .speclint.yaml file in the repository
// root, and SPECLINT_-prefixed environment variables. Command-line flags
// sit above all three and are applied by the commands themselves.
//
// Environment variable names map to file keys by dropping the prefix,
// lowercasing, and turning underscores into hyphens, so
// SPECLINT_TARGET_BRANCH overrides the target-branch key.
package config

/*
Copyright © 2025 The speclint Authors
SPDX-License-Identifier: Apache-2.0
*/

package cli

import "testing"

func TestRootCmd(t *testing.T) {
	cmd := rootCmd()

	if cmd.Name != name {
		t.Errorf("expected command name %q, got %q", name, cmd.Name)
	}
	if cmd.Version != version {
		t.Errorf("expected version %q, got %q", version, cmd.Version)
	}

	subNames := make(map[string]bool)
	for _, sub := range cmd.Commands {
		subNames[sub.Name] = true
	}
	for _, want := range []string{"validate", "analyze"} {
		if !subNames[want] {
			t.Errorf("expected subcommand %q to be registered", want)
		}
	}

	flagNames := make(map[string]bool)
	for _, flag := range cmd.Flags {
		for _, n := range flag.Names() {
			flagNames[n] = true
		}
	}
	if !flagNames["log-level"] {
		t.Error("expected flag \"log-level\" to be defined")
	}
}

/*
Copyright © 2025 The speclint Authors
SPDX-License-Identifier: Apache-2.0
*/

package main

import "github.com/typespec-tools/speclint/pkg/cli"

func main() {
	cli.Execute()
}

/*
Copyright © 2025 The speclint Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package vcs provides the version-control collaborator used to resolve the
// repository root and to inspect the integration target branch.
//
// The Client interface covers the three queries the validation rules need:
// the working tree root, the checked-out branch, and the directories under a
// path in a committed tree. GitClient implements them by shelling out to the
// git binary; subprocess launches are rate limited so bulk analysis cannot
// fork-bomb the host. Tests script the Mock implementation instead.
//
// Every failure is wrapped with the VCS_UNAVAILABLE code. Callers treat
// these errors as advisory: a missing git binary or a shallow clone must
// never fail a validation run outright.
package vcs

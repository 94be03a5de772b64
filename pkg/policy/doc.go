/*
Copyright © 2025 The speclint Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package policy decides when the v2 layout rules become mandatory for a
// folder that is still shaped like v1.
//
// The migration to layout v2 is one-way per organization: once any folder
// of an organization on the integration target branch sits under a
// data-plane or resource-manager marker, new and modified specs in that
// organization must follow v2 as well. The Enforcer answers that question
// by listing the organization's directories on the target branch through a
// vcs.Client.
//
// Enforcement is best effort. Errors from the version-control layer are
// returned to the caller, which maps them to "do not enforce" so a broken
// or absent git setup never blocks validation.
package policy

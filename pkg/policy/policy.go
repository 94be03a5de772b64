/*
Copyright © 2025 The speclint Authors
SPDX-License-Identifier: Apache-2.0
*/

package policy

import (
	"context"
	"log/slog"

	"github.com/typespec-tools/speclint/pkg/layout"
	"github.com/typespec-tools/speclint/pkg/vcs"
)

// DefaultTargetBranch is the integration branch consulted for an
// organization's prevailing layout.
const DefaultTargetBranch = "main"

// Enforcer reports whether an organization has already adopted layout v2
// on the integration target branch.
type Enforcer struct {
	client       vcs.Client
	targetBranch string
}

// Option is a functional option for configuring Enforcer instances.
type Option func(*Enforcer)

// WithTargetBranch returns an Option that overrides the default
// integration target branch. An empty value keeps the default.
func WithTargetBranch(branch string) Option {
	return func(e *Enforcer) {
		if branch != "" {
			e.targetBranch = branch
		}
	}
}

// New creates an Enforcer backed by the given version-control client.
func New(client vcs.Client, opts ...Option) *Enforcer {
	e := &Enforcer{
		client:       client,
		targetBranch: DefaultTargetBranch,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// TargetBranch returns the integration target branch the Enforcer consults.
func (e *Enforcer) TargetBranch() string {
	return e.targetBranch
}

// Decide reports whether the organization owning p must follow the v2
// layout rules. It lists the organization's directories on the target
// branch and enforces when a data-plane or resource-manager directory is
// already committed there.
//
// The error return is advisory: callers map any error to "do not enforce".
func (e *Enforcer) Decide(ctx context.Context, p layout.Path) (bool, error) {
	if e == nil || e.client == nil {
		return false, nil
	}

	// On the target branch itself the committed tree includes the change
	// under validation, so consulting it would be circular.
	branch, err := e.client.CurrentBranch(ctx)
	if err != nil {
		return false, err
	}
	if branch == e.targetBranch {
		slog.Debug("on the integration target branch, skipping v2 enforcement",
			"branch", branch)
		return false, nil
	}

	org, ok := p.Organization()
	if !ok {
		return false, nil
	}

	dirs, err := e.client.ListTopLevelDirs(ctx, e.targetBranch, layout.RootSegment+"/"+org)
	if err != nil {
		return false, err
	}

	for _, dir := range dirs {
		if dir == layout.MarkerDataPlane || dir == layout.MarkerResourceManager {
			slog.Debug("organization already uses layout v2 on the target branch",
				"org", org,
				"branch", e.targetBranch,
				"dir", dir)
			return true, nil
		}
	}

	return false, nil
}

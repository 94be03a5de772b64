/*
Copyright © 2025 The speclint Authors
SPDX-License-Identifier: Apache-2.0
*/

package vcs

import (
	"context"

	apperrors "github.com/typespec-tools/speclint/pkg/errors"
)

// Mock implements Client with function fields so tests can script each
// query. A nil field reports the repository as unavailable, which callers
// already treat as advisory.
type Mock struct {
	RepoRootFunc         func(ctx context.Context) (string, error)
	CurrentBranchFunc    func(ctx context.Context) (string, error)
	ListTopLevelDirsFunc func(ctx context.Context, ref, treePath string) ([]string, error)
}

// NewMock creates a Mock with all queries unset.
func NewMock() *Mock {
	return &Mock{}
}

func errNotScripted(query string) error {
	return apperrors.New(apperrors.ErrCodeVCSUnavailable, query+" not scripted")
}

// RepoRoot delegates to RepoRootFunc.
func (m *Mock) RepoRoot(ctx context.Context) (string, error) {
	if m.RepoRootFunc != nil {
		return m.RepoRootFunc(ctx)
	}
	return "", errNotScripted("RepoRoot")
}

// CurrentBranch delegates to CurrentBranchFunc.
func (m *Mock) CurrentBranch(ctx context.Context) (string, error) {
	if m.CurrentBranchFunc != nil {
		return m.CurrentBranchFunc(ctx)
	}
	return "", errNotScripted("CurrentBranch")
}

// ListTopLevelDirs delegates to ListTopLevelDirsFunc.
func (m *Mock) ListTopLevelDirs(ctx context.Context, ref, treePath string) ([]string, error) {
	if m.ListTopLevelDirsFunc != nil {
		return m.ListTopLevelDirsFunc(ctx, ref, treePath)
	}
	return nil, errNotScripted("ListTopLevelDirs")
}

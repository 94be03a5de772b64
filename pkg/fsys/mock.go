/*
Copyright © 2025 The speclint Authors
SPDX-License-Identifier: Apache-2.0
*/

package fsys

import (
	"context"
	"os"
)

// Mock implements Service with function fields so tests can script each
// operation. A nil field falls back to a benign not-found default.
type Mock struct {
	PathExistsFunc func(ctx context.Context, path string) (bool, error)
	DirExistsFunc  func(ctx context.Context, path string) (bool, error)
	ReadFileFunc   func(ctx context.Context, path string) ([]byte, error)
	ReadDirFunc    func(ctx context.Context, path string) ([]os.DirEntry, error)
	GlobFunc       func(ctx context.Context, root, pattern string, dirsOnly bool) ([]string, error)
}

// NewMock creates a Mock with all operations unset.
func NewMock() *Mock {
	return &Mock{}
}

// PathExists delegates to PathExistsFunc, defaulting to false.
func (m *Mock) PathExists(ctx context.Context, path string) (bool, error) {
	if m.PathExistsFunc != nil {
		return m.PathExistsFunc(ctx, path)
	}
	return false, nil
}

// DirExists delegates to DirExistsFunc, defaulting to false.
func (m *Mock) DirExists(ctx context.Context, path string) (bool, error) {
	if m.DirExistsFunc != nil {
		return m.DirExistsFunc(ctx, path)
	}
	return false, nil
}

// ReadFile delegates to ReadFileFunc, defaulting to os.ErrNotExist.
func (m *Mock) ReadFile(ctx context.Context, path string) ([]byte, error) {
	if m.ReadFileFunc != nil {
		return m.ReadFileFunc(ctx, path)
	}
	return nil, os.ErrNotExist
}

// ReadDir delegates to ReadDirFunc, defaulting to an empty listing.
func (m *Mock) ReadDir(ctx context.Context, path string) ([]os.DirEntry, error) {
	if m.ReadDirFunc != nil {
		return m.ReadDirFunc(ctx, path)
	}
	return nil, nil
}

// Glob delegates to GlobFunc, defaulting to no matches.
func (m *Mock) Glob(ctx context.Context, root, pattern string, dirsOnly bool) ([]string, error) {
	if m.GlobFunc != nil {
		return m.GlobFunc(ctx, root, pattern, dirsOnly)
	}
	return nil, nil
}

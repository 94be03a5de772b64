/*
Copyright © 2025 The speclint Authors
SPDX-License-Identifier: Apache-2.0
*/

package fsys

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"
)

// Service defines the read-only filesystem surface the validation rules
// depend on. Implementations must be safe for concurrent use.
type Service interface {
	// PathExists reports whether a file or directory exists at path.
	PathExists(ctx context.Context, path string) (bool, error)

	// DirExists reports whether path exists and is a directory.
	DirExists(ctx context.Context, path string) (bool, error)

	// ReadFile returns the contents of the file at path.
	ReadFile(ctx context.Context, path string) ([]byte, error)

	// ReadDir returns the entries of the directory at path in name order.
	ReadDir(ctx context.Context, path string) ([]os.DirEntry, error)

	// Glob walks the tree rooted at root and returns the paths under it
	// whose base name matches pattern. With dirsOnly set, only
	// directories are returned. Results are sorted.
	Glob(ctx context.Context, root, pattern string, dirsOnly bool) ([]string, error)
}

// OSService implements Service against the local filesystem.
type OSService struct{}

// NewOSService creates a new Service backed by the operating system.
func NewOSService() *OSService {
	return &OSService{}
}

func checkContext(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}

// PathExists reports whether a file or directory exists at path.
func (s *OSService) PathExists(ctx context.Context, path string) (bool, error) {
	if err := checkContext(ctx); err != nil {
		return false, err
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat %q: %w", path, err)
	}
	return true, nil
}

// DirExists reports whether path exists and is a directory.
func (s *OSService) DirExists(ctx context.Context, path string) (bool, error) {
	if err := checkContext(ctx); err != nil {
		return false, err
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat %q: %w", path, err)
	}
	return info.IsDir(), nil
}

// ReadFile returns the contents of the file at path.
func (s *OSService) ReadFile(ctx context.Context, path string) ([]byte, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", path, err)
	}
	return b, nil
}

// ReadDir returns the entries of the directory at path in name order.
func (s *OSService) ReadDir(ctx context.Context, path string) ([]os.DirEntry, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %q: %w", path, err)
	}
	return entries, nil
}

// Glob walks the tree rooted at root and returns the paths under it whose
// base name matches pattern. The root itself is never a match. With
// dirsOnly set, only directories are returned. Results are sorted so
// callers see a stable order across runs.
func (s *OSService) Glob(ctx context.Context, root, pattern string, dirsOnly bool) ([]string, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	var matches []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			// A missing root is an error; unreadable subtrees are not.
			if p == root {
				return walkErr
			}
			slog.Debug("skipping unreadable path", "path", p, "error", walkErr)
			return nil
		}
		if err := checkContext(ctx); err != nil {
			return err
		}
		if p == root || d.IsDir() != dirsOnly {
			return nil
		}

		ok, err := path.Match(pattern, d.Name())
		if err != nil {
			return fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}
		if ok {
			matches = append(matches, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to glob %q under %q: %w", pattern, root, err)
	}

	sort.Strings(matches)
	return matches, nil
}

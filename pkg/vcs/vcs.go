/*
Copyright © 2025 The speclint Authors
SPDX-License-Identifier: Apache-2.0
*/

package vcs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"path"
	"strings"

	"golang.org/x/time/rate"

	"github.com/typespec-tools/speclint/pkg/defaults"
	apperrors "github.com/typespec-tools/speclint/pkg/errors"
)

const (
	// defaultRateLimit caps git subprocess launches per second so bulk
	// analysis over many folders stays polite to the host.
	defaultRateLimit = rate.Limit(50)

	// defaultRateBurst is the subprocess burst allowance.
	defaultRateBurst = 10
)

// Client defines the version-control queries the validation rules depend
// on. Implementations must be safe for concurrent use.
type Client interface {
	// RepoRoot returns the absolute path of the working tree root.
	RepoRoot(ctx context.Context) (string, error)

	// CurrentBranch returns the name of the checked-out branch.
	CurrentBranch(ctx context.Context) (string, error)

	// ListTopLevelDirs returns the names of the directories directly
	// under treePath in the committed tree identified by ref.
	ListTopLevelDirs(ctx context.Context, ref, treePath string) ([]string, error)
}

// runGit executes a git command in dir and returns its trimmed standard
// output. Injectable in tests.
var runGit = func(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir

	out, err := cmd.Output()
	if err != nil {
		detail := strings.TrimSpace(string(out))
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			detail = strings.TrimSpace(string(exitErr.Stderr))
		}
		return "", fmt.Errorf("git %s: %w: %s", strings.Join(args, " "), err, detail)
	}
	return strings.TrimSpace(string(out)), nil
}

// GitClient implements Client by shelling out to the git binary.
type GitClient struct {
	dir     string
	limiter *rate.Limiter
}

// Option is a functional option for configuring GitClient instances.
type Option func(*GitClient)

// WithRateLimit returns an Option that overrides the default cap on git
// subprocess launches.
func WithRateLimit(limit rate.Limit, burst int) Option {
	return func(c *GitClient) {
		c.limiter = rate.NewLimiter(limit, burst)
	}
}

// NewGitClient creates a Client that runs git commands in dir. An empty
// dir runs them in the process working directory.
func NewGitClient(dir string, opts ...Option) *GitClient {
	c := &GitClient{
		dir:     dir,
		limiter: rate.NewLimiter(defaultRateLimit, defaultRateBurst),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *GitClient) run(ctx context.Context, args ...string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	// A single slow git invocation must not stall a whole analysis run.
	ctx, cancel := context.WithTimeout(ctx, defaults.VCSQueryTimeout)
	defer cancel()

	slog.Debug("running git command", "dir", c.dir, "args", strings.Join(args, " "))
	return runGit(ctx, c.dir, args...)
}

// RepoRoot returns the absolute path of the working tree root.
func (c *GitClient) RepoRoot(ctx context.Context) (string, error) {
	out, err := c.run(ctx, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrCodeVCSUnavailable,
			"failed to resolve repository root", err)
	}
	return out, nil
}

// CurrentBranch returns the name of the checked-out branch. A detached
// HEAD is reported as "HEAD".
func (c *GitClient) CurrentBranch(ctx context.Context) (string, error) {
	out, err := c.run(ctx, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrCodeVCSUnavailable,
			"failed to resolve current branch", err)
	}
	return out, nil
}

// ListTopLevelDirs returns the names of the directories directly under
// treePath in the committed tree identified by ref. Files and submodules
// under treePath are filtered out.
func (c *GitClient) ListTopLevelDirs(ctx context.Context, ref, treePath string) ([]string, error) {
	// The trailing slash makes ls-tree list the entries inside treePath
	// instead of the treePath entry itself.
	out, err := c.run(ctx, "ls-tree", ref, "--", strings.TrimSuffix(treePath, "/")+"/")
	if err != nil {
		return nil, apperrors.WrapWithContext(apperrors.ErrCodeVCSUnavailable,
			"failed to list tree entries", err,
			map[string]any{"ref": ref, "path": treePath})
	}
	return parseTreeDirs(out), nil
}

// parseTreeDirs extracts directory names from raw git ls-tree output.
// Each line has the form "<mode> <type> <object>\t<path>".
func parseTreeDirs(out string) []string {
	var dirs []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}

		meta, name, found := strings.Cut(line, "\t")
		if !found {
			continue
		}

		fields := strings.Fields(meta)
		if len(fields) < 2 || fields[1] != "tree" {
			continue
		}

		dirs = append(dirs, path.Base(name))
	}
	return dirs
}

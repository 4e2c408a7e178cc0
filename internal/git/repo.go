package git

import (
	"context"
	"path/filepath"
	"strings"
)

// TopLevel returns the absolute path to the repository root.
func (c *Client) TopLevel(ctx context.Context) (string, error) {
	res, err := c.Run(ctx, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(res.Stdout), nil
}

// GitDir returns the absolute .git directory path (handles worktrees where .git is a file).
func (c *Client) GitDir(ctx context.Context) (string, error) {
	res, err := c.Run(ctx, "rev-parse", "--absolute-git-dir")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(res.Stdout), nil
}

// RepoName returns the basename of the repository root.
func RepoName(topLevel string) string {
	if topLevel == "" {
		return ""
	}
	return filepath.Base(topLevel)
}

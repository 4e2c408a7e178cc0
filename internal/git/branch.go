package git

import (
	"context"
	"strings"
)

// currentMarker prefixes the checked-out branch in `git branch` output.
const currentMarker = "* "

// ListBranches runs `git branch --no-color`.
func (c *Client) ListBranches(ctx context.Context) (Result, error) {
	return c.Run(ctx, "branch", "--no-color")
}

// Checkout runs `git checkout <args...>` with passthrough output.
func (c *Client) Checkout(ctx context.Context, args ...string) (Result, error) {
	return c.RunPassthrough(ctx, append([]string{"checkout"}, args...)...)
}

// ParseCurrentBranch finds the "* " line in `git branch` output and returns
// the rest of it. Detached HEAD yields "(HEAD detached at <rev>)".
func ParseCurrentBranch(out string) (string, bool) {
	for _, line := range Lines(out) {
		line = strings.TrimSuffix(line, "\r")
		if strings.HasPrefix(line, currentMarker) {
			return strings.TrimPrefix(line, currentMarker), true
		}
	}
	return "", false
}

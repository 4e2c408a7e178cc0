package git

import "context"

// ListStashes runs `git stash list`.
func (c *Client) ListStashes(ctx context.Context) (Result, error) {
	return c.Run(ctx, "stash", "list")
}

// StashSave stashes tracked changes under message. A clean tree is not an error.
func (c *Client) StashSave(ctx context.Context, message string) (Result, error) {
	return c.RunPassthrough(ctx, "stash", "save", "--quiet", message)
}

// StashApply applies a stash and leaves it in the list.
func (c *Client) StashApply(ctx context.Context, ref string) (Result, error) {
	return c.RunPassthrough(ctx, "stash", "apply", "--quiet", ref)
}

// StashDrop removes a stash from the list.
func (c *Client) StashDrop(ctx context.Context, ref string) (Result, error) {
	return c.RunPassthrough(ctx, "stash", "drop", "--quiet", ref)
}

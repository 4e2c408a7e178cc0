package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"
)

// Result is the outcome of one git invocation.
type Result struct {
	Args     []string
	ExitCode int
	Stdout   string
}

// Client runs git commands against one working directory.
// Passthrough commands read Stdin and write git's own output to Stdout/Stderr.
type Client struct {
	Dir    string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
}

// New returns a client for dir ("" means the process working directory)
// that passes git output through to the process streams.
func New(dir string) *Client {
	return &Client{
		Dir:    dir,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// gitCmd creates a git command with LC_ALL=C to ensure English output for parsing.
func (c *Client) gitCmd(ctx context.Context, args ...string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Env = append(os.Environ(), "LC_ALL=C")
	if c.Dir != "" {
		cmd.Dir = c.Dir
	}
	return cmd
}

func (c *Client) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.Logger
}

// Run executes a git command and captures its stdout.
// If the command fails, the error includes stderr.
func (c *Client) Run(ctx context.Context, args ...string) (Result, error) {
	var stdout, stderr bytes.Buffer
	cmd := c.gitCmd(ctx, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	return c.wait(cmd, args, &stdout, &stderr)
}

// RunPassthrough executes a git command connected to the user's stdin, with
// its output shown to the user. Output is still captured so the result
// carries it and a failure reports git's stderr.
func (c *Client) RunPassthrough(ctx context.Context, args ...string) (Result, error) {
	var stdout, stderr bytes.Buffer
	cmd := c.gitCmd(ctx, args...)
	cmd.Stdin = c.Stdin
	cmd.Stdout = teeTo(c.Stdout, &stdout)
	cmd.Stderr = teeTo(c.Stderr, &stderr)
	return c.wait(cmd, args, &stdout, &stderr)
}

func teeTo(w io.Writer, buf *bytes.Buffer) io.Writer {
	if w == nil {
		return buf
	}
	return io.MultiWriter(w, buf)
}

func (c *Client) wait(cmd *exec.Cmd, args []string, stdout, stderr *bytes.Buffer) (Result, error) {
	start := time.Now()
	err := cmd.Run()

	res := Result{Args: args, Stdout: stdout.String()}
	if err != nil {
		res.ExitCode = -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
		}
	}

	c.logger().Debug("git",
		"args", args,
		"exit", res.ExitCode,
		"duration", time.Since(start),
	)

	if err != nil {
		errMsg := strings.TrimSpace(stderr.String())
		if errMsg == "" {
			errMsg = err.Error()
		}
		return res, fmt.Errorf("git %s: %s", strings.Join(args, " "), errMsg)
	}
	return res, nil
}

// Lines splits command output into lines, dropping the trailing newline.
func Lines(out string) []string {
	out = strings.TrimRight(out, "\n")
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}

package cmd

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mvwi/icheckout/internal/git"
	"github.com/mvwi/icheckout/internal/ui"
	"github.com/mvwi/icheckout/internal/workflow"
)

// Version is set at build time via -ldflags.
var Version = "dev"

// Exit codes.
const (
	exitOK    = 0
	exitError = 1
	// exitNoBranch means the current branch could not be read from git.
	exitNoBranch = 2
)

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "icheckout [git checkout options] <branch>",
		Short: "Switch branches without losing uncommitted work",
		Long: `icheckout - intelligent git checkout

Switches to <branch> and keeps uncommitted work with the branch it was
made on:
  1. Stashes work in progress on the current branch (ICHECKOUT_AUTOSTASH)
  2. Runs git checkout with every argument given
  3. Applies and drops the newest autostash made on <branch>, if any

The branch must be the last argument. Other arguments go to git checkout
unchanged, e.g. 'icheckout -b feature'.

Configuration:
  ~/.config/icheckout/config.toml and .icheckout.toml in the repo root.
    match  = "substring" | "exact"   how stash labels are tied to <branch>
    strict = true                    stop when a git call fails
    color  = "auto" | "always" | "never"
    debug  = true                    log git calls to .git/icheckout.log
  ICHECKOUT_STRICT, ICHECKOUT_DEBUG and ICHECKOUT_LOG_FILE override files.`,
		Args: cobra.MinimumNArgs(1),
		// Every argument belongs to git checkout.
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheckout(cmd.Context(), args, stdin, stdout, stderr)
		},
	}
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.CompletionOptions.DisableDefaultCmd = true
	return cmd
}

// Run executes icheckout with args (args[0] is the program name) and returns
// the process exit code.
func Run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdin, stdout, stderr)
	cmd.SetArgs(args[1:])

	err := cmd.ExecuteContext(context.Background())
	if err != nil {
		ui.NewPrinter(stderr).Error("%s", err)
	}
	return exitCode(err)
}

// Execute runs icheckout against the process arguments and exits.
func Execute() {
	os.Exit(Run(os.Args, os.Stdin, os.Stdout, os.Stderr))
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, workflow.ErrCurrentBranchNotFound):
		return exitNoBranch
	default:
		return exitError
	}
}

func runCheckout(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	client := git.New("")
	client.Stdin = stdin
	client.Stdout = stdout
	client.Stderr = stderr

	rc, err := newContext(ctx, client)
	if err != nil {
		return err
	}
	defer rc.Close()

	ui.SetColorMode(rc.Config.Color, stdout)
	client.Logger = rc.Logger
	rc.Logger.Debug("icheckout",
		"version", Version,
		"args", args,
		"repo", rc.RepoName,
		"match", rc.Config.MatchMode().String(),
		"strict", rc.Config.IsStrict(),
	)

	ctrl := workflow.New(client, ui.NewPrinter(stdout), workflow.Options{
		Match:  rc.Config.MatchMode(),
		Strict: rc.Config.IsStrict(),
		Logger: rc.Logger,
	})
	report, err := ctrl.Run(ctx, args)
	if report != nil {
		rc.Logger.Debug("done", "outcome", report.Outcome.String(), "steps", report.Steps, "ref", report.Ref)
	}
	return err
}

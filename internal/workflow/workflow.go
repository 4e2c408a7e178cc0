// Package workflow switches branches while carrying each branch's
// uncommitted work in an autostash.
//
// A run is a fixed pipeline of named steps:
//
//	resolve-current  read the checked-out branch from `git branch`
//	short-circuit    stop if it already is the destination
//	autostash        stash work under an ICHECKOUT_AUTOSTASH label
//	checkout         `git checkout` with the caller's arguments
//	locate           find the newest autostash made on the destination
//	report-absent    stop if there is none
//	restore          apply it, then drop it
//
// Git is the only state. Nothing is cached between runs, and stash ordinals
// are resolved from a fresh listing every time.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mvwi/icheckout/internal/autostash"
	"github.com/mvwi/icheckout/internal/git"
)

// Backend is the subset of git that a run drives.
type Backend interface {
	ListBranches(ctx context.Context) (git.Result, error)
	StashSave(ctx context.Context, message string) (git.Result, error)
	Checkout(ctx context.Context, args ...string) (git.Result, error)
	ListStashes(ctx context.Context) (git.Result, error)
	StashApply(ctx context.Context, ref string) (git.Result, error)
	StashDrop(ctx context.Context, ref string) (git.Result, error)
}

// Reporter receives the user-facing lines of a run.
type Reporter interface {
	AlreadyOn(branch string)
	Moving(from, to string)
	Error(format string, args ...any)
}

var (
	// ErrNoArgs means there was no destination branch argument.
	ErrNoArgs = errors.New("no destination branch given")

	// ErrCurrentBranchNotFound means `git branch` had no "* " line.
	ErrCurrentBranchNotFound = errors.New("could not determine current branch")
)

// StepError is returned in strict mode when a git call made by Step failed.
type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string {
	return e.Step + ": " + e.Err.Error()
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// Outcome is how a run ended.
type Outcome int

const (
	// Incomplete means the run stopped on an error.
	Incomplete Outcome = iota
	// AlreadyOnBranch means the destination was already checked out.
	AlreadyOnBranch
	// NoAutostash means checkout ran but there was nothing to restore.
	NoAutostash
	// Restored means an autostash was applied and dropped.
	Restored
)

func (o Outcome) String() string {
	switch o {
	case AlreadyOnBranch:
		return "already-on-branch"
	case NoAutostash:
		return "no-autostash"
	case Restored:
		return "restored"
	default:
		return "incomplete"
	}
}

// Report describes a finished (or stopped) run.
type Report struct {
	Outcome Outcome
	From    string
	To      string
	// Label is the message the outgoing work was stashed under.
	Label string
	// Ref is the restored stash, e.g. "stash@{1}".
	Ref string
	// Steps lists the steps that completed, in order.
	Steps []string
}

// Options tunes a Controller.
type Options struct {
	Match autostash.MatchMode
	// Strict stops the run when a stash, checkout, apply or drop call fails.
	// By default those failures are logged and the run carries on.
	Strict bool
	Now    func() time.Time
	Logger *slog.Logger
}

// Controller runs the branch switch pipeline.
type Controller struct {
	backend  Backend
	reporter Reporter
	opts     Options
	log      *slog.Logger
}

// New returns a Controller.
func New(backend Backend, reporter Reporter, opts Options) *Controller {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Controller{backend: backend, reporter: reporter, opts: opts, log: log}
}

// state is threaded through the steps.
type state struct {
	args    []string
	target  string
	current string
	label   autostash.Label
	match   autostash.Match
	// findErr is set by locate when nothing can be restored.
	findErr error
	done    bool
	report  Report
}

type step struct {
	name string
	run  func(ctx context.Context, st *state) error
}

func (c *Controller) pipeline() []step {
	return []step{
		{"resolve-current", c.resolveCurrent},
		{"short-circuit", c.shortCircuit},
		{"autostash", c.autostash},
		{"checkout", c.checkout},
		{"locate", c.locate},
		{"report-absent", c.reportAbsent},
		{"restore", c.restore},
	}
}

// Run switches to the branch named by the last argument. All arguments are
// passed to `git checkout` unchanged. The report is returned even when the
// run stops on an error.
func (c *Controller) Run(ctx context.Context, args []string) (*Report, error) {
	if len(args) == 0 {
		return nil, ErrNoArgs
	}

	st := &state{
		args:   args,
		target: args[len(args)-1],
	}
	st.report.To = st.target

	for _, s := range c.pipeline() {
		c.log.Debug("step", "name", s.name)
		if err := s.run(ctx, st); err != nil {
			c.log.Debug("step failed", "name", s.name, "err", err)
			return &st.report, err
		}
		st.report.Steps = append(st.report.Steps, s.name)
		if st.done {
			break
		}
	}
	return &st.report, nil
}

func (c *Controller) resolveCurrent(ctx context.Context, st *state) error {
	res, err := c.backend.ListBranches(ctx)
	name, ok := git.ParseCurrentBranch(res.Stdout)
	if !ok {
		if err != nil {
			return fmt.Errorf("%w: %w", ErrCurrentBranchNotFound, err)
		}
		return ErrCurrentBranchNotFound
	}
	st.current = name
	st.report.From = name
	return nil
}

func (c *Controller) shortCircuit(_ context.Context, st *state) error {
	if st.current == st.target {
		c.reporter.AlreadyOn(st.current)
		st.report.Outcome = AlreadyOnBranch
		st.done = true
		return nil
	}
	c.reporter.Moving(st.current, st.target)
	return nil
}

func (c *Controller) autostash(ctx context.Context, st *state) error {
	st.label = autostash.NewLabel(st.current, c.opts.Now())
	st.report.Label = st.label.String()
	res, err := c.backend.StashSave(ctx, st.report.Label)
	return c.checked("autostash", res, err)
}

func (c *Controller) checkout(ctx context.Context, st *state) error {
	res, err := c.backend.Checkout(ctx, st.args...)
	return c.checked("checkout", res, err)
}

func (c *Controller) locate(ctx context.Context, st *state) error {
	res, err := c.backend.ListStashes(ctx)
	if err := c.checked("locate", res, err); err != nil {
		return err
	}
	m, err := autostash.Find(git.Lines(res.Stdout), st.target, c.opts.Match)
	if err != nil {
		c.log.Debug("no autostash", "branch", st.target, "match", c.opts.Match.String(), "reason", err)
		st.findErr = err
		return nil
	}
	c.log.Debug("autostash found", "ref", m.Ref, "line", m.Line)
	st.match = m
	return nil
}

func (c *Controller) reportAbsent(_ context.Context, st *state) error {
	if st.findErr == nil {
		return nil
	}
	c.reporter.Error("no stash applied for the destination branch")
	st.report.Outcome = NoAutostash
	st.done = true
	return nil
}

func (c *Controller) restore(ctx context.Context, st *state) error {
	ref := st.match.Ref
	res, err := c.backend.StashApply(ctx, ref)
	if err := c.checked("restore", res, err); err != nil {
		return err
	}
	res, err = c.backend.StashDrop(ctx, ref)
	if err := c.checked("restore", res, err); err != nil {
		return err
	}
	st.report.Ref = ref
	st.report.Outcome = Restored
	return nil
}

// checked applies the failure policy to a git call made by step.
func (c *Controller) checked(step string, res git.Result, err error) error {
	if err == nil {
		return nil
	}
	c.log.Debug("git call failed", "step", step, "exit", res.ExitCode, "err", err)
	if c.opts.Strict {
		return &StepError{Step: step, Err: err}
	}
	return nil
}

// Package autostash builds the labels icheckout stashes work under and finds
// them again in `git stash list` output.
//
// Grammar, one stash per line:
//
//	stash@{<ordinal>}: <git description>: ICHECKOUT_AUTOSTASH <branch> <timestamp>
//
// Only the marker, the branch and the stash reference are significant; the
// timestamp is for humans.
package autostash

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Marker tags every stash created by icheckout.
const Marker = "ICHECKOUT_AUTOSTASH"

// refToken opens a stash reference such as "stash@{3}".
const refToken = "stash@{"

var (
	// ErrNoAutostash means no stash line qualified for the branch.
	ErrNoAutostash = errors.New("no autostash found")

	// ErrStashNumberUnparseable means the first qualifying line had a
	// stash reference whose ordinal is not a number.
	ErrStashNumberUnparseable = errors.New("could not determine stash number")
)

// Label is the stash message written when leaving Branch.
type Label struct {
	Branch string
	Time   time.Time
}

// NewLabel returns the label for work left on branch at t.
func NewLabel(branch string, t time.Time) Label {
	return Label{Branch: branch, Time: t}
}

// String renders "ICHECKOUT_AUTOSTASH <branch> <asctime>".
func (l Label) String() string {
	return Marker + " " + l.Branch + " " + l.Time.Format(time.ANSIC)
}

// Ref returns the stash reference for an ordinal, e.g. "stash@{1}".
func Ref(index int) string {
	return refToken + strconv.Itoa(index) + "}"
}

// MatchMode controls how a stash line is tied to a branch.
type MatchMode int

const (
	// MatchSubstring accepts any line containing the branch name.
	// "feature" matches an autostash for "feature-old".
	MatchSubstring MatchMode = iota

	// MatchExact requires the word after the marker to equal the branch.
	MatchExact
)

// ParseMatchMode parses a config value. "" selects MatchSubstring.
func ParseMatchMode(s string) (MatchMode, error) {
	switch s {
	case "", "substring":
		return MatchSubstring, nil
	case "exact":
		return MatchExact, nil
	default:
		return 0, fmt.Errorf("unknown match mode %q (want \"substring\" or \"exact\")", s)
	}
}

func (m MatchMode) String() string {
	if m == MatchExact {
		return "exact"
	}
	return "substring"
}

// Match is a stash line selected for restoring.
type Match struct {
	Index int
	Ref   string
	Line  string
}

// Find returns the first line, in listed order, that carries the marker,
// mentions branch and has a stash reference. Git lists the newest stash
// first, so the most recent autostash wins.
func Find(lines []string, branch string, mode MatchMode) (Match, error) {
	for _, line := range lines {
		if line == "" {
			continue
		}
		if !strings.Contains(line, Marker) {
			continue
		}
		if !mentionsBranch(line, branch, mode) {
			continue
		}
		at := strings.Index(line, refToken)
		if at < 0 {
			continue
		}
		index, err := parseOrdinal(line[at+len(refToken):])
		if err != nil {
			return Match{}, fmt.Errorf("%w: %q", ErrStashNumberUnparseable, line)
		}
		return Match{Index: index, Ref: Ref(index), Line: line}, nil
	}
	return Match{}, ErrNoAutostash
}

func mentionsBranch(line, branch string, mode MatchMode) bool {
	if mode == MatchSubstring {
		return strings.Contains(line, branch)
	}
	_, rest, ok := strings.Cut(line, Marker+" ")
	if !ok {
		return false
	}
	fields := strings.Fields(rest)
	return len(fields) > 0 && fields[0] == branch
}

// parseOrdinal reads the digits of "<n>}..." up to the closing brace.
func parseOrdinal(s string) (int, error) {
	end := strings.IndexByte(s, '}')
	if end < 0 {
		return 0, fmt.Errorf("unterminated stash reference")
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("negative stash ordinal %d", n)
	}
	return n, nil
}

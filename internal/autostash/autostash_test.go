package autostash

import (
	"errors"
	"testing"
	"time"
)

func TestLabelString(t *testing.T) {
	tests := []struct {
		name   string
		branch string
		at     time.Time
		want   string
	}{
		{
			"single digit day is space padded",
			"A", time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
			"ICHECKOUT_AUTOSTASH A Mon Jan  1 00:00:00 2024",
		},
		{
			"branch with slash",
			"michael/sidebar", time.Date(2024, time.March, 15, 13, 4, 5, 0, time.UTC),
			"ICHECKOUT_AUTOSTASH michael/sidebar Fri Mar 15 13:04:05 2024",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewLabel(tt.branch, tt.at).String()
			if got != tt.want {
				t.Errorf("Label.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRef(t *testing.T) {
	if got := Ref(0); got != "stash@{0}" {
		t.Errorf("Ref(0) = %q", got)
	}
	if got := Ref(12); got != "stash@{12}" {
		t.Errorf("Ref(12) = %q", got)
	}
}

func TestFind(t *testing.T) {
	tests := []struct {
		name      string
		lines     []string
		branch    string
		mode      MatchMode
		wantIndex int
		wantErr   error
	}{
		{
			name:      "label round trip",
			lines:     []string{"stash@{0}: On A: ICHECKOUT_AUTOSTASH A Mon Jan 1 00:00:00 2024"},
			branch:    "A",
			wantIndex: 0,
		},
		{
			name: "first match wins",
			lines: []string{
				"stash@{0}: On B: ICHECKOUT_AUTOSTASH B Tue Jan 2 00:00:00 2024",
				"stash@{1}: On main: ICHECKOUT_AUTOSTASH main Mon Jan 1 12:00:00 2024",
				"stash@{2}: On B: ICHECKOUT_AUTOSTASH B Mon Jan 1 00:00:00 2024",
			},
			branch:    "B",
			wantIndex: 0,
		},
		{
			name: "skips manual stashes and other branches",
			lines: []string{
				"stash@{0}: WIP on dev: 1a2b3c4 fix build",
				"stash@{1}: On main: ICHECKOUT_AUTOSTASH main Mon Jan 1 12:00:00 2024",
				"stash@{2}: On dev: ICHECKOUT_AUTOSTASH dev Mon Jan 1 00:00:00 2024",
			},
			branch:    "dev",
			wantIndex: 2,
		},
		{
			name:    "no marker anywhere",
			lines:   []string{"stash@{0}: WIP on dev: 1a2b3c4 fix build", ""},
			branch:  "dev",
			wantErr: ErrNoAutostash,
		},
		{
			name:    "empty list",
			lines:   nil,
			branch:  "dev",
			wantErr: ErrNoAutostash,
		},
		{
			name:      "substring matches longer branch name",
			lines:     []string{"stash@{0}: On feature-old: ICHECKOUT_AUTOSTASH feature-old Mon Jan 1 00:00:00 2024"},
			branch:    "feature",
			wantIndex: 0,
		},
		{
			name:    "exact rejects longer branch name",
			lines:   []string{"stash@{0}: On feature-old: ICHECKOUT_AUTOSTASH feature-old Mon Jan 1 00:00:00 2024"},
			branch:  "feature",
			mode:    MatchExact,
			wantErr: ErrNoAutostash,
		},
		{
			name: "exact finds the right branch",
			lines: []string{
				"stash@{0}: On feature-old: ICHECKOUT_AUTOSTASH feature-old Mon Jan 1 00:00:00 2024",
				"stash@{1}: On feature: ICHECKOUT_AUTOSTASH feature Mon Jan 1 00:00:00 2024",
			},
			branch:    "feature",
			mode:      MatchExact,
			wantIndex: 1,
		},
		{
			name:      "multi digit ordinal",
			lines:     []string{"stash@{12}: On dev: ICHECKOUT_AUTOSTASH dev Mon Jan 1 00:00:00 2024"},
			branch:    "dev",
			wantIndex: 12,
		},
		{
			name: "line without reference is skipped",
			lines: []string{
				"ICHECKOUT_AUTOSTASH dev Mon Jan 1 00:00:00 2024",
				"stash@{3}: On dev: ICHECKOUT_AUTOSTASH dev Mon Jan 1 00:00:00 2024",
			},
			branch:    "dev",
			wantIndex: 3,
		},
		{
			name: "unparseable ordinal stops the search",
			lines: []string{
				"stash@{x}: On dev: ICHECKOUT_AUTOSTASH dev Mon Jan 1 00:00:00 2024",
				"stash@{3}: On dev: ICHECKOUT_AUTOSTASH dev Mon Jan 1 00:00:00 2024",
			},
			branch:  "dev",
			wantErr: ErrStashNumberUnparseable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Find(tt.lines, tt.branch, tt.mode)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Find() err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Find() unexpected error: %v", err)
			}
			if got.Index != tt.wantIndex {
				t.Errorf("Find() Index = %d, want %d", got.Index, tt.wantIndex)
			}
			if got.Ref != Ref(tt.wantIndex) {
				t.Errorf("Find() Ref = %q, want %q", got.Ref, Ref(tt.wantIndex))
			}
		})
	}
}

func TestParseMatchMode(t *testing.T) {
	tests := []struct {
		input   string
		want    MatchMode
		wantErr bool
	}{
		{"", MatchSubstring, false},
		{"substring", MatchSubstring, false},
		{"exact", MatchExact, false},
		{"regex", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMatchMode(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMatchMode(%q) err = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseMatchMode(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

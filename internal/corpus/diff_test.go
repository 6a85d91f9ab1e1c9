package corpus

import (
	"testing"

	"zonewarden/internal/types"
)

func TestReport_Changes(t *testing.T) {
	tests := []struct {
		name         string
		prev         *Report
		curr         *Report
		wantNewV     int
		wantGoneV    int
		wantNewF     int
		wantChangedF int
		wantGoneF    int
	}{
		{
			name: "no changes",
			prev: &Report{
				Violations: []types.Violation{{Document: "a", Message: "bad address"}},
			},
			curr: &Report{
				Violations: []types.Violation{{Document: "a", Message: "bad address"}},
			},
		},
		{
			name: "new violation",
			prev: &Report{},
			curr: &Report{
				Violations: []types.Violation{{Document: "a", Message: "bad address"}},
			},
			wantNewV: 1,
		},
		{
			name: "violation resolved",
			prev: &Report{
				Violations: []types.Violation{{Document: "a", Message: "bad address"}},
			},
			curr:      &Report{},
			wantGoneV: 1,
		},
		{
			name: "same document different violation",
			prev: &Report{
				Violations: []types.Violation{{Document: "a", Message: "bad address"}},
			},
			curr: &Report{
				Violations: []types.Violation{{Document: "a", Message: "bad hostname"}},
			},
			wantNewV:  1,
			wantGoneV: 1,
		},
		{
			name: "new failure",
			prev: &Report{},
			curr: &Report{
				Failures: []Failure{{Document: "a", Error: "unexpected end of JSON input"}},
			},
			wantNewF: 1,
		},
		{
			name: "failure cause changed",
			prev: &Report{
				Failures: []Failure{{Document: "a", Error: "unexpected end of JSON input"}},
			},
			curr: &Report{
				Failures: []Failure{{Document: "a", Error: "document has no record object"}},
			},
			wantChangedF: 1,
		},
		{
			name: "failure resolved into violation",
			prev: &Report{
				Failures: []Failure{{Document: "a", Error: "unexpected end of JSON input"}},
			},
			curr: &Report{
				Violations: []types.Violation{{Document: "a", Message: "bad address"}},
			},
			wantNewV:  1,
			wantGoneF: 1,
		},
		{
			name: "mixed",
			prev: &Report{
				Violations: []types.Violation{
					{Document: "keep", Message: "bad address"},
					{Document: "fixed", Message: "bad hostname"},
				},
				Failures: []Failure{{Document: "broken", Error: "unexpected end of JSON input"}},
			},
			curr: &Report{
				Violations: []types.Violation{
					{Document: "keep", Message: "bad address"},
					{Document: "regressed", Message: "bad target"},
				},
			},
			wantNewV:  1,
			wantGoneV: 1,
			wantGoneF: 1,
		},
		{
			name: "repeated identical violations appear once",
			prev: &Report{},
			curr: &Report{
				Violations: []types.Violation{
					{Document: "a", Message: "duplicate record type: A"},
					{Document: "a", Message: "duplicate record type: A"},
				},
			},
			wantNewV: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			changes := tt.curr.Changes(tt.prev)

			if len(changes.NewViolations) != tt.wantNewV {
				t.Errorf("NewViolations = %d, want %d", len(changes.NewViolations), tt.wantNewV)
			}
			if len(changes.ResolvedViolations) != tt.wantGoneV {
				t.Errorf("ResolvedViolations = %d, want %d", len(changes.ResolvedViolations), tt.wantGoneV)
			}
			if len(changes.NewFailures) != tt.wantNewF {
				t.Errorf("NewFailures = %d, want %d", len(changes.NewFailures), tt.wantNewF)
			}
			if len(changes.ChangedFailures) != tt.wantChangedF {
				t.Errorf("ChangedFailures = %d, want %d", len(changes.ChangedFailures), tt.wantChangedF)
			}
			if len(changes.ResolvedFailures) != tt.wantGoneF {
				t.Errorf("ResolvedFailures = %d, want %d", len(changes.ResolvedFailures), tt.wantGoneF)
			}

			wantEmpty := tt.wantNewV+tt.wantGoneV+tt.wantNewF+tt.wantChangedF+tt.wantGoneF == 0
			if changes.Empty() != wantEmpty {
				t.Errorf("Empty() = %v, want %v", changes.Empty(), wantEmpty)
			}
		})
	}
}

func TestReport_Changes_CarriesContent(t *testing.T) {
	prev := &Report{
		Violations: []types.Violation{{Document: "old", Message: "bad address"}},
	}
	curr := &Report{
		Violations: []types.Violation{{Document: "new", Message: "bad hostname"}},
	}

	changes := curr.Changes(prev)

	if len(changes.NewViolations) != 1 || changes.NewViolations[0].Document != "new" {
		t.Errorf("NewViolations = %v, want the violation for %q", changes.NewViolations, "new")
	}
	if len(changes.ResolvedViolations) != 1 || changes.ResolvedViolations[0].Document != "old" {
		t.Errorf("ResolvedViolations = %v, want the violation for %q", changes.ResolvedViolations, "old")
	}
}

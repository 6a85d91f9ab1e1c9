package corpus

import "zonewarden/internal/types"

// ReportChanges is the difference between two runs over the same corpus.
// Watch mode uses it to surface what an edit actually changed instead of
// repeating the full report.
type ReportChanges struct {
	NewViolations      []types.Violation `json:"new_violations,omitempty"`
	ResolvedViolations []types.Violation `json:"resolved_violations,omitempty"`
	NewFailures        []Failure         `json:"new_failures,omitempty"`
	ChangedFailures    []Failure         `json:"changed_failures,omitempty"`
	ResolvedFailures   []Failure         `json:"resolved_failures,omitempty"`
}

// Empty reports whether the two runs found exactly the same problems.
func (c *ReportChanges) Empty() bool {
	return len(c.NewViolations) == 0 &&
		len(c.ResolvedViolations) == 0 &&
		len(c.NewFailures) == 0 &&
		len(c.ChangedFailures) == 0 &&
		len(c.ResolvedFailures) == 0
}

type violationKey struct {
	document string
	message  string
}

func violationSet(violations []types.Violation) map[violationKey]bool {
	set := make(map[violationKey]bool, len(violations))
	for _, v := range violations {
		set[violationKey{v.Document, v.Message}] = true
	}
	return set
}

// Changes compares the report against an earlier run and returns the diff.
// A violation either exists or it does not; a failure belongs to a document
// and counts as changed when the same document fails with a different cause.
func (r *Report) Changes(prev *Report) *ReportChanges {
	changes := &ReportChanges{}

	oldV := violationSet(prev.Violations)
	newV := violationSet(r.Violations)

	for _, v := range r.Violations {
		key := violationKey{v.Document, v.Message}
		if !oldV[key] {
			changes.NewViolations = append(changes.NewViolations, v)
			oldV[key] = true // repeated identical violations appear once
		}
	}
	for _, v := range prev.Violations {
		key := violationKey{v.Document, v.Message}
		if !newV[key] {
			changes.ResolvedViolations = append(changes.ResolvedViolations, v)
			newV[key] = true
		}
	}

	oldF := make(map[string]Failure, len(prev.Failures))
	for _, f := range prev.Failures {
		oldF[f.Document] = f
	}
	newF := make(map[string]bool, len(r.Failures))
	for _, f := range r.Failures {
		newF[f.Document] = true
	}

	for _, f := range r.Failures {
		if old, exists := oldF[f.Document]; exists {
			if old.Error != f.Error {
				changes.ChangedFailures = append(changes.ChangedFailures, f)
			}
		} else {
			changes.NewFailures = append(changes.NewFailures, f)
		}
	}
	for _, f := range prev.Failures {
		if !newF[f.Document] {
			changes.ResolvedFailures = append(changes.ResolvedFailures, f)
		}
	}

	return changes
}

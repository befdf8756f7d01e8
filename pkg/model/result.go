package model

import (
	"fmt"
	"time"
)

// Result is a single discovery outcome: a candidate remote, the subset of
// requested refs it claims to serve, a priority assigned by the finder that
// produced it, and optional freshness metadata.
//
// A Result is immutable once constructed.
type Result struct {
	Remote   Remote       `json:"remote" yaml:"remote"`
	Priority int          `json:"priority" yaml:"priority"`
	Refs     RefChecksums `json:"refs" yaml:"refs"`

	// SummaryLastModified is the last time the remote's advertised summary
	// was updated. The zero time means unknown.
	SummaryLastModified time.Time `json:"summary-last-modified,omitempty" yaml:"summary-last-modified,omitempty"`

	_ struct{}
}

// NewResult builds a Result. A result claiming no refs is meaningless:
// refs must be a valid non-empty ref map.
func NewResult(remote Remote, priority int, refs RefChecksums, lastModified time.Time) (Result, error) {
	if err := ValidateRefChecksums(refs); err != nil {
		return Result{}, fmt.Errorf("new result for remote %q: %w", remote.Name, err)
	}
	return Result{
		Remote:              remote,
		Priority:            priority,
		Refs:                refs,
		SummaryLastModified: lastModified,
	}, nil
}

// Compare defines a total order over results, to work out which one is
// better to pull from and hence ordered first. It returns <0 if r is
// ordered before other, 0 if they are ordered equally, >0 otherwise.
//
// Keys cascade: priority ascending, then summary freshness ascending when
// known on both sides, then number of claimed refs ascending, then remote
// name as the final deterministic tie-break.
func (r Result) Compare(other Result) int {
	if r.Priority != other.Priority {
		return r.Priority - other.Priority
	}

	if !r.SummaryLastModified.IsZero() && !other.SummaryLastModified.IsZero() &&
		!r.SummaryLastModified.Equal(other.SummaryLastModified) {
		if r.SummaryLastModified.Before(other.SummaryLastModified) {
			return -1
		}
		return 1
	}

	if len(r.Refs) != len(other.Refs) {
		return len(r.Refs) - len(other.Refs)
	}

	switch {
	case r.Remote.Name < other.Remote.Name:
		return -1
	case r.Remote.Name > other.Remote.Name:
		return 1
	default:
		return 0
	}
}

// Results is a sortable collection of results
type Results []Result

func (r Results) Len() int {
	return len(r)
}

func (r Results) Swap(i, j int) {
	r[i], r[j] = r[j], r[i]
}

func (r Results) Less(i, j int) bool {
	return r[i].Compare(r[j]) < 0
}

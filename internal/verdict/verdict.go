// Package verdict classifies the outputs of a completed round into a
// verdict about agreement between the candidate and the references.
package verdict

import (
	mapset "github.com/deckarep/golang-set/v2"
)

// Verdict is the classifier's conclusion for one round.
type Verdict int

const (
	// AllMatch means every reference produced the candidate's output.
	AllMatch Verdict = iota
	// CandidateMismatch means the disagreeing references all agree on a
	// single alternative answer, so the candidate is deemed wrong.
	CandidateMismatch
	// ReferenceInconsistency means the disagreeing references do not even
	// agree with each other. The oracles cannot be trusted for this round;
	// it points at a bug or non-determinism in the test setup itself and is
	// more severe than a plain mismatch.
	ReferenceInconsistency
)

func (v Verdict) String() string {
	switch v {
	case AllMatch:
		return "all match"
	case CandidateMismatch:
		return "candidate mismatch"
	case ReferenceInconsistency:
		return "reference inconsistency"
	}
	return "unknown"
}

// Classification carries the verdict together with the outputs that
// produced it. Disagreeing is set for CandidateMismatch (the reference
// outputs that differ from the candidate, in input order); References is
// set for ReferenceInconsistency (every reference output).
type Classification struct {
	Verdict         Verdict
	CandidateOutput string
	Disagreeing     []string
	References      []string
}

// Classify compares the candidate output against the reference outputs.
// Equality is exact byte equality; callers needing fuzzy comparison must
// normalize before calling. The function is pure and depends only on the
// multiset of reference outputs, never on their order.
//
// references must be non-empty; with no oracles there is nothing to
// classify and the driver skips the call.
func Classify(candidate string, references []string) Classification {
	disagreeing := make([]string, 0)
	for _, ref := range references {
		if ref != candidate {
			disagreeing = append(disagreeing, ref)
		}
	}

	if len(disagreeing) == 0 {
		return Classification{Verdict: AllMatch, CandidateOutput: candidate}
	}

	distinct := mapset.NewThreadUnsafeSet(disagreeing...)
	if distinct.Cardinality() == 1 {
		return Classification{
			Verdict:         CandidateMismatch,
			CandidateOutput: candidate,
			Disagreeing:     disagreeing,
		}
	}

	return Classification{
		Verdict:         ReferenceInconsistency,
		CandidateOutput: candidate,
		References:      references,
	}
}

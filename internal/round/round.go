// Package round orchestrates one stress-testing round: generate an input,
// then run the candidate and every reference program concurrently against
// that same input.
package round

import (
	"context"
	"log/slog"
	"sync"

	"github.com/programme-lv/stresser/internal/execute"
	"github.com/programme-lv/stresser/internal/program"
)

// Kind tells how a round ended.
type Kind int

const (
	// GeneratorFailed means the input generator malfunctioned; nothing else
	// was spawned.
	GeneratorFailed Kind = iota
	// CandidateFailed means the candidate program malfunctioned on the
	// generated input.
	CandidateFailed
	// ReferencesFailed means one or more reference programs malfunctioned.
	// References are trusted oracles, so this points at a harness
	// configuration problem rather than a candidate bug.
	ReferencesFailed
	// Completed means every participant succeeded and the outputs are ready
	// for classification.
	Completed
)

func (k Kind) String() string {
	switch k {
	case GeneratorFailed:
		return "generator failed"
	case CandidateFailed:
		return "candidate failed"
	case ReferencesFailed:
		return "references failed"
	case Completed:
		return "completed"
	}
	return "unknown"
}

// Result is the outcome of one round. It is created fresh per round and
// never mutated. Which fields are set depends on Kind.
type Result struct {
	Kind  Kind
	Input string // generated input; empty when the generator failed

	GeneratorFailure  *execute.Failure
	CandidateFailure  *execute.Failure
	ReferenceFailures []*execute.Failure

	CandidateOutput  string
	ReferenceOutputs []string // in the order the references were given
}

// Run executes one full round. The generator runs first, unconstrained and
// with empty stdin; its stdout becomes the round input. The candidate (under
// constr) and all references (unconstrained) are then all launched before
// any of them is waited on, so each program's wall-clock budget covers only
// its own execution and round latency is bounded by the slowest participant.
//
// References run without limits on purpose: a false timeout on a trusted
// oracle would mask real candidate bugs.
func Run(ctx context.Context, generator, candidate *program.Program, references []*program.Program, constr execute.Constraints) Result {
	genOut := execute.Run(ctx, generator, "", execute.Constraints{})
	if !genOut.OK() {
		return Result{Kind: GeneratorFailed, GeneratorFailure: genOut.Failure}
	}
	input := genOut.Stdout

	slog.Debug("generated round input",
		"generator", generator.Path, "bytes", len(input), "participants", 1+len(references))

	// Index 0 is the candidate; references follow in order. Every
	// participant owns its slot exclusively, the input string is shared
	// read-only.
	outcomes := make([]execute.Outcome, 1+len(references))
	var wg sync.WaitGroup
	wg.Add(1 + len(references))
	go func() {
		defer wg.Done()
		outcomes[0] = execute.Run(ctx, candidate, input, constr)
	}()
	for i, ref := range references {
		go func() {
			defer wg.Done()
			outcomes[1+i] = execute.Run(ctx, ref, input, execute.Constraints{})
		}()
	}
	wg.Wait()

	// A broken candidate makes reference comparison moot for this round,
	// even when some reference also failed.
	if !outcomes[0].OK() {
		return Result{Kind: CandidateFailed, Input: input, CandidateFailure: outcomes[0].Failure}
	}

	var failures []*execute.Failure
	refOutputs := make([]string, len(references))
	for i, out := range outcomes[1:] {
		if !out.OK() {
			failures = append(failures, out.Failure)
			continue
		}
		refOutputs[i] = out.Stdout
	}
	if len(failures) > 0 {
		return Result{Kind: ReferencesFailed, Input: input, ReferenceFailures: failures}
	}

	return Result{
		Kind:             Completed,
		Input:            input,
		CandidateOutput:  outcomes[0].Stdout,
		ReferenceOutputs: refOutputs,
	}
}

// Package report defines how stress-run progress is delivered to whoever is
// watching: a terminal, a NATS inbox, or an SQS queue.
package report

import (
	"strings"

	"github.com/programme-lv/stresser/api"
	"github.com/programme-lv/stresser/internal/execute"
	"github.com/programme-lv/stresser/internal/round"
	"github.com/programme-lv/stresser/internal/verdict"
)

// Reporter receives the progress of one stress run. FinishRound gets the
// classification when the round completed and references were supplied;
// class is nil otherwise.
type Reporter interface {
	StartRun(rounds int, candidate string, references []string)
	StartRound(n int)
	FinishRound(n int, res round.Result, class *verdict.Classification)
	FinishRun(s Summary)
}

// Summary aggregates a whole stress run.
type Summary struct {
	Rounds          int
	Matches         int
	Mismatches      int
	Inconsistencies int
	Failures        int // rounds where the generator, candidate or a reference malfunctioned
	Unchecked       int // completed rounds with no references to compare against
}

// Multi fans every event out to several reporters.
type Multi []Reporter

func (m Multi) StartRun(rounds int, candidate string, references []string) {
	for _, r := range m {
		r.StartRun(rounds, candidate, references)
	}
}

func (m Multi) StartRound(n int) {
	for _, r := range m {
		r.StartRound(n)
	}
}

func (m Multi) FinishRound(n int, res round.Result, class *verdict.Classification) {
	for _, r := range m {
		r.FinishRound(n, res, class)
	}
}

func (m Multi) FinishRun(s Summary) {
	for _, r := range m {
		r.FinishRun(s)
	}
}

// BuildFinishRound maps a round result to its wire message, trimming inputs
// and outputs to a readable excerpt.
func BuildFinishRound(runUuid string, n int, res round.Result, class *verdict.Classification) api.FinishRound {
	msg := api.FinishRound{
		Header: api.NewHeader(runUuid, api.FinishRoundMsg),
		Round:  n,
		Status: res.Kind.String(),
	}

	if res.Input != "" {
		input := TrimToRect(res.Input, api.MaxIOHeight, api.MaxIOWidth)
		msg.Input = &input
	}

	switch res.Kind {
	case round.GeneratorFailed:
		msg.Failures = []api.ProgramFailure{mapFailure(res.GeneratorFailure)}
	case round.CandidateFailed:
		msg.Failures = []api.ProgramFailure{mapFailure(res.CandidateFailure)}
	case round.ReferencesFailed:
		for _, f := range res.ReferenceFailures {
			msg.Failures = append(msg.Failures, mapFailure(f))
		}
	case round.Completed:
		out := TrimToRect(res.CandidateOutput, api.MaxIOHeight, api.MaxIOWidth)
		msg.CandidateOutput = &out
		for _, ref := range res.ReferenceOutputs {
			msg.ReferenceOutputs = append(msg.ReferenceOutputs,
				TrimToRect(ref, api.MaxIOHeight, api.MaxIOWidth))
		}
		if class != nil {
			v := class.Verdict.String()
			msg.Verdict = &v
		}
	}

	return msg
}

func mapFailure(f *execute.Failure) api.ProgramFailure {
	return api.ProgramFailure{
		Program: f.Program,
		Kind:    f.Kind.String(),
		Status:  f.Status,
		Stderr:  TrimToRect(f.Stderr, api.MaxIOHeight, api.MaxIOWidth),
	}
}

// TrimToRect cuts s down to at most maxHeight lines of maxWidth bytes,
// marking every cut with "[...]".
func TrimToRect(s string, maxHeight int, maxWidth int) string {
	lines := strings.Split(s, "\n")
	if len(lines) > maxHeight {
		lines = lines[:maxHeight]
		lines = append(lines, "[...]")
	}
	res := ""
	for i, line := range lines {
		if i > 0 {
			res += "\n"
		}
		if len(line) > maxWidth {
			res += line[:maxWidth] + "[...]"
		} else {
			res += line
		}
	}
	return res
}

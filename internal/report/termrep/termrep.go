// Package termrep renders stress-run progress to the terminal.
package termrep

import (
	"fmt"
	"time"

	"github.com/fatih/color"

	"github.com/programme-lv/stresser/internal/execute"
	"github.com/programme-lv/stresser/internal/report"
	"github.com/programme-lv/stresser/internal/round"
	"github.com/programme-lv/stresser/internal/verdict"
)

var (
	okLine   = color.New(color.FgGreen)
	failLine = color.New(color.FgRed)
	critLine = color.New(color.FgRed, color.Bold)
	warnLine = color.New(color.FgYellow)
)

type TerminalReporter struct {
	StartedAt time.Time
}

func New() *TerminalReporter { return &TerminalReporter{StartedAt: time.Now()} }

func (t *TerminalReporter) StartRun(rounds int, candidate string, references []string) {
	fmt.Printf("== stressing %s against %d reference(s) for %d round(s)\n",
		candidate, len(references), rounds)
}

func (t *TerminalReporter) StartRound(n int) {
	fmt.Printf("== starting round %d\n", n)
}

func (t *TerminalReporter) FinishRound(n int, res round.Result, class *verdict.Classification) {
	switch res.Kind {
	case round.GeneratorFailed:
		printFailure(res.GeneratorFailure)
	case round.CandidateFailed:
		printFailure(res.CandidateFailure)
		fmt.Printf("with the following input:\n%s\n", res.Input)
	case round.ReferencesFailed:
		for _, f := range res.ReferenceFailures {
			printFailure(f)
		}
	case round.Completed:
		if class == nil {
			warnLine.Println("  warning: skipping reference checks as no references were supplied")
			return
		}
		t.printClassification(res, class)
	}
}

func (t *TerminalReporter) printClassification(res round.Result, class *verdict.Classification) {
	switch class.Verdict {
	case verdict.AllMatch:
		okLine.Println("✔ -- all references match the output")
	case verdict.CandidateMismatch:
		failLine.Printf("✘ -- %d reference(s) disagree with the candidate\n", len(class.Disagreeing))
		fmt.Printf("\n::: input:\n%s\n", res.Input)
		fmt.Printf("\n::: candidate output:\n%s\n", class.CandidateOutput)
		for i, out := range class.Disagreeing {
			fmt.Printf("\n::: disagreeing reference %d output:\n%s\n", i+1, out)
		}
	case verdict.ReferenceInconsistency:
		critLine.Println("✘ -- CRITICAL: the references disagree with each other")
		fmt.Printf("\n::: input:\n%s\n", res.Input)
		for i, out := range class.References {
			fmt.Printf("\n::: reference %d output:\n%s\n", i+1, out)
		}
	}
}

func printFailure(f *execute.Failure) {
	if f.Kind == execute.FailTimeLimit {
		failLine.Printf("  program %q exceeded the time limit\n", f.Program)
		return
	}
	failLine.Printf("  program %q failed with status %q and the error: %s\n",
		f.Program, f.Status, f.Stderr)
}

func (t *TerminalReporter) FinishRun(s report.Summary) {
	dur := time.Since(t.StartedAt).Round(time.Millisecond)
	fmt.Printf("== finished %d round(s) in %s: %d match, %d mismatch, %d inconsistent, %d failed, %d unchecked\n",
		s.Rounds, dur, s.Matches, s.Mismatches, s.Inconsistencies, s.Failures, s.Unchecked)
}

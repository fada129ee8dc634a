package execute

import "fmt"

// FailureKind distinguishes the ways a program run can fail.
type FailureKind int

const (
	// FailNonZeroExit means the process exited with a non-success status,
	// or could not be started at all.
	FailNonZeroExit FailureKind = iota
	// FailDiagnosticOutput means the process wrote to stderr. Stderr output
	// is treated as evidence of malfunction even when the exit status
	// reports success.
	FailDiagnosticOutput
	// FailTimeLimit means the process was killed for exceeding its
	// wall-clock budget.
	FailTimeLimit
)

func (k FailureKind) String() string {
	switch k {
	case FailNonZeroExit:
		return "non-zero exit"
	case FailDiagnosticOutput:
		return "diagnostic output"
	case FailTimeLimit:
		return "time limit exceeded"
	}
	return "unknown"
}

// Failure describes an unsuccessful program run.
type Failure struct {
	Kind    FailureKind
	Program string // path the program was resolved from
	Status  string // exit status description, e.g. "exit status 1"
	Stderr  string // captured diagnostic output
}

func (f *Failure) Error() string {
	switch f.Kind {
	case FailTimeLimit:
		return fmt.Sprintf("program %s exceeded the time limit", f.Program)
	case FailDiagnosticOutput:
		return fmt.Sprintf("program %s wrote to stderr: %s", f.Program, f.Stderr)
	}
	return fmt.Sprintf("program %s failed with status %q: %s", f.Program, f.Status, f.Stderr)
}

// Outcome is the result of one program run. Failure is nil exactly when the
// process exited with a success status and wrote nothing to stderr; only
// then is Stdout meaningful.
type Outcome struct {
	Stdout  string
	Failure *Failure
}

// OK reports whether the run succeeded.
func (o Outcome) OK() bool {
	return o.Failure == nil
}

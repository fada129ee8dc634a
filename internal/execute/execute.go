// Package execute runs a single resolved program to completion against a
// fixed input, optionally bounded by a wall-clock deadline and a
// resident-memory ceiling.
package execute

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/programme-lv/stresser/internal/program"
)

// Constraints bounds a single run. Zero values mean unlimited.
type Constraints struct {
	// WallTimeLim is the wall-clock budget. A run over budget is killed and
	// reported as FailTimeLimit.
	WallTimeLim time.Duration
	// MemoryLimKiB caps the process address space via RLIMIT_AS. A process
	// killed by the ceiling is observed as an ordinary non-success exit
	// ("signal: killed" or a failed allocation); OS-level enforcement does
	// not report why the process died, so no separate failure kind exists.
	MemoryLimKiB int64
}

// termGracePeriod is how long a timed-out process gets to exit after
// SIGTERM before it is killed.
const termGracePeriod = 2 * time.Second

// Run spawns prog, feeds input to its stdin and captures stdout and stderr.
// The input is written from its own goroutine while both output streams
// drain concurrently, so a program that starts echoing before it has
// consumed all of its input cannot deadlock against a full pipe buffer.
//
// Exactly one process is created and it is fully reaped on every path,
// including timeout and limit-triggered kills.
func Run(ctx context.Context, prog *program.Program, input string, constr Constraints) Outcome {
	runCtx := ctx
	if constr.WallTimeLim > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, constr.WallTimeLim)
		defer cancel()
	}

	argv := prog.Argv()
	cmd := exec.CommandContext(runCtx, argv[0], argv[1:]...)
	cmd.Cancel = func() error {
		return cmd.Process.Signal(syscall.SIGTERM)
	}
	cmd.WaitDelay = termGracePeriod

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return startFailure(prog, err)
	}

	if err := cmd.Start(); err != nil {
		return startFailure(prog, err)
	}

	if constr.MemoryLimKiB > 0 {
		if err := DefaultEnforcer.Enforce(cmd.Process.Pid, constr.MemoryLimKiB); err != nil {
			_ = cmd.Process.Kill()
			_ = cmd.Wait()
			return startFailure(prog, fmt.Errorf("enforcing memory limit: %w", err))
		}
	}

	writers := new(errgroup.Group)
	writers.Go(func() error {
		defer stdin.Close()
		_, err := io.Copy(stdin, strings.NewReader(input))
		// A program is free to exit without reading all of its input;
		// the resulting broken pipe is not a harness error.
		if err != nil && !errors.Is(err, syscall.EPIPE) && !errors.Is(err, io.ErrClosedPipe) {
			return err
		}
		return nil
	})

	waitErr := cmd.Wait()
	if err := writers.Wait(); err != nil {
		slog.Debug("stdin writer failed", "program", prog.Path, "error", err)
	}

	// A kill by deadline takes precedence over whatever partial output or
	// exit status the process produced.
	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		return Outcome{Failure: &Failure{
			Kind:    FailTimeLimit,
			Program: prog.Path,
		}}
	}

	if waitErr != nil {
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			return Outcome{Failure: &Failure{
				Kind:    FailNonZeroExit,
				Program: prog.Path,
				Status:  exitErr.ProcessState.String(),
				Stderr:  stderr.String(),
			}}
		}
		return Outcome{Failure: &Failure{
			Kind:    FailNonZeroExit,
			Program: prog.Path,
			Status:  waitErr.Error(),
			Stderr:  stderr.String(),
		}}
	}

	if stderr.Len() > 0 {
		return Outcome{Failure: &Failure{
			Kind:    FailDiagnosticOutput,
			Program: prog.Path,
			Status:  cmd.ProcessState.String(),
			Stderr:  stderr.String(),
		}}
	}

	return Outcome{Stdout: stdout.String()}
}

func startFailure(prog *program.Program, err error) Outcome {
	return Outcome{Failure: &Failure{
		Kind:    FailNonZeroExit,
		Program: prog.Path,
		Status:  err.Error(),
	}}
}

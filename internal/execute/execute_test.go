package execute_test

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/programme-lv/stresser/internal/execute"
	"github.com/programme-lv/stresser/internal/program"
)

// writeScript drops an executable shell script into a temp dir and resolves it.
func writeScript(t *testing.T, body string) *program.Program {
	t.Helper()

	path := filepath.Join(t.TempDir(), "prog.sh")
	err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0755)
	require.NoError(t, err)

	prog, err := program.Resolve(path)
	require.NoError(t, err)
	return prog
}

func TestRunEchoesInput(t *testing.T) {
	prog := writeScript(t, "cat")

	out := execute.Run(context.Background(), prog, "1 2 3\n", execute.Constraints{})

	require.True(t, out.OK(), "unexpected failure: %v", out.Failure)
	assert.Equal(t, "1 2 3\n", out.Stdout)
}

func TestRunDiagnosticOutputOverridesSuccessStatus(t *testing.T) {
	prog := writeScript(t, "echo fine\necho oops >&2\nexit 0")

	out := execute.Run(context.Background(), prog, "", execute.Constraints{})

	require.False(t, out.OK())
	assert.Equal(t, execute.FailDiagnosticOutput, out.Failure.Kind)
	assert.Contains(t, out.Failure.Stderr, "oops")
}

func TestRunNonZeroExit(t *testing.T) {
	prog := writeScript(t, "exit 3")

	out := execute.Run(context.Background(), prog, "", execute.Constraints{})

	require.False(t, out.OK())
	assert.Equal(t, execute.FailNonZeroExit, out.Failure.Kind)
	assert.Contains(t, out.Failure.Status, "exit status 3")
}

func TestRunTimeLimitExceeded(t *testing.T) {
	prog := writeScript(t, "exec sleep 5")

	start := time.Now()
	out := execute.Run(context.Background(), prog, "", execute.Constraints{
		WallTimeLim: 150 * time.Millisecond,
	})
	elapsed := time.Since(start)

	require.False(t, out.OK())
	assert.Equal(t, execute.FailTimeLimit, out.Failure.Kind)
	assert.Less(t, elapsed, 3*time.Second, "timed-out process was not reaped promptly")
}

func TestRunTimeLimitDiscardsPartialOutput(t *testing.T) {
	prog := writeScript(t, "echo partial\nexec sleep 5")

	out := execute.Run(context.Background(), prog, "", execute.Constraints{
		WallTimeLim: 150 * time.Millisecond,
	})

	require.False(t, out.OK())
	assert.Equal(t, execute.FailTimeLimit, out.Failure.Kind)
	assert.Empty(t, out.Stdout)
}

func TestRunDoesNotDeadlockOnLargeInput(t *testing.T) {
	// The program writes before it starts reading; with an input far over
	// pipe buffer capacity a sequential write-then-read pipeline would hang.
	prog := writeScript(t, "echo start\ncat")
	input := strings.Repeat("0123456789abcdef\n", 1<<18) // ~4 MiB

	out := execute.Run(context.Background(), prog, input, execute.Constraints{})

	require.True(t, out.OK(), "unexpected failure: %v", out.Failure)
	assert.Equal(t, "start\n"+input, out.Stdout)
}

func TestRunMemoryLimitSurfacesAsOrdinaryExit(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("memory limits are only enforced on linux")
	}

	// The shell sleeps so the ceiling is in place before dd tries to
	// allocate a 64 MiB buffer under a 32 MiB address-space limit.
	prog := writeScript(t, "sleep 0.2\nexec dd if=/dev/zero of=/dev/null bs=64M count=1")

	out := execute.Run(context.Background(), prog, "", execute.Constraints{
		MemoryLimKiB: 32 * 1024,
	})

	require.False(t, out.OK())
	assert.NotEqual(t, execute.FailTimeLimit, out.Failure.Kind)
}

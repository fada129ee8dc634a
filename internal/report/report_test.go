package report_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/programme-lv/stresser/api"
	"github.com/programme-lv/stresser/internal/execute"
	"github.com/programme-lv/stresser/internal/report"
	"github.com/programme-lv/stresser/internal/round"
	"github.com/programme-lv/stresser/internal/verdict"
)

func TestTrimToRect(t *testing.T) {
	assert.Equal(t, "short", report.TrimToRect("short", 10, 10))

	tall := strings.TrimSuffix(strings.Repeat("x\n", 20), "\n")
	trimmed := report.TrimToRect(tall, 3, 10)
	assert.Equal(t, "x\nx\nx\n[...]", trimmed)

	wide := strings.Repeat("y", 25)
	assert.Equal(t, strings.Repeat("y", 10)+"[...]", report.TrimToRect(wide, 3, 10))
}

func TestBuildFinishRoundCompleted(t *testing.T) {
	res := round.Result{
		Kind:             round.Completed,
		Input:            "5\n",
		CandidateOutput:  "25\n",
		ReferenceOutputs: []string{"24\n"},
	}
	class := verdict.Classify(res.CandidateOutput, res.ReferenceOutputs)

	msg := report.BuildFinishRound("run-1", 3, res, &class)

	assert.Equal(t, "run-1", msg.RunUuid)
	assert.Equal(t, api.FinishRoundMsg, msg.MsgType)
	assert.Equal(t, 3, msg.Round)
	assert.Equal(t, "completed", msg.Status)
	require.NotNil(t, msg.Verdict)
	assert.Equal(t, "candidate mismatch", *msg.Verdict)
	require.NotNil(t, msg.CandidateOutput)
	assert.Equal(t, "25\n", *msg.CandidateOutput)
	assert.Equal(t, []string{"24\n"}, msg.ReferenceOutputs)
}

func TestBuildFinishRoundGeneratorFailure(t *testing.T) {
	res := round.Result{
		Kind: round.GeneratorFailed,
		GeneratorFailure: &execute.Failure{
			Kind:    execute.FailNonZeroExit,
			Program: "gen.py",
			Status:  "exit status 1",
			Stderr:  "traceback\n",
		},
	}

	msg := report.BuildFinishRound("run-1", 0, res, nil)

	assert.Equal(t, "generator failed", msg.Status)
	assert.Nil(t, msg.Verdict)
	assert.Nil(t, msg.Input)
	require.Len(t, msg.Failures, 1)
	assert.Equal(t, "gen.py", msg.Failures[0].Program)
	assert.Equal(t, "non-zero exit", msg.Failures[0].Kind)
}

package api

import "time"

// MsgType is a message type for streamed stress-run progress
type MsgType string

const (
	StartRunMsg    MsgType = "run_start"
	StartRoundMsg  MsgType = "round_start"
	FinishRoundMsg MsgType = "round_finish"
	FinishRunMsg   MsgType = "run_finish"
)

// I/O size constraints for streamed messages. Generated inputs and program
// outputs can be megabytes; consumers only need a readable excerpt.
const (
	MaxIOHeight = 40
	MaxIOWidth  = 80
)

// Header is the common header for all streamed messages
type Header struct {
	RunUuid string  `json:"run_uuid"`
	MsgType MsgType `json:"msg_type"`
}

// ProgramFailure describes one malfunctioning program within a round
type ProgramFailure struct {
	Program string `json:"program"`
	Kind    string `json:"kind"`
	Status  string `json:"status,omitempty"`
	Stderr  string `json:"stderr,omitempty"`
}

// StartRun message sent when a stress run begins
type StartRun struct {
	Header
	Rounds      int      `json:"rounds"`
	Candidate   string   `json:"candidate"`
	References  []string `json:"references"`
	StartedTime string   `json:"started_time"`
}

// StartRound message sent when a round begins
type StartRound struct {
	Header
	Round int `json:"round"`
}

// FinishRound message sent when a round completes
type FinishRound struct {
	Header
	Round   int     `json:"round"`
	Status  string  `json:"status"`
	Verdict *string `json:"verdict"`

	Input          *string          `json:"input"`
	CandidateOutput  *string          `json:"candidate_output"`
	ReferenceOutputs []string         `json:"reference_outputs,omitempty"`
	Failures         []ProgramFailure `json:"failures,omitempty"`
}

// FinishRun message sent when a stress run completes
type FinishRun struct {
	Header
	Rounds          int `json:"rounds"`
	Matches         int `json:"matches"`
	Mismatches      int `json:"mismatches"`
	Inconsistencies int `json:"inconsistencies"`
	Failures        int `json:"failures"`
	Unchecked       int `json:"unchecked"`
}

func NewHeader(runUuid string, msgType MsgType) Header {
	return Header{
		RunUuid: runUuid,
		MsgType: msgType,
	}
}

func NewStartRun(runUuid string, rounds int, candidate string, references []string) StartRun {
	return StartRun{
		Header:      NewHeader(runUuid, StartRunMsg),
		Rounds:      rounds,
		Candidate:   candidate,
		References:  references,
		StartedTime: time.Now().Format(time.RFC3339),
	}
}

func NewStartRound(runUuid string, round int) StartRound {
	return StartRound{
		Header: NewHeader(runUuid, StartRoundMsg),
		Round:  round,
	}
}

func NewFinishRun(runUuid string, rounds, matches, mismatches, inconsistencies, failures, unchecked int) FinishRun {
	return FinishRun{
		Header:          NewHeader(runUuid, FinishRunMsg),
		Rounds:          rounds,
		Matches:         matches,
		Mismatches:      mismatches,
		Inconsistencies: inconsistencies,
		Failures:        failures,
		Unchecked:       unchecked,
	}
}

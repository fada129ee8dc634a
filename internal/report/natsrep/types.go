// Package natsrep streams stress-run progress to a NATS subject.
package natsrep

import (
	"github.com/nats-io/nats.go"

	"github.com/programme-lv/stresser/api"
	"github.com/programme-lv/stresser/internal/report"
	"github.com/programme-lv/stresser/internal/round"
	"github.com/programme-lv/stresser/internal/verdict"
)

type natsReporter struct {
	nc      *nats.Conn
	subject string
	runUuid string
}

func (s *natsReporter) StartRun(rounds int, candidate string, references []string) {
	s.send(api.NewStartRun(s.runUuid, rounds, candidate, references))
}

func (s *natsReporter) StartRound(n int) {
	s.send(api.NewStartRound(s.runUuid, n))
}

func (s *natsReporter) FinishRound(n int, res round.Result, class *verdict.Classification) {
	s.send(report.BuildFinishRound(s.runUuid, n, res, class))
}

func (s *natsReporter) FinishRun(sum report.Summary) {
	s.send(api.NewFinishRun(s.runUuid, sum.Rounds, sum.Matches, sum.Mismatches,
		sum.Inconsistencies, sum.Failures, sum.Unchecked))
}

// Package sqsrep streams stress-run progress to an SQS queue.
package sqsrep

import (
	"github.com/aws/aws-sdk-go-v2/service/sqs"

	"github.com/programme-lv/stresser/api"
	"github.com/programme-lv/stresser/internal/report"
	"github.com/programme-lv/stresser/internal/round"
	"github.com/programme-lv/stresser/internal/verdict"
)

type sqsReporter struct {
	sqsClient *sqs.Client
	queueUrl  string
	runUuid   string
}

func (s *sqsReporter) StartRun(rounds int, candidate string, references []string) {
	s.send(api.NewStartRun(s.runUuid, rounds, candidate, references))
}

func (s *sqsReporter) StartRound(n int) {
	s.send(api.NewStartRound(s.runUuid, n))
}

func (s *sqsReporter) FinishRound(n int, res round.Result, class *verdict.Classification) {
	s.send(report.BuildFinishRound(s.runUuid, n, res, class))
}

func (s *sqsReporter) FinishRun(sum report.Summary) {
	s.send(api.NewFinishRun(s.runUuid, sum.Rounds, sum.Matches, sum.Mismatches,
		sum.Inconsistencies, sum.Failures, sum.Unchecked))
}

package natsrep

import (
	"github.com/nats-io/nats.go"
)

// New creates a NATS reporter that streams run progress to the given subject.
func New(nc *nats.Conn, runUuid string, subject string) *natsReporter {
	return &natsReporter{
		nc:      nc,
		subject: subject,
		runUuid: runUuid,
	}
}

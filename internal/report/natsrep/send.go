package natsrep

import (
	"encoding/json"
	"log/slog"
)

func (s *natsReporter) send(msg interface{}) {
	b, err := json.Marshal(msg)
	if err != nil {
		slog.Error("failed to marshal message", "error", err)
		return
	}

	if err := s.nc.Publish(s.subject, b); err != nil {
		slog.Error("failed to publish message to NATS", "error", err)
	}
}

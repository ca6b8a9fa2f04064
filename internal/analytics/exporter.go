// Package analytics streams every bus event to a kafka topic for offline
// diagnostics. It is a pure observer: export failures never touch session
// state or block event delivery semantics beyond the synchronous call.
package analytics

import (
	"encoding/json"
	"log/slog"
	"time"

	"storefront/internal/events"
)

// Producer is satisfied by the kafka delivery producer.
type Producer interface {
	Produce(message, topic, key string) error
}

type Exporter struct {
	producer Producer
	topic    string
	log      *slog.Logger
}

// envelope is the exported record. Payloads are marshalled best-effort;
// unmarshallable ones are exported without a payload.
type envelope struct {
	Session string          `json:"session"`
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload,omitempty"`
	Time    time.Time       `json:"time"`
}

func NewExporter(producer Producer, topic string, log *slog.Logger) *Exporter {
	return &Exporter{
		producer: producer,
		topic:    topic,
		log:      log,
	}
}

// Attach subscribes the exporter to every event on a session bus. The
// returned subscription detaches it again when the session ends.
func (e *Exporter) Attach(sessionID string, bus *events.Bus) *events.Subscription {
	return bus.OnAll(func(event string, payload any) {
		env := envelope{
			Session: sessionID,
			Event:   event,
			Time:    time.Now().UTC(),
		}
		if payload != nil {
			if data, err := json.Marshal(payload); err == nil {
				env.Payload = data
			}
		}

		record, err := json.Marshal(env)
		if err != nil {
			e.log.Warn("failed to marshal analytics record", "event", event, "error", err)
			return
		}
		if err := e.producer.Produce(string(record), e.topic, sessionID); err != nil {
			e.log.Warn("failed to export event", "event", event, "error", err)
		}
	})
}

package kafkaHandler

import (
	"log/slog"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
)

// CatalogRefresher is told that the upstream catalog changed; it reloads
// and pushes the fresh catalog into every live session.
type CatalogRefresher interface {
	RefreshCatalog() error
}

// KafkaHandler turns catalog-topic notifications into catalog refreshes.
// Message contents are ignored: the notification itself is the signal, and
// the refresher re-reads the catalog from the source of truth.
type KafkaHandler struct {
	refresher CatalogRefresher
	log       *slog.Logger
}

func NewKafkaHandler(refresher CatalogRefresher, log *slog.Logger) *KafkaHandler {
	return &KafkaHandler{
		refresher: refresher,
		log:       log,
	}
}

func (h *KafkaHandler) HandleMessage(message []byte, topic kafka.TopicPartition, cn int) error {
	h.log.Info("catalog refresh notification received",
		"partition", topic.Partition,
		"consumer", cn,
	)
	if err := h.refresher.RefreshCatalog(); err != nil {
		// Commit anyway: the notification is not replayable work, the next
		// one or the next session load will pick the catalog up.
		h.log.Error("catalog refresh failed", "error", err)
	}
	return nil
}

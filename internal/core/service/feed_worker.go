package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/rl1809/musicstore/internal/core/domain"
	"github.com/rl1809/musicstore/internal/port"
)

// RunFeedWorker publishes queued transaction events until the queue is
// closed. Failed publishes are logged and not retried. A nil queue, as
// returned by a store without a feed, makes it return immediately.
func RunFeedWorker(id int, queue <-chan domain.TransactionEvent, publisher port.EventPublisher, timeout time.Duration, logger *zap.Logger) {
	if queue == nil {
		return
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	log := logger.With(zap.Int("worker", id))

	for event := range queue {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)

		published, err := publisher.Publish(ctx, event)
		switch {
		case err != nil:
			log.Error("failed to publish transaction",
				zap.String("sid", event.SID),
				zap.String("tx_id", event.Transaction.ID),
				zap.Error(err),
			)
		case !published:
			log.Warn("transaction already published",
				zap.String("tx_id", event.Transaction.ID),
			)
		default:
			log.Debug("published transaction",
				zap.String("sid", event.SID),
				zap.String("tx_id", event.Transaction.ID),
			)
		}

		cancel()
	}
}

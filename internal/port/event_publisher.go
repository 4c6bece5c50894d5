package port

import (
	"context"

	"github.com/rl1809/musicstore/internal/core/domain"
)

type EventPublisher interface {
	// Publish delivers a transaction event to the feed. It returns false if
	// the transaction was already published.
	Publish(ctx context.Context, event domain.TransactionEvent) (bool, error)
}

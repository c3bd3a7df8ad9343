package ports

import (
	"context"

	"github.com/samirrijal/ecoaldeas/internal/core/domain"
)

// EventPublisher publishes selection changes to a message broker.
type EventPublisher interface {
	PublishSelection(ctx context.Context, sessionID string, detail domain.Detail) error
}

// EventSubscriber delivers selection changes for one session. The returned
// function cancels the subscription.
type EventSubscriber interface {
	SubscribeSelection(sessionID string, handler func(detail domain.Detail)) (func(), error)
}

// CacheService provides read-through caching.
type CacheService interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttlSeconds int) error
	Delete(ctx context.Context, key string) error
}

package port

import (
	"context"

	"github.com/heyheyboy777/SAD-project/internal/core/domain"
)

type EventPublisher interface {
	PublishOrderEvent(ctx context.Context, event domain.OrderEvent) error
	Close() error
}

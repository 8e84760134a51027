package events

import (
	"context"
	"log/slog"

	"github.com/heyheyboy777/SAD-project/internal/core/domain"
)

// LogPublisher records events in the log when no broker is configured.
type LogPublisher struct {
	log *slog.Logger
}

func NewLogPublisher(log *slog.Logger) *LogPublisher {
	return &LogPublisher{log: log}
}

func (p *LogPublisher) PublishOrderEvent(ctx context.Context, event domain.OrderEvent) error {
	p.log.InfoContext(ctx, "order event",
		"event_id", event.ID,
		"order_id", event.OrderID,
		"customer", event.CustomerName,
		"from", event.From,
		"to", event.To,
	)
	return nil
}

func (p *LogPublisher) Close() error {
	return nil
}

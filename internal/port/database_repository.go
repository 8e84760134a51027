package port

import (
	"context"

	"github.com/heyheyboy777/SAD-project/internal/core/domain"
)

type OrderRepository interface {
	// ListOrders returns every order in feed order
	ListOrders(ctx context.Context) ([]domain.Order, error)

	// GetOrder returns domain.ErrOrderNotFound when the id is unknown
	GetOrder(ctx context.Context, id string) (domain.Order, error)

	// SwapStatus sets the status to `to` only if it is currently `from`.
	// It reports false, without error, when the order is missing or in another state.
	SwapStatus(ctx context.Context, id string, from, to domain.OrderStatus) (bool, error)
}

type PriceRepository interface {
	ListPrices(ctx context.Context) ([]domain.PriceData, error)

	// ReplacePrices swaps the whole catalog in one step
	ReplacePrices(ctx context.Context, prices []domain.PriceData) error
}

type AlertRepository interface {
	ListReorderAlerts(ctx context.Context) ([]domain.ReorderAlert, error)
}

type NotificationRepository interface {
	ListNotifications(ctx context.Context) ([]domain.Notification, error)
}

package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heyheyboy777/SAD-project/internal/core/domain"
	"github.com/heyheyboy777/SAD-project/internal/core/forecast"
	"github.com/heyheyboy777/SAD-project/internal/port"
)

type OrderService struct {
	orders     port.OrderRepository
	now        func() time.Time
	eventQueue chan domain.OrderEvent
	log        *slog.Logger
}

func NewOrderService(orders port.OrderRepository, now func() time.Time, queueSize int) *OrderService {
	if now == nil {
		now = time.Now
	}
	return &OrderService{
		orders:     orders,
		now:        now,
		eventQueue: make(chan domain.OrderEvent, queueSize),
		log:        slog.Default(),
	}
}

// List returns the orders delivered within the horizon of today.
func (s *OrderService) List(ctx context.Context, horizon domain.Horizon) ([]domain.Order, error) {
	orders, err := s.orders.ListOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return forecast.FilterOrdersByHorizon(orders, domain.DateOf(s.now()), horizon), nil
}

func (s *OrderService) Summary(ctx context.Context, horizon domain.Horizon) (domain.OrderSummary, error) {
	orders, err := s.List(ctx, horizon)
	if err != nil {
		return domain.OrderSummary{}, err
	}

	summary := domain.OrderSummary{
		Horizon: horizon,
		Anchor:  domain.DateOf(s.now()),
		Orders:  orders,
	}
	for _, o := range orders {
		if o.Status != domain.OrderStatusPending {
			continue
		}
		summary.PendingCount++
		if o.IsNewCustomer {
			summary.PendingNewCustomerCount++
		}
	}
	return summary, nil
}

// Pending returns every order awaiting review regardless of delivery date.
func (s *OrderService) Pending(ctx context.Context) ([]domain.Order, error) {
	orders, err := s.orders.ListOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	pending := make([]domain.Order, 0, len(orders))
	for _, o := range orders {
		if o.Status == domain.OrderStatusPending {
			pending = append(pending, o)
		}
	}
	return pending, nil
}

func (s *OrderService) Get(ctx context.Context, id string) (domain.Order, error) {
	return s.orders.GetOrder(ctx, id)
}

// Confirm approves a pending order. Unknown or already approved ids are a
// no-op and report false without error. Once the status has changed the
// call succeeds even if ctx ends before the event is queued; the event is
// then dropped and logged.
func (s *OrderService) Confirm(ctx context.Context, id string) (bool, error) {
	ok, err := s.orders.SwapStatus(ctx, id, domain.OrderStatusPending, domain.OrderStatusApproved)
	if err != nil {
		return false, fmt.Errorf("confirm order %s: %w", id, err)
	}
	if !ok {
		return false, nil
	}

	event := domain.OrderEvent{
		ID:      uuid.New().String(),
		OrderID: id,
		From:    domain.OrderStatusPending,
		To:      domain.OrderStatusApproved,
		At:      s.now(),
	}
	if o, err := s.orders.GetOrder(ctx, id); err == nil {
		event.CustomerName = o.CustomerName
	}

	select {
	case s.eventQueue <- event:
	case <-ctx.Done():
		s.log.Warn("order event dropped",
			"order_id", id,
			"event_id", event.ID,
			"error", ctx.Err(),
		)
	}
	return true, nil
}

// ConfirmAll approves every order that is pending at call time and returns
// how many transitions this call performed.
func (s *OrderService) ConfirmAll(ctx context.Context) (int, error) {
	pending, err := s.Pending(ctx)
	if err != nil {
		return 0, err
	}

	confirmed := 0
	for _, o := range pending {
		if err := ctx.Err(); err != nil {
			return confirmed, err
		}
		ok, err := s.Confirm(ctx, o.ID)
		if ok {
			confirmed++
		}
		if err != nil {
			return confirmed, err
		}
	}
	return confirmed, nil
}

func (s *OrderService) GetEventQueue() <-chan domain.OrderEvent {
	return s.eventQueue
}

func (s *OrderService) Close() {
	close(s.eventQueue)
}

package storage

import (
	"context"
	"sync"
	"time"

	"github.com/heyheyboy777/SAD-project/internal/core/domain"
)

// MemoryStore keeps the whole data feed in process. All reads return copies.
type MemoryStore struct {
	mu            sync.RWMutex
	orders        []domain.Order
	prices        []domain.PriceData
	alerts        []domain.ReorderAlert
	notifications []domain.Notification
}

func NewMemoryStore(feed domain.Feed) *MemoryStore {
	s := &MemoryStore{
		orders:        make([]domain.Order, len(feed.Orders)),
		prices:        make([]domain.PriceData, len(feed.Prices)),
		alerts:        make([]domain.ReorderAlert, len(feed.Alerts)),
		notifications: make([]domain.Notification, len(feed.Notifications)),
	}
	for i, o := range feed.Orders {
		s.orders[i] = o.Clone()
	}
	for i, p := range feed.Prices {
		s.prices[i] = p.Clone()
	}
	copy(s.alerts, feed.Alerts)
	copy(s.notifications, feed.Notifications)
	return s
}

func (s *MemoryStore) ListOrders(ctx context.Context) ([]domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Order, len(s.orders))
	for i, o := range s.orders {
		out[i] = o.Clone()
	}
	return out, nil
}

func (s *MemoryStore) GetOrder(ctx context.Context, id string) (domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, o := range s.orders {
		if o.ID == id {
			return o.Clone(), nil
		}
	}
	return domain.Order{}, domain.ErrOrderNotFound
}

func (s *MemoryStore) SwapStatus(ctx context.Context, id string, from, to domain.OrderStatus) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.orders {
		if s.orders[i].ID != id {
			continue
		}
		if s.orders[i].Status != from {
			return false, nil
		}
		s.orders[i].Status = to
		return true, nil
	}
	return false, nil
}

func (s *MemoryStore) ListPrices(ctx context.Context) ([]domain.PriceData, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.PriceData, len(s.prices))
	for i, p := range s.prices {
		out[i] = p.Clone()
	}
	return out, nil
}

func (s *MemoryStore) ReplacePrices(ctx context.Context, prices []domain.PriceData) error {
	next := make([]domain.PriceData, len(prices))
	for i, p := range prices {
		next[i] = p.Clone()
	}

	s.mu.Lock()
	s.prices = next
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) ListReorderAlerts(ctx context.Context) ([]domain.ReorderAlert, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.ReorderAlert, len(s.alerts))
	for i, a := range s.alerts {
		a.UsualOrderItems = append([]domain.OrderItem(nil), a.UsualOrderItems...)
		out[i] = a
	}
	return out, nil
}

func (s *MemoryStore) ListNotifications(ctx context.Context) ([]domain.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Notification, len(s.notifications))
	copy(out, s.notifications)
	return out, nil
}

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// MemoryCache is the in-process CacheRepository used when Redis is not configured.
type MemoryCache struct {
	mu         sync.Mutex
	generation int64
	entries    map[string]memoryEntry
	now        func() time.Time
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[generationKey(c.generation, key)]
	if !ok {
		return nil, false, nil
	}
	if !e.expiresAt.IsZero() && !c.now().Before(e.expiresAt) {
		delete(c.entries, generationKey(c.generation, key))
		return nil, false, nil
	}
	return append([]byte(nil), e.value...), true, nil
}

func (c *MemoryCache) Generation(ctx context.Context) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation, nil
}

func (c *MemoryCache) Set(ctx context.Context, gen int64, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		return nil
	}

	e := memoryEntry{value: append([]byte(nil), value...)}
	if ttl > 0 {
		e.expiresAt = c.now().Add(ttl)
	}
	c.entries[generationKey(c.generation, key)] = e
	return nil
}

func (c *MemoryCache) Invalidate(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.generation++
	c.entries = make(map[string]memoryEntry)
	return nil
}

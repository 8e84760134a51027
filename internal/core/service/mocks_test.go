package service

import (
	"context"
	"sync"
	"time"

	"github.com/heyheyboy777/SAD-project/internal/core/domain"
)

// Mock AlertRepository
type mockAlertRepo struct {
	alerts []domain.ReorderAlert
	err    error
}

func (m *mockAlertRepo) ListReorderAlerts(ctx context.Context) ([]domain.ReorderAlert, error) {
	return m.alerts, m.err
}

// Mock PriceRepository
type mockPriceRepo struct {
	mu       sync.Mutex
	prices   []domain.PriceData
	replaced int
	err      error

	// afterList runs once, after the next ListPrices has taken its snapshot.
	afterList func()
}

func (m *mockPriceRepo) ListPrices(ctx context.Context) ([]domain.PriceData, error) {
	m.mu.Lock()
	out := make([]domain.PriceData, len(m.prices))
	for i, p := range m.prices {
		out[i] = p.Clone()
	}
	hook := m.afterList
	m.afterList = nil
	m.mu.Unlock()

	if hook != nil {
		hook()
	}
	return out, nil
}

func (m *mockPriceRepo) ReplacePrices(ctx context.Context, prices []domain.PriceData) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.prices = prices
	m.replaced++
	return nil
}

// Mock NotificationRepository
type mockNotificationRepo struct {
	notifications []domain.Notification
}

func (m *mockNotificationRepo) ListNotifications(ctx context.Context) ([]domain.Notification, error) {
	return m.notifications, nil
}

// Mock HistorySource returning a constant quantity per day.
type mockHistory struct {
	perDay int
	calls  []time.Time
}

func (m *mockHistory) DailySales(ctx context.Context, item domain.ItemType, end time.Time, days int) ([]domain.SalesPoint, error) {
	m.calls = append(m.calls, end)
	points := make([]domain.SalesPoint, 0, days)
	for i := days - 1; i >= 0; i-- {
		points = append(points, domain.SalesPoint{Date: end.AddDate(0, 0, -i), Quantity: m.perDay})
	}
	return points, nil
}

// Mock CacheRepository
type mockCache struct {
	mu          sync.Mutex
	generation  int64
	entries     map[string][]byte
	hits        int
	invalidated int
	staleWrites int
}

func newMockCache() *mockCache {
	return &mockCache{entries: make(map[string][]byte)}
}

func (m *mockCache) Generation(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.generation, nil
}

func (m *mockCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.entries[key]
	if ok {
		m.hits++
	}
	return v, ok, nil
}

func (m *mockCache) Set(ctx context.Context, gen int64, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if gen != m.generation {
		m.staleWrites++
		return nil
	}
	m.entries[key] = value
	return nil
}

func (m *mockCache) Invalidate(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.generation++
	m.entries = make(map[string][]byte)
	m.invalidated++
	return nil
}

func catalog() []domain.PriceData {
	return []domain.PriceData{
		{Item: domain.ItemSquidMedium, MinPrice: 260, MaxPrice: 350},
		{Item: domain.ItemOctopus, MinPrice: 180, MaxPrice: 260},
		{Item: domain.ItemSmallSquid, MinPrice: 220, MaxPrice: 240},
	}
}

package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/heyheyboy777/SAD-project/internal/core/domain"
	"github.com/heyheyboy777/SAD-project/internal/port"
)

type HistoryService struct {
	source port.HistorySource
	now    func() time.Time
}

func NewHistoryService(source port.HistorySource, now func() time.Time) *HistoryService {
	if now == nil {
		now = time.Now
	}
	return &HistoryService{source: source, now: now}
}

// Sales returns daily quantities for the `days` days ending today.
func (s *HistoryService) Sales(ctx context.Context, item domain.ItemType, days int) (domain.SalesHistory, error) {
	if !item.Valid() {
		return domain.SalesHistory{}, domain.ErrUnknownItem
	}
	if !domain.ValidHistoryRange(days) {
		return domain.SalesHistory{}, domain.ErrInvalidRange
	}

	points, err := s.source.DailySales(ctx, item, domain.DateOf(s.now()), days)
	if err != nil {
		return domain.SalesHistory{}, fmt.Errorf("daily sales for %s: %w", item, err)
	}

	total, avg := summarize(points)
	return domain.SalesHistory{
		Item:    item,
		Days:    days,
		Points:  points,
		Total:   total,
		Average: avg,
	}, nil
}

func summarize(points []domain.SalesPoint) (total, average int) {
	if len(points) == 0 {
		return 0, 0
	}
	for _, p := range points {
		total += p.Quantity
	}
	return total, int(math.Round(float64(total) / float64(len(points))))
}

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/heyheyboy777/SAD-project/internal/core/domain"
)

func TestHistorySales(t *testing.T) {
	source := &mockHistory{perDay: 7}
	svc := NewHistoryService(source, fixedNow)

	h, err := svc.Sales(context.Background(), domain.ItemOctopus, 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(h.Points) != 30 || h.Total != 210 || h.Average != 7 {
		t.Errorf("unexpected history: %d points, total %d, avg %d", len(h.Points), h.Total, h.Average)
	}
	if !source.calls[0].Equal(day(0)) {
		t.Errorf("history must end today, got %v", source.calls[0])
	}
	if last := h.Points[len(h.Points)-1].Date; !last.Equal(day(0)) {
		t.Errorf("expected last point today, got %v", last)
	}
}

func TestHistorySales_Invalid(t *testing.T) {
	svc := NewHistoryService(&mockHistory{}, fixedNow)

	if _, err := svc.Sales(context.Background(), domain.ItemOctopus, 14); !errors.Is(err, domain.ErrInvalidRange) {
		t.Errorf("expected ErrInvalidRange, got %v", err)
	}
	if _, err := svc.Sales(context.Background(), "鮪魚", 7); !errors.Is(err, domain.ErrUnknownItem) {
		t.Errorf("expected ErrUnknownItem, got %v", err)
	}
}

func TestSummarize(t *testing.T) {
	points := []domain.SalesPoint{{Quantity: 1}, {Quantity: 2}}
	total, avg := summarize(points)
	if total != 3 || avg != 2 {
		t.Errorf("expected 3/2, got %d/%d", total, avg)
	}
	if total, avg := summarize(nil); total != 0 || avg != 0 {
		t.Errorf("expected zeros, got %d/%d", total, avg)
	}
}

package storage

import (
	"context"
	"testing"
	"time"

	"github.com/heyheyboy777/SAD-project/internal/core/domain"
)

func TestSeededHistory_Deterministic(t *testing.T) {
	ctx := context.Background()
	a, _ := NewSeededHistory(42).DailySales(ctx, domain.ItemOctopus, testDay, 30)
	b, _ := NewSeededHistory(42).DailySales(ctx, domain.ItemOctopus, testDay, 30)

	if len(a) != 30 {
		t.Fatalf("expected 30 points, got %d", len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("point %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestSeededHistory_Window(t *testing.T) {
	end := testDay.Add(15 * time.Hour)
	points, _ := NewSeededHistory(1).DailySales(context.Background(), domain.ItemSmallSquid, end, 7)

	if !points[0].Date.Equal(testDay.AddDate(0, 0, -6)) {
		t.Errorf("expected first point six days back, got %v", points[0].Date)
	}
	if !points[6].Date.Equal(testDay) {
		t.Errorf("expected last point on end day, got %v", points[6].Date)
	}
}

func TestSeededHistory_OverlappingWindowsAgree(t *testing.T) {
	h := NewSeededHistory(7)
	ctx := context.Background()

	week, _ := h.DailySales(ctx, domain.ItemBigSquid, testDay, 7)
	month, _ := h.DailySales(ctx, domain.ItemBigSquid, testDay, 30)
	for i := range week {
		if week[i] != month[len(month)-7+i] {
			t.Errorf("day %v: %d vs %d", week[i].Date, week[i].Quantity, month[len(month)-7+i].Quantity)
		}
	}
}

func TestSeededHistory_Bounds(t *testing.T) {
	h := NewSeededHistory(3)
	for _, it := range domain.AllItems() {
		points, _ := h.DailySales(context.Background(), it, testDay, 90)
		for _, p := range points {
			base := baseVolume(it)
			hi := base + fluctuation/2 + weekendBoost
			if p.Quantity < minDailySales || p.Quantity > hi {
				t.Errorf("%s %v: quantity %d outside [%d, %d]", it, p.Date, p.Quantity, minDailySales, hi)
			}
		}
	}
}

func TestBaseVolume(t *testing.T) {
	cases := map[domain.ItemType]int{
		domain.ItemBigSquid:          20,
		domain.ItemOctopus:           25,
		domain.ItemCuttlefishBallMax: 40,
		domain.ItemSoftCuttlefish:    30,
	}
	for it, want := range cases {
		if got := baseVolume(it); got != want {
			t.Errorf("%s: expected %d, got %d", it, want, got)
		}
	}
}

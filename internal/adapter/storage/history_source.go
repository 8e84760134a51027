package storage

import (
	"context"
	"hash/fnv"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/heyheyboy777/SAD-project/internal/core/domain"
)

const (
	defaultDailyBase = 30
	weekendBoost     = 15
	minDailySales    = 5
	fluctuation      = 20
)

// SeededHistory produces plausible daily sales from a fixed seed. The same
// seed, item and date always give the same quantity.
type SeededHistory struct {
	seed uint64
}

func NewSeededHistory(seed uint64) *SeededHistory {
	return &SeededHistory{seed: seed}
}

func (h *SeededHistory) DailySales(ctx context.Context, item domain.ItemType, end time.Time, days int) ([]domain.SalesPoint, error) {
	end = domain.DateOf(end)
	points := make([]domain.SalesPoint, 0, days)
	for i := days - 1; i >= 0; i-- {
		d := end.AddDate(0, 0, -i)
		points = append(points, domain.SalesPoint{Date: d, Quantity: h.quantity(item, d)})
	}
	return points, nil
}

func (h *SeededHistory) quantity(item domain.ItemType, d time.Time) int {
	f := fnv.New64a()
	f.Write([]byte(item))
	f.Write([]byte(d.Format(time.DateOnly)))
	r := rand.New(rand.NewPCG(h.seed, f.Sum64()))

	q := baseVolume(item) + r.IntN(fluctuation) - fluctuation/2
	if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
		q += weekendBoost
	}
	return max(minDailySales, q)
}

func baseVolume(item domain.ItemType) int {
	switch {
	case item == domain.ItemBigSquid:
		return 20
	case item == domain.ItemOctopus:
		return 25
	case strings.Contains(string(item), "丸"):
		return 40
	}
	return defaultDailyBase
}

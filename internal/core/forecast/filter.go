// Package forecast holds the pure demand calculations behind the purchase
// forecast. Nothing here mutates its inputs.
package forecast

import (
	"math"
	"time"

	"github.com/heyheyboy777/SAD-project/internal/core/domain"
)

const day = 24 * time.Hour

// DaysUntil returns ceil((date - anchor) / 1 day).
func DaysUntil(anchor, date time.Time) int {
	d := date.Sub(anchor)
	return int(math.Ceil(float64(d) / float64(day)))
}

// FilterOrdersByHorizon keeps the orders delivered between the anchor day and
// anchor+horizon inclusive, in input order.
func FilterOrdersByHorizon(orders []domain.Order, anchor time.Time, horizon domain.Horizon) []domain.Order {
	out := make([]domain.Order, 0, len(orders))
	for _, o := range orders {
		if horizon.Includes(DaysUntil(anchor, o.DeliveryDate)) {
			out = append(out, o)
		}
	}
	return out
}

package forecast

import (
	"time"

	"github.com/heyheyboy777/SAD-project/internal/core/domain"
)

// Constants tunes the walk-in estimate.
type Constants struct {
	DailyWalkInBase   float64
	HolidayMultiplier float64
	// UnboundedDays replaces an unbounded horizon when scaling walk-in volume.
	UnboundedDays int
	Weights       Weights
}

func DefaultConstants() Constants {
	return Constants{
		DailyWalkInBase:   30,
		HolidayMultiplier: 1.5,
		UnboundedDays:     14,
		Weights:           DefaultWeights(),
	}
}

// Predict runs the whole calculator: booked orders plus cycle customers plus
// walk-in traffic, each restricted to the horizon.
func Predict(orders []domain.Order, alerts []domain.ReorderAlert, anchor time.Time, horizon domain.Horizon, c Constants) domain.Prediction {
	actual := AggregateQuantities(FilterOrdersByHorizon(orders, anchor, horizon), nil)
	cycle := PredictCycleDemand(alerts, horizon)
	walkIn := EstimateWalkIn(c.DailyWalkInBase, horizon.Finite(c.UnboundedDays), c.HolidayMultiplier, c.Weights)

	return domain.Prediction{
		Anchor:  anchor,
		Horizon: horizon,
		Actual:  actual,
		Cycle:   cycle,
		WalkIn:  walkIn,
		Total:   Combine(actual, cycle, walkIn),
	}
}

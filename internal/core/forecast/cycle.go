package forecast

import "github.com/heyheyboy777/SAD-project/internal/core/domain"

// PredictCycleDemand adds the usual order of every cycle customer due within
// the horizon. It is a plain cutoff: an alert either contributes its whole
// usual order or nothing.
func PredictCycleDemand(alerts []domain.ReorderAlert, horizon domain.Horizon) domain.Quantities {
	q := domain.NewQuantities()
	for _, a := range alerts {
		if !horizon.Includes(a.DaysRemaining) {
			continue
		}
		for _, it := range a.UsualOrderItems {
			q.Add(it.Item, it.Quantity)
		}
	}
	return q
}

package forecast

import (
	"errors"
	"math"

	"github.com/heyheyboy777/SAD-project/internal/core/domain"
)

var ErrInvalidWeights = errors.New("walk-in weights must be positive and sum to 1")

const weightTolerance = 1e-9

// maxWalkInTotal bounds the estimate well inside the range where float64
// still represents every integer exactly.
const maxWalkInTotal = 1 << 40

// Weights splits the walk-in total over a subset of the catalog.
type Weights map[domain.ItemType]float64

// DefaultWeights spreads walk-in volume over the four best sellers.
func DefaultWeights() Weights {
	return Weights{
		domain.ItemSmallSquid:     0.3,
		domain.ItemSquidMedium:    0.3,
		domain.ItemOctopus:        0.2,
		domain.ItemSoftCuttlefish: 0.2,
	}
}

func (w Weights) Validate() error {
	if len(w) == 0 {
		return ErrInvalidWeights
	}
	sum := 0.0
	for it, v := range w {
		if !it.Valid() || v <= 0 {
			return ErrInvalidWeights
		}
		sum += v
	}
	if math.Abs(sum-1) > weightTolerance {
		return ErrInvalidWeights
	}
	return nil
}

// WalkInTotal is floor(dailyBase * days * holidayMultiplier), clamped to
// [0, maxWalkInTotal]. A NaN product counts as zero.
func WalkInTotal(dailyBase float64, days int, holidayMultiplier float64) int {
	v := math.Floor(dailyBase * float64(days) * holidayMultiplier)
	switch {
	case math.IsNaN(v) || v <= 0:
		return 0
	case v >= maxWalkInTotal:
		return maxWalkInTotal
	}
	return int(v)
}

// EstimateWalkIn distributes the walk-in total by weight. Shares are
// truncated, so their sum may fall a few catties short of the total.
func EstimateWalkIn(dailyBase float64, days int, holidayMultiplier float64, weights Weights) domain.Quantities {
	q := domain.NewQuantities()
	if days <= 0 {
		return q
	}
	total := WalkInTotal(dailyBase, days, holidayMultiplier)
	for it, w := range weights {
		if !it.Valid() || !(w > 0 && w <= 1) {
			continue
		}
		q[it] = int(math.Floor(float64(total) * w))
	}
	return q
}

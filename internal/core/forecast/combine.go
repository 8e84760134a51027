package forecast

import "github.com/heyheyboy777/SAD-project/internal/core/domain"

// Combine sums its inputs item by item. Missing keys count as zero.
func Combine(parts ...domain.Quantities) domain.Quantities {
	q := domain.NewQuantities()
	for _, p := range parts {
		for it, v := range p {
			q[it] += v
		}
	}
	return q
}

package forecast

import "github.com/heyheyboy777/SAD-project/internal/core/domain"

// OrderPredicate selects which orders count toward an aggregate.
type OrderPredicate func(domain.Order) bool

// ExcludeCompleted skips orders that have already been delivered.
func ExcludeCompleted(o domain.Order) bool {
	return o.Status != domain.OrderStatusCompleted
}

// AggregateQuantities sums item quantities over orders accepted by pred.
// A nil pred accepts every order. The result always carries all catalog items.
func AggregateQuantities(orders []domain.Order, pred OrderPredicate) domain.Quantities {
	q := domain.NewQuantities()
	for _, o := range orders {
		if pred != nil && !pred(o) {
			continue
		}
		for _, it := range o.Items {
			q.Add(it.Item, it.Quantity)
		}
	}
	return q
}

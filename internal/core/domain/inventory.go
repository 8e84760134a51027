package domain

// Quantities maps every catalog item to an amount in catties.
type Quantities map[ItemType]int

// QuantityLine is one row of a Quantities rendered in catalog order.
type QuantityLine struct {
	Item     ItemType `json:"item"`
	Quantity int      `json:"quantity"`
}

// NewQuantities returns a map with all eight items present at zero.
func NewQuantities() Quantities {
	q := make(Quantities, len(allItems))
	for _, it := range allItems {
		q[it] = 0
	}
	return q
}

func (q Quantities) Add(item ItemType, quantity int) {
	q[item] += quantity
}

func (q Quantities) Get(item ItemType) int {
	return q[item]
}

func (q Quantities) Sum() int {
	total := 0
	for _, v := range q {
		total += v
	}
	return total
}

// Clone copies q and fills any missing catalog keys with zero.
func (q Quantities) Clone() Quantities {
	out := NewQuantities()
	for k, v := range q {
		out[k] = v
	}
	return out
}

func (q Quantities) Lines() []QuantityLine {
	lines := make([]QuantityLine, 0, len(allItems))
	for _, it := range allItems {
		lines = append(lines, QuantityLine{Item: it, Quantity: q[it]})
	}
	return lines
}

// Equal reports whether both maps hold the same amount for every catalog item.
func (q Quantities) Equal(other Quantities) bool {
	for _, it := range allItems {
		if q[it] != other[it] {
			return false
		}
	}
	return true
}

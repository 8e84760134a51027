package domain

import (
	"errors"
	"fmt"
)

var ErrPriceRangeInvalid = errors.New("price range invalid")

type PricePoint struct {
	Label string `json:"label"`
	Price int    `json:"price"`
}

// PriceData is the NT$ per catty range quoted for one item.
type PriceData struct {
	Item     ItemType     `json:"item"`
	MinPrice int          `json:"min_price"`
	MaxPrice int          `json:"max_price"`
	History  []PricePoint `json:"history"`
}

func (p PriceData) Validate() error {
	if !p.Item.Valid() {
		return fmt.Errorf("%q: %w", p.Item, ErrUnknownItem)
	}
	if p.MinPrice < 0 || p.MaxPrice < 0 {
		return fmt.Errorf("%s: negative price: %w", p.Item, ErrPriceRangeInvalid)
	}
	if p.MinPrice > p.MaxPrice {
		return fmt.Errorf("%s: min %d > max %d: %w", p.Item, p.MinPrice, p.MaxPrice, ErrPriceRangeInvalid)
	}
	return nil
}

// Midpoint is the quote used to value forecast demand.
func (p PriceData) Midpoint() int {
	return (p.MinPrice + p.MaxPrice) / 2
}

func (p PriceData) Clone() PriceData {
	h := make([]PricePoint, len(p.History))
	copy(h, p.History)
	p.History = h
	return p
}

// PriceEdit is a requested change to one item's range.
type PriceEdit struct {
	Item     ItemType `json:"item"`
	MinPrice int      `json:"min_price"`
	MaxPrice int      `json:"max_price"`
}

package domain

import (
	"errors"
	"time"
)

var ErrInvalidRange = errors.New("invalid history range")

// PredictionRow is one item's contribution breakdown.
type PredictionRow struct {
	Item   ItemType `json:"item"`
	Actual int      `json:"actual"`
	Cycle  int      `json:"cycle"`
	WalkIn int      `json:"walk_in"`
	Total  int      `json:"total"`
}

// Prediction is the purchase forecast for one anchor date and horizon.
type Prediction struct {
	Anchor  time.Time  `json:"anchor"`
	Horizon Horizon    `json:"horizon"`
	Actual  Quantities `json:"actual"`
	Cycle   Quantities `json:"cycle"`
	WalkIn  Quantities `json:"walk_in"`
	Total   Quantities `json:"total"`
}

// Rows returns every catalog item in display order.
func (p Prediction) Rows() []PredictionRow {
	rows := make([]PredictionRow, 0, len(allItems))
	for _, it := range allItems {
		rows = append(rows, PredictionRow{
			Item:   it,
			Actual: p.Actual[it],
			Cycle:  p.Cycle[it],
			WalkIn: p.WalkIn[it],
			Total:  p.Total[it],
		})
	}
	return rows
}

// NonZero drops rows whose total is zero.
func (p Prediction) NonZero() []PredictionRow {
	rows := p.Rows()
	out := rows[:0]
	for _, r := range rows {
		if r.Total != 0 {
			out = append(out, r)
		}
	}
	return out
}

type DemandRow struct {
	Item         ItemType `json:"item"`
	Current      int      `json:"current"`
	PastAverage  int      `json:"past_average"`
	UnitPrice    int      `json:"unit_price"`
	EstimatedSum int      `json:"estimated_sum"`
}

// DemandReport compares booked demand with recent daily sales.
type DemandReport struct {
	Anchor           time.Time   `json:"anchor"`
	Horizon          Horizon     `json:"horizon"`
	Rows             []DemandRow `json:"rows"`
	TotalQuantity    int         `json:"total_quantity"`
	EstimatedRevenue int         `json:"estimated_revenue"`
}

type SalesPoint struct {
	Date     time.Time `json:"date"`
	Quantity int       `json:"quantity"`
}

type SalesHistory struct {
	Item    ItemType     `json:"item"`
	Days    int          `json:"days"`
	Points  []SalesPoint `json:"points"`
	Total   int          `json:"total"`
	Average int          `json:"average"`
}

// HistoryRanges are the day spans the history view offers.
var HistoryRanges = []int{7, 30, 90}

func ValidHistoryRange(days int) bool {
	for _, d := range HistoryRanges {
		if d == days {
			return true
		}
	}
	return false
}

package handler

import (
	"context"
	"log/slog"
	"time"

	"github.com/heyheyboy777/SAD-project/internal/core/domain"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type PredictionResponse struct {
	Anchor  string                 `json:"anchor"`
	Horizon string                 `json:"horizon"`
	Rows    []domain.PredictionRow `json:"rows"`
}

func newPredictionResponse(p domain.Prediction) PredictionResponse {
	return PredictionResponse{
		Anchor:  p.Anchor.Format(time.DateOnly),
		Horizon: p.Horizon.String(),
		Rows:    p.Rows(),
	}
}

type DemandResponse struct {
	Anchor           string             `json:"anchor"`
	Horizon          string             `json:"horizon"`
	Rows             []domain.DemandRow `json:"rows"`
	TotalQuantity    int                `json:"total_quantity"`
	EstimatedRevenue int                `json:"estimated_revenue"`
}

type OrderResponse struct {
	ID             string             `json:"id"`
	CustomerName   string             `json:"customer_name"`
	Items          []domain.OrderItem `json:"items"`
	Status         domain.OrderStatus `json:"status"`
	DeliveryDate   string             `json:"delivery_date"`
	IsNewCustomer  bool               `json:"is_new_customer"`
	Address        string             `json:"address"`
	SubmissionTime string             `json:"submission_time"`
}

func newOrderResponse(o domain.Order) OrderResponse {
	return OrderResponse{
		ID:             o.ID,
		CustomerName:   o.CustomerName,
		Items:          o.Items,
		Status:         o.Status,
		DeliveryDate:   o.DeliveryDate.Format(time.DateOnly),
		IsNewCustomer:  o.IsNewCustomer,
		Address:        o.Address,
		SubmissionTime: o.SubmissionTime,
	}
}

func newOrderResponses(orders []domain.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, newOrderResponse(o))
	}
	return out
}

type OrderSummaryResponse struct {
	Anchor                  string          `json:"anchor"`
	Horizon                 string          `json:"horizon"`
	Orders                  []OrderResponse `json:"orders"`
	PendingCount            int             `json:"pending_count"`
	PendingNewCustomerCount int             `json:"pending_new_customer_count"`
}

type ConfirmResponse struct {
	OrderID   string `json:"order_id"`
	Confirmed bool   `json:"confirmed"`
}

type ConfirmAllResponse struct {
	Confirmed int `json:"confirmed"`
}

type SavePricesRequest struct {
	Prices []domain.PriceEdit `json:"prices"`
}

type SalesPointResponse struct {
	Date     string `json:"date"`
	Quantity int    `json:"quantity"`
}

type SalesHistoryResponse struct {
	Item    domain.ItemType      `json:"item"`
	Days    int                  `json:"days"`
	Points  []SalesPointResponse `json:"points"`
	Total   int                  `json:"total"`
	Average int                  `json:"average"`
}

func newSalesHistoryResponse(h domain.SalesHistory) SalesHistoryResponse {
	points := make([]SalesPointResponse, 0, len(h.Points))
	for _, p := range h.Points {
		points = append(points, SalesPointResponse{Date: p.Date.Format(time.DateOnly), Quantity: p.Quantity})
	}
	return SalesHistoryResponse{
		Item:    h.Item,
		Days:    h.Days,
		Points:  points,
		Total:   h.Total,
		Average: h.Average,
	}
}

func withLogger(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

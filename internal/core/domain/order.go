package domain

import (
	"errors"
	"time"
)

var ErrOrderNotFound = errors.New("order not found")

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusApproved  OrderStatus = "approved"
	OrderStatusCompleted OrderStatus = "completed"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusApproved, OrderStatusCompleted:
		return true
	}
	return false
}

type OrderItem struct {
	Item     ItemType `json:"item"`
	Quantity int      `json:"quantity"` // catties
}

type Order struct {
	ID             string
	CustomerName   string
	Items          []OrderItem
	Status         OrderStatus
	DeliveryDate   time.Time // midnight UTC of the delivery day
	IsNewCustomer  bool
	Address        string
	SubmissionTime string
}

// Clone returns a copy that shares no slices with o.
func (o Order) Clone() Order {
	items := make([]OrderItem, len(o.Items))
	copy(items, o.Items)
	o.Items = items
	return o
}

// OrderSummary is the order-management view of one horizon.
type OrderSummary struct {
	Horizon                 Horizon
	Anchor                  time.Time
	Orders                  []Order
	PendingCount            int
	PendingNewCustomerCount int
}

// OrderEvent records a status transition.
type OrderEvent struct {
	ID           string      `json:"id"`
	OrderID      string      `json:"order_id"`
	CustomerName string      `json:"customer_name"`
	From         OrderStatus `json:"from"`
	To           OrderStatus `json:"to"`
	At           time.Time   `json:"at"`
}

package model

import (
	"fmt"
	"time"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderPaid      OrderStatus = "paid"
	OrderShipped   OrderStatus = "shipped"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

// OrderStatuses lists the statuses accepted by the order endpoints.
var OrderStatuses = []OrderStatus{OrderPending, OrderPaid, OrderShipped, OrderDelivered, OrderCancelled}

type Order struct {
	ID             int64       `json:"id"`
	OrderNumber    string      `json:"order_number"`
	CustomerID     int64       `json:"customer_id"`
	CustomerName   string      `json:"customer_name"`
	TotalAmount    float64     `json:"total_amount"`
	ShippingFee    float64     `json:"shipping_fee"`
	DiscountAmount float64     `json:"discount_amount"`
	Status         OrderStatus `json:"status"`
	PlacedAt       *time.Time  `json:"placed_at,omitempty"`
	Items          []OrderItem `json:"items"`

	// Derived, never sent upstream.
	ItemCount int64   `json:"item_count"`
	Subtotal  float64 `json:"subtotal"`
}

type OrderItem struct {
	ID          int64   `json:"id"`
	ProductID   int64   `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int64   `json:"quantity"`
	Price       float64 `json:"price"`

	// Derived.
	TotalPrice float64 `json:"total_price"`
}

func (o Order) EntityID() int64     { return o.ID }
func (o Order) DisplayName() string { return o.CustomerName }
func (o Order) GroupKey() string    { return string(o.Status) }
func (o Order) SortTime() time.Time { return timeOrZero(o.PlacedAt) }

func (o Order) SearchCodes() []string {
	return []string{o.OrderNumber}
}

func (o Order) SortMetric(key SortKey) float64 {
	switch key {
	case SortByPrice:
		return o.TotalAmount
	case SortByStock:
		return float64(o.ItemCount)
	}
	return 0
}

// OrderNumberFor is the placeholder order number of an order without one.
func OrderNumberFor(id int64) string {
	return fmt.Sprintf("ORD-%d", id)
}

package normalize

import (
	"strings"

	"encore.app/backoffice/model"
)

var orderStatusAliases = map[string]model.OrderStatus{
	"pending":    model.OrderPending,
	"new":        model.OrderPending,
	"processing": model.OrderPending,
	"paid":       model.OrderPaid,
	"confirmed":  model.OrderPaid,
	"shipped":    model.OrderShipped,
	"shipping":   model.OrderShipped,
	"delivered":  model.OrderDelivered,
	"completed":  model.OrderDelivered,
	"cancelled":  model.OrderCancelled,
	"canceled":   model.OrderCancelled,
}

// OrderStatus maps an upstream status string to a known status, defaulting to pending.
func OrderStatus(s string) model.OrderStatus {
	if status, ok := orderStatusAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return status
	}
	return model.OrderPending
}

func (n *Normalizer) Orders(raw any) []model.Order {
	return collect(raw, n.Order)
}

func (n *Normalizer) Order(raw any) (model.Order, bool) {
	rec, ok := asRecord(raw)
	if !ok {
		return model.Order{}, false
	}

	o := model.Order{
		ID:             rec.count("id", "orderId"),
		OrderNumber:    rec.text("orderNumber", "order_number", "code"),
		CustomerID:     rec.count("customerId", "userId", "customer.id", "user.id"),
		CustomerName:   rec.text("customerName", "customer.fullName", "customer.name", "user.fullName", "user.username", "fullName"),
		ShippingFee:    rec.amount("shippingFee", "shipping_fee"),
		DiscountAmount: rec.amount("discountAmount", "discount"),
		Status:         OrderStatus(rec.text("status", "orderStatus")),
		PlacedAt:       rec.timestamp("orderDate", "placedAt", "createdAt", "created_at"),
		Items:          []model.OrderItem{},
	}

	for _, rawItem := range rec.list("items", "orderItems", "orderDetails") {
		item, ok := orderItem(rawItem)
		if !ok {
			continue
		}
		o.Items = append(o.Items, item)
		o.ItemCount = addCount(o.ItemCount, item.Quantity)
		o.Subtotal += item.TotalPrice
	}
	o.Subtotal = round2(o.Subtotal)

	if o.OrderNumber == "" {
		if o.ID > 0 {
			o.OrderNumber = model.OrderNumberFor(o.ID)
		} else {
			o.OrderNumber = model.PlaceholderCode("ORD")
		}
	}
	if _, ok := rec.first("totalAmount", "total_amount", "total", "totalPrice"); ok {
		o.TotalAmount = rec.amount("totalAmount", "total_amount", "total", "totalPrice")
	} else {
		o.TotalAmount = round2(nonNegative(o.Subtotal + o.ShippingFee - o.DiscountAmount))
	}
	return o, true
}

func orderItem(raw any) (model.OrderItem, bool) {
	rec, ok := asRecord(raw)
	if !ok {
		return model.OrderItem{}, false
	}
	item := model.OrderItem{
		ID:          rec.count("id"),
		ProductID:   rec.count("productId", "product.id"),
		ProductName: rec.text("productName", "product.name", "name"),
		Quantity:    rec.count("quantity"),
		Price:       rec.amount("price", "unitPrice", "product.price"),
	}
	item.TotalPrice = round2(item.Price * float64(item.Quantity))
	return item, true
}

// OrderToRaw renders an order in the shape the upstream API returns it,
// without derived fields.
func OrderToRaw(o model.Order) map[string]any {
	items := make([]any, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, map[string]any{
			"id":          it.ID,
			"productId":   it.ProductID,
			"productName": it.ProductName,
			"quantity":    it.Quantity,
			"price":       it.Price,
		})
	}
	raw := map[string]any{
		"id":             o.ID,
		"orderNumber":    o.OrderNumber,
		"customerId":     o.CustomerID,
		"customerName":   o.CustomerName,
		"totalAmount":    o.TotalAmount,
		"shippingFee":    o.ShippingFee,
		"discountAmount": o.DiscountAmount,
		"status":         string(o.Status),
		"items":          items,
	}
	if o.PlacedAt != nil {
		raw["orderDate"] = formatTime(*o.PlacedAt)
	}
	return raw
}

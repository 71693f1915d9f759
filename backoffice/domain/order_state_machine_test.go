package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"encore.app/backoffice/apperr"
	"encore.app/backoffice/model"
)

func TestOrderStateMachine_CanTransition(t *testing.T) {
	testCases := []struct {
		name     string
		from     model.OrderStatus
		to       model.OrderStatus
		expected bool
	}{
		{name: "pending_to_paid", from: model.OrderPending, to: model.OrderPaid, expected: true},
		{name: "pending_to_cancelled", from: model.OrderPending, to: model.OrderCancelled, expected: true},
		{name: "pending_to_shipped", from: model.OrderPending, to: model.OrderShipped},
		{name: "paid_to_shipped", from: model.OrderPaid, to: model.OrderShipped, expected: true},
		{name: "shipped_to_delivered", from: model.OrderShipped, to: model.OrderDelivered, expected: true},
		{name: "shipped_to_cancelled", from: model.OrderShipped, to: model.OrderCancelled},
		{name: "delivered_is_final", from: model.OrderDelivered, to: model.OrderPending},
		{name: "cancelled_is_final", from: model.OrderCancelled, to: model.OrderPaid},
		{name: "same_status", from: model.OrderShipped, to: model.OrderShipped, expected: true},
	}

	sm := NewOrderStateMachine()
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, sm.CanTransition(tc.from, tc.to))
		})
	}
}

func TestOrderStateMachine_CheckUpdate(t *testing.T) {
	sm := NewOrderStateMachine()
	order := model.Order{ID: 5, OrderNumber: "ORD-5", Status: model.OrderDelivered}

	err := sm.CheckUpdate(order, model.OrderDraft{Status: model.OrderCancelled})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	assert.Contains(t, err.Error(), "order ORD-5 is delivered and can no longer change status")

	order.Status = model.OrderPending
	err = sm.CheckUpdate(order, model.OrderDraft{Status: model.OrderDelivered})
	assert.Contains(t, err.Error(), "cannot move from pending to delivered, allowed: paid, cancelled")

	assert.NoError(t, sm.CheckUpdate(order, model.OrderDraft{Status: model.OrderPaid}))
	assert.Equal(t, []model.OrderStatus{model.OrderPaid, model.OrderCancelled}, sm.Allowed(model.OrderPending))
	assert.Empty(t, sm.Allowed(model.OrderCancelled))
}

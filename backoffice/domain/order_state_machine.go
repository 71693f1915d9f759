// Package domain holds the rules an edit must satisfy before it is sent upstream.
package domain

import (
	"fmt"
	"slices"
	"strings"

	"encore.app/backoffice/apperr"
	"encore.app/backoffice/model"
)

// OrderStateMachine lists the statuses an order may move to from each status.
// Delivered and cancelled orders are final.
type OrderStateMachine struct {
	next map[model.OrderStatus][]model.OrderStatus
}

func NewOrderStateMachine() *OrderStateMachine {
	return &OrderStateMachine{
		next: map[model.OrderStatus][]model.OrderStatus{
			model.OrderPending: {model.OrderPaid, model.OrderCancelled},
			model.OrderPaid:    {model.OrderShipped, model.OrderCancelled},
			model.OrderShipped: {model.OrderDelivered},
		},
	}
}

// Allowed returns the statuses reachable from current in one step.
func (sm *OrderStateMachine) Allowed(current model.OrderStatus) []model.OrderStatus {
	return slices.Clone(sm.next[current])
}

// CanTransition reports whether an order in from may be set to to. Setting
// the current status again is always accepted.
func (sm *OrderStateMachine) CanTransition(from, to model.OrderStatus) bool {
	return from == to || slices.Contains(sm.next[from], to)
}

// CheckUpdate validates a status change of order.
func (sm *OrderStateMachine) CheckUpdate(order model.Order, draft model.OrderDraft) error {
	if sm.CanTransition(order.Status, draft.Status) {
		return nil
	}
	allowed := sm.Allowed(order.Status)
	if len(allowed) == 0 {
		return apperr.Invalid("status", "transition",
			fmt.Sprintf("order %s is %s and can no longer change status", order.OrderNumber, order.Status))
	}
	names := make([]string, len(allowed))
	for i, s := range allowed {
		names[i] = string(s)
	}
	return apperr.Invalid("status", "transition",
		fmt.Sprintf("order %s cannot move from %s to %s, allowed: %s",
			order.OrderNumber, order.Status, draft.Status, strings.Join(names, ", ")))
}

package backoffice

import (
	"context"
	"encoding/json"

	"encore.dev/beta/errs"
	"encore.dev/rlog"
)

type UpdateItemRequest struct {
	IdempotencyKey string `header:"X-Idempotency-Key" json:"-"`

	Item json.RawMessage `json:"item"`
}

// UpdateItem changes an item. The list shows the change only once the upstream
// has confirmed it.
//
//encore:api public path=/v1/views/:resource/items/:id method=PUT tag:idempotency
func (s *Service) UpdateItem(ctx context.Context, resource string, id int64, req *UpdateItemRequest) (*ItemResponse, error) {
	if id <= 0 {
		return nil, &errs.Error{Code: errs.InvalidArgument, Message: "invalid item ID"}
	}
	l, err := s.listing(resource)
	if err != nil {
		return nil, err
	}

	change, err := l.Update(ctx, id, req.Item)
	if err != nil {
		rlog.Error("failed to update item", "error", err, "resource", resource, "id", id)
		return nil, apiError(err)
	}
	return &ItemResponse{Item: change.Item, View: change.View}, nil
}

func (r *UpdateItemRequest) Validate() error {
	if len(r.Item) == 0 {
		return &errs.Error{Code: errs.InvalidArgument, Message: "item is required"}
	}
	return nil
}

package backoffice

import (
	"context"
	"encoding/json"

	"encore.dev/beta/errs"
	"encore.dev/rlog"

	"encore.app/backoffice/model"
)

type CreateItemRequest struct {
	IdempotencyKey string `header:"X-Idempotency-Key" json:"-"`

	// Item is the form of the resource, e.g. a product or customer draft.
	Item json.RawMessage `json:"item"`
}

type ItemResponse struct {
	// Item is empty when the upstream accepted the write without returning the record.
	Item json.RawMessage `json:"item,omitempty"`
	View model.ViewPage  `json:"view"`
}

//encore:api public path=/v1/views/:resource/items method=POST tag:idempotency
func (s *Service) CreateItem(ctx context.Context, resource string, req *CreateItemRequest) (*ItemResponse, error) {
	l, err := s.listing(resource)
	if err != nil {
		return nil, err
	}

	change, err := l.Create(ctx, req.Item)
	if err != nil {
		rlog.Error("failed to create item", "error", err, "resource", resource)
		return nil, apiError(err)
	}
	return &ItemResponse{Item: change.Item, View: change.View}, nil
}

func (r *CreateItemRequest) Validate() error {
	if len(r.Item) == 0 {
		return &errs.Error{Code: errs.InvalidArgument, Message: "item is required"}
	}
	return nil
}

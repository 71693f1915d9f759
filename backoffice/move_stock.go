package backoffice

import (
	"context"
	"encoding/json"

	"encore.dev/beta/errs"
	"encore.dev/rlog"

	"encore.app/backoffice/model"
)

type MoveStockRequest struct {
	IdempotencyKey string `header:"X-Idempotency-Key" json:"-"`

	// Movement is {"type": "import"|"export", "product_id": ..., "quantity": ...}.
	Movement json.RawMessage `json:"movement"`
}

// MoveStock imports stock into or exports stock out of a product's inventory.
//
//encore:api public path=/v1/inventory/stock method=POST tag:idempotency
func (s *Service) MoveStock(ctx context.Context, req *MoveStockRequest) (*ItemResponse, error) {
	l, err := s.listing(string(model.ResourceInventory))
	if err != nil {
		return nil, err
	}

	change, err := l.MoveStock(ctx, req.Movement)
	if err != nil {
		rlog.Error("failed to move stock", "error", err)
		return nil, apiError(err)
	}
	return &ItemResponse{Item: change.Item, View: change.View}, nil
}

func (r *MoveStockRequest) Validate() error {
	if len(r.Movement) == 0 {
		return &errs.Error{Code: errs.InvalidArgument, Message: "movement is required"}
	}
	return nil
}

package backoffice

import (
	"context"

	"encore.dev/beta/errs"
	"encore.dev/rlog"
)

// RemoveItem deletes an item. The item leaves the list immediately and is put
// back if the upstream refuses the delete.
//
//encore:api public path=/v1/views/:resource/items/:id method=DELETE
func (s *Service) RemoveItem(ctx context.Context, resource string, id int64) (*ViewResponse, error) {
	if id <= 0 {
		return nil, &errs.Error{Code: errs.InvalidArgument, Message: "invalid item ID"}
	}
	l, err := s.listing(resource)
	if err != nil {
		return nil, err
	}

	page, err := l.Remove(ctx, id)
	if err != nil {
		rlog.Error("failed to remove item", "error", err, "resource", resource, "id", id)
		return nil, apiError(err)
	}
	return &ViewResponse{View: *page}, nil
}

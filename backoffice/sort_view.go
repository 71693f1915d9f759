package backoffice

import (
	"context"

	"encore.dev/beta/errs"
	"encore.dev/rlog"

	"encore.app/backoffice/model"
)

type SortViewRequest struct {
	Key string `json:"key" validate:"required"`
}

// SortView sorts by key; sorting by the current key again reverses the order.
//
//encore:api public path=/v1/views/:resource/sort method=POST
func (s *Service) SortView(ctx context.Context, resource string, req *SortViewRequest) (*ViewResponse, error) {
	l, err := s.listing(resource)
	if err != nil {
		return nil, err
	}

	page, err := l.Sort(model.SortKey(req.Key))
	if err != nil {
		rlog.Error("failed to sort view", "error", err, "resource", resource, "key", req.Key)
		return nil, apiError(err)
	}
	return &ViewResponse{View: *page}, nil
}

func (r *SortViewRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return &errs.Error{Code: errs.InvalidArgument, Message: err.Error()}
	}
	if _, err := model.ParseSortKey(r.Key); err != nil {
		return &errs.Error{Code: errs.InvalidArgument, Message: err.Error()}
	}
	return nil
}

package backoffice

import (
	"context"

	"encore.dev/beta/errs"
	"encore.dev/rlog"
)

type FilterViewRequest struct {
	// Category is the product category, or the order status on the orders screen.
	// Empty clears the filter.
	Category string `json:"category" validate:"max=100"`
}

//encore:api public path=/v1/views/:resource/filter method=POST
func (s *Service) FilterView(ctx context.Context, resource string, req *FilterViewRequest) (*ViewResponse, error) {
	l, err := s.listing(resource)
	if err != nil {
		return nil, err
	}

	page, err := l.Filter(req.Category)
	if err != nil {
		rlog.Error("failed to filter view", "error", err, "resource", resource, "category", req.Category)
		return nil, apiError(err)
	}
	return &ViewResponse{View: *page}, nil
}

func (r *FilterViewRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return &errs.Error{Code: errs.InvalidArgument, Message: err.Error()}
	}
	return nil
}

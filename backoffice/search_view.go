package backoffice

import (
	"context"

	"encore.dev/beta/errs"
	"encore.dev/rlog"
)

type SearchViewRequest struct {
	Term string `json:"term" validate:"max=200"`
	// Immediate applies the term without waiting for the debounce delay.
	Immediate bool `json:"immediate"`
}

// SearchView filters by name or code. Unless immediate is set the returned page
// still shows the previous results with pending_search set.
//
//encore:api public path=/v1/views/:resource/search method=POST
func (s *Service) SearchView(ctx context.Context, resource string, req *SearchViewRequest) (*ViewResponse, error) {
	l, err := s.listing(resource)
	if err != nil {
		return nil, err
	}

	page, err := l.Search(req.Term, req.Immediate)
	if err != nil {
		rlog.Error("failed to search view", "error", err, "resource", resource)
		return nil, apiError(err)
	}
	return &ViewResponse{View: *page}, nil
}

func (r *SearchViewRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return &errs.Error{Code: errs.InvalidArgument, Message: err.Error()}
	}
	return nil
}

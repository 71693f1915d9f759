package backoffice

import (
	"context"

	"encore.dev/rlog"
)

type GoToPageRequest struct {
	Page int `json:"page"`
}

// GoToPage moves to a page. Pages outside the current range leave the view unchanged.
//
//encore:api public path=/v1/views/:resource/page method=POST
func (s *Service) GoToPage(ctx context.Context, resource string, req *GoToPageRequest) (*ViewResponse, error) {
	l, err := s.listing(resource)
	if err != nil {
		return nil, err
	}

	page, err := l.GoToPage(req.Page)
	if err != nil {
		rlog.Error("failed to change page", "error", err, "resource", resource, "page", req.Page)
		return nil, apiError(err)
	}
	return &ViewResponse{View: *page}, nil
}

package backoffice

import (
	"context"

	"encore.dev/rlog"
)

type ReloadViewRequest struct {
	// Force skips the cached response.
	Force bool `json:"force"`
}

//encore:api public path=/v1/views/:resource/reload method=POST
func (s *Service) ReloadView(ctx context.Context, resource string, req *ReloadViewRequest) (*ViewResponse, error) {
	l, err := s.listing(resource)
	if err != nil {
		return nil, err
	}

	page, err := l.Reload(ctx, req.Force)
	if err != nil {
		rlog.Error("failed to reload view", "error", err, "resource", resource, "force", req.Force)
		return nil, apiError(err)
	}
	return &ViewResponse{View: *page}, nil
}

package backoffice

import (
	"context"

	"encore.dev/rlog"

	"encore.app/backoffice/model"
)

type ViewResponse struct {
	View model.ViewPage `json:"view"`
}

// GetView returns the current page of a list screen without contacting the upstream API.
//
//encore:api public path=/v1/views/:resource method=GET
func (s *Service) GetView(ctx context.Context, resource string) (*ViewResponse, error) {
	l, err := s.listing(resource)
	if err != nil {
		return nil, err
	}

	page, err := l.View()
	if err != nil {
		rlog.Error("failed to render view", "error", err, "resource", resource)
		return nil, apiError(err)
	}
	return &ViewResponse{View: *page}, nil
}

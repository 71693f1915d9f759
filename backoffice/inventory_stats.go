package backoffice

import (
	"context"

	"encore.dev/rlog"

	"encore.app/backoffice/model"
)

type InventoryStatsResponse struct {
	Stats model.InventoryStats `json:"stats"`
}

// InventoryStats summarizes the stock records currently loaded on the inventory screen.
//
//encore:api public path=/v1/inventory/stats method=GET
func (s *Service) InventoryStats(ctx context.Context) (*InventoryStatsResponse, error) {
	l, err := s.listing(string(model.ResourceInventory))
	if err != nil {
		return nil, err
	}

	stats, err := l.InventoryStats()
	if err != nil {
		rlog.Error("failed to summarize inventory", "error", err)
		return nil, apiError(err)
	}
	return &InventoryStatsResponse{Stats: *stats}, nil
}

package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"encore.app/backoffice/apperr"
	"encore.app/backoffice/model"
)

func TestCheckStockMovement(t *testing.T) {
	records := []model.InventoryRecord{
		{ID: 1, ProductID: 7, VariantID: 1, CurrentStock: 3},
		{ID: 2, ProductID: 7, VariantID: 2, CurrentStock: 2},
		{ID: 3, ProductID: 8, CurrentStock: 0},
	}

	testCases := []struct {
		name        string
		draft       model.StockMovementDraft
		expectError string
	}{
		{
			name:  "import_is_never_limited",
			draft: model.StockMovementDraft{Type: model.MovementImport, ProductID: 8, Quantity: 1000},
		},
		{
			name:  "export_within_all_variants",
			draft: model.StockMovementDraft{Type: model.MovementExport, ProductID: 7, Quantity: 5},
		},
		{
			name:        "export_more_than_stock",
			draft:       model.StockMovementDraft{Type: model.MovementExport, ProductID: 7, Quantity: 6},
			expectError: "cannot export 6 units, only 5 in stock",
		},
		{
			name:        "export_from_empty_stock",
			draft:       model.StockMovementDraft{Type: model.MovementExport, ProductID: 8, Quantity: 1},
			expectError: "only 0 in stock",
		},
		{
			name:  "unknown_product",
			draft: model.StockMovementDraft{Type: model.MovementExport, ProductID: 99, Quantity: 1},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := CheckStockMovement(records, tc.draft)
			if tc.expectError == "" {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
			assert.Contains(t, err.Error(), tc.expectError)
		})
	}
}

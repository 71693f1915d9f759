package domain

import (
	"fmt"

	"encore.app/backoffice/apperr"
	"encore.app/backoffice/model"
)

// CheckStockMovement rejects an export of more units than the loaded inventory
// holds for the product. Products that are not loaded are left to the upstream.
func CheckStockMovement(records []model.InventoryRecord, draft model.StockMovementDraft) error {
	if draft.Type != model.MovementExport {
		return nil
	}

	var (
		inStock int64
		found   bool
	)
	for _, r := range records {
		if r.ProductID != draft.ProductID {
			continue
		}
		found = true
		inStock += r.CurrentStock
	}
	if !found || draft.Quantity <= inStock {
		return nil
	}
	return apperr.Invalid("quantity", "lte",
		fmt.Sprintf("cannot export %d units, only %d in stock", draft.Quantity, inStock))
}

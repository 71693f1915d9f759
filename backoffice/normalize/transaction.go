package normalize

import (
	"fmt"
	"strings"

	"encore.app/backoffice/model"
)

func (n *Normalizer) Transactions(raw any) []model.InventoryTransaction {
	return collect(raw, n.Transaction)
}

// Transaction normalizes one stock movement. A negative quantity without a
// type is read as an export of its absolute value.
func (n *Normalizer) Transaction(raw any) (model.InventoryTransaction, bool) {
	rec, ok := asRecord(raw)
	if !ok {
		return model.InventoryTransaction{}, false
	}

	t := model.InventoryTransaction{
		ID:          rec.count("id", "transactionId"),
		ProductID:   rec.count("productId", "product_id", "product.id"),
		ProductName: rec.text("productName", "product.name", "product.productName"),
		ProductCode: rec.text("productCode", "product.productCode", "product.product_code", "product.code"),
		Note:        rec.text("note", "reason", "description"),
		OccurredAt:  rec.timestamp("transactionDate", "createdAt", "date"),
	}

	v, _ := rec.first("quantity", "amount")
	qty := toNumber(v)
	t.Type = movementType(rec.text("transactionType", "type"), qty)
	if qty < 0 {
		qty = -qty
	}
	t.Quantity = toCount(qty)

	if t.ProductCode == "" && t.ProductID > 0 {
		t.ProductCode = fmt.Sprintf("PRD-%d", t.ProductID)
	}
	return t, true
}

func movementType(s string, qty float64) model.MovementType {
	switch strings.ToLower(s) {
	case "import", "in", "inbound", "nhap":
		return model.MovementImport
	case "export", "out", "outbound", "xuat":
		return model.MovementExport
	}
	if qty < 0 {
		return model.MovementExport
	}
	return model.MovementImport
}

// TransactionToRaw renders a transaction in the shape the upstream API returns it.
func TransactionToRaw(t model.InventoryTransaction) map[string]any {
	raw := map[string]any{
		"id":              t.ID,
		"productId":       t.ProductID,
		"productName":     t.ProductName,
		"productCode":     t.ProductCode,
		"transactionType": string(t.Type),
		"quantity":        t.Quantity,
		"note":            t.Note,
	}
	if t.OccurredAt != nil {
		raw["transactionDate"] = formatTime(*t.OccurredAt)
	}
	return raw
}

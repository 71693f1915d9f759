package normalize

import (
	"fmt"
	"math"
	"time"

	"encore.app/backoffice/model"
)

func (n *Normalizer) InventoryRecords(raw any) []model.InventoryRecord {
	return collect(raw, n.Inventory)
}

// Inventory normalizes one stock row. Product fields may be flattened on the row or
// nested under "product".
func (n *Normalizer) Inventory(raw any) (model.InventoryRecord, bool) {
	rec, ok := asRecord(raw)
	if !ok {
		return model.InventoryRecord{}, false
	}

	r := model.InventoryRecord{
		ID:           rec.count("id", "inventoryId"),
		ProductID:    rec.count("productId", "product_id", "product.id"),
		VariantID:    rec.count("variantId", "variant_id", "variant.id"),
		ProductName:  rec.text("productName", "product.productName", "product.name", "name"),
		ProductCode:  rec.text("productCode", "product.productCode", "product_code", "product.code"),
		ProductImage: rec.text("productImage", "product.imageUrl", "imageUrl"),
		Description:  rec.text("description", "product.description"),
		Category:     rec.text("category", "product.category", "category.name"),
		CurrentStock: rec.count("quantity", "currentStock", "stock", "product.stock"),
		MinStock:     model.DefaultMinStock,
		MaxStock:     model.DefaultMaxStock,
		LastUpdated:  rec.timestamp("lastUpdated", "lastImportDate", "updatedAt"),
	}

	if _, ok := rec.first("minStock", "min_stock"); ok {
		r.MinStock = rec.count("minStock", "min_stock")
	}
	if _, ok := rec.first("maxStock", "max_stock"); ok {
		r.MaxStock = rec.count("maxStock", "max_stock")
	}
	if price, ok := rec.positiveAmount("unitPrice", "price", "product.salePrice", "product.price"); ok {
		r.UnitPrice = price
	}

	if r.ProductCode == "" {
		switch {
		case r.ProductID > 0:
			r.ProductCode = fmt.Sprintf("PRD-%d", r.ProductID)
		case r.ID > 0:
			r.ProductCode = fmt.Sprintf("PRD-%d", r.ID)
		default:
			r.ProductCode = model.PlaceholderCode("PRD")
		}
	}
	if r.Category == "" {
		r.Category = model.CategoryFromName(r.ProductName)
	}
	if active, ok := rec.flag("active", "status"); ok {
		r.Active = active
	} else {
		r.Active = r.CurrentStock > 0
	}

	if r.LastUpdated != nil {
		r.DaysInStock = daysSince(n.now(), *r.LastUpdated)
	} else {
		r.DaysInStock = rec.count("daysInStock")
	}
	r.Status = model.StockStatusFor(r.CurrentStock, r.MinStock, r.MaxStock)
	r.TotalValue = round2(r.UnitPrice * float64(r.CurrentStock))
	return r, true
}

func daysSince(now, t time.Time) int64 {
	days := math.Floor(now.Sub(t).Hours() / 24)
	if days < 0 {
		return 0
	}
	return int64(days)
}

// InventoryToRaw renders a record in the shape the upstream API returns it,
// without derived fields.
func InventoryToRaw(r model.InventoryRecord) map[string]any {
	raw := map[string]any{
		"id":           r.ID,
		"productId":    r.ProductID,
		"variantId":    r.VariantID,
		"productName":  r.ProductName,
		"productCode":  r.ProductCode,
		"productImage": r.ProductImage,
		"description":  r.Description,
		"category":     r.Category,
		"quantity":     r.CurrentStock,
		"minStock":     r.MinStock,
		"maxStock":     r.MaxStock,
		"unitPrice":    r.UnitPrice,
		"active":       r.Active,
	}
	if r.LastUpdated != nil {
		raw["lastUpdated"] = formatTime(*r.LastUpdated)
	} else {
		raw["daysInStock"] = r.DaysInStock
	}
	return raw
}

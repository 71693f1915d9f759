package normalize

import (
	"fmt"
	"math"

	"encore.app/backoffice/model"
)

func (n *Normalizer) Products(raw any) []model.Product {
	return collect(raw, n.Product)
}

// Product normalizes one product record. The effective price prefers the sale price,
// then the list price, then the original price.
func (n *Normalizer) Product(raw any) (model.Product, bool) {
	rec, ok := asRecord(raw)
	if !ok {
		return model.Product{}, false
	}

	p := model.Product{
		ID:            rec.count("id", "productId", "product_id"),
		Name:          rec.text("name", "productName", "product_name", "title"),
		Description:   rec.text("description"),
		SalePrice:     rec.amount("salePrice", "sale_price"),
		OriginalPrice: rec.amount("originalPrice", "original_price"),
		ImageURL:      rec.text("imageUrl", "image_url", "image", "thumbnail"),
		Stock:         rec.count("stock", "quantity", "currentStock"),
		Category:      rec.text("category", "categoryName", "category.name"),
		ProductGroup:  rec.text("productGroup", "product_group"),
		CreatedAt:     rec.timestamp("createdAt", "created_at", "createdDate"),
	}

	price := rec.amount("price", "unitPrice")
	switch {
	case p.SalePrice > 0:
		p.Price = p.SalePrice
	case price > 0:
		p.Price = price
	default:
		p.Price = p.OriginalPrice
	}
	if p.OriginalPrice == 0 {
		p.OriginalPrice = p.Price
	}

	p.ProductCode = rec.text("productCode", "product_code", "code")
	if p.ProductCode == "" {
		if p.ID > 0 {
			p.ProductCode = fmt.Sprintf("PRD-%d", p.ID)
		} else {
			p.ProductCode = model.PlaceholderCode("PRD")
		}
	}
	if p.Category == "" {
		p.Category = model.CategoryFromName(p.Name)
	}
	if active, ok := rec.flag("active", "isActive", "status"); ok {
		p.Active = active
	} else {
		p.Active = p.Stock > 0
	}

	p.SKU = model.SKUFor(p.ID)
	p.Status = model.StockStatusFor(p.Stock, model.DefaultMinStock, model.DefaultMaxStock)
	p.DiscountPercentage = DiscountPercentage(p.OriginalPrice, p.Price)
	return p, true
}

// DiscountPercentage is the rounded discount of final against original, within [0, 100].
func DiscountPercentage(original, final float64) float64 {
	if original <= 0 || final >= original {
		return 0
	}
	pct := round2((original - final) / original * 100)
	return math.Min(100, math.Max(0, pct))
}

// ProductToRaw renders a product in the shape the upstream API returns it,
// without derived fields.
func ProductToRaw(p model.Product) map[string]any {
	raw := map[string]any{
		"id":            p.ID,
		"name":          p.Name,
		"description":   p.Description,
		"price":         p.Price,
		"originalPrice": p.OriginalPrice,
		"salePrice":     p.SalePrice,
		"imageUrl":      p.ImageURL,
		"stock":         p.Stock,
		"productCode":   p.ProductCode,
		"category":      p.Category,
		"productGroup":  p.ProductGroup,
		"active":        p.Active,
	}
	if p.CreatedAt != nil {
		raw["createdAt"] = formatTime(*p.CreatedAt)
	}
	return raw
}

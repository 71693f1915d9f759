package model

import (
	"fmt"
	"strings"
	"time"
)

// Product is a normalized catalog record.
type Product struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	Description   string     `json:"description"`
	Price         float64    `json:"price"`
	OriginalPrice float64    `json:"original_price"`
	SalePrice     float64    `json:"sale_price"`
	ImageURL      string     `json:"image_url"`
	Stock         int64      `json:"stock"`
	ProductCode   string     `json:"product_code"`
	Category      string     `json:"category"`
	ProductGroup  string     `json:"product_group"`
	Active        bool       `json:"active"`
	CreatedAt     *time.Time `json:"created_at,omitempty"`

	// Derived, never sent upstream.
	SKU                string      `json:"sku"`
	Status             StockStatus `json:"status"`
	DiscountPercentage float64     `json:"discount_percentage"`
}

func (p Product) EntityID() int64     { return p.ID }
func (p Product) DisplayName() string { return p.Name }
func (p Product) GroupKey() string    { return p.Category }
func (p Product) SortTime() time.Time { return timeOrZero(p.CreatedAt) }

func (p Product) SearchCodes() []string {
	return []string{p.SKU, p.ProductCode}
}

func (p Product) SortMetric(key SortKey) float64 {
	switch key {
	case SortByPrice:
		return p.Price
	case SortByStock:
		return float64(p.Stock)
	}
	return 0
}

// SKUFor formats the catalog SKU of a persisted product.
func SKUFor(id int64) string {
	if id <= 0 {
		return ""
	}
	return fmt.Sprintf("SKU-%03d", id)
}

const (
	CategoryElectronics = "electronics"
	CategoryClothing    = "clothing"
	CategoryBooks       = "books"
	CategoryHome        = "home"
)

// categoryKeywords is checked in order; the first category with a matching keyword wins.
var categoryKeywords = []struct {
	category string
	keywords []string
}{
	{CategoryElectronics, []string{"điện thoại", "iphone", "samsung", "máy tính", "laptop", "phone"}},
	{CategoryClothing, []string{"áo", "quần", "thời trang", "shirt", "jeans"}},
	{CategoryBooks, []string{"sách", "book"}},
	{CategoryHome, []string{"máy", "điều hòa", "giặt", "kitchen"}},
}

// CategoryFromName guesses the category of a product that arrived without one.
func CategoryFromName(name string) string {
	lower := strings.ToLower(name)
	for _, rule := range categoryKeywords {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.category
			}
		}
	}
	return CategoryElectronics
}

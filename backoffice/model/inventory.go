package model

import (
	"math"
	"time"
)

// InventoryRecord is one stock row of a product variant.
type InventoryRecord struct {
	ID           int64      `json:"id"`
	ProductID    int64      `json:"product_id"`
	VariantID    int64      `json:"variant_id"`
	ProductName  string     `json:"product_name"`
	ProductCode  string     `json:"product_code"`
	ProductImage string     `json:"product_image"`
	Description  string     `json:"description"`
	Category     string     `json:"category"`
	CurrentStock int64      `json:"current_stock"`
	MinStock     int64      `json:"min_stock"`
	MaxStock     int64      `json:"max_stock"`
	UnitPrice    float64    `json:"unit_price"`
	Active       bool       `json:"active"`
	LastUpdated  *time.Time `json:"last_updated,omitempty"`

	// Derived, never sent upstream.
	Status      StockStatus `json:"status"`
	TotalValue  float64     `json:"total_value"`
	DaysInStock int64       `json:"days_in_stock"`
}

func (r InventoryRecord) EntityID() int64       { return r.ID }
func (r InventoryRecord) DisplayName() string   { return r.ProductName }
func (r InventoryRecord) SearchCodes() []string { return []string{r.ProductCode} }
func (r InventoryRecord) GroupKey() string      { return r.Category }
func (r InventoryRecord) SortTime() time.Time   { return timeOrZero(r.LastUpdated) }

func (r InventoryRecord) SortMetric(key SortKey) float64 {
	switch key {
	case SortByPrice:
		return r.UnitPrice
	case SortByStock:
		return float64(r.CurrentStock)
	}
	return 0
}

// InventoryStats summarizes a set of inventory records.
type InventoryStats struct {
	Total        int     `json:"total"`
	InStock      int     `json:"in_stock"`
	LowStock     int     `json:"low_stock"`
	OutOfStock   int     `json:"out_of_stock"`
	Overstock    int     `json:"overstock"`
	TotalValue   float64 `json:"total_value"`
	AverageStock float64 `json:"average_stock"`
}

// SummarizeInventory counts records per stock status.
func SummarizeInventory(records []InventoryRecord) InventoryStats {
	var stats InventoryStats
	var units int64
	for _, r := range records {
		stats.Total++
		stats.TotalValue += r.TotalValue
		if r.CurrentStock > math.MaxInt64-units {
			units = math.MaxInt64
		} else {
			units += r.CurrentStock
		}
		switch r.Status {
		case StockInStock:
			stats.InStock++
		case StockLowStock:
			stats.LowStock++
		case StockOutOfStock:
			stats.OutOfStock++
		case StockOverstock:
			stats.Overstock++
		}
	}
	if math.IsInf(stats.TotalValue, 0) {
		stats.TotalValue = math.MaxFloat64
	}
	if stats.Total > 0 {
		stats.AverageStock = float64(units) / float64(stats.Total)
	}
	return stats
}

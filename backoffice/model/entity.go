package model

import (
	"fmt"
	"time"
)

// Resource names one remote collection managed by the back office.
type Resource string

const (
	ResourceProducts  Resource = "products"
	ResourceInventory Resource = "inventory"
	ResourceOrders    Resource = "orders"
	ResourceCustomers Resource = "customers"
	// ResourceTransactions is the read-only stock movement history.
	ResourceTransactions Resource = "transactions"
)

// Resources lists every resource in display order.
var Resources = []Resource{ResourceProducts, ResourceInventory, ResourceOrders, ResourceCustomers, ResourceTransactions}

// ParseResource validates a resource name coming from a request path.
func ParseResource(s string) (Resource, error) {
	for _, r := range Resources {
		if string(r) == s {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown resource %q", s)
}

type SortKey string

const (
	SortByName  SortKey = "name"
	SortByPrice SortKey = "price"
	SortByStock SortKey = "stock"
	SortByDate  SortKey = "date"
)

// ParseSortKey accepts the keys a list screen can sort by.
func ParseSortKey(s string) (SortKey, error) {
	switch k := SortKey(s); k {
	case SortByName, SortByPrice, SortByStock, SortByDate:
		return k, nil
	}
	return "", fmt.Errorf("unknown sort key %q", s)
}

type SortDirection string

const (
	SortAscending  SortDirection = "asc"
	SortDescending SortDirection = "desc"
)

// Entity is implemented by every normalized record held in a list view.
// Identifiers are unique within a view; 0 marks a record that was never persisted.
type Entity interface {
	EntityID() int64
	DisplayName() string
	// SearchCodes returns the SKU/code style values a search term may match.
	SearchCodes() []string
	// GroupKey is the value compared against the category filter.
	GroupKey() string
	SortMetric(key SortKey) float64
	SortTime() time.Time
}

type StockStatus string

const (
	StockInStock    StockStatus = "in-stock"
	StockLowStock   StockStatus = "low-stock"
	StockOutOfStock StockStatus = "out-of-stock"
	StockOverstock  StockStatus = "overstock"
)

const (
	// DefaultMinStock is the low-stock threshold used when the payload carries none.
	DefaultMinStock int64 = 5
	// DefaultMaxStock is the overstock threshold used when the payload carries none.
	DefaultMaxStock int64 = 1000
)

// StockStatusFor derives the stock status. A zero stock is always out-of-stock.
func StockStatusFor(stock, minStock, maxStock int64) StockStatus {
	switch {
	case stock <= 0:
		return StockOutOfStock
	case stock < minStock:
		return StockLowStock
	case maxStock > 0 && stock > maxStock:
		return StockOverstock
	default:
		return StockInStock
	}
}

func timeOrZero(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}

package model

import (
	"strconv"
	"time"
)

type MovementType string

const (
	MovementImport MovementType = "import"
	MovementExport MovementType = "export"
)

// InventoryTransaction is one stock import or export.
type InventoryTransaction struct {
	ID          int64        `json:"id"`
	ProductID   int64        `json:"product_id"`
	ProductName string       `json:"product_name"`
	ProductCode string       `json:"product_code"`
	Type        MovementType `json:"type"`
	Quantity    int64        `json:"quantity"`
	Note        string       `json:"note"`
	OccurredAt  *time.Time   `json:"occurred_at,omitempty"`
}

func (t InventoryTransaction) EntityID() int64 { return t.ID }

func (t InventoryTransaction) DisplayName() string {
	if t.ProductName != "" {
		return t.ProductName
	}
	return t.Note
}

func (t InventoryTransaction) SearchCodes() []string {
	return []string{t.ProductCode, "TX-" + strconv.FormatInt(t.ID, 10)}
}

// GroupKey lets the category filter select imports or exports.
func (t InventoryTransaction) GroupKey() string    { return string(t.Type) }
func (t InventoryTransaction) SortTime() time.Time { return timeOrZero(t.OccurredAt) }

func (t InventoryTransaction) SortMetric(key SortKey) float64 {
	if key == SortByStock {
		return float64(t.Quantity)
	}
	return 0
}

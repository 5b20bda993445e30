package models

// StockStatus is the derived restocking state of an inventory item.
type StockStatus string

const (
	StockInStock  StockStatus = "In Stock"
	StockLow      StockStatus = "Low"
	StockCritical StockStatus = "Critical"
)

// StockStatusFor classifies a stock level against its reorder level.
func StockStatusFor(stock, reorderLevel int) StockStatus {
	switch {
	case float64(stock) <= float64(reorderLevel)*0.5:
		return StockCritical
	case stock <= reorderLevel:
		return StockLow
	}
	return StockInStock
}

// InventoryItem model
type InventoryItem struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Category     string  `json:"category"`
	Unit         string  `json:"unit"`
	Stock        int     `json:"stock"`
	ReorderLevel int     `json:"reorder_level"`
	UnitPrice    float64 `json:"unit_price"`
}

// StockStatus derives the item's status from its current stock.
func (i InventoryItem) StockStatus() StockStatus {
	return StockStatusFor(i.Stock, i.ReorderLevel)
}

// InventoryView is an item as rendered with its derived status.
type InventoryView struct {
	InventoryItem
	Status StockStatus `json:"status"`
}

package domain

// Item is a named stock-keeping unit and its current count. Quantity is
// always >= 1 while the item is present; an item that reaches zero is
// removed from the inventory entirely.
type Item struct {
	Name     string
	Quantity int
}

// DefaultInventoryFile is the fallback path for load and save when the
// caller supplies none.
const DefaultInventoryFile = "inventory.json"

// DefaultLowStockThreshold is the cutoff used by low-stock listings when
// the caller supplies none. An item is low when its quantity is strictly
// below the threshold.
const DefaultLowStockThreshold = 5

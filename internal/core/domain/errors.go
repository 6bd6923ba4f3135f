package domain

import "errors"

var (
	// ErrInvalidItemName rejects empty item names.
	ErrInvalidItemName = errors.New("item name must be non-empty")

	// ErrInvalidQuantity rejects zero or negative quantities.
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")

	// ErrItemNotFound signals a removal against an item not in the inventory.
	ErrItemNotFound = errors.New("item not found in inventory")

	// ErrInsufficientStock signals a removal larger than the current count.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrCorruptInventory signals an inventory file that exists but does not
	// decode as an item-to-quantity JSON object. Callers are expected to
	// treat this as fatal rather than continue on unknown data.
	ErrCorruptInventory = errors.New("corrupt inventory file")
)

package port

import "context"

type InventoryRepository interface {
	// Load reads the item-to-quantity mapping from path, or from the
	// repository's default location when path is empty. A missing file is
	// reported via an error matching fs.ErrNotExist; a file that exists
	// but does not decode is reported via domain.ErrCorruptInventory.
	Load(ctx context.Context, path string) (map[string]int, error)

	// Save writes the mapping to path (or the default location when path
	// is empty), fully overwriting any existing content.
	Save(ctx context.Context, path string, items map[string]int) error

	// Resolve returns the path Load and Save would use for the given
	// argument.
	Resolve(path string) string
}

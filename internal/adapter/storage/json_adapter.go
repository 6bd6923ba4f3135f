package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/rl1809/stockpile/internal/core/domain"
)

// JSONFileAdapter persists the inventory mapping as a bare JSON object,
// item name to quantity, with no envelope or version field. The file is
// fully rewritten on every save.
type JSONFileAdapter struct {
	defaultPath string
}

func NewJSONFileAdapter(defaultPath string) *JSONFileAdapter {
	if defaultPath == "" {
		defaultPath = domain.DefaultInventoryFile
	}
	return &JSONFileAdapter{defaultPath: defaultPath}
}

func (a *JSONFileAdapter) Resolve(path string) string {
	if path == "" {
		return a.defaultPath
	}
	return path
}

func (a *JSONFileAdapter) Load(ctx context.Context, path string) (map[string]int, error) {
	path = a.Resolve(path)

	data, err := os.ReadFile(path)
	if err != nil {
		// Includes the missing-file case; callers discriminate with
		// errors.Is(err, fs.ErrNotExist).
		return nil, fmt.Errorf("read inventory file %s: %w", path, err)
	}

	items := make(map[string]int)
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrCorruptInventory, path, err)
	}

	for name, qty := range items {
		if name == "" || qty < 0 {
			return nil, fmt.Errorf("%w: %s: entry %q has quantity %d",
				domain.ErrCorruptInventory, path, name, qty)
		}
		// Zero-quantity entries are never written by Save; drop any found
		// in hand-edited files so the in-memory invariant holds.
		if qty == 0 {
			delete(items, name)
		}
	}

	return items, nil
}

func (a *JSONFileAdapter) Save(ctx context.Context, path string, items map[string]int) error {
	path = a.Resolve(path)

	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("encode inventory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write inventory file %s: %w", path, err)
	}

	return nil
}

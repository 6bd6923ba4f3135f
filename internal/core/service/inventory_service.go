package service

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/rl1809/stockpile/internal/core/domain"
	"github.com/rl1809/stockpile/internal/infrastructure/logger"
	"github.com/rl1809/stockpile/internal/port"
)

// adjustment is the validated shape of every mutation request.
type adjustment struct {
	Item string `validate:"required"`
	Qty  int    `validate:"gt=0"`
}

// InventoryService owns the in-memory item-to-quantity mapping and the
// session activity log. Persistence goes through the repository port.
//
// The service assumes a single owner: it is not safe for concurrent use,
// and two processes sharing one inventory file will overwrite each other.
type InventoryService struct {
	repo     port.InventoryRepository
	log      *logger.Logger
	validate *validator.Validate

	stock    map[string]int
	order    []string // insertion order of stock keys
	activity []domain.LogEntry
}

func NewInventoryService(repo port.InventoryRepository, log *logger.Logger) *InventoryService {
	return &InventoryService{
		repo:     repo,
		log:      log.WithComponent("inventory"),
		validate: validator.New(validator.WithRequiredStructEnabled()),
		stock:    make(map[string]int),
	}
}

// Add increases the count of item by qty, creating the item if absent.
func (s *InventoryService) Add(item string, qty int) error {
	if err := s.checkAdjustment(item, qty); err != nil {
		s.log.WithError(err).Errorw("add rejected", "item", item, "quantity", qty)
		return err
	}

	if _, ok := s.stock[item]; !ok {
		s.order = append(s.order, item)
	}
	s.stock[item] += qty

	s.record(fmt.Sprintf("Added %d of %s", qty, item))
	s.log.Infow("stock added", "item", item, "quantity", qty, "total", s.stock[item])
	return nil
}

// Remove decreases the count of item by qty and reports the remaining
// count. The item must exist and hold at least qty; an item drained to
// zero is deleted from the inventory entirely.
func (s *InventoryService) Remove(item string, qty int) (int, error) {
	if err := s.checkAdjustment(item, qty); err != nil {
		s.log.WithError(err).Errorw("remove rejected", "item", item, "quantity", qty)
		return 0, err
	}

	current, ok := s.stock[item]
	if !ok {
		err := fmt.Errorf("%w: %q", domain.ErrItemNotFound, item)
		s.log.WithError(err).Errorw("remove rejected", "item", item)
		return 0, err
	}
	if current < qty {
		err := fmt.Errorf("%w: %q has %d, need %d", domain.ErrInsufficientStock, item, current, qty)
		s.log.WithError(err).Errorw("remove rejected", "item", item, "quantity", qty)
		return current, err
	}

	remaining := current - qty
	if remaining == 0 {
		delete(s.stock, item)
		s.dropFromOrder(item)
	} else {
		s.stock[item] = remaining
	}

	s.record(fmt.Sprintf("Removed %d of %s", qty, item))
	s.log.Infow("stock removed", "item", item, "quantity", qty, "remaining", remaining)
	if remaining == 0 {
		s.log.Infow("item out of stock, removed from inventory", "item", item)
	}
	return remaining, nil
}

// Quantity returns the current count of item, or 0 if it is absent.
func (s *InventoryService) Quantity(item string) int {
	return s.stock[item]
}

// LowStock lists the names of items whose quantity is strictly below
// threshold. An item sitting exactly at the threshold is not low.
func (s *InventoryService) LowStock(threshold int) []string {
	var low []string
	for _, name := range s.order {
		if s.stock[name] < threshold {
			low = append(low, name)
		}
	}
	return low
}

// List returns the current items in iteration order.
func (s *InventoryService) List() []domain.Item {
	items := make([]domain.Item, 0, len(s.order))
	for _, name := range s.order {
		items = append(items, domain.Item{Name: name, Quantity: s.stock[name]})
	}
	return items
}

// Report renders a human-readable listing of every item and its count.
func (s *InventoryService) Report() string {
	var b strings.Builder
	b.WriteString("--- Items Report ---\n")
	if len(s.order) == 0 {
		b.WriteString("Inventory is empty.\n")
	} else {
		for _, item := range s.List() {
			fmt.Fprintf(&b, "%s -> %d\n", item.Name, item.Quantity)
		}
	}
	b.WriteString("--------------------")
	return b.String()
}

// Items returns a copy of the current item-to-quantity mapping.
func (s *InventoryService) Items() map[string]int {
	items := make(map[string]int, len(s.stock))
	for name, qty := range s.stock {
		items[name] = qty
	}
	return items
}

// Activity returns a copy of the session's mutation log. The log is
// process-lifetime only; it is never persisted.
func (s *InventoryService) Activity() []domain.LogEntry {
	entries := make([]domain.LogEntry, len(s.activity))
	copy(entries, s.activity)
	return entries
}

// Load replaces the in-memory inventory with the contents of path (or
// the repository default when path is empty). A missing file is a fresh
// start: the inventory becomes empty and Load returns nil. A file that
// exists but cannot be read or decoded is returned as an error; callers
// decide whether that terminates the process.
func (s *InventoryService) Load(ctx context.Context, path string) error {
	resolved := s.repo.Resolve(path)

	items, err := s.repo.Load(ctx, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.log.Warnw("inventory file not found, starting empty", "path", resolved)
			s.replace(make(map[string]int))
			return nil
		}
		s.log.WithError(err).Errorw("inventory load failed", "path", resolved)
		return err
	}

	s.replace(items)
	s.log.Infow("inventory loaded", "path", resolved, "items", len(items))
	return nil
}

// Save writes the current inventory to path (or the repository default
// when path is empty), overwriting any existing file. Failures leave the
// in-memory state untouched.
func (s *InventoryService) Save(ctx context.Context, path string) error {
	resolved := s.repo.Resolve(path)

	if err := s.repo.Save(ctx, path, s.stock); err != nil {
		s.log.WithError(err).Errorw("inventory save failed", "path", resolved)
		return err
	}

	s.log.Infow("inventory saved", "path", resolved, "items", len(s.stock))
	return nil
}

func (s *InventoryService) checkAdjustment(item string, qty int) error {
	err := s.validate.Struct(adjustment{Item: item, Qty: qty})
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			switch fe.Field() {
			case "Item":
				return fmt.Errorf("%w: got %q", domain.ErrInvalidItemName, item)
			case "Qty":
				return fmt.Errorf("%w: got %d", domain.ErrInvalidQuantity, qty)
			}
		}
	}
	return err
}

func (s *InventoryService) record(message string) {
	s.activity = append(s.activity, domain.LogEntry{
		ID:      uuid.New().String(),
		At:      time.Now(),
		Message: message,
	})
}

func (s *InventoryService) dropFromOrder(item string) {
	for i, name := range s.order {
		if name == item {
			s.order = append(s.order[:i], s.order[i+1:]...)
			return
		}
	}
}

// replace installs items as the new inventory. Iteration order after a
// load is sorted by name; Go maps have no insertion order to recover.
func (s *InventoryService) replace(items map[string]int) {
	s.stock = items
	s.order = make([]string, 0, len(items))
	for name := range items {
		s.order = append(s.order, name)
	}
	sort.Strings(s.order)
}

// internal/services/cart_service.go
package services

import (
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/javajoker/florist-backend/internal/models"
	"github.com/javajoker/florist-backend/internal/storage"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrInvalidQuantity  = errors.New("quantity must be at least 1")
	ErrOutOfStock       = errors.New("product is out of stock")
)

// ProductLookup resolves a catalog product by id.
type ProductLookup func(id int) (models.Product, bool)

// CartStore owns the cart and selection slots of one session. Every cart
// mutation persists the whole document and then notifies subscribers once.
type CartStore struct {
	mu    sync.Mutex
	store storage.Storage
	log   *logrus.Entry

	items    []models.CartEntry
	hydrated bool

	selected         []int
	selectedHydrated bool

	lookup ProductLookup

	observers map[int]func()
	nextID    int
}

func NewCartStore(store storage.Storage, log *logrus.Entry) *CartStore {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &CartStore{
		store:     store,
		log:       log.WithField("component", "cart"),
		observers: make(map[int]func()),
	}
}

// UseCatalog makes the store drop lines whose product the catalog no longer
// knows, on load and through PruneMissingProducts.
func (s *CartStore) UseCatalog(lookup ProductLookup) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lookup = lookup
}

// Subscribe registers fn to run after every cart mutation. The returned
// function removes it again.
func (s *CartStore) Subscribe(fn func()) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.observers[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.observers, id)
			s.mu.Unlock()
		})
	}
}

func (s *CartStore) GetCart() []models.CartEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hydrate()
	return append([]models.CartEntry{}, s.items...)
}

// AddToCart merges quantity into an existing line or appends a new one.
// Lines never exceed MaxQuantityPerItem; larger requests are clamped.
func (s *CartStore) AddToCart(product models.Product, quantity int) (models.CartEntry, error) {
	if quantity < 1 {
		return models.CartEntry{}, ErrInvalidQuantity
	}
	if !product.InStock() {
		return models.CartEntry{}, ErrOutOfStock
	}

	var entry models.CartEntry
	s.mutate(func() bool {
		for i := range s.items {
			if s.items[i].ProductID == product.ID {
				s.items[i].Quantity = s.clamp(product.ID, s.items[i].Quantity+quantity)
				entry = s.items[i]
				return true
			}
		}
		entry = models.NewCartEntry(product, s.clamp(product.ID, quantity))
		s.items = append(s.items, entry)
		return true
	})
	return entry, nil
}

// UpdateQuantity sets the quantity of a line. Anything below 1 removes the
// line.
func (s *CartStore) UpdateQuantity(productID, quantity int) error {
	if quantity < 1 {
		if !s.RemoveFromCart(productID) {
			return ErrCartItemNotFound
		}
		return nil
	}

	found := false
	s.mutate(func() bool {
		for i := range s.items {
			if s.items[i].ProductID == productID {
				s.items[i].Quantity = s.clamp(productID, quantity)
				found = true
				return true
			}
		}
		return false
	})
	if !found {
		return ErrCartItemNotFound
	}
	return nil
}

// RemoveFromCart reports whether a line was removed. Removing an absent
// product is a no-op.
func (s *CartStore) RemoveFromCart(productID int) bool {
	return s.RemoveMultipleFromCart([]int{productID}) > 0
}

// RemoveMultipleFromCart removes every listed product in one persist and
// notify cycle and returns the number of removed lines.
func (s *CartStore) RemoveMultipleFromCart(productIDs []int) int {
	drop := make(map[int]bool, len(productIDs))
	for _, id := range productIDs {
		drop[id] = true
	}

	removed := 0
	s.mutate(func() bool {
		kept := s.items[:0:0]
		for _, item := range s.items {
			if drop[item.ProductID] {
				removed++
				continue
			}
			kept = append(kept, item)
		}
		s.items = kept
		return removed > 0
	})
	return removed
}

// PruneMissingProducts removes lines whose product left the catalog and
// returns how many were removed. Without a catalog it does nothing.
func (s *CartStore) PruneMissingProducts() int {
	pruned := 0
	s.mutate(func() bool {
		pruned = s.dropDangling()
		return pruned > 0
	})
	return pruned
}

func (s *CartStore) ClearCart() {
	s.mutate(func() bool {
		s.items = []models.CartEntry{}
		return true
	})
}

// GetCartTotal sums the snapshot prices captured when each line was added.
func (s *CartStore) GetCartTotal() int64 {
	var total int64
	for _, item := range s.GetCart() {
		total += item.LineTotal()
	}
	return total
}

// GetCartCount is the number of units in the cart.
func (s *CartStore) GetCartCount() int {
	count := 0
	for _, item := range s.GetCart() {
		count += item.Quantity
	}
	return count
}

// SetSelectedItemIDs replaces the selection. Ids that are not in the cart are
// dropped.
func (s *CartStore) SetSelectedItemIDs(productIDs []int) []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hydrate()
	s.hydrateSelection()

	inCart := make(map[int]bool, len(s.items))
	for _, item := range s.items {
		inCart[item.ProductID] = true
	}

	selected := []int{}
	seen := make(map[int]bool, len(productIDs))
	for _, id := range productIDs {
		if inCart[id] && !seen[id] {
			seen[id] = true
			selected = append(selected, id)
		}
	}
	s.selected = selected

	if err := storage.SaveJSON(s.store, storage.KeySelectedItems, s.selected); err != nil {
		s.log.WithError(err).Warn("Failed to persist checkout selection")
	}
	return append([]int{}, s.selected...)
}

func (s *CartStore) GetSelectedItemIDs() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hydrateSelection()
	return append([]int{}, s.selected...)
}

// GetSelectedCartItems returns the cart lines whose product is selected, in
// cart order. Selected ids no longer in the cart are skipped.
func (s *CartStore) GetSelectedCartItems() []models.CartEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hydrate()
	s.hydrateSelection()

	selected := make(map[int]bool, len(s.selected))
	for _, id := range s.selected {
		selected[id] = true
	}

	items := []models.CartEntry{}
	for _, item := range s.items {
		if selected[item.ProductID] {
			items = append(items, item)
		}
	}
	return items
}

func (s *CartStore) ClearSelectedItems() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = []int{}
	s.selectedHydrated = true

	if err := s.store.Remove(storage.KeySelectedItems); err != nil && !errors.Is(err, storage.ErrNotFound) {
		s.log.WithError(err).Warn("Failed to clear checkout selection")
	}
}

// mutate applies fn under the lock. When fn reports a change the cart is
// persisted and the observers are called after the lock is released.
func (s *CartStore) mutate(fn func() bool) {
	s.mu.Lock()
	s.hydrate()
	if !fn() {
		s.mu.Unlock()
		return
	}

	if err := storage.SaveJSON(s.store, storage.KeyCart, s.items); err != nil {
		s.log.WithError(err).Warn("Failed to persist cart")
	}

	observers := make([]func(), 0, len(s.observers))
	for _, observer := range s.observers {
		observers = append(observers, observer)
	}
	s.mu.Unlock()

	for _, notify := range observers {
		notify()
	}
}

func (s *CartStore) clamp(productID, quantity int) int {
	if quantity > models.MaxQuantityPerItem {
		s.log.WithFields(logrus.Fields{
			"product_id": productID,
			"requested":  quantity,
		}).Debug("Clamping cart quantity")
		return models.MaxQuantityPerItem
	}
	return quantity
}

// hydrate loads the cart once. Missing or unreadable data yields an empty
// cart. Must be called with s.mu held.
func (s *CartStore) hydrate() {
	if s.hydrated {
		return
	}
	s.hydrated = true
	s.items = []models.CartEntry{}

	var stored []models.CartEntry
	if err := storage.LoadJSON(s.store, storage.KeyCart, &stored); err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.log.WithError(err).Warn("Discarding unreadable cart")
		}
		return
	}

	index := make(map[int]int, len(stored))
	for _, item := range stored {
		if item.Quantity < 1 {
			continue
		}
		if i, ok := index[item.ProductID]; ok {
			s.items[i].Quantity = s.clamp(item.ProductID, s.items[i].Quantity+item.Quantity)
			continue
		}
		item.Quantity = s.clamp(item.ProductID, item.Quantity)
		index[item.ProductID] = len(s.items)
		s.items = append(s.items, item)
	}

	if s.dropDangling() > 0 {
		if err := storage.SaveJSON(s.store, storage.KeyCart, s.items); err != nil {
			s.log.WithError(err).Warn("Failed to persist pruned cart")
		}
	}
}

// dropDangling removes lines the catalog cannot resolve. Must be called
// with s.mu held.
func (s *CartStore) dropDangling() int {
	if s.lookup == nil {
		return 0
	}

	kept := s.items[:0:0]
	for _, item := range s.items {
		if _, ok := s.lookup(item.ProductID); !ok {
			s.log.WithField("product_id", item.ProductID).Info("Dropping cart line for unknown product")
			continue
		}
		kept = append(kept, item)
	}
	dropped := len(s.items) - len(kept)
	s.items = kept
	return dropped
}

func (s *CartStore) hydrateSelection() {
	if s.selectedHydrated {
		return
	}
	s.selectedHydrated = true
	s.selected = []int{}

	var stored []int
	if err := storage.LoadJSON(s.store, storage.KeySelectedItems, &stored); err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.log.WithError(err).Warn("Discarding unreadable checkout selection")
		}
		return
	}
	s.selected = stored
}

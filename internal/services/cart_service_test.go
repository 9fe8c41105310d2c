package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/javajoker/florist-backend/internal/models"
	"github.com/javajoker/florist-backend/internal/storage"
)

// flakyStore fails writes to the listed keys.
type flakyStore struct {
	storage.Storage
	failSet map[string]bool
}

func newFlakyStore(keys ...string) *flakyStore {
	s := &flakyStore{Storage: storage.NewMemoryStore(), failSet: make(map[string]bool)}
	for _, k := range keys {
		s.failSet[k] = true
	}
	return s
}

func (s *flakyStore) Set(key string, value []byte) error {
	if s.failSet[key] {
		return errors.New("quota exceeded")
	}
	return s.Storage.Set(key, value)
}

func product(id int, price int64) models.Product {
	return models.Product{
		ID:         id,
		Name:       "Product",
		Price:      price,
		Category:   models.CategoryBouquet,
		FlowerType: models.FlowerTypeRose,
		Colors:     []string{"red"},
		Stock:      5,
		Image:      "/images/products/1.jpg",
	}
}

type CartStoreTestSuite struct {
	suite.Suite
	store storage.Storage
	cart  *CartStore
}

func (suite *CartStoreTestSuite) SetupTest() {
	suite.store = storage.NewMemoryStore()
	suite.cart = NewCartStore(suite.store, nil)
}

func (suite *CartStoreTestSuite) TestAddMergesQuantity() {
	p := product(1, 185000)

	_, err := suite.cart.AddToCart(p, 2)
	suite.Require().NoError(err)
	entry, err := suite.cart.AddToCart(p, 3)
	suite.Require().NoError(err)

	cart := suite.cart.GetCart()
	suite.Len(cart, 1)
	suite.Equal(5, cart[0].Quantity)
	suite.Equal(5, entry.Quantity)
	suite.Equal(int64(925000), suite.cart.GetCartTotal())
}

func (suite *CartStoreTestSuite) TestAddKeepsInsertionOrder() {
	for _, id := range []int{3, 1, 2} {
		_, err := suite.cart.AddToCart(product(id, 1000), 1)
		suite.Require().NoError(err)
	}
	_, err := suite.cart.AddToCart(product(3, 1000), 1)
	suite.Require().NoError(err)

	var ids []int
	for _, item := range suite.cart.GetCart() {
		ids = append(ids, item.ProductID)
	}
	suite.Equal([]int{3, 1, 2}, ids)
	suite.Equal(4, suite.cart.GetCartCount())
}

func (suite *CartStoreTestSuite) TestAddClampsAtMaximum() {
	p := product(1, 1000)

	entry, err := suite.cart.AddToCart(p, 8)
	suite.Require().NoError(err)
	suite.Equal(8, entry.Quantity)

	entry, err = suite.cart.AddToCart(p, 5)
	suite.Require().NoError(err)
	suite.Equal(models.MaxQuantityPerItem, entry.Quantity)

	suite.Require().NoError(suite.cart.UpdateQuantity(1, 99))
	suite.Equal(models.MaxQuantityPerItem, suite.cart.GetCart()[0].Quantity)
}

func (suite *CartStoreTestSuite) TestAddRejectsBadInput() {
	_, err := suite.cart.AddToCart(product(1, 1000), 0)
	suite.ErrorIs(err, ErrInvalidQuantity)

	soldOut := product(2, 1000)
	soldOut.Stock = 0
	_, err = suite.cart.AddToCart(soldOut, 1)
	suite.ErrorIs(err, ErrOutOfStock)

	suite.Empty(suite.cart.GetCart())
}

func (suite *CartStoreTestSuite) TestUpdateToZeroRemoves() {
	_, _ = suite.cart.AddToCart(product(1, 100000), 1)
	_, _ = suite.cart.AddToCart(product(2, 50000), 2)
	suite.Equal(int64(200000), suite.cart.GetCartTotal())

	suite.Require().NoError(suite.cart.UpdateQuantity(1, 0))

	cart := suite.cart.GetCart()
	suite.Len(cart, 1)
	suite.Equal(2, cart[0].ProductID)
	suite.Equal(int64(100000), suite.cart.GetCartTotal())
}

func (suite *CartStoreTestSuite) TestUpdateMissingItem() {
	suite.ErrorIs(suite.cart.UpdateQuantity(42, 3), ErrCartItemNotFound)
	suite.ErrorIs(suite.cart.UpdateQuantity(42, 0), ErrCartItemNotFound)
}

func (suite *CartStoreTestSuite) TestRemoveAbsentIsNoop() {
	notified := 0
	suite.cart.Subscribe(func() { notified++ })

	suite.False(suite.cart.RemoveFromCart(7))
	suite.Equal(0, notified)
}

func (suite *CartStoreTestSuite) TestRemoveMultipleNotifiesOnce() {
	for id := 1; id <= 4; id++ {
		_, _ = suite.cart.AddToCart(product(id, 1000), 1)
	}

	notified := 0
	suite.cart.Subscribe(func() { notified++ })

	suite.Equal(2, suite.cart.RemoveMultipleFromCart([]int{1, 3, 99}))
	suite.Equal(1, notified)
	suite.Len(suite.cart.GetCart(), 2)
}

func (suite *CartStoreTestSuite) TestEveryMutationNotifiesAfterPersisting() {
	var seen []int
	suite.cart.Subscribe(func() {
		// Observers re-read the canonical state, which must already be stored.
		var stored []models.CartEntry
		suite.Require().NoError(storage.LoadJSON(suite.store, storage.KeyCart, &stored))
		seen = append(seen, len(stored))
	})

	_, _ = suite.cart.AddToCart(product(1, 1000), 1)
	_, _ = suite.cart.AddToCart(product(2, 1000), 1)
	suite.Require().NoError(suite.cart.UpdateQuantity(2, 4))
	suite.cart.RemoveFromCart(1)
	suite.cart.ClearCart()

	suite.Equal([]int{1, 2, 2, 1, 0}, seen)
}

func (suite *CartStoreTestSuite) TestUnsubscribe() {
	a, b := 0, 0
	unsubscribe := suite.cart.Subscribe(func() { a++ })
	suite.cart.Subscribe(func() { b++ })

	_, _ = suite.cart.AddToCart(product(1, 1000), 1)
	unsubscribe()
	unsubscribe()
	_, _ = suite.cart.AddToCart(product(1, 1000), 1)

	suite.Equal(1, a)
	suite.Equal(2, b)
}

func (suite *CartStoreTestSuite) TestObserverCanReadStore() {
	var count int
	suite.cart.Subscribe(func() { count = suite.cart.GetCartCount() })

	_, _ = suite.cart.AddToCart(product(1, 1000), 3)
	suite.Equal(3, count)
}

func (suite *CartStoreTestSuite) TestSnapshotPriceIsKept() {
	p := product(1, 100000)
	_, _ = suite.cart.AddToCart(p, 1)

	p.Price = 150000
	_, _ = suite.cart.AddToCart(p, 1)

	suite.Equal(int64(100000), suite.cart.GetCart()[0].Price)
	suite.Equal(int64(200000), suite.cart.GetCartTotal())
}

func (suite *CartStoreTestSuite) TestSelection() {
	for id := 1; id <= 3; id++ {
		_, _ = suite.cart.AddToCart(product(id, 1000), 1)
	}

	suite.Equal([]int{3, 1}, suite.cart.SetSelectedItemIDs([]int{3, 1, 3, 42}))
	suite.Equal([]int{3, 1}, suite.cart.GetSelectedItemIDs())

	suite.cart.RemoveFromCart(3)
	items := suite.cart.GetSelectedCartItems()
	suite.Len(items, 1)
	suite.Equal(1, items[0].ProductID)

	suite.cart.ClearSelectedItems()
	suite.Empty(suite.cart.GetSelectedItemIDs())
	suite.Empty(suite.cart.GetSelectedCartItems())
	suite.Len(suite.cart.GetCart(), 2, "clearing the selection leaves the cart alone")
}

func (suite *CartStoreTestSuite) TestStateSurvivesReload() {
	_, _ = suite.cart.AddToCart(product(1, 1000), 2)
	_, _ = suite.cart.AddToCart(product(2, 1000), 1)
	suite.cart.SetSelectedItemIDs([]int{2})

	reloaded := NewCartStore(suite.store, nil)
	suite.Equal(suite.cart.GetCart(), reloaded.GetCart())
	suite.Equal([]int{2}, reloaded.GetSelectedItemIDs())
}

func TestCartStoreTestSuite(t *testing.T) {
	suite.Run(t, new(CartStoreTestSuite))
}

func TestCartHydrateCorruptDocument(t *testing.T) {
	store := storage.NewMemoryStore()
	require.NoError(t, store.Set(storage.KeyCart, []byte("{not json")))
	require.NoError(t, store.Set(storage.KeySelectedItems, []byte("nope")))

	cart := NewCartStore(store, nil)
	assert.Empty(t, cart.GetCart())
	assert.Empty(t, cart.GetSelectedItemIDs())

	_, err := cart.AddToCart(product(1, 1000), 1)
	require.NoError(t, err)
	assert.Len(t, cart.GetCart(), 1)
}

func TestCartHydrateRepairsStoredLines(t *testing.T) {
	store := storage.NewMemoryStore()
	require.NoError(t, storage.SaveJSON(store, storage.KeyCart, []models.CartEntry{
		{ProductID: 1, Price: 1000, Quantity: 4},
		{ProductID: 2, Price: 1000, Quantity: 0},
		{ProductID: 1, Price: 1000, Quantity: 9},
		{ProductID: 3, Price: 1000, Quantity: 2},
	}))

	cart := NewCartStore(store, nil).GetCart()
	require.Len(t, cart, 2)
	assert.Equal(t, 1, cart[0].ProductID)
	assert.Equal(t, models.MaxQuantityPerItem, cart[0].Quantity)
	assert.Equal(t, 3, cart[1].ProductID)
}

func TestCartWriteFailureKeepsMemoryState(t *testing.T) {
	cart := NewCartStore(newFlakyStore(storage.KeyCart), nil)

	notified := 0
	cart.Subscribe(func() { notified++ })

	_, err := cart.AddToCart(product(1, 1000), 2)
	require.NoError(t, err)
	assert.Len(t, cart.GetCart(), 1)
	assert.Equal(t, 1, notified)
}

func TestIndependentCartsDoNotCrossTalk(t *testing.T) {
	base := storage.NewMemoryStore()
	a := NewCartStore(storage.Namespaced(base, "a"), nil)
	b := NewCartStore(storage.Namespaced(base, "b"), nil)

	notifiedB := 0
	b.Subscribe(func() { notifiedB++ })

	_, _ = a.AddToCart(product(1, 1000), 1)
	assert.Equal(t, 0, notifiedB)
	assert.Empty(t, b.GetCart())
}

func knownProducts(ids ...int) ProductLookup {
	return func(id int) (models.Product, bool) {
		for _, known := range ids {
			if known == id {
				return product(id, 1000), true
			}
		}
		return models.Product{}, false
	}
}

func TestCartHydrateDropsProductsMissingFromCatalog(t *testing.T) {
	store := storage.NewMemoryStore()
	require.NoError(t, storage.SaveJSON(store, storage.KeyCart, []models.CartEntry{
		{ProductID: 1, Price: 1000, Quantity: 1},
		{ProductID: 9999, Price: 50000, Quantity: 2},
	}))

	cart := NewCartStore(store, nil)
	cart.UseCatalog(knownProducts(1))

	items := cart.GetCart()
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].ProductID)
	assert.Equal(t, int64(1000), cart.GetCartTotal())

	var persisted []models.CartEntry
	require.NoError(t, storage.LoadJSON(store, storage.KeyCart, &persisted))
	assert.Len(t, persisted, 1)
}

func TestPruneMissingProductsNotifiesOnce(t *testing.T) {
	store := storage.NewMemoryStore()
	cart := NewCartStore(store, nil)
	cart.UseCatalog(knownProducts(1))

	_, err := cart.AddToCart(product(1, 1000), 1)
	require.NoError(t, err)
	_, err = cart.AddToCart(product(9998, 1000), 1)
	require.NoError(t, err)
	_, err = cart.AddToCart(product(9999, 1000), 1)
	require.NoError(t, err)

	notified := 0
	cart.Subscribe(func() { notified++ })

	assert.Equal(t, 2, cart.PruneMissingProducts())
	assert.Equal(t, 1, notified)
	assert.Len(t, cart.GetCart(), 1)

	assert.Equal(t, 0, cart.PruneMissingProducts())
	assert.Equal(t, 1, notified)

	var persisted []models.CartEntry
	require.NoError(t, storage.LoadJSON(store, storage.KeyCart, &persisted))
	assert.Len(t, persisted, 1)
}

func TestPruneWithoutCatalogKeepsEverything(t *testing.T) {
	cart := NewCartStore(storage.NewMemoryStore(), nil)
	_, err := cart.AddToCart(product(9999, 1000), 1)
	require.NoError(t, err)

	assert.Equal(t, 0, cart.PruneMissingProducts())
	assert.Len(t, cart.GetCart(), 1)
}

package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/florist-backend/internal/models"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()
	assert.Equal(t, 30, c.Len())

	product, ok := c.ByID(1)
	require.True(t, ok)
	assert.Equal(t, "Classic Red Rose Bouquet", product.Name)
	assert.Equal(t, int64(185000), product.Price)
	assert.True(t, product.InStock())

	_, ok = c.ByID(999)
	assert.False(t, ok)
}

func TestCatalogIsImmutable(t *testing.T) {
	c := Default()

	product, _ := c.ByID(1)
	product.Price = 1
	product.Colors[0] = "green"

	again, _ := c.ByID(1)
	assert.Equal(t, int64(185000), again.Price)
	assert.Equal(t, "red", again.Colors[0])

	all := c.All()
	all[0].Tags[0] = "changed"
	first, _ := c.ByID(all[0].ID)
	assert.NotEqual(t, "changed", first.Tags[0])
}

func TestNewRejectsInvalidTables(t *testing.T) {
	_, err := New([]models.Product{
		{ID: 1, Colors: []string{"red"}},
		{ID: 1, Colors: []string{"red"}},
	})
	assert.Error(t, err)

	_, err = New([]models.Product{{ID: 2}})
	assert.Error(t, err)
}

func TestFacets(t *testing.T) {
	c, err := New([]models.Product{
		{ID: 1, Price: 100000, Category: models.CategoryBouquet, FlowerType: models.FlowerTypeRose, Colors: []string{"red", "white"}, Tags: []string{"romantic"}},
		{ID: 2, Price: 200000, Category: models.CategoryBunch, FlowerType: models.FlowerTypeTulip, Colors: []string{"red"}, Tags: []string{"birthday", "romantic"}},
		{ID: 3, Price: 600000, Category: models.CategoryBouquet, FlowerType: models.FlowerTypeRose, Colors: []string{"pink"}},
	})
	require.NoError(t, err)

	facets := c.Facets()
	assert.Equal(t, models.PriceRange{Min: 100000, Max: 600000}, facets.PriceRange)
	assert.Equal(t, []models.FacetOption{{Value: "pink", Count: 1}, {Value: "red", Count: 2}, {Value: "white", Count: 1}}, facets.Colors)
	assert.Equal(t, []models.FacetOption{{Value: "birthday", Count: 1}, {Value: "romantic", Count: 2}}, facets.Tags)
	assert.Equal(t, models.FacetOption{Value: "bouquet", Count: 2}, facets.Categories[0])

	require.Len(t, facets.PriceBuckets, 4)
	assert.Equal(t, 1, facets.PriceBuckets[0].Count)
	assert.Equal(t, 1, facets.PriceBuckets[1].Count)
	assert.Equal(t, 0, facets.PriceBuckets[2].Count)
	assert.Equal(t, 1, facets.PriceBuckets[3].Count)
	assert.Equal(t, "Under Rp 150.000", facets.PriceBuckets[0].Label)
}

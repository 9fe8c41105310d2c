// Package catalog holds the storefront's immutable product table and the
// facets derived from it.
package catalog

import (
	"fmt"
	"sort"

	"github.com/javajoker/florist-backend/internal/models"
	"github.com/javajoker/florist-backend/internal/utils"
)

// DefaultPriceBuckets are the price ranges offered in the filter sidebar.
var DefaultPriceBuckets = []models.PriceRange{
	{Min: 0, Max: 149999},
	{Min: 150000, Max: 249999},
	{Min: 250000, Max: 499999},
	{Min: 500000, Max: 9999999},
}

// Catalog is read-only after New returns and safe for concurrent use.
type Catalog struct {
	products []models.Product
	byID     map[int]int
	facets   models.Facets
}

// Default returns the catalog built from the static product table.
func Default() *Catalog {
	c, err := New(defaultProducts)
	if err != nil {
		panic(err)
	}
	return c
}

func New(products []models.Product) (*Catalog, error) {
	c := &Catalog{
		products: make([]models.Product, len(products)),
		byID:     make(map[int]int, len(products)),
	}
	for i, product := range products {
		if _, dup := c.byID[product.ID]; dup {
			return nil, fmt.Errorf("duplicate product id %d", product.ID)
		}
		if len(product.Colors) == 0 {
			return nil, fmt.Errorf("product %d has no colors", product.ID)
		}
		if product.Stock < 0 {
			return nil, fmt.Errorf("product %d has negative stock", product.ID)
		}
		c.products[i] = cloneProduct(product)
		c.byID[product.ID] = i
	}
	c.facets = computeFacets(c.products, DefaultPriceBuckets)
	return c, nil
}

// All returns a copy of every product in table order.
func (c *Catalog) All() []models.Product {
	out := make([]models.Product, len(c.products))
	for i, product := range c.products {
		out[i] = cloneProduct(product)
	}
	return out
}

func (c *Catalog) ByID(id int) (models.Product, bool) {
	i, ok := c.byID[id]
	if !ok {
		return models.Product{}, false
	}
	return cloneProduct(c.products[i]), true
}

func (c *Catalog) Len() int {
	return len(c.products)
}

func (c *Catalog) Facets() models.Facets {
	return c.facets
}

func imagePath(id int) string {
	return fmt.Sprintf("/images/products/%d.jpg", id)
}

func cloneProduct(p models.Product) models.Product {
	p.Colors = append([]string(nil), p.Colors...)
	p.Tags = append([]string(nil), p.Tags...)
	return p
}

func computeFacets(products []models.Product, buckets []models.PriceRange) models.Facets {
	categoryCounts := make(map[string]int)
	flowerCounts := make(map[string]int)
	colorCounts := make(map[string]int)
	tagCounts := make(map[string]int)

	var facets models.Facets
	for i, product := range products {
		categoryCounts[string(product.Category)]++
		flowerCounts[string(product.FlowerType)]++
		for _, color := range product.Colors {
			colorCounts[color]++
		}
		for _, tag := range product.Tags {
			tagCounts[tag]++
		}

		if i == 0 || product.Price < facets.PriceRange.Min {
			facets.PriceRange.Min = product.Price
		}
		if product.Price > facets.PriceRange.Max {
			facets.PriceRange.Max = product.Price
		}
	}

	for _, category := range models.Categories {
		facets.Categories = append(facets.Categories, models.FacetOption{Value: string(category), Count: categoryCounts[string(category)]})
	}
	for _, flower := range models.FlowerTypes {
		facets.FlowerTypes = append(facets.FlowerTypes, models.FacetOption{Value: string(flower), Count: flowerCounts[string(flower)]})
	}
	facets.Colors = sortedOptions(colorCounts)
	facets.Tags = sortedOptions(tagCounts)

	for _, bucket := range buckets {
		count := 0
		for _, product := range products {
			if bucket.Contains(product.Price) {
				count++
			}
		}
		facets.PriceBuckets = append(facets.PriceBuckets, models.PriceBucket{
			Label: bucketLabel(bucket, buckets),
			Range: bucket,
			Count: count,
		})
	}

	return facets
}

func sortedOptions(counts map[string]int) []models.FacetOption {
	options := make([]models.FacetOption, 0, len(counts))
	for value, count := range counts {
		options = append(options, models.FacetOption{Value: value, Count: count})
	}
	sort.Slice(options, func(i, j int) bool {
		return options[i].Value < options[j].Value
	})
	return options
}

func bucketLabel(bucket models.PriceRange, all []models.PriceRange) string {
	switch {
	case bucket.Min == 0:
		return "Under " + utils.FormatPrice(bucket.Max+1)
	case bucket == all[len(all)-1]:
		return utils.FormatPrice(bucket.Min) + " and above"
	default:
		return utils.FormatPrice(bucket.Min) + " - " + utils.FormatPrice(bucket.Max+1)
	}
}

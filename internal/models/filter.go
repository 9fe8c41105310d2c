// internal/models/filter.go
package models

// FilterState is the complete filter selection of the shop listing.
type FilterState struct {
	Categories    []Category   `json:"category"`
	FlowerTypes   []FlowerType `json:"flower_type"`
	PriceRange    *PriceRange  `json:"price_range,omitempty"`
	Colors        []string     `json:"colors"`
	Tags          []string     `json:"tags"`
	FeaturedOnly  bool         `json:"featured_only"`
	InStockOnly   bool         `json:"in_stock_only"`
	SearchKeyword string       `json:"search"`
}

// DefaultFilterState selects everything that is in stock.
func DefaultFilterState() FilterState {
	return FilterState{
		Categories:  []Category{},
		FlowerTypes: []FlowerType{},
		Colors:      []string{},
		Tags:        []string{},
		InStockOnly: true,
	}
}

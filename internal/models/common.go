// internal/models/common.go
package models

// Enums
type Category string

const (
	CategoryBouquet Category = "bouquet"
	CategoryBunch   Category = "bunch"
	CategoryBag     Category = "bag"
)

var Categories = []Category{CategoryBouquet, CategoryBunch, CategoryBag}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

type FlowerType string

const (
	FlowerTypeRose      FlowerType = "rose"
	FlowerTypeTulip     FlowerType = "tulip"
	FlowerTypeGerbera   FlowerType = "gerbera"
	FlowerTypeHydrangea FlowerType = "hydrangea"
	FlowerTypeMixed     FlowerType = "mixed"
)

var FlowerTypes = []FlowerType{
	FlowerTypeRose,
	FlowerTypeTulip,
	FlowerTypeGerbera,
	FlowerTypeHydrangea,
	FlowerTypeMixed,
}

func (f FlowerType) Valid() bool {
	for _, known := range FlowerTypes {
		if f == known {
			return true
		}
	}
	return false
}

type SortKey string

const (
	SortFeatured  SortKey = "featured"
	SortPriceAsc  SortKey = "price-asc"
	SortPriceDesc SortKey = "price-desc"
	SortRating    SortKey = "rating"
	SortNameAsc   SortKey = "name-asc"
	SortNameDesc  SortKey = "name-desc"
)

var SortKeys = []SortKey{SortFeatured, SortPriceAsc, SortPriceDesc, SortRating, SortNameAsc, SortNameDesc}

func (s SortKey) Valid() bool {
	for _, known := range SortKeys {
		if s == known {
			return true
		}
	}
	return false
}

type OrderStatus string

const (
	OrderStatusPending OrderStatus = "pending"
)

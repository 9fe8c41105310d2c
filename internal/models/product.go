// internal/models/product.go
package models

import (
	"github.com/lib/pq"
)

type Product struct {
	ID          int            `json:"id" gorm:"primaryKey;autoIncrement:false"`
	Name        string         `json:"name" gorm:"size:255;not null"`
	Description string         `json:"description" gorm:"type:text"`
	Price       int64          `json:"price" gorm:"not null;index"`
	Rating      float64        `json:"rating" gorm:"type:decimal(3,2);default:0"`
	Category    Category       `json:"category" gorm:"type:varchar(20);index"`
	FlowerType  FlowerType     `json:"flower_type" gorm:"type:varchar(20);index"`
	Colors      pq.StringArray `json:"colors" gorm:"type:text[]"`
	Tags        pq.StringArray `json:"tags" gorm:"type:text[]"`
	Featured    bool           `json:"featured" gorm:"default:false"`
	Stock       int            `json:"stock" gorm:"default:0"`
	Image       string         `json:"image" gorm:"size:255"`
}

// InStock is derived from the stock count; there is no separate flag.
func (p Product) InStock() bool {
	return p.Stock > 0
}

// PriceRange is an inclusive price window in Rupiah.
type PriceRange struct {
	Min int64 `json:"min"`
	Max int64 `json:"max"`
}

func (r PriceRange) Contains(price int64) bool {
	return price >= r.Min && price <= r.Max
}

// PriceBucket is a labelled price range offered as a filter facet.
type PriceBucket struct {
	Label string     `json:"label"`
	Range PriceRange `json:"range"`
	Count int        `json:"count"`
}

type FacetOption struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// Facets are derived once from the catalog.
type Facets struct {
	Categories   []FacetOption `json:"categories"`
	FlowerTypes  []FacetOption `json:"flower_types"`
	Colors       []FacetOption `json:"colors"`
	Tags         []FacetOption `json:"tags"`
	PriceBuckets []PriceBucket `json:"price_buckets"`
	PriceRange   PriceRange    `json:"price_range"`
}

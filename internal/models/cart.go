// internal/models/cart.go
package models

// MaxQuantityPerItem caps a single cart line.
const MaxQuantityPerItem = 10

// CartEntry is a cart line. Display fields are copied from the product when
// the line is created and are not refreshed from the catalog afterwards.
type CartEntry struct {
	ProductID  int        `json:"id"`
	Name       string     `json:"name"`
	Price      int64      `json:"price"`
	Image      string     `json:"image"`
	Category   Category   `json:"category"`
	FlowerType FlowerType `json:"flower_type"`
	Quantity   int        `json:"quantity"`
}

func (e CartEntry) LineTotal() int64 {
	return e.Price * int64(e.Quantity)
}

func NewCartEntry(p Product, quantity int) CartEntry {
	return CartEntry{
		ProductID:  p.ID,
		Name:       p.Name,
		Price:      p.Price,
		Image:      p.Image,
		Category:   p.Category,
		FlowerType: p.FlowerType,
		Quantity:   quantity,
	}
}

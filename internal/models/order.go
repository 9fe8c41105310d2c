// internal/models/order.go
package models

import "time"

type Customer struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
}

type OrderItem struct {
	ProductID  int        `json:"id"`
	Name       string     `json:"name"`
	Price      int64      `json:"price"`
	Quantity   int        `json:"quantity"`
	Image      string     `json:"image"`
	Category   Category   `json:"category"`
	FlowerType FlowerType `json:"flower_type"`
}

// OrderRecord is written once at checkout and never modified afterwards.
type OrderRecord struct {
	ID                string      `json:"id"`
	Customer          Customer    `json:"customer"`
	ShippingMethod    string      `json:"shipping_method"`
	PaymentMethod     string      `json:"payment_method"`
	Notes             string      `json:"notes,omitempty"`
	Items             []OrderItem `json:"items"`
	Subtotal          int64       `json:"subtotal"`
	ShippingCost      int64       `json:"shipping_cost"`
	Total             int64       `json:"total"`
	OrderDate         time.Time   `json:"order_date"`
	IsPartialCheckout bool        `json:"is_partial_checkout"`
	Status            OrderStatus `json:"status"`
}

type ShippingMethod struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Cost        int64  `json:"cost"`
}

type PaymentMethod struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

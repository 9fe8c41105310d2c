// internal/services/order_service.go
package services

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/florist-backend/internal/models"
	"github.com/javajoker/florist-backend/internal/storage"
	"github.com/javajoker/florist-backend/internal/utils"
)

var (
	ErrOrderNotFound         = errors.New("order not found")
	ErrUnknownShippingMethod = errors.New("unknown shipping method")
	ErrNoOrderItems          = errors.New("order has no items")
)

// Shipping costs are fixed; customers cannot edit them.
var ShippingMethods = []models.ShippingMethod{
	{ID: "regular", Name: "Regular Delivery", Description: "Delivered in 2-3 business days", Cost: 0},
	{ID: "express", Name: "Express Delivery", Description: "Delivered the next business day", Cost: 25000},
	{ID: "same-day", Name: "Same-Day Delivery", Description: "Order before 12.00 for delivery today", Cost: 50000},
}

var PaymentMethods = []models.PaymentMethod{
	{ID: "bank-transfer", Name: "Bank Transfer", Description: "BCA, Mandiri or BNI virtual account"},
	{ID: "e-wallet", Name: "E-Wallet", Description: "GoPay, OVO or DANA"},
	{ID: "cod", Name: "Cash on Delivery", Description: "Pay when your flowers arrive"},
}

const (
	DefaultShippingMethod = "regular"
	DefaultPaymentMethod  = "bank-transfer"
)

func init() {
	utils.MustRegisterValidation("shipping_method", func(fl validator.FieldLevel) bool {
		_, ok := FindShippingMethod(fl.Field().String())
		return ok
	})
	utils.MustRegisterValidation("payment_method", func(fl validator.FieldLevel) bool {
		_, ok := FindPaymentMethod(fl.Field().String())
		return ok
	})
}

func FindShippingMethod(id string) (models.ShippingMethod, bool) {
	for _, m := range ShippingMethods {
		if m.ID == id {
			return m, true
		}
	}
	return models.ShippingMethod{}, false
}

func FindPaymentMethod(id string) (models.PaymentMethod, bool) {
	for _, m := range PaymentMethods {
		if m.ID == id {
			return m, true
		}
	}
	return models.PaymentMethod{}, false
}

// OrderConfirmationPath is the storefront route of an order's confirmation
// page.
func OrderConfirmationPath(orderID string) string {
	return "/checkout/success/" + orderID
}

// BuildOrder composes an order from snapshot cart lines. Amounts are taken
// from the lines, never from the live catalog.
func BuildOrder(items []models.CartEntry, form models.CheckoutFormData, partial bool, now time.Time) (models.OrderRecord, error) {
	if len(items) == 0 {
		return models.OrderRecord{}, ErrNoOrderItems
	}
	shipping, ok := FindShippingMethod(form.ShippingMethod)
	if !ok {
		return models.OrderRecord{}, fmt.Errorf("%w: %q", ErrUnknownShippingMethod, form.ShippingMethod)
	}

	id, err := utils.GenerateOrderID(now)
	if err != nil {
		return models.OrderRecord{}, err
	}

	order := models.OrderRecord{
		ID:                id,
		Customer:          form.Customer(),
		ShippingMethod:    shipping.ID,
		PaymentMethod:     form.PaymentMethod,
		Notes:             form.Notes,
		Items:             make([]models.OrderItem, 0, len(items)),
		ShippingCost:      shipping.Cost,
		OrderDate:         now.UTC(),
		IsPartialCheckout: partial,
		Status:            models.OrderStatusPending,
	}
	for _, item := range items {
		order.Items = append(order.Items, models.OrderItem{
			ProductID:  item.ProductID,
			Name:       item.Name,
			Price:      item.Price,
			Quantity:   item.Quantity,
			Image:      item.Image,
			Category:   item.Category,
			FlowerType: item.FlowerType,
		})
		order.Subtotal += item.LineTotal()
	}
	order.Total = order.Subtotal + order.ShippingCost

	return order, nil
}

// OrderHistory is the append-only order log of one session, newest first.
type OrderHistory struct {
	mu       sync.Mutex
	store    storage.Storage
	log      *logrus.Entry
	orders   []models.OrderRecord
	hydrated bool
}

func NewOrderHistory(store storage.Storage, log *logrus.Entry) *OrderHistory {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &OrderHistory{
		store: store,
		log:   log.WithField("component", "orders"),
	}
}

// Append stores order at the front of the history. Unlike cart writes a
// failed write is returned and the order is not kept.
func (h *OrderHistory) Append(order models.OrderRecord) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.hydrate()

	orders := make([]models.OrderRecord, 0, len(h.orders)+1)
	orders = append(orders, order)
	orders = append(orders, h.orders...)

	if err := storage.SaveJSON(h.store, storage.KeyOrders, orders); err != nil {
		return fmt.Errorf("failed to save order %s: %w", order.ID, err)
	}
	h.orders = orders
	return nil
}

func (h *OrderHistory) List() []models.OrderRecord {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.hydrate()
	return append([]models.OrderRecord{}, h.orders...)
}

func (h *OrderHistory) Get(id string) (models.OrderRecord, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.hydrate()

	for _, order := range h.orders {
		if order.ID == id {
			return order, nil
		}
	}
	return models.OrderRecord{}, ErrOrderNotFound
}

func (h *OrderHistory) hydrate() {
	if h.hydrated {
		return
	}
	h.hydrated = true
	h.orders = []models.OrderRecord{}

	var stored []models.OrderRecord
	if err := storage.LoadJSON(h.store, storage.KeyOrders, &stored); err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			h.log.WithError(err).Warn("Discarding unreadable order history")
		}
		return
	}
	h.orders = stored
}

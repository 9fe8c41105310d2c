// internal/handlers/cart.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/florist-backend/internal/catalog"
	"github.com/javajoker/florist-backend/internal/i18n"
	"github.com/javajoker/florist-backend/internal/models"
	"github.com/javajoker/florist-backend/internal/services"
	"github.com/javajoker/florist-backend/internal/utils"
)

type CartHandler struct {
	catalog  *catalog.Catalog
	sessions *services.SessionManager
}

func NewCartHandler(catalog *catalog.Catalog, sessions *services.SessionManager) *CartHandler {
	return &CartHandler{catalog: catalog, sessions: sessions}
}

type AddToCartRequest struct {
	ProductID int  `json:"product_id" binding:"required"`
	Quantity  *int `json:"quantity,omitempty"`
}

type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

type ProductIDsRequest struct {
	ProductIDs []int `json:"product_ids"`
}

type CartView struct {
	Items          []models.CartEntry `json:"items"`
	Total          int64              `json:"total"`
	FormattedTotal string             `json:"formatted_total"`
	Count          int                `json:"count"`
	SelectedIDs    []int              `json:"selected_ids"`
}

func newCartView(cart *services.CartStore) CartView {
	total := cart.GetCartTotal()
	return CartView{
		Items:          cart.GetCart(),
		Total:          total,
		FormattedTotal: utils.FormatPrice(total),
		Count:          cart.GetCartCount(),
		SelectedIDs:    cart.GetSelectedItemIDs(),
	}
}

// GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	session := currentSession(c, h.sessions)
	if session == nil {
		return
	}
	utils.SuccessResponse(c, newCartView(session.Cart))
}

// POST /cart/items
func (h *CartHandler) AddItem(c *gin.Context) {
	session := currentSession(c, h.sessions)
	if session == nil {
		return
	}

	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}
	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	product, ok := h.catalog.ByID(req.ProductID)
	if !ok {
		utils.NotFoundResponse(c, i18n.KeyProductNotFound)
		return
	}

	entry, err := session.Cart.AddToCart(product, quantity)
	if err != nil {
		respondCartError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(i18n.KeyCartItemAdded),
		"item":    entry,
		"cart":    newCartView(session.Cart),
	})
}

// PUT /cart/items/:id
func (h *CartHandler) UpdateItem(c *gin.Context) {
	session := currentSession(c, h.sessions)
	if session == nil {
		return
	}

	productID, ok := productIDParam(c)
	if !ok {
		return
	}

	var req UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if err := session.Cart.UpdateQuantity(productID, *req.Quantity); err != nil {
		respondCartError(c, err)
		return
	}

	message := i18n.T(i18n.KeyCartItemUpdated)
	if *req.Quantity < 1 {
		message = i18n.T(i18n.KeyCartItemRemoved)
	}
	utils.SuccessResponse(c, gin.H{
		"message": message,
		"cart":    newCartView(session.Cart),
	})
}

// DELETE /cart/items/:id
func (h *CartHandler) RemoveItem(c *gin.Context) {
	session := currentSession(c, h.sessions)
	if session == nil {
		return
	}

	productID, ok := productIDParam(c)
	if !ok {
		return
	}

	session.Cart.RemoveFromCart(productID)
	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(i18n.KeyCartItemRemoved),
		"cart":    newCartView(session.Cart),
	})
}

// POST /cart/items/remove
func (h *CartHandler) RemoveItems(c *gin.Context) {
	session := currentSession(c, h.sessions)
	if session == nil {
		return
	}

	var req ProductIDsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	removed := session.Cart.RemoveMultipleFromCart(req.ProductIDs)
	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(i18n.KeyCartItemRemoved),
		"removed": removed,
		"cart":    newCartView(session.Cart),
	})
}

// DELETE /cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	session := currentSession(c, h.sessions)
	if session == nil {
		return
	}

	session.Cart.ClearCart()
	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(i18n.KeyCartCleared),
		"cart":    newCartView(session.Cart),
	})
}

// GET /cart/selection
func (h *CartHandler) GetSelection(c *gin.Context) {
	session := currentSession(c, h.sessions)
	if session == nil {
		return
	}

	items := session.Cart.GetSelectedCartItems()
	var subtotal int64
	for _, item := range items {
		subtotal += item.LineTotal()
	}

	utils.SuccessResponse(c, gin.H{
		"selected_ids":       session.Cart.GetSelectedItemIDs(),
		"items":              items,
		"subtotal":           subtotal,
		"formatted_subtotal": utils.FormatPrice(subtotal),
	})
}

// PUT /cart/selection
func (h *CartHandler) SetSelection(c *gin.Context) {
	session := currentSession(c, h.sessions)
	if session == nil {
		return
	}

	var req ProductIDsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	selected := session.Cart.SetSelectedItemIDs(req.ProductIDs)
	utils.SuccessResponse(c, gin.H{
		"selected_ids": selected,
		"items":        session.Cart.GetSelectedCartItems(),
	})
}

// DELETE /cart/selection
func (h *CartHandler) ClearSelection(c *gin.Context) {
	session := currentSession(c, h.sessions)
	if session == nil {
		return
	}

	session.Cart.ClearSelectedItems()
	utils.SuccessResponse(c, gin.H{"selected_ids": []int{}})
}

// GET /cart/events
func (h *CartHandler) Events(c *gin.Context) {
	session := currentSession(c, h.sessions)
	if session == nil {
		return
	}

	streamEvents(c, session, services.EventCart, func(services.Event) interface{} {
		return gin.H{"count": session.Cart.GetCartCount()}
	})
}

func productIDParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(i18n.KeyValidationInvalid, "product id"), nil)
		return 0, false
	}
	return id, true
}

func respondCartError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidQuantity):
		utils.BadRequestResponse(c, i18n.T(i18n.KeyCartInvalidQuantity), nil)
	case errors.Is(err, services.ErrOutOfStock):
		utils.ErrorResponse(c, http.StatusConflict, "OUT_OF_STOCK", i18n.T(i18n.KeyProductOutOfStock), nil)
	case errors.Is(err, services.ErrCartItemNotFound):
		utils.NotFoundResponse(c, i18n.KeyCartItemNotFound)
	default:
		utils.InternalErrorResponse(c, "")
	}
}

// internal/handlers/order.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/florist-backend/internal/i18n"
	"github.com/javajoker/florist-backend/internal/models"
	"github.com/javajoker/florist-backend/internal/services"
	"github.com/javajoker/florist-backend/internal/utils"
)

type OrderHandler struct {
	sessions *services.SessionManager
}

func NewOrderHandler(sessions *services.SessionManager) *OrderHandler {
	return &OrderHandler{sessions: sessions}
}

type OrderView struct {
	models.OrderRecord
	FormattedSubtotal     string `json:"formatted_subtotal"`
	FormattedShippingCost string `json:"formatted_shipping_cost"`
	FormattedTotal        string `json:"formatted_total"`
	FormattedOrderDate    string `json:"formatted_order_date"`
	ConfirmationPath      string `json:"confirmation_path"`
}

func newOrderView(order models.OrderRecord) OrderView {
	return OrderView{
		OrderRecord:           order,
		FormattedSubtotal:     utils.FormatPrice(order.Subtotal),
		FormattedShippingCost: utils.FormatPrice(order.ShippingCost),
		FormattedTotal:        utils.FormatPrice(order.Total),
		FormattedOrderDate:    utils.FormatDateTime(order.OrderDate),
		ConfirmationPath:      services.OrderConfirmationPath(order.ID),
	}
}

// GET /orders
func (h *OrderHandler) GetOrders(c *gin.Context) {
	session := currentSession(c, h.sessions)
	if session == nil {
		return
	}

	params := utils.GetPaginationParams(c)
	orders := session.Orders.List()
	start, end := utils.PageBounds(params, len(orders))

	views := make([]OrderView, 0, end-start)
	for _, order := range orders[start:end] {
		views = append(views, newOrderView(order))
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(views, int64(len(orders)), params), nil)
}

// GET /orders/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	session := currentSession(c, h.sessions)
	if session == nil {
		return
	}

	order, err := session.Orders.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			utils.NotFoundResponse(c, i18n.KeyOrderNotFound)
			return
		}
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, newOrderView(order))
}

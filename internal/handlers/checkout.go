// internal/handlers/checkout.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/florist-backend/internal/i18n"
	"github.com/javajoker/florist-backend/internal/models"
	"github.com/javajoker/florist-backend/internal/services"
	"github.com/javajoker/florist-backend/internal/utils"
)

type CheckoutHandler struct {
	sessions *services.SessionManager
}

func NewCheckoutHandler(sessions *services.SessionManager) *CheckoutHandler {
	return &CheckoutHandler{sessions: sessions}
}

// GET /checkout/options
func (h *CheckoutHandler) GetOptions(c *gin.Context) {
	utils.SuccessResponse(c, gin.H{
		"shipping_methods":        services.ShippingMethods,
		"payment_methods":         services.PaymentMethods,
		"default_shipping_method": services.DefaultShippingMethod,
		"default_payment_method":  services.DefaultPaymentMethod,
	})
}

// GET /checkout/draft
func (h *CheckoutHandler) GetDraft(c *gin.Context) {
	session := currentSession(c, h.sessions)
	if session == nil {
		return
	}

	form, saved := session.Drafts.LoadDraft()
	if !saved {
		form = services.DefaultCheckoutForm()
	}
	utils.SuccessResponse(c, gin.H{
		"form":  form,
		"saved": saved,
	})
}

// PUT /checkout/draft
func (h *CheckoutHandler) SaveDraft(c *gin.Context) {
	session := currentSession(c, h.sessions)
	if session == nil {
		return
	}

	var form models.CheckoutFormData
	if err := c.ShouldBindJSON(&form); err != nil {
		utils.BadRequestResponse(c, i18n.T(i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	session.Drafts.SaveDraft(form)
	c.JSON(http.StatusAccepted, utils.APIResponse{
		Success: true,
		Data: gin.H{
			"message": i18n.T(i18n.KeyCheckoutDraftSaved),
			"form":    form,
		},
	})
}

// DELETE /checkout/draft
func (h *CheckoutHandler) ClearDraft(c *gin.Context) {
	session := currentSession(c, h.sessions)
	if session == nil {
		return
	}

	session.Drafts.ClearDraft()
	utils.SuccessResponse(c, gin.H{"form": services.DefaultCheckoutForm()})
}

// POST /checkout
func (h *CheckoutHandler) Submit(c *gin.Context) {
	session := currentSession(c, h.sessions)
	if session == nil {
		return
	}

	var form models.CheckoutFormData
	if err := c.ShouldBindJSON(&form); err != nil {
		utils.BadRequestResponse(c, i18n.T(i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	result, err := session.Checkout.Submit(form)
	switch {
	case err == nil:
		utils.CreatedResponse(c, result)
	case errors.Is(err, services.ErrCheckoutValidation):
		utils.ValidationErrorResponse(c, result.Message, result.Validation)
	case errors.Is(err, services.ErrEmptyCart):
		utils.BadRequestResponse(c, result.Message, nil)
	case errors.Is(err, services.ErrCheckoutAlreadyRunning):
		utils.ConflictResponse(c, err.Error())
	default:
		message := ""
		if result != nil {
			message = result.Message
		}
		utils.InternalErrorResponse(c, message)
	}
}

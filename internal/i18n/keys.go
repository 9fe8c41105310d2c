// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeySuccess = "success"
	KeyError   = "error"

	// Products
	KeyProductNotFound   = "product.not_found"
	KeyProductOutOfStock = "product.out_of_stock"

	// Cart
	KeyCartItemAdded       = "cart.item_added"
	KeyCartItemUpdated     = "cart.item_updated"
	KeyCartItemRemoved     = "cart.item_removed"
	KeyCartCleared         = "cart.cleared"
	KeyCartEmpty           = "cart.empty"
	KeyCartInvalidQuantity = "cart.invalid_quantity"
	KeyCartItemNotFound    = "cart.item_not_found"

	// Checkout
	KeyCheckoutFieldRequired = "checkout.field_required"
	KeyCheckoutInvalidEmail  = "checkout.invalid_email"
	KeyCheckoutInvalidPhone  = "checkout.invalid_phone"
	KeyCheckoutTermsRequired = "checkout.terms_required"
	KeyCheckoutInvalidOption = "checkout.invalid_option"
	KeyCheckoutFailed        = "checkout.failed"
	KeyCheckoutSuccess       = "checkout.success"
	KeyCheckoutDraftSaved    = "checkout.draft_saved"

	// Orders
	KeyOrderNotFound = "order.not_found"

	// Validation
	KeyValidationInvalid = "validation.invalid"

	// Session
	KeySessionRequired = "session.required"

	// Rate limiting
	KeyRateLimited = "rate_limit.exceeded"
)

// FieldLabels are the user-facing names of checkout form fields.
var FieldLabels = map[string]string{
	"name":            "checkout.field.name",
	"phone":           "checkout.field.phone",
	"email":           "checkout.field.email",
	"address":         "checkout.field.address",
	"city":            "checkout.field.city",
	"postal_code":     "checkout.field.postal_code",
	"shipping_method": "checkout.field.shipping_method",
	"payment_method":  "checkout.field.payment_method",
}

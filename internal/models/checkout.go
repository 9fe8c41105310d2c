// internal/models/checkout.go
package models

// CheckoutFormData is the checkout form, also stored as a draft.
type CheckoutFormData struct {
	Name           string `json:"name" validate:"required_trimmed"`
	Phone          string `json:"phone" validate:"required_trimmed,phone_digits"`
	Email          string `json:"email" validate:"required_trimmed,basic_email"`
	Address        string `json:"address" validate:"required_trimmed"`
	City           string `json:"city" validate:"required_trimmed"`
	PostalCode     string `json:"postal_code" validate:"required_trimmed"`
	ShippingMethod string `json:"shipping_method" validate:"shipping_method"`
	PaymentMethod  string `json:"payment_method" validate:"payment_method"`
	Notes          string `json:"notes,omitempty"`
	AcceptTerms    bool   `json:"accept_terms" validate:"eq=true"`
}

func (f CheckoutFormData) Customer() Customer {
	return Customer{
		Name:       f.Name,
		Phone:      f.Phone,
		Email:      f.Email,
		Address:    f.Address,
		City:       f.City,
		PostalCode: f.PostalCode,
	}
}

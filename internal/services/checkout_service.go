// internal/services/checkout_service.go
package services

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/javajoker/florist-backend/internal/i18n"
	"github.com/javajoker/florist-backend/internal/models"
	"github.com/javajoker/florist-backend/internal/storage"
	"github.com/javajoker/florist-backend/internal/utils"
)

var (
	ErrEmptyCart              = errors.New("cart is empty")
	ErrCheckoutValidation     = errors.New("checkout form is invalid")
	ErrCheckoutFailed         = errors.New("checkout failed")
	ErrCheckoutAlreadyRunning = errors.New("checkout already in progress")
)

type CheckoutState string

const (
	CheckoutEditing    CheckoutState = "editing"
	CheckoutValidating CheckoutState = "validating"
	CheckoutSubmitting CheckoutState = "submitting"
	CheckoutPersisted  CheckoutState = "persisted"
	CheckoutSuccess    CheckoutState = "success"
)

// FieldTerms is the form field holding the terms acceptance.
const FieldTerms = "accept_terms"

// checkoutFieldOrder decides which failing field is reported first.
var checkoutFieldOrder = []string{
	"name",
	"phone",
	"email",
	"address",
	"city",
	"postal_code",
	"shipping_method",
	"payment_method",
	FieldTerms,
}

type FormValidationResult struct {
	Valid             bool              `json:"valid"`
	Errors            map[string]string `json:"errors,omitempty"`
	FirstInvalidField string            `json:"first_invalid_field,omitempty"`
	Message           string            `json:"message,omitempty"`
	Focus             string            `json:"focus,omitempty"`
}

// DefaultCheckoutForm is the form a session starts with when it has no draft.
func DefaultCheckoutForm() models.CheckoutFormData {
	return models.CheckoutFormData{
		ShippingMethod: DefaultShippingMethod,
		PaymentMethod:  DefaultPaymentMethod,
	}
}

// ValidateCheckoutForm checks every field. When the terms checkbox is the
// only problem, Focus points at it and the banner asks for acceptance.
func ValidateCheckoutForm(form models.CheckoutFormData) FormValidationResult {
	err := utils.ValidateStruct(form)
	if err == nil {
		return FormValidationResult{Valid: true}
	}

	result := FormValidationResult{Errors: make(map[string]string)}
	for _, fieldErr := range utils.GetValidationErrors(err) {
		result.Errors[fieldErr.Field] = checkoutFieldMessage(fieldErr)
	}
	if len(result.Errors) == 0 {
		result.Errors["form"] = i18n.T(i18n.KeyValidationInvalid, "form")
		result.Message = result.Errors["form"]
		return result
	}

	for _, field := range checkoutFieldOrder {
		if msg, ok := result.Errors[field]; ok {
			result.FirstInvalidField = field
			result.Message = msg
			break
		}
	}

	_, termsFailed := result.Errors[FieldTerms]
	if termsFailed && len(result.Errors) == 1 {
		result.Focus = FieldTerms
	} else {
		result.Focus = result.FirstInvalidField
	}
	return result
}

func checkoutFieldMessage(e utils.ValidationError) string {
	label := e.Field
	if key, ok := i18n.FieldLabels[e.Field]; ok {
		label = i18n.T(key)
	}

	switch e.Tag {
	case "required", "required_trimmed":
		return i18n.T(i18n.KeyCheckoutFieldRequired, label)
	case "basic_email":
		return i18n.T(i18n.KeyCheckoutInvalidEmail)
	case "phone_digits":
		return i18n.T(i18n.KeyCheckoutInvalidPhone)
	case "shipping_method", "payment_method":
		return i18n.T(i18n.KeyCheckoutInvalidOption, label)
	case "eq":
		if e.Field == FieldTerms {
			return i18n.T(i18n.KeyCheckoutTermsRequired)
		}
	}
	return e.Message
}

// DraftStore keeps the checkout form draft. Saves are debounced; a new save
// replaces the pending one.
type DraftStore struct {
	mu       sync.Mutex
	store    storage.Storage
	log      *logrus.Entry
	debounce time.Duration
	timer    *time.Timer
	pending  *models.CheckoutFormData
}

func NewDraftStore(store storage.Storage, debounce time.Duration, log *logrus.Entry) *DraftStore {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &DraftStore{
		store:    store,
		log:      log.WithField("component", "checkout_draft"),
		debounce: debounce,
	}
}

// SaveDraft schedules form to be written after the debounce interval.
func (d *DraftStore) SaveDraft(form models.CheckoutFormData) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending = &form
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	if d.debounce <= 0 {
		d.writePending()
		return
	}
	d.timer = time.AfterFunc(d.debounce, func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		d.writePending()
	})
}

// FlushDraft writes a pending draft immediately.
func (d *DraftStore) FlushDraft() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	return d.writePending()
}

// LoadDraft returns the latest draft, including one that is not written yet.
func (d *DraftStore) LoadDraft() (models.CheckoutFormData, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.pending != nil {
		return *d.pending, true
	}

	var form models.CheckoutFormData
	if err := storage.LoadJSON(d.store, storage.KeyCheckoutDraft, &form); err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			d.log.WithError(err).Warn("Discarding unreadable checkout draft")
		}
		return models.CheckoutFormData{}, false
	}
	return form, true
}

// ClearDraft cancels a pending save and removes the stored draft.
func (d *DraftStore) ClearDraft() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.pending = nil

	if err := d.store.Remove(storage.KeyCheckoutDraft); err != nil && !errors.Is(err, storage.ErrNotFound) {
		d.log.WithError(err).Warn("Failed to clear checkout draft")
	}
}

func (d *DraftStore) writePending() error {
	if d.pending == nil {
		return nil
	}
	form := *d.pending
	d.pending = nil

	if err := storage.SaveJSON(d.store, storage.KeyCheckoutDraft, form); err != nil {
		d.log.WithError(err).Warn("Failed to persist checkout draft")
		return err
	}
	return nil
}

// OrderNotifier is told about every persisted order.
type OrderNotifier interface {
	SendOrderConfirmation(order models.OrderRecord) error
}

type CheckoutResult struct {
	State        CheckoutState         `json:"state"`
	Order        *models.OrderRecord   `json:"order,omitempty"`
	Validation   *FormValidationResult `json:"validation,omitempty"`
	RedirectPath string                `json:"redirect_path,omitempty"`
	Message      string                `json:"message,omitempty"`
}

// CheckoutService drives one session's checkout from form submission to the
// cleanup that follows a saved order.
type CheckoutService struct {
	mu              sync.Mutex
	cart            *CartStore
	orders          *OrderHistory
	drafts          *DraftStore
	notifier        OrderNotifier
	processingDelay time.Duration
	now             func() time.Time
	log             *logrus.Entry

	state CheckoutState
}

func NewCheckoutService(cart *CartStore, orders *OrderHistory, drafts *DraftStore, notifier OrderNotifier, processingDelay time.Duration, log *logrus.Entry) *CheckoutService {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &CheckoutService{
		cart:            cart,
		orders:          orders,
		drafts:          drafts,
		notifier:        notifier,
		processingDelay: processingDelay,
		now:             time.Now,
		log:             log.WithField("component", "checkout"),
		state:           CheckoutEditing,
	}
}

func (s *CheckoutService) State() CheckoutState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *CheckoutService) setState(state CheckoutState) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

// Submit validates form and places an order for the selected cart lines, or
// for the whole cart when nothing is selected. On any failure the cart, the
// selection and the draft are left as they were.
func (s *CheckoutService) Submit(form models.CheckoutFormData) (*CheckoutResult, error) {
	s.mu.Lock()
	switch s.state {
	case CheckoutValidating, CheckoutSubmitting, CheckoutPersisted:
		s.mu.Unlock()
		return nil, ErrCheckoutAlreadyRunning
	}
	s.state = CheckoutValidating
	s.mu.Unlock()

	validation := ValidateCheckoutForm(form)
	if !validation.Valid {
		s.setState(CheckoutEditing)
		return &CheckoutResult{
			State:      CheckoutEditing,
			Validation: &validation,
			Message:    validation.Message,
		}, ErrCheckoutValidation
	}

	s.cart.PruneMissingProducts()
	items := s.cart.GetSelectedCartItems()
	partial := len(items) > 0
	if !partial {
		items = s.cart.GetCart()
	}
	if len(items) == 0 {
		s.setState(CheckoutEditing)
		return &CheckoutResult{State: CheckoutEditing, Message: i18n.T(i18n.KeyCartEmpty)}, ErrEmptyCart
	}

	s.setState(CheckoutSubmitting)
	if s.processingDelay > 0 {
		time.Sleep(s.processingDelay)
	}

	order, err := BuildOrder(items, form, partial, s.now())
	if err == nil {
		err = s.orders.Append(order)
	}
	if err != nil {
		s.log.WithError(err).Error("Failed to place order")
		s.setState(CheckoutEditing)
		return &CheckoutResult{State: CheckoutEditing, Message: i18n.T(i18n.KeyCheckoutFailed)}, fmt.Errorf("%w: %v", ErrCheckoutFailed, err)
	}
	s.setState(CheckoutPersisted)

	// The selection must outlive the cart cleanup: it names the lines to drop.
	if partial {
		ids := make([]int, len(items))
		for i, item := range items {
			ids[i] = item.ProductID
		}
		s.cart.RemoveMultipleFromCart(ids)
	} else {
		s.cart.ClearCart()
	}
	s.cart.ClearSelectedItems()
	s.drafts.ClearDraft()

	s.setState(CheckoutSuccess)

	s.log.WithFields(logrus.Fields{
		"order_id": order.ID,
		"total":    order.Total,
		"partial":  order.IsPartialCheckout,
		"items":    len(order.Items),
	}).Info("Order placed")

	if s.notifier != nil {
		go func(order models.OrderRecord) {
			if err := s.notifier.SendOrderConfirmation(order); err != nil {
				s.log.WithError(err).WithField("order_id", order.ID).Warn("Failed to send order confirmation")
			}
		}(order)
	}

	return &CheckoutResult{
		State:        CheckoutSuccess,
		Order:        &order,
		RedirectPath: OrderConfirmationPath(order.ID),
		Message:      i18n.T(i18n.KeyCheckoutSuccess),
	}, nil
}

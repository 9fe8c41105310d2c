// internal/router/router_test.go
package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/javajoker/florist-backend/internal/catalog"
	"github.com/javajoker/florist-backend/internal/config"
	"github.com/javajoker/florist-backend/internal/middleware"
	"github.com/javajoker/florist-backend/internal/services"
	"github.com/javajoker/florist-backend/internal/storage"
	"github.com/javajoker/florist-backend/internal/utils"
)

type envelope struct {
	Success bool                   `json:"success"`
	Data    json.RawMessage        `json:"data"`
	Meta    map[string]interface{} `json:"meta"`
	Error   *utils.APIError        `json:"error"`
}

func testConfig() *config.Config {
	return &config.Config{
		Environment: "test",
		Session: config.SessionConfig{
			TTLHours:    1,
			CookieName:  "florist_session",
			IdleMinutes: 30,
		},
		RateLimit: config.RateLimitConfig{RequestsPerSecond: 1000, Burst: 1000},
		CORS:      config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
		Frontend:  config.FrontendConfig{BaseURL: "http://localhost:3000"},
	}
}

type RouterTestSuite struct {
	suite.Suite
	router   *gin.Engine
	sessions *services.SessionManager
	token    string
}

func (suite *RouterTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	utils.SetSessionSecret("router-test-secret")
}

func (suite *RouterTestSuite) SetupTest() {
	cfg := testConfig()
	suite.sessions = services.NewSessionManager(storage.NewMemoryStore(), catalog.Default(), cfg, nil)
	suite.router = Initialize(cfg, catalog.Default(), suite.sessions)
	suite.token = ""
}

// do sends a request with the suite's session token and keeps any token the
// server hands back.
func (suite *RouterTestSuite) do(method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(suite.T(), err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, _ := http.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if suite.token != "" {
		req.Header.Set(middleware.SessionHeader, suite.token)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	if token := w.Header().Get(middleware.SessionHeader); token != "" {
		suite.token = token
	}

	var resp envelope
	if w.Body.Len() > 0 {
		require.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w, resp
}

func (suite *RouterTestSuite) decode(raw json.RawMessage, v interface{}) {
	require.NoError(suite.T(), json.Unmarshal(raw, v))
}

func validCheckoutForm() map[string]interface{} {
	return map[string]interface{}{
		"name":            "Sari Dewi",
		"phone":           "0812-3456-7890",
		"email":           "sari@example.com",
		"address":         "Jl. Melati No. 12",
		"city":            "Bandung",
		"postal_code":     "40115",
		"shipping_method": "express",
		"payment_method":  "e-wallet",
		"accept_terms":    true,
	}
}

func (suite *RouterTestSuite) TestHealth() {
	w, _ := suite.do("GET", "/health", nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Contains(suite.T(), w.Body.String(), "healthy")
}

func (suite *RouterTestSuite) TestProductListingFiltersAndSorts() {
	w, resp := suite.do("GET", "/v1/products?category=bag&sort=price-asc&limit=100", nil)
	require.Equal(suite.T(), http.StatusOK, w.Code)

	var products []struct {
		ID       int    `json:"id"`
		Price    int64  `json:"price"`
		Category string `json:"category"`
		InStock  bool   `json:"in_stock"`
	}
	suite.decode(resp.Data, &products)
	require.NotEmpty(suite.T(), products)

	for i, p := range products {
		assert.Equal(suite.T(), "bag", p.Category)
		assert.True(suite.T(), p.InStock)
		if i > 0 {
			assert.LessOrEqual(suite.T(), products[i-1].Price, p.Price)
		}
	}
	assert.Equal(suite.T(), "category=bag&sort=price-asc", resp.Meta["query"])
	assert.Equal(suite.T(), float64(1), resp.Meta["active_filter_count"])
	assert.NotEmpty(suite.T(), w.Header().Get("X-Total-Count"))

	// Catalog routes do not start sessions
	assert.Empty(suite.T(), w.Header().Get(middleware.SessionHeader))
}

func (suite *RouterTestSuite) TestProductNotFound() {
	w, resp := suite.do("GET", "/v1/products/999", nil)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
	assert.Equal(suite.T(), "NOT_FOUND", resp.Error.Code)

	w, _ = suite.do("GET", "/v1/products/abc", nil)
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *RouterTestSuite) TestSessionTokenKeepsCart() {
	w, _ := suite.do("POST", "/v1/cart/items", gin.H{"product_id": 1, "quantity": 2})
	require.Equal(suite.T(), http.StatusCreated, w.Code)
	require.NotEmpty(suite.T(), suite.token)

	_, resp := suite.do("GET", "/v1/cart", nil)
	var cart struct {
		Count int   `json:"count"`
		Total int64 `json:"total"`
	}
	suite.decode(resp.Data, &cart)
	assert.Equal(suite.T(), 2, cart.Count)
	assert.Equal(suite.T(), int64(370000), cart.Total)

	// A fresh client starts with an empty cart
	suite.token = ""
	_, resp = suite.do("GET", "/v1/cart", nil)
	suite.decode(resp.Data, &cart)
	assert.Equal(suite.T(), 0, cart.Count)
	assert.Equal(suite.T(), 2, suite.sessions.Len())
}

func (suite *RouterTestSuite) TestInvalidTokenStartsNewSession() {
	suite.token = "not-a-token"
	w, _ := suite.do("GET", "/v1/cart", nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.NotEqual(suite.T(), "not-a-token", suite.token)
}

func (suite *RouterTestSuite) TestCartItemLifecycle() {
	suite.do("POST", "/v1/cart/items", gin.H{"product_id": 1})
	suite.do("POST", "/v1/cart/items", gin.H{"product_id": 2, "quantity": 3})

	w, _ := suite.do("PUT", "/v1/cart/items/1", gin.H{"quantity": 4})
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	w, resp := suite.do("PUT", "/v1/cart/items/42", gin.H{"quantity": 1})
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
	assert.Equal(suite.T(), "NOT_FOUND", resp.Error.Code)

	w, _ = suite.do("PUT", "/v1/cart/items/2", gin.H{"quantity": 0})
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	_, resp = suite.do("GET", "/v1/cart", nil)
	var cart struct {
		Items []struct {
			ID       int `json:"id"`
			Quantity int `json:"quantity"`
		} `json:"items"`
	}
	suite.decode(resp.Data, &cart)
	require.Len(suite.T(), cart.Items, 1)
	assert.Equal(suite.T(), 1, cart.Items[0].ID)
	assert.Equal(suite.T(), 4, cart.Items[0].Quantity)

	w, _ = suite.do("DELETE", "/v1/cart", nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	_, resp = suite.do("GET", "/v1/cart", nil)
	suite.decode(resp.Data, &cart)
	assert.Empty(suite.T(), cart.Items)
}

func (suite *RouterTestSuite) TestAddRejectsBadInput() {
	w, resp := suite.do("POST", "/v1/cart/items", gin.H{"product_id": 6})
	assert.Equal(suite.T(), http.StatusConflict, w.Code)
	assert.Equal(suite.T(), "OUT_OF_STOCK", resp.Error.Code)

	w, _ = suite.do("POST", "/v1/cart/items", gin.H{"product_id": 1, "quantity": 0})
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	w, _ = suite.do("POST", "/v1/cart/items", gin.H{"product_id": 999})
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *RouterTestSuite) TestFullCheckout() {
	suite.do("POST", "/v1/cart/items", gin.H{"product_id": 1, "quantity": 2})

	w, resp := suite.do("POST", "/v1/checkout", validCheckoutForm())
	require.Equal(suite.T(), http.StatusCreated, w.Code)

	var result struct {
		State string `json:"state"`
		Order struct {
			ID           string `json:"id"`
			Subtotal     int64  `json:"subtotal"`
			ShippingCost int64  `json:"shipping_cost"`
			Total        int64  `json:"total"`
		} `json:"order"`
		RedirectPath string `json:"redirect_path"`
	}
	suite.decode(resp.Data, &result)
	assert.Equal(suite.T(), "success", result.State)
	assert.Equal(suite.T(), int64(370000), result.Order.Subtotal)
	assert.Equal(suite.T(), int64(25000), result.Order.ShippingCost)
	assert.Equal(suite.T(), int64(395000), result.Order.Total)
	assert.Equal(suite.T(), "/checkout/success/"+result.Order.ID, result.RedirectPath)

	_, resp = suite.do("GET", "/v1/cart", nil)
	var cart struct {
		Count int `json:"count"`
	}
	suite.decode(resp.Data, &cart)
	assert.Equal(suite.T(), 0, cart.Count)

	w, _ = suite.do("GET", "/v1/orders/"+result.Order.ID, nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	w, resp = suite.do("GET", "/v1/orders", nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	var orders []map[string]interface{}
	suite.decode(resp.Data, &orders)
	assert.Len(suite.T(), orders, 1)
}

func (suite *RouterTestSuite) TestPartialCheckoutKeepsUnselectedItems() {
	suite.do("POST", "/v1/cart/items", gin.H{"product_id": 1})
	suite.do("POST", "/v1/cart/items", gin.H{"product_id": 2})

	w, _ := suite.do("PUT", "/v1/cart/selection", gin.H{"product_ids": []int{2, 99}})
	require.Equal(suite.T(), http.StatusOK, w.Code)

	w, _ = suite.do("POST", "/v1/checkout", validCheckoutForm())
	require.Equal(suite.T(), http.StatusCreated, w.Code)

	_, resp := suite.do("GET", "/v1/cart", nil)
	var cart struct {
		Items []struct {
			ID int `json:"id"`
		} `json:"items"`
		SelectedIDs []int `json:"selected_ids"`
	}
	suite.decode(resp.Data, &cart)
	require.Len(suite.T(), cart.Items, 1)
	assert.Equal(suite.T(), 1, cart.Items[0].ID)
	assert.Empty(suite.T(), cart.SelectedIDs)
}

func (suite *RouterTestSuite) TestCheckoutValidationFailure() {
	suite.do("POST", "/v1/cart/items", gin.H{"product_id": 1})

	form := validCheckoutForm()
	form["email"] = "not-an-email"
	w, resp := suite.do("POST", "/v1/checkout", form)
	assert.Equal(suite.T(), http.StatusUnprocessableEntity, w.Code)
	assert.Equal(suite.T(), "VALIDATION_ERROR", resp.Error.Code)
	assert.Equal(suite.T(), "Please enter a valid email address", resp.Error.Message)

	_, resp = suite.do("GET", "/v1/cart", nil)
	var cart struct {
		Count int `json:"count"`
	}
	suite.decode(resp.Data, &cart)
	assert.Equal(suite.T(), 1, cart.Count)
}

func (suite *RouterTestSuite) TestCheckoutEmptyCart() {
	w, resp := suite.do("POST", "/v1/checkout", validCheckoutForm())
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	assert.Equal(suite.T(), "Your cart is empty", resp.Error.Message)
}

func (suite *RouterTestSuite) TestCheckoutDraft() {
	form := validCheckoutForm()
	form["name"] = "Budi"
	w, _ := suite.do("PUT", "/v1/checkout/draft", form)
	assert.Equal(suite.T(), http.StatusAccepted, w.Code)

	_, resp := suite.do("GET", "/v1/checkout/draft", nil)
	var draft struct {
		Form  map[string]interface{} `json:"form"`
		Saved bool                   `json:"saved"`
	}
	suite.decode(resp.Data, &draft)
	assert.True(suite.T(), draft.Saved)
	assert.Equal(suite.T(), "Budi", draft.Form["name"])

	suite.do("DELETE", "/v1/checkout/draft", nil)
	_, resp = suite.do("GET", "/v1/checkout/draft", nil)
	suite.decode(resp.Data, &draft)
	assert.False(suite.T(), draft.Saved)
	assert.Equal(suite.T(), "regular", draft.Form["shipping_method"])
}

func (suite *RouterTestSuite) TestShopFiltersFollowURL() {
	w, resp := suite.do("GET", "/v1/shop?category=bag", nil)
	require.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Equal(suite.T(), "category=bag", resp.Meta["query"])

	w, resp = suite.do("PATCH", "/v1/shop/filters", gin.H{"toggle_color": "red", "sort": "rating"})
	require.Equal(suite.T(), http.StatusOK, w.Code)
	var state struct {
		Query string `json:"query"`
	}
	suite.decode(resp.Data, &state)
	assert.Equal(suite.T(), "category=bag&colors=red&sort=rating", state.Query)

	w, _ = suite.do("PATCH", "/v1/shop/filters", gin.H{"sort": "cheapest"})
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	_, resp = suite.do("DELETE", "/v1/shop/filters", nil)
	suite.decode(resp.Data, &state)
	assert.Equal(suite.T(), "", state.Query)
}

func (suite *RouterTestSuite) TestCheckoutOptions() {
	w, resp := suite.do("GET", "/v1/checkout/options", nil)
	require.Equal(suite.T(), http.StatusOK, w.Code)
	var options struct {
		DefaultShipping string `json:"default_shipping_method"`
		DefaultPayment  string `json:"default_payment_method"`
	}
	suite.decode(resp.Data, &options)
	assert.Equal(suite.T(), "regular", options.DefaultShipping)
	assert.Equal(suite.T(), "bank-transfer", options.DefaultPayment)
}

func TestRouterTestSuite(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}

func TestRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := testConfig()
	cfg.RateLimit = config.RateLimitConfig{RequestsPerSecond: 0.001, Burst: 1}
	r := Initialize(cfg, catalog.Default(), services.NewSessionManager(storage.NewMemoryStore(), catalog.Default(), cfg, nil))

	first := httptest.NewRecorder()
	r.ServeHTTP(first, httptest.NewRequest("GET", "/health", nil))
	assert.Equal(t, http.StatusOK, first.Code)

	second := httptest.NewRecorder()
	r.ServeHTTP(second, httptest.NewRequest("GET", "/health", nil))
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Contains(t, second.Body.String(), "RATE_LIMITED")
}

// internal/handlers/shop.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/javajoker/florist-backend/internal/catalog"
	"github.com/javajoker/florist-backend/internal/i18n"
	"github.com/javajoker/florist-backend/internal/models"
	"github.com/javajoker/florist-backend/internal/services"
	"github.com/javajoker/florist-backend/internal/utils"
)

// ShopHandler serves the session's shop page, whose filters stay in sync
// with the page URL.
type ShopHandler struct {
	catalog  *catalog.Catalog
	sessions *services.SessionManager
}

func NewShopHandler(catalog *catalog.Catalog, sessions *services.SessionManager) *ShopHandler {
	return &ShopHandler{catalog: catalog, sessions: sessions}
}

type UpdateFiltersRequest struct {
	Categories      *[]models.Category   `json:"categories,omitempty"`
	FlowerTypes     *[]models.FlowerType `json:"flower_types,omitempty"`
	PriceRange      *models.PriceRange   `json:"price_range,omitempty"`
	ClearPriceRange bool                 `json:"clear_price_range,omitempty"`
	Colors          *[]string            `json:"colors,omitempty"`
	Tags            *[]string            `json:"tags,omitempty"`
	FeaturedOnly    *bool                `json:"featured_only,omitempty"`
	InStockOnly     *bool                `json:"in_stock_only,omitempty"`
	Search          *string              `json:"search,omitempty"`
	Sort            *models.SortKey      `json:"sort,omitempty"`
	ToggleCategory  models.Category      `json:"toggle_category,omitempty"`
	ToggleColor     string               `json:"toggle_color,omitempty"`
	ToggleTag       string               `json:"toggle_tag,omitempty"`
}

// GET /shop
func (h *ShopHandler) GetShop(c *gin.Context) {
	session := currentSession(c, h.sessions)
	if session == nil {
		return
	}

	if err := session.Filters.SyncFromQuery(c.Request.URL.RawQuery); err != nil {
		utils.BadRequestResponse(c, i18n.T(i18n.KeyValidationInvalid, "query"), err.Error())
		return
	}

	filters, sortBy := session.Filters.State()
	respondWithListing(c, h.catalog, filters, sortBy)
}

// PATCH /shop/filters
func (h *ShopHandler) UpdateFilters(c *gin.Context) {
	session := currentSession(c, h.sessions)
	if session == nil {
		return
	}

	var req UpdateFiltersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}
	if req.PriceRange != nil && (req.PriceRange.Min < 0 || req.PriceRange.Max < req.PriceRange.Min) {
		utils.BadRequestResponse(c, i18n.T(i18n.KeyValidationInvalid, "price range"), nil)
		return
	}
	if req.Sort != nil && !req.Sort.Valid() {
		utils.BadRequestResponse(c, i18n.T(i18n.KeyValidationInvalid, "sort"), nil)
		return
	}

	var changes []services.FilterChange
	if req.Categories != nil {
		changes = append(changes, services.SelectCategories(*req.Categories))
	}
	if req.ToggleCategory != "" {
		changes = append(changes, services.FlipCategory(req.ToggleCategory))
	}
	if req.FlowerTypes != nil {
		changes = append(changes, services.SelectFlowerTypes(*req.FlowerTypes))
	}
	if req.ClearPriceRange {
		changes = append(changes, services.AnyPrice())
	} else if req.PriceRange != nil {
		changes = append(changes, services.PriceWithin(*req.PriceRange))
	}
	if req.Colors != nil {
		changes = append(changes, services.SelectColors(*req.Colors))
	}
	if req.ToggleColor != "" {
		changes = append(changes, services.FlipColor(req.ToggleColor))
	}
	if req.Tags != nil {
		changes = append(changes, services.SelectTags(*req.Tags))
	}
	if req.ToggleTag != "" {
		changes = append(changes, services.FlipTag(req.ToggleTag))
	}
	if req.FeaturedOnly != nil {
		changes = append(changes, services.OnlyFeatured(*req.FeaturedOnly))
	}
	if req.InStockOnly != nil {
		changes = append(changes, services.OnlyInStock(*req.InStockOnly))
	}
	if req.Search != nil {
		changes = append(changes, services.SearchFor(*req.Search))
	}
	if req.Sort != nil {
		changes = append(changes, services.SortBy(*req.Sort))
	}

	// One request is one navigation
	if len(changes) > 0 {
		session.Filters.Apply(changes...)
	}

	h.respondWithState(c, session)
}

// DELETE /shop/filters
func (h *ShopHandler) ResetFilters(c *gin.Context) {
	session := currentSession(c, h.sessions)
	if session == nil {
		return
	}

	session.Filters.ResetFilters()
	h.respondWithState(c, session)
}

// GET /shop/events
func (h *ShopHandler) Events(c *gin.Context) {
	session := currentSession(c, h.sessions)
	if session == nil {
		return
	}

	streamEvents(c, session, services.EventNavigate, func(e services.Event) interface{} {
		return gin.H{"query": e.Data}
	})
}

func (h *ShopHandler) respondWithState(c *gin.Context, session *services.Session) {
	filters, sortBy := session.Filters.State()
	utils.SuccessResponse(c, gin.H{
		"filters":             filters,
		"sort":                sortBy,
		"query":               services.EncodeFilterQuery(filters, sortBy),
		"active_filter_count": services.ActiveFilterCount(filters),
	})
}

// internal/handlers/product.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/florist-backend/internal/catalog"
	"github.com/javajoker/florist-backend/internal/i18n"
	"github.com/javajoker/florist-backend/internal/models"
	"github.com/javajoker/florist-backend/internal/services"
	"github.com/javajoker/florist-backend/internal/utils"
)

type ProductHandler struct {
	catalog *catalog.Catalog
}

func NewProductHandler(catalog *catalog.Catalog) *ProductHandler {
	return &ProductHandler{catalog: catalog}
}

type ProductView struct {
	models.Product
	InStock        bool   `json:"in_stock"`
	FormattedPrice string `json:"formatted_price"`
}

func newProductView(p models.Product) ProductView {
	return ProductView{
		Product:        p,
		InStock:        p.InStock(),
		FormattedPrice: utils.FormatPrice(p.Price),
	}
}

// GET /products
func (h *ProductHandler) GetProducts(c *gin.Context) {
	filters, sortBy := services.ParseFilterQuery(c.Request.URL.Query(), models.DefaultFilterState(), services.DefaultSort)
	respondWithListing(c, h.catalog, filters, sortBy)
}

// GET /products/facets
func (h *ProductHandler) GetFacets(c *gin.Context) {
	utils.SuccessResponse(c, gin.H{
		"facets":    h.catalog.Facets(),
		"sort_keys": models.SortKeys,
	})
}

// GET /products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(i18n.KeyValidationInvalid, "product id"), nil)
		return
	}

	product, ok := h.catalog.ByID(id)
	if !ok {
		utils.NotFoundResponse(c, i18n.KeyProductNotFound)
		return
	}

	utils.SuccessResponse(c, newProductView(product))
}

// respondWithListing filters, sorts and paginates the catalog.
func respondWithListing(c *gin.Context, cat *catalog.Catalog, filters models.FilterState, sortBy models.SortKey) {
	params := utils.GetPaginationParams(c)

	products := services.SortProducts(services.FilterProducts(cat.All(), filters), sortBy)
	start, end := utils.PageBounds(params, len(products))

	views := make([]ProductView, 0, end-start)
	for _, p := range products[start:end] {
		views = append(views, newProductView(p))
	}

	result := utils.CreatePaginationResult(views, int64(len(products)), params)
	utils.PaginatedResponse(c, result, gin.H{
		"query":               services.EncodeFilterQuery(filters, sortBy),
		"sort":                sortBy,
		"filters":             filters,
		"active_filter_count": services.ActiveFilterCount(filters),
	})
}

// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/florist-backend/internal/catalog"
	"github.com/javajoker/florist-backend/internal/config"
	"github.com/javajoker/florist-backend/internal/handlers"
	"github.com/javajoker/florist-backend/internal/middleware"
	"github.com/javajoker/florist-backend/internal/services"
)

func Initialize(cfg *config.Config, cat *catalog.Catalog, sessions *services.SessionManager) *gin.Engine {
	// Initialize handlers
	productHandler := handlers.NewProductHandler(cat)
	shopHandler := handlers.NewShopHandler(cat, sessions)
	cartHandler := handlers.NewCartHandler(cat, sessions)
	checkoutHandler := handlers.NewCheckoutHandler(sessions)
	orderHandler := handlers.NewOrderHandler(sessions)

	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.I18nMiddleware())
	r.Use(middleware.RateLimit(cfg.RateLimit))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"version":  "1.0.0",
			"products": cat.Len(),
			"sessions": sessions.Len(),
		})
	})

	v1 := r.Group("/v1")
	{
		// Catalog routes are stateless
		products := v1.Group("/products")
		{
			products.GET("", productHandler.GetProducts)
			products.GET("/facets", productHandler.GetFacets)
			products.GET("/:id", productHandler.GetProduct)
		}

		session := v1.Group("")
		session.Use(middleware.Session(cfg.Session, cfg.Environment == "production"))
		{
			shop := session.Group("/shop")
			{
				shop.GET("", shopHandler.GetShop)
				shop.PATCH("/filters", shopHandler.UpdateFilters)
				shop.DELETE("/filters", shopHandler.ResetFilters)
				shop.GET("/events", shopHandler.Events)
			}

			cart := session.Group("/cart")
			{
				cart.GET("", cartHandler.GetCart)
				cart.DELETE("", cartHandler.ClearCart)
				cart.POST("/items", cartHandler.AddItem)
				cart.POST("/items/remove", cartHandler.RemoveItems)
				cart.PUT("/items/:id", cartHandler.UpdateItem)
				cart.DELETE("/items/:id", cartHandler.RemoveItem)
				cart.GET("/selection", cartHandler.GetSelection)
				cart.PUT("/selection", cartHandler.SetSelection)
				cart.DELETE("/selection", cartHandler.ClearSelection)
				cart.GET("/events", cartHandler.Events)
			}

			checkout := session.Group("/checkout")
			{
				checkout.GET("/options", checkoutHandler.GetOptions)
				checkout.GET("/draft", checkoutHandler.GetDraft)
				checkout.PUT("/draft", checkoutHandler.SaveDraft)
				checkout.DELETE("/draft", checkoutHandler.ClearDraft)
				checkout.POST("", checkoutHandler.Submit)
			}

			orders := session.Group("/orders")
			{
				orders.GET("", orderHandler.GetOrders)
				orders.GET("/:id", orderHandler.GetOrder)
			}
		}
	}

	return r
}

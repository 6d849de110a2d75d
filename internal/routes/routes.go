package routes

import (
	"log/slog"
	"net/http"

	"github.com/01moynul/foodie-cart/internal/auth"
	"github.com/01moynul/foodie-cart/internal/handlers"
	"github.com/01moynul/foodie-cart/internal/middleware"
	"github.com/01moynul/foodie-cart/internal/models"
	"github.com/gin-gonic/gin"
)

// Options configure the router's middleware.
type Options struct {
	CORSOrigin string
	Decoder    *auth.Decoder
	Log        *slog.Logger
}

func SetupRouter(h *handlers.Handlers, opts Options) *gin.Engine {
	router := gin.New()

	// CORS must answer preflights before anything else runs.
	router.Use(middleware.CORS(opts.CORSOrigin))
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.OptionalAuth(opts.Decoder, opts.Log))
	router.Use(middleware.Logger(opts.Log))

	v1 := router.Group("/v1")
	{
		// --- Ping Route (Public) ---
		v1.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "pong!"})
		})

		v1.GET("/me", middleware.RequireAuth(), h.Me)

		// --- Cart Routes (no-ops without a signed-in owner) ---
		v1.GET("/cart", h.GetCart)
		v1.POST("/cart/items", h.AddToCart)
		v1.PATCH("/cart/items/:id", h.AdjustCartItem)
		v1.DELETE("/cart", h.ClearCart)

		// --- Favorites Routes ---
		v1.GET("/favorites", h.GetFavorites)
		v1.POST("/favorites/toggle", h.ToggleFavorite)

		// --- Checkout (Login Required) ---
		v1.POST("/checkout", middleware.RequireAuth(), h.Checkout)

		// --- Staff Routes ---
		admin := v1.Group("/admin")
		admin.Use(middleware.RequireRole(models.RoleAdmin, models.RoleEmployee))
		{
			admin.GET("/carts/:owner", h.GetOwnerCart)
		}
	}

	return router
}

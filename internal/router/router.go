package router

import (
	"net/http"
	"strings"
	"time"

	"menuapp/internal/auth"
	"menuapp/internal/cart"
	"menuapp/internal/menu"
	"menuapp/internal/middleware"
	"menuapp/internal/order"
	"menuapp/internal/restaurant"
	"menuapp/internal/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Deps are the services the HTTP layer is built from.
type Deps struct {
	Log         zerolog.Logger
	CORSOrigins []string

	Auth        *auth.Service
	Restaurants *restaurant.Service
	Menu        *menu.Service
	Carts       *cart.Service
	Orders      *order.Service
	Feed        *order.Feed

	// Objects serves uploaded files under /static when storage is in process.
	Objects ObjectReader
}

type ObjectReader interface {
	Get(key string) (storage.Object, bool)
}

func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestLogger(d.Log), middleware.Recovery(d.Log))

	if len(d.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     d.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			ExposeHeaders:    []string{middleware.RequestIDHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	// ───────────────────────── HEALTH ─────────────────────────
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if d.Objects != nil {
		r.GET("/static/*key", func(c *gin.Context) {
			obj, ok := d.Objects.Get(strings.TrimPrefix(c.Param("key"), "/"))
			if !ok {
				c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
				return
			}
			c.Data(http.StatusOK, obj.ContentType, obj.Data)
		})
	}

	// ───────────────────────── HANDLERS ─────────────────────────
	authHandler := auth.NewHandler(d.Auth)
	restaurantHandler := restaurant.NewHandler(d.Restaurants)
	menuHandler := menu.NewHandler(d.Menu)
	adminMenuHandler := menu.NewAdminHandler(d.Menu)
	cartHandler := cart.NewHandler(d.Carts)
	orderHandler := order.NewHandler(d.Orders)
	liveHandler := order.NewLiveHandler(d.Feed, d.Log)

	// ───────────────────────── PUBLIC ─────────────────────────
	restaurants := r.Group("/restaurants")
	{
		restaurants.GET("/:id", restaurantHandler.Get)
		restaurants.GET("/:id/menu", menuHandler.GetMenu)
		restaurants.POST("/:id/carts", cartHandler.Open)
	}

	carts := r.Group("/carts/:cartID")
	{
		carts.GET("", cartHandler.Get)
		carts.DELETE("", cartHandler.Clear)
		carts.POST("/items", cartHandler.AddItem)
		carts.PATCH("/items/:itemID", cartHandler.UpdateLine)
		carts.POST("/checkout", orderHandler.Checkout)
	}

	// ───────────────────────── AUTH ─────────────────────────
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/login", authHandler.Login)

		protected := authGroup.Group("")
		protected.Use(
			middleware.AuthMiddleware(d.Auth),
			middleware.RequireRole(auth.RoleAdmin),
		)
		{
			protected.POST("/logout", authHandler.Logout)
			protected.GET("/me", authHandler.Me)
		}
	}

	// ───────────────────────── ADMIN ROUTES ─────────────────────────
	admin := r.Group("/admin")
	admin.Use(
		middleware.AuthMiddleware(d.Auth),
		middleware.RequireRole(auth.RoleAdmin),
		middleware.RestaurantScope(d.Auth),
	)
	{
		// Orders
		admin.GET("/orders", orderHandler.List)
		admin.GET("/orders/live", liveHandler.Serve)
		admin.PATCH("/orders/:id/status", orderHandler.UpdateStatus)

		// Menu
		admin.GET("/menu", adminMenuHandler.GetMenu)
		admin.POST("/categories", adminMenuHandler.AddCategory)
		admin.PUT("/categories/:id", adminMenuHandler.UpdateCategory)
		admin.DELETE("/categories/:id", adminMenuHandler.DeleteCategory)
		admin.POST("/menu-items", adminMenuHandler.AddItem)
		admin.PUT("/menu-items/:id", adminMenuHandler.UpdateItem)
		admin.DELETE("/menu-items/:id", adminMenuHandler.DeleteItem)
		admin.PATCH("/menu-items/:id/stock", adminMenuHandler.SetStock)

		// Settings
		admin.PUT("/settings", restaurantHandler.SaveSettings)
		admin.POST("/settings/logo", restaurantHandler.UploadLogo)
	}

	return r
}

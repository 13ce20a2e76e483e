package routes

import (
	"net/http"

	"burger-shop/controllers"
	"burger-shop/middleware"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Handlers struct {
	Auth      *controllers.AuthController
	User      *controllers.UserController
	Product   *controllers.ProductController
	Cart      *controllers.CartController
	Order     *controllers.OrderController
	Address   *controllers.AddressController
	JWTSecret string
}

func SetupRoutes(router *gin.Engine, h Handlers) {
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	api := router.Group("/api/v1")

	api.POST("/auth/signup", h.Auth.Signup)
	api.POST("/auth/login", h.Auth.Login)
	api.POST("/auth/logout", h.Auth.Logout)
	api.GET("/categories", h.Product.GetAllCategories)
	api.GET("/products", h.Product.GetAllProducts)
	api.GET("/products/recommendations", h.Product.GetRecommendations)
	api.GET("/products/:id", h.Product.GetProductByID)

	auth := api.Group("/")
	auth.Use(middleware.AuthMiddleware(h.JWTSecret))
	{
		auth.GET("/users/me", h.User.GetProfile)
		auth.PATCH("/users/me", h.User.UpdateProfile)

		auth.GET("/carts", h.Cart.GetCart)
		auth.DELETE("/carts", h.Cart.ClearCart)
		auth.POST("/carts/items", h.Cart.AddItem)
		auth.PATCH("/carts/items/:itemId", h.Cart.UpdateItem)
		auth.DELETE("/carts/items/:itemId", h.Cart.RemoveItem)

		auth.POST("/orders", h.Order.Checkout)
		auth.GET("/orders", h.Order.GetOrders)
		auth.GET("/orders/:id", h.Order.GetOrderByID)
		auth.POST("/orders/:id/reorder", h.Order.Reorder)

		auth.GET("/addresses", h.Address.GetAddresses)
		auth.POST("/addresses", h.Address.CreateAddress)
		auth.PUT("/addresses/:id", h.Address.UpdateAddress)
		auth.DELETE("/addresses/:id", h.Address.DeleteAddress)
		auth.PATCH("/addresses/:id/default", h.Address.SetDefaultAddress)
	}

	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware(h.JWTSecret), middleware.AdminMiddleware())
	{
		admin.POST("/products", h.Product.CreateProduct)
		admin.PATCH("/products/:id", h.Product.UpdateProduct)

		admin.GET("/orders", h.Order.GetAllOrders)
		admin.PATCH("/orders/:id/status", h.Order.UpdateOrderStatus)
	}
}

package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	config "github.com/VivekMakwana7/ecommerce-full-stack/configs"
	"github.com/VivekMakwana7/ecommerce-full-stack/internal/auth"
	"github.com/VivekMakwana7/ecommerce-full-stack/internal/db"
	"github.com/VivekMakwana7/ecommerce-full-stack/internal/handlers"
)

func main() {

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.LoadAppConfig()

	db.Init()
	auth.Init()

	r := gin.Default()
	r.SetTrustedProxies(nil)

	r.Static("/uploads", cfg.UploadDir)

	// ── public endpoints ──
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })
	r.POST("/auth/signup", handlers.Signup)
	r.POST("/auth/login", handlers.Login)

	// ── protected API ──
	api := r.Group("/api")
	api.Use(auth.RequireAuth())
	{
		api.GET("/categories", handlers.GetCategories)
		api.GET("/categories/:id", handlers.GetCategory)
		api.GET("/categories/:id/products", handlers.GetCategoryProducts)

		api.GET("/products", handlers.GetProducts)
		api.GET("/products/:id", handlers.GetProduct)

		api.POST("/orders", handlers.CreateOrder)
		api.GET("/orders/:id", handlers.GetOrder)

		api.GET("/users/:id", handlers.GetUser)
		api.PUT("/users/:id", handlers.UpdateUser)

		admin := api.Group("/")
		admin.Use(auth.RequireAdmin())
		{
			admin.POST("/categories", handlers.CreateCategory)
			admin.PUT("/categories/:id", handlers.UpdateCategory)
			admin.DELETE("/categories/:id", handlers.DeleteCategory)

			admin.POST("/products", handlers.CreateProduct)
			admin.PUT("/products/:id", handlers.UpdateProduct)
			admin.DELETE("/products/:id", handlers.DeleteProduct)

			admin.GET("/orders", handlers.GetOrders)
			admin.POST("/orders/payment", handlers.UpdatePaymentStatus)

			admin.GET("/users", handlers.GetUsers)
			admin.DELETE("/users/:id", handlers.DeleteUser)
		}
	}

	r.Run(":" + cfg.Port)
}

package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"backend/internal/config"
	"backend/internal/database"
	"backend/internal/handlers"
	"backend/internal/middleware"
	"backend/pkg/cloudinary"
)

func main() {
	config.Load()

	client, err := database.Connect(config.AppEnv.MongoURI)
	if err != nil {
		log.Fatal(err)
	}

	db := client.Database(config.AppEnv.DBName)

	log.Println("MongoDB connected to:", db.Name())

	if err := database.EnsureMenuIndexes(db); err != nil {
		log.Printf("menu index warning: %v", err)
	}
	if err := database.EnsureOrderIndexes(db); err != nil {
		log.Printf("order index warning: %v", err)
	}
	if err := database.EnsureAdminIndexes(db); err != nil {
		log.Printf("admin index warning: %v", err)
	}

	uploader := cloudinary.New(
		config.AppEnv.CloudinaryCloudName,
		config.AppEnv.CloudinaryAPIKey,
		config.AppEnv.CloudinaryAPISecret,
		"helens-menu",
	)

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})

	// Storefront
	r.GET("/menu", handlers.GetMenu(db))
	r.GET("/menu/:id", handlers.GetMenuItem(db))
	r.GET("/settings", handlers.GetSettings(db))
	r.POST("/orders", handlers.CreateOrder(db, config.AppEnv.OwnerPhone))

	// Admin auth
	r.POST("/auth/login", handlers.Login(db, config.AppEnv.JWTSecret, config.AppEnv.AccessTokenTTL))
	r.POST("/auth/register", handlers.Register(db))

	admin := r.Group("/admin/api")
	admin.Use(middleware.AdminAuth(config.AppEnv.JWTSecret))
	{
		admin.GET("/me", func(c *gin.Context) {
			c.JSON(200, gin.H{"ok": true, "username": c.GetString("adminUsername")})
		})

		admin.GET("/menu", handlers.GetAllMenuItems(db))
		admin.POST("/menu", handlers.CreateMenuItem(db))
		admin.PUT("/menu/:id", handlers.UpdateMenuItem(db))
		admin.DELETE("/menu/:id", handlers.DeleteMenuItem(db))

		admin.GET("/orders", handlers.GetOrders(db))
		admin.GET("/orders/:id", handlers.GetOrder(db))
		admin.PUT("/orders/:id", handlers.UpdateOrderStatus(db))

		admin.POST("/settings", handlers.SaveSettings(db))
		admin.POST("/upload", handlers.UploadImage(uploader))

		admin.GET("/stats", handlers.GetStats(db))
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r.Run(":" + port)
}

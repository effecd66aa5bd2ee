package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/Rickychen930/giftforyou-sub002/internal/config"
	"github.com/Rickychen930/giftforyou-sub002/internal/database"
	"github.com/Rickychen930/giftforyou-sub002/internal/handlers"
	"github.com/Rickychen930/giftforyou-sub002/internal/middleware"
)

func main() {
	config.Load()

	client, err := database.Connect(config.AppEnv.MongoURI)
	if err != nil {
		log.Fatal(err)
	}

	db := client.Database(config.AppEnv.DBName)

	log.Println("MongoDB connected to:", db.Name())

	if err := database.EnsureOrderIndexes(db); err != nil {
		log.Printf("order index warning: %v", err)
	}
	if err := database.EnsureUserIndexes(db); err != nil {
		log.Printf("user index warning: %v", err)
	}
	if err := database.EnsureCustomerIndexes(db); err != nil {
		log.Printf("customer index warning: %v", err)
	}
	if err := database.EnsureBouquetIndexes(db); err != nil {
		log.Printf("bouquet index warning: %v", err)
	}

	loginLimiter := handlers.NewLoginLimiter()
	loginLimiter.StartJanitor(context.Background())
	instagramCache := handlers.NewInstagramCache()

	r := gin.Default()
	r.Static("/public", "./public")

	r.POST("/api/auth/login", handlers.Login(db, loginLimiter, config.AppEnv.JWTSecret, config.AppEnv.AccessTokenTTL))
	r.GET("/api/auth/me", middleware.AuthGuard(config.AppEnv.JWTSecret), handlers.Me(db))

	r.GET("/api/bouquets", handlers.GetBouquets(db))
	r.GET("/api/bouquets/:id", handlers.GetBouquet(db))
	r.GET("/api/collections", handlers.GetCollections(db))

	r.GET("/api/orders", handlers.GetOrders(db, config.AppEnv.JWTSecret))
	r.POST("/api/orders", handlers.CreateOrder(db))
	r.PATCH("/api/orders/:id", handlers.UpdateOrder(db))
	r.DELETE("/api/orders/:id", handlers.DeleteOrder(db))

	r.POST("/api/events", handlers.CaptureEvent(db))
	r.GET("/api/instagram", handlers.InstagramFeed(config.AppEnv.InstagramFeedURL, instagramCache))

	admin := r.Group("/api/admin")
	admin.Use(middleware.AdminAuth(config.AppEnv.JWTSecret))
	{
		admin.GET("/me", func(c *gin.Context) {
			c.JSON(200, gin.H{"ok": true})
		})

		admin.GET("/bouquets", handlers.GetAllBouquets(db))
		admin.POST("/bouquets", handlers.CreateBouquet(db))
		admin.PATCH("/bouquets/:id", handlers.UpdateBouquet(db))
		admin.DELETE("/bouquets/:id", handlers.DeleteBouquet(db))

		admin.GET("/collections", handlers.GetAllCollections(db))
		admin.POST("/collections", handlers.CreateCollection(db))
		admin.PATCH("/collections/:id", handlers.UpdateCollection(db))
		admin.DELETE("/collections/:id", handlers.DeleteCollection(db))

		admin.GET("/customers", handlers.GetCustomers(db))
		admin.POST("/customers", handlers.CreateCustomer(db))
		admin.PATCH("/customers/:id", handlers.UpdateCustomer(db))
		admin.DELETE("/customers/:id", handlers.DeleteCustomer(db))

		admin.POST("/uploads", handlers.UploadImage())
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r.Run(":" + port)
}

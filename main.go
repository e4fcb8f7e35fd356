package main

import (
	"log"
	"net/http"

	"github.com/forgeflow/forgeflow-api/config"
	"github.com/forgeflow/forgeflow-api/controllers"
	"github.com/forgeflow/forgeflow-api/middleware"
	"github.com/forgeflow/forgeflow-api/models"
	"github.com/forgeflow/forgeflow-api/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// Basic logging
	log.Println("Starting ForgeFlow Orders API server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database (PostgreSQL, or the in-memory fallback store
	// when DATABASE_URL is unset)
	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto-migrate database models
	db := config.GetDB()
	if err := db.AutoMigrate(&models.Order{}, &models.WorkshopSession{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	// Wire services. The file store decision happens once, here: with S3
	// configured uploads go to the bucket, without it a stub rejects them
	// with a clear error while file-less orders keep working.
	orderService := services.InitOrderService(db)
	services.InitSessionService(db, orderService)
	if cfg.IsStorageConfigured() {
		s3Service, err := services.InitS3Service()
		if err != nil {
			log.Fatalf("Failed to initialize S3 service: %v", err)
		}
		services.InitFileService(s3Service)
		log.Printf("File storage configured: bucket %q", cfg.AWSS3Bucket)
	} else {
		services.InitUnconfiguredFileService()
		log.Println("File storage not configured, uploads will be rejected")
	}

	// Initialize Gin router
	router := gin.Default()
	router.Use(cors.Default())

	registerRoutes(router)

	// Start server
	port := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", port)
	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// registerRoutes wires the role views onto the router: customer intake and
// tracker, the admin console, and the session-gated manufacturer workspace.
func registerRoutes(router *gin.Engine) {
	v1 := router.Group("/api/v1")
	{
		// Health check endpoint
		v1.GET("/health", healthCheck)

		// Database status endpoint
		v1.GET("/database/status", databaseStatus)

		// Customer routes
		v1.POST("/orders", controllers.CreateOrder)
		v1.GET("/orders", controllers.TrackOrders)

		// Admin routes
		admin := v1.Group("/admin")
		{
			admin.GET("/orders", controllers.ListAllOrders)
			admin.GET("/orders/stats", controllers.OrderStats)
			admin.PATCH("/orders/:id/status", controllers.UpdateOrderStatus)
			admin.PATCH("/orders/:id/manufacturer", controllers.AssignManufacturer)
		}

		// Manufacturer routes
		workshop := v1.Group("/workshop")
		{
			workshop.POST("/login", controllers.WorkshopLogin)
			workshop.GET("/session", controllers.WorkshopSession)
			workshop.POST("/logout", controllers.WorkshopLogout)

			gated := workshop.Group("")
			gated.Use(middleware.RequireWorkshopSession())
			{
				gated.GET("/orders", controllers.ListWorkshopOrders)
				gated.PATCH("/orders/:id/status", controllers.UpdateWorkshopOrderStatus)
			}
		}
	}
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "ForgeFlow Orders API is running",
	})
}

// databaseStatus checks database connectivity and returns table information
func databaseStatus(c *gin.Context) {
	db := config.GetDB()

	// Get the underlying SQL database to check connection
	sqlDB, err := db.DB()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to get database instance",
			},
		})
		return
	}

	// Ping the database to verify connection
	if err := sqlDB.Ping(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_CONNECTION_ERROR",
				"message": "Database connection failed",
			},
		})
		return
	}

	// List tables through the migrator so this works on both drivers
	tables, err := db.Migrator().GetTables()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_QUERY_ERROR",
				"message": "Failed to query tables",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Database connected",
		"tables":  tables,
	})
}

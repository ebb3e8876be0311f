package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/bookhaven/backend/internal/config"
	"github.com/bookhaven/backend/internal/handlers"
	"github.com/bookhaven/backend/internal/middleware"
	"github.com/bookhaven/backend/internal/models"
	"github.com/bookhaven/backend/internal/pkg/pdfrender"
	"github.com/bookhaven/backend/internal/services"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Initialize configuration
	cfg := config.New()

	// Initialize database
	db, err := models.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Run migrations
	if err := models.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize Redis
	redisClient := models.InitRedis(cfg)
	defer redisClient.Close()

	// Probe for a PDF rasterizer once at startup
	renderer, err := pdfrender.Detect()
	if err != nil {
		log.Fatalf("Failed to detect PDF renderer: %v", err)
	}

	// Initialize remote asset store
	assetStore, err := services.NewS3AssetStore(cfg)
	if err != nil {
		log.Fatalf("Failed to init asset store: %v", err)
	}

	scratch := services.NewScratchStore(cfg.ScratchPath)

	// Initialize services
	authService := services.NewAuthService(db, cfg)
	bookService := services.NewBookService(services.NewBookRepository(db), assetStore, renderer, scratch, cfg)
	blogService := services.NewBlogService(db, assetStore, scratch)
	galleryService := services.NewGalleryService(services.NewGalleryRepository(db), assetStore, scratch)
	commentService := services.NewCommentService(db)
	categoryService := services.NewCategoryService(db)
	contactService := services.NewContactService(db)
	storyService := services.NewStoryService(db)
	videoService := services.NewVideoService(db)
	visitorService := services.NewVisitorService(db)

	// Create admin user if not exists
	if err := authService.CreateDefaultAdmin(); err != nil {
		log.Printf("Failed to create default admin: %v", err)
	}

	// Setup Gin router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg))
	router.Use(middleware.RateLimiter(redisClient, cfg))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	bookHandler := handlers.NewBookHandler(bookService, scratch, cfg)
	blogHandler := handlers.NewBlogHandler(blogService, scratch, cfg)
	galleryHandler := handlers.NewGalleryHandler(galleryService, scratch, cfg)
	commentHandler := handlers.NewCommentHandler(commentService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	contactHandler := handlers.NewContactHandler(contactService)
	storyHandler := handlers.NewStoryHandler(storyService)
	videoHandler := handlers.NewVideoHandler(videoService)
	visitorHandler := handlers.NewVisitorHandler(visitorService)

	// Health check outside API group
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	// Setup routes
	api := router.Group("/api/v1")
	{
		// Catch-all OPTIONS handler for CORS preflight requests
		api.OPTIONS("/*path", func(c *gin.Context) {
			c.Status(http.StatusNoContent)
		})

		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
		}

		// Public routes
		api.GET("/visitor", visitorHandler.Increment)
		api.POST("/contact", contactHandler.Add)
		api.POST("/stories", storyHandler.Add)
		api.GET("/categories", categoryHandler.List)

		api.GET("/books", bookHandler.List)
		api.GET("/books/search", bookHandler.Search)
		api.GET("/books/category/:cat", bookHandler.ListByCategory)
		api.GET("/books/:id", bookHandler.GetByID)
		api.POST("/books/:id/comments", commentHandler.Add)
		api.GET("/books/:id/comments", commentHandler.ListByBook)

		api.GET("/blogs", blogHandler.List)
		api.GET("/gallery", galleryHandler.List)
		api.GET("/videos", videoHandler.List)

		// Admin routes
		admin := api.Group("/admin")
		admin.Use(middleware.Auth(cfg.JWTSecret))
		admin.Use(middleware.RoleRequired(models.RoleAdmin))
		{
			// Book management
			admin.POST("/books", bookHandler.Create)
			admin.PUT("/books/:id", bookHandler.Update)
			admin.DELETE("/books/:id", bookHandler.Delete)

			// Blog management
			admin.POST("/blogs", blogHandler.Create)
			admin.PUT("/blogs/:id", blogHandler.Update)
			admin.DELETE("/blogs/:id", blogHandler.Delete)

			// Gallery management
			admin.POST("/gallery", galleryHandler.UploadBatch)
			admin.DELETE("/gallery", galleryHandler.BulkDelete)

			// Comment moderation
			admin.GET("/comments", commentHandler.ListAll)
			admin.POST("/comments/:id/reply", commentHandler.Reply)
			admin.DELETE("/comments/:id", commentHandler.Delete)

			// Category management
			admin.POST("/categories", categoryHandler.Add)
			admin.PUT("/categories/:id", categoryHandler.Update)

			// Contact submissions
			admin.GET("/contacts", contactHandler.List)
			admin.DELETE("/contacts/:id", contactHandler.Delete)

			// Story submissions
			admin.GET("/stories", storyHandler.List)
			admin.DELETE("/stories/:id", storyHandler.Delete)

			// Video links
			admin.POST("/videos", videoHandler.Add)
			admin.GET("/videos", videoHandler.List)
			admin.DELETE("/videos/:id", videoHandler.Delete)
		}
	}

	// Start server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  120 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

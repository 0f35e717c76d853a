package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/devHarshShah/itinerary/internal/auth"
	"github.com/devHarshShah/itinerary/internal/config"
	"github.com/devHarshShah/itinerary/internal/database"
	"github.com/devHarshShah/itinerary/internal/handlers"
	"github.com/devHarshShah/itinerary/internal/logger"
	"github.com/devHarshShah/itinerary/internal/middleware"
	"github.com/devHarshShah/itinerary/internal/repository"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var Version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLog, err := logger.New(cfg.LogMode)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLog.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		appLog.Fatal("Failed to connect to database", "error", err)
	}
	defer pool.Close()

	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	err = database.InitSchema(ctx, pool)
	cancel()
	if err != nil {
		appLog.Fatal("Failed to initialize schema", "error", err)
	}

	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.JWTIssuer)
	itineraryRepo := repository.NewItineraryRepository(pool)

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(appLog))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	r.Use(cors.New(corsConfig))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		if err := database.Health(c.Request.Context(), pool); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "version": Version})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "version": Version})
	})

	// Version endpoint
	r.GET("/api/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"version": Version,
			"service": "itinerary-api",
		})
	})

	// Root endpoint
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Travel Itinerary API",
			"version": Version,
		})
	})

	// Auth routes
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", handlers.Register(pool))
		authGroup.POST("/login", handlers.Login(pool, jwtService))
		authGroup.GET("/me", middleware.RequireAuth(jwtService), handlers.GetMe(pool))
		authGroup.PUT("/me", middleware.RequireAuth(jwtService), handlers.UpdateMe(pool))
	}

	// Catalog routes: public reads, admin writes
	destinations := r.Group("/destinations")
	{
		destinations.GET("", handlers.ListDestinations(pool))
		destinations.GET("/:id", handlers.GetDestination(pool))
		destinations.POST("", middleware.RequireAuth(jwtService), middleware.RequireAdmin(), handlers.CreateDestination(pool))
		destinations.PUT("/:id", middleware.RequireAuth(jwtService), middleware.RequireAdmin(), handlers.UpdateDestination(pool))
		destinations.PATCH("/:id", middleware.RequireAuth(jwtService), middleware.RequireAdmin(), handlers.UpdateDestination(pool))
		destinations.DELETE("/:id", middleware.RequireAuth(jwtService), middleware.RequireAdmin(), handlers.DeleteDestination(pool))
	}

	accommodations := r.Group("/accommodations")
	{
		accommodations.GET("", handlers.ListAccommodations(pool))
		accommodations.GET("/:id", handlers.GetAccommodation(pool))
		accommodations.POST("", middleware.RequireAuth(jwtService), middleware.RequireAdmin(), handlers.CreateAccommodation(pool))
		accommodations.PUT("/:id", middleware.RequireAuth(jwtService), middleware.RequireAdmin(), handlers.UpdateAccommodation(pool))
		accommodations.PATCH("/:id", middleware.RequireAuth(jwtService), middleware.RequireAdmin(), handlers.UpdateAccommodation(pool))
		accommodations.DELETE("/:id", middleware.RequireAuth(jwtService), middleware.RequireAdmin(), handlers.DeleteAccommodation(pool))
	}

	activities := r.Group("/activities")
	{
		activities.GET("", handlers.ListActivities(pool))
		activities.GET("/:id", handlers.GetActivity(pool))
		activities.POST("", middleware.RequireAuth(jwtService), middleware.RequireAdmin(), handlers.CreateActivity(pool))
		activities.PUT("/:id", middleware.RequireAuth(jwtService), middleware.RequireAdmin(), handlers.UpdateActivity(pool))
		activities.PATCH("/:id", middleware.RequireAuth(jwtService), middleware.RequireAdmin(), handlers.UpdateActivity(pool))
		activities.DELETE("/:id", middleware.RequireAuth(jwtService), middleware.RequireAdmin(), handlers.DeleteActivity(pool))
	}

	transfers := r.Group("/transfers")
	{
		transfers.GET("", handlers.ListTransfers(pool))
		transfers.GET("/:id", handlers.GetTransfer(pool))
		transfers.POST("", middleware.RequireAuth(jwtService), middleware.RequireAdmin(), handlers.CreateTransfer(pool))
		transfers.PUT("/:id", middleware.RequireAuth(jwtService), middleware.RequireAdmin(), handlers.UpdateTransfer(pool))
		transfers.PATCH("/:id", middleware.RequireAuth(jwtService), middleware.RequireAdmin(), handlers.UpdateTransfer(pool))
		transfers.DELETE("/:id", middleware.RequireAuth(jwtService), middleware.RequireAdmin(), handlers.DeleteTransfer(pool))
	}

	// Itinerary routes: public reads, authenticated mutations
	itineraries := r.Group("/itineraries")
	{
		itineraries.GET("", middleware.OptionalAuth(jwtService), handlers.ListItineraries(itineraryRepo))
		itineraries.GET("/recommended", handlers.GetRecommendedItineraries(itineraryRepo))
		itineraries.GET("/me", middleware.RequireAuth(jwtService), handlers.GetMyItineraries(itineraryRepo))
		itineraries.GET("/:id", middleware.OptionalAuth(jwtService), handlers.GetItinerary(itineraryRepo))
		itineraries.GET("/by-uuid/:uuid", handlers.GetItineraryByUUID(itineraryRepo))

		itineraries.POST("", middleware.RequireAuth(jwtService), handlers.CreateItinerary(itineraryRepo))
		itineraries.PUT("/:id", middleware.RequireAuth(jwtService), handlers.UpdateItinerary(itineraryRepo))
		itineraries.PATCH("/:id", middleware.RequireAuth(jwtService), handlers.UpdateItinerary(itineraryRepo))
		itineraries.DELETE("/:id", middleware.RequireAuth(jwtService), handlers.DeleteItinerary(itineraryRepo))

		itineraries.POST("/:id/days", middleware.RequireAuth(jwtService), handlers.AddItineraryDay(itineraryRepo))
		itineraries.PUT("/:id/days/:day_number", middleware.RequireAuth(jwtService), handlers.UpdateItineraryDay(itineraryRepo))
		itineraries.DELETE("/:id/days/:day_number", middleware.RequireAuth(jwtService), handlers.DeleteItineraryDay(itineraryRepo))
	}

	// MCP routes
	mcp := r.Group("/mcp")
	{
		mcp.GET("/models", handlers.GetMCPModels())
		mcp.POST("/generate", handlers.GenerateMCPCompletion(itineraryRepo))
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: r,
	}

	go func() {
		appLog.Info("Server starting", "port", cfg.Port, "version", Version)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLog.Fatal("Failed to start server", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLog.Info("Server shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLog.Fatal("Server forced to shutdown", "error", err)
	}

	appLog.Info("Server exited")
}

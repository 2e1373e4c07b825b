package app

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"github.com/Vyomx1010/gatiyan-full-original-sub000/internal/handler"
	"github.com/Vyomx1010/gatiyan-full-original-sub000/internal/middleware"
	"github.com/Vyomx1010/gatiyan-full-original-sub000/internal/ws"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	RideHandler    *handler.RideHandler
	TripHandler    *handler.TripHandler
	AdminHandler   *handler.AdminHandler
	PaymentHandler *handler.PaymentHandler
	CaptainHandler *handler.CaptainHandler
	Hub            *ws.Hub
	RedisClient    *redis.Client
	NewRelicApp    *newrelic.Application
	JWTSecret      string
	AllowedOrigin  string
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORS(deps.AllowedOrigin))

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	if deps.RedisClient != nil {
		router.Use(middleware.Idempotency(deps.RedisClient))
	}

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Realtime channel. Handshake auth happens inside the handler so the
	// token can ride in the query string.
	router.GET("/ws", ws.ServeWS(deps.Hub, deps.JWTSecret))

	// API v1 routes.
	v1 := router.Group("/v1")
	{
		// Rider routes.
		rides := v1.Group("/rides", middleware.Auth(deps.JWTSecret, middleware.RoleRider, middleware.RoleAdmin))
		{
			rides.POST("", deps.RideHandler.CreateRide)
			rides.GET("", deps.RideHandler.ListRides)
			rides.GET("/fare", deps.RideHandler.EstimateFare)
			rides.GET("/:id", deps.RideHandler.GetRide)
			rides.POST("/:id/confirm", deps.RideHandler.ConfirmRide)
			rides.POST("/:id/cancel", deps.RideHandler.CancelRide)
		}

		// Captain routes.
		trips := v1.Group("/trips", middleware.Auth(deps.JWTSecret, middleware.RoleCaptain))
		{
			trips.POST("/start", deps.TripHandler.StartTrip)
			trips.POST("/end", deps.TripHandler.EndTrip)
		}

		captain := v1.Group("/captain", middleware.Auth(deps.JWTSecret, middleware.RoleCaptain))
		{
			captain.GET("/rides", deps.CaptainHandler.ListRides)
			captain.GET("/earnings", deps.CaptainHandler.Earnings)
		}

		// Dispatch console routes.
		admin := v1.Group("/admin", middleware.Auth(deps.JWTSecret, middleware.RoleAdmin))
		{
			admin.GET("/rides", deps.AdminHandler.ListRides)
			admin.POST("/rides/:id/assign", deps.AdminHandler.AssignRide)
			admin.POST("/rides/:id/status", deps.AdminHandler.UpdateStatus)
			admin.POST("/rides/:id/cash-paid", deps.AdminHandler.MarkCashPaid)
		}

		// Payment routes.
		payments := v1.Group("/payments", middleware.Auth(deps.JWTSecret, middleware.RoleRider, middleware.RoleAdmin))
		{
			payments.POST("/order", deps.PaymentHandler.CreateOrder)
			payments.POST("/verify", deps.PaymentHandler.VerifyPayment)
		}
	}

	return router
}

package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/Vyomx1010/gatiyan-full-original-sub000/internal/app"
	"github.com/Vyomx1010/gatiyan-full-original-sub000/internal/config"
	"github.com/Vyomx1010/gatiyan-full-original-sub000/internal/gateway"
	"github.com/Vyomx1010/gatiyan-full-original-sub000/internal/handler"
	"github.com/Vyomx1010/gatiyan-full-original-sub000/internal/maps"
	internalRedis "github.com/Vyomx1010/gatiyan-full-original-sub000/internal/redis"
	"github.com/Vyomx1010/gatiyan-full-original-sub000/internal/repository/postgres"
	"github.com/Vyomx1010/gatiyan-full-original-sub000/internal/service"
	"github.com/Vyomx1010/gatiyan-full-original-sub000/internal/ws"
)

func main() {
	cfg := config.Load()
	log := newLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// New Relic comes up first so the DB and redis clients can be
	// instrumented.
	var nrApp *newrelic.Application
	var err error
	if cfg.NewRelic.Enabled && cfg.NewRelic.LicenseKey != "" {
		nrApp, err = newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.NewRelic.AppName),
			newrelic.ConfigLicense(cfg.NewRelic.LicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
			newrelic.ConfigAppLogForwardingEnabled(true),
		)
		if err != nil {
			log.WithError(err).Warn("failed to initialize New Relic")
		} else {
			log.WithField("app", cfg.NewRelic.AppName).Info("New Relic enabled")
		}
	}

	db, err := app.NewDatabase(ctx, cfg.Database, nrApp)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}
	defer db.Close()
	log.Info("connected to PostgreSQL")

	redisClient, err := app.NewRedisClient(ctx, cfg.Redis, nrApp)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info("connected to Redis")

	server, hub := wireServer(db, redisClient, nrApp, cfg, log)

	go hub.Run()

	go func() {
		log.WithField("port", cfg.Server.Port).Info("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("server error")
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Fatal("server forced to shutdown")
	}

	log.Info("server exited")
}

func newLogger(cfg config.LogConfig) *logrus.Logger {
	log := logrus.New()
	if cfg.JSON {
		log.SetFormatter(&logrus.JSONFormatter{})
	}
	if level, err := logrus.ParseLevel(cfg.Level); err == nil {
		log.SetLevel(level)
	}
	return log
}

// wireServer wires all dependencies and returns the HTTP server and the hub.
func wireServer(db *sql.DB, redisClient *redis.Client, nrApp *newrelic.Application, cfg *config.Config, log *logrus.Logger) (*http.Server, *ws.Hub) {
	// Redis stores.
	locationStore := internalRedis.NewLocationStore(redisClient)
	lockStore := internalRedis.NewLockStore(redisClient)

	// Repositories.
	rideRepo := postgres.NewRideRepository(db)
	captainRepo := postgres.NewCaptainRepository(db)
	riderRepo := postgres.NewRiderRepository(db)
	paymentRepo := postgres.NewPaymentRepository(db)

	// Route resolution is optional: without an API key fare estimates fail
	// cleanly instead of guessing distances.
	var resolver service.RouteResolver
	if cfg.Maps.APIKey != "" {
		routeService, err := maps.NewRouteService(cfg.Maps.APIKey)
		if err != nil {
			log.WithError(err).Warn("route resolution disabled")
		} else {
			resolver = routeService
		}
	}

	var gw gateway.Gateway
	if cfg.Razorpay.KeyID != "" {
		gw = gateway.NewRazorpayGateway(cfg.Razorpay.KeyID, cfg.Razorpay.KeySecret, "INR")
	}

	var mailer service.Mailer
	if cfg.SMTP.Host != "" {
		mailer = service.NewSMTPMailer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From)
	}

	// Services. The hub doubles as the notifier.
	locationService := service.NewLocationService(captainRepo, locationStore, log)
	hub := ws.NewHub(locationService, log)

	fareService := service.NewFareService(resolver)
	rideService := service.NewRideService(rideRepo, fareService, hub, log)
	dispatchService := service.NewDispatchService(rideRepo, captainRepo, riderRepo, lockStore, hub, mailer, log)
	tripService := service.NewTripService(rideRepo, hub, log)
	paymentService := service.NewPaymentService(rideRepo, paymentRepo, gw, hub, log)
	earningsService := service.NewEarningsService(rideRepo)

	// Handlers.
	rideHandler := handler.NewRideHandler(rideService, fareService)
	tripHandler := handler.NewTripHandler(tripService)
	adminHandler := handler.NewAdminHandler(rideService, dispatchService, paymentService)
	paymentHandler := handler.NewPaymentHandler(paymentService)
	captainHandler := handler.NewCaptainHandler(rideService, earningsService)

	router := app.NewRouter(app.RouterDeps{
		RideHandler:    rideHandler,
		TripHandler:    tripHandler,
		AdminHandler:   adminHandler,
		PaymentHandler: paymentHandler,
		CaptainHandler: captainHandler,
		Hub:            hub,
		RedisClient:    redisClient,
		NewRelicApp:    nrApp,
		JWTSecret:      cfg.Auth.JWTSecret,
		AllowedOrigin:  cfg.Server.AllowedOrigin,
	})

	return &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}, hub
}

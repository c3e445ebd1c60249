package main

import (
	"log"

	"github.com/capecharters/charter-api/config"
	"github.com/capecharters/charter-api/internal/handler"
	"github.com/capecharters/charter-api/internal/middleware"
	"github.com/capecharters/charter-api/internal/repository"
	"github.com/capecharters/charter-api/internal/service"
	"github.com/capecharters/charter-api/pkg/database"
	"github.com/capecharters/charter-api/pkg/rabbitmq"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
)

func main() {
	cfg := config.Load()

	db := database.NewPostgresDB(cfg.DSN())

	// Booking lifecycle events for back-office consumers; optional.
	var publisher *rabbitmq.Publisher
	if cfg.RabbitURL != "" {
		var err error
		publisher, err = rabbitmq.NewPublisher(cfg.RabbitURL)
		if err != nil {
			log.Fatalf("failed to connect to RabbitMQ: %v", err)
		}
		defer publisher.Close()
	} else {
		log.Println("RABBITMQ_URL not set, booking events disabled")
	}

	// Repositories
	packageRepo := repository.NewPackageRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	bookingRepo := repository.NewBookingRepository(db)

	// Services
	packageSvc := service.NewPackageService(packageRepo)
	customerSvc := service.NewCustomerService(customerRepo)
	bookingSvc := service.NewBookingService(bookingRepo, packageRepo, publisher)

	// Echo
	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Validator = handler.NewValidator()
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			log.Printf("%s %s %d", v.Method, v.URI, v.Status)
			return nil
		},
	}))
	e.Use(echoMw.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok", "service": "charter-api"})
	})

	auth := middleware.Auth(cfg.AuthSecret, customerSvc)
	optionalAuth := middleware.OptionalAuth(cfg.AuthSecret, customerSvc)

	bookings := e.Group("/api/v1/bookings", auth)
	handler.NewBookingHandler(bookingSvc).RegisterRoutes(bookings)

	packages := e.Group("/api/v1/packages", optionalAuth)
	handler.NewPackageHandler(packageSvc).RegisterRoutes(packages)

	if cfg.WebhookSecret != "" {
		webhookHandler, err := handler.NewWebhookHandler(customerSvc, cfg.WebhookSecret)
		if err != nil {
			log.Fatalf("failed to init webhook verifier: %v", err)
		}
		webhookHandler.RegisterRoutes(e.Group("/api/v1/webhooks"))
	} else {
		log.Println("IDENTITY_WEBHOOK_SECRET not set, identity webhook disabled")
	}

	log.Printf("Charter API starting on :%s", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}

// File: wellnest/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wellnest/config"
	"wellnest/cron"
	"wellnest/database"
	appointmentRepo "wellnest/database/repository/appointment"
	clientRepoPkg "wellnest/database/repository/client"
	providerRepoPkg "wellnest/database/repository/provider"
	"wellnest/handlers"
	"wellnest/middleware"
	"wellnest/routes"
	"wellnest/services/booking"
	"wellnest/services/notification"
	"wellnest/services/schedule"
	"wellnest/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()
	utils.FirebaseInit()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	provRepo := providerRepoPkg.NewMongoProviderRepo()
	clientRepo := clientRepoPkg.NewMongoClientRepo()
	apptRepo := appointmentRepo.NewMongoAppointmentRepo()

	// services.
	notificationService, err := notification.NewDefaultNotificationService(clientRepo, provRepo)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize notification service: %v", err)
	}

	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})
	defer asynqClient.Close()

	schedulingEngine := &booking.DefaultSchedulingEngine{
		ProviderRepo:    provRepo,
		AppointmentRepo: apptRepo,
		Cache:           utils.GetCacheClient(),
	}

	scheduleService := &schedule.DefaultScheduleService{
		Repo:  provRepo,
		Cache: utils.GetCacheClient(),
	}

	bookingService := &booking.DefaultBookingService{
		Providers:       provRepo,
		Appointments:    apptRepo,
		NotificationSvc: notificationService,
		AsynqClient:     asynqClient,
	}

	// Background reminder worker.
	cron.InitReminderWorker(notificationService)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		ProviderRepo: provRepo,
		ClientRepo:   clientRepo,
		Availability: handlers.NewAvailabilityHandler(schedulingEngine),
		Schedule:     handlers.NewScheduleHandler(scheduleService),
		Booking:      handlers.NewBookingHandler(bookingService, logger),
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}

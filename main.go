// File: carewell/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"carewell/config"
	"carewell/cron"
	"carewell/database"
	appointmentRepo "carewell/database/repository/appointment"
	directoryRepo "carewell/database/repository/directory"
	scheduleRepo "carewell/database/repository/schedule"
	"carewell/handlers"
	"carewell/middleware"
	"carewell/routes"
	"carewell/services/appointment"
	"carewell/services/directory"
	"carewell/services/scheduling"
	"carewell/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	schedRepo := scheduleRepo.NewMongoScheduleRepo()
	apptRepo := appointmentRepo.NewMongoAppointmentRepo()
	dirRepo := directoryRepo.NewMongoDirectoryRepo()

	// services.
	availabilityService := &scheduling.DefaultAvailabilityService{
		Schedule: schedRepo,
		Cache:    utils.GetCacheClient(),
		CacheTTL: time.Duration(config.AppConfig.AvailabilityCacheTTL) * time.Second,
	}

	reminderScheduler := cron.NewReminderScheduler()
	appointmentService := &appointment.DefaultAppointmentService{
		Repo:         apptRepo,
		Schedule:     schedRepo,
		Directory:    dirRepo,
		Availability: availabilityService,
		Reminders:    reminderScheduler,
	}

	directoryService := &directory.DefaultDirectoryService{
		Repo: dirRepo,
	}

	appointmentHandler := handlers.NewAppointmentHandler(appointmentService, logger)
	availabilityHandler := handlers.NewAvailabilityHandler(availabilityService)
	directoryHandler := handlers.NewDirectoryHandler(directoryService, schedRepo, availabilityService)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		StatsHandler:      appointmentHandler.StatsHandler,
		UpcomingHandler:   appointmentHandler.UpcomingHandler,
		PastHandler:       appointmentHandler.PastHandler,
		BookHandler:       appointmentHandler.BookHandler,
		RescheduleHandler: appointmentHandler.RescheduleHandler,
		CancelHandler:     appointmentHandler.CancelHandler,

		AvailableSlotsRangeHandler: availabilityHandler.RangeHandler,

		ListBranchesHandler:    directoryHandler.ListBranchesHandler,
		ListDepartmentsHandler: directoryHandler.ListDepartmentsHandler,
		ListDoctorsHandler:     directoryHandler.ListDoctorsHandler,
		SetScheduleHandler:     directoryHandler.SetScheduleHandler,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Background workers and monitors.
	cron.InitReminderWorker(apptRepo)
	utils.StartHealthMonitor(
		[]*redis.Client{utils.GetCacheClient(), utils.GetAuthCacheClient()},
		database.MongoClient,
	)

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

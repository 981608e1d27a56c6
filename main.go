package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"

	"github.com/rahul-s-rajput/voyageur-nest-sub004/config"
	"github.com/rahul-s-rajput/voyageur-nest-sub004/cron"
	"github.com/rahul-s-rajput/voyageur-nest-sub004/database"
	reservationRepo "github.com/rahul-s-rajput/voyageur-nest-sub004/database/repository/reservation"
	roomRepo "github.com/rahul-s-rajput/voyageur-nest-sub004/database/repository/room"
	"github.com/rahul-s-rajput/voyageur-nest-sub004/handlers"
	"github.com/rahul-s-rajput/voyageur-nest-sub004/middleware"
	"github.com/rahul-s-rajput/voyageur-nest-sub004/routes"
	"github.com/rahul-s-rajput/voyageur-nest-sub004/services/booking"
	"github.com/rahul-s-rajput/voyageur-nest-sub004/services/dialog"
	"github.com/rahul-s-rajput/voyageur-nest-sub004/services/notification"
	"github.com/rahul-s-rajput/voyageur-nest-sub004/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitSessionCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	roomsRepo := roomRepo.NewMongoRoomRepo()
	resRepo := reservationRepo.NewMongoReservationRepo()

	// async task client for post-commit fan-out.
	taskClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer taskClient.Close()

	// services.
	engine := &booking.DefaultReservationEngine{
		Rooms:           roomsRepo,
		Reservations:    resRepo,
		DefaultCapacity: config.AppConfig.DefaultRoomCapacity,
		TaskClient:      taskClient,
	}

	sessionTTL := time.Duration(config.AppConfig.SessionTTLMinutes) * time.Minute
	sessionStore := dialog.NewRedisSessionStore(utils.GetSessionCacheClient(), sessionTTL)

	dialogService := &dialog.DefaultDialogService{
		Store:        sessionStore,
		Engine:       engine,
		Reservations: resRepo,
	}

	notifyService := &notification.DefaultNotificationService{}
	cron.InitNotifyWorker(notifyService)

	utils.StartHealthMonitor(
		[]*redis.Client{utils.GetSessionCacheClient()},
		database.MongoClient,
	)

	// Assemble the handler bundle.
	handlerBundle := &routes.HandlerBundle{
		Dialog:      handlers.NewDialogHandler(dialogService, logger),
		Reservation: handlers.NewReservationHandler(engine, resRepo),
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

package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/rahul-s-rajput/voyageur-nest-sub004/handlers"
)

// HandlerBundle carries the wired handlers for route registration.
type HandlerBundle struct {
	Dialog      *handlers.DialogHandler
	Reservation *handlers.ReservationHandler
}

// RegisterChatRoutes registers the messaging-transport webhook.
func RegisterChatRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/chat")
	{
		api.POST("/message", hb.Dialog.HandleMessage)
	}
}

// RegisterReservationRoutes registers read-side reservation endpoints.
func RegisterReservationRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/reservations")
	{
		api.GET("/id/:id", hb.Reservation.GetReservationByID)
		api.GET("/availability", hb.Reservation.GetAvailability)
		api.POST("/id/:id/cancel", hb.Reservation.CancelReservation)
	}
}

// RegisterHealthRoute registers the operator health endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", handlers.HealthHandler)
}

// RegisterRoutes sets up CORS and registers all endpoints.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterChatRoutes(r, hb)
	RegisterReservationRoutes(r, hb)
	RegisterHealthRoute(r)
}

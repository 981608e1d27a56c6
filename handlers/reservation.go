package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	reservationRepo "github.com/rahul-s-rajput/voyageur-nest-sub004/database/repository/reservation"
	"github.com/rahul-s-rajput/voyageur-nest-sub004/models"
	"github.com/rahul-s-rajput/voyageur-nest-sub004/services/booking"
)

// ReservationHandler exposes read-side endpoints for committed reservations
// and current availability. All writes go through the dialogue engine.
type ReservationHandler struct {
	Engine booking.ReservationEngine
	Repo   reservationRepo.ReservationRepository
}

func NewReservationHandler(engine booking.ReservationEngine, repo reservationRepo.ReservationRepository) *ReservationHandler {
	return &ReservationHandler{Engine: engine, Repo: repo}
}

// GetReservationByID returns one reservation record.
func (h *ReservationHandler) GetReservationByID(c *gin.Context) {
	id := c.Param("id")
	res, err := h.Repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "reservation not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load reservation"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reservation": res})
}

// CancelReservation flips the cancelled flag on a reservation, releasing its
// interval for future availability checks.
func (h *ReservationHandler) CancelReservation(c *gin.Context) {
	id := c.Param("id")
	if err := h.Repo.Cancel(c.Request.Context(), id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "reservation not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to cancel reservation"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"cancelled": true, "id": id})
}

// GetAvailability returns the rooms free over a date interval.
func (h *ReservationHandler) GetAvailability(c *gin.Context) {
	q := models.AvailabilityQuery{
		PropertyID:           c.Query("propertyId"),
		CheckIn:              c.Query("checkIn"),
		CheckOut:             c.Query("checkOut"),
		ExcludeReservationID: c.Query("excludeReservationId"),
	}
	if q.PropertyID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "propertyId is required"})
		return
	}

	rooms, err := h.Engine.ResolveAvailability(c.Request.Context(), q)
	if err != nil {
		if errors.Is(err, booking.ErrInvalidInterval) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve availability"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"rooms": rooms})
}

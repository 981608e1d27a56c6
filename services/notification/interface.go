package notification

import (
	"context"

	"go.uber.org/zap"

	"github.com/rahul-s-rajput/voyageur-nest-sub004/models"
	"github.com/rahul-s-rajput/voyageur-nest-sub004/utils"
)

// NotificationService receives the fan-out after a reservation commit.
// Actual delivery (guest messages, operator alerts, document rendering) is
// owned by downstream collaborators; the engine never blocks on it.
type NotificationService interface {
	NotifyReservationCommitted(ctx context.Context, payload models.ReservationNotifyPayload) error
}

// DefaultNotificationService logs the event. Deployments replace it with a
// real delivery integration.
type DefaultNotificationService struct{}

func (s *DefaultNotificationService) NotifyReservationCommitted(ctx context.Context, payload models.ReservationNotifyPayload) error {
	utils.GetLogger().Info("reservation notification",
		zap.String("reservationID", payload.ReservationID),
		zap.String("guestName", payload.GuestName),
		zap.String("roomNo", payload.RoomNo),
		zap.String("checkIn", payload.CheckIn),
		zap.String("checkOut", payload.CheckOut),
		zap.Bool("updated", payload.Updated))
	return nil
}

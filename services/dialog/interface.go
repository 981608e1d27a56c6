package dialog

import (
	"context"

	reservationRepo "github.com/rahul-s-rajput/voyageur-nest-sub004/database/repository/reservation"
	"github.com/rahul-s-rajput/voyageur-nest-sub004/models"
	"github.com/rahul-s-rajput/voyageur-nest-sub004/services/booking"
)

// DialogService drives the reservation dialogue. One call per inbound user
// input: the input either fully completes its step transition or is rejected
// synchronously with a reprompt. The service is independent of the messaging
// transport.
type DialogService interface {
	HandleInput(ctx context.Context, ev models.InputEvent) (*models.Prompt, error)
}

// DefaultDialogService implements DialogService.
type DefaultDialogService struct {
	Store        SessionStore
	Engine       booking.ReservationEngine
	Reservations reservationRepo.ReservationRepository
}

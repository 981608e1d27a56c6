package booking

import (
	"context"

	"github.com/hibiken/asynq"

	reservationRepo "github.com/rahul-s-rajput/voyageur-nest-sub004/database/repository/reservation"
	roomRepo "github.com/rahul-s-rajput/voyageur-nest-sub004/database/repository/room"
	"github.com/rahul-s-rajput/voyageur-nest-sub004/models"
)

// ReservationEngine ties availability resolution, capacity validation and the
// commit path together. The dialogue calls it for UX hints during the flow and
// authoritatively at commit time.
type ReservationEngine interface {
	// ResolveAvailability returns the rooms of the property with no overlapping
	// non-cancelled reservation over the query interval, in stable order.
	ResolveAvailability(ctx context.Context, q models.AvailabilityQuery) ([]models.RoomOption, error)

	// RoomCapacity returns the room's maximum occupancy, falling back to the
	// configured default when the room record cannot be read.
	RoomCapacity(ctx context.Context, propertyID, roomID string) int

	// ValidateOccupancy reports whether an adult/child split fits a capacity.
	ValidateOccupancy(adults, children, capacity int) bool

	// Commit re-validates availability and capacity, then inserts a new
	// reservation or updates the one named by the draft's EditTargetID.
	Commit(ctx context.Context, draft models.ReservationDraft) (*models.Reservation, error)
}

// DefaultReservationEngine implements ReservationEngine.
type DefaultReservationEngine struct {
	Rooms        roomRepo.RoomRepository
	Reservations reservationRepo.ReservationRepository

	// DefaultCapacity is used when room metadata cannot be read. Degraded, not
	// fatal: the booking flow should not hard-fail on missing metadata.
	DefaultCapacity int

	// TaskClient enqueues post-commit notification fan-out. Optional; the
	// commit path never blocks on it.
	TaskClient *asynq.Client
}

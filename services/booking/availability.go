package booking

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/rahul-s-rajput/voyageur-nest-sub004/models"
	"github.com/rahul-s-rajput/voyageur-nest-sub004/utils"
)

// ResolveAvailability computes the rooms free over [q.CheckIn, q.CheckOut).
// The reservation named by q.ExcludeReservationID is ignored so an edited
// reservation never conflicts with itself. Room order follows the repository's
// stable room-number ordering, so unchanged data yields a repeatable list.
func (e *DefaultReservationEngine) ResolveAvailability(ctx context.Context, q models.AvailabilityQuery) ([]models.RoomOption, error) {
	if err := validateInterval(q.CheckIn, q.CheckOut); err != nil {
		return nil, err
	}

	rooms, err := e.Rooms.GetByPropertyID(ctx, q.PropertyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load rooms for property %s: %w", q.PropertyID, err)
	}

	overlapping, err := e.Reservations.GetOverlapping(ctx, q.PropertyID, q.CheckIn, q.CheckOut)
	if err != nil {
		return nil, fmt.Errorf("failed to load overlapping reservations: %w", err)
	}

	busy := make(map[string]bool, len(overlapping))
	for _, res := range overlapping {
		if q.ExcludeReservationID != "" && res.ID == q.ExcludeReservationID {
			continue
		}
		busy[res.RoomID] = true
	}

	available := make([]models.RoomOption, 0, len(rooms))
	for _, room := range rooms {
		if busy[room.ID] {
			continue
		}
		available = append(available, models.RoomOption{
			RoomID:   room.ID,
			RoomNo:   room.RoomNo,
			RoomType: room.RoomType,
		})
	}

	utils.GetLogger().Debug("availability resolved",
		zap.String("propertyID", q.PropertyID),
		zap.String("checkIn", q.CheckIn),
		zap.String("checkOut", q.CheckOut),
		zap.String("exclude", q.ExcludeReservationID),
		zap.Int("available", len(available)))
	return available, nil
}

// validateInterval enforces a well-formed half-open interval. The dialogue
// rejects bad intervals before calling the resolver, but raw API callers can
// send anything.
func validateInterval(checkIn, checkOut string) error {
	if _, err := time.Parse(models.DateLayout, checkIn); err != nil {
		return fmt.Errorf("invalid check-in date %q: %w", checkIn, ErrInvalidInterval)
	}
	if _, err := time.Parse(models.DateLayout, checkOut); err != nil {
		return fmt.Errorf("invalid check-out date %q: %w", checkOut, ErrInvalidInterval)
	}
	if checkOut <= checkIn {
		return ErrInvalidInterval
	}
	return nil
}

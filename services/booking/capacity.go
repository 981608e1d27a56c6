package booking

import (
	"context"

	"go.uber.org/zap"

	"github.com/rahul-s-rajput/voyageur-nest-sub004/utils"
)

// FallbackRoomCapacity is used when no default is configured on the engine.
const FallbackRoomCapacity = 6

// RoomCapacity returns the maximum occupancy of a room. When the room record
// cannot be read the configured default is returned instead, logged at Warn:
// the flow should degrade, not hard-fail, on missing capacity metadata.
func (e *DefaultReservationEngine) RoomCapacity(ctx context.Context, propertyID, roomID string) int {
	fallback := e.DefaultCapacity
	if fallback <= 0 {
		fallback = FallbackRoomCapacity
	}

	room, err := e.Rooms.GetByID(ctx, propertyID, roomID)
	if err != nil {
		utils.GetLogger().Warn("room capacity unavailable, using default",
			zap.String("propertyID", propertyID),
			zap.String("roomID", roomID),
			zap.Int("default", fallback),
			zap.Error(err))
		return fallback
	}
	if room.MaxOccupancy <= 0 {
		utils.GetLogger().Warn("room has no occupancy limit set, using default",
			zap.String("roomID", roomID),
			zap.Int("default", fallback))
		return fallback
	}
	return room.MaxOccupancy
}

// ValidateOccupancy reports whether the adult/child split fits the capacity.
// The dialogue only offers legal choices, but every accepted value is
// re-validated here regardless of how it arrived.
func (e *DefaultReservationEngine) ValidateOccupancy(adults, children, capacity int) bool {
	if adults < 1 || children < 0 {
		return false
	}
	return adults+children <= capacity
}

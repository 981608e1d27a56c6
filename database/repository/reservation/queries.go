// File: database/repository/reservation/queries.go
package reservationRepo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rahul-s-rajput/voyageur-nest-sub004/models"
)

// GetOverlapping finds non-cancelled reservations whose interval overlaps
// [checkIn, checkOut). Dates are stored as YYYY-MM-DD strings, which order
// lexicographically, so [a,b) overlaps [c,d) iff a < d && c < b holds on the
// raw strings.
func (r *mongoReservationRepo) GetOverlapping(ctx context.Context, propertyID, checkIn, checkOut string) ([]models.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"property_id": propertyID,
		"cancelled":   false,
		"check_in":    bson.M{"$lt": checkOut},
		"check_out":   bson.M{"$gt": checkIn},
	}
	opts := options.Find().SetSort(bson.D{{Key: "check_in", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var reservations []models.Reservation
	if err := cursor.All(ctx, &reservations); err != nil {
		return nil, err
	}
	return reservations, nil
}

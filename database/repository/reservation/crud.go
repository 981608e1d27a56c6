// File: database/repository/reservation/crud.go
package reservationRepo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/rahul-s-rajput/voyageur-nest-sub004/models"
)

func (r *mongoReservationRepo) GetByID(ctx context.Context, id string) (*models.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": id}
	var res models.Reservation
	if err := r.coll.FindOne(ctx, filter).Decode(&res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *mongoReservationRepo) Insert(ctx context.Context, res *models.Reservation) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if res.ID == "" {
		res.ID = uuid.New().String()
	}
	now := time.Now()
	res.CreatedAt = now
	res.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, res)
	return err
}

func (r *mongoReservationRepo) Update(ctx context.Context, res *models.Reservation) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res.UpdatedAt = time.Now()
	update := bson.M{"$set": bson.M{
		"room_id":    res.RoomID,
		"room_no":    res.RoomNo,
		"guest_name": res.GuestName,
		"check_in":   res.CheckIn,
		"check_out":  res.CheckOut,
		"adults":     res.Adults,
		"children":   res.Children,
		"amount":     res.Amount,
		"status":     res.Status,
		"updated_at": res.UpdatedAt,
	}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": res.ID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *mongoReservationRepo) Cancel(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"cancelled": true, "updated_at": time.Now()}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// File: database/repository/room/crud.go
package roomRepo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rahul-s-rajput/voyageur-nest-sub004/models"
)

func (r *mongoRoomRepo) GetByPropertyID(ctx context.Context, propertyID string) ([]models.Room, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"property_id": propertyID}
	opts := options.Find().SetSort(bson.D{{Key: "room_no", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rooms []models.Room
	if err := cursor.All(ctx, &rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}

func (r *mongoRoomRepo) GetByID(ctx context.Context, propertyID, roomID string) (*models.Room, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"property_id": propertyID, "id": roomID}
	var room models.Room
	if err := r.coll.FindOne(ctx, filter).Decode(&room); err != nil {
		return nil, err
	}
	return &room, nil
}

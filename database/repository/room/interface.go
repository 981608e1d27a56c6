// File: database/repository/room/interface.go
package roomRepo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/rahul-s-rajput/voyageur-nest-sub004/config"
	"github.com/rahul-s-rajput/voyageur-nest-sub004/database"
	"github.com/rahul-s-rajput/voyageur-nest-sub004/models"
)

// RoomRepository exposes the room reads the reservation engine depends on.
type RoomRepository interface {
	// GetByPropertyID returns all rooms of a property ordered by room number,
	// so repeated availability calls present rooms in a stable order.
	GetByPropertyID(ctx context.Context, propertyID string) ([]models.Room, error)
	GetByID(ctx context.Context, propertyID, roomID string) (*models.Room, error)
}

type mongoRoomRepo struct {
	coll *mongo.Collection
}

// NewMongoRoomRepo constructs a new MongoDB RoomRepository.
func NewMongoRoomRepo() RoomRepository {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	return &mongoRoomRepo{
		coll: db.Collection("rooms"),
	}
}

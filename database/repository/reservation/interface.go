// File: database/repository/reservation/interface.go
package reservationRepo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/rahul-s-rajput/voyageur-nest-sub004/config"
	"github.com/rahul-s-rajput/voyageur-nest-sub004/database"
	"github.com/rahul-s-rajput/voyageur-nest-sub004/models"
	"github.com/rahul-s-rajput/voyageur-nest-sub004/utils"
)

// ReservationRepository is the sole write path for reservation records.
type ReservationRepository interface {
	GetByID(ctx context.Context, id string) (*models.Reservation, error)
	// GetOverlapping returns non-cancelled reservations of the property whose
	// half-open [check_in, check_out) interval overlaps the given one.
	GetOverlapping(ctx context.Context, propertyID, checkIn, checkOut string) ([]models.Reservation, error)
	Insert(ctx context.Context, res *models.Reservation) error
	Update(ctx context.Context, res *models.Reservation) error
	// Cancel flips the cancelled flag, releasing the interval for future
	// availability checks.
	Cancel(ctx context.Context, id string) error
}

type mongoReservationRepo struct {
	coll *mongo.Collection
}

// NewMongoReservationRepo constructs a new MongoDB ReservationRepository.
func NewMongoReservationRepo() ReservationRepository {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	repo := &mongoReservationRepo{
		coll: db.Collection("reservations"),
	}
	if err := repo.EnsureIndexes(); err != nil {
		utils.GetLogger().Warn("failed to ensure reservation indexes", zap.Error(err))
	}
	return repo
}

// File: database/repository/reservation/memory.go
package reservationRepo

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/rahul-s-rajput/voyageur-nest-sub004/models"
)

// memoryReservationRepo is an in-memory ReservationRepository for local
// development and tests.
type memoryReservationRepo struct {
	mu           sync.RWMutex
	reservations map[string]models.Reservation
}

// NewMemoryReservationRepo constructs an in-memory ReservationRepository.
func NewMemoryReservationRepo(seed ...models.Reservation) ReservationRepository {
	m := &memoryReservationRepo{reservations: make(map[string]models.Reservation, len(seed))}
	for _, res := range seed {
		m.reservations[res.ID] = res
	}
	return m
}

func (r *memoryReservationRepo) GetByID(ctx context.Context, id string) (*models.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	res, ok := r.reservations[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return &res, nil
}

func (r *memoryReservationRepo) GetOverlapping(ctx context.Context, propertyID, checkIn, checkOut string) ([]models.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.Reservation
	for _, res := range r.reservations {
		if res.PropertyID != propertyID || res.Cancelled {
			continue
		}
		if res.Overlaps(checkIn, checkOut) {
			out = append(out, res)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CheckIn < out[j].CheckIn })
	return out, nil
}

func (r *memoryReservationRepo) Insert(ctx context.Context, res *models.Reservation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if res.ID == "" {
		res.ID = uuid.New().String()
	}
	now := time.Now()
	res.CreatedAt = now
	res.UpdatedAt = now
	r.reservations[res.ID] = *res
	return nil
}

func (r *memoryReservationRepo) Update(ctx context.Context, res *models.Reservation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.reservations[res.ID]; !ok {
		return mongo.ErrNoDocuments
	}
	res.UpdatedAt = time.Now()
	r.reservations[res.ID] = *res
	return nil
}

func (r *memoryReservationRepo) Cancel(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	res, ok := r.reservations[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	res.Cancelled = true
	res.UpdatedAt = time.Now()
	r.reservations[id] = res
	return nil
}

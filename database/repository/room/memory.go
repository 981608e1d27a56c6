// File: database/repository/room/memory.go
package roomRepo

import (
	"context"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/rahul-s-rajput/voyageur-nest-sub004/models"
)

// memoryRoomRepo is an in-memory RoomRepository for local development and tests.
type memoryRoomRepo struct {
	mu    sync.RWMutex
	rooms map[string]models.Room // keyed by room ID
}

// NewMemoryRoomRepo constructs an in-memory RoomRepository seeded with rooms.
func NewMemoryRoomRepo(rooms ...models.Room) RoomRepository {
	m := &memoryRoomRepo{rooms: make(map[string]models.Room, len(rooms))}
	for _, room := range rooms {
		m.rooms[room.ID] = room
	}
	return m
}

func (r *memoryRoomRepo) GetByPropertyID(ctx context.Context, propertyID string) ([]models.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.Room
	for _, room := range r.rooms {
		if room.PropertyID == propertyID {
			out = append(out, room)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RoomNo < out[j].RoomNo })
	return out, nil
}

func (r *memoryRoomRepo) GetByID(ctx context.Context, propertyID, roomID string) (*models.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	room, ok := r.rooms[roomID]
	if !ok || room.PropertyID != propertyID {
		return nil, mongo.ErrNoDocuments
	}
	return &room, nil
}

package store

import (
	"sort"
	"strings"
	"sync"

	"github.com/samber/lo"

	"github.com/cocoa-beans/simple-node-backend/internal/models"
)

var _ RoomStore = (*Registry)(nil)

// Registry holds all rooms in process memory.
// Room ids start at 0 and are never reused.
type Registry struct {
	mu         sync.RWMutex
	rooms      map[int]*models.Room
	nextRoomID int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{rooms: make(map[int]*models.Room)}
}

// CreateRoom allocates the next id and stores a new room. Names need not be unique.
func (r *Registry) CreateRoom(name string) *models.Room {
	r.mu.Lock()
	defer r.mu.Unlock()

	room := models.NewRoom(r.nextRoomID, name)
	r.nextRoomID++
	r.rooms[room.ID] = room
	return room
}

// FindRoomsByName returns rooms whose name contains substring, ignoring case.
func (r *Registry) FindRoomsByName(substring string) []*models.Room {
	needle := strings.ToLower(substring)
	return lo.Filter(r.ordered(), func(room *models.Room, _ int) bool {
		return strings.Contains(strings.ToLower(room.Name), needle)
	})
}

// GetRoom looks up a room by id.
func (r *Registry) GetRoom(id int) (*models.Room, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	room, ok := r.rooms[id]
	return room, ok
}

// CountRooms returns the number of rooms.
func (r *Registry) CountRooms() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms)
}

// ordered returns all rooms sorted by id, which is creation order.
func (r *Registry) ordered() []*models.Room {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := lo.Keys(r.rooms)
	sort.Ints(ids)
	return lo.Map(ids, func(id int, _ int) *models.Room {
		return r.rooms[id]
	})
}

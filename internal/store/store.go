package store

import (
	"github.com/cocoa-beans/simple-node-backend/internal/models"
)

// RoomStore defines the room registry operations used by the HTTP layer.
// Registry is the in-memory implementation.
type RoomStore interface {
	// CreateRoom allocates the next room id and stores a new room.
	CreateRoom(name string) *models.Room
	// FindRoomsByName returns rooms whose name contains substring,
	// case-insensitively, in creation order. An empty substring matches all.
	FindRoomsByName(substring string) []*models.Room
	// GetRoom looks up a room by id.
	GetRoom(id int) (*models.Room, bool)
	// CountRooms returns the number of rooms.
	CountRooms() int
}

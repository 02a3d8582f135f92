package handlers

import (
	"net/http"

	"github.com/samber/lo"

	"github.com/cocoa-beans/simple-node-backend/internal/metrics"
	"github.com/cocoa-beans/simple-node-backend/internal/models"
)

// SearchRoomsResponse represents the room search response.
type SearchRoomsResponse struct {
	Rooms []models.RoomView `json:"rooms"`
}

// SearchRooms lists rooms whose name contains the searchString query
// parameter, ignoring case. A missing parameter matches every room.
func (h *Handler) SearchRooms(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("searchString")

	rooms := h.rooms.FindRoomsByName(query)
	metrics.RoomSearches.Inc()

	views := lo.Map(rooms, func(room *models.Room, _ int) models.RoomView {
		return room.View()
	})

	h.JSON(w, http.StatusOK, SearchRoomsResponse{Rooms: views})
}

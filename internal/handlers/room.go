package handlers

import (
	"net/http"

	"github.com/samber/lo"

	"github.com/cocoa-beans/simple-node-backend/internal/metrics"
	"github.com/cocoa-beans/simple-node-backend/internal/models"
)

// CreateRoomRequest represents the room creation request.
type CreateRoomRequest struct {
	Name string `json:"name" validate:"notblank"`
}

// CreateRoomResponse represents the room creation response.
type CreateRoomResponse struct {
	Room models.RoomView `json:"room"`
}

// RoomMessagesResponse represents the get room messages response.
type RoomMessagesResponse struct {
	Messages []models.MessageView `json:"messages"`
}

// PostMessageRequest represents the post message request.
type PostMessageRequest struct {
	Body     string `json:"body" validate:"notblank"`
	Username string `json:"username" validate:"notblank"`
}

// PostMessageResponse represents the post message response.
type PostMessageResponse struct {
	Message models.MessageView `json:"message"`
}

// CreateRoom handles room creation.
func (h *Handler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	var req CreateRoomRequest
	if err := h.decode(r, &req); err != nil {
		h.Error(w, r, decodeStatus(err), "invalid room: "+err.Error())
		return
	}

	room := h.rooms.CreateRoom(req.Name)
	metrics.RoomsCreated.Inc()

	h.JSON(w, http.StatusOK, CreateRoomResponse{Room: room.View()})
}

// GetRoomMessages handles fetching all messages of a room.
func (h *Handler) GetRoomMessages(w http.ResponseWriter, r *http.Request) {
	room, ok := h.roomFromPath(r)
	if !ok {
		h.Error(w, r, http.StatusNotFound, "room not found")
		return
	}

	views := lo.Map(room.Messages(), func(m models.Message, _ int) models.MessageView {
		return m.View()
	})

	h.JSON(w, http.StatusOK, RoomMessagesResponse{Messages: views})
}

// PostMessage handles posting a message to a room.
func (h *Handler) PostMessage(w http.ResponseWriter, r *http.Request) {
	room, ok := h.roomFromPath(r)
	if !ok {
		h.Error(w, r, http.StatusNotFound, "room not found")
		return
	}

	var req PostMessageRequest
	if err := h.decode(r, &req); err != nil {
		h.Error(w, r, decodeStatus(err), "invalid message: "+err.Error())
		return
	}

	msg := room.PostMessage(req.Body, req.Username)
	metrics.MessagesPosted.Inc()

	h.JSON(w, http.StatusOK, PostMessageResponse{Message: msg.View()})
}

package models

import (
	"sync"
	"time"
)

// Room represents a named channel owning an append-only list of messages.
// ID and Name are fixed at creation.
type Room struct {
	ID   int
	Name string

	mu            sync.RWMutex
	messages      []Message
	nextMessageID int
}

// RoomView is the transport representation of a room. Messages are not embedded.
type RoomView struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// NewRoom creates an empty room.
func NewRoom(id int, name string) *Room {
	return &Room{
		ID:   id,
		Name: name,
	}
}

// PostMessage appends a message stamped with the current time.
func (r *Room) PostMessage(body, username string) Message {
	return r.PostMessageAt(body, username, time.Time{})
}

// PostMessageAt appends a message with an explicit timestamp.
func (r *Room) PostMessageAt(body, username string, at time.Time) Message {
	r.mu.Lock()
	defer r.mu.Unlock()

	msg := NewMessageAt(r.nextMessageID, body, username, at)
	r.nextMessageID++
	r.messages = append(r.messages, msg)
	return msg
}

// Messages returns a snapshot of the room's messages in posting order.
func (r *Room) Messages() []Message {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Message, len(r.messages))
	copy(out, r.messages)
	return out
}

// MessageCount returns the number of messages posted so far.
func (r *Room) MessageCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.messages)
}

// LastActiveAt returns the timestamp of the latest message, if any.
func (r *Room) LastActiveAt() (time.Time, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.messages) == 0 {
		return time.Time{}, false
	}
	return r.messages[len(r.messages)-1].Datetime, true
}

// View returns the transport representation of the room.
func (r *Room) View() RoomView {
	return RoomView{ID: r.ID, Name: r.Name}
}

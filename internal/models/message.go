package models

import "time"

// DatetimeFormat is the wire format of message timestamps, always rendered in UTC.
const DatetimeFormat = "Mon, 02 Jan 2006 15:04:05 GMT"

// Message represents an immutable post within a room.
type Message struct {
	ID       int
	Body     string
	Username string
	Datetime time.Time
}

// MessageView is the transport representation of a message.
type MessageView struct {
	ID       int    `json:"id"`
	Body     string `json:"body"`
	Username string `json:"username"`
	Datetime string `json:"datetime"`
}

// NewMessage creates a message stamped with the current time.
func NewMessage(id int, body, username string) Message {
	return NewMessageAt(id, body, username, time.Time{})
}

// NewMessageAt creates a message with an explicit timestamp.
// A zero timestamp is replaced by the current time.
func NewMessageAt(id int, body, username string, at time.Time) Message {
	if at.IsZero() {
		at = time.Now()
	}
	return Message{
		ID:       id,
		Body:     body,
		Username: username,
		Datetime: at,
	}
}

// View returns the transport representation of the message.
func (m Message) View() MessageView {
	return MessageView{
		ID:       m.ID,
		Body:     m.Body,
		Username: m.Username,
		Datetime: FormatDatetime(m.Datetime),
	}
}

// FormatDatetime renders t in DatetimeFormat.
func FormatDatetime(t time.Time) string {
	return t.UTC().Format(DatetimeFormat)
}

// ParseDatetime parses a timestamp rendered by FormatDatetime.
func ParseDatetime(s string) (time.Time, error) {
	return time.Parse(DatetimeFormat, s)
}

// Package chatrooms provides a client for the chat rooms REST API.
package chatrooms

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// DefaultURL is used when no base URL is given.
const DefaultURL = "http://127.0.0.1:8080"

var (
	// ErrNotFound is returned when the referenced room does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidRequest is returned when the server rejects the request body.
	ErrInvalidRequest = errors.New("invalid request")
)

// APIError is returned for any non-2xx response.
// It unwraps to ErrNotFound or ErrInvalidRequest where applicable.
type APIError struct {
	StatusCode int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("chatrooms error %d: %s", e.StatusCode, http.StatusText(e.StatusCode))
}

func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusBadRequest:
		return ErrInvalidRequest
	}
	return nil
}

// Client is a chat rooms API client.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a new client.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultURL
	}
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// doRequest performs an HTTP request and decodes a JSON response into out.
func (c *Client) doRequest(method, path string, in, out interface{}) error {
	var body io.Reader = http.NoBody
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return &APIError{StatusCode: resp.StatusCode}
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// Room represents room metadata.
type Room struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Message represents a chat message.
type Message struct {
	ID       int    `json:"id"`
	Body     string `json:"body"`
	Username string `json:"username"`
	Datetime string `json:"datetime"`
}

// Time parses the message timestamp.
func (m Message) Time() (time.Time, error) {
	return time.Parse(http.TimeFormat, m.Datetime)
}

// SearchRooms lists rooms whose name contains search, ignoring case.
// An empty search lists every room.
func (c *Client) SearchRooms(search string) ([]Room, error) {
	path := "/rooms"
	if search != "" {
		path += "?searchString=" + url.QueryEscape(search)
	}

	var resp struct {
		Rooms []Room `json:"rooms"`
	}
	if err := c.doRequest(http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Rooms, nil
}

// CreateRoom creates a new room.
func (c *Client) CreateRoom(name string) (*Room, error) {
	req := struct {
		Name string `json:"name"`
	}{Name: name}

	var resp struct {
		Room Room `json:"room"`
	}
	if err := c.doRequest(http.MethodPost, "/rooms", req, &resp); err != nil {
		return nil, err
	}
	return &resp.Room, nil
}

// GetMessages retrieves all messages of a room.
func (c *Client) GetMessages(roomID int) ([]Message, error) {
	var resp struct {
		Messages []Message `json:"messages"`
	}
	if err := c.doRequest(http.MethodGet, messagesPath(roomID), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Messages, nil
}

// PostMessage posts a message to a room.
func (c *Client) PostMessage(roomID int, body, username string) (*Message, error) {
	req := struct {
		Body     string `json:"body"`
		Username string `json:"username"`
	}{Body: body, Username: username}

	var resp struct {
		Message Message `json:"message"`
	}
	if err := c.doRequest(http.MethodPost, messagesPath(roomID), req, &resp); err != nil {
		return nil, err
	}
	return &resp.Message, nil
}

func messagesPath(roomID int) string {
	return "/rooms/" + strconv.Itoa(roomID) + "/messages"
}

// HealthResponse is the response from the health endpoint.
type HealthResponse struct {
	Status   string `json:"status"`
	Version  string `json:"version"`
	Instance string `json:"instance,omitempty"`
	Checks   map[string]struct {
		Status  string `json:"status"`
		Latency string `json:"latency,omitempty"`
		Message string `json:"message,omitempty"`
	} `json:"checks"`
	Timestamp string `json:"timestamp"`
}

// Health checks server health.
func (c *Client) Health() (*HealthResponse, error) {
	var resp HealthResponse
	if err := c.doRequest(http.MethodGet, "/health", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// RoomStats represents per-room activity.
type RoomStats struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	MessageCount int    `json:"message_count"`
}

// StatsResponse is the response from the stats endpoint.
type StatsResponse struct {
	TotalRooms    int         `json:"total_rooms"`
	TotalMessages int         `json:"total_messages"`
	LastActivity  string      `json:"last_activity"`
	TopRooms      []RoomStats `json:"top_rooms"`
}

// Stats fetches registry statistics.
func (c *Client) Stats() (*StatsResponse, error) {
	var resp StatsResponse
	if err := c.doRequest(http.MethodGet, "/stats", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/cocoa-beans/simple-node-backend/internal/config"
	"github.com/cocoa-beans/simple-node-backend/internal/models"
	"github.com/cocoa-beans/simple-node-backend/internal/store"
)

type RouterSuite struct {
	suite.Suite
	registry *store.Registry
	server   *httptest.Server
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterSuite))
}

// SetupTest gives every test a fresh registry.
func (s *RouterSuite) SetupTest() {
	cfg := &config.Config{
		Host:               "127.0.0.1",
		Port:               "0",
		Env:                "development",
		LogLevel:           "info",
		MaxBodyBytes:       1024,
		CORSAllowedOrigins: []string{"*"},
		InstanceID:         "suite",
	}
	s.registry = store.NewRegistry()
	s.server = httptest.NewServer(NewRouter(zerolog.Nop(), cfg, s.registry, nil))
}

func (s *RouterSuite) TearDownTest() {
	s.server.Close()
}

func (s *RouterSuite) request(method, path, body string) (int, string) {
	var reader io.Reader = http.NoBody
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, s.server.URL+path, reader)
	s.Require().NoError(err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.server.Client().Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	return resp.StatusCode, string(data)
}

func (s *RouterSuite) TestCreateRoom() {
	status, body := s.request(http.MethodPost, "/rooms", `{"name":"General"}`)

	s.Equal(http.StatusOK, status)
	s.JSONEq(`{"room":{"id":0,"name":"General"}}`, body)
}

func (s *RouterSuite) TestCreateRoom_MissingName() {
	status, body := s.request(http.MethodPost, "/rooms", `{}`)

	s.Equal(http.StatusBadRequest, status)
	s.JSONEq(`{}`, body)
}

func (s *RouterSuite) TestPostMessage() {
	s.registry.CreateRoom("General")

	before := time.Now().Truncate(time.Second)
	status, body := s.request(http.MethodPost, "/rooms/0/messages", `{"body":"hi","username":"alice"}`)
	after := time.Now()
	s.Require().Equal(http.StatusOK, status)

	var resp struct {
		Message models.MessageView `json:"message"`
	}
	s.Require().NoError(json.Unmarshal([]byte(body), &resp))
	s.Equal(0, resp.Message.ID)
	s.Equal("hi", resp.Message.Body)
	s.Equal("alice", resp.Message.Username)

	at, err := models.ParseDatetime(resp.Message.Datetime)
	s.Require().NoError(err)
	s.False(at.Before(before))
	s.False(at.After(after))

	s.JSONEq(`{"message":{"id":0,"body":"hi","username":"alice","datetime":"`+resp.Message.Datetime+`"}}`, body)
}

func (s *RouterSuite) TestGetMessages_UnknownRoom() {
	status, body := s.request(http.MethodGet, "/rooms/99/messages", "")

	s.Equal(http.StatusNotFound, status)
	s.JSONEq(`{}`, body)
}

func (s *RouterSuite) TestSearchRooms() {
	s.request(http.MethodPost, "/rooms", `{"name":"General"}`)
	s.request(http.MethodPost, "/rooms", `{"name":"Random"}`)

	status, body := s.request(http.MethodGet, "/rooms?searchString=gen", "")

	s.Equal(http.StatusOK, status)
	s.JSONEq(`{"rooms":[{"id":0,"name":"General"}]}`, body)
}

func (s *RouterSuite) TestConversation() {
	s.request(http.MethodPost, "/rooms", `{"name":"Lobby"}`)
	s.request(http.MethodPost, "/rooms/0/messages", `{"body":"first","username":"alice"}`)
	s.request(http.MethodPost, "/rooms/0/messages", `{"body":"second","username":"bob"}`)

	status, body := s.request(http.MethodGet, "/rooms/0/messages", "")
	s.Require().Equal(http.StatusOK, status)

	var resp struct {
		Messages []models.MessageView `json:"messages"`
	}
	s.Require().NoError(json.Unmarshal([]byte(body), &resp))
	s.Require().Len(resp.Messages, 2)
	s.Equal(0, resp.Messages[0].ID)
	s.Equal("first", resp.Messages[0].Body)
	s.Equal(1, resp.Messages[1].ID)
	s.Equal("bob", resp.Messages[1].Username)

	// Rooms never embed their messages.
	_, body = s.request(http.MethodGet, "/rooms?searchString=LOB", "")
	s.JSONEq(`{"rooms":[{"id":0,"name":"Lobby"}]}`, body)
}

func (s *RouterSuite) TestBoundaryErrors() {
	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
	}{
		{"unknown route", http.MethodGet, "/nowhere", "", http.StatusNotFound},
		{"wrong method", http.MethodDelete, "/rooms", "", http.StatusMethodNotAllowed},
		{"body too large", http.MethodPost, "/rooms", `{"name":"` + strings.Repeat("x", 2048) + `"}`, http.StatusRequestEntityTooLarge},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			status, body := s.request(tt.method, tt.path, tt.body)
			s.Equal(tt.wantStatus, status)
			s.JSONEq(`{}`, body)
		})
	}
}

func (s *RouterSuite) TestTrailingSlash() {
	status, body := s.request(http.MethodPost, "/rooms/", `{"name":"General"}`)
	s.Equal(http.StatusOK, status)
	s.JSONEq(`{"room":{"id":0,"name":"General"}}`, body)

	status, _ = s.request(http.MethodPost, "/rooms/0/messages/", `{"body":"hi","username":"alice"}`)
	s.Equal(http.StatusOK, status)

	status, body = s.request(http.MethodGet, "/rooms/0/messages/", "")
	s.Equal(http.StatusOK, status)
	s.Contains(body, `"body":"hi"`)

	status, body = s.request(http.MethodGet, "/rooms/?searchString=gen", "")
	s.Equal(http.StatusOK, status)
	s.JSONEq(`{"rooms":[{"id":0,"name":"General"}]}`, body)
}

func (s *RouterSuite) TestTrailingJSONRejected() {
	for _, payload := range []string{
		`{"name":"General"} trailing garbage`,
		`{"name":"Third"}{"name":""}`,
	} {
		status, body := s.request(http.MethodPost, "/rooms", payload)
		s.Equal(http.StatusBadRequest, status)
		s.JSONEq(`{}`, body)
	}
	s.Zero(s.registry.CountRooms())
}

func (s *RouterSuite) TestChunkedBodyTooLarge() {
	// MultiReader hides the length, so the client sends the body chunked.
	payload := io.MultiReader(strings.NewReader(`{"name":"` + strings.Repeat("x", 4096) + `"}`))
	req, err := http.NewRequest(http.MethodPost, s.server.URL+"/rooms", payload)
	s.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.server.Client().Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	s.Equal(http.StatusRequestEntityTooLarge, resp.StatusCode)
	s.JSONEq(`{}`, string(data))
	s.Zero(s.registry.CountRooms())
}

func (s *RouterSuite) TestNonJSONContentType() {
	req, err := http.NewRequest(http.MethodPost, s.server.URL+"/rooms", strings.NewReader("name=General"))
	s.Require().NoError(err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.server.Client().Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusUnsupportedMediaType, resp.StatusCode)
	s.Zero(s.registry.CountRooms())
}

func (s *RouterSuite) TestHealthAndMetrics() {
	status, body := s.request(http.MethodGet, "/health", "")
	s.Equal(http.StatusOK, status)
	s.Contains(body, `"status":"healthy"`)
	s.Contains(body, `"instance":"suite"`)

	s.request(http.MethodPost, "/rooms", `{"name":"General"}`)

	status, body = s.request(http.MethodGet, "/metrics", "")
	s.Equal(http.StatusOK, status)
	s.Contains(body, "chatrooms_rooms_created_total")
	s.Contains(body, "chatrooms_http_requests_total")
}

func (s *RouterSuite) TestCORSPreflight() {
	req, err := http.NewRequest(http.MethodOptions, s.server.URL+"/rooms", http.NoBody)
	s.Require().NoError(err)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	resp, err := s.server.Client().Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal("*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestRouter_RateLimitKeysOnConnection(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	cfg := &config.Config{
		MaxBodyBytes:       1024,
		CORSAllowedOrigins: []string{"*"},
		InstanceID:         "limited",
	}
	router := NewRouter(zerolog.Nop(), cfg, store.NewRegistry(), store.NewRedisStoreFromClient(client))

	post := func(forwardedFor string) int {
		req := httptest.NewRequest(http.MethodPost, "/rooms", strings.NewReader(`{"name":"General"}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Forwarded-For", forwardedFor)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		return rr.Code
	}

	for i := 0; i < 5; i++ {
		require.Equal(t, http.StatusOK, post(fmt.Sprintf("203.0.113.%d", i)))
	}

	// Every request lands on the connection's counter, not on the forged address.
	keys := mr.Keys()
	require.NotEmpty(t, keys)
	for _, key := range keys {
		require.True(t, strings.HasPrefix(key, "ratelimit:ip:192.0.2.1:POST /rooms:"), key)
	}
}

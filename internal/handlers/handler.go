package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/rs/zerolog"

	"github.com/cocoa-beans/simple-node-backend/internal/api/middleware"
	"github.com/cocoa-beans/simple-node-backend/internal/models"
	"github.com/cocoa-beans/simple-node-backend/internal/store"
)

// Handler contains shared dependencies for all HTTP handlers.
type Handler struct {
	rooms      store.RoomStore
	redis      *store.RedisStore
	instanceID string
	validate   *validator.Validate
}

var errTrailingData = errors.New("unexpected data after JSON body")

// NewHandler creates a new Handler. redis may be nil when rate limiting is off.
func NewHandler(rooms store.RoomStore, redis *store.RedisStore, instanceID string) *Handler {
	validate, err := newValidator()
	if err != nil {
		panic(err)
	}

	return &Handler{
		rooms:      rooms,
		redis:      redis,
		instanceID: instanceID,
		validate:   validate,
	}
}

// newValidator builds the request validator.
// "notblank" rejects absent, empty and whitespace-only strings.
func newValidator() (*validator.Validate, error) {
	validate := validator.New()
	if err := validate.RegisterValidation("notblank", validators.NotBlank); err != nil {
		return nil, fmt.Errorf("register notblank validation: %w", err)
	}
	return validate, nil
}

// JSON sends a JSON response with the given status code.
func (h *Handler) JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// Error sends an empty JSON object with the given status code.
// The reason is only logged; clients never see it.
func (h *Handler) Error(w http.ResponseWriter, r *http.Request, status int, reason string) {
	zerolog.Ctx(r.Context()).Debug().
		Int("status", status).
		Str("reason", reason).
		Msg("request rejected")
	middleware.WriteEmpty(w, status)
}

// decode reads exactly one JSON value into dst and validates its tags.
// Anything but whitespace after the value is rejected.
func (h *Handler) decode(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return err
		}
		return errTrailingData
	}
	return h.validate.Struct(dst)
}

// decodeStatus maps a decode failure to its response status.
func decodeStatus(err error) int {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}

// roomFromPath resolves the {roomId} URL parameter.
// Only the canonical decimal form of an existing id matches.
func (h *Handler) roomFromPath(r *http.Request) (*models.Room, bool) {
	raw := chi.URLParam(r, "roomId")
	id, err := strconv.Atoi(raw)
	if err != nil || strconv.Itoa(id) != raw {
		return nil, false
	}
	return h.rooms.GetRoom(id)
}

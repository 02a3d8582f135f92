package handlers

import (
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/samber/lo"

	"github.com/cocoa-beans/simple-node-backend/internal/models"
)

const topRoomsLimit = 5

// RoomStats represents stats for a single room.
type RoomStats struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	MessageCount int    `json:"message_count"`
}

// StatsResponse represents the response from the stats endpoint.
type StatsResponse struct {
	TotalRooms    int         `json:"total_rooms"`
	TotalMessages int         `json:"total_messages"`
	LastActivity  string      `json:"last_activity"`
	TopRooms      []RoomStats `json:"top_rooms"`
}

// Stats returns registry statistics.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	rooms := h.rooms.FindRoomsByName("")

	stats := lo.Map(rooms, func(room *models.Room, _ int) RoomStats {
		return RoomStats{ID: room.ID, Name: room.Name, MessageCount: room.MessageCount()}
	})

	var last time.Time
	for _, room := range rooms {
		if at, ok := room.LastActiveAt(); ok && at.After(last) {
			last = at
		}
	}

	lastActivity := "no activity yet"
	if !last.IsZero() {
		lastActivity = formatTimeAgo(last)
	}

	totalMessages := lo.SumBy(stats, func(s RoomStats) int { return s.MessageCount })

	// Busiest first; ties keep creation order.
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].MessageCount > stats[j].MessageCount
	})
	if len(stats) > topRoomsLimit {
		stats = stats[:topRoomsLimit]
	}

	h.JSON(w, http.StatusOK, StatsResponse{
		TotalRooms:    len(rooms),
		TotalMessages: totalMessages,
		LastActivity:  lastActivity,
		TopRooms:      stats,
	})
}

// formatTimeAgo formats a time as a human-readable "X ago" string.
func formatTimeAgo(t time.Time) string {
	diff := time.Since(t)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return plural(int(diff.Minutes()), "minute") + " ago"
	case diff < 24*time.Hour:
		return plural(int(diff.Hours()), "hour") + " ago"
	default:
		return plural(int(diff.Hours()/24), "day") + " ago"
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return strconv.Itoa(n) + " " + unit + "s"
}

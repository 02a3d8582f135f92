package store

import (
	"sync"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"

	"github.com/cocoa-beans/simple-node-backend/internal/models"
)

func roomNames(rooms []*models.Room) []string {
	return lo.Map(rooms, func(r *models.Room, _ int) string { return r.Name })
}

func TestRegistry_CreateRoom_AssignsIncreasingIDs(t *testing.T) {
	reg := NewRegistry()

	for want, name := range []string{"General", "Random", "General"} {
		room := reg.CreateRoom(name)
		require.Equal(t, want, room.ID)
		require.Equal(t, name, room.Name)
	}
	require.Equal(t, 3, reg.CountRooms())
}

func TestRegistry_CreateRoom_Concurrent(t *testing.T) {
	reg := NewRegistry()

	var wg sync.WaitGroup
	ids := make(chan int, 100)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ids <- reg.CreateRoom("room").ID
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int]bool)
	for id := range ids {
		require.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
	require.Len(t, seen, 100)
	for i := 0; i < 100; i++ {
		require.True(t, seen[i])
	}
}

func TestRegistry_GetRoom(t *testing.T) {
	reg := NewRegistry()
	created := reg.CreateRoom("General")

	room, ok := reg.GetRoom(created.ID)
	require.True(t, ok)
	require.Same(t, created, room)

	room, ok = reg.GetRoom(99)
	require.False(t, ok)
	require.Nil(t, room)

	_, ok = reg.GetRoom(-1)
	require.False(t, ok)
}

func TestRegistry_FindRoomsByName(t *testing.T) {
	reg := NewRegistry()
	reg.CreateRoom("Lobby")
	reg.CreateRoom("General")
	reg.CreateRoom("Random")
	reg.CreateRoom("general-offtopic")

	tests := []struct {
		name      string
		substring string
		want      []string
	}{
		{"empty matches all", "", []string{"Lobby", "General", "Random", "general-offtopic"}},
		{"lower case", "lob", []string{"Lobby"}},
		{"upper case", "LOB", []string{"Lobby"}},
		{"several matches keep creation order", "gen", []string{"General", "general-offtopic"}},
		{"inner substring", "ndo", []string{"Random"}},
		{"no match", "xyz", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, roomNames(reg.FindRoomsByName(tt.substring)))
		})
	}
}

func TestRegistry_FindRoomsByName_EmptyRegistry(t *testing.T) {
	reg := NewRegistry()

	rooms := reg.FindRoomsByName("")
	require.NotNil(t, rooms)
	require.Empty(t, rooms)
}

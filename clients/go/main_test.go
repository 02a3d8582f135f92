package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cocoa-beans/simple-node-backend/clients/go/chatrooms"
)

func TestPrintRooms(t *testing.T) {
	var buf bytes.Buffer
	printRooms(&buf, []chatrooms.Room{{ID: 0, Name: "General"}, {ID: 1, Name: "Random"}})

	out := buf.String()
	require.Contains(t, out, "General")
	require.Contains(t, out, "Random")
}

func TestPrintMessages(t *testing.T) {
	var buf bytes.Buffer
	printMessages(&buf, []chatrooms.Message{
		{ID: 0, Body: "hi", Username: "alice", Datetime: "Mon, 01 Jan 2024 00:00:00 GMT"},
	})

	out := buf.String()
	require.Contains(t, out, "alice")
	require.Contains(t, out, "Mon, 01 Jan 2024 00:00:00 GMT")
}

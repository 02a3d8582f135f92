// roomctl - command line client for the chat rooms API
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"

	"github.com/cocoa-beans/simple-node-backend/clients/go/chatrooms"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	client := chatrooms.NewClient(os.Getenv("CHATROOMS_URL"))
	cmd := os.Args[1]

	switch cmd {
	case "rooms":
		search := ""
		if len(os.Args) > 2 {
			search = os.Args[2]
		}
		rooms, err := client.SearchRooms(search)
		exitOnError(err)
		printRooms(os.Stdout, rooms)

	case "create":
		if len(os.Args) < 3 {
			fmt.Fprintln(os.Stderr, "Usage: roomctl create <name>")
			os.Exit(1)
		}
		room, err := client.CreateRoom(os.Args[2])
		exitOnError(err)
		color.Green.Printf("Created room %d: %s\n", room.ID, room.Name)

	case "read":
		if len(os.Args) < 3 {
			fmt.Fprintln(os.Stderr, "Usage: roomctl read <room_id>")
			os.Exit(1)
		}
		msgs, err := client.GetMessages(parseRoomID(os.Args[2]))
		exitOnError(err)
		printMessages(os.Stdout, msgs)

	case "post":
		if len(os.Args) < 5 {
			fmt.Fprintln(os.Stderr, "Usage: roomctl post <room_id> <username> <message>")
			os.Exit(1)
		}
		msg, err := client.PostMessage(parseRoomID(os.Args[2]), os.Args[4], os.Args[3])
		exitOnError(err)
		color.Green.Printf("Posted message %d at %s\n", msg.ID, msg.Datetime)

	case "health":
		resp, err := client.Health()
		exitOnError(err)
		printJSON(resp)

	case "stats":
		resp, err := client.Stats()
		exitOnError(err)
		fmt.Printf("Rooms: %d  Messages: %d  Last activity: %s\n",
			resp.TotalRooms, resp.TotalMessages, resp.LastActivity)
		printTopRooms(os.Stdout, resp.TopRooms)

	case "help", "--help", "-h":
		usage()

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Println(`roomctl - chat rooms command line client

Usage: roomctl <command> [options]

Commands:
  rooms [search]                       List rooms, optionally filtered by name
  create <name>                        Create a room
  read <room_id>                       Read messages from a room
  post <room_id> <username> <message>  Post a message to a room
  stats                                Show registry statistics
  health                               Check server health

Environment:
  CHATROOMS_URL   Server URL (default: ` + chatrooms.DefaultURL + `)`)
}

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)
	return table
}

func printRooms(w io.Writer, rooms []chatrooms.Room) {
	table := newTable(w, "ID", "Name")
	for _, r := range rooms {
		table.Append([]string{strconv.Itoa(r.ID), r.Name})
	}
	table.Render()
}

func printMessages(w io.Writer, msgs []chatrooms.Message) {
	table := newTable(w, "ID", "Time", "User", "Message")
	for _, m := range msgs {
		table.Append([]string{strconv.Itoa(m.ID), m.Datetime, m.Username, m.Body})
	}
	table.Render()
}

func printTopRooms(w io.Writer, rooms []chatrooms.RoomStats) {
	table := newTable(w, "ID", "Name", "Messages")
	for _, r := range rooms {
		table.Append([]string{strconv.Itoa(r.ID), r.Name, strconv.Itoa(r.MessageCount)})
	}
	table.Render()
}

func parseRoomID(s string) int {
	id, err := strconv.Atoi(s)
	if err != nil {
		exitOnError(fmt.Errorf("room id must be an integer, got %q", s))
	}
	return id
}

func exitOnError(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, color.Red.Render("Error:"), err)
		os.Exit(1)
	}
}

func printJSON(v interface{}) {
	data, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(data))
}

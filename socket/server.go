package socket

import (
	"context"
	"log"

	"resonate_server/services"

	socketio "github.com/googollee/go-socket.io"
)

// NewSocketServer initializes the live match channel: clients join a room
// per match to exchange messages and live coordinates during a check-in.
func NewSocketServer(matchService *services.MatchService) *socketio.Server {
	server := socketio.NewServer(nil)

	server.OnConnect("/", func(c socketio.Conn) error {
		log.Println("Socket connected:", c.ID())
		return nil
	})

	server.OnEvent("/", "join", func(c socketio.Conn, matchID string) {
		if matchID == "" {
			log.Println("Invalid matchId in join request")
			return
		}
		log.Printf("Socket %s joined match %s\n", c.ID(), matchID)
		c.Join(matchID)
	})

	server.OnEvent("/", "shareLocation", func(c socketio.Conn, payload map[string]interface{}) {
		matchID, _ := payload["matchId"].(string)
		if matchID == "" {
			return
		}
		// Relay live coordinates to the counterparty while both sides walk
		// toward the check-in.
		server.BroadcastToRoom("/", matchID, "counterpartyLocation", payload)
	})

	server.OnEvent("/", "sendMessage", func(c socketio.Conn, message map[string]interface{}) {
		matchID, _ := message["matchId"].(string)
		if matchID == "" {
			log.Println("Invalid matchId in sendMessage")
			return
		}
		if err := matchService.TouchLastMessage(context.Background(), matchID); err != nil {
			log.Printf("Failed to touch lastMessageAt for match %s: %v\n", matchID, err)
		}
		server.BroadcastToRoom("/", matchID, "newMessage", message)
	})

	server.OnError("/", func(c socketio.Conn, err error) {
		log.Println("Socket error:", err)
	})

	server.OnDisconnect("/", func(c socketio.Conn, reason string) {
		log.Println("Socket disconnected:", reason)
	})

	return server
}

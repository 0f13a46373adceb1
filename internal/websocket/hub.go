// Package websocket fans the event bus out to connected WebSocket clients.
package websocket

import (
	"encoding/json"
	"log/slog"

	"go-file-manager/internal/event"
)

type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	bus        event.Bus
}

func NewHub(bus event.Bus) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		bus:        bus,
	}
}

// Run owns the client set; it must run on its own goroutine for the lifetime
// of the process.
func (h *Hub) Run() {
	events, unsubscribe := h.bus.Subscribe()
	defer unsubscribe()

	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
		case e := <-events:
			message, err := json.Marshal(e)
			if err != nil {
				slog.Error("failed to marshal event", "error", err)
				continue
			}
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Slow client: drop it rather than stall the broadcast.
					close(client.send)
					delete(h.clients, client)
				}
			}
		}
	}
}

package ws

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Client represents a WebSocket client connection watching one run
type Client struct {
	ID    uuid.UUID
	RunID uuid.UUID
	Conn  *websocket.Conn
	Send  chan []byte
	hub   *Hub
}

// Hub manages all WebSocket connections, grouped into per-run rooms
type Hub struct {
	mu         sync.RWMutex
	clients    map[*Client]bool
	runRooms   map[uuid.UUID]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan BroadcastMessage
}

// BroadcastMessage contains a message to broadcast to a run's room
type BroadcastMessage struct {
	RunID   uuid.UUID
	Message interface{}
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		runRooms:   make(map[uuid.UUID]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan BroadcastMessage, 256),
	}
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)
		case client := <-h.unregister:
			h.unregisterClient(client)
		case msg := <-h.broadcast:
			h.broadcastToRun(msg)
		}
	}
}

// registerClient adds a client to the hub
func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client] = true

	if client.RunID != uuid.Nil {
		if h.runRooms[client.RunID] == nil {
			h.runRooms[client.RunID] = make(map[*Client]bool)
		}
		h.runRooms[client.RunID][client] = true
		log.Printf("Client %s watching run %s", client.ID, client.RunID)
	}
}

// unregisterClient removes a client from the hub
func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.Send)

		if room, ok := h.runRooms[client.RunID]; ok {
			delete(room, client)
			if len(room) == 0 {
				delete(h.runRooms, client.RunID)
			}
		}
		log.Printf("Client %s disconnected", client.ID)
	}
}

// broadcastToRun sends a message to all clients watching a run
func (h *Hub) broadcastToRun(msg BroadcastMessage) {
	h.mu.RLock()
	room, ok := h.runRooms[msg.RunID]
	if !ok {
		h.mu.RUnlock()
		return
	}

	clients := make([]*Client, 0, len(room))
	for client := range room {
		clients = append(clients, client)
	}
	h.mu.RUnlock()

	data, err := json.Marshal(msg.Message)
	if err != nil {
		log.Printf("Failed to marshal broadcast message: %v", err)
		return
	}

	for _, client := range clients {
		select {
		case client.Send <- data:
		default:
			// Client buffer full, disconnect
			h.unregisterClient(client)
		}
	}
}

// BroadcastToRun sends a message (a ProgressEvent, or the final Map) to
// every client watching runID.
func (h *Hub) BroadcastToRun(runID uuid.UUID, message interface{}) {
	h.broadcast <- BroadcastMessage{
		RunID:   runID,
		Message: message,
	}
}

// Register adds a new client to the hub
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister removes a client from the hub
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// GetClientCount returns the total number of connected clients
func (h *Hub) GetClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// GetRunClientCount returns the number of clients watching a specific run
func (h *Hub) GetRunClientCount(runID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if room, ok := h.runRooms[runID]; ok {
		return len(room)
	}
	return 0
}

package websocket

import (
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

type EventType string

const (
	EventStoreStatusChanged EventType = "STORE_STATUS_CHANGED"
	EventStoreAssigned      EventType = "STORE_ASSIGNED"
	EventEnquiryReceived    EventType = "ENQUIRY_RECEIVED"
	EventError              EventType = "ERROR"
)

// Event is the wire format pushed to dashboard clients.
type Event struct {
	Type      EventType   `json:"type"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

// StoreStatusPayload accompanies EventStoreStatusChanged.
type StoreStatusPayload struct {
	StoreID    uuid.UUID `json:"store_id"`
	StoreCode  string    `json:"store_code"`
	FromStatus string    `json:"from_status"`
	ToStatus   string    `json:"to_status"`
	ChangedBy  string    `json:"changed_by"`
}

type Client struct {
	ID     uuid.UUID
	UserID uuid.UUID
	Conn   *websocket.Conn
	Hub    *Hub
	Send   chan Event
}

type Hub struct {
	clients    map[*Client]bool
	broadcast  chan Event
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan Event),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}
			h.mu.Unlock()

		case event := <-h.broadcast:
			h.broadcastToAll(event)
		}
	}
}

// Broadcast sends an event to all connected clients.
func (h *Hub) Broadcast(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	h.broadcast <- event
}

// BroadcastStoreStatus is the convenience used by the workflow controllers.
func (h *Hub) BroadcastStoreStatus(payload StoreStatusPayload) {
	h.Broadcast(Event{
		Type:      EventStoreStatusChanged,
		Payload:   payload,
		Timestamp: time.Now(),
	})
}

func (h *Hub) broadcastToAll(event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients {
		select {
		case client.Send <- event:
		default:
			// Slow client; drop the event rather than block the hub
		}
	}
}

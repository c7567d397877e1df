package websocket

import (
	"bytes"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/tradingagent/api/internal/model"
)

// Client represents a WebSocket client
type Client struct {
	Conn *websocket.Conn
	Send chan []byte
}

// envelope is one queued broadcast. State is set for status events so the
// hub's run loop can track the current state for late-joining clients.
type envelope struct {
	payload []byte
	state   model.AnalysisState
}

// Hub maintains the set of active WebSocket connections and fans events out
// to all of them in emission order.
type Hub struct {
	clients map[*Client]bool

	// Register requests
	register chan *Client

	// Unregister requests
	unregister chan *Client

	// Broadcast events to all clients
	broadcast chan envelope

	// Last broadcast state, owned by the run loop. New clients receive it
	// as a snapshot immediately after registering.
	state model.AnalysisState

	mu sync.RWMutex
}

// NewHub creates a new Hub
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan envelope, 256),
		state:      model.StateIdle,
	}
}

// Run starts the hub's main loop. Registration, removal and delivery are all
// serialized here, so every client observes events in the order they were
// published.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			h.sendSnapshot(client)
			log.Printf("Client registered. Total connections: %d", h.ClientCount())

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}
			h.mu.Unlock()
			log.Printf("Client unregistered. Total connections: %d", h.ClientCount())

		case msg := <-h.broadcast:
			if msg.state != "" {
				h.state = msg.state
			}
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.Send <- msg.payload:
				default:
					// Slow or broken sink; drop it, keep going
					close(client.Send)
					delete(h.clients, client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// sendSnapshot delivers the current state and a welcome line to a client
// that just registered. A client that cannot even take the snapshot is
// dropped like any other failed delivery.
func (h *Hub) sendSnapshot(client *Client) {
	status, err := json.Marshal(model.WSStatusMessage{
		Type:  model.WSMessageTypeStatus,
		State: h.state,
	})
	if err != nil {
		log.Printf("Failed to marshal snapshot status: %v", err)
		return
	}
	welcome, err := json.Marshal(model.WSLogMessage{
		Type:      model.WSMessageTypeLog,
		Message:   "Connected to TradingAgent stream",
		Timestamp: model.Timestamp(time.Now()),
	})
	if err != nil {
		log.Printf("Failed to marshal welcome log: %v", err)
		return
	}

	for _, payload := range [][]byte{status, welcome} {
		h.trySend(client, payload)
	}
}

// trySend delivers one payload straight to a client's queue, bypassing the
// broadcast loop. The hub only closes Send while holding mu and after removing
// the client, so the membership check makes this safe against a concurrent
// drop. A full queue drops the client like any other failed delivery.
func (h *Hub) trySend(client *Client, payload []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[client]; !ok {
		return
	}
	select {
	case client.Send <- payload:
	default:
		close(client.Send)
		delete(h.clients, client)
	}
}

// Register adds a new client
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister removes a client
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// ClientCount returns the number of registered clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// BroadcastStatus announces a lifecycle state change to all clients
func (h *Hub) BroadcastStatus(state model.AnalysisState) {
	msg := model.WSStatusMessage{
		Type:  model.WSMessageTypeStatus,
		State: state,
	}

	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Failed to marshal status message: %v", err)
		return
	}

	h.broadcast <- envelope{payload: data, state: state}
}

// BroadcastLog sends a progress line to all clients
func (h *Hub) BroadcastLog(message string) {
	msg := model.WSLogMessage{
		Type:      model.WSMessageTypeLog,
		Message:   message,
		Timestamp: model.Timestamp(time.Now()),
	}

	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Failed to marshal log message: %v", err)
		return
	}

	h.broadcast <- envelope{payload: data}
}

// HandleConnection handles a WebSocket connection
func (h *Hub) HandleConnection(c *websocket.Conn) {
	client := &Client{
		Conn: c,
		Send: make(chan []byte, 256),
	}

	h.Register(client)
	defer h.Unregister(client)

	// Start writer goroutine
	go func() {
		ticker := time.NewTicker(30 * time.Second)
		defer ticker.Stop()

		for {
			select {
			case message, ok := <-client.Send:
				if !ok {
					c.WriteMessage(websocket.CloseMessage, []byte{})
					return
				}
				if err := c.WriteMessage(websocket.TextMessage, message); err != nil {
					return
				}

			case <-ticker.C:
				// Send ping for keep-alive
				if err := c.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			}
		}
	}()

	// Reader loop. The liveness probe is plain text, not a domain event:
	// "ping" in, "pong" out, anything else is ignored.
	for {
		_, message, err := c.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}

		if string(bytes.TrimSpace(message)) == model.WSPingToken {
			h.trySend(client, []byte(model.WSPongToken))
		}
	}
}

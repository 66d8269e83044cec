package ws

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/playmatatu/arena/internal/engine"
	"github.com/playmatatu/arena/internal/snapshot"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins in development
	},
}

// InputSink receives held directions sent by renderers.
type InputSink interface {
	SetInput(in engine.Input)
}

// Hub fans snapshots out to every connected renderer.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	mu         sync.RWMutex

	input    InputSink
	last     []byte // newest snapshot message, sent to new clients
	lastSnap *snapshot.Snapshot
}

// NewHub creates a hub. input may be nil, in which case input messages are
// rejected.
func NewHub(input InputSink) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		input:      input,
	}
}

// Message is the envelope for every frame in both directions.
type Message struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// InputData is the payload of an "input" message.
type InputData struct {
	Up    bool `json:"up"`
	Down  bool `json:"down"`
	Left  bool `json:"left"`
	Right bool `json:"right"`
}

// Run registers and removes clients until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			h.mu.Lock()
			for c := range h.clients {
				c.conn.Close()
				delete(h.clients, c)
			}
			h.mu.Unlock()
			log.Println("[WS] hub stopped")
			return

		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = true
			last := h.last
			n := len(h.clients)
			h.mu.Unlock()
			log.Printf("[WS] renderer %s connected (clients=%d)", c.id, n)
			if last != nil {
				c.trySend(last)
			}

		case c := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
			n := len(h.clients)
			h.mu.Unlock()
			log.Printf("[WS] renderer %s disconnected (clients=%d)", c.id, n)
			if n == 0 && h.input != nil {
				h.input.SetInput(engine.NoInput)
			}
		}
	}
}

// ClientCount returns the number of connected renderers.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast sends message to every client. Slow clients drop frames rather
// than hold up the others.
func (h *Hub) Broadcast(message interface{}) {
	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("[WS] marshal broadcast: %v", err)
		return
	}
	h.broadcastRaw(data)
}

func (h *Hub) broadcastRaw(data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		c.trySend(data)
	}
}

// Publish implements sim.Publisher.
func (h *Hub) Publish(ctx context.Context, s *snapshot.Snapshot) error {
	body, err := snapshot.JSON(s)
	if err != nil {
		return err
	}
	data, err := json.Marshal(Message{Type: "snapshot", Data: body})
	if err != nil {
		return err
	}
	h.mu.Lock()
	h.last = data
	h.lastSnap = s
	h.mu.Unlock()
	h.broadcastRaw(data)
	return nil
}

// Latest returns the newest published snapshot, or nil before the first.
func (h *Hub) Latest() *snapshot.Snapshot {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.lastSnap
}

// ServeWS upgrades the request and attaches a renderer.
func (h *Hub) ServeWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("[WS] Upgrade error: %v", err)
		return
	}

	client := &Client{
		hub:  h,
		conn: conn,
		id:   conn.RemoteAddr().String(),
		send: make(chan []byte, 64),
	}
	select {
	case h.register <- client:
	case <-h.done:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

package ws

import (
	"log"
	"sync"

	"github.com/google/uuid"
)

type envelope struct {
	userID  uuid.UUID // uuid.Nil means every client
	payload []byte
}

type Hub struct {
	clients    map[*Client]bool
	broadcast  chan envelope
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	stopOnce   sync.Once
	mutex      sync.RWMutex
	logger     *log.Logger
}

func NewHub(logger *log.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan envelope, 1024),
		register:   make(chan *Client, 128),
		unregister: make(chan *Client, 128),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run owns the client set until Stop is called.
func (h *Hub) Run() {
	for {
		select {
		case <-h.done:
			h.mutex.Lock()
			for c := range h.clients {
				delete(h.clients, c)
				close(c.send)
			}
			h.mutex.Unlock()
			return

		case client := <-h.register:
			if client == nil {
				continue
			}
			h.mutex.Lock()
			h.clients[client] = true
			total := len(h.clients)
			h.mutex.Unlock()
			h.logf("WS connected | user=%s total_clients=%d", client.userID, total)

		case client := <-h.unregister:
			h.remove(client)

		case msg := <-h.broadcast:
			h.mutex.RLock()
			targets := make([]*Client, 0, len(h.clients))
			for c := range h.clients {
				if msg.userID != uuid.Nil && c.userID != msg.userID {
					continue
				}
				targets = append(targets, c)
			}
			h.mutex.RUnlock()

			for _, client := range targets {
				select {
				case client.send <- msg.payload:
				default:
					h.remove(client)
				}
			}
			h.logf("WS broadcast | clients=%d", len(targets))
		}
	}
}

func (h *Hub) remove(client *Client) {
	if client == nil {
		return
	}
	h.mutex.Lock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
	}
	total := len(h.clients)
	h.mutex.Unlock()
	h.logf("WS disconnected | total_clients=%d", total)
}

func (h *Hub) Stop() {
	if h == nil {
		return
	}
	h.stopOnce.Do(func() { close(h.done) })
}

func (h *Hub) Register(client *Client) {
	if h == nil {
		return
	}
	select {
	case h.register <- client:
	case <-h.done:
	}
}

func (h *Hub) Unregister(client *Client) {
	if h == nil {
		return
	}
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Broadcast queues message for every client. A full buffer drops it.
func (h *Hub) Broadcast(message []byte) {
	h.enqueue(envelope{payload: message})
}

// SendToUser queues message for the clients authenticated as userID.
func (h *Hub) SendToUser(userID uuid.UUID, message []byte) {
	if userID == uuid.Nil {
		return
	}
	h.enqueue(envelope{userID: userID, payload: message})
}

func (h *Hub) enqueue(msg envelope) {
	if h == nil {
		return
	}
	select {
	case h.broadcast <- msg:
	default:
		h.logf("WS broadcast dropped | reason=buffer_full")
	}
}

func (h *Hub) ClientCount() int {
	if h == nil {
		return 0
	}
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}

func (h *Hub) logf(format string, args ...any) {
	if h != nil && h.logger != nil {
		h.logger.Printf(format, args...)
	}
}

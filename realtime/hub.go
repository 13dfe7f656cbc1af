package realtime

import (
	"encoding/json"
	"log"
	"sync"
)

// Publisher is the delivery boundary the socket controllers talk to.
// Broadcast fans a payload out to every subscriber of a topic; SendToUser
// delivers exactly one directed reply to the requester's queue.
type Publisher interface {
	Broadcast(destination string, payload interface{})
	SendToUser(requesterID, queue string, payload interface{})
}

type broadcastMsg struct {
	Destination string
	Data        []byte
}

type subscription struct {
	Client      *Client
	Destination string
}

// Hub tracks which client listens on which destination and fans messages
// out. All bookkeeping happens in Run's goroutine; the mutex guards the
// maps against inspection from other goroutines.
type Hub struct {
	clients      map[*Client]bool
	destinations map[string]map[*Client]bool

	register    chan *Client
	unregister  chan *Client
	subscribe   chan subscription
	unsubscribe chan subscription
	broadcast   chan broadcastMsg
	done        chan struct{}

	mu sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		clients:      make(map[*Client]bool),
		destinations: make(map[string]map[*Client]bool),
		register:     make(chan *Client),
		unregister:   make(chan *Client),
		subscribe:    make(chan subscription),
		unsubscribe:  make(chan subscription),
		broadcast:    make(chan broadcastMsg, 64),
		done:         make(chan struct{}),
	}
}

// drop removes the client from every destination and closes Send. The
// clients set makes it idempotent: a slow consumer dropped mid-broadcast
// still unregisters when its read pump exits, and Send closes only once.
// Callers hold h.mu.
func (h *Hub) drop(c *Client) {
	if !h.clients[c] {
		return
	}
	delete(h.clients, c)
	for dest, clients := range h.destinations {
		if clients[c] {
			delete(clients, c)
			if len(clients) == 0 {
				delete(h.destinations, dest)
			}
		}
	}
	close(c.Send)
}

func (h *Hub) Run() {
	for {
		select {
		case <-h.done:
			return

		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = true
			h.mu.Unlock()

		case c := <-h.unregister:
			h.mu.Lock()
			h.drop(c)
			h.mu.Unlock()

		case s := <-h.subscribe:
			h.mu.Lock()
			if h.destinations[s.Destination] == nil {
				h.destinations[s.Destination] = make(map[*Client]bool)
			}
			h.destinations[s.Destination][s.Client] = true
			h.mu.Unlock()

		case s := <-h.unsubscribe:
			h.mu.Lock()
			if clients := h.destinations[s.Destination]; clients != nil {
				delete(clients, s.Client)
				if len(clients) == 0 {
					delete(h.destinations, s.Destination)
				}
			}
			h.mu.Unlock()

		case m := <-h.broadcast:
			h.mu.Lock()
			for c := range h.destinations[m.Destination] {
				select {
				case c.Send <- m.Data:
				default:
					// slow consumer: drop the connection, not the hub
					h.drop(c)
				}
			}
			h.mu.Unlock()
		}
	}
}

func (h *Hub) Stop() {
	close(h.done)
}

// Broadcast publishes to every subscriber of the destination. A payload
// that fails to marshal is logged and dropped; nothing is retried. After
// Stop the message is discarded instead of blocking on a full queue.
func (h *Hub) Broadcast(destination string, payload interface{}) {
	data, err := json.Marshal(OutboundFrame{Destination: destination, Payload: payload})
	if err != nil {
		log.Printf("❌ realtime: marshal for %s failed: %v", destination, err)
		return
	}
	select {
	case h.broadcast <- broadcastMsg{Destination: destination, Data: data}:
	case <-h.done:
	}
}

// SendToUser publishes to the requester's private queue. Delivery is the
// same fan-out as Broadcast; privacy comes from the destination name.
func (h *Hub) SendToUser(requesterID, queue string, payload interface{}) {
	h.Broadcast(UserQueue(requesterID, queue), payload)
}

package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/csecl/interviewhub/internal/app/models"
	"github.com/rs/zerolog"
)

// EventNotification is the only event type pushed to clients.
const EventNotification = "notification"

// Event is the envelope written to clients.
type Event struct {
	Type         string               `json:"type"`
	Notification *models.Notification `json:"notification"`
	Timestamp    time.Time            `json:"timestamp"`
}

// delivery is a serialised event plus its audience. An empty recipient means everyone.
type delivery struct {
	recipient string
	data      []byte
}

// Hub tracks connected clients by user ID and fans notifications out to them.
type Hub struct {
	// Registered clients organized by user ID
	clients map[string]map[*Client]bool

	deliveries chan delivery
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	stopOnce   sync.Once

	// Guards clients for the read-only counters
	mu sync.RWMutex

	logger zerolog.Logger
}

// NewHub creates a new Hub instance
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		deliveries: make(chan delivery, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run handles registrations and deliveries until Stop is called.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case d := <-h.deliveries:
			h.deliver(d)

		case <-h.done:
			h.closeAll()
			return
		}
	}
}

// Stop ends Run and closes every client.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.done) })
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.userID]; !ok {
		h.clients[client.userID] = make(map[*Client]bool)
	}
	h.clients[client.userID][client] = true

	h.logger.Info().
		Str("userID", client.userID).
		Str("addr", client.remoteAddr()).
		Msg("Client registered")
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(client)
}

func (h *Hub) removeLocked(client *Client) {
	set, ok := h.clients[client.userID]
	if !ok {
		return
	}
	if _, ok := set[client]; !ok {
		return
	}
	delete(set, client)
	close(client.send)
	if len(set) == 0 {
		delete(h.clients, client.userID)
	}

	h.logger.Info().
		Str("userID", client.userID).
		Str("addr", client.remoteAddr()).
		Msg("Client unregistered")
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, set := range h.clients {
		for client := range set {
			h.removeLocked(client)
		}
	}
}

// deliver runs on the Run goroutine, so slow clients are dropped in place.
func (h *Hub) deliver(d delivery) {
	h.mu.Lock()
	defer h.mu.Unlock()

	var targets []*Client
	if d.recipient == "" {
		for _, set := range h.clients {
			for client := range set {
				targets = append(targets, client)
			}
		}
	} else {
		for client := range h.clients[d.recipient] {
			targets = append(targets, client)
		}
	}

	for _, client := range targets {
		select {
		case client.send <- d.data:
		default:
			h.logger.Warn().Str("userID", client.userID).Msg("Dropping slow client")
			h.removeLocked(client)
		}
	}

	h.logger.Debug().
		Str("recipient", d.recipient).
		Int("clientCount", len(targets)).
		Msg("Notification pushed")
}

// Publish pushes a stored notification to its recipient, or to every client
// when it is a broadcast. It never blocks the caller; when the queue is full
// the push is skipped and the notification stays readable from the feed.
func (h *Hub) Publish(n *models.Notification) {
	data, err := json.Marshal(Event{Type: EventNotification, Notification: n, Timestamp: time.Now()})
	if err != nil {
		h.logger.Error().Err(err).Int64("notificationID", n.ID).Msg("Failed to marshal notification")
		return
	}

	d := delivery{data: data}
	if n.RecipientUserID != nil {
		d.recipient = *n.RecipientUserID
	}

	select {
	case h.deliveries <- d:
	case <-h.done:
	default:
		h.logger.Warn().Int64("notificationID", n.ID).Msg("Push queue full, skipping live delivery")
	}
}

// ClientsCount returns the number of open connections for a user
func (h *Hub) ClientsCount(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

// TotalClients returns the number of open connections
func (h *Hub) TotalClients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	n := 0
	for _, set := range h.clients {
		n += len(set)
	}
	return n
}

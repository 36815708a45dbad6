package hub

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog/log"
)

// Event is a real-time event sent to clients watching an activity.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// Client is one open event stream. The SSE handler reads from it until the
// hub closes it.
type Client chan []byte

// ClientBuffer is how many events a slow client may fall behind by before
// further events are dropped for it.
const ClientBuffer = 16

// NewClient returns a buffered client channel.
func NewClient() Client {
	return make(Client, ClientBuffer)
}

// Hub fans events out to the clients of each activity.
type Hub struct {
	activities map[string]map[Client]bool
	mu         sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		activities: make(map[string]map[Client]bool),
	}
}

// Subscribe adds a client to an activity's audience.
func (h *Hub) Subscribe(activityID string, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.activities[activityID]; !ok {
		h.activities[activityID] = make(map[Client]bool)
	}
	h.activities[activityID][client] = true
}

// Unsubscribe removes a client and closes its channel.
func (h *Hub) Unsubscribe(activityID string, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if clients, ok := h.activities[activityID]; ok {
		if _, ok := clients[client]; ok {
			delete(clients, client)
			close(client)
			if len(clients) == 0 {
				delete(h.activities, activityID)
			}
		}
	}
}

// Broadcast sends an event to every client of an activity without blocking.
func (h *Hub) Broadcast(activityID string, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	clients, ok := h.activities[activityID]
	if !ok {
		return
	}

	message, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Str("event", event.Type).Msg("failed to encode event")
		return
	}

	for client := range clients {
		select {
		case client <- message:
		default:
			log.Warn().Str("activity_id", activityID).Str("event", event.Type).Msg("dropping event for slow client")
		}
	}
}

// Publish implements service.Publisher.
func (h *Hub) Publish(activityID, eventType string, payload interface{}) {
	h.Broadcast(activityID, Event{Type: eventType, Payload: payload})
}

// Listeners counts the clients watching an activity.
func (h *Hub) Listeners(activityID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.activities[activityID])
}

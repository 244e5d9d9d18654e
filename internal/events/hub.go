// Package events provides an in-process publish/subscribe hub for user
// change notifications.
package events

import (
	"sync"
	"time"

	"github.com/alfagnish/userapi/internal/store"
)

// Type identifies the kind of change an Event describes.
type Type string

const (
	UserCreated Type = "user.created"
	UserUpdated Type = "user.updated"
	UserDeleted Type = "user.deleted"
)

// Event is one change notification as delivered to subscribers.
type Event struct {
	Event     Type       `json:"event"`
	User      store.User `json:"user"`
	Timestamp string     `json:"timestamp"`
}

// subscriberBuffer is the per-subscriber channel capacity. A subscriber
// that falls this far behind starts losing events rather than blocking
// publishers.
const subscriberBuffer = 16

// Hub fans out store change events to any number of subscribers. Publish
// never blocks; delivery to slow subscribers is best-effort.
type Hub struct {
	mu   sync.Mutex
	subs map[chan Event]struct{}
}

// NewHub creates a hub with no subscribers.
func NewHub() *Hub {
	return &Hub{subs: make(map[chan Event]struct{})}
}

// Subscribe registers a new subscriber and returns its event channel. The
// caller must Unsubscribe when done.
func (h *Hub) Subscribe() chan Event {
	ch := make(chan Event, subscriberBuffer)
	h.mu.Lock()
	defer h.mu.Unlock()
	h.subs[ch] = struct{}{}
	return ch
}

// Unsubscribe removes a subscriber and closes its channel.
func (h *Hub) Unsubscribe(ch chan Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subs[ch]; ok {
		delete(h.subs, ch)
		close(ch)
	}
}

// Publish stamps the event and delivers it to every subscriber whose
// buffer has room.
func (h *Hub) Publish(t Type, u store.User) {
	evt := Event{
		Event:     t,
		User:      u,
		Timestamp: time.Now().Format(store.TimeFormat),
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		select {
		case ch <- evt:
		default:
		}
	}
}

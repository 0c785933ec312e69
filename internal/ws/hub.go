package ws

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"
)

// Event is the envelope pushed to stream subscribers.
type Event struct {
	Kind string `json:"kind"`
	Data any    `json:"data"`
}

// Hub fans ingested telemetry out to attached stream subscribers.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[*Subscriber]struct{}
	logger      *zap.Logger
}

// NewHub builds subscriber hub.
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		subscribers: make(map[*Subscriber]struct{}),
		logger:      logger,
	}
}

// Add registers new subscriber.
func (h *Hub) Add(sub *Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.subscribers[sub] = struct{}{}
}

// Remove removes subscriber.
func (h *Hub) Remove(sub *Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.subscribers, sub)
}

// Count reports attached subscribers.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}

// Broadcast pushes an event to every attached subscriber. Slow consumers
// drop messages instead of blocking the caller.
func (h *Hub) Broadcast(event Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		h.logger.Warn("failed to encode stream event", zap.Error(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for sub := range h.subscribers {
		sub.Send(payload)
	}
}

// Package notify provides the in-process fan-out implementation of the chat
// message notifier. Viewers subscribe to a package's conversation and receive
// committed messages on a channel; slow consumers are skipped rather than
// allowed to stall the publisher.
package notify

import (
	"context"
	"log/slog"
	"sync"

	"courier/internal/core/domain/model/chat"
	"courier/internal/core/domain/model/kernel"
)

// subscriberBuffer is the per-subscriber channel capacity. A subscriber that
// falls further behind misses messages instead of blocking delivery.
const subscriberBuffer = 16

// MessageHub implements ports.MessageNotifier with per-package subscriber
// lists. Notify never blocks the caller.
type MessageHub struct {
	mu          sync.RWMutex
	subscribers map[kernel.UUID]map[int]chan *chat.Message
	nextID      int

	logger *slog.Logger
}

// NewMessageHub creates an empty hub.
func NewMessageHub(logger *slog.Logger) *MessageHub {
	return &MessageHub{
		subscribers: make(map[kernel.UUID]map[int]chan *chat.Message),
		logger:      logger,
	}
}

// Subscribe registers a listener for the package's conversation. The returned
// cancel function removes the subscription and closes the channel; it is safe
// to call more than once.
func (h *MessageHub) Subscribe(packageID kernel.UUID) (<-chan *chat.Message, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.subscribers[packageID] == nil {
		h.subscribers[packageID] = make(map[int]chan *chat.Message)
	}

	id := h.nextID
	h.nextID++

	ch := make(chan *chat.Message, subscriberBuffer)
	h.subscribers[packageID][id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()

			delete(h.subscribers[packageID], id)
			if len(h.subscribers[packageID]) == 0 {
				delete(h.subscribers, packageID)
			}
			close(ch)
		})
	}

	return ch, cancel
}

// Notify delivers a committed message to every subscriber of its package.
// Subscribers with a full buffer are skipped.
func (h *MessageHub) Notify(_ context.Context, message *chat.Message) {
	if err := message.Validate(); err != nil {
		h.logger.Warn("dropping invalid chat message notification", "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, ch := range h.subscribers[message.PackageID()] {
		select {
		case ch <- message:
		default:
			h.logger.Warn("chat subscriber lagging, message skipped",
				"package_id", message.PackageID().String())
		}
	}
}

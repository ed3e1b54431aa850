package messagebus

import (
	"log/slog"
	"sync"

	"maptrack/internal/domain"
)

type EventHandler func(event domain.Event) error

// MessageBus dispatches domain events to registered handlers. Dispatch is
// synchronous and in registration order: a mutation's observers finish
// before the handler that caused it returns, so no caller ever sees a
// half-reconciled view. Handler errors are logged, never propagated.
type MessageBus struct {
	logger *slog.Logger

	mu       sync.RWMutex
	handlers map[string][]EventHandler
}

func New(logger *slog.Logger) *MessageBus {
	return &MessageBus{
		logger:   logger,
		handlers: make(map[string][]EventHandler),
	}
}

func (b *MessageBus) Register(eventType string, handler EventHandler) {
	b.mu.Lock()
	b.handlers[eventType] = append(b.handlers[eventType], handler)
	b.mu.Unlock()
}

func (b *MessageBus) PublishEvents(events ...domain.Event) {
	for _, event := range events {
		b.mu.RLock()
		handlers := b.handlers[event.Type()]
		b.mu.RUnlock()

		for _, handler := range handlers {
			if err := handler(event); err != nil {
				b.logger.Error("failed to handle event", "type", event.Type(), "err", err)
			}
		}
	}
}
